package handlers

import (
	"trivest/internal/repositories/cache"
	"trivest/internal/services/user"
	"trivest/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type AccountHandler struct {
	userService user.Service
	cache       *cache.CacheService
}

func NewAccountHandler(userService user.Service, cacheService *cache.CacheService) *AccountHandler {
	return &AccountHandler{userService: userService, cache: cacheService}
}

// GetProfile returns the caller's account balances and referral state.
// Reads go through the cache; every balance mutation invalidates it.
func (h *AccountHandler) GetProfile(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	if h.cache != nil {
		if account, ok := h.cache.GetAccount(c.Context(), claims.Phone); ok {
			return utils.Success(c, fiber.Map{"account": accountPayload(account)})
		}
	}

	account, err := h.userService.GetAccount(claims.Phone)
	if err != nil {
		return utils.DomainError(c, err)
	}

	if h.cache != nil {
		_ = h.cache.CacheAccount(c.Context(), account)
	}
	return utils.Success(c, fiber.Map{"account": accountPayload(account)})
}
