// Package coupon validates and applies single-use bonus codes.
package coupon

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	domainerrors "trivest/internal/errors"
	"trivest/internal/models"
	"trivest/internal/money"
	"trivest/internal/repositories"
	"trivest/internal/services/ledger"
)

// RedeemResult reports a successful redemption.
type RedeemResult struct {
	Bonus      money.Amount `json:"bonus"`
	NewBalance money.Amount `json:"new_balance"`
}

type Service interface {
	Redeem(ctx context.Context, code, phone string) (*RedeemResult, error)
	Create(ctx context.Context, code string, bonus money.Amount, maxUsage *int) (*models.Coupon, error)
}

type service struct {
	repo       repositories.AccountRepository
	couponRepo repositories.CouponRepository
	cache      ledger.AccountCache
	locks      ledger.AccountLocker
	metrics    ledger.MetricsCollector
	now        func() time.Time
}

func NewService(
	repo repositories.AccountRepository,
	couponRepo repositories.CouponRepository,
	cache ledger.AccountCache,
	locks ledger.AccountLocker,
	metrics ledger.MetricsCollector,
) Service {
	if repo == nil {
		panic("account repository is required")
	}
	if couponRepo == nil {
		panic("coupon repository is required")
	}
	if locks == nil {
		panic("account locker is required")
	}
	if metrics == nil {
		metrics = &ledger.NoopMetricsCollector{}
	}
	return &service{
		repo:       repo,
		couponRepo: couponRepo,
		cache:      cache,
		locks:      locks,
		metrics:    metrics,
		now:        time.Now,
	}
}

func (s *service) Redeem(ctx context.Context, code, phone string) (*RedeemResult, error) {
	c, err := s.couponRepo.GetByCode(strings.TrimSpace(code))
	if err != nil {
		if errors.Is(err, repositories.ErrCouponNotFound) {
			return nil, ErrCouponNotFound
		}
		return nil, err
	}

	s.locks.Lock(phone)
	defer s.locks.Unlock(phone)

	result := &RedeemResult{Bonus: c.BonusAmount}

	err = s.repo.ExecuteInTransaction(func(r repositories.AccountRepository) error {
		if !c.IsActive {
			return ErrCouponInactive
		}
		if !c.CanBeUsed() {
			return ErrUsageExceeded
		}

		used, err := s.couponRepo.HasUsed(c.ID, phone)
		if err != nil {
			return err
		}
		if used {
			return ErrAlreadyUsed
		}

		account, err := r.GetByPhone(phone)
		if err != nil {
			if errors.Is(err, repositories.ErrAccountNotFound) {
				return domainerrors.ErrAccountNotFound
			}
			return err
		}

		c.UsageCount++
		if err := r.SaveCoupon(c); err != nil {
			return err
		}
		if err := r.CreateCouponUsage(&models.CouponUsage{
			CouponID:     c.ID,
			AccountPhone: phone,
			RedeemedAt:   s.now(),
		}); err != nil {
			return err
		}

		account.Balance += c.BonusAmount
		account.EarnBalance += c.BonusAmount
		if err := r.Update(account); err != nil {
			return err
		}
		result.NewBalance = account.Balance

		entry, err := ledger.NewImmediateTransaction(
			phone,
			models.TransactionTypeCouponRedeem,
			c.BonusAmount,
			fmt.Sprintf("Coupon %s bonus", c.Code),
		)
		if err != nil {
			return err
		}
		return r.CreateTransaction(entry)
	})
	if err != nil {
		s.metrics.RecordError("coupon_redeem", "redeem")
		return nil, err
	}

	if s.cache != nil {
		s.cache.InvalidateAccount(ctx, phone)
	}
	s.metrics.RecordTransaction(models.TransactionTypeCouponRedeem, c.BonusAmount.Float())
	return result, nil
}

func (s *service) Create(ctx context.Context, code string, bonus money.Amount, maxUsage *int) (*models.Coupon, error) {
	code = strings.TrimSpace(code)
	if code == "" || bonus <= 0 {
		return nil, domainerrors.ErrInvalidAmount
	}

	c := &models.Coupon{
		Code:        code,
		BonusAmount: bonus,
		MaxUsage:    maxUsage,
		IsActive:    true,
	}
	if err := s.couponRepo.Create(c); err != nil {
		if errors.Is(err, repositories.ErrDuplicateRecord) {
			return nil, ErrCodeExists
		}
		return nil, err
	}
	return c, nil
}
