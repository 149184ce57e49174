// Package routes defines the API routing configuration.
// It wires repositories into services and services into handlers, and
// groups routes by the authentication they require.
package routes

import (
	"trivest/internal/config"
	"trivest/internal/handlers"
	"trivest/internal/lock"
	"trivest/internal/metrics"
	"trivest/internal/middleware"
	"trivest/internal/repositories"
	"trivest/internal/services/auth"
	"trivest/internal/services/coupon"
	"trivest/internal/services/income"
	"trivest/internal/services/investment"
	"trivest/internal/services/ledger"
	"trivest/internal/services/referral"
	"trivest/internal/services/user"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App) {
	// Repositories
	accountRepo := repositories.NewAccountRepository(repositories.DB)
	txRepo := repositories.NewTransactionRepository(repositories.DB)
	invRepo := repositories.NewInvestmentRepository(repositories.DB)
	planRepo := repositories.NewPlanRepository(repositories.DB)
	couponRepo := repositories.NewCouponRepository(repositories.DB)
	settingsRepo := repositories.NewSettingsRepository(repositories.DB)
	userRepo := repositories.NewUserRepository(repositories.DB)

	// Shared infrastructure: one lock table serializes every compound
	// mutation per account, one collector feeds /metrics.
	locks := lock.NewKeyedMutex()
	collector := metrics.NewCollector()
	cacheService := repositories.CacheService

	// Services
	authService := auth.NewService(userRepo)
	userService := user.NewService(userRepo, accountRepo)
	ledgerService := ledger.NewService(accountRepo, txRepo, cacheService, locks, collector)
	investmentService := investment.NewService(accountRepo, invRepo, planRepo, cacheService, locks)
	incomeService := income.NewService(accountRepo, invRepo, cacheService, locks, collector)
	accumulator := referral.AccumulatorByName(config.GetEnv("COMMISSION_STRATEGY", "resumming"))
	referralService := referral.NewService(accountRepo, txRepo, cacheService, locks, collector, accumulator)
	couponService := coupon.NewService(accountRepo, couponRepo, cacheService, locks, collector)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, userService)
	accountHandler := handlers.NewAccountHandler(userService, cacheService)
	transactionHandler := handlers.NewTransactionHandler(ledgerService)
	investmentHandler := handlers.NewInvestmentHandler(investmentService)
	incomeHandler := handlers.NewIncomeHandler(incomeService)
	referralHandler := handlers.NewReferralHandler(referralService)
	couponHandler := handlers.NewCouponHandler(couponService)
	adminHandler := handlers.NewAdminHandler(planRepo, settingsRepo)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Welcome to Trivest API",
			"version": "1.0.0",
			"docs":    "/api",
		})
	})
	app.Get("/health", handlers.HealthCheck)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")

	// Public endpoints (no auth required)
	api.Post("/register", authHandler.Register)
	api.Post("/login", authHandler.Login)
	api.Post("/refresh", authHandler.RefreshToken)
	api.Get("/plans", investmentHandler.ListPlans)
	api.Get("/payment-settings", adminHandler.ListPaymentSettings)

	// Protected routes
	protected := api.Use(middleware.Auth())

	protected.Get("/account", accountHandler.GetProfile)
	protected.Post("/change-password", authHandler.ChangePassword)
	protected.Post("/logout", authHandler.Logout)

	transactions := protected.Group("/transactions")
	transactions.Post("/recharge", transactionHandler.CreateRecharge)
	transactions.Post("/withdraw", transactionHandler.CreateWithdrawal)
	transactions.Get("/", transactionHandler.History)

	investments := protected.Group("/investments")
	investments.Post("/", investmentHandler.Purchase)
	investments.Get("/", investmentHandler.ListInvestments)

	protected.Post("/income/check", incomeHandler.CheckDailyIncome)

	team := protected.Group("/team")
	team.Get("/", referralHandler.GetTeam)
	team.Post("/commission", referralHandler.ApplyCommission)

	protected.Post("/coupons/redeem", couponHandler.Redeem)

	// Admin routes
	admin := api.Group("/admin", middleware.Auth(), middleware.AdminOnly())
	admin.Get("/transactions/pending", transactionHandler.ListPending)
	admin.Post("/transactions/:id/review", transactionHandler.Review)
	admin.Post("/plans", adminHandler.CreatePlan)
	admin.Put("/plans/:id", adminHandler.UpdatePlan)
	admin.Delete("/investments/:id", investmentHandler.Cancel)
	admin.Post("/coupons", couponHandler.CreateCoupon)
	admin.Post("/payment-settings", adminHandler.UpsertPaymentSetting)
}
