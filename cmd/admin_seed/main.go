package main

import (
	"log"
	"os"

	"trivest/internal/config"
	"trivest/internal/models"
	"trivest/internal/money"
	"trivest/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	config.LoadEnv()

	adminPhone := os.Getenv("ADMIN_PHONE")
	adminPassword := os.Getenv("ADMIN_PASSWORD")

	if adminPhone == "" || adminPassword == "" {
		log.Fatal("ADMIN_PHONE and ADMIN_PASSWORD must be set in environment")
	}

	if err := repositories.InitDB(); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer func() {
		if repositories.DB != nil {
			sqlDB, err := repositories.DB.DB()
			if err != nil {
				log.Printf("⚠️ Failed to get SQL DB instance: %v", err)
			} else if err := sqlDB.Close(); err != nil {
				log.Printf("⚠️ Failed to close PostgreSQL connection: %v", err)
			}
		}
		if repositories.CacheService != nil {
			if err := repositories.CacheService.Close(); err != nil {
				log.Printf("⚠️ Failed to close Redis connection: %v", err)
			}
		}
	}()

	seedAdmin(adminPhone, adminPassword)
	seedPlans()
	seedPaymentSettings()
	seedWelcomeCoupon()

	log.Println("✅ Seed complete")
}

func seedAdmin(phone, password string) {
	var existing models.User
	if err := repositories.DB.Where("phone = ?", phone).First(&existing).Error; err == nil {
		log.Println("Admin user already exists")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	admin := models.User{
		Phone:        phone,
		Password:     string(hashed),
		Name:         "Administrator",
		Role:         "admin",
		TokenVersion: 1,
	}
	if err := repositories.DB.Create(&admin).Error; err != nil {
		log.Fatal("Failed to create admin user:", err)
	}
	log.Println("✅ Admin account created")
}

func seedPlans() {
	var count int64
	repositories.DB.Model(&models.Plan{}).Count(&count)
	if count > 0 {
		log.Println("Plans already seeded")
		return
	}

	plans := []models.Plan{
		{Name: "Starter", InvestAmount: money.FromMajor(1000), DailyIncome: money.FromMajor(50), Validity: "30 days", IsActive: true},
		{Name: "Silver", InvestAmount: money.FromMajor(5000), DailyIncome: money.FromMajor(280), Validity: "30 days", IsActive: true},
		{Name: "Gold", InvestAmount: money.FromMajor(10000), DailyIncome: money.FromMajor(600), Validity: "45 days", IsActive: true},
		{Name: "Platinum", InvestAmount: money.FromMajor(25000), DailyIncome: money.FromMajor(1600), Validity: "60 days", IsActive: true},
	}
	for i := range plans {
		if err := repositories.DB.Create(&plans[i]).Error; err != nil {
			log.Fatal("Failed to seed plan:", err)
		}
	}
	log.Printf("✅ Seeded %d plans", len(plans))
}

func seedPaymentSettings() {
	settings := []models.PaymentSetting{
		{Method: "bkash", Number: os.Getenv("BKASH_NUMBER"), IsActive: true},
		{Method: "nagad", Number: os.Getenv("NAGAD_NUMBER"), IsActive: true},
		{Method: "rocket", Number: os.Getenv("ROCKET_NUMBER"), IsActive: true},
	}
	repo := repositories.NewSettingsRepository(repositories.DB)
	for i := range settings {
		if settings[i].Number == "" {
			continue
		}
		if err := repo.Upsert(&settings[i]); err != nil {
			log.Fatal("Failed to seed payment setting:", err)
		}
	}
	log.Println("✅ Payment settings seeded")
}

func seedWelcomeCoupon() {
	code := os.Getenv("WELCOME_COUPON_CODE")
	if code == "" {
		return
	}

	var existing models.Coupon
	if err := repositories.DB.Where("code = ?", code).First(&existing).Error; err == nil {
		log.Println("Welcome coupon already exists")
		return
	}

	bonus, err := money.Parse(config.GetEnv("WELCOME_COUPON_BONUS", "100"))
	if err != nil {
		log.Fatal("Invalid WELCOME_COUPON_BONUS:", err)
	}
	maxUsage := config.GetIntEnv("WELCOME_COUPON_MAX_USAGE", 100)

	coupon := models.Coupon{
		Code:        code,
		BonusAmount: bonus,
		MaxUsage:    &maxUsage,
		IsActive:    true,
	}
	if err := repositories.DB.Create(&coupon).Error; err != nil {
		log.Fatal("Failed to create welcome coupon:", err)
	}
	log.Println("✅ Welcome coupon created")
}
