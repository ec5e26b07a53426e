package database

import (
	"fmt"
	"log"

	"github.com/dukasmart/phoneshop-api/internal/config"
	"github.com/dukasmart/phoneshop-api/internal/domain/entity"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Info

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// Staff
		&entity.User{},
		&entity.PasswordResetToken{},

		// CRM entities
		&entity.InstallmentPlan{},
		&entity.Customer{},
		&entity.Supplier{},

		// Inventory
		&entity.Product{},

		// Billing entities
		&entity.Sale{},
		&entity.Invoice{},
		&entity.InvoiceItem{},
		&entity.SupplierBill{},
		&entity.Payment{},

		// System entities
		&entity.IdempotencyKey{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// defaultPlans are the repayment schedules the shop offers over the counter
var defaultPlans = []entity.InstallmentPlan{
	{Name: "Lipa Mdogo Mdogo - 30 Days", Days: 30},
	{Name: "Lipa Mdogo Mdogo - 60 Days", Days: 60},
	{Name: "Lipa Mdogo Mdogo - 90 Days", Days: 90},
	{Name: "Weekly - 7 Days", Days: 7},
}

// SeedDefaultData seeds installment plans and the admin user
func SeedDefaultData(db *gorm.DB) error {
	log.Println("Seeding default data...")

	for i := range defaultPlans {
		var existing entity.InstallmentPlan
		if err := db.Where("name = ?", defaultPlans[i].Name).First(&existing).Error; err != nil {
			if err := db.Create(&defaultPlans[i]).Error; err != nil {
				log.Printf("Warning: failed to create installment plan %s: %v", defaultPlans[i].Name, err)
			}
		}
	}

	// Create the admin user if configured via environment variables
	adminUsername := viper.GetString("ADMIN_USERNAME")
	adminEmail := viper.GetString("ADMIN_EMAIL")
	adminPassword := viper.GetString("ADMIN_PASSWORD")

	if adminUsername != "" && adminPassword != "" {
		var existingAdmin entity.User
		if err := db.Where("username = ?", adminUsername).First(&existingAdmin).Error; err == nil {
			log.Printf("Admin user already exists: %s", adminUsername)
			return nil
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("Warning: failed to hash admin password: %v", err)
			return nil
		}

		adminUser := entity.User{
			FirstName: "Shop",
			LastName:  "Admin",
			Username:  adminUsername,
			Email:     adminEmail,
			Password:  string(hashedPassword),
			Role:      entity.RoleAdmin,
			UserLevel: 10,
		}
		if err := db.Create(&adminUser).Error; err != nil {
			log.Printf("Warning: failed to create admin user: %v", err)
		} else {
			log.Printf("Admin user created: %s", adminUsername)
		}
	}

	log.Println("Default data seeding completed")
	return nil
}
