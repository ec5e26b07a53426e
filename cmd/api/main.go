package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/dukasmart/phoneshop-api/internal/application/service"
	"github.com/dukasmart/phoneshop-api/internal/config"
	domainRepo "github.com/dukasmart/phoneshop-api/internal/domain/repository"
	"github.com/dukasmart/phoneshop-api/internal/infrastructure/database"
	"github.com/dukasmart/phoneshop-api/internal/infrastructure/repository"
	"github.com/dukasmart/phoneshop-api/internal/presentation/http/handler"
	"github.com/dukasmart/phoneshop-api/internal/presentation/http/routes"
	"github.com/dukasmart/phoneshop-api/pkg/email"
	"github.com/dukasmart/phoneshop-api/pkg/sms"
	"github.com/dukasmart/phoneshop-api/pkg/utils"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize outbound services
	smsSender := sms.NewSenderFromConfig(sms.Config{
		APIURL:    cfg.SMS.APIURL,
		APIKey:    cfg.SMS.APIKey,
		PartnerID: cfg.SMS.PartnerID,
		SenderID:  cfg.SMS.SenderID,
	})
	emailService := email.NewService(email.Config{
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		SMTPUsername: cfg.Email.SMTPUsername,
		SMTPPassword: cfg.Email.SMTPPassword,
		FromName:     cfg.Email.FromName,
		FromEmail:    cfg.Email.FromEmail,
		FrontendURL:  cfg.Email.FrontendURL,
	})

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	resetTokenRepo := repository.NewPasswordResetTokenRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	planRepo := repository.NewInstallmentPlanRepository(db)
	productRepo := repository.NewProductRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	invoiceItemRepo := repository.NewInvoiceItemRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	billRepo := repository.NewSupplierBillRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, resetTokenRepo, jwtManager, emailService)
	userService := service.NewUserService(userRepo)
	customerService := service.NewCustomerService(customerRepo, planRepo, smsSender, cfg.App.Currency)
	productService := service.NewProductService(productRepo)
	saleService := service.NewSaleService(saleRepo, productRepo, customerRepo)
	invoiceService := service.NewInvoiceService(invoiceRepo, invoiceItemRepo, customerRepo, cfg.App.Currency)
	paymentService := service.NewPaymentService(invoiceRepo, billRepo, paymentRepo, smsSender)
	supplierService := service.NewSupplierService(supplierRepo, billRepo, cfg.App.Currency)
	dashboardService := service.NewDashboardService(analyticsRepo, productRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Product:   handler.NewProductHandler(productService),
		Customer:  handler.NewCustomerHandler(customerService),
		Sale:      handler.NewSaleHandler(saleService),
		Invoice:   handler.NewInvoiceHandler(invoiceService, paymentService),
		Supplier:  handler.NewSupplierHandler(supplierService, paymentService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
		User:      handler.NewUserHandler(userService),
	}

	// Background jobs: installment due reminders plus expired-row cleanup
	go runBackgroundJobs(customerService, resetTokenRepo, idempotencyRepo)

	// Setup router
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	// Start server
	port := cfg.App.Port
	if envPort := os.Getenv("PORT"); envPort != "" {
		port = envPort
	}

	log.Printf("%s listening on port %s", cfg.App.Name, port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

const backgroundJobInterval = 24 * time.Hour

// runBackgroundJobs runs the daily maintenance loop: reminder texts to
// installment customers near their plan deadline, and cleanup of expired
// reset tokens and idempotency keys.
func runBackgroundJobs(
	customerService *service.CustomerService,
	resetTokenRepo domainRepo.PasswordResetTokenRepository,
	idempotencyRepo domainRepo.IdempotencyRepository,
) {
	ticker := time.NewTicker(backgroundJobInterval)
	defer ticker.Stop()

	for range ticker.C {
		ctx := context.Background()
		if sent, err := customerService.SendDueReminders(ctx); err != nil {
			log.Printf("due reminder run failed: %v", err)
		} else if sent > 0 {
			log.Printf("sent %d installment due reminders", sent)
		}
		if err := resetTokenRepo.DeleteExpired(ctx); err != nil {
			log.Printf("reset token cleanup failed: %v", err)
		}
		if err := idempotencyRepo.DeleteExpired(ctx); err != nil {
			log.Printf("idempotency key cleanup failed: %v", err)
		}
	}
}
