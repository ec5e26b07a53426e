package routes

import (
	"time"

	"github.com/dukasmart/phoneshop-api/internal/config"
	domainRepo "github.com/dukasmart/phoneshop-api/internal/domain/repository"
	"github.com/dukasmart/phoneshop-api/internal/presentation/http/handler"
	"github.com/dukasmart/phoneshop-api/internal/presentation/http/middleware"
	"github.com/dukasmart/phoneshop-api/pkg/utils"
	"github.com/gin-gonic/gin"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	Product   *handler.ProductHandler
	Customer  *handler.CustomerHandler
	Sale      *handler.SaleHandler
	Invoice   *handler.InvoiceHandler
	Supplier  *handler.SupplierHandler
	Dashboard *handler.DashboardHandler
	User      *handler.UserHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))
	router.Use(middleware.MaintenanceMode(deps.Cfg.App.MaintenanceMode))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-user rate limiter
		rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.Refresh)
		auth.POST("/forgot-password", h.Auth.ForgotPassword)
		auth.POST("/reset-password", h.Auth.ResetPassword)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Money-moving POSTs replay their cached response when retried with
	// the same Idempotency-Key.
	idem := middleware.IdempotencyRequired(middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo})

	// Profile
	protected.GET("/profile", h.Auth.Profile)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	// Dashboard
	protected.GET("/dashboard", h.Dashboard.Stats)

	// Inventory
	products := protected.Group("/products")
	{
		products.GET("", h.Product.List)
		products.POST("", h.Product.Create)
		products.GET("/low-stock", h.Product.LowStock)
		products.GET("/imei/:imei", h.Product.GetByIMEI)
		products.GET("/:id", h.Product.Get)
		products.PUT("/:id", h.Product.Update)
		products.DELETE("/:id", h.Product.Delete)
	}

	// Customers and installment plans
	customers := protected.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.GET("/debtors", h.Customer.ListDebtors)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", h.Customer.Delete)
		customers.POST("/:id/deposits", idem, h.Customer.RecordDeposit)
	}
	plans := protected.Group("/installment-plans")
	{
		plans.GET("", h.Customer.ListPlans)
		plans.POST("", middleware.RequireAdmin(), h.Customer.CreatePlan)
	}

	// Sales
	sales := protected.Group("/sales")
	{
		sales.GET("", h.Sale.List)
		sales.POST("", idem, h.Sale.Create)
		sales.GET("/:id", h.Sale.Get)
	}

	// Invoices and quotations
	invoices := protected.Group("/invoices")
	{
		invoices.GET("", h.Invoice.List)
		invoices.POST("", h.Invoice.Create)
		invoices.POST("/pay", idem, h.Invoice.Pay)
		invoices.PUT("/pay", h.Invoice.Pay)
		invoices.GET("/number/:number", h.Invoice.GetByNumber)
		invoices.GET("/number/:number/items", h.Invoice.Items)
		invoices.GET("/:id", h.Invoice.Get)
		invoices.GET("/:id/payments", h.Invoice.Payments)
		invoices.POST("/:id/convert", h.Invoice.ConvertQuotation)
		invoices.DELETE("/:id", h.Invoice.Delete)
	}

	// Suppliers and bills (admin only)
	suppliers := protected.Group("/suppliers")
	suppliers.Use(middleware.RequireAdmin())
	{
		suppliers.GET("", h.Supplier.List)
		suppliers.POST("", h.Supplier.Create)
		suppliers.POST("/pay", idem, h.Supplier.PayBill)
		suppliers.GET("/:id", h.Supplier.Get)
		suppliers.PUT("/:id", h.Supplier.Update)
		suppliers.DELETE("/:id", h.Supplier.Delete)
	}
	bills := protected.Group("/supplier-bills")
	bills.Use(middleware.RequireAdmin())
	{
		bills.GET("", h.Supplier.ListBills)
		bills.POST("", h.Supplier.CreateBill)
		bills.POST("/pay", idem, h.Supplier.PayBill)
		bills.GET("/:id", h.Supplier.GetBill)
		bills.DELETE("/:id", h.Supplier.DeleteBill)
	}

	// Staff management (admin only)
	users := protected.Group("/users")
	users.Use(middleware.RequireAdmin())
	{
		users.GET("", h.User.List)
		users.POST("", h.User.Create)
		users.GET("/:id", h.User.Get)
		users.PUT("/:id", h.User.Update)
		users.DELETE("/:id", h.User.Delete)
	}
}
