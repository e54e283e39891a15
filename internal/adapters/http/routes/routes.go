package routes

import (
	"lendledger/internal/adapters/http/handlers"
	"lendledger/internal/adapters/persistence/cache"
	"lendledger/internal/adapters/persistence/repositories"
	"lendledger/internal/config"
	"lendledger/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, ledgerCache cache.Cache, cfg *config.Config) {
	// Initialize repositories
	loanRepo := repositories.NewLoanRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)

	// Initialize services
	ledgerService := services.NewLedgerService(loanRepo, paymentRepo, ledgerCache, cfg.Redis.LedgerTTL)
	overviewService := services.NewOverviewService(loanRepo, paymentRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db)
	loanHandler := handlers.NewLoanHandler(ledgerService)
	customerHandler := handlers.NewCustomerHandler(overviewService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	setupLoanRoutes(apiV1.Group("/loans"), loanHandler)
	setupCustomerRoutes(apiV1.Group("/customers"), customerHandler)
}

// setupLoanRoutes configures loan and ledger routes
func setupLoanRoutes(router fiber.Router, handler *handlers.LoanHandler) {
	router.Post("/", handler.Create)
	router.Post("/:loan_id/payments", handler.RecordPayment)
	router.Get("/:loan_id/ledger", handler.GetLedger)
}

// setupCustomerRoutes configures customer routes
func setupCustomerRoutes(router fiber.Router, handler *handlers.CustomerHandler) {
	router.Get("/:customer_id/overview", handler.Overview)
}
