package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"lendledger/internal/adapters/http/middleware"
	"lendledger/internal/adapters/http/routes"
	"lendledger/internal/adapters/persistence/cache"
	"lendledger/internal/adapters/persistence/models"
	"lendledger/internal/adapters/persistence/repositories"
	"lendledger/internal/config"
	"lendledger/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

func main() {
	// Amounts go over the wire as JSON numbers, not quoted strings
	decimal.MarshalJSONWithoutQuotes = true

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase(db)

	// Ledger view cache (Redis when configured, otherwise pass-through)
	var ledgerCache cache.Cache
	if cfg.Redis.Addr != "" {
		ledgerCache = cache.NewRedisCache(cfg.Redis.Addr)
	} else {
		ledgerCache = cache.NewNoopCache()
	}
	defer func() {
		if err := ledgerCache.Close(); err != nil {
			log.Printf("⚠️ Warning: failed to close ledger cache: %v", err)
		}
	}()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Seed demo customers in development
	if cfg.IsDev() {
		if err := config.NewSeeder(db).Run(); err != nil {
			log.Printf("⚠️ Warning: Failed to seed data: %v", err)
		}
	}

	// Nightly ledger reconciliation report
	if cfg.Recon.Enabled {
		reconService := services.NewReconService(
			repositories.NewLoanRepository(db),
			repositories.NewPaymentRepository(db),
			cfg.Recon.Schedule,
		)
		if err := reconService.Start(); err != nil {
			log.Fatalf("❌ Failed to start reconciliation job: %v", err)
		}
		defer reconService.Stop()
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "lendledger API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db, cache and cfg for dependency injection)
	routes.Setup(app, db, ledgerCache, cfg)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
