package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"kivi-backend/internal/cache"
	"kivi-backend/internal/config"
	"kivi-backend/internal/database"
	"kivi-backend/internal/db"
	"kivi-backend/internal/handlers"
	"kivi-backend/internal/health"
	internalhttp "kivi-backend/internal/http"
	"kivi-backend/internal/middleware"
	"kivi-backend/internal/repositories"
	"kivi-backend/internal/services"
	"kivi-backend/internal/storage"
)

func main() {
	cfg := config.Load()

	pool := db.Connect(cfg)
	defer pool.Close()

	migrator := database.NewMigrator(pool, "migrations")
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	if err := migrator.RunMigrations(ctx); err != nil {
		cancel()
		log.Fatalf("[Migrate] %v", err)
	}
	cancel()

	if err := cache.Init(); err != nil {
		log.Printf("[Cache] Redis unavailable, summaries served from database: %v", err)
	} else {
		log.Printf("[Cache] Redis connected")
	}

	archiver := storage.NewArchiver(cfg)
	if archiver != nil {
		log.Printf("[Archive] Document archiving enabled")
	}

	// Repositories
	customerRepo := repositories.NewCustomerRepository(pool)
	vendorRepo := repositories.NewVendorRepository(pool)
	productRepo := repositories.NewProductRepository(pool)
	orderRepo := repositories.NewOrderRepository(pool)
	chargeRepo := repositories.NewChargeRepository(pool)
	paymentRepo := repositories.NewPaymentRepository(pool)
	lotRepo := repositories.NewLotRepository(pool)
	vendorPriceRepo := repositories.NewVendorPriceRepository(pool)
	accountingRepo := repositories.NewAccountingRepository(pool)

	// Services
	paymentService := services.NewPaymentService(paymentRepo, accountingRepo)
	accountingService := services.NewAccountingService(accountingRepo, lotRepo)
	reassignmentService := services.NewReassignmentService(lotRepo)
	chargeService := services.NewChargeService(chargeRepo)
	lotService := services.NewLotService(lotRepo)
	vendorPriceService := services.NewVendorPriceService(vendorPriceRepo)
	reportService := services.NewReportService(customerRepo, chargeRepo, paymentRepo, vendorPriceRepo, archiver)

	// Handlers
	customerHandler := handlers.NewCustomerHandler(customerRepo)
	vendorHandler := handlers.NewVendorHandler(vendorRepo)
	productHandler := handlers.NewProductHandler(productRepo)
	orderHandler := handlers.NewOrderHandler(orderRepo)
	chargeHandler := handlers.NewChargeHandler(chargeService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	accountingHandler := handlers.NewAccountingHandler(accountingService, reassignmentService)
	lotHandler := handlers.NewLotHandler(lotService)
	vendorPriceHandler := handlers.NewVendorPriceHandler(vendorPriceService)
	reportHandler := handlers.NewReportHandler(reportService)
	healthHandler := handlers.NewHealthHandler(health.NewHealthChecker(pool))

	router := internalhttp.NewRouter(
		customerHandler,
		vendorHandler,
		productHandler,
		orderHandler,
		chargeHandler,
		paymentHandler,
		accountingHandler,
		lotHandler,
		vendorPriceHandler,
		reportHandler,
		healthHandler,
	)

	corsHandler := middleware.NewCORS(cfg)
	handler := middleware.PanicRecovery(middleware.MetricsMiddleware(corsHandler(router)))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("[Server] Listening on %s", addr)
	if err := server.ListenAndServe(); err != nil {
		log.Fatalf("[Server] %v", err)
	}
}
