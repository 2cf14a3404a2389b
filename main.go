package main

import (
	"log"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	region := regions[cfg.Region]

	catalogs, err := NewCatalogStore(cfg.CatalogDir)
	if err != nil {
		log.Fatalf("Failed to initialize catalog store: %v", err)
	}
	defer catalogs.Close()

	// Start catalog file watcher in background
	go catalogs.WatchFiles()

	var gateway PaymentGateway
	if cfg.StripeSecretKey != "" {
		gateway = newStripeGateway(cfg.StripeSecretKey, cfg.StripeWebhookSecret)
	} else {
		log.Printf("Stripe secret key not set, payment operations will return configured failures")
	}
	payments := NewPaymentProcessor(gateway)

	server := NewServer(region, catalogs, payments, cfg.CheckoutSuccessURL, cfg.CheckoutCancelURL)

	e := echo.New()

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Routes
	e.GET("/health", server.handleHealth)

	e.POST("/api/process-pdf", server.handleProcessPDF)
	e.POST("/api/search-workflows", server.handleSearchWorkflows)
	e.GET("/api/search-workflows", server.handleSearchWorkflows)
	e.GET("/api/workflows", server.handleListWorkflows)
	e.GET("/api/workflows/:id", server.handleGetWorkflow)
	e.POST("/api/purchase-workflow", server.handlePurchaseWorkflow)

	e.POST("/api/payment/create-intent", server.handleCreateIntent)
	e.POST("/api/payment/create-checkout", server.handleCreateCheckout)
	e.POST("/api/payment/confirm", server.handleConfirmPayment)
	e.POST("/api/payment/verify-session", server.handleVerifySession)
	e.POST("/api/payment/webhook", server.handleWebhook)

	// Admin endpoints for manual catalog reload
	e.POST("/admin/reload-catalogs", server.handleReloadCatalogs)
	e.GET("/admin/catalog-info", server.handleCatalogInfo)

	log.Printf("permitflow started on %s", cfg.Address())
	log.Printf("Active region: %s", region.Name)
	log.Printf("Watching catalog directory: %s", cfg.CatalogDir)

	e.Logger.Fatal(e.Start(cfg.Address()))
}
