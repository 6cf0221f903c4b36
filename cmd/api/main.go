package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/abdiaxatov/zapchas-dokoni-sub000/internal/cache"
	"github.com/abdiaxatov/zapchas-dokoni-sub000/internal/catalog"
	"github.com/abdiaxatov/zapchas-dokoni-sub000/internal/config"
	"github.com/abdiaxatov/zapchas-dokoni-sub000/internal/database"
	"github.com/abdiaxatov/zapchas-dokoni-sub000/internal/docstore"
	"github.com/abdiaxatov/zapchas-dokoni-sub000/internal/handler"
	"github.com/abdiaxatov/zapchas-dokoni-sub000/internal/middleware"
	"github.com/abdiaxatov/zapchas-dokoni-sub000/internal/repository"
	"github.com/abdiaxatov/zapchas-dokoni-sub000/internal/service"
	"github.com/abdiaxatov/zapchas-dokoni-sub000/internal/utils"
	"github.com/abdiaxatov/zapchas-dokoni-sub000/internal/worker"
)

// main is the application entrypoint for the spare-parts admin API.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Msg("starting zapchas dokoni api")

	// 3. Connect database
	db, err := database.Connect(&cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		fmt.Fprintf(os.Stderr, "database connection failed: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	// 3a. Run migrations
	if err := runMigrations(db.DB); err != nil {
		log.Error().Err(err).Msg("migration failed")
		fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
		os.Exit(1)
	}
	log.Info().Msg("migrations completed successfully")

	// 3b. Connect to Redis
	redisClient, err := cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		log.Error().Err(err).Msg("redis connection failed")
		fmt.Fprintf(os.Stderr, "redis connection failed: %v\n", err)
		os.Exit(1)
	}
	defer redisClient.Close()
	log.Info().Msg("redis connected successfully")

	// 4. Initialize JWT signing
	utils.InitJWT(cfg.JWTSecret)

	// 5. Initialize document store and catalogs
	store := docstore.NewPostgresStore(db)
	productsCatalog := catalog.New("products", store.Collection("products"), catalog.ProductsBundle())
	gmsCatalog := catalog.New("gms", store.Collection("gms"), catalog.GMsBundle())
	salesStore := store.Collection("sales")
	loansStore := store.Collection("loans")

	// 6. Initialize repositories
	adminRepo := repository.NewAdminUserRepository(db)

	// 7. Initialize services
	catalogCache := cache.NewCatalogCache(redisClient, cfg.Cache.CatalogTTL)
	catalogSvc := service.NewCatalogService(catalogCache, productsCatalog, gmsCatalog)
	loanSvc := service.NewLoanService(loansStore, salesStore)
	salesSvc := service.NewSalesService(salesStore, catalogSvc, loanSvc)
	spreadsheetSvc := service.NewSpreadsheetService(catalogSvc)
	adminAuthSvc := service.NewAdminAuthService(adminRepo)

	// 8. Initialize handlers
	rateLimiter := middleware.NewInvalidAuthRateLimiter()
	handlers := &Handlers{
		Health:      handler.NewHealthHandler(db),
		Auth:        handler.NewAuthHandler(adminAuthSvc, rateLimiter),
		Catalog:     handler.NewCatalogHandler(catalogSvc),
		Spreadsheet: handler.NewSpreadsheetHandler(spreadsheetSvc),
		Sales:       handler.NewSalesHandler(salesSvc),
		Loan:        handler.NewLoanHandler(loanSvc),
	}

	// 9. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.LoggingMiddleware())
	setupRoutes(router, handlers, middleware.NewJWTMiddleware())

	// 10. Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 11. Start workers
	go worker.NewLowStockWorker(catalogSvc, cfg.Worker.LowStockInterval).Start(ctx)

	// 12. Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 13. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// 14. Cancel context to stop workers
	cancel()

	// 15. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// Handlers groups all HTTP handlers used by the server.
type Handlers struct {
	Health      *handler.HealthHandler
	Auth        *handler.AuthHandler
	Catalog     *handler.CatalogHandler
	Spreadsheet *handler.SpreadsheetHandler
	Sales       *handler.SalesHandler
	Loan        *handler.LoanHandler
}

// setupRoutes registers all routes.
func setupRoutes(router *gin.Engine, handlers *Handlers, jwtMiddleware *middleware.JWTMiddleware) {
	router.GET("/v1/health", handlers.Health.Check)

	// Admin routes
	admin := router.Group("/v1/admin")
	admin.POST("/auth/login", handlers.Auth.Login)
	admin.Use(jwtMiddleware.Handle())
	{
		// Catalog Management
		admin.GET("/catalogs/:kind/items", handlers.Catalog.ListItems)
		admin.POST("/catalogs/:kind/items", handlers.Catalog.CreateItem)
		admin.GET("/catalogs/:kind/items/:id", handlers.Catalog.GetItem)
		admin.PUT("/catalogs/:kind/items/:id", handlers.Catalog.UpdateItem)
		admin.DELETE("/catalogs/:kind/items/:id", handlers.Catalog.DeleteItem)

		// Stock Operations
		admin.POST("/catalogs/:kind/items/:id/sell", handlers.Catalog.SellItem)
		admin.POST("/catalogs/:kind/items/:id/add-stock", handlers.Catalog.AddStock)
		admin.POST("/catalogs/:kind/items/:id/remove-stock", handlers.Catalog.RemoveStock)
		admin.POST("/catalogs/:kind/stock/bulk", handlers.Catalog.BulkUpdateStock)

		// Spreadsheet Import/Export
		admin.GET("/catalogs/:kind/export", handlers.Spreadsheet.Export)
		admin.POST("/catalogs/:kind/import", handlers.Spreadsheet.Import)

		// Sales
		admin.POST("/sales", handlers.Sales.Checkout)
		admin.GET("/sales", handlers.Sales.ListSales)
		admin.GET("/sales/stats", handlers.Sales.GetStats)
		admin.GET("/sales/:id", handlers.Sales.GetSale)

		// Loans
		admin.GET("/loans", handlers.Loan.ListLoans)
		admin.GET("/loans/:id", handlers.Loan.GetLoan)
		admin.POST("/loans/:id/payments", handlers.Loan.AddPayment)
	}
}

// runMigrations runs database migrations using golang-migrate.
func runMigrations(db *sql.DB) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migration instance: %w", err)
	}

	// Run migrations
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
