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

	"github.com/dmvas/shop-catalog/internal/config"
	"github.com/dmvas/shop-catalog/internal/database"
	"github.com/dmvas/shop-catalog/internal/handler"
	"github.com/dmvas/shop-catalog/internal/middleware"
	"github.com/dmvas/shop-catalog/internal/repository"
	"github.com/dmvas/shop-catalog/internal/storage"
)

// main is the application entrypoint for the shop catalog API.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Msg("starting catalog api")

	// 3. Connect database
	db, err := database.Connect(&cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		fmt.Fprintf(os.Stderr, "database connection failed: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	// 3a. Run migrations. Schema bootstrap is all-or-nothing: a failed
	// migration aborts startup instead of serving a half-applied schema.
	if err := runMigrations(db.DB); err != nil {
		log.Error().Err(err).Msg("migration failed")
		fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
		os.Exit(1)
	}
	log.Info().Msg("migrations completed successfully")

	// 4. Initialize photo store
	photoStore, diskDir, err := buildPhotoStore(&cfg.Storage)
	if err != nil {
		log.Error().Err(err).Msg("photo store initialization failed")
		fmt.Fprintf(os.Stderr, "photo store initialization failed: %v\n", err)
		os.Exit(1)
	}

	// 5. Initialize repositories
	productRepo := repository.NewProductRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)

	// 6. Initialize handlers
	exposeDetails := cfg.Env != "production"
	productHandler := handler.NewProductHandler(productRepo, photoStore, cfg.Storage.MaxFileBytes, exposeDetails)
	catalogHandler := handler.NewCatalogHandler(catalogRepo, exposeDetails)
	uploadHandler := handler.NewUploadHandler(photoStore, cfg.Storage.MaxFileBytes, exposeDetails)

	// 7. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.MaxMultipartMemory = cfg.Storage.MaxFileBytes
	router.Use(recoveryHandler(exposeDetails))
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.TimeoutMiddleware(cfg.RequestTimeout))
	setupRoutes(router, productHandler, catalogHandler, uploadHandler, diskDir)

	// 8. Start HTTP server
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

	// 9. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// 10. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// setupRoutes registers all routes. diskDir is non-empty only for the disk
// backend, enabling static serving of uploaded files.
func setupRoutes(router *gin.Engine, products *handler.ProductHandler, catalog *handler.CatalogHandler, upload *handler.UploadHandler, diskDir string) {
	api := router.Group("/api")
	{
		api.GET("/categories", catalog.ListCategories)
		api.GET("/manufacturers", catalog.ListManufacturers)

		api.GET("/products", products.ListProducts)
		api.GET("/products/:id", products.GetProduct)
		api.POST("/products", products.CreateProduct)
		api.DELETE("/products/:id", products.DeleteProduct)
	}

	router.POST("/upload", upload.Upload)
	if diskDir != "" {
		router.Static("/uploads", diskDir)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not Found"})
	})
}

// buildPhotoStore selects the photo store backend from configuration. The
// returned directory is empty unless the disk backend is active.
func buildPhotoStore(cfg *config.StorageConfig) (storage.PhotoStore, string, error) {
	if cfg.Backend == "s3" {
		store, err := storage.NewS3Store(cfg)
		return store, "", err
	}
	store, err := storage.NewDiskStore(cfg.UploadDir)
	if err != nil {
		return nil, "", err
	}
	return store, store.Dir(), nil
}

// recoveryHandler converts panics into the documented 500 body, exposing the
// panic message only outside production.
func recoveryHandler(exposeDetails bool) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Error().Interface("panic", recovered).Str("path", c.Request.URL.Path).Msg("panic recovered")
		body := gin.H{"error": "Internal Server Error"}
		if exposeDetails {
			body["message"] = fmt.Sprintf("%v", recovered)
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, body)
	})
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
