package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"shipping-admin-service/docs"
	"shipping-admin-service/internal/cache"
	"shipping-admin-service/internal/config"
	"shipping-admin-service/internal/events"
	"shipping-admin-service/internal/handlers"
	"shipping-admin-service/internal/middleware"
	"shipping-admin-service/internal/models"
	"shipping-admin-service/internal/repository"
	"shipping-admin-service/internal/secrets"
	"shipping-admin-service/internal/services"
)

// @title Shipping Admin API
// @version 1.0.0
// @description Pincode zones, zone rates, shipping quotes, order charges and bundle pricing

// @host localhost:8093
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

type routeHandlers struct {
	shipping    *handlers.ShippingHandler
	imports     *handlers.ImportHandler
	warehouses  *handlers.WarehouseHandler
	carriers    *handlers.CarrierHandler
	charges     *handlers.OrderChargeHandler
	taxes       *handlers.TaxConfigurationHandler
	bundles     *handlers.BundleVariantHandler
	health      *handlers.HealthHandler
	rateLimiter *middleware.RateLimiter
}

func main() {
	log.Println("Starting Shipping Admin Service...")

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	log.Printf("Configuration loaded successfully")

	appLogger := newLogger(cfg.Server.LogLevel)

	db, err := connectDatabase(cfg.GetDatabaseDSN(), cfg.IsProduction())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Database connected successfully")

	if err := runMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	// Redis is optional; without it pincode lookups always hit Postgres
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Printf("Warning: Failed to parse Redis URL: %v", err)
			log.Println("Continuing without Redis caching...")
		} else {
			redisClient = redis.NewClient(opt)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if err := redisClient.Ping(ctx).Err(); err != nil {
				log.Printf("Warning: Failed to connect to Redis: %v", err)
				log.Println("Continuing without Redis caching...")
				redisClient.Close()
				redisClient = nil
			} else {
				log.Println("✓ Connected to Redis for caching")
			}
			cancel()
		}
	} else {
		log.Println("REDIS_URL not configured, caching disabled")
	}
	pincodeCache := cache.NewPincodeCache(redisClient, cfg.Shipping.PincodeCacheTTL)

	var eventsPublisher *events.Publisher
	var natsStatus handlers.NATSStatus
	if cfg.NATSURL != "" {
		eventsPublisher, err = events.NewPublisher(cfg.NATSURL, appLogger)
		if err != nil {
			log.Printf("WARNING: Failed to initialize events publisher: %v (events won't be published)", err)
		} else {
			defer eventsPublisher.Close()
			natsStatus = eventsPublisher
			log.Println("✓ NATS events publisher initialized")
		}
	} else {
		log.Println("NATS_URL not configured, events disabled")
	}

	var credentialResolver services.CredentialResolver
	if cfg.Secrets.GCPProjectID != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		resolver, err := secrets.NewGCPResolver(ctx, cfg.Secrets.GCPProjectID, cfg.Secrets.CacheTTL)
		cancel()
		if err != nil {
			log.Printf("WARNING: Failed to initialize secret resolver: %v (gcp-secret references will fail)", err)
		} else {
			credentialResolver = resolver
			defer resolver.Close()
			log.Println("✓ Carrier credential resolver initialized (GCP Secret Manager)")
		}
	}

	// Repositories
	pincodeRepo := repository.NewPincodeRepository(db)
	slabRepo := repository.NewWeightSlabRepository(db)
	rateRepo := repository.NewZoneRateRepository(db)
	thresholdRepo := repository.NewFreeShippingRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	warehouseRepo := repository.NewWarehouseRepository(db)
	carrierRepo := repository.NewCarrierConfigRepository(db)
	chargeRepo := repository.NewOrderChargeRepository(db)
	taxRepo := repository.NewTaxConfigurationRepository(db)
	bundleRepo := repository.NewBundleVariantRepository(db)
	log.Println("Repositories initialized")

	// Services
	zoneResolver := services.NewZoneResolver(pincodeRepo, pincodeCache, appLogger)
	settingsService := services.NewSettingsService(settingsRepo, cfg.DefaultSettings(), eventsPublisher)
	rateService := services.NewRateService(slabRepo, rateRepo, thresholdRepo, cfg.Shipping.FreeShippingThreshold, eventsPublisher)
	calculator := services.NewShippingCalculator(zoneResolver, settingsService, rateService, slabRepo, rateRepo, appLogger)
	pincodeService := services.NewPincodeService(pincodeRepo, pincodeCache, eventsPublisher, appLogger)
	analyticsService := services.NewAnalyticsService(pincodeRepo, slabRepo, rateRepo)
	warehouseService := services.NewWarehouseService(warehouseRepo, eventsPublisher)
	carrierService := services.NewCarrierService(carrierRepo, credentialResolver, eventsPublisher, appLogger)
	chargeService := services.NewOrderChargeService(chargeRepo, eventsPublisher)
	taxService := services.NewTaxConfigurationService(taxRepo, eventsPublisher)
	totalsCalculator := services.NewOrderTotalsCalculator(chargeRepo, taxRepo)
	bundleService := services.NewBundleVariantService(bundleRepo, eventsPublisher)
	log.Println("Services initialized")

	h := routeHandlers{
		shipping:    handlers.NewShippingHandler(pincodeService, zoneResolver, rateService, settingsService, calculator, analyticsService),
		imports:     handlers.NewImportHandler(pincodeService),
		warehouses:  handlers.NewWarehouseHandler(warehouseService),
		carriers:    handlers.NewCarrierHandler(carrierService),
		charges:     handlers.NewOrderChargeHandler(chargeService, totalsCalculator),
		taxes:       handlers.NewTaxConfigurationHandler(taxService),
		bundles:     handlers.NewBundleVariantHandler(bundleService),
		health:      handlers.NewHealthHandler(db, redisClient, natsStatus),
		rateLimiter: middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst),
	}
	log.Println("Handlers initialized")

	docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%s", cfg.Server.Port)
	router := setupRouter(cfg, appLogger, h)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Starting server on %s (environment: %s)", srv.Addr, cfg.Server.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down shipping-admin-service...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	if redisClient != nil {
		redisClient.Close()
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	log.Println("Shipping admin service stopped")
}

func newLogger(level string) *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.JSONFormatter{})
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	l.SetLevel(parsed)
	return l
}

// connectDatabase establishes a connection to the PostgreSQL database
func connectDatabase(dsn string, production bool) (*gorm.DB, error) {
	logLevel := logger.Info
	if production {
		logLevel = logger.Warn
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

// runMigrations runs database migrations
func runMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.PincodeZone{},
		&models.WeightSlab{},
		&models.ZoneRate{},
		&models.FreeShippingThreshold{},
		&models.ShippingSettings{},
		&models.Warehouse{},
		&models.CarrierConfig{},
		&models.OrderCharge{},
		&models.TaxConfiguration{},
		&models.BundleVariant{},
	)
}

// setupRouter configures the Gin router with routes and middleware
func setupRouter(cfg *config.Config, appLogger *logrus.Logger, h routeHandlers) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.LoggingMiddleware(appLogger))
	router.Use(middleware.ErrorHandler(appLogger))
	router.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	router.Use(middleware.Metrics())

	router.GET("/health", handlers.HealthCheck)
	router.GET("/livez", h.health.Liveness)
	router.GET("/readyz", h.health.Readiness)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(cfg.Auth.JWTSecret))
	api.Use(middleware.TenantMiddleware())
	api.Use(middleware.RequireTenant())
	api.Use(middleware.RateLimitMiddleware(h.rateLimiter))
	{
		api.GET("/auth/check", handlers.AuthCheck)

		shipping := api.Group("/shipping")
		{
			shipping.GET("/pincodes", h.shipping.ListPincodes)
			shipping.POST("/pincodes", h.shipping.CreatePincode)
			shipping.POST("/pincodes/import", h.imports.ImportPincodes)
			shipping.GET("/pincodes/export", h.imports.ExportPincodes)
			shipping.GET("/pincodes/resolve/:pincode", h.shipping.ResolvePincode)
			shipping.GET("/pincodes/:id", h.shipping.GetPincode)
			shipping.PUT("/pincodes/:id", h.shipping.UpdatePincode)
			shipping.DELETE("/pincodes/:id", h.shipping.DeletePincode)

			shipping.GET("/weight-slabs", h.shipping.ListWeightSlabs)
			shipping.POST("/weight-slabs", h.shipping.CreateWeightSlab)
			shipping.GET("/weight-slabs/:id", h.shipping.GetWeightSlab)
			shipping.PUT("/weight-slabs/:id", h.shipping.UpdateWeightSlab)
			shipping.DELETE("/weight-slabs/:id", h.shipping.DeleteWeightSlab)

			shipping.GET("/zones", h.shipping.ListZones)
			shipping.POST("/zones", h.shipping.CreateZoneRate)
			shipping.PUT("/zones/:id", h.shipping.UpdateZoneRate)
			shipping.DELETE("/zones/:id", h.shipping.DeleteZoneRate)

			shipping.GET("/free-shipping-thresholds", h.shipping.ListFreeShippingThresholds)
			shipping.POST("/free-shipping-thresholds", h.shipping.UpsertFreeShippingThreshold)
			shipping.DELETE("/free-shipping-thresholds/:zone", h.shipping.ResetFreeShippingThreshold)

			shipping.GET("/settings", h.shipping.GetSettings)
			shipping.PUT("/settings", h.shipping.UpdateSettings)

			shipping.POST("/test-calculation", h.shipping.TestCalculation)
			shipping.GET("/analytics", h.shipping.GetAnalytics)

			shipping.GET("/warehouses", h.warehouses.ListWarehouses)
			shipping.POST("/warehouses", h.warehouses.CreateWarehouse)
			shipping.GET("/warehouses/:id", h.warehouses.GetWarehouse)
			shipping.PUT("/warehouses/:id", h.warehouses.UpdateWarehouse)
			shipping.DELETE("/warehouses/:id", h.warehouses.DeleteWarehouse)
			shipping.POST("/warehouses/:id/set-default", h.warehouses.SetDefaultWarehouse)

			shipping.GET("/multi-carrier/carriers", h.carriers.ListCarriers)
			shipping.POST("/multi-carrier/carriers/:id/toggle", h.carriers.ToggleCarrier)
			shipping.PUT("/multi-carrier/carriers/:id/config", h.carriers.UpdateCarrierConfig)
			shipping.PUT("/multi-carrier/carriers/:id/credentials", h.carriers.UpdateCarrierCredentials)
			shipping.POST("/multi-carrier/carriers/:id/test", h.carriers.TestCarrierConnection)
			shipping.POST("/multi-carrier/sync-from-config", h.carriers.SyncFromConfig)
		}

		charges := api.Group("/order-charges")
		{
			charges.GET("", h.charges.ListOrderCharges)
			charges.POST("", h.charges.CreateOrderCharge)
			charges.POST("/update-priority", h.charges.UpdatePriorities)
			charges.POST("/calculate", h.charges.CalculateOrderTotals)
			charges.GET("/:id", h.charges.GetOrderCharge)
			charges.PUT("/:id", h.charges.UpdateOrderCharge)
			charges.DELETE("/:id", h.charges.DeleteOrderCharge)
			charges.PATCH("/:id/toggle", h.charges.ToggleOrderCharge)
		}

		taxes := api.Group("/tax-configurations")
		{
			taxes.GET("", h.taxes.ListTaxConfigurations)
			taxes.POST("", h.taxes.CreateTaxConfiguration)
			taxes.GET("/:id", h.taxes.GetTaxConfiguration)
			taxes.PUT("/:id", h.taxes.UpdateTaxConfiguration)
			taxes.DELETE("/:id", h.taxes.DeleteTaxConfiguration)
			taxes.PATCH("/:id/toggle", h.taxes.ToggleTaxConfiguration)
		}

		api.GET("/products/:productId/bundle-variants", h.bundles.ListBundleVariants)
		api.POST("/products/:productId/bundle-variants", h.bundles.CreateBundleVariant)
		api.POST("/bundle-variants/preview", h.bundles.PreviewBundlePricing)
		api.GET("/bundle-variants/:id", h.bundles.GetBundleVariant)
		api.PUT("/bundle-variants/:id", h.bundles.UpdateBundleVariant)
		api.DELETE("/bundle-variants/:id", h.bundles.DeleteBundleVariant)
	}

	return router
}
