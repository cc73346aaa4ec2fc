package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/quickprint-campus/quickprint-api/config"
	"github.com/quickprint-campus/quickprint-api/controllers"
	"github.com/quickprint-campus/quickprint-api/middleware"
	"github.com/quickprint-campus/quickprint-api/models"
	"github.com/quickprint-campus/quickprint-api/services"
	"github.com/quickprint-campus/quickprint-api/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	config.SetLogger(logger)

	logger.Info("Starting QuickPrint Campus API server...", zap.String("env", cfg.GoEnv))

	// Connect to database
	if err := config.ConnectDatabase(cfg.DatabaseURL); err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Auto-migrate database models
	db := config.GetDB()
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}
	logger.Info("Database migration completed successfully")

	store, err := newFileStore(cfg)
	if err != nil {
		logger.Fatal("Failed to initialise file storage", zap.Error(err))
	}

	registry := prometheus.NewRegistry()
	metrics := services.NewMetrics(registry)
	initServices(db, logger, metrics, store, services.NewPDFPageCounter())

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := setupRouter(cfg, logger, metrics, promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server is running", zap.String("addr", "http://localhost:"+cfg.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Shutdown error", zap.Error(err))
	}
}

// newFileStore picks the upload backend named by STORAGE_DRIVER
func newFileStore(cfg *config.Config) (services.FileStore, error) {
	if cfg.StorageDriver == config.StorageDriverS3 {
		return services.NewS3Service(context.Background(), cfg)
	}
	utils.UploadDir = cfg.UploadDir
	return services.NewLocalFileStore(utils.UploadDir, cfg.PublicBaseURL), nil
}

// initServices wires the shared service instances the controllers use
func initServices(db *gorm.DB, logger *zap.Logger, metrics *services.Metrics, store services.FileStore, counter services.PageCounter) {
	services.SetMetrics(metrics)
	authorizer := services.AllowAll{}
	services.InitUserService(db, logger)
	services.InitPricingService(db, logger, authorizer)
	services.InitOrderService(db, logger,
		services.WithOrderAuthorizer(authorizer),
		services.WithOrderMetrics(metrics),
	)
	services.InitUploadService(store, counter, logger)
}

// setupRouter registers every route. metricsHandler may be nil to skip /metrics.
func setupRouter(cfg *config.Config, logger *zap.Logger, metrics *services.Metrics, metricsHandler http.Handler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.Metrics(metrics))
	router.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	if metricsHandler != nil {
		router.GET("/metrics", gin.WrapH(metricsHandler))
	}

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Health check endpoint
		v1.GET("/health", healthCheck)

		// Database status endpoint
		v1.GET("/database/status", databaseStatus)

		v1.POST("/users", controllers.CreateUser)
		v1.GET("/users/:id", controllers.GetUser)

		orders := v1.Group("/orders")
		{
			orders.POST("", controllers.CreateOrder)
			orders.GET("/shop/:shop_id", controllers.ListShopOrders)
			orders.GET("/:id", controllers.GetOrder)
			orders.PATCH("/:id/status", controllers.UpdateOrderStatus)
			orders.PATCH("/items/:item_id/status", controllers.UpdateItemStatus)
		}

		pricing := v1.Group("/pricing/shop/:shop_id")
		{
			pricing.GET("", controllers.GetShopPricing)
			pricing.POST("", controllers.CreateShopPricing)
			pricing.PUT("", controllers.UpdateShopPricing)
		}

		v1.POST("/upload", controllers.UploadFile)
		if cfg.StorageDriver != config.StorageDriverS3 {
			v1.GET("/uploads/:filename", controllers.GetUploadedFile)
		}
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "QuickPrint Campus API is running",
	})
}

// databaseStatus checks database connectivity and returns table information
func databaseStatus(c *gin.Context) {
	db := config.GetDB()
	if db == nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Database is not initialized",
			},
		})
		return
	}

	// Get the underlying SQL database to check connection
	sqlDB, err := db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to get database instance",
			},
		})
		return
	}

	// Ping the database to verify connection
	if err := sqlDB.PingContext(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_CONNECTION_ERROR",
				"message": "Database connection failed",
			},
		})
		return
	}

	tables, err := db.WithContext(c.Request.Context()).Migrator().GetTables()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_QUERY_ERROR",
				"message": "Failed to query tables",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Database connected",
		"tables":  tables,
	})
}
