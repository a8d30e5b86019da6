package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/catalogsync/backend/internal/application/catalog"
	"github.com/catalogsync/backend/internal/application/contentsync"
	identityapp "github.com/catalogsync/backend/internal/application/identity"
	reportapp "github.com/catalogsync/backend/internal/application/report"
	"github.com/catalogsync/backend/internal/infrastructure/auth"
	"github.com/catalogsync/backend/internal/infrastructure/config"
	"github.com/catalogsync/backend/internal/infrastructure/contentful"
	"github.com/catalogsync/backend/internal/infrastructure/logger"
	"github.com/catalogsync/backend/internal/infrastructure/persistence"
	"github.com/catalogsync/backend/internal/infrastructure/scheduler"
	"github.com/catalogsync/backend/internal/interfaces/http/handler"
	"github.com/catalogsync/backend/internal/interfaces/http/middleware"
	"github.com/catalogsync/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting catalog sync backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)

	// Remote catalog source. Missing credentials are fine: sync becomes a
	// no-op until credentials arrive.
	sourceConfig := contentful.NewConfig(cfg.Contentful.SpaceID, cfg.Contentful.AccessToken)
	if cfg.Contentful.Environment != "" {
		sourceConfig.Environment = cfg.Contentful.Environment
	}
	if cfg.Contentful.ContentType != "" {
		sourceConfig.ContentType = cfg.Contentful.ContentType
	}
	catalogSource := contentful.NewClient(sourceConfig)
	if !catalogSource.IsConfigured() {
		log.Warn("Remote catalog source not configured, sync runs will be skipped")
	}

	// Token blacklist: Redis when enabled, in-memory otherwise
	var blacklist auth.TokenBlacklist
	if cfg.Redis.Enabled {
		redisBlacklist, err := auth.NewRedisTokenBlacklist(auth.RedisTokenBlacklistConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisBlacklist.Close(); err != nil {
				log.Error("Error closing Redis connection", zap.Error(err))
			}
		}()
		blacklist = redisBlacklist
		log.Info("Redis token blacklist enabled",
			zap.String("host", cfg.Redis.Host),
			zap.Int("port", cfg.Redis.Port),
		)
	} else {
		blacklist = auth.NewMemoryTokenBlacklist()
	}

	// Initialize application services
	jwtService := auth.NewJWTService(cfg.JWT)
	productService := catalogapp.NewProductService(productRepo)
	syncService := contentsync.NewSyncService(catalogSource, productRepo, cfg.Sync.ContinueOnError, log)
	reportService := reportapp.NewReportService(productRepo)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, log)

	// Seed the admin user if credentials were provided
	if err := authService.EnsureBootstrapUser(context.Background(),
		cfg.Bootstrap.AdminUsername, cfg.Bootstrap.AdminPassword); err != nil {
		log.Fatal("Failed to ensure bootstrap user", zap.Error(err))
	}

	// Start the sync scheduler (if enabled)
	if cfg.Sync.ScheduleEnabled {
		syncScheduler := scheduler.NewSyncScheduler(scheduler.SyncSchedulerConfig{
			Interval:   cfg.Sync.Interval,
			RunOnStart: false,
		}, syncService, log)
		if err := syncScheduler.Start(context.Background()); err != nil {
			log.Fatal("Failed to start sync scheduler", zap.Error(err))
		}
		defer func() {
			if err := syncScheduler.Stop(context.Background()); err != nil {
				log.Error("Error stopping sync scheduler", zap.Error(err))
			}
		}()
		log.Info("Sync scheduler started", zap.Duration("interval", cfg.Sync.Interval))
	}

	// Initialize HTTP handlers
	productHandler := handler.NewProductHandler(productService)
	syncHandler := handler.NewSyncHandler(syncService)
	reportHandler := handler.NewReportHandler(reportService)
	authHandler := handler.NewAuthHandler(authService)
	systemHandler := handler.NewSystemHandler(db)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// Middleware stack in order: request ID, panic recovery, request logging
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", systemHandler.Health)

	// Setup API routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// JWT authentication on all API routes except login
	r.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		SkipPaths: []string{
			"/api/v1/auth/login",
		},
		Logger: log,
	}))

	// Identity routes
	authRoutes := router.NewDomainGroup("auth", "/auth")
	if cfg.HTTP.AuthRateLimitEnabled {
		loginLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		authRoutes.POST("/login", middleware.RateLimit(loginLimiter), authHandler.Login)
		log.Info("Login rate limiting enabled",
			zap.Int("requests", cfg.HTTP.AuthRateLimitRequests),
			zap.Duration("window", cfg.HTTP.AuthRateLimitWindow),
		)
	} else {
		authRoutes.POST("/login", authHandler.Login)
	}
	authRoutes.POST("/logout", authHandler.Logout)

	// Catalog routes
	catalogRoutes := router.NewDomainGroup("catalog", "/products")
	catalogRoutes.POST("", productHandler.Create)
	catalogRoutes.GET("", productHandler.List)
	catalogRoutes.GET("/:id", productHandler.Get)
	catalogRoutes.DELETE("/:id", productHandler.Delete)

	// Sync routes
	syncRoutes := router.NewDomainGroup("contentful", "/contentful")
	syncRoutes.POST("/sync", syncHandler.Trigger)

	// Report routes
	reportRoutes := router.NewDomainGroup("report", "/reports")
	reportRoutes.GET("/deleted-percentage", reportHandler.DeletedPercentage)
	reportRoutes.GET("/non-deleted-with-price", reportHandler.PricedPercentage)
	reportRoutes.GET("/category-distribution", reportHandler.CategoryDistribution)

	r.Register(authRoutes).
		Register(catalogRoutes).
		Register(syncRoutes).
		Register(reportRoutes)

	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
