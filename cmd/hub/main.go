package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clubhub/internal/cache"
	"clubhub/internal/core/services"
	httphandlers "clubhub/internal/handlers/http"
	"clubhub/internal/infrastructure/clubs"
	"clubhub/internal/infrastructure/jumpapi"
	"clubhub/internal/infrastructure/middleware"
	"clubhub/internal/infrastructure/monitoring"
	"clubhub/internal/infrastructure/storage"
	"clubhub/pkg/config"
	"clubhub/pkg/logger"
	"clubhub/pkg/retry"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	startTime := time.Now()

	// Try multiple config paths
	configPaths := []string{
		"configs/config.yaml",
		"./configs/config.yaml",
		"/etc/clubhub/config.yaml",
		"config.yaml",
	}

	var cfg *config.Config
	var err error

	for _, path := range configPaths {
		cfg, err = config.Load(path)
		if err == nil {
			break
		}
	}

	if err != nil {
		// Fallback to defaults if config cannot be loaded
		cfg = config.DefaultConfig()
	}

	// Initialize logger
	zapLogger := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLogger.Sync()

	log := zapLogger.Sugar()

	// Durable key-value tier (Redis with in-memory fallback)
	storeFactory, err := storage.NewFactory(cfg, log)
	if err != nil {
		log.Fatalw("failed to create storage factory", "error", err)
	}
	defer storeFactory.Close()

	kvStore := storeFactory.CreateKeyValueStore()

	// Club catalog
	clubRepo, err := clubs.OpenSQLite(cfg.Clubs.DBPath)
	if err != nil {
		log.Fatalw("failed to open club catalog", "error", err, "path", cfg.Clubs.DBPath)
	}
	defer clubRepo.Close()

	// Monitoring
	cacheCollector := monitoring.NewCacheCollector()
	upstreamCollector := monitoring.NewUpstreamCollector()

	// Remote content API client
	retryCfg := retry.Config{
		Enabled:      cfg.Retry.Enabled,
		MaxAttempts:  cfg.Retry.MaxAttempts,
		InitialDelay: cfg.Retry.InitialDelay,
		MaxDelay:     cfg.Retry.MaxDelay,
		Multiplier:   cfg.Retry.Multiplier,
		Jitter:       cfg.Retry.Jitter,
	}
	apiClient := jumpapi.NewClient(
		cfg.ContentAPI.BaseURL,
		cfg.ContentAPI.APIKey,
		cfg.ContentAPI.RequestTimeout,
		retryCfg,
		upstreamCollector,
		log,
	)

	// Two-tier content cache
	contentCache := cache.New(kvStore, log, cacheCollector)

	// Initialize services
	accessService := services.NewAccessService()
	contentService := services.NewContentService(apiClient, contentCache, clubRepo, cfg.ContentAPI.PageLimit, log)
	clubService := services.NewClubService(clubRepo, kvStore, log)
	favoritesService := services.NewFavoritesService(kvStore, log)
	authService := services.NewAuthService(apiClient, clubRepo, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, log)

	// Initialize HTTP handlers
	authHandler := httphandlers.NewAuthHandler(authService)
	contentHandler := httphandlers.NewContentHandler(contentService, accessService, clubService)
	clubHandler := httphandlers.NewClubHandler(clubService)
	favoritesHandler := httphandlers.NewFavoritesHandler(favoritesService)

	// Configure Gin
	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.ErrorHandlerMiddleware(log))
	router.Use(middleware.NewRateLimitMiddleware(cfg))

	optionalAuth := middleware.OptionalAuthMiddleware(authService)
	requireAuth := middleware.AuthMiddleware(authService)

	authHandler.SetupRoutes(router, requireAuth)
	contentHandler.SetupRoutes(router, optionalAuth, requireAuth)
	clubHandler.SetupRoutes(router, requireAuth)
	favoritesHandler.SetupRoutes(router, requireAuth)

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"uptime":    time.Since(startTime).String(),
		})
	})

	// Readiness endpoint (checks the durable tier when Redis is enabled)
	router.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := storeFactory.HealthCheck(ctx); err != nil {
			c.JSON(503, gin.H{
				"status":       "not_ready",
				"timestamp":    time.Now(),
				"dependencies": "unhealthy",
				"error":        err.Error(),
			})
			return
		}

		c.JSON(200, gin.H{
			"status":       "ready",
			"timestamp":    time.Now(),
			"dependencies": "ok",
		})
	})

	// Prometheus metrics endpoint
	if cfg.Monitoring.PrometheusEnabled {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
		log.Info("Prometheus metrics enabled")
	}

	// Create HTTP server with timeouts
	srv := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	serverErr := make(chan error, 1)
	go func() {
		log.Infof("Starting ClubHub server on %s", cfg.Server.Address)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	// Wait for shutdown signals or server error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		log.Fatalw("Server failed", "error", err)
	case sig := <-sigChan:
		log.Infow("Received shutdown signal", "signal", sig)
	}

	log.Info("Shutting down ClubHub server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("Error during server shutdown", "error", err)
		if closeErr := srv.Close(); closeErr != nil {
			log.Errorw("Error force closing server", "error", closeErr)
		}
	} else {
		log.Info("Server shutdown gracefully")
	}

	if err := storeFactory.Close(); err != nil {
		log.Errorw("Error closing storage factory", "error", err)
	}

	log.Info("ClubHub server stopped")
}
