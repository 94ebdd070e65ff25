package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"shopSense/app/echo-server/router"
	"shopSense/business/auth"
	"shopSense/business/behavior"
	"shopSense/business/intent"
	"shopSense/business/product"
	"shopSense/business/recommend"
	"shopSense/business/respond"
	"shopSense/business/search"
	"shopSense/internal/middleware"
	anthropicRepo "shopSense/internal/repository/anthropic"
	psqlRepo "shopSense/internal/repository/postgres"
	redisRepo "shopSense/internal/repository/redis"
	"shopSense/internal/rest"
	"shopSense/pkg/config"
	"shopSense/pkg/database"
	redisdb "shopSense/pkg/database/redis"
	"shopSense/pkg/logger"
	"shopSense/pkg/metrics"
	"shopSense/pkg/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting ShopSense", "version", cfg.App.Version)

	utils.InitJWT(cfg.JWT.SecretKey)
	metrics.Init()

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	logger.Info("Database connected successfully")

	// Init repo
	productRepo := psqlRepo.NewProductRepository(db)
	feedbackRepo := psqlRepo.NewFeedbackRepository(db)

	// Redis is optional; without it the service runs uncached with
	// plain JWT auth and untracked sessions.
	var profileCache recommend.ProfileCache
	var tokenStore auth.TokenStore
	jwtAuth := middleware.AuthMiddleware()
	authRequired := jwtAuth
	if redisClient, rErr := redisdb.InitRedis(cfg); rErr != nil {
		logger.Warn("Redis unavailable, continuing without profile cache", "error", rErr)
	} else {
		logger.Info("Redis connected successfully")
		profileCache = redisRepo.NewProfileCache(redisClient)
		tokenRepo := redisRepo.NewTokenRepository(redisClient)
		tokenStore = tokenRepo
		authRequired = middleware.AuthMiddlewareWithRedis(tokenRepo)
	}

	// Init service
	var extractor intent.Extractor
	if cfg.Anthropic.APIKey != "" {
		extractor = anthropicRepo.NewExtractor(cfg.Anthropic.APIKey, cfg.Anthropic.Model)
	} else {
		logger.Warn("No Anthropic API key configured, intent extraction is rule-based only")
	}

	behaviorStore := behavior.NewStore(feedbackRepo)
	productService := product.NewService(productRepo)
	intentService := intent.NewService(extractor, 5*time.Second)
	searchEngine := search.NewMemoryEngine(productRepo, nil)
	formatter := respond.NewFormatter(getEnvBaseURL(cfg.Server.Port))
	authService := auth.NewService(tokenStore, 24*time.Hour)

	recommendService := recommend.NewService(
		intentService,
		searchEngine,
		behaviorStore,
		formatter,
		profileCache,
		recommend.Limits{
			SearchDepth: cfg.Pipeline.TopKSearch,
			FilterCap:   cfg.Pipeline.TopKFilter,
			DefaultTopK: cfg.Pipeline.TopKResults,
		},
	)

	// Init handler
	recommendHandler := rest.NewRecommendHandler(recommendService)
	productHandler := rest.NewProductHandler(productService)
	authHandler := rest.NewAuthHandler(authService)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(middleware.TraceMiddleware())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Setup routes
	api := e.Group("/api/v1")
	router.SetAuthRoutes(api, authHandler, jwtAuth)
	router.SetRecommendRoutes(api, recommendHandler, authRequired)
	router.SetupProductRoutes(api, productHandler, authRequired)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}

func getEnvBaseURL(port string) string {
	if base := os.Getenv("APP_BASE_URL"); base != "" {
		return base
	}
	return fmt.Sprintf("http://localhost:%s", port)
}
