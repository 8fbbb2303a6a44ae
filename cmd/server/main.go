package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"apartment-search/internal/config"
	"apartment-search/internal/handler"
	"apartment-search/internal/repository"
	"apartment-search/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	logger := newLogger(cfg.Logging)
	logger.Infof("Apartment Search Engine %s (built %s, commit %s)", Version, BuildTime, GitCommit)

	gin.SetMode(cfg.Server.GinMode)

	db, err := repository.NewDB(
		cfg.GetPostgreSQLDSN(),
		cfg.PostgreSQL.MaxConnections,
		cfg.PostgreSQL.MaxIdleConnections,
	)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	logger.Info("Connected to PostgreSQL database")

	listingRepo := repository.NewListingRepository(db)
	historyRepo := repository.NewHistoryRepository(db)

	var completer service.Completer
	if cfg.OpenAI.Enabled {
		completer = service.NewOpenAIClient(&cfg.OpenAI)
		logger.Infof("OpenAI client initialized (base: %s, model: %s)", cfg.OpenAI.APIBase, cfg.OpenAI.Model)
	} else {
		logger.Warn("OpenAI is disabled - searches will fall back to schema defaults")
		logger.Warn("Set OPENAI_API_KEY environment variable to enable intent extraction")
	}

	extractor := service.NewIntentExtractor(completer, nil, logger)
	apartments := service.NewApartmentService(listingRepo, logger)
	scorer := service.NewRecommendationScorer(listingRepo, historyRepo, logger)
	searchService := service.NewSearchService(historyRepo, extractor, apartments, scorer, logger)
	logger.Info("Services initialized")

	searchHandler := handler.NewSearchHandler(searchService)
	apartmentHandler := handler.NewApartmentHandler(apartments)

	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Server.AllowedOrigins}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization"}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "apartment-search-engine",
			"version": Version,
		})
	})

	api := router.Group("/api")
	{
		api.POST("/search/apartments", searchHandler.Search)
		api.GET("/search/recommendations/:searchId", searchHandler.Recommendations)
		api.GET("/search/history", searchHandler.History)
		api.GET("/search/popular", searchHandler.Popular)

		api.GET("/apartments", apartmentHandler.List)
		api.POST("/apartments", apartmentHandler.Create)
		api.GET("/apartments/:id", apartmentHandler.Get)
		api.PUT("/apartments/:id", apartmentHandler.Update)
		api.DELETE("/apartments/:id", apartmentHandler.Delete)
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("Starting server on %s", addr)

	go func() {
		if err := router.Run(addr); err != nil {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")
}

func newLogger(cfg config.LoggingConfig) *logrus.Logger {
	logger := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if cfg.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	return logger
}
