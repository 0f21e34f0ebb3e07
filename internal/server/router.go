// Package server assembles the HTTP router: middleware, the activity
// routes, health, metrics and swagger.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"lendhub/internal/activity"
	"lendhub/internal/activity/sources"
	"lendhub/internal/config"
	"lendhub/internal/handlers"
	"lendhub/internal/metrics"
	"lendhub/internal/middleware"
	"lendhub/internal/services"
	"lendhub/internal/validator"

	_ "lendhub/internal/docs" // Import swagger docs
)

// NewAggregator builds the activity aggregator over every database-backed
// source, configured from cfg.
func NewAggregator(cfg *config.Config, db *gorm.DB) (*activity.Aggregator, error) {
	registry, err := sources.NewRegistry(db)
	if err != nil {
		return nil, err
	}

	opts := []activity.Option{
		activity.WithAdapterTimeout(cfg.ActivityAdapterTimeout),
		activity.WithMaxConcurrency(cfg.ActivityMaxConcurrency),
	}
	if cfg.MetricsEnabled {
		opts = append(opts, activity.WithObserver(metrics.Observer{}))
	}
	return activity.NewAggregator(registry, opts...), nil
}

// NewRouter wires services and handlers over db and returns the Gin engine.
// promRegistry may be nil when metrics are disabled.
func NewRouter(cfg *config.Config, db *gorm.DB, promRegistry *prometheus.Registry) (*gin.Engine, error) {
	validator.Register()

	aggregator, err := NewAggregator(cfg, db)
	if err != nil {
		return nil, err
	}

	// Initialize services
	activityService := services.NewActivityService(aggregator)
	organizationService := services.NewOrganizationService(db)
	recorder := services.NewEventRecorder(db)

	// Initialize handlers
	activityHandler := handlers.NewActivityHandler(activityService, organizationService, recorder)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(cors())
	router.NoRoute(middleware.NotFound())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if cfg.MetricsEnabled && promRegistry != nil {
		handler := gin.WrapH(metrics.Handler(promRegistry))
		if cfg.MetricsAPIKey != "" {
			router.GET("/metrics", middleware.APIKeyMiddleware(cfg.MetricsAPIKey), handler)
		} else {
			router.GET("/metrics", handler)
		}
	}

	// API v1 group
	v1 := router.Group("/api/v1")

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	activities := protected.Group("/activities")
	activities.GET("", activityHandler.ListActivities)
	activities.GET("/event-types", activityHandler.ListEventTypes)

	protected.GET("/organizations/:id/activities", activityHandler.ListOrganizationActivities)

	return router, nil
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
