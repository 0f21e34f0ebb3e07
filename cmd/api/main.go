package main

import (
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"lendhub/internal/config"
	"lendhub/internal/database"
	"lendhub/internal/logger"
	"lendhub/internal/metrics"
	"lendhub/internal/server"
)

// @title           Lendhub Activity API
// @version         1.0
// @description     Unified activity and audit feed for the Lendhub lending platform. Merges security, onboarding, document, access and organization events into one paginated timeline.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Console logging until the config tells us where the file sink lives
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if appConfig.LogFile != "" {
		logger.InitWithFile(appConfig.Env, logger.FileOptions{
			Path:       appConfig.LogFile,
			MaxSizeMB:  appConfig.LogMaxSizeMB,
			MaxBackups: appConfig.LogMaxBackups,
			MaxAgeDays: appConfig.LogMaxAgeDays,
		})
	}
	log := logger.Get()

	// Create database manager
	dbManager, err := database.NewManager(database.NewConfig(appConfig))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnf("failed to close database: %v", err)
		}
	}()

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	var promRegistry *prometheus.Registry
	if appConfig.MetricsEnabled {
		promRegistry = prometheus.NewRegistry()
		promRegistry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		metrics.Register(promRegistry)
	}

	router, err := server.NewRouter(appConfig, dbManager.DB(), promRegistry)
	if err != nil {
		return fmt.Errorf("failed to build router: %w", err)
	}

	log.Infof("Starting Lendhub activity server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
