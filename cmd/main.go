package main

import (
	"log"
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/formflow/forms-service/internal/config"
	"github.com/formflow/forms-service/internal/handlers"
	"github.com/formflow/forms-service/internal/services"
	"github.com/formflow/forms-service/internal/store"
	"github.com/formflow/forms-service/internal/utils"
	"github.com/formflow/forms-service/internal/validator"
	"github.com/formflow/forms-service/pkg"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := utils.NewLogger(cfg.Environment)
	logger.Info("Starting forms service",
		"environment", cfg.Environment,
		"store_backend", cfg.StoreBackend)

	st, err := buildStore(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize store", "error", err)
		return
	}

	publisher, err := cfg.Events.CreateEventPublisher(logger)
	if err != nil {
		logger.Error("Failed to initialize event publisher", "error", err)
		return
	}
	defer publisher.Close()

	v := validator.New()
	formService := services.NewFormService(st, logger)
	submissionService := services.NewSubmissionService(st, publisher, logger, cfg.SendDelay)
	aggregatorService := services.NewAggregatorService(logger)
	backupService := services.NewBackupService(st, logger)
	sessions := services.NewSessionManager()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), utils.RequestLogger(logger))

	hm := handlers.NewHandlerManager(
		formService,
		submissionService,
		aggregatorService,
		backupService,
		sessions,
		v,
		logger,
	)
	hm.SetupRoutes(router)

	logger.Info("Server listening", "port", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Error("Server stopped", "error", err)
	}
}

func buildStore(cfg *config.Config, logger *slog.Logger) (store.Store, error) {
	switch cfg.StoreBackend {
	case config.StoreBackendRedis:
		client, err := pkg.NewRedisClient(cfg)
		if err != nil {
			return nil, err
		}
		return store.NewRedisStore(client, logger), nil
	case config.StoreBackendPostgres:
		db, err := pkg.InitDatabase(cfg)
		if err != nil {
			return nil, err
		}
		return store.NewGormStore(db)
	default:
		logger.Info("Using in-memory store; data is lost on restart")
		return store.NewMemoryStore(), nil
	}
}
