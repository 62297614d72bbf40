package main

import (
	api "crm-learner/cmd/api"
	crmdomain "crm-learner/internal/crm/domain"
	crmRepo "crm-learner/internal/crm/repository"
	"crm-learner/internal/crm/scheduler"
	crmUsecase "crm-learner/internal/crm/usecase"
	learningRepo "crm-learner/internal/learning/repository"
	learningUsecase "crm-learner/internal/learning/usecase"
	"crm-learner/pkg/bridge"
	"crm-learner/pkg/config"
	"crm-learner/pkg/database"

	log "github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("Invalid configuration")
	}

	// Initialize local store
	db, err := database.NewSQLiteConnection(cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to open local store")
	}

	// Create schema idempotently on startup
	if err := db.AutoMigrate(&crmdomain.Ticket{}, &crmdomain.Company{}, &crmdomain.Contact{}, &crmdomain.Deal{}); err != nil {
		log.WithError(err).Fatal("Failed to migrate local store")
	}

	// Initialize repositories (dependency injection)
	entityRepo := crmRepo.NewEntityRepository(db)
	insightRepo := learningRepo.NewInsightRepository(db)

	// Initialize bridge client
	bridgeClient := bridge.NewClient(cfg.BridgeURL, cfg.BridgeSecret)

	// Initialize use cases
	syncUsecaseInstance := crmUsecase.NewSyncUsecase(entityRepo, bridgeClient)
	insightUsecaseInstance := learningUsecase.NewInsightUsecase(entityRepo, insightRepo)

	// Start the background sync loop; it is the only writer to the store
	syncScheduler := scheduler.NewSyncScheduler(syncUsecaseInstance, cfg.SyncInterval)
	syncScheduler.Start()

	// Initialize HTTP handler
	handler := api.NewHandler(insightUsecaseInstance)

	log.WithField("port", cfg.Port).Info("Server starting")
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("Failed to start server")
	}
}
