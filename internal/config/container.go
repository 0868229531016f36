package config

import (
	"ryloze-converter/internal/domain"
	"ryloze-converter/internal/repository"
	"ryloze-converter/internal/service"
	"ryloze-converter/pkg/logger"
)

// Container holds all application dependencies
type Container struct {
	Config            domain.Config
	Logger            domain.Logger
	HistoryRepository domain.HistoryRepository
	JobLedger         domain.JobLedger
	ArtifactStore     *service.ArtifactStore
	Converter         *service.Converter
	ConversionService *service.ConversionService
	CleanupService    *service.CleanupService
}

// NewContainer creates a new dependency injection container
func NewContainer() (*Container, error) {
	cfg := NewConfig()
	appLogger := logger.NewLogger(cfg.GetLogLevel())

	// History records go to Supabase when configured; otherwise they
	// stay in memory so conversions keep working in local setups.
	var historyRepo domain.HistoryRepository
	supabaseClient := repository.NewSupabaseClient(cfg, appLogger)
	if err := supabaseClient.Initialize(); err != nil {
		appLogger.Warn("History store not configured, using in-memory history", "reason", err.Error())
		historyRepo = repository.NewMemoryHistoryRepository()
	} else {
		historyRepo = repository.NewSupabaseHistoryRepository(supabaseClient, appLogger)
	}

	store, err := service.NewArtifactStore(cfg.GetUploadDir(), cfg.GetConvertedDir(), cfg.GetMaxFileSize(), appLogger)
	if err != nil {
		return nil, err
	}

	converter := service.NewConverter(store, appLogger)
	ledger := repository.NewMemoryJobLedger()

	conversionService := service.NewConversionService(
		store,
		converter,
		ledger,
		historyRepo,
		appLogger,
		cfg.GetWorkerCount(),
		cfg.GetQueueSize(),
	)

	cleanupService := service.NewCleanupService(store, appLogger, cfg.GetRetentionDays())

	return &Container{
		Config:            cfg,
		Logger:            appLogger,
		HistoryRepository: historyRepo,
		JobLedger:         ledger,
		ArtifactStore:     store,
		Converter:         converter,
		ConversionService: conversionService,
		CleanupService:    cleanupService,
	}, nil
}
