package service

import (
	"context"
	"time"

	"ryloze-converter/internal/domain"
)

// CleanupService is the retention sweeper. It periodically removes
// uploads and conversion outputs older than the configured retention
// age, and can be triggered opportunistically after a download.
type CleanupService struct {
	store        *ArtifactStore
	logger       domain.Logger
	retentionAge time.Duration
	interval     time.Duration
	trigger      chan struct{}
}

// NewCleanupService creates a sweeper with the given retention age.
// The periodic sweep runs hourly.
func NewCleanupService(store *ArtifactStore, logger domain.Logger, retentionDays int) *CleanupService {
	if retentionDays < 1 {
		retentionDays = 1
	}
	return &CleanupService{
		store:        store,
		logger:       logger,
		retentionAge: time.Duration(retentionDays) * 24 * time.Hour,
		interval:     time.Hour,
		trigger:      make(chan struct{}, 1),
	}
}

// Run sweeps on a ticker and on demand until ctx is cancelled
func (s *CleanupService) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		case <-s.trigger:
			s.Sweep()
		}
	}
}

// Trigger requests an opportunistic sweep without blocking the caller.
// Used after downloads: once a result has plausibly been retrieved,
// space can be reclaimed early. The channel holds one pending request;
// extra triggers while a sweep is due are dropped.
func (s *CleanupService) Trigger() {
	select {
	case s.trigger <- struct{}{}:
	default:
	}
}

// Sweep removes files older than the retention age from both roots
func (s *CleanupService) Sweep() {
	removed := s.store.PurgeOlderThan(s.store.UploadDir(), s.retentionAge)
	removed += s.store.PurgeOlderThan(s.store.ConvertedDir(), s.retentionAge)
	if removed > 0 {
		s.logger.Info("Retention sweep finished", "removed", removed)
	}
}
