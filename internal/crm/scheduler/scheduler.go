package scheduler

import (
	"context"
	"time"

	"crm-learner/internal/crm/usecase"

	log "github.com/sirupsen/logrus"
)

// SyncScheduler drives the sync engine on a fixed-interval timer. It is
// the single writer to the entity store.
type SyncScheduler struct {
	syncUsecase usecase.SyncUsecase
	interval    time.Duration
	stopChan    chan struct{}
}

// NewSyncScheduler creates a new scheduler
func NewSyncScheduler(syncUsecase usecase.SyncUsecase, interval time.Duration) *SyncScheduler {
	return &SyncScheduler{
		syncUsecase: syncUsecase,
		interval:    interval,
		stopChan:    make(chan struct{}),
	}
}

// Start begins the scheduler loop
func (s *SyncScheduler) Start() {
	log.WithField("interval", s.interval.String()).Info("Starting CRM sync scheduler")

	go func() {
		// Run immediately on start
		s.syncUsecase.SyncAll(context.Background())

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.syncUsecase.SyncAll(context.Background())
			case <-s.stopChan:
				log.Info("CRM sync scheduler stopped")
				return
			}
		}
	}()
}

// Stop gracefully stops the scheduler
func (s *SyncScheduler) Stop() {
	close(s.stopChan)
}
