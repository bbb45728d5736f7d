package scheduler

import (
	"context"
	"fmt"

	"github.com/amaumene/streamarr/internal/cache"
	"github.com/amaumene/streamarr/internal/controllers"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Scheduler manages scheduled tasks
type Scheduler struct {
	cron             *cron.Cron
	populateCtrl     *controllers.PopulateController
	searchCache      *cache.SearchCache
	populateSchedule string
	logger           *logrus.Logger
}

// NewScheduler creates a new scheduler. An empty populate schedule
// disables the bulk refresh job.
func NewScheduler(populateCtrl *controllers.PopulateController, searchCache *cache.SearchCache, populateSchedule string, logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron:             cron.New(),
		populateCtrl:     populateCtrl,
		searchCache:      searchCache,
		populateSchedule: populateSchedule,
		logger:           logger,
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	s.logger.Info("Starting scheduler")

	if s.populateSchedule != "" {
		_, err := s.cron.AddFunc(s.populateSchedule, func() {
			s.runPopulate()
		})
		if err != nil {
			return fmt.Errorf("failed to add populate job: %w", err)
		}
		s.logger.WithField("schedule", s.populateSchedule).Info("Scheduled bulk populate")
	}

	// Daily at 03:00: drop expired search cache entries
	_, err := s.cron.AddFunc("0 3 * * *", func() {
		s.runCachePrune()
	})
	if err != nil {
		return fmt.Errorf("failed to add cache prune job: %w", err)
	}

	s.cron.Start()
	s.logger.Info("Scheduler started")
	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping scheduler")
	s.cron.Stop()
}

// runPopulate executes the bulk populate job
func (s *Scheduler) runPopulate() {
	s.logger.Info("Running scheduled populate")

	added, err := s.populateCtrl.Run(context.Background())
	if err != nil {
		s.logger.WithError(err).Error("Populate job failed")
		return
	}
	s.logger.WithField("added", added).Info("Populate job completed")
}

// runCachePrune executes the search cache prune job
func (s *Scheduler) runCachePrune() {
	s.logger.Debug("Running search cache prune")

	if err := s.searchCache.Prune(); err != nil {
		s.logger.WithError(err).Error("Search cache prune failed")
	}
}
