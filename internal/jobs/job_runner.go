package jobs

import (
	"time"

	"campus-housing-backend/internal/config"
	"campus-housing-backend/internal/logger"
	"campus-housing-backend/internal/repository"
	"campus-housing-backend/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	listings repository.ListingRepository
	cache    service.ListingCache
	events   service.EventPublisher
	config   *config.Config
	now      func() time.Time
}

// NewJobRunner creates a job runner. cache and events may be nil.
func NewJobRunner(listings repository.ListingRepository, cache service.ListingCache, events service.EventPublisher, cfg *config.Config) *JobRunner {
	return &JobRunner{
		listings: listings,
		cache:    cache,
		events:   events,
		config:   cfg,
		now:      time.Now,
	}
}

func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	start := jr.now()
	jobFunc()
	logger.Info("Job completed", "job", jobName, "duration_ms", jr.now().Sub(start).Milliseconds())
}

// RunAllNightlyJobs runs all nightly jobs (for manual execution)
func (jr *JobRunner) RunAllNightlyJobs() {
	jr.DeactivateExpiredListings()
}
