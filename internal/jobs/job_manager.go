package jobs

import (
	"fmt"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	rateCardAuditJob *RateCardAuditJob
	staleDraftJob    *StaleDraftCancellationJob
}

// NewJobManager creates a new job manager over the given jobs.
func NewJobManager(
	rateCardAuditJob *RateCardAuditJob,
	staleDraftJob *StaleDraftCancellationJob,
) *JobManager {
	return &JobManager{
		rateCardAuditJob: rateCardAuditJob,
		staleDraftJob:    staleDraftJob,
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.rateCardAuditJob.Start(); err != nil {
		return fmt.Errorf("failed to start rate card audit job: %w", err)
	}

	if err := jm.staleDraftJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.rateCardAuditJob.Stop()
		return fmt.Errorf("failed to start stale draft cancellation job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.staleDraftJob.Stop()
	jm.rateCardAuditJob.Stop()
}
