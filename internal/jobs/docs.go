// Package jobs provides scheduled background tasks for the rating and
// lifecycle engine.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic maintenance the request path does not cover.
//
// # Available Jobs
//
// 1. RateCardAuditJob - Scans all rate cards and warns about overlapping
// validity windows on the same route/service pair.
// 2. StaleDraftCancellationJob - Cancels draft orders that sat untouched
// past their maximum age, through the regular transition command with the
// system user as the acting user.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(auditJob, staleDraftJob)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
//   - The audit job never mutates anything; failures are logged and retried
//     on the next tick.
//   - The cancellation job skips orders whose version moved between the scan
//     and the cancel; they are reconsidered on the next run.
//   - Failed job starts will stop any already running jobs.
package jobs
