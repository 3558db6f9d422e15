package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"
	"shipping/internal/core/ports"
	"shipping/internal/pkg/errs"

	"github.com/robfig/cron/v3"
)

// StaleDraftCancellationJob cancels draft orders that sat untouched past
// their maximum age. Each cancellation goes through the regular transition
// command, so it lands in the order's history with the system user as the
// acting user and respects optimistic locking.
type StaleDraftCancellationJob struct {
	orders       ports.OrderRepository
	handler      commands.TransitionShippingOrderCommandHandler
	maxAge       time.Duration
	systemUserID kernel.UUID
	spec         string
	cron         *cron.Cron
	logger       *slog.Logger
}

// NewStaleDraftCancellationJob creates a job that cancels drafts older than
// maxAge on the given cron schedule.
func NewStaleDraftCancellationJob(
	orders ports.OrderRepository,
	handler commands.TransitionShippingOrderCommandHandler,
	maxAge time.Duration,
	systemUserID kernel.UUID,
	spec string,
	logger *slog.Logger,
) *StaleDraftCancellationJob {
	return &StaleDraftCancellationJob{
		orders:       orders,
		handler:      handler,
		maxAge:       maxAge,
		systemUserID: systemUserID,
		spec:         spec,
		cron:         cron.New(cron.WithSeconds()),
		logger:       logger.With("component", "stale_draft_cancellation_job"),
	}
}

// Start begins the cancellation job on its schedule.
func (j *StaleDraftCancellationJob) Start() error {
	_, err := j.cron.AddFunc(j.spec, func() {
		ctx := context.Background()
		if err := j.run(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Stale draft cancellation failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stale draft cancellation job started",
		"schedule", j.spec, "maxAge", j.maxAge)
	return nil
}

// Stop stops the cancellation job.
func (j *StaleDraftCancellationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Stale draft cancellation job stopped")
}

func (j *StaleDraftCancellationJob) run(ctx context.Context) error {
	cutoff := time.Now().Add(-j.maxAge)

	drafts, err := j.orders.GetAllDraftsOlderThan(ctx, cutoff)
	if err != nil {
		return err
	}

	for _, draft := range drafts {
		cmd, cmdErr := commands.NewTransitionShippingOrderCommand(
			draft.ID(), order.ActionCancel, j.systemUserID,
		)
		if cmdErr != nil {
			return cmdErr
		}

		if handleErr := j.handler.Handle(ctx, cmd); handleErr != nil {
			// A version conflict means someone touched the order between the
			// scan and the cancel; it will be reconsidered on the next run.
			var versionErr *errs.VersionIsInvalidError
			if errors.As(handleErr, &versionErr) {
				j.logger.WarnContext(ctx, "Skipped stale draft", "orderId", draft.ID(), "error", handleErr)
				continue
			}

			j.logger.ErrorContext(ctx, "Failed to cancel stale draft", "orderId", draft.ID(), "error", handleErr)
			continue
		}

		j.logger.InfoContext(ctx, "Cancelled stale draft", "orderId", draft.ID(), "cutoff", cutoff)
	}

	return nil
}
