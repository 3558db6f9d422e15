package jobs

import (
	"context"
	"fmt"
	"log/slog"

	"shipping/internal/core/domain/model/refdata"
	"shipping/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// RateCardAuditJob periodically scans all rate cards for overlapping
// validity windows on the same route and service. Overlaps are legal input
// (the resolver breaks the tie by effective date) but usually mean someone
// forgot to close the previous card, so they are worth flagging.
type RateCardAuditJob struct {
	refRepo ports.ReferenceRepository
	spec    string
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewRateCardAuditJob creates a job that audits rate cards on the given cron
// schedule.
func NewRateCardAuditJob(refRepo ports.ReferenceRepository, spec string, logger *slog.Logger) *RateCardAuditJob {
	return &RateCardAuditJob{
		refRepo: refRepo,
		spec:    spec,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "rate_card_audit_job"),
	}
}

// Start begins the audit job on its schedule.
func (j *RateCardAuditJob) Start() error {
	_, err := j.cron.AddFunc(j.spec, func() {
		ctx := context.Background()
		if err := j.run(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Rate card audit failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Rate card audit job started", "schedule", j.spec)
	return nil
}

// Stop stops the audit job.
func (j *RateCardAuditJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Rate card audit job stopped")
}

func (j *RateCardAuditJob) run(ctx context.Context) error {
	cards, err := j.refRepo.GetAllRateCards(ctx)
	if err != nil {
		return err
	}

	byPair := make(map[string][]refdata.RateCard)
	for _, card := range cards {
		key := fmt.Sprintf("%s/%s", card.RouteID(), card.ServiceID())
		byPair[key] = append(byPair[key], card)
	}

	for _, pairCards := range byPair {
		for i := 0; i < len(pairCards); i++ {
			for k := i + 1; k < len(pairCards); k++ {
				if pairCards[i].Overlaps(pairCards[k]) {
					j.logger.WarnContext(ctx, "Overlapping rate card validity windows",
						"routeId", pairCards[i].RouteID(),
						"serviceId", pairCards[i].ServiceID(),
						"cardId", pairCards[i].ID(),
						"otherCardId", pairCards[k].ID(),
					)
				}
			}
		}
	}

	return nil
}
