package jobs

import (
	"context"
	"log/slog"
	"time"

	"storefront/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// StalledOrdersHandler finds undelivered orders older than a cutoff.
type StalledOrdersHandler interface {
	Handle(ctx context.Context, query queries.GetStalledOrdersQuery) ([]queries.GetStalledOrdersQueryResponse, error)
}

// StalledOrderMonitorJob logs a warning for every order that is still not
// delivered olderThan after it was placed.
type StalledOrderMonitorJob struct {
	handler   StalledOrdersHandler
	schedule  string
	olderThan time.Duration
	cron      *cron.Cron
	logger    *slog.Logger
	now       func() time.Time
}

func NewStalledOrderMonitorJob(
	handler StalledOrdersHandler,
	schedule string,
	olderThan time.Duration,
	logger *slog.Logger,
) *StalledOrderMonitorJob {
	return &StalledOrderMonitorJob{
		handler:   handler,
		schedule:  schedule,
		olderThan: olderThan,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "stalled_order_monitor_job"),
		now:       time.Now,
	}
}

// Start registers the job with its six-field cron schedule and starts it.
func (j *StalledOrderMonitorJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stalled order monitor started",
		slog.String("schedule", j.schedule),
		slog.Duration("older_than", j.olderThan),
	)
	return nil
}

// Run performs a single check and returns the number of stalled orders found.
func (j *StalledOrderMonitorJob) Run(ctx context.Context) int {
	query, err := queries.NewGetStalledOrdersQuery(j.olderThan, j.now())
	if err != nil {
		j.logger.ErrorContext(ctx, "Stalled order monitor misconfigured", "error", err)
		return 0
	}

	stalled, err := j.handler.Handle(ctx, query)
	if err != nil {
		j.logger.ErrorContext(ctx, "Stalled order monitor failed", "error", err)
		return 0
	}

	for _, o := range stalled {
		j.logger.WarnContext(ctx, "Order is stalled",
			slog.String("order_id", o.ID.String()),
			slog.String("status", o.Status.String()),
			slog.Time("created_at", o.CreatedAt),
			slog.Duration("age", o.Age),
		)
	}
	return len(stalled)
}

// Stop waits for a running check to finish.
func (j *StalledOrderMonitorJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Stalled order monitor stopped")
}
