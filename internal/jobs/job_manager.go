package jobs

import (
	"fmt"
	"log/slog"
	"time"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	stalledOrderMonitorJob *StalledOrderMonitorJob
}

func NewJobManager(
	stalledOrdersHandler StalledOrdersHandler,
	stalledOrderSchedule string,
	stalledOrderAfter time.Duration,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		stalledOrderMonitorJob: NewStalledOrderMonitorJob(
			stalledOrdersHandler, stalledOrderSchedule, stalledOrderAfter, logger,
		),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.stalledOrderMonitorJob.Start(); err != nil {
		return fmt.Errorf("failed to start stalled order monitor job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.stalledOrderMonitorJob.Stop()
}
