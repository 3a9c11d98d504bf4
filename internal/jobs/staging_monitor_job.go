package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultMonitorInterval is how often the staging monitor sweeps when no
// interval is configured.
const DefaultMonitorInterval = 5 * time.Minute

// StagingMonitorJob periodically sweeps open staging assignments, raising
// dwell alerts and handing stranded LOADED orders off to the carrier.
type StagingMonitorJob struct {
	handler  *commands.ProcessStagingAlertsCommandHandler
	cron     *cron.Cron
	interval time.Duration
	logger   *slog.Logger
}

// NewStagingMonitorJob creates the staging monitor sweep job.
// A non-positive interval falls back to DefaultMonitorInterval.
func NewStagingMonitorJob(
	handler *commands.ProcessStagingAlertsCommandHandler,
	interval time.Duration,
	logger *slog.Logger,
) *StagingMonitorJob {
	if interval <= 0 {
		interval = DefaultMonitorInterval
	}

	return &StagingMonitorJob{
		handler:  handler,
		cron:     cron.New(),
		interval: interval,
		logger:   logger.With("component", "staging_monitor_job"),
	}
}

// Start begins the periodic staging sweep.
func (j *StagingMonitorJob) Start() error {
	_, err := j.cron.AddFunc(fmt.Sprintf("@every %s", j.interval), func() {
		ctx := context.Background()

		alerts, handleErr := j.handler.Handle(ctx, commands.NewProcessStagingAlertsCommand())
		if handleErr != nil {
			j.logger.ErrorContext(ctx, "Staging monitor sweep failed", "error", handleErr)
			return
		}

		if len(alerts) > 0 {
			j.logger.InfoContext(ctx, "Staging monitor sweep completed", "alerts", len(alerts))
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(),
		"Staging monitor job started", "interval", j.interval.String())
	return nil
}

// Stop stops the staging monitor job.
func (j *StagingMonitorJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Staging monitor job stopped")
}
