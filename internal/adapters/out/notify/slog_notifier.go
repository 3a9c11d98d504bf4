// Package notify delivers staging dwell alerts. The default adapter writes
// them to the structured log; swapping in a pager or webhook adapter only
// requires implementing ports.AlertNotifier.
package notify

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// SlogNotifier emits staging alerts as structured log records.
type SlogNotifier struct {
	logger *slog.Logger
}

// NewSlogNotifier creates a log-backed alert notifier.
func NewSlogNotifier(logger *slog.Logger) (*SlogNotifier, error) {
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}
	return &SlogNotifier{logger: logger}, nil
}

// Notify writes the alert to the log. Critical alerts log at error level so
// downstream log-based alerting can page on them.
func (n *SlogNotifier) Notify(ctx context.Context, alert ports.StagingAlert) error {
	level := slog.LevelWarn
	if alert.AlertLevel == ports.AlertCritical {
		level = slog.LevelError
	}

	n.logger.LogAttrs(ctx, level, "staging dwell alert",
		slog.String("orderId", alert.OrderID),
		slog.String("orderNumber", alert.OrderNumber),
		slog.String("stagingAreaId", alert.StagingAreaID),
		slog.String("stagingAreaName", alert.StagingAreaName),
		slog.Int("timeInStaging", alert.TimeInStaging),
		slog.String("status", string(alert.Status)),
		slog.String("alertLevel", string(alert.AlertLevel)),
	)
	return nil
}
