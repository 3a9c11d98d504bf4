package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/staging"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// Dwell-time thresholds for staged orders.
const (
	stagingWarningAfter  = 60 * time.Minute
	stagingCriticalAfter = 120 * time.Minute
)

// ProcessStagingAlertsCommandHandler performs one monitor sweep: it scans
// every open staging assignment, raises tiered dwell alerts, and hands
// stranded LOADED orders off to the carrier.
//
// The sweep is best-effort per assignment: a failed notification or
// hand-off is logged and the sweep moves on, so one stuck order cannot
// starve the rest of the queue.
type ProcessStagingAlertsCommandHandler struct {
	uowFactory PipelineUoWFactory
	notifier   ports.AlertNotifier
	handoff    HandoffExecutor
	logger     *slog.Logger
	now        func() time.Time
}

// NewProcessStagingAlertsCommandHandler creates the sweep handler.
func NewProcessStagingAlertsCommandHandler(
	uowFactory PipelineUoWFactory,
	notifier ports.AlertNotifier,
	handoff HandoffExecutor,
	logger *slog.Logger,
) (*ProcessStagingAlertsCommandHandler, error) {
	if uowFactory == nil {
		return nil, errs.NewValueIsRequiredError("uowFactory")
	}
	if notifier == nil {
		return nil, errs.NewValueIsRequiredError("notifier")
	}
	if handoff == nil {
		return nil, errs.NewValueIsRequiredError("handoff")
	}
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}

	return &ProcessStagingAlertsCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		handoff:    handoff,
		logger:     logger,
		now:        time.Now,
	}, nil
}

// Handle runs one sweep and returns the alerts it raised.
func (h *ProcessStagingAlertsCommandHandler) Handle(
	ctx context.Context,
	cmd ProcessStagingAlertsCommand,
) ([]ports.StagingAlert, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	overdue, err := h.collectOverdue(ctx)
	if err != nil {
		return nil, err
	}

	alerts := make([]ports.StagingAlert, 0, len(overdue))
	for _, entry := range overdue {
		alerts = append(alerts, entry.alert)

		h.logger.Warn("staging alert detected",
			"orderId", entry.alert.OrderID,
			"orderNumber", entry.alert.OrderNumber,
			"timeInStaging", entry.alert.TimeInStaging,
			"alertLevel", entry.alert.AlertLevel,
		)

		if err = h.notifier.Notify(ctx, entry.alert); err != nil {
			h.logger.Warn("staging alert delivery failed",
				"orderId", entry.alert.OrderID, "error", err)
		}

		if entry.assignment.Status() == staging.AssignmentLoaded {
			h.autoHandoff(ctx, entry)
		}
	}

	return alerts, nil
}

type overdueAssignment struct {
	assignment *staging.Assignment
	alert      ports.StagingAlert
}

// collectOverdue scans all open assignments and keeps those dwelling past
// the warning threshold, resolving order and area details for the alert.
func (h *ProcessStagingAlertsCommandHandler) collectOverdue(ctx context.Context) ([]overdueAssignment, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	assignments, err := uow.StagingAssignmentRepository().GetAllOpen(ctx)
	if err != nil {
		return nil, err
	}

	now := h.now()
	var overdue []overdueAssignment
	for _, assignment := range assignments {
		dwell := assignment.DwellTime(now)
		if dwell < stagingWarningAfter {
			continue
		}

		level := ports.AlertWarning
		if dwell >= stagingCriticalAfter {
			level = ports.AlertCritical
		}

		orderNumber := "UNKNOWN"
		if ord, err := uow.OrderRepository().Get(ctx, assignment.OrderID()); err == nil {
			orderNumber = ord.OrderNumber()
		}

		areaName := ""
		if area, err := uow.StagingAreaRepository().Get(ctx, assignment.StagingAreaID()); err == nil {
			areaName = area.Name()
		}

		overdue = append(overdue, overdueAssignment{
			assignment: assignment,
			alert: ports.StagingAlert{
				OrderID:         assignment.OrderID().String(),
				OrderNumber:     orderNumber,
				StagingAreaID:   assignment.StagingAreaID().String(),
				StagingAreaName: areaName,
				TimeInStaging:   int(dwell.Minutes()),
				Status:          assignment.Status(),
				AlertLevel:      level,
			},
		})
	}

	return overdue, nil
}

// autoHandoff pushes one stranded LOADED order through the carrier
// hand-off. Losing the race to a concurrent pipeline invocation is not a
// failure; the order got shipped either way.
func (h *ProcessStagingAlertsCommandHandler) autoHandoff(ctx context.Context, entry overdueAssignment) {
	h.logger.Info("auto-handoff for loaded order stuck in staging",
		"orderId", entry.alert.OrderID,
		"stagingAreaId", entry.alert.StagingAreaID,
	)

	cmd, err := NewHandoffToTMSCommand(entry.assignment.StagingAreaID(), entry.assignment.OrderID())
	if err != nil {
		h.logger.Error("auto-handoff command rejected",
			"orderId", entry.alert.OrderID, "error", err)
		return
	}

	result, err := h.handoff.Handle(ctx, cmd)
	if err != nil {
		if errors.Is(err, ports.ErrAssignmentAlreadyHandled) ||
			errors.Is(err, ErrOrderNotReadyForHandoff) ||
			errors.Is(err, ErrOrderNotInStagingArea) {
			return
		}
		h.logger.Error("auto-handoff failed",
			"orderId", entry.alert.OrderID, "error", err)
		return
	}

	h.logger.Info("auto-handoff shipped stuck order",
		"orderId", entry.alert.OrderID,
		"shipmentId", result.ShipmentID,
		"carrier", result.CarrierName,
	)
}
