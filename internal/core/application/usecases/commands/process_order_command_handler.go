package commands

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/staging"
	"fulfillment/internal/core/domain/services/validation"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// Pipeline outcome statuses reported to the caller. Allocation failures
// pass the allocation service's own status through unchanged.
const (
	StatusValidationFailed      = "VALIDATION_FAILED"
	StatusInsufficientInventory = "INSUFFICIENT_INVENTORY"
	StatusPickFailed            = "PICK_FAILED"
	StatusStagingFailed         = "STAGING_FAILED"
	StatusProcessingError       = "PROCESSING_ERROR"
	StatusShipped               = "SHIPPED"
)

// ProcessingResult is the structured outcome of one pipeline run. It is
// the sole contract surfaced to callers; pipeline failures are reported
// here, never as Go errors.
type ProcessingResult struct {
	Success        bool     `json:"success"`
	OrderID        string   `json:"orderId"`
	Status         string   `json:"status"`
	Message        string   `json:"message"`
	Warnings       []string `json:"warnings,omitempty"`
	Errors         []string `json:"errors,omitempty"`
	ShipmentID     string   `json:"shipmentId,omitempty"`
	TrackingNumber string   `json:"trackingNumber,omitempty"`
}

// orderLocks serializes pipeline runs per order. Two concurrent runs for
// the same order would race on stage transitions; runs for different
// orders proceed in parallel.
type orderLocks struct {
	locks sync.Map
}

func (l *orderLocks) lock(orderID string) func() {
	v, _ := l.locks.LoadOrStore(orderID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// ProcessOrderCommandHandler drives an order through the fulfillment
// pipeline: validate, check inventory, allocate, pick, pack, stage, and
// hand off to the carrier.
//
// Each stage that mutates state commits its own transaction before the
// next stage begins, so a failed run leaves the order exactly at its last
// completed stage. Re-running the command resumes from there: stages the
// order has already passed are skipped, not repeated.
type ProcessOrderCommandHandler struct {
	uowFactory PipelineUoWFactory
	validator  validation.Validator
	inventory  ports.InventoryReader
	allocation ports.AllocationClient
	handoff    HandoffExecutor

	locks orderLocks
	now   func() time.Time
}

// NewProcessOrderCommandHandler creates the pipeline handler.
func NewProcessOrderCommandHandler(
	uowFactory PipelineUoWFactory,
	validator validation.Validator,
	inventory ports.InventoryReader,
	allocation ports.AllocationClient,
	handoff HandoffExecutor,
) (*ProcessOrderCommandHandler, error) {
	if uowFactory == nil {
		return nil, errs.NewValueIsRequiredError("uowFactory")
	}
	if validator == nil {
		return nil, errs.NewValueIsRequiredError("validator")
	}
	if inventory == nil {
		return nil, errs.NewValueIsRequiredError("inventory")
	}
	if allocation == nil {
		return nil, errs.NewValueIsRequiredError("allocation")
	}
	if handoff == nil {
		return nil, errs.NewValueIsRequiredError("handoff")
	}

	return &ProcessOrderCommandHandler{
		uowFactory: uowFactory,
		validator:  validator,
		inventory:  inventory,
		allocation: allocation,
		handoff:    handoff,
		now:        time.Now,
	}, nil
}

// Handle processes one order through the full pipeline and always returns
// a ProcessingResult. Failures at any stage terminate the run with a
// tagged status; the order itself keeps the last stage it reached so a
// retry resumes instead of restarting.
func (h *ProcessOrderCommandHandler) Handle(ctx context.Context, cmd ProcessOrderCommand) (result ProcessingResult) {
	orderID := cmd.OrderID().String()

	defer func() {
		if r := recover(); r != nil {
			result = h.failure(orderID, StatusProcessingError,
				fmt.Sprintf("%v", r), []string{fmt.Sprintf("%v", r)})
		}
	}()

	if err := cmd.Validate(); err != nil {
		return h.failure(orderID, StatusProcessingError, err.Error(), []string{err.Error()})
	}

	unlock := h.locks.lock(orderID)
	defer unlock()

	ord, err := h.loadOrder(ctx, cmd.OrderID())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return h.failure(orderID, StatusValidationFailed, "Order validation failed", []string{"Order not found"})
		}
		return h.processingError(orderID, err)
	}

	// Stage 1: validate. Read-only; an invalid order leaves no trace.
	validationResult := h.validator.ValidateOrder(ctx, ord)
	if !validationResult.IsValid {
		r := h.failure(orderID, StatusValidationFailed, "Order validation failed", validationResult.Errors)
		r.Warnings = validationResult.Warnings
		return r
	}
	warnings := validationResult.Warnings

	// Stage 2: inventory pre-check. Allocation failure alone does not tell
	// an operator why; shortage messages name the line and the gap.
	shortages, lowStock, err := h.checkInventory(ctx, ord)
	if err != nil {
		return h.processingError(orderID, err)
	}
	if len(shortages) > 0 {
		r := h.failure(orderID, StatusInsufficientInventory, "Insufficient inventory to fulfill order", shortages)
		r.Warnings = append(warnings, lowStock...)
		return r
	}
	warnings = append(warnings, lowStock...)

	// Stage 3: allocate. Skipped when a prior run already allocated.
	if !ord.Status().Reached(order.Allocated) {
		status, err := h.allocation.AllocateOrder(ctx, cmd.OrderID())
		if err != nil {
			return h.processingError(orderID, err)
		}
		if status != ports.Allocated {
			return h.failure(orderID, string(status),
				"Failed to allocate inventory", []string{"Partial or failed allocation"})
		}
		if err = h.advanceOrder(ctx, ord, order.Allocated); err != nil {
			return h.processingError(orderID, err)
		}
	}

	// Stage 4: create pick tasks.
	if !ord.Status().Reached(order.Picking) {
		if err = h.advanceOrder(ctx, ord, order.Picking); err != nil {
			return h.failure(orderID, StatusPickFailed, "Failed to create pick tasks", []string{err.Error()})
		}
	}

	// Stage 5: advance to packing.
	if !ord.Status().Reached(order.Packing) {
		if err = h.advanceOrder(ctx, ord, order.Packing); err != nil {
			return h.processingError(orderID, err)
		}
	}

	// Stage 6: stage the order into the least-loaded area.
	assignment, err := h.ensureStaged(ctx, ord)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) || errors.Is(err, ports.ErrNoStagingCapacity) {
			return h.failure(orderID, StatusStagingFailed,
				"Failed to move order to staging", []string{"No available staging areas"})
		}
		return h.processingError(orderID, err)
	}

	// Stage 7: mark packing complete and hand off to the carrier. A failed
	// hand-off is not a pipeline failure: the assignment stays LOADED and
	// the background monitor retries it later.
	if err = h.markReadyForPickup(ctx, assignment); err != nil {
		return h.processingError(orderID, err)
	}

	handoffCmd, err := NewHandoffToTMSCommand(assignment.StagingAreaID(), cmd.OrderID())
	if err != nil {
		return h.processingError(orderID, err)
	}

	handoffResult, err := h.handoff.Handle(ctx, handoffCmd)
	if err != nil {
		return ProcessingResult{
			Success:  true,
			OrderID:  orderID,
			Status:   StatusShipped,
			Message:  "Order processed successfully from creation to shipping",
			Warnings: append(warnings, fmt.Sprintf("TMS handoff failed: %v; order remains staged for retry", err)),
		}
	}

	return ProcessingResult{
		Success:        true,
		OrderID:        orderID,
		Status:         StatusShipped,
		Message:        "Order processed successfully from creation to shipping",
		Warnings:       warnings,
		ShipmentID:     handoffResult.ShipmentID,
		TrackingNumber: handoffResult.TrackingNumber,
	}
}

func (h *ProcessOrderCommandHandler) failure(orderID, status, message string, errorList []string) ProcessingResult {
	return ProcessingResult{
		Success: false,
		OrderID: orderID,
		Status:  status,
		Message: message,
		Errors:  errorList,
	}
}

func (h *ProcessOrderCommandHandler) processingError(orderID string, err error) ProcessingResult {
	return h.failure(orderID, StatusProcessingError, err.Error(), []string{err.Error()})
}

func (h *ProcessOrderCommandHandler) loadOrder(ctx context.Context, orderID kernel.UUID) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return uow.OrderRepository().Get(ctx, orderID)
}

// checkInventory compares every line's required quantity against the
// available stock. Lines short of stock produce shortage errors; lines
// that fit but leave less than a 20 percent buffer produce low-stock
// warnings.
func (h *ProcessOrderCommandHandler) checkInventory(ctx context.Context, ord *order.Order) ([]string, []string, error) {
	var shortages, lowStock []string

	for _, line := range ord.Items() {
		available := 0
		item, err := h.inventory.GetBySKU(ctx, ord.OrganizationID(), line.SKU)
		if err != nil {
			if !errors.Is(err, errs.ErrObjectNotFound) {
				return nil, nil, err
			}
		} else {
			available = item.QuantityAvailable
		}

		if available < line.Quantity {
			shortages = append(shortages, fmt.Sprintf(
				"Item %s: Required %d, Available %d", line.SKU, line.Quantity, available))
		} else if available*5 < line.Quantity*6 { // available < 1.2 x required
			lowStock = append(lowStock, fmt.Sprintf(
				"Low stock for item %s: %d remaining after allocation", line.SKU, available))
		}
	}

	return shortages, lowStock, nil
}

// advanceOrder commits a single status transition in its own transaction.
func (h *ProcessOrderCommandHandler) advanceOrder(ctx context.Context, ord *order.Order, next order.Status) error {
	if err := ord.AdvanceTo(next); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.OrderRepository().Update(ctx, ord); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// ensureStaged places the order into the least-loaded staging area with
// free capacity, or returns the assignment a prior run already created.
// Slot reservation is an atomic counter update at the store layer, so
// concurrent pipelines cannot overshoot an area's capacity.
func (h *ProcessOrderCommandHandler) ensureStaged(ctx context.Context, ord *order.Order) (*staging.Assignment, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	alreadyStaged := ord.Status().Reached(order.Staging)
	if alreadyStaged {
		assignment, err := uow.StagingAssignmentRepository().GetOpenByOrder(ctx, ord.ID())
		if err == nil {
			return assignment, nil
		}
		if !errors.Is(err, errs.ErrObjectNotFound) {
			return nil, err
		}
		// Staged order without an open assignment: reserve a fresh slot.
	}

	area, err := uow.StagingAreaRepository().GetLeastLoadedAvailable(ctx, ord.OrganizationID())
	if err != nil {
		return nil, err
	}

	assignment, err := staging.NewAssignment(kernel.NewUUID(), area.ID(), ord.ID(), h.now())
	if err != nil {
		return nil, err
	}

	if err = uow.StagingAssignmentRepository().Add(ctx, assignment); err != nil {
		return nil, err
	}
	if err = uow.StagingAreaRepository().Reserve(ctx, area.ID()); err != nil {
		return nil, err
	}

	if !alreadyStaged {
		if err = ord.AdvanceTo(order.Staging); err != nil {
			return nil, err
		}
		if err = uow.OrderRepository().Update(ctx, ord); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return assignment, nil
}

// markReadyForPickup flags the fresh assignment as fully loaded and its
// area as awaiting carrier pickup. An assignment already past ASSIGNED is
// left alone; a retrying run must not regress it.
func (h *ProcessOrderCommandHandler) markReadyForPickup(ctx context.Context, assignment *staging.Assignment) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.StagingAssignmentRepository().MarkLoaded(ctx, assignment.ID()); err != nil {
		if !errors.Is(err, ports.ErrAssignmentAlreadyHandled) {
			return err
		}
	}

	if err := uow.StagingAreaRepository().MarkReady(ctx, assignment.StagingAreaID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
