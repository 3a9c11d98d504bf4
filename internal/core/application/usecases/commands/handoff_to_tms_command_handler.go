package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/domain/model/staging"
	"fulfillment/internal/core/domain/services/rating"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

const shipmentSource = "WMS_STAGING"

var (
	// ErrOrderNotReadyForHandoff is returned when the order's staging
	// assignment is not LOADED yet.
	ErrOrderNotReadyForHandoff = errors.New("order is not ready for TMS handoff")

	// ErrOrderNotInStagingArea is returned when the order has no open
	// assignment within the requested staging area.
	ErrOrderNotInStagingArea = errors.New("order not found in staging area")
)

// HandoffResult reports a completed carrier hand-off.
type HandoffResult struct {
	ShipmentID     string
	CarrierID      string
	CarrierName    string
	ServiceLevel   string
	TrackingNumber string
	BOLNumber      string
	ETA            time.Time

	// RemoteAccepted is false when the transportation system could not be
	// reached and the shipment identifier was generated locally under the
	// accept-local policy.
	RemoteAccepted bool
}

// HandoffExecutor is implemented by HandoffToTMSCommandHandler and
// substituted in pipeline and monitor tests.
type HandoffExecutor interface {
	Handle(ctx context.Context, cmd HandoffToTMSCommand) (HandoffResult, error)
}

// HandoffToTMSCommandHandler finalizes a staged order: selects a carrier,
// generates tracking and BOL numbers, registers the shipment with the
// transportation system, and atomically marks the order shipped, the
// assignment completed, and the staging slot free.
//
// The transition of the assignment from LOADED to COMPLETED is a
// conditional update at the store layer, so a pipeline invocation and a
// monitor sweep racing on the same order cannot both complete it.
type HandoffToTMSCommandHandler struct {
	uowFactory HandoffUoWFactory
	rater      rating.Provider
	tmsClient  ports.TMSClient

	// acceptLocalOnRemoteFailure keeps the hand-off successful when the
	// transportation system is unreachable: the locally generated carrier
	// assignment and identifiers are treated as authoritative and the
	// shipment identifier is synthesized. An explicit rejection from the
	// remote system always fails the hand-off.
	acceptLocalOnRemoteFailure bool

	now func() time.Time
}

// NewHandoffToTMSCommandHandler creates a handler for carrier hand-offs.
func NewHandoffToTMSCommandHandler(
	uowFactory HandoffUoWFactory,
	rater rating.Provider,
	tmsClient ports.TMSClient,
	acceptLocalOnRemoteFailure bool,
) (*HandoffToTMSCommandHandler, error) {
	if uowFactory == nil {
		return nil, errs.NewValueIsRequiredError("uowFactory")
	}
	if rater == nil {
		return nil, errs.NewValueIsRequiredError("rater")
	}
	if tmsClient == nil {
		return nil, errs.NewValueIsRequiredError("tmsClient")
	}

	return &HandoffToTMSCommandHandler{
		uowFactory:                 uowFactory,
		rater:                      rater,
		tmsClient:                  tmsClient,
		acceptLocalOnRemoteFailure: acceptLocalOnRemoteFailure,
		now:                        time.Now,
	}, nil
}

// Handle processes the hand-off command.
//
// The whole hand-off runs in one transaction: resolving the staging state,
// persisting the shipment record, completing the assignment, releasing the
// staging slot and marking the order shipped either all land or none do.
// The transportation call happens inside that window; its latency is
// bounded by the client's timeout.
func (h *HandoffToTMSCommandHandler) Handle(ctx context.Context, cmd HandoffToTMSCommand) (HandoffResult, error) {
	if err := cmd.Validate(); err != nil {
		return HandoffResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return HandoffResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	area, err := uow.StagingAreaRepository().Get(ctx, cmd.StagingAreaID())
	if err != nil {
		return HandoffResult{}, err
	}

	assignment, err := uow.StagingAssignmentRepository().GetOpenByOrder(ctx, cmd.OrderID())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return HandoffResult{}, ErrOrderNotInStagingArea
		}
		return HandoffResult{}, err
	}
	if !assignment.StagingAreaID().IsEqual(area.ID()) {
		return HandoffResult{}, ErrOrderNotInStagingArea
	}
	if assignment.Status() != staging.AssignmentLoaded {
		return HandoffResult{}, ErrOrderNotReadyForHandoff
	}

	ord, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return HandoffResult{}, err
	}

	totalWeight := h.rater.EstimateWeight(ord.RequiredPallets())
	carrier, err := h.rater.AssignCarrier(ord.OrderType(), totalWeight)
	if err != nil {
		return HandoffResult{}, err
	}

	now := h.now()
	trackingNumber := h.rater.NewTrackingNumber(carrier.CarrierID)
	bolNumber := h.rater.NewBOLNumber(now)
	eta := h.rater.EstimateDelivery(carrier.ServiceLevel, now)

	shipmentID, remoteAccepted, err := h.createRemoteShipment(ctx, ports.ShipmentRequest{
		OrganizationID:  ord.OrganizationID(),
		Mode:            "LTL",
		Consolidation:   "NONE",
		TotalWeight:     totalWeight,
		DeclaredValue:   totalWeight * 10,
		CarrierID:       carrier.CarrierID,
		CarrierName:     carrier.CarrierName,
		ServiceLevel:    carrier.ServiceLevel,
		TrackingNumber:  trackingNumber,
		ReferenceNumber: ord.OrderNumber(),
		Metadata: ports.ShipmentRequestMeta{
			Source:        shipmentSource,
			StagingAreaID: area.ID().String(),
			OrderID:       ord.ID().String(),
			OrderNumber:   ord.OrderNumber(),
			OrderType:     string(ord.OrderType()),
			Pallets:       ord.RequiredPallets(),
			BOLNumber:     bolNumber,
		},
	})
	if err != nil {
		return HandoffResult{}, err
	}

	record, err := shipment.NewShipment(
		shipmentID,
		carrier.CarrierID,
		carrier.CarrierName,
		carrier.ServiceLevel,
		trackingNumber,
		bolNumber,
		eta,
		ord.OrderNumber(),
		shipment.Metadata{
			Source:        shipmentSource,
			StagingAreaID: area.ID(),
			OrderID:       ord.ID(),
			OrderNumber:   ord.OrderNumber(),
			OrderType:     string(ord.OrderType()),
			Pallets:       ord.RequiredPallets(),
		},
	)
	if err != nil {
		return HandoffResult{}, err
	}

	if err = uow.ShipmentRepository().Add(ctx, record); err != nil {
		return HandoffResult{}, err
	}

	if err = uow.StagingAssignmentRepository().Complete(ctx, assignment.ID(), now); err != nil {
		return HandoffResult{}, err
	}

	if err = uow.StagingAreaRepository().Release(ctx, area.ID()); err != nil {
		return HandoffResult{}, err
	}

	if err = ord.MarkShipped(now); err != nil {
		return HandoffResult{}, err
	}
	if err = uow.OrderRepository().Update(ctx, ord); err != nil {
		return HandoffResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return HandoffResult{}, err
	}

	return HandoffResult{
		ShipmentID:     shipmentID,
		CarrierID:      carrier.CarrierID,
		CarrierName:    carrier.CarrierName,
		ServiceLevel:   carrier.ServiceLevel,
		TrackingNumber: trackingNumber,
		BOLNumber:      bolNumber,
		ETA:            eta,
		RemoteAccepted: remoteAccepted,
	}, nil
}

// createRemoteShipment registers the shipment with the transportation
// system. A transport-level failure is tolerated under the accept-local
// policy by synthesizing a local shipment identifier; an explicit
// rejection always fails.
func (h *HandoffToTMSCommandHandler) createRemoteShipment(
	ctx context.Context,
	req ports.ShipmentRequest,
) (string, bool, error) {
	shipmentID, err := h.tmsClient.CreateShipment(ctx, req)
	if err == nil {
		return shipmentID, true, nil
	}

	if errors.Is(err, ports.ErrShipmentRejected) {
		return "", false, err
	}

	if !h.acceptLocalOnRemoteFailure {
		return "", false, err
	}

	return fmt.Sprintf("SHIP-%d", h.now().UnixMilli()), false, nil
}
