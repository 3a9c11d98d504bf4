package ports

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
)

// AllocationStatus is the outcome reported by the allocation service.
// Allocated is the sole success value; every other status (including
// partial allocation) is a hard failure for the fulfillment pipeline,
// which has no partial-ship semantics.
type AllocationStatus string

const (
	// Allocated means every line was fully reserved.
	Allocated AllocationStatus = "ALLOCATED"

	// PartiallyAllocated means some lines could not be fully reserved.
	PartiallyAllocated AllocationStatus = "PARTIALLY_ALLOCATED"

	// AllocationFailed means the reservation attempt failed outright.
	AllocationFailed AllocationStatus = "ALLOCATION_FAILED"
)

// AllocationClient is the boundary to the external allocation service,
// which owns inventory reservations.
type AllocationClient interface {
	// AllocateOrder asks the allocation service to reserve inventory for
	// every line of the order. The returned status is the service's own
	// verdict; a transport-level failure is returned as an error.
	AllocateOrder(ctx context.Context, orderID kernel.UUID) (AllocationStatus, error)
}

// ErrShipmentRejected marks an explicit rejection from the transportation
// system, as opposed to a transport-level failure reaching it. Callers
// distinguish the two: rejections fail the hand-off, transport failures
// may be tolerated under the accept-local policy.
var ErrShipmentRejected = errors.New("shipment rejected by transportation system")

// ShipmentRequest is the creation payload sent to the transportation
// system when a staged order is handed off.
type ShipmentRequest struct {
	OrganizationID  string              `json:"organizationId"`
	Mode            string              `json:"mode"`
	Consolidation   string              `json:"consolidation"`
	TotalWeight     int                 `json:"totalWeight"`
	DeclaredValue   int                 `json:"declaredValue"`
	CarrierID       string              `json:"carrierId"`
	CarrierName     string              `json:"carrierName"`
	ServiceLevel    string              `json:"serviceLevel"`
	TrackingNumber  string              `json:"trackingNumber"`
	ReferenceNumber string              `json:"referenceNumber"`
	Metadata        ShipmentRequestMeta `json:"metadata"`
}

// ShipmentRequestMeta carries warehouse context alongside the creation
// payload so the transportation system can trace the shipment back.
type ShipmentRequestMeta struct {
	Source        string `json:"source"`
	StagingAreaID string `json:"stagingAreaId"`
	OrderID       string `json:"orderId"`
	OrderNumber   string `json:"orderNumber"`
	OrderType     string `json:"orderType"`
	Pallets       int    `json:"pallets"`
	BOLNumber     string `json:"bolNumber"`
}

// TMSClient is the boundary to the external transportation system.
type TMSClient interface {
	// CreateShipment registers the shipment and returns the identifier the
	// transportation system assigned. An explicit rejection is reported as
	// an error wrapping ErrShipmentRejected; transport-level failures are
	// returned as-is.
	CreateShipment(ctx context.Context, req ShipmentRequest) (string, error)
}
