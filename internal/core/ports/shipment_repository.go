package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/shipment"
)

// ShipmentRepository defines the persistence contract for hand-off records.
// Shipments are written once at successful hand-off and never mutated.
type ShipmentRepository interface {
	// Add persists a new shipment record.
	Add(ctx context.Context, aggregate *shipment.Shipment) error
}
