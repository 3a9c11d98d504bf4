// Package ports defines the contracts between the fulfillment core and its
// collaborators: repositories over the data store, the unit of work, and
// clients for the external allocation and transportation systems. These
// interfaces establish the dependency inversion boundary that keeps the
// domain and application layers free of infrastructure concerns.
package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier,
	// including its line items and current pipeline status.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
