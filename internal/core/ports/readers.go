package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/customer"
	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// CustomerReader provides read-only access to customer records for order
// validation. Customers are owned by an external system; nothing in this
// core writes them.
type CustomerReader interface {
	// Get retrieves a customer snapshot by identifier.
	Get(ctx context.Context, id kernel.UUID) (*customer.Customer, error)

	// OpenOrdersTotal sums the value of the customer's orders that are
	// still pending or processing. Used for credit-limit checks.
	OpenOrdersTotal(ctx context.Context, customerID kernel.UUID) (decimal.Decimal, error)
}

// InventoryReader provides read-only access to stock records. Inventory is
// mutated only by the allocation service; this core reads availability for
// validation and the pre-allocation shortage check.
type InventoryReader interface {
	// GetBySKU retrieves the inventory record for a SKU within an
	// organization.
	GetBySKU(ctx context.Context, organizationID, sku string) (*inventory.Item, error)
}
