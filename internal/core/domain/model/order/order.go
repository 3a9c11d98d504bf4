package order

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")
)

// Type distinguishes the direction of an order.
type Type string

const (
	// TypeInbound is a purchase order arriving from a supplier.
	TypeInbound Type = "PO"

	// TypeOutbound is a sales order shipped to a customer.
	TypeOutbound Type = "SO"
)

// Validate checks that the order type is one of the supported values.
func (t Type) Validate() error {
	if t != TypeInbound && t != TypeOutbound {
		return errs.NewValueIsInvalidErrorWithCause(
			"order type is invalid",
			fmt.Errorf("%q is not a valid order type", string(t)),
		)
	}
	return nil
}

// Address is the shipping destination of an order. Field-level rules
// (required fields, ZIP format, supported countries) are the business of
// the order validator, not of construction: intake may record addresses
// exactly as the customer supplied them.
type Address struct {
	Street  string
	City    string
	State   string
	ZipCode string
	Country string
}

// LineItem is one order line: a quantity of a SKU at a unit price.
type LineItem struct {
	SKU         string
	Description string
	Quantity    int
	UnitPrice   decimal.Decimal
}

// Subtotal returns quantity x unit price for the line.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Order is the aggregate root driven through the fulfillment pipeline.
//
// Order follows these invariants:
//   - Must have valid order and customer identifiers
//   - Must have at least one line item
//   - Required pallet count must be positive
//   - Status transitions only move forward through the pipeline or to the
//     terminal Cancelled state; an order never re-enters an earlier stage
//   - Can only be created through NewOrder or RestoreOrder
//
// The aggregate is mutated exclusively by the fulfillment pipeline and the
// staging monitor; order intake creates it and nothing here deletes it.
type Order struct {
	id              kernel.UUID
	organizationID  string
	customerID      kernel.UUID
	orderNumber     string
	orderType       Type
	priority        string
	requiredPallets int
	deliveryDate    *time.Time
	address         Address
	items           []LineItem
	status          Status
	shippedAt       *time.Time

	isConstructed bool
}

// NewOrder creates an Order in Created status. This is the entry point used
// by order intake; all business invariants are validated here.
func NewOrder(
	id kernel.UUID,
	organizationID string,
	customerID kernel.UUID,
	orderNumber string,
	orderType Type,
	requiredPallets int,
	address Address,
	items []LineItem,
) (*Order, error) {
	o := &Order{
		organizationID: organizationID,
		orderNumber:    orderNumber,
		address:        address,
		status:         Created,
		isConstructed:  true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setOrderType(orderType),
		o.setRequiredPallets(requiredPallets),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	if organizationID == "" {
		return nil, errs.NewValueIsRequiredError("organizationID")
	}
	if orderNumber == "" {
		return nil, errs.NewValueIsRequiredError("orderNumber")
	}

	return o, nil
}

// RestoreOrder reconstructs an Order from persistence, including its
// current pipeline status and shipment timestamp. Used by repositories;
// application code creates orders via NewOrder.
func RestoreOrder(
	id kernel.UUID,
	organizationID string,
	customerID kernel.UUID,
	orderNumber string,
	orderType Type,
	priority string,
	requiredPallets int,
	deliveryDate *time.Time,
	address Address,
	items []LineItem,
	status Status,
	shippedAt *time.Time,
) (*Order, error) {
	o, err := NewOrder(id, organizationID, customerID, orderNumber, orderType, requiredPallets, address, items)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}

	o.priority = priority
	o.deliveryDate = deliveryDate
	o.status = status
	o.shippedAt = shippedAt
	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// OrganizationID returns the owning organization.
func (o *Order) OrganizationID() string {
	return o.organizationID
}

// CustomerID returns the ordering customer's identifier.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// OrderNumber returns the human-facing order reference.
func (o *Order) OrderNumber() string {
	return o.orderNumber
}

// OrderType returns the order direction (inbound or outbound).
func (o *Order) OrderType() Type {
	return o.orderType
}

// Priority returns the fulfillment priority label.
func (o *Order) Priority() string {
	return o.priority
}

// SetPriority records the fulfillment priority label.
func (o *Order) SetPriority(priority string) {
	o.priority = priority
}

// RequiredPallets returns the pallet count the order occupies in staging.
func (o *Order) RequiredPallets() int {
	return o.requiredPallets
}

// RequiredDeliveryDate returns the requested delivery date, if any.
func (o *Order) RequiredDeliveryDate() *time.Time {
	return o.deliveryDate
}

// SetRequiredDeliveryDate records the requested delivery date.
func (o *Order) SetRequiredDeliveryDate(t *time.Time) {
	o.deliveryDate = t
}

// ShippingAddress returns the delivery destination.
func (o *Order) ShippingAddress() Address {
	return o.address
}

// Items returns the order lines. The returned slice must not be mutated.
func (o *Order) Items() []LineItem {
	return o.items
}

// Status returns the current pipeline status.
func (o *Order) Status() Status {
	return o.status
}

// ShippedAt returns the carrier hand-off timestamp, nil until shipped.
func (o *Order) ShippedAt() *time.Time {
	return o.shippedAt
}

// Subtotal returns the order value across all lines.
func (o *Order) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// AdvanceTo moves the order forward to the given pipeline stage.
// Backward transitions and transitions out of a terminal state fail.
func (o *Order) AdvanceTo(next Status) error {
	newStatus, err := o.status.Advance(next)
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// MarkShipped advances the order to Shipped and records the hand-off time.
func (o *Order) MarkShipped(at time.Time) error {
	if err := o.AdvanceTo(Shipped); err != nil {
		return err
	}

	o.shippedAt = &at
	return nil
}

// Cancel withdraws the order from fulfillment.
func (o *Order) Cancel() error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.customerID = id
	return nil
}

func (o *Order) setOrderType(t Type) error {
	if err := t.Validate(); err != nil {
		return err
	}
	o.orderType = t
	return nil
}

func (o *Order) setRequiredPallets(pallets int) error {
	if pallets <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"requiredPallets is invalid",
			fmt.Errorf("%d is not greater than 0", pallets),
		)
	}
	o.requiredPallets = pallets
	return nil
}

func (o *Order) setItems(items []LineItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	o.items = items
	return nil
}
