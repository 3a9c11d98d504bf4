// Package customerrepo provides read-only access to customer records for
// order validation. Customers are owned by an external CRM; this adapter
// only reads the replicated rows.
package customerrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/customer"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CustomerDTO represents the replicated customer row read during validation.
type CustomerDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string
	Active      bool
	CreditLimit *decimal.Decimal `gorm:"type:numeric(14,2)"`
}

// TableName specifies the database table name for customers.
func (CustomerDTO) TableName() string {
	return "customers"
}

// GormCustomerReader implements CustomerReader using GORM.
type GormCustomerReader struct {
	db *gorm.DB
}

// NewGormCustomerReader creates a read-only customer adapter.
func NewGormCustomerReader(db *gorm.DB) *GormCustomerReader {
	return &GormCustomerReader{db: db}
}

// Get retrieves a customer snapshot by identifier.
func (r *GormCustomerReader) Get(ctx context.Context, id kernel.UUID) (*customer.Customer, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CustomerDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("customer", id.String())
		}
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return &customer.Customer{
		ID:          customerID,
		Name:        dto.Name,
		Active:      dto.Active,
		CreditLimit: dto.CreditLimit,
	}, nil
}

// OpenOrdersTotal sums the value of the customer's orders that have not yet
// shipped or been cancelled. Used for credit-limit checks.
//
// Open deliberately means every non-terminal status, not just the intake
// stages: an order anywhere in the pipeline still counts against the
// customer's credit exposure until it ships.
func (r *GormCustomerReader) OpenOrdersTotal(
	ctx context.Context,
	customerID kernel.UUID,
) (decimal.Decimal, error) {
	if err := customerID.Validate(); err != nil {
		return decimal.Zero, err
	}

	var total decimal.Decimal
	row := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(oi.quantity * oi.unit_price), 0)
		FROM orders o
		JOIN order_items oi ON oi.order_id = o.id
		WHERE o.customer_id = ?
		  AND o.status NOT IN (?, ?)
	`, customerID.Bytes(), order.Shipped.String(), order.Cancelled.String()).Row()

	if err := row.Scan(&total); err != nil {
		return decimal.Zero, err
	}

	return total, nil
}
