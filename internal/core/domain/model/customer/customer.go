// Package customer holds the read model for customer records. Customers
// are owned by an external CRM; fulfillment only reads them during order
// validation, so this is a snapshot type rather than an aggregate.
package customer

import (
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// Customer is the slice of a customer record that order validation needs.
type Customer struct {
	ID     kernel.UUID
	Name   string
	Active bool

	// CreditLimit is nil for customers without credit terms.
	CreditLimit *decimal.Decimal
}
