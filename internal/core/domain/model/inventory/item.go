// Package inventory holds the read model for stock records. Inventory is
// owned by the allocation service; fulfillment reads availability during
// validation and the pre-allocation check, and never writes it directly.
package inventory

import "github.com/shopspring/decimal"

// Item is the slice of an inventory record that fulfillment reads.
type Item struct {
	ItemID            string
	SKU               string
	Name              string
	OrganizationID    string
	Active            bool
	QuantityAvailable int

	// UnitCost is nil when the item has no recorded cost basis.
	UnitCost *decimal.Decimal
}
