// Package inventoryrepo provides read-only access to stock records.
// Inventory is mutated only by the allocation service; fulfillment reads
// availability for validation and the pre-allocation shortage check.
package inventoryrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ItemDTO represents the replicated inventory row read during validation.
type ItemDTO struct {
	ItemID            string `gorm:"primaryKey"`
	SKU               string `gorm:"index:idx_inventory_org_sku"`
	Name              string
	OrganizationID    string `gorm:"index:idx_inventory_org_sku"`
	Active            bool
	QuantityAvailable int
	UnitCost          *decimal.Decimal `gorm:"type:numeric(12,2)"`
}

// TableName specifies the database table name for inventory items.
func (ItemDTO) TableName() string {
	return "inventory_items"
}

// GormInventoryReader implements InventoryReader using GORM.
type GormInventoryReader struct {
	db *gorm.DB
}

// NewGormInventoryReader creates a read-only inventory adapter.
func NewGormInventoryReader(db *gorm.DB) *GormInventoryReader {
	return &GormInventoryReader{db: db}
}

// GetBySKU retrieves the inventory record for a SKU within an organization.
func (r *GormInventoryReader) GetBySKU(
	ctx context.Context,
	organizationID, sku string,
) (*inventory.Item, error) {
	if organizationID == "" {
		return nil, errs.NewValueIsRequiredError("organizationID")
	}
	if sku == "" {
		return nil, errs.NewValueIsRequiredError("sku")
	}

	var dto ItemDTO
	err := r.db.WithContext(ctx).
		First(&dto, "organization_id = ? AND sku = ?", organizationID, sku).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("inventory item", sku)
		}
		return nil, err
	}

	return &inventory.Item{
		ItemID:            dto.ItemID,
		SKU:               dto.SKU,
		Name:              dto.Name,
		OrganizationID:    dto.OrganizationID,
		Active:            dto.Active,
		QuantityAvailable: dto.QuantityAvailable,
		UnitCost:          dto.UnitCost,
	}, nil
}
