// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. This package implements the repository pattern for the
// order aggregate, handling the conversion between domain entities and
// database representations.
package orderrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Indexed by status for pipeline scans and by customer for credit checks.
type OrderDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrganizationID  string     `gorm:"index"`
	CustomerID      uuid.UUID  `gorm:"type:uuid;index"`
	OrderNumber     string     `gorm:"index"`
	OrderType       string     `gorm:"type:varchar(8)"`
	Priority        string     `gorm:"type:varchar(16)"`
	RequiredPallets int
	DeliveryDate    *time.Time
	Address         AddressDTO `gorm:"embedded;embeddedPrefix:address_"`
	Status          string     `gorm:"type:varchar(32);index"`
	ShippedAt       *time.Time

	Items []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// AddressDTO represents the embedded shipping destination within the order table.
type AddressDTO struct {
	Street  string
	City    string
	State   string
	ZipCode string
	Country string
}

// OrderItemDTO represents one order line. Lines are written with the order
// and never mutated afterwards.
type OrderItemDTO struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"`
	OrderID     uuid.UUID `gorm:"type:uuid;index"`
	SKU         string    `gorm:"index"`
	Description string
	Quantity    int
	UnitPrice   decimal.Decimal `gorm:"type:numeric(12,2)"`
}

// TableName specifies the database table name for order lines.
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	items := make([]OrderItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, OrderItemDTO{
			OrderID:     aggregate.ID().Bytes(),
			SKU:         item.SKU,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}

	address := aggregate.ShippingAddress()
	return OrderDTO{
		ID:              aggregate.ID().Bytes(),
		OrganizationID:  aggregate.OrganizationID(),
		CustomerID:      aggregate.CustomerID().Bytes(),
		OrderNumber:     aggregate.OrderNumber(),
		OrderType:       string(aggregate.OrderType()),
		Priority:        aggregate.Priority(),
		RequiredPallets: aggregate.RequiredPallets(),
		DeliveryDate:    aggregate.RequiredDeliveryDate(),
		Address: AddressDTO{
			Street:  address.Street,
			City:    address.City,
			State:   address.State,
			ZipCode: address.ZipCode,
			Country: address.Country,
		},
		Status:    aggregate.Status().String(),
		ShippedAt: aggregate.ShippedAt(),
		Items:     items,
	}
}

// toDomain converts a database DTO to an order aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	items := make([]order.LineItem, 0, len(dto.Items))
	for _, item := range dto.Items {
		items = append(items, order.LineItem{
			SKU:         item.SKU,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}

	return order.RestoreOrder(
		id,
		dto.OrganizationID,
		customerID,
		dto.OrderNumber,
		order.Type(dto.OrderType),
		dto.Priority,
		dto.RequiredPallets,
		dto.DeliveryDate,
		order.Address{
			Street:  dto.Address.Street,
			City:    dto.Address.City,
			State:   dto.Address.State,
			ZipCode: dto.Address.ZipCode,
			Country: dto.Address.Country,
		},
		items,
		status,
		dto.ShippedAt,
	)
}
