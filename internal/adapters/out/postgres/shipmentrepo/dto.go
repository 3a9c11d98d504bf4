// Package shipmentrepo provides data transfer objects and mapping functions
// for shipment persistence. Shipment records are written once at hand-off
// and never updated.
package shipmentrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/shipment"

	"github.com/google/uuid"
)

// ShipmentDTO represents the database structure for persisting hand-off records.
type ShipmentDTO struct {
	ShipmentID      string `gorm:"primaryKey"`
	CarrierID       string
	CarrierName     string
	ServiceLevel    string
	TrackingNumber  string `gorm:"index"`
	BOLNumber       string `gorm:"column:bol_number"`
	ETA             time.Time
	ReferenceNumber string `gorm:"index"`

	MetaSource        string
	MetaStagingAreaID uuid.UUID `gorm:"type:uuid"`
	MetaOrderID       uuid.UUID `gorm:"type:uuid;index"`
	MetaOrderNumber   string
	MetaOrderType     string
	MetaPallets       int
}

// TableName specifies the database table name for shipments.
func (ShipmentDTO) TableName() string {
	return "shipments"
}

// fromDomain converts a shipment record to its database representation.
func fromDomain(record *shipment.Shipment) ShipmentDTO {
	meta := record.Meta()
	return ShipmentDTO{
		ShipmentID:      record.ShipmentID(),
		CarrierID:       record.CarrierID(),
		CarrierName:     record.CarrierName(),
		ServiceLevel:    record.ServiceLevel(),
		TrackingNumber:  record.TrackingNumber(),
		BOLNumber:       record.BOLNumber(),
		ETA:             record.ETA(),
		ReferenceNumber: record.ReferenceNumber(),

		MetaSource:        meta.Source,
		MetaStagingAreaID: meta.StagingAreaID.Bytes(),
		MetaOrderID:       meta.OrderID.Bytes(),
		MetaOrderNumber:   meta.OrderNumber,
		MetaOrderType:     meta.OrderType,
		MetaPallets:       meta.Pallets,
	}
}
