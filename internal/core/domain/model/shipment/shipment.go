// Package shipment contains the record produced when a staged order is
// handed off to the transportation system.
package shipment

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ErrShipmentIsNotConstructed is returned when a Shipment instance was not
// created through the NewShipment factory method.
var ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment")

// Metadata carries the warehouse context a shipment originated from.
type Metadata struct {
	Source        string
	StagingAreaID kernel.UUID
	OrderID       kernel.UUID
	OrderNumber   string
	OrderType     string
	Pallets       int
}

// Shipment is the immutable record of one carrier hand-off. Tracking and
// BOL numbers are generated exactly once, before the record is created,
// and never change afterwards.
type Shipment struct {
	shipmentID      string
	carrierID       string
	carrierName     string
	serviceLevel    string
	trackingNumber  string
	bolNumber       string
	eta             time.Time
	referenceNumber string
	metadata        Metadata

	isConstructed bool
}

// NewShipment creates the hand-off record. referenceNumber is the
// originating order number.
func NewShipment(
	shipmentID, carrierID, carrierName, serviceLevel string,
	trackingNumber, bolNumber string,
	eta time.Time,
	referenceNumber string,
	metadata Metadata,
) (*Shipment, error) {
	if shipmentID == "" {
		return nil, errs.NewValueIsRequiredError("shipmentID")
	}
	if carrierID == "" {
		return nil, errs.NewValueIsRequiredError("carrierID")
	}
	if trackingNumber == "" {
		return nil, errs.NewValueIsRequiredError("trackingNumber")
	}
	if bolNumber == "" {
		return nil, errs.NewValueIsRequiredError("bolNumber")
	}

	return &Shipment{
		shipmentID:      shipmentID,
		carrierID:       carrierID,
		carrierName:     carrierName,
		serviceLevel:    serviceLevel,
		trackingNumber:  trackingNumber,
		bolNumber:       bolNumber,
		eta:             eta,
		referenceNumber: referenceNumber,
		metadata:        metadata,
		isConstructed:   true,
	}, nil
}

// Validate ensures the Shipment instance was properly constructed.
func (s *Shipment) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrShipmentIsNotConstructed
	}
	return nil
}

// ShipmentID returns the identifier assigned at hand-off.
func (s *Shipment) ShipmentID() string { return s.shipmentID }

// CarrierID returns the assigned carrier's identifier.
func (s *Shipment) CarrierID() string { return s.carrierID }

// CarrierName returns the assigned carrier's display name.
func (s *Shipment) CarrierName() string { return s.carrierName }

// ServiceLevel returns the booked service level.
func (s *Shipment) ServiceLevel() string { return s.serviceLevel }

// TrackingNumber returns the carrier tracking number.
func (s *Shipment) TrackingNumber() string { return s.trackingNumber }

// BOLNumber returns the bill-of-lading number.
func (s *Shipment) BOLNumber() string { return s.bolNumber }

// ETA returns the estimated delivery date.
func (s *Shipment) ETA() time.Time { return s.eta }

// ReferenceNumber returns the originating order number.
func (s *Shipment) ReferenceNumber() string { return s.referenceNumber }

// Meta returns the warehouse context the shipment originated from.
func (s *Shipment) Meta() Metadata { return s.metadata }
