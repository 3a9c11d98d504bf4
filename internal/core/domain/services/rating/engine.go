// Package rating implements carrier assignment for the transportation
// hand-off: a deterministic decision table over order type and shipment
// weight, plus generation of tracking numbers, bill-of-lading numbers and
// delivery estimates.
package rating

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"fulfillment/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// Fixed operating assumptions of the rate table. There is no per-item
// weight aggregation in this core: shipment weight derives from pallets.
const (
	// PalletWeightLbs is the weight assumed per staged pallet.
	PalletWeightLbs = 1500

	// lightWeightLimitLbs is the upper bound for the cheapest carrier.
	lightWeightLimitLbs = 50

	// midWeightLimitLbs is the upper bound for the mid-tier carrier.
	midWeightLimitLbs = 150

	// fallbackTrackingPrefix is used for carriers without a known prefix.
	fallbackTrackingPrefix = "TMS"

	// defaultDeliveryDays applies to unrecognized service levels.
	defaultDeliveryDays = 5
)

// Carrier identifiers in the rate table.
const (
	CarrierFedEx = "CARRIER-001"
	CarrierUPS   = "CARRIER-002"
	CarrierDHL   = "CARRIER-003"
	CarrierUSPS  = "CARRIER-004"
)

// Carrier is one entry in the rate table.
type Carrier struct {
	ID            string
	Name          string
	ServiceLevels []string
	BaseCost      decimal.Decimal
}

// CarrierAssignment is the outcome of carrier selection for one shipment.
type CarrierAssignment struct {
	CarrierID     string
	CarrierName   string
	ServiceLevel  string
	EstimatedCost decimal.Decimal
}

// Provider is the pluggable rating strategy used by the hand-off
// orchestrator. Engine is the default implementation; a real rating
// integration can be substituted without touching orchestration logic.
type Provider interface {
	// AssignCarrier selects a carrier for the given order direction and
	// total shipment weight in pounds.
	AssignCarrier(orderType order.Type, totalWeightLbs int) (CarrierAssignment, error)

	// EstimateWeight derives total shipment weight from the pallet count.
	EstimateWeight(requiredPallets int) int

	// NewTrackingNumber generates a carrier-prefixed tracking number.
	NewTrackingNumber(carrierID string) string

	// NewBOLNumber generates a bill-of-lading number for the given date.
	NewBOLNumber(now time.Time) string

	// EstimateDelivery returns the estimated delivery date for a service
	// level, counted in calendar days from now.
	EstimateDelivery(serviceLevel string, now time.Time) time.Time
}

func rateTable() []Carrier {
	return []Carrier{
		{ID: CarrierFedEx, Name: "FedEx", ServiceLevels: []string{"GROUND", "2DAY", "NEXTDAY"}, BaseCost: decimal.NewFromFloat(25.99)},
		{ID: CarrierUPS, Name: "UPS", ServiceLevels: []string{"GROUND", "2DAY", "NEXTDAY"}, BaseCost: decimal.NewFromFloat(27.50)},
		{ID: CarrierDHL, Name: "DHL", ServiceLevels: []string{"GROUND", "EXPRESS"}, BaseCost: decimal.NewFromFloat(29.99)},
		{ID: CarrierUSPS, Name: "USPS", ServiceLevels: []string{"GROUND"}, BaseCost: decimal.NewFromFloat(22.00)},
	}
}

func trackingPrefixes() map[string]string {
	return map[string]string{
		CarrierFedEx: "FDX",
		CarrierUPS:   "UPS",
		CarrierDHL:   "DHL",
		CarrierUSPS:  "USPS",
	}
}

func deliveryDays() map[string]int {
	return map[string]int{
		"GROUND":  5,
		"2DAY":    2,
		"NEXTDAY": 1,
		"EXPRESS": 1,
	}
}

// Engine is the default Provider: a fixed rate table with weight-banded
// selection. Identifier generation routes through an injected random
// source so a sequence-backed generator can replace it if probabilistic
// uniqueness ever proves insufficient.
type Engine struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewEngine creates an Engine seeded from the current time.
func NewEngine() *Engine {
	return NewEngineWithSource(rand.NewSource(time.Now().UnixNano()))
}

// NewEngineWithSource creates an Engine with an explicit random source.
// Tests use a fixed seed to make generated identifiers reproducible.
func NewEngineWithSource(src rand.Source) *Engine {
	return &Engine{rnd: rand.New(src)}
}

// AssignCarrier selects a carrier from the rate table.
//
// Inbound purchase orders always ship with the fixed low-cost ground
// carrier. Outbound sales orders branch purely on total weight:
// under 50 lb the cheapest carrier, under 150 lb the mid-tier carrier,
// and the higher-capacity carrier from 150 lb up. The base cost of the
// selected carrier is the estimate; no dynamic rating call is made.
func (e *Engine) AssignCarrier(orderType order.Type, totalWeightLbs int) (CarrierAssignment, error) {
	if err := orderType.Validate(); err != nil {
		return CarrierAssignment{}, err
	}

	if orderType == order.TypeInbound {
		return e.assignmentFor(CarrierUSPS), nil
	}

	switch {
	case totalWeightLbs < lightWeightLimitLbs:
		return e.assignmentFor(CarrierUSPS), nil
	case totalWeightLbs < midWeightLimitLbs:
		return e.assignmentFor(CarrierFedEx), nil
	default:
		return e.assignmentFor(CarrierUPS), nil
	}
}

func (e *Engine) assignmentFor(carrierID string) CarrierAssignment {
	for _, c := range rateTable() {
		if c.ID == carrierID {
			return CarrierAssignment{
				CarrierID:     c.ID,
				CarrierName:   c.Name,
				ServiceLevel:  "GROUND",
				EstimatedCost: c.BaseCost,
			}
		}
	}
	// The decision table only references carriers present in the table.
	panic(fmt.Sprintf("rating: carrier %s missing from rate table", carrierID))
}

// EstimateWeight derives total shipment weight from the pallet count
// using the fixed per-pallet assumption.
func (e *Engine) EstimateWeight(requiredPallets int) int {
	return requiredPallets * PalletWeightLbs
}

// NewTrackingNumber generates a tracking number of the form
// {carrier prefix}{10 random digits}. Unrecognized carriers fall back to
// the TMS prefix.
func (e *Engine) NewTrackingNumber(carrierID string) string {
	prefix, ok := trackingPrefixes()[carrierID]
	if !ok {
		prefix = fallbackTrackingPrefix
	}

	e.mu.Lock()
	n := 1000000000 + e.rnd.Int63n(9000000000)
	e.mu.Unlock()

	return fmt.Sprintf("%s%d", prefix, n)
}

// NewBOLNumber generates a bill-of-lading number of the form
// BOL{2-digit year}{3-digit day of year}{4-digit sequence}.
func (e *Engine) NewBOLNumber(now time.Time) string {
	e.mu.Lock()
	seq := e.rnd.Intn(9999) + 1
	e.mu.Unlock()

	return fmt.Sprintf("BOL%02d%03d%04d", now.Year()%100, now.YearDay(), seq)
}

// EstimateDelivery returns now plus the fixed calendar-day lead time for
// the service level, defaulting to the ground lead time.
func (e *Engine) EstimateDelivery(serviceLevel string, now time.Time) time.Time {
	days, ok := deliveryDays()[serviceLevel]
	if !ok {
		days = defaultDeliveryDays
	}
	return now.AddDate(0, 0, days)
}

// AvailableCarriers lists the rate table for manual carrier selection.
func (e *Engine) AvailableCarriers() []Carrier {
	return rateTable()
}
