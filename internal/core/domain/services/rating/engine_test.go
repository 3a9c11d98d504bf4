package rating_test

import (
	"math/rand"
	"regexp"
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services/rating"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFixedEngine() *rating.Engine {
	return rating.NewEngineWithSource(rand.NewSource(42))
}

func decimalFromString(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func Test_Engine_AssignCarrier_InboundAlwaysUSPS(t *testing.T) {
	engine := newFixedEngine()

	for _, weight := range []int{0, 49, 150, 30000} {
		assignment, err := engine.AssignCarrier(order.TypeInbound, weight)

		require.NoError(t, err)
		assert.Equal(t, rating.CarrierUSPS, assignment.CarrierID)
		assert.Equal(t, "USPS", assignment.CarrierName)
		assert.Equal(t, "GROUND", assignment.ServiceLevel)
		assert.True(t, assignment.EstimatedCost.Equal(decimalFromString(t, "22.00")))
	}
}

func Test_Engine_AssignCarrier_OutboundWeightBands(t *testing.T) {
	tests := []struct {
		name          string
		weightLbs     int
		wantCarrierID string
		wantName      string
	}{
		{name: "zero weight stays in light band", weightLbs: 0, wantCarrierID: rating.CarrierUSPS, wantName: "USPS"},
		{name: "just under light limit", weightLbs: 49, wantCarrierID: rating.CarrierUSPS, wantName: "USPS"},
		{name: "light limit moves to mid band", weightLbs: 50, wantCarrierID: rating.CarrierFedEx, wantName: "FedEx"},
		{name: "just under mid limit", weightLbs: 149, wantCarrierID: rating.CarrierFedEx, wantName: "FedEx"},
		{name: "mid limit moves to heavy band", weightLbs: 150, wantCarrierID: rating.CarrierUPS, wantName: "UPS"},
		{name: "single pallet estimate is heavy", weightLbs: rating.PalletWeightLbs, wantCarrierID: rating.CarrierUPS, wantName: "UPS"},
	}

	engine := newFixedEngine()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assignment, err := engine.AssignCarrier(order.TypeOutbound, tt.weightLbs)

			require.NoError(t, err)
			assert.Equal(t, tt.wantCarrierID, assignment.CarrierID)
			assert.Equal(t, tt.wantName, assignment.CarrierName)
			assert.Equal(t, "GROUND", assignment.ServiceLevel)
		})
	}
}

func Test_Engine_AssignCarrier_InvalidOrderType(t *testing.T) {
	engine := newFixedEngine()

	_, err := engine.AssignCarrier(order.Type("TRANSFER"), 100)

	assert.Error(t, err)
}

func Test_Engine_EstimateWeight(t *testing.T) {
	engine := newFixedEngine()

	assert.Equal(t, 0, engine.EstimateWeight(0))
	assert.Equal(t, rating.PalletWeightLbs, engine.EstimateWeight(1))
	assert.Equal(t, 3*rating.PalletWeightLbs, engine.EstimateWeight(3))
}

func Test_Engine_NewTrackingNumber(t *testing.T) {
	tests := []struct {
		name       string
		carrierID  string
		wantprefix string
	}{
		{name: "FedEx prefix", carrierID: rating.CarrierFedEx, wantprefix: "FDX"},
		{name: "UPS prefix", carrierID: rating.CarrierUPS, wantprefix: "UPS"},
		{name: "DHL prefix", carrierID: rating.CarrierDHL, wantprefix: "DHL"},
		{name: "USPS prefix", carrierID: rating.CarrierUSPS, wantprefix: "USPS"},
		{name: "unknown carrier falls back to TMS", carrierID: "CARRIER-999", wantprefix: "TMS"},
	}

	engine := newFixedEngine()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracking := engine.NewTrackingNumber(tt.carrierID)

			assert.Regexp(t, regexp.MustCompile("^"+tt.wantprefix+`\d{10}$`), tracking)
		})
	}
}

func Test_Engine_NewBOLNumber(t *testing.T) {
	engine := newFixedEngine()

	// 2026-03-01 is day 60 of a non-leap year.
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	bol := engine.NewBOLNumber(now)

	require.Regexp(t, regexp.MustCompile(`^BOL\d{9}$`), bol)
	assert.Equal(t, "BOL26060", bol[:8])
}

func Test_Engine_EstimateDelivery(t *testing.T) {
	tests := []struct {
		name         string
		serviceLevel string
		wantDays     int
	}{
		{name: "ground", serviceLevel: "GROUND", wantDays: 5},
		{name: "two day", serviceLevel: "2DAY", wantDays: 2},
		{name: "next day", serviceLevel: "NEXTDAY", wantDays: 1},
		{name: "express", serviceLevel: "EXPRESS", wantDays: 1},
		{name: "unknown defaults to ground", serviceLevel: "FREIGHT", wantDays: 5},
	}

	engine := newFixedEngine()
	now := time.Date(2026, 8, 30, 9, 30, 0, 0, time.UTC)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eta := engine.EstimateDelivery(tt.serviceLevel, now)

			assert.Equal(t, now.AddDate(0, 0, tt.wantDays), eta)
		})
	}
}

func Test_Engine_AvailableCarriers(t *testing.T) {
	engine := newFixedEngine()

	carriers := engine.AvailableCarriers()

	require.Len(t, carriers, 4)
	ids := make([]string, 0, len(carriers))
	for _, c := range carriers {
		ids = append(ids, c.ID)
	}
	assert.ElementsMatch(t, []string{
		rating.CarrierFedEx,
		rating.CarrierUPS,
		rating.CarrierDHL,
		rating.CarrierUSPS,
	}, ids)
}
