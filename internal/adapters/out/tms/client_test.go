package tms_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"fulfillment/internal/adapters/out/tms"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testShipmentRequest() ports.ShipmentRequest {
	return ports.ShipmentRequest{
		OrganizationID:  "ORG-1",
		Mode:            "LTL",
		Consolidation:   "NONE",
		TotalWeight:     3000,
		DeclaredValue:   30000,
		CarrierID:       "CARRIER-002",
		CarrierName:     "UPS",
		ServiceLevel:    "GROUND",
		TrackingNumber:  "UPS1234567890",
		ReferenceNumber: "SO-1001",
		Metadata: ports.ShipmentRequestMeta{
			Source:      "WMS_STAGING",
			OrderNumber: "SO-1001",
			OrderType:   "SO",
			Pallets:     2,
			BOLNumber:   "BOL262410042",
		},
	}
}

func TestClient_CreateShipment_Success(t *testing.T) {
	var received ports.ShipmentRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/tms/shipments", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"shipmentId":"TMS-SHIP-42"}`))
	}))
	defer server.Close()

	client, err := tms.NewClient(server.URL)
	require.NoError(t, err)

	shipmentID, err := client.CreateShipment(t.Context(), testShipmentRequest())

	require.NoError(t, err)
	assert.Equal(t, "TMS-SHIP-42", shipmentID)
	assert.Equal(t, "WMS_STAGING", received.Metadata.Source)
	assert.Equal(t, 30000, received.DeclaredValue)
}

func TestClient_CreateShipment_RejectionWrapsSentinel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"carrier not certified for lane"}`))
	}))
	defer server.Close()

	client, err := tms.NewClient(server.URL)
	require.NoError(t, err)

	_, err = client.CreateShipment(t.Context(), testShipmentRequest())

	require.Error(t, err)
	assert.ErrorIs(t, err, ports.ErrShipmentRejected)
	assert.Contains(t, err.Error(), "carrier not certified for lane")
}

func TestClient_CreateShipment_ServerErrorIsNotRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client, err := tms.NewClient(server.URL)
	require.NoError(t, err)

	_, err = client.CreateShipment(t.Context(), testShipmentRequest())

	require.Error(t, err)
	assert.NotErrorIs(t, err, ports.ErrShipmentRejected)
}

func TestClient_CreateShipment_UnreachableIsNotRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	client, err := tms.NewClient(server.URL)
	require.NoError(t, err)

	_, err = client.CreateShipment(t.Context(), testShipmentRequest())

	require.Error(t, err)
	assert.NotErrorIs(t, err, ports.ErrShipmentRejected)
}

func TestClient_CreateShipment_MissingShipmentIDFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client, err := tms.NewClient(server.URL)
	require.NoError(t, err)

	_, err = client.CreateShipment(t.Context(), testShipmentRequest())
	require.Error(t, err)
}

func TestNewClient_EmptyBaseURL(t *testing.T) {
	_, err := tms.NewClient("")
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}
