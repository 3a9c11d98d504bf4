// Package tms implements the HTTP client for the external transportation
// management system that shipments are handed off to.
package tms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

const defaultTimeout = 15 * time.Second

// Client calls the transportation system over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a transportation system client for the given base URL.
func NewClient(baseURL string) (*Client, error) {
	if baseURL == "" {
		return nil, errs.NewValueIsRequiredError("baseURL")
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}, nil
}

type createShipmentResponse struct {
	ShipmentID string `json:"shipmentId"`
	Message    string `json:"message"`
}

// CreateShipment registers the shipment and returns the identifier the
// transportation system assigned. A 4xx answer is an explicit rejection and
// is reported wrapping ports.ErrShipmentRejected; transport-level failures
// and 5xx answers are returned as plain errors so the caller can apply the
// accept-local policy.
func (c *Client) CreateShipment(ctx context.Context, shipmentReq ports.ShipmentRequest) (string, error) {
	body, err := json.Marshal(shipmentReq)
	if err != nil {
		return "", err
	}

	url := c.baseURL + "/api/tms/shipments"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("transportation system unreachable: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		var parsed createShipmentResponse
		if err = json.Unmarshal(raw, &parsed); err != nil {
			return "", fmt.Errorf("transportation system response is not valid JSON: %w", err)
		}
		if parsed.ShipmentID == "" {
			return "", fmt.Errorf("transportation system returned no shipment identifier")
		}
		return parsed.ShipmentID, nil

	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		message := rejectionMessage(raw)
		return "", fmt.Errorf("%w: %s", ports.ErrShipmentRejected, message)

	default:
		return "", fmt.Errorf("transportation system returned %d: %s", resp.StatusCode, raw)
	}
}

// rejectionMessage pulls a human-readable reason out of a rejection body,
// falling back to the raw payload.
func rejectionMessage(raw []byte) string {
	var parsed createShipmentResponse
	if err := json.Unmarshal(raw, &parsed); err == nil && parsed.Message != "" {
		return parsed.Message
	}
	return string(raw)
}
