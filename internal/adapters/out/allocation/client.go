// Package allocation implements the HTTP client for the external allocation
// service, which owns inventory reservations.
package allocation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

const defaultTimeout = 10 * time.Second

// Client calls the allocation service over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates an allocation service client for the given base URL.
func NewClient(baseURL string) (*Client, error) {
	if baseURL == "" {
		return nil, errs.NewValueIsRequiredError("baseURL")
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}, nil
}

type allocateRequest struct {
	OrderID string `json:"orderId"`
}

type allocateResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// AllocateOrder asks the allocation service to reserve inventory for every
// line of the order and returns the service's verdict.
func (c *Client) AllocateOrder(ctx context.Context, orderID kernel.UUID) (ports.AllocationStatus, error) {
	body, err := json.Marshal(allocateRequest{OrderID: orderID.String()})
	if err != nil {
		return "", err
	}

	url := c.baseURL + "/api/v1/allocations"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("allocation service unreachable: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("allocation service returned %d: %s", resp.StatusCode, raw)
	}

	var parsed allocateResponse
	if err = json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("allocation service response is not valid JSON: %w", err)
	}

	return ports.AllocationStatus(parsed.Status), nil
}
