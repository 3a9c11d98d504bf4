package queries

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

var (
	ErrGetStagingAlertsQueryIsNotConstructed = errors.New(
		"GetStagingAlertsQuery must be created via NewGetStagingAlertsQuery constructor",
	)
)

// GetStagingAlertsQuery retrieves dwell-time alerts for orders sitting in
// staging, without mutating any state. The monitor sweep raises the same
// alerts as a side effect; this query exists for dashboards and on-demand
// inspection.
type GetStagingAlertsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetStagingAlertsQuery creates a parameterless alert query.
func NewGetStagingAlertsQuery() GetStagingAlertsQuery {
	return GetStagingAlertsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetStagingAlertsQuery) Validate() error {
	return q.guard.Validate(ErrGetStagingAlertsQueryIsNotConstructed)
}

// GetStagingAlertsQueryResponse is one dwell alert for a staged order.
type GetStagingAlertsQueryResponse struct {
	OrderID         string `json:"orderId"`
	OrderNumber     string `json:"orderNumber"`
	StagingAreaID   string `json:"stagingAreaId"`
	StagingAreaName string `json:"stagingAreaName"`
	TimeInStaging   int    `json:"timeInStaging"`
	Status          string `json:"status"`
	AlertLevel      string `json:"alertLevel"`
}
