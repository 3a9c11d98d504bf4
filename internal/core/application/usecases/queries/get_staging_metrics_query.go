package queries

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

var (
	ErrGetStagingMetricsQueryIsNotConstructed = errors.New(
		"GetStagingMetricsQuery must be created via NewGetStagingMetricsQuery constructor",
	)
)

// GetStagingMetricsQuery retrieves occupancy and dwell statistics for the
// staging floor.
type GetStagingMetricsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetStagingMetricsQuery creates a parameterless metrics query.
func NewGetStagingMetricsQuery() GetStagingMetricsQuery {
	return GetStagingMetricsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetStagingMetricsQuery) Validate() error {
	return q.guard.Validate(ErrGetStagingMetricsQueryIsNotConstructed)
}

// GetStagingMetricsQueryResponse summarizes the staging floor at the time of
// the query. UtilizationPercent is load over capacity across all areas.
type GetStagingMetricsQueryResponse struct {
	TotalAreas          int     `json:"totalAreas"`
	IdleAreas           int     `json:"idleAreas"`
	FillingAreas        int     `json:"fillingAreas"`
	ReadyAreas          int     `json:"readyAreas"`
	TotalCapacity       int     `json:"totalCapacity"`
	CurrentLoad         int     `json:"currentLoad"`
	UtilizationPercent  float64 `json:"utilizationPercent"`
	OpenAssignments     int     `json:"openAssignments"`
	LoadedAssignments   int     `json:"loadedAssignments"`
	AverageDwellMinutes float64 `json:"averageDwellMinutes"`
}
