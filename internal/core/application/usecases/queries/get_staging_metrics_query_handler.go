package queries

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/staging"

	"gorm.io/gorm"
)

// GetStagingMetricsQueryHandler aggregates staging floor statistics with
// direct SQL.
type GetStagingMetricsQueryHandler struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGetStagingMetricsQueryHandler creates a handler for staging metrics
// queries. Requires a GORM database connection for query execution.
func NewGetStagingMetricsQueryHandler(db *gorm.DB) GetStagingMetricsQueryHandler {
	return GetStagingMetricsQueryHandler{db: db, now: time.Now}
}

// Handle computes area occupancy and open assignment dwell in two
// aggregate queries.
func (h GetStagingMetricsQueryHandler) Handle(
	ctx context.Context,
	query GetStagingMetricsQuery,
) (GetStagingMetricsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetStagingMetricsQueryResponse{}, err
	}

	var resp GetStagingMetricsQueryResponse

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = ?),
			COUNT(*) FILTER (WHERE status = ?),
			COUNT(*) FILTER (WHERE status = ?),
			COALESCE(SUM(capacity), 0),
			COALESCE(SUM(current_load), 0)
		FROM staging_areas
	`, staging.AreaIdle, staging.AreaFilling, staging.AreaReady).Row()

	err := row.Scan(
		&resp.TotalAreas,
		&resp.IdleAreas,
		&resp.FillingAreas,
		&resp.ReadyAreas,
		&resp.TotalCapacity,
		&resp.CurrentLoad,
	)
	if err != nil {
		return GetStagingMetricsQueryResponse{}, err
	}

	if resp.TotalCapacity > 0 {
		resp.UtilizationPercent = float64(resp.CurrentLoad) / float64(resp.TotalCapacity) * 100
	}

	row = h.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = ?),
			COALESCE(AVG(EXTRACT(EPOCH FROM ? - assigned_at) / 60), 0)
		FROM staging_assignments
		WHERE status != ?
	`, staging.AssignmentLoaded, h.now().UTC(), staging.AssignmentCompleted).Row()

	err = row.Scan(
		&resp.OpenAssignments,
		&resp.LoadedAssignments,
		&resp.AverageDwellMinutes,
	)
	if err != nil {
		return GetStagingMetricsQueryResponse{}, err
	}

	return resp, nil
}
