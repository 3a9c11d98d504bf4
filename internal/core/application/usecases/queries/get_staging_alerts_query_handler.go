package queries

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/staging"

	"gorm.io/gorm"
)

// Dwell thresholds mirror the monitor sweep so the query and the sweep
// report the same set of overdue orders.
const (
	alertWarningAfterMinutes  = 60
	alertCriticalAfterMinutes = 120
)

// GetStagingAlertsQueryHandler computes dwell alerts straight from the
// database. Uses direct SQL for read performance; no aggregates are
// rehydrated on this path.
type GetStagingAlertsQueryHandler struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGetStagingAlertsQueryHandler creates a handler for dwell alert queries.
// Requires a GORM database connection for query execution.
func NewGetStagingAlertsQueryHandler(db *gorm.DB) GetStagingAlertsQueryHandler {
	return GetStagingAlertsQueryHandler{db: db, now: time.Now}
}

// Handle returns one alert per open assignment that has been in staging for
// at least the warning threshold, critical once past the critical threshold.
// Results are sorted oldest first so the worst offenders lead the list.
func (h GetStagingAlertsQueryHandler) Handle(
	ctx context.Context,
	query GetStagingAlertsQuery,
) ([]GetStagingAlertsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	alerts := make([]GetStagingAlertsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			sa.order_id,
			o.order_number,
			sa.staging_area_id,
			ar.name,
			sa.status,
			sa.assigned_at
		FROM staging_assignments sa
		JOIN staging_areas ar ON ar.id = sa.staging_area_id
		LEFT JOIN orders o ON o.id = sa.order_id
		WHERE sa.status != ?
		ORDER BY sa.assigned_at
	`, staging.AssignmentCompleted).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	now := h.now()
	for rows.Next() {
		var alert GetStagingAlertsQueryResponse
		var orderNumber *string
		var assignedAt time.Time

		err = rows.Scan(
			&alert.OrderID,
			&orderNumber,
			&alert.StagingAreaID,
			&alert.StagingAreaName,
			&alert.Status,
			&assignedAt,
		)
		if err != nil {
			return nil, err
		}

		minutes := int(now.Sub(assignedAt).Minutes())
		if minutes < alertWarningAfterMinutes {
			continue
		}

		alert.OrderNumber = "UNKNOWN"
		if orderNumber != nil {
			alert.OrderNumber = *orderNumber
		}
		alert.TimeInStaging = minutes
		alert.AlertLevel = "warning"
		if minutes >= alertCriticalAfterMinutes {
			alert.AlertLevel = "critical"
		}

		alerts = append(alerts, alert)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return alerts, nil
}
