package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/staging"
)

// AlertLevel is the severity tier of a staging dwell alert.
type AlertLevel string

const (
	// AlertWarning fires once an assignment has dwelled past one hour.
	AlertWarning AlertLevel = "warning"

	// AlertCritical fires once an assignment has dwelled past two hours.
	AlertCritical AlertLevel = "critical"
)

// StagingAlert describes one order overstaying its staging slot.
type StagingAlert struct {
	OrderID         string                   `json:"orderId"`
	OrderNumber     string                   `json:"orderNumber"`
	StagingAreaID   string                   `json:"stagingAreaId"`
	StagingAreaName string                   `json:"stagingAreaName"`
	TimeInStaging   int                      `json:"timeInStaging"`
	Status          staging.AssignmentStatus `json:"status"`
	AlertLevel      AlertLevel               `json:"alertLevel"`
}

// AlertNotifier delivers staging dwell alerts to an alerting collaborator.
type AlertNotifier interface {
	// Notify delivers one alert. Delivery failures do not stop the
	// monitor sweep; the caller decides how to surface them.
	Notify(ctx context.Context, alert StagingAlert) error
}
