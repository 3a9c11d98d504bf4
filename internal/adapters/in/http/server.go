// Package http exposes the fulfillment use cases over HTTP.
// It coordinates between HTTP handlers and application use cases.
package http

import (
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// Error is the JSON error envelope returned by every endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Server handles the fulfillment HTTP API.
type Server struct {
	// Command handlers
	processOrderHandler *commands.ProcessOrderCommandHandler
	stagingSweepHandler *commands.ProcessStagingAlertsCommandHandler

	// Query handlers
	stagingAlertsHandler  queries.GetStagingAlertsQueryHandler
	stagingMetricsHandler queries.GetStagingMetricsQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	processOrderHandler *commands.ProcessOrderCommandHandler,
	stagingSweepHandler *commands.ProcessStagingAlertsCommandHandler,
	stagingAlertsHandler queries.GetStagingAlertsQueryHandler,
	stagingMetricsHandler queries.GetStagingMetricsQueryHandler,
) *Server {
	return &Server{
		processOrderHandler:   processOrderHandler,
		stagingSweepHandler:   stagingSweepHandler,
		stagingAlertsHandler:  stagingAlertsHandler,
		stagingMetricsHandler: stagingMetricsHandler,
	}
}

// RegisterRoutes attaches the API endpoints to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")
	api.POST("/orders/:orderId/process", s.ProcessOrder)
	api.POST("/staging/sweep", s.SweepStaging)
	api.GET("/staging/alerts", s.GetStagingAlerts)
	api.GET("/staging/metrics", s.GetStagingMetrics)
}

// ProcessOrder handles POST /api/v1/orders/:orderId/process - drives one
// order through the fulfillment pipeline and reports the outcome.
//
// The response carries the processing result regardless of outcome; the
// Success flag and Status field tell the caller how far the order got.
func (s *Server) ProcessOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order identifier",
		})
	}

	cmd, err := commands.NewProcessOrderCommand(orderID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order identifier",
		})
	}

	result := s.processOrderHandler.Handle(ctx.Request().Context(), cmd)
	return ctx.JSON(http.StatusOK, result)
}

// SweepStaging handles POST /api/v1/staging/sweep - runs one staging monitor
// sweep on demand and returns the alerts it raised.
func (s *Server) SweepStaging(ctx echo.Context) error {
	cmd := commands.NewProcessStagingAlertsCommand()

	alerts, err := s.stagingSweepHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to sweep staging areas",
		})
	}

	return ctx.JSON(http.StatusOK, alerts)
}

// GetStagingAlerts handles GET /api/v1/staging/alerts - reports dwell alerts
// without triggering notifications or hand-offs.
func (s *Server) GetStagingAlerts(ctx echo.Context) error {
	query := queries.NewGetStagingAlertsQuery()

	alerts, err := s.stagingAlertsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve staging alerts",
		})
	}

	return ctx.JSON(http.StatusOK, alerts)
}

// GetStagingMetrics handles GET /api/v1/staging/metrics - reports occupancy
// and dwell statistics for the staging floor.
func (s *Server) GetStagingMetrics(ctx echo.Context) error {
	query := queries.NewGetStagingMetricsQuery()

	metrics, err := s.stagingMetricsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve staging metrics",
		})
	}

	return ctx.JSON(http.StatusOK, metrics)
}
