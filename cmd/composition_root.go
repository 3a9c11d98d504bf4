package cmd

import (
	"fmt"
	"log/slog"

	"fulfillment/internal/adapters/out/allocation"
	"fulfillment/internal/adapters/out/notify"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/customerrepo"
	"fulfillment/internal/adapters/out/postgres/inventoryrepo"
	"fulfillment/internal/adapters/out/tms"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/services/rating"
	"fulfillment/internal/core/domain/services/validation"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters into the application use cases.
// Handlers are built once at startup; everything they depend on is
// stateless or concurrency-safe.
type CompositionRoot struct {
	gormDB *gorm.DB

	processOrderHandler *commands.ProcessOrderCommandHandler
	stagingSweepHandler *commands.ProcessStagingAlertsCommandHandler
	handoffHandler      *commands.HandoffToTMSCommandHandler
}

// NewCompositionRoot builds the object graph from configuration and the
// shared database connection.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	uowFactory := postgres.NewGormUnitOfWorkFactory(gormDB)

	pipelineFactory := FuncPipelineUoWFactory(func() commands.PipelineUoW {
		return uowFactory.Create()
	})
	handoffFactory := FuncHandoffUoWFactory(func() commands.HandoffUoW {
		return uowFactory.Create()
	})

	customers := customerrepo.NewGormCustomerReader(gormDB)
	inventory := inventoryrepo.NewGormInventoryReader(gormDB)

	validator, err := validation.NewOrderValidator(customers, inventory)
	if err != nil {
		return nil, fmt.Errorf("build order validator: %w", err)
	}

	allocationClient, err := allocation.NewClient(config.AllocationServiceURL)
	if err != nil {
		return nil, fmt.Errorf("build allocation client: %w", err)
	}

	tmsClient, err := tms.NewClient(config.TMSServiceURL)
	if err != nil {
		return nil, fmt.Errorf("build TMS client: %w", err)
	}

	handoffHandler, err := commands.NewHandoffToTMSCommandHandler(
		handoffFactory,
		rating.NewEngine(),
		tmsClient,
		config.TMSAcceptLocalOnRemoteFailure,
	)
	if err != nil {
		return nil, fmt.Errorf("build handoff handler: %w", err)
	}

	processOrderHandler, err := commands.NewProcessOrderCommandHandler(
		pipelineFactory,
		validator,
		inventory,
		allocationClient,
		handoffHandler,
	)
	if err != nil {
		return nil, fmt.Errorf("build process order handler: %w", err)
	}

	notifier, err := notify.NewSlogNotifier(logger)
	if err != nil {
		return nil, fmt.Errorf("build alert notifier: %w", err)
	}

	stagingSweepHandler, err := commands.NewProcessStagingAlertsCommandHandler(
		pipelineFactory,
		notifier,
		handoffHandler,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("build staging sweep handler: %w", err)
	}

	return &CompositionRoot{
		gormDB:              gormDB,
		processOrderHandler: processOrderHandler,
		stagingSweepHandler: stagingSweepHandler,
		handoffHandler:      handoffHandler,
	}, nil
}

// ProcessOrderCommandHandler returns the fulfillment pipeline handler.
func (c *CompositionRoot) ProcessOrderCommandHandler() *commands.ProcessOrderCommandHandler {
	return c.processOrderHandler
}

// ProcessStagingAlertsCommandHandler returns the staging monitor sweep handler.
func (c *CompositionRoot) ProcessStagingAlertsCommandHandler() *commands.ProcessStagingAlertsCommandHandler {
	return c.stagingSweepHandler
}

// HandoffToTMSCommandHandler returns the carrier hand-off handler.
func (c *CompositionRoot) HandoffToTMSCommandHandler() *commands.HandoffToTMSCommandHandler {
	return c.handoffHandler
}

// GetStagingAlertsQueryHandler returns the dwell alert query handler.
func (c *CompositionRoot) GetStagingAlertsQueryHandler() queries.GetStagingAlertsQueryHandler {
	return queries.NewGetStagingAlertsQueryHandler(c.gormDB)
}

// GetStagingMetricsQueryHandler returns the staging metrics query handler.
func (c *CompositionRoot) GetStagingMetricsQueryHandler() queries.GetStagingMetricsQueryHandler {
	return queries.NewGetStagingMetricsQueryHandler(c.gormDB)
}

type FuncPipelineUoWFactory func() commands.PipelineUoW

func (f FuncPipelineUoWFactory) Create() commands.PipelineUoW {
	return f()
}

type FuncHandoffUoWFactory func() commands.HandoffUoW

func (f FuncHandoffUoWFactory) Create() commands.HandoffUoW {
	return f()
}
