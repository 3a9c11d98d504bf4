package commands_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/domain/model/staging"
	"fulfillment/internal/core/domain/services/validation"
	"fulfillment/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockStagingAreaRepository struct{ mock.Mock }

func (m *MockStagingAreaRepository) Add(ctx context.Context, a *staging.Area) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockStagingAreaRepository) Get(ctx context.Context, id kernel.UUID) (*staging.Area, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*staging.Area), args.Error(1)
}

func (m *MockStagingAreaRepository) GetLeastLoadedAvailable(ctx context.Context, organizationID string) (*staging.Area, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*staging.Area), args.Error(1)
}

func (m *MockStagingAreaRepository) Reserve(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStagingAreaRepository) MarkReady(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStagingAreaRepository) Release(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockStagingAssignmentRepository struct{ mock.Mock }

func (m *MockStagingAssignmentRepository) Add(ctx context.Context, a *staging.Assignment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockStagingAssignmentRepository) GetOpenByOrder(ctx context.Context, orderID kernel.UUID) (*staging.Assignment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*staging.Assignment), args.Error(1)
}

func (m *MockStagingAssignmentRepository) GetAllOpen(ctx context.Context) ([]*staging.Assignment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*staging.Assignment), args.Error(1)
}

func (m *MockStagingAssignmentRepository) MarkLoaded(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStagingAssignmentRepository) Complete(ctx context.Context, id kernel.UUID, completedAt time.Time) error {
	args := m.Called(ctx, id, completedAt)
	return args.Error(0)
}

type MockShipmentRepository struct{ mock.Mock }

func (m *MockShipmentRepository) Add(ctx context.Context, s *shipment.Shipment) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

type MockPipelineUoW struct{ mock.Mock }

func (m *MockPipelineUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPipelineUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPipelineUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPipelineUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockPipelineUoW) StagingAreaRepository() ports.StagingAreaRepository {
	args := m.Called()
	return args.Get(0).(ports.StagingAreaRepository)
}

func (m *MockPipelineUoW) StagingAssignmentRepository() ports.StagingAssignmentRepository {
	args := m.Called()
	return args.Get(0).(ports.StagingAssignmentRepository)
}

type MockPipelineUoWFactory struct{ mock.Mock }

func (m *MockPipelineUoWFactory) Create() commands.PipelineUoW {
	args := m.Called()
	return args.Get(0).(commands.PipelineUoW)
}

type MockHandoffUoW struct{ MockPipelineUoW }

func (m *MockHandoffUoW) ShipmentRepository() ports.ShipmentRepository {
	args := m.Called()
	return args.Get(0).(ports.ShipmentRepository)
}

type MockHandoffUoWFactory struct{ mock.Mock }

func (m *MockHandoffUoWFactory) Create() commands.HandoffUoW {
	args := m.Called()
	return args.Get(0).(commands.HandoffUoW)
}

type MockValidator struct{ mock.Mock }

func (m *MockValidator) ValidateOrder(ctx context.Context, o *order.Order) validation.Result {
	args := m.Called(ctx, o)
	return args.Get(0).(validation.Result)
}

type MockInventoryReader struct{ mock.Mock }

func (m *MockInventoryReader) GetBySKU(ctx context.Context, organizationID, sku string) (*inventory.Item, error) {
	args := m.Called(ctx, organizationID, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Item), args.Error(1)
}

type MockAllocationClient struct{ mock.Mock }

func (m *MockAllocationClient) AllocateOrder(ctx context.Context, orderID kernel.UUID) (ports.AllocationStatus, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(ports.AllocationStatus), args.Error(1)
}

type MockTMSClient struct{ mock.Mock }

func (m *MockTMSClient) CreateShipment(ctx context.Context, req ports.ShipmentRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

type MockHandoffExecutor struct{ mock.Mock }

func (m *MockHandoffExecutor) Handle(ctx context.Context, cmd commands.HandoffToTMSCommand) (commands.HandoffResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.HandoffResult), args.Error(1)
}

type MockAlertNotifier struct{ mock.Mock }

func (m *MockAlertNotifier) Notify(ctx context.Context, alert ports.StagingAlert) error {
	args := m.Called(ctx, alert)
	return args.Error(0)
}

func timeNowForTest() time.Time {
	return time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
}

func stockedItem(sku string, available int) *inventory.Item {
	return &inventory.Item{
		ItemID:            "ITEM-" + sku,
		SKU:               sku,
		Name:              sku,
		OrganizationID:    "ORG-1",
		Active:            true,
		QuantityAvailable: available,
	}
}

func restoreTestOrder(t *testing.T, status order.Status) *order.Order {
	t.Helper()

	items := []order.LineItem{
		{SKU: "SKU-1", Description: "Steel brackets", Quantity: 10, UnitPrice: decimal.NewFromFloat(5.00)},
	}
	address := order.Address{
		Street:  "100 Distribution Way",
		City:    "Memphis",
		State:   "TN",
		ZipCode: "38118",
		Country: "US",
	}

	o, err := order.RestoreOrder(
		kernel.NewUUID(),
		"ORG-1",
		kernel.NewUUID(),
		"SO-1001",
		order.TypeOutbound,
		"MEDIUM",
		2,
		nil,
		address,
		items,
		status,
		nil,
	)
	require.NoError(t, err)
	return o
}

func restoreTestArea(t *testing.T, load, capacity int) *staging.Area {
	t.Helper()

	status := staging.AreaIdle
	if load > 0 {
		status = staging.AreaFilling
	}
	area, err := staging.RestoreArea(kernel.NewUUID(), "ORG-1", "Dock A", capacity, load, status)
	require.NoError(t, err)
	return area
}

func restoreTestAssignment(
	t *testing.T,
	areaID, orderID kernel.UUID,
	status staging.AssignmentStatus,
	assignedAt time.Time,
) *staging.Assignment {
	t.Helper()

	assignment, err := staging.RestoreAssignment(kernel.NewUUID(), areaID, orderID, status, assignedAt, nil)
	require.NoError(t, err)
	return assignment
}
