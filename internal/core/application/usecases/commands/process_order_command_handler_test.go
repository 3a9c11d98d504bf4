package commands_test

import (
	"errors"
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/staging"
	"fulfillment/internal/core/domain/services/validation"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type pipelineMocks struct {
	orderRepo  *MockOrderRepository
	areaRepo   *MockStagingAreaRepository
	assignRepo *MockStagingAssignmentRepository
	uow        *MockPipelineUoW
	factory    *MockPipelineUoWFactory
	validator  *MockValidator
	inventory  *MockInventoryReader
	allocation *MockAllocationClient
	handoff    *MockHandoffExecutor
}

// newPipelineMocks wires a unit of work whose lifecycle calls always
// succeed; individual tests add repository expectations on top.
func newPipelineMocks() *pipelineMocks {
	m := &pipelineMocks{
		orderRepo:  new(MockOrderRepository),
		areaRepo:   new(MockStagingAreaRepository),
		assignRepo: new(MockStagingAssignmentRepository),
		uow:        new(MockPipelineUoW),
		factory:    new(MockPipelineUoWFactory),
		validator:  new(MockValidator),
		inventory:  new(MockInventoryReader),
		allocation: new(MockAllocationClient),
		handoff:    new(MockHandoffExecutor),
	}

	m.uow.On("Begin", mock.Anything).Return(nil)
	m.uow.On("Commit", mock.Anything).Return(nil)
	m.uow.On("Rollback", mock.Anything).Return(nil)
	m.uow.On("OrderRepository").Return(m.orderRepo)
	m.uow.On("StagingAreaRepository").Return(m.areaRepo)
	m.uow.On("StagingAssignmentRepository").Return(m.assignRepo)
	m.factory.On("Create").Return(m.uow)

	return m
}

func (m *pipelineMocks) handler(t *testing.T) *commands.ProcessOrderCommandHandler {
	t.Helper()
	h, err := commands.NewProcessOrderCommandHandler(m.factory, m.validator, m.inventory, m.allocation, m.handoff)
	require.NoError(t, err)
	return h
}

func validResult() validation.Result {
	return validation.Result{IsValid: true, Score: 100}
}

func TestProcessOrderCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()
	m := newPipelineMocks()

	testOrder := restoreTestOrder(t, order.Created)
	cmd, err := commands.NewProcessOrderCommand(testOrder.ID())
	require.NoError(t, err)

	m.orderRepo.On("Get", ctx, testOrder.ID()).
		Return(nil, errs.NewObjectNotFoundError("orderID", testOrder.ID())).
		Once()

	result := m.handler(t).Handle(ctx, cmd)

	assert.False(t, result.Success)
	assert.Equal(t, commands.StatusValidationFailed, result.Status)
	assert.Contains(t, result.Errors, "Order not found")
	m.validator.AssertNotCalled(t, "ValidateOrder")
}

func TestProcessOrderCommandHandler_Handle_ValidationFailed(t *testing.T) {
	ctx := t.Context()
	m := newPipelineMocks()

	testOrder := restoreTestOrder(t, order.Created)
	cmd, err := commands.NewProcessOrderCommand(testOrder.ID())
	require.NoError(t, err)

	m.orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once()
	m.validator.On("ValidateOrder", ctx, testOrder).Return(validation.Result{
		IsValid:  false,
		Errors:   []string{"Customer account is inactive"},
		Warnings: []string{"Customer approaching credit limit"},
		Score:    70,
	}).Once()

	result := m.handler(t).Handle(ctx, cmd)

	assert.False(t, result.Success)
	assert.Equal(t, commands.StatusValidationFailed, result.Status)
	assert.Equal(t, "Order validation failed", result.Message)
	assert.Contains(t, result.Errors, "Customer account is inactive")
	assert.Contains(t, result.Warnings, "Customer approaching credit limit")
	assert.Equal(t, order.Created, testOrder.Status())
	m.allocation.AssertNotCalled(t, "AllocateOrder")
	m.orderRepo.AssertNotCalled(t, "Update")
}

func TestProcessOrderCommandHandler_Handle_InsufficientInventory(t *testing.T) {
	ctx := t.Context()
	m := newPipelineMocks()

	testOrder := restoreTestOrder(t, order.Created) // requires 10 of SKU-1
	cmd, err := commands.NewProcessOrderCommand(testOrder.ID())
	require.NoError(t, err)

	m.orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once()
	m.validator.On("ValidateOrder", ctx, testOrder).Return(validResult()).Once()
	m.inventory.On("GetBySKU", ctx, "ORG-1", "SKU-1").Return(stockedItem("SKU-1", 5), nil).Once()

	result := m.handler(t).Handle(ctx, cmd)

	assert.False(t, result.Success)
	assert.Equal(t, commands.StatusInsufficientInventory, result.Status)
	assert.Contains(t, result.Errors, "Item SKU-1: Required 10, Available 5")
	assert.Equal(t, order.Created, testOrder.Status(), "shortage must not advance the order")
	m.allocation.AssertNotCalled(t, "AllocateOrder")
	m.orderRepo.AssertNotCalled(t, "Update")
}

func TestProcessOrderCommandHandler_Handle_MissingInventoryRecordCountsAsZero(t *testing.T) {
	ctx := t.Context()
	m := newPipelineMocks()

	testOrder := restoreTestOrder(t, order.Created)
	cmd, err := commands.NewProcessOrderCommand(testOrder.ID())
	require.NoError(t, err)

	m.orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once()
	m.validator.On("ValidateOrder", ctx, testOrder).Return(validResult()).Once()
	m.inventory.On("GetBySKU", ctx, "ORG-1", "SKU-1").
		Return(nil, errs.NewObjectNotFoundError("sku", "SKU-1")).
		Once()

	result := m.handler(t).Handle(ctx, cmd)

	assert.False(t, result.Success)
	assert.Equal(t, commands.StatusInsufficientInventory, result.Status)
	assert.Contains(t, result.Errors, "Item SKU-1: Required 10, Available 0")
}

func TestProcessOrderCommandHandler_Handle_AllocationFailurePassesStatusThrough(t *testing.T) {
	ctx := t.Context()
	m := newPipelineMocks()

	testOrder := restoreTestOrder(t, order.Created)
	cmd, err := commands.NewProcessOrderCommand(testOrder.ID())
	require.NoError(t, err)

	m.orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once()
	m.validator.On("ValidateOrder", ctx, testOrder).Return(validResult()).Once()
	m.inventory.On("GetBySKU", ctx, "ORG-1", "SKU-1").Return(stockedItem("SKU-1", 100), nil).Once()
	m.allocation.On("AllocateOrder", ctx, testOrder.ID()).Return(ports.PartiallyAllocated, nil).Once()

	result := m.handler(t).Handle(ctx, cmd)

	assert.False(t, result.Success)
	assert.Equal(t, string(ports.PartiallyAllocated), result.Status)
	assert.Equal(t, "Failed to allocate inventory", result.Message)
	assert.Contains(t, result.Errors, "Partial or failed allocation")
	assert.Equal(t, order.Created, testOrder.Status())
}

func TestProcessOrderCommandHandler_Handle_StagingFailed(t *testing.T) {
	ctx := t.Context()
	m := newPipelineMocks()

	testOrder := restoreTestOrder(t, order.Created)
	cmd, err := commands.NewProcessOrderCommand(testOrder.ID())
	require.NoError(t, err)

	m.orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once()
	m.validator.On("ValidateOrder", ctx, testOrder).Return(validResult()).Once()
	m.inventory.On("GetBySKU", ctx, "ORG-1", "SKU-1").Return(stockedItem("SKU-1", 100), nil).Once()
	m.allocation.On("AllocateOrder", ctx, testOrder.ID()).Return(ports.Allocated, nil).Once()
	m.orderRepo.On("Update", ctx, testOrder).Return(nil)
	m.areaRepo.On("GetLeastLoadedAvailable", ctx, "ORG-1").
		Return(nil, errs.NewObjectNotFoundError("stagingArea", "ORG-1")).
		Once()

	result := m.handler(t).Handle(ctx, cmd)

	assert.False(t, result.Success)
	assert.Equal(t, commands.StatusStagingFailed, result.Status)
	assert.Contains(t, result.Errors, "No available staging areas")
	assert.Equal(t, order.Packing, testOrder.Status(), "order keeps the last completed stage for retry")
	m.handoff.AssertNotCalled(t, "Handle")
}

func TestProcessOrderCommandHandler_Handle_HappyPath(t *testing.T) {
	ctx := t.Context()
	m := newPipelineMocks()

	testOrder := restoreTestOrder(t, order.Created)
	cmd, err := commands.NewProcessOrderCommand(testOrder.ID())
	require.NoError(t, err)

	area := restoreTestArea(t, 0, 4)

	m.orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once()
	m.validator.On("ValidateOrder", ctx, testOrder).Return(validResult()).Once()
	// 11 available for 10 required: sufficient, but under the 20% buffer.
	m.inventory.On("GetBySKU", ctx, "ORG-1", "SKU-1").Return(stockedItem("SKU-1", 11), nil).Once()
	m.allocation.On("AllocateOrder", ctx, testOrder.ID()).Return(ports.Allocated, nil).Once()
	m.orderRepo.On("Update", ctx, testOrder).Return(nil)
	m.areaRepo.On("GetLeastLoadedAvailable", ctx, "ORG-1").Return(area, nil).Once()
	m.assignRepo.On("Add", ctx, mock.AnythingOfType("*staging.Assignment")).Return(nil).Once()
	m.areaRepo.On("Reserve", ctx, area.ID()).Return(nil).Once()
	m.assignRepo.On("MarkLoaded", ctx, mock.Anything).Return(nil).Once()
	m.areaRepo.On("MarkReady", ctx, area.ID()).Return(nil).Once()
	m.handoff.On("Handle", ctx, mock.MatchedBy(func(c commands.HandoffToTMSCommand) bool {
		return c.StagingAreaID().IsEqual(area.ID()) && c.OrderID().IsEqual(testOrder.ID())
	})).Return(commands.HandoffResult{
		ShipmentID:     "TMS-SHIP-42",
		CarrierID:      "CARRIER-001",
		CarrierName:    "FedEx",
		TrackingNumber: "FDX1234567890",
		RemoteAccepted: true,
	}, nil).Once()

	result := m.handler(t).Handle(ctx, cmd)

	assert.True(t, result.Success)
	assert.Equal(t, commands.StatusShipped, result.Status)
	assert.Equal(t, "TMS-SHIP-42", result.ShipmentID)
	assert.Equal(t, "FDX1234567890", result.TrackingNumber)
	assert.Contains(t, result.Warnings, "Low stock for item SKU-1: 11 remaining after allocation")
	assert.Equal(t, order.Staging, testOrder.Status(), "final shipped transition belongs to the hand-off")
	m.handoff.AssertExpectations(t)
	m.areaRepo.AssertExpectations(t)
	m.assignRepo.AssertExpectations(t)
}

func TestProcessOrderCommandHandler_Handle_HandoffFailureStillReportsSuccess(t *testing.T) {
	ctx := t.Context()
	m := newPipelineMocks()

	testOrder := restoreTestOrder(t, order.Created)
	cmd, err := commands.NewProcessOrderCommand(testOrder.ID())
	require.NoError(t, err)

	area := restoreTestArea(t, 0, 4)

	m.orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once()
	m.validator.On("ValidateOrder", ctx, testOrder).Return(validResult()).Once()
	m.inventory.On("GetBySKU", ctx, "ORG-1", "SKU-1").Return(stockedItem("SKU-1", 100), nil).Once()
	m.allocation.On("AllocateOrder", ctx, testOrder.ID()).Return(ports.Allocated, nil).Once()
	m.orderRepo.On("Update", ctx, testOrder).Return(nil)
	m.areaRepo.On("GetLeastLoadedAvailable", ctx, "ORG-1").Return(area, nil).Once()
	m.assignRepo.On("Add", ctx, mock.AnythingOfType("*staging.Assignment")).Return(nil).Once()
	m.areaRepo.On("Reserve", ctx, area.ID()).Return(nil).Once()
	m.assignRepo.On("MarkLoaded", ctx, mock.Anything).Return(nil).Once()
	m.areaRepo.On("MarkReady", ctx, area.ID()).Return(nil).Once()
	m.handoff.On("Handle", ctx, mock.Anything).
		Return(commands.HandoffResult{}, errors.New("tms unavailable")).
		Once()

	result := m.handler(t).Handle(ctx, cmd)

	assert.True(t, result.Success)
	assert.Equal(t, commands.StatusShipped, result.Status)
	assert.Empty(t, result.ShipmentID)
	require.NotEmpty(t, result.Warnings)
	assert.Contains(t, result.Warnings[len(result.Warnings)-1], "TMS handoff failed")
}

func TestProcessOrderCommandHandler_Handle_ResumeSkipsAllocation(t *testing.T) {
	ctx := t.Context()
	m := newPipelineMocks()

	testOrder := restoreTestOrder(t, order.Allocated)
	cmd, err := commands.NewProcessOrderCommand(testOrder.ID())
	require.NoError(t, err)

	m.orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once()
	m.validator.On("ValidateOrder", ctx, testOrder).Return(validResult()).Once()
	m.inventory.On("GetBySKU", ctx, "ORG-1", "SKU-1").Return(stockedItem("SKU-1", 100), nil).Once()
	m.orderRepo.On("Update", ctx, testOrder).Return(nil)
	m.areaRepo.On("GetLeastLoadedAvailable", ctx, "ORG-1").
		Return(nil, errs.NewObjectNotFoundError("stagingArea", "ORG-1")).
		Once()

	result := m.handler(t).Handle(ctx, cmd)

	assert.Equal(t, commands.StatusStagingFailed, result.Status)
	m.allocation.AssertNotCalled(t, "AllocateOrder")
}

func TestProcessOrderCommandHandler_Handle_ResumeReusesOpenAssignment(t *testing.T) {
	ctx := t.Context()
	m := newPipelineMocks()

	testOrder := restoreTestOrder(t, order.Staging)
	cmd, err := commands.NewProcessOrderCommand(testOrder.ID())
	require.NoError(t, err)

	area := restoreTestArea(t, 1, 4)
	assignment := restoreTestAssignment(t, area.ID(), testOrder.ID(), staging.AssignmentLoaded, timeNowForTest())

	m.orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once()
	m.validator.On("ValidateOrder", ctx, testOrder).Return(validResult()).Once()
	m.inventory.On("GetBySKU", ctx, "ORG-1", "SKU-1").Return(stockedItem("SKU-1", 100), nil).Once()
	m.assignRepo.On("GetOpenByOrder", ctx, testOrder.ID()).Return(assignment, nil).Once()
	m.assignRepo.On("MarkLoaded", ctx, assignment.ID()).Return(ports.ErrAssignmentAlreadyHandled).Once()
	m.areaRepo.On("MarkReady", ctx, area.ID()).Return(nil).Once()
	m.handoff.On("Handle", ctx, mock.Anything).Return(commands.HandoffResult{
		ShipmentID:     "TMS-SHIP-7",
		TrackingNumber: "UPS9999999999",
	}, nil).Once()

	result := m.handler(t).Handle(ctx, cmd)

	assert.True(t, result.Success)
	assert.Equal(t, "TMS-SHIP-7", result.ShipmentID)
	m.assignRepo.AssertNotCalled(t, "Add")
	m.areaRepo.AssertNotCalled(t, "Reserve")
	m.allocation.AssertNotCalled(t, "AllocateOrder")
}

func TestProcessOrderCommandHandler_Handle_NotConstructedCommand(t *testing.T) {
	ctx := t.Context()
	m := newPipelineMocks()

	var cmd commands.ProcessOrderCommand
	result := m.handler(t).Handle(ctx, cmd)

	assert.False(t, result.Success)
	assert.Equal(t, commands.StatusProcessingError, result.Status)
}
