package order_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test helper functions.
func createValidAddress() order.Address {
	return order.Address{
		Street:  "500 Commerce St",
		City:    "Dallas",
		State:   "TX",
		ZipCode: "75201",
		Country: "US",
	}
}

func createValidItems() []order.LineItem {
	return []order.LineItem{
		{SKU: "SKU-100", Description: "Widget", Quantity: 10, UnitPrice: decimal.NewFromFloat(4.99)},
		{SKU: "SKU-200", Description: "Gadget", Quantity: 2, UnitPrice: decimal.NewFromFloat(19.50)},
	}
}

func createValidOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(),
		"org-1",
		kernel.NewUUID(),
		"SO-1001",
		order.TypeOutbound,
		2,
		createValidAddress(),
		createValidItems(),
	)
	require.NoError(t, err)
	require.NotNil(t, o)
	return o
}

func TestNewOrder(t *testing.T) {
	validID := kernel.NewUUID()
	validCustomerID := kernel.NewUUID()

	t.Run("should create order with valid parameters", func(t *testing.T) {
		o, err := order.NewOrder(
			validID, "org-1", validCustomerID, "SO-1001",
			order.TypeOutbound, 2, createValidAddress(), createValidItems(),
		)

		require.NoError(t, err)
		assert.True(t, o.ID().IsEqual(validID))
		assert.Equal(t, "org-1", o.OrganizationID())
		assert.True(t, o.CustomerID().IsEqual(validCustomerID))
		assert.Equal(t, "SO-1001", o.OrderNumber())
		assert.Equal(t, order.TypeOutbound, o.OrderType())
		assert.Equal(t, 2, o.RequiredPallets())
		assert.Equal(t, order.Created, o.Status())
		assert.Nil(t, o.ShippedAt())
		require.NoError(t, o.Validate())
	})

	t.Run("should return error for invalid order id", func(t *testing.T) {
		var invalidID kernel.UUID

		o, err := order.NewOrder(
			invalidID, "org-1", validCustomerID, "SO-1001",
			order.TypeOutbound, 2, createValidAddress(), createValidItems(),
		)

		require.Error(t, err)
		assert.Nil(t, o)
	})

	t.Run("should return error for empty organization id", func(t *testing.T) {
		o, err := order.NewOrder(
			validID, "", validCustomerID, "SO-1001",
			order.TypeOutbound, 2, createValidAddress(), createValidItems(),
		)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should return error for invalid order type", func(t *testing.T) {
		o, err := order.NewOrder(
			validID, "org-1", validCustomerID, "SO-1001",
			order.Type("XX"), 2, createValidAddress(), createValidItems(),
		)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should return error for non-positive pallet count", func(t *testing.T) {
		o, err := order.NewOrder(
			validID, "org-1", validCustomerID, "SO-1001",
			order.TypeOutbound, 0, createValidAddress(), createValidItems(),
		)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "requiredPallets is invalid")
	})

	t.Run("should return error for empty items", func(t *testing.T) {
		o, err := order.NewOrder(
			validID, "org-1", validCustomerID, "SO-1001",
			order.TypeOutbound, 2, createValidAddress(), nil,
		)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("should restore order with persisted state", func(t *testing.T) {
		shippedAt := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)

		o, err := order.RestoreOrder(
			kernel.NewUUID(), "org-1", kernel.NewUUID(), "SO-1001",
			order.TypeOutbound, "HIGH", 2, nil,
			createValidAddress(), createValidItems(),
			order.Shipped, &shippedAt,
		)

		require.NoError(t, err)
		assert.Equal(t, order.Shipped, o.Status())
		assert.Equal(t, "HIGH", o.Priority())
		require.NotNil(t, o.ShippedAt())
		assert.True(t, o.ShippedAt().Equal(shippedAt))
	})

	t.Run("should return error for invalid status", func(t *testing.T) {
		o, err := order.RestoreOrder(
			kernel.NewUUID(), "org-1", kernel.NewUUID(), "SO-1001",
			order.TypeOutbound, "", 2, nil,
			createValidAddress(), createValidItems(),
			order.Unknown, nil,
		)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestOrder_Subtotal(t *testing.T) {
	o := createValidOrder(t)

	// 10 x 4.99 + 2 x 19.50
	assert.True(t, o.Subtotal().Equal(decimal.NewFromFloat(88.90)))
}

func TestOrder_AdvanceTo(t *testing.T) {
	t.Run("should advance forward through the pipeline", func(t *testing.T) {
		o := createValidOrder(t)

		require.NoError(t, o.AdvanceTo(order.Allocated))
		require.NoError(t, o.AdvanceTo(order.Picking))
		require.NoError(t, o.AdvanceTo(order.Packing))
		require.NoError(t, o.AdvanceTo(order.Staging))

		assert.Equal(t, order.Staging, o.Status())
	})

	t.Run("should allow skipping intermediate stages", func(t *testing.T) {
		o := createValidOrder(t)

		require.NoError(t, o.AdvanceTo(order.Staging))
		assert.Equal(t, order.Staging, o.Status())
	})

	t.Run("should reject backward transitions", func(t *testing.T) {
		o := createValidOrder(t)
		require.NoError(t, o.AdvanceTo(order.Packing))

		err := o.AdvanceTo(order.Allocated)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, order.Packing, o.Status())
	})

	t.Run("should reject transitions out of a terminal state", func(t *testing.T) {
		o := createValidOrder(t)
		require.NoError(t, o.AdvanceTo(order.Staging))
		require.NoError(t, o.MarkShipped(time.Now()))

		err := o.AdvanceTo(order.Cancelled)

		require.Error(t, err)
		assert.Equal(t, order.Shipped, o.Status())
	})
}

func TestOrder_MarkShipped(t *testing.T) {
	t.Run("should record the hand-off time", func(t *testing.T) {
		o := createValidOrder(t)
		require.NoError(t, o.AdvanceTo(order.Staging))
		at := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)

		require.NoError(t, o.MarkShipped(at))

		assert.Equal(t, order.Shipped, o.Status())
		require.NotNil(t, o.ShippedAt())
		assert.True(t, o.ShippedAt().Equal(at))
	})

	t.Run("should fail for an already shipped order", func(t *testing.T) {
		o := createValidOrder(t)
		require.NoError(t, o.AdvanceTo(order.Staging))
		require.NoError(t, o.MarkShipped(time.Now()))

		err := o.MarkShipped(time.Now())

		require.Error(t, err)
	})
}

func TestOrder_Cancel(t *testing.T) {
	t.Run("should cancel an in-flight order", func(t *testing.T) {
		o := createValidOrder(t)
		require.NoError(t, o.AdvanceTo(order.Picking))

		require.NoError(t, o.Cancel())

		assert.Equal(t, order.Cancelled, o.Status())
	})

	t.Run("should fail for a shipped order", func(t *testing.T) {
		o := createValidOrder(t)
		require.NoError(t, o.AdvanceTo(order.Staging))
		require.NoError(t, o.MarkShipped(time.Now()))

		err := o.Cancel()

		require.Error(t, err)
		assert.Equal(t, order.Shipped, o.Status())
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("should accept constructed order", func(t *testing.T) {
		o := createValidOrder(t)
		require.NoError(t, o.Validate())
	})

	t.Run("should reject order not created via constructor", func(t *testing.T) {
		var o order.Order

		err := o.Validate()

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrOrderIsNotConstructed)
	})

	t.Run("should reject nil order", func(t *testing.T) {
		var o *order.Order

		err := o.Validate()

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrOrderIsNotConstructed)
	})
}
