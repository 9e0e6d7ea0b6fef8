package sales

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaleTotals(t *testing.T) {
	s, err := NewSale(uuid.New(), PaymentCash)
	require.NoError(t, err)
	assert.Equal(t, SaleStatusPending, s.Status)

	p1 := uuid.New()
	p2 := uuid.New()

	require.NoError(t, s.AddItem(p1, "Sucre 1kg", "10001", decimal.NewFromInt(2), decimal.NewFromInt(750)))
	require.NoError(t, s.AddItem(p2, "Thé vert", "10002", decimal.NewFromInt(1), decimal.NewFromInt(1250)))
	assert.True(t, s.Total.Equal(decimal.NewFromInt(2750)))

	t.Run("same product merges into the existing line", func(t *testing.T) {
		require.NoError(t, s.AddItem(p1, "Sucre 1kg", "10001", decimal.NewFromInt(3), decimal.NewFromInt(750)))
		require.Len(t, s.Items, 2)
		assert.True(t, s.Items[0].Quantity.Equal(decimal.NewFromInt(5)))
		assert.True(t, s.Total.Equal(decimal.NewFromInt(5000)))
	})

	t.Run("removing a line recomputes the total", func(t *testing.T) {
		require.NoError(t, s.RemoveItem(s.Items[1].ID))
		assert.True(t, s.Total.Equal(decimal.NewFromInt(3750)))
	})

	t.Run("fractional weight line", func(t *testing.T) {
		require.NoError(t, s.AddItem(uuid.New(), "Viande", "10003",
			decimal.RequireFromString("0.750"), decimal.NewFromInt(3000)))
		assert.True(t, s.Total.Equal(decimal.NewFromInt(6000)))
	})
}

func TestSaleLifecycle(t *testing.T) {
	s, err := NewSale(uuid.New(), PaymentMobileMoney)
	require.NoError(t, err)

	t.Run("cannot complete an empty sale", func(t *testing.T) {
		require.Error(t, s.Complete())
	})

	require.NoError(t, s.AddItem(uuid.New(), "Lait", "10010", decimal.NewFromInt(1), decimal.NewFromInt(500)))

	t.Run("complete closes the ticket and publishes event", func(t *testing.T) {
		require.NoError(t, s.Complete())
		assert.Equal(t, SaleStatusCompleted, s.Status)
		require.NotNil(t, s.CompletedAt)

		events := s.GetDomainEvents()
		require.NotEmpty(t, events)
		assert.Equal(t, EventTypeSaleCompleted, events[len(events)-1].EventType())
	})

	t.Run("completed sale rejects further mutation", func(t *testing.T) {
		require.Error(t, s.AddItem(uuid.New(), "X", "10011", decimal.NewFromInt(1), decimal.Zero))
		require.Error(t, s.Complete())
		require.Error(t, s.Cancel())
	})

	t.Run("invalid payment method rejected", func(t *testing.T) {
		_, err := NewSale(uuid.New(), PaymentMethod("barter"))
		require.Error(t, err)
	})
}

func TestOrderLifecycle(t *testing.T) {
	o, err := NewOrder(uuid.New(), OrderTypeSupplier, "Fournisseur Bama")
	require.NoError(t, err)
	assert.Equal(t, OrderStatusDraft, o.Status)
	assert.Contains(t, o.Reference, "ORD-")

	require.NoError(t, o.AddItem(uuid.New(), "Huile 5L", decimal.NewFromInt(10), decimal.NewFromInt(6000)))
	assert.True(t, o.Total.Equal(decimal.NewFromInt(60000)))

	t.Run("duplicate product line rejected", func(t *testing.T) {
		err := o.AddItem(o.Items[0].ProductID, "Huile 5L", decimal.NewFromInt(1), decimal.NewFromInt(6000))
		require.Error(t, err)
	})

	t.Run("quantity update recomputes totals", func(t *testing.T) {
		require.NoError(t, o.UpdateItemQuantity(o.Items[0].ID, decimal.NewFromInt(5)))
		assert.True(t, o.Total.Equal(decimal.NewFromInt(30000)))
	})

	t.Run("confirm then deliver", func(t *testing.T) {
		require.NoError(t, o.Confirm())
		require.Error(t, o.AddItem(uuid.New(), "Sel", decimal.NewFromInt(1), decimal.NewFromInt(100)))
		require.NoError(t, o.MarkDelivered())
		assert.Equal(t, OrderStatusDelivered, o.Status)
		require.Error(t, o.Cancel())
	})

	t.Run("cannot confirm empty order", func(t *testing.T) {
		empty, err := NewOrder(uuid.New(), OrderTypeCustomer, "")
		require.NoError(t, err)
		require.Error(t, empty.Confirm())
		require.NoError(t, empty.Cancel())
	})

	t.Run("unknown order type rejected", func(t *testing.T) {
		_, err := NewOrder(uuid.New(), OrderType("transfer"), "")
		require.Error(t, err)
	})
}
