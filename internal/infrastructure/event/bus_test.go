package event

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bolibana/backend/internal/domain/shared"
)

type stockEvent struct {
	shared.BaseDomainEvent
	Reference string `json:"reference"`
}

func newStockEvent(eventType string) *stockEvent {
	return &stockEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, "Product", uuid.New(), uuid.New()),
		Reference:       "VTE-0001",
	}
}

// recordingHandler collects every event it receives
type recordingHandler struct {
	mu         sync.Mutex
	eventTypes []string
	received   []shared.DomainEvent
	err        error
	panics     bool
}

func newRecordingHandler(eventTypes ...string) *recordingHandler {
	return &recordingHandler{eventTypes: eventTypes}
}

func (h *recordingHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.panics {
		panic("handler blew up")
	}
	h.received = append(h.received, event)
	return h.err
}

func (h *recordingHandler) EventTypes() []string {
	return h.eventTypes
}

func (h *recordingHandler) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.received)
}

func newBus() *InMemoryEventBus {
	return NewInMemoryEventBus(zap.NewNop())
}

func TestInMemoryEventBus_Publish(t *testing.T) {
	t.Run("delivers to a typed handler", func(t *testing.T) {
		bus := newBus()
		handler := newRecordingHandler("stock.updated")
		bus.Subscribe(handler)

		event := newStockEvent("stock.updated")
		require.NoError(t, bus.Publish(context.Background(), event))

		require.Equal(t, 1, handler.count())
		assert.Equal(t, event, handler.received[0])
	})

	t.Run("delivers a batch in order", func(t *testing.T) {
		bus := newBus()
		handler := newRecordingHandler("sale.completed")
		bus.Subscribe(handler)

		first := newStockEvent("sale.completed")
		second := newStockEvent("sale.completed")
		require.NoError(t, bus.Publish(context.Background(), first, second))

		require.Equal(t, 2, handler.count())
		assert.Equal(t, first, handler.received[0])
		assert.Equal(t, second, handler.received[1])
	})

	t.Run("fans out to every subscriber", func(t *testing.T) {
		bus := newBus()
		ledger := newRecordingHandler("sale.completed")
		alerts := newRecordingHandler("sale.completed")
		bus.Subscribe(ledger)
		bus.Subscribe(alerts)

		require.NoError(t, bus.Publish(context.Background(), newStockEvent("sale.completed")))

		assert.Equal(t, 1, ledger.count())
		assert.Equal(t, 1, alerts.count())
	})

	t.Run("wildcard handler sees every type", func(t *testing.T) {
		bus := newBus()
		audit := newRecordingHandler()
		bus.Subscribe(audit)

		require.NoError(t, bus.Publish(context.Background(),
			newStockEvent("product.created"),
			newStockEvent("order.delivered"),
		))

		assert.Equal(t, 2, audit.count())
	})

	t.Run("unrelated types are not delivered", func(t *testing.T) {
		bus := newBus()
		handler := newRecordingHandler("order.cancelled")
		bus.Subscribe(handler)

		require.NoError(t, bus.Publish(context.Background(), newStockEvent("order.confirmed")))

		assert.Equal(t, 0, handler.count())
	})
}

func TestInMemoryEventBus_FailingHandlerDoesNotBlockOthers(t *testing.T) {
	bus := newBus()
	broken := newRecordingHandler("stock.low")
	broken.err = errors.New("notification channel down")
	healthy := newRecordingHandler("stock.low")
	bus.Subscribe(broken)
	bus.Subscribe(healthy)

	require.NoError(t, bus.Publish(context.Background(), newStockEvent("stock.low")))

	assert.Equal(t, 1, broken.count())
	assert.Equal(t, 1, healthy.count())
}

func TestInMemoryEventBus_PanickingHandlerIsContained(t *testing.T) {
	bus := newBus()
	panicking := newRecordingHandler("stock.low")
	panicking.panics = true
	healthy := newRecordingHandler("stock.low")
	bus.Subscribe(panicking)
	bus.Subscribe(healthy)

	require.NoError(t, bus.Publish(context.Background(), newStockEvent("stock.low")))

	assert.Equal(t, 1, healthy.count())
}

func TestInMemoryEventBus_Unsubscribe(t *testing.T) {
	bus := newBus()
	handler := newRecordingHandler("product.updated")
	bus.Subscribe(handler)

	require.NoError(t, bus.Publish(context.Background(), newStockEvent("product.updated")))
	require.Equal(t, 1, handler.count())

	bus.Unsubscribe(handler)

	require.NoError(t, bus.Publish(context.Background(), newStockEvent("product.updated")))
	assert.Equal(t, 1, handler.count())
}

func TestInMemoryEventBus_StartStop(t *testing.T) {
	bus := newBus()
	require.NoError(t, bus.Start(context.Background()))

	handler := newRecordingHandler("site.created")
	bus.Subscribe(handler)
	require.NoError(t, bus.Publish(context.Background(), newStockEvent("site.created")))
	assert.Equal(t, 1, handler.count())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, bus.Stop(ctx))
}
