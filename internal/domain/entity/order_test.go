package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
)

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	all := []entity.OrderStatus{
		entity.OrderStatusDraft, entity.OrderStatusOrdered, entity.OrderStatusPartiallyReceived,
		entity.OrderStatusReceived, entity.OrderStatusCancelled,
	}
	allowed := map[entity.OrderStatus][]entity.OrderStatus{
		entity.OrderStatusDraft:             {entity.OrderStatusOrdered, entity.OrderStatusCancelled},
		entity.OrderStatusOrdered:           {entity.OrderStatusPartiallyReceived, entity.OrderStatusReceived, entity.OrderStatusCancelled},
		entity.OrderStatusPartiallyReceived: {entity.OrderStatusReceived, entity.OrderStatusCancelled},
	}
	for _, from := range all {
		for _, to := range all {
			want := false
			for _, a := range allowed[from] {
				if a == to {
					want = true
				}
			}
			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestParseOrderStatus(t *testing.T) {
	st, err := entity.ParseOrderStatus("partially_received")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPartiallyReceived, st)

	_, err = entity.ParseOrderStatus("shipped")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestParseCondition(t *testing.T) {
	for _, c := range entity.Conditions {
		got, err := entity.ParseCondition(string(c))
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
	_, err := entity.ParseCondition("broken")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestOrder_MarkOrdered(t *testing.T) {
	now := time.Now()
	o, err := entity.NewOrder("o1", "s1", "Bogotá", "", "u1", now)
	require.NoError(t, err)

	assert.ErrorIs(t, o.MarkOrdered(0, now), domain.ErrEmptyOrder)
	assert.Equal(t, entity.OrderStatusDraft, o.Status)

	require.NoError(t, o.MarkOrdered(2, now))
	assert.Equal(t, entity.OrderStatusOrdered, o.Status)
	require.NotNil(t, o.OrderedAt)

	assert.ErrorIs(t, o.MarkOrdered(2, now), domain.ErrInvalidTransition)
}

func TestOrder_CancelDesdeTerminalFalla(t *testing.T) {
	now := time.Now()
	o, _ := entity.NewOrder("o1", "s1", "Bogotá", "", "u1", now)
	require.NoError(t, o.Cancel(now))
	assert.Equal(t, entity.OrderStatusCancelled, o.Status)
	assert.ErrorIs(t, o.Cancel(now), domain.ErrInvalidTransition)
}

func TestOrder_ApplyDerivedStatus(t *testing.T) {
	now := time.Now()
	o, _ := entity.NewOrder("o1", "s1", "Bogotá", "", "u1", now)

	assert.False(t, o.ApplyDerivedStatus(entity.OrderStatusPartiallyReceived, now), "draft no se deriva")

	require.NoError(t, o.MarkOrdered(1, now))
	assert.True(t, o.ApplyDerivedStatus(entity.OrderStatusPartiallyReceived, now))
	assert.False(t, o.ApplyDerivedStatus(entity.OrderStatusOrdered, now), "nunca retrocede")
	assert.True(t, o.ApplyDerivedStatus(entity.OrderStatusReceived, now))
	assert.False(t, o.ApplyDerivedStatus(entity.OrderStatusCancelled, now), "cancelar no es derivado")
	assert.Equal(t, entity.OrderStatusReceived, o.Status)
}

func TestOrderItem_Remaining(t *testing.T) {
	it := entity.OrderItem{Qty: 10}
	assert.Equal(t, 10, it.Remaining(0))
	assert.Equal(t, 6, it.Remaining(4))
	assert.Equal(t, 0, it.Remaining(12))
	assert.False(t, it.IsResolved())
}
