package receiving_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/receiving"
)

func TestDeriveStatus(t *testing.T) {
	tests := []struct {
		name    string
		current entity.OrderStatus
		lines   []receiving.LineProgress
		want    entity.OrderStatus
	}{
		{"nada recibido sigue ordered", entity.OrderStatusOrdered,
			[]receiving.LineProgress{{Ordered: 3}, {Ordered: 2}}, entity.OrderStatusOrdered},
		{"recepción parcial {1,0}", entity.OrderStatusOrdered,
			[]receiving.LineProgress{{Ordered: 3, Received: 1}, {Ordered: 2}}, entity.OrderStatusPartiallyReceived},
		{"resto recibido {3,2}", entity.OrderStatusPartiallyReceived,
			[]receiving.LineProgress{{Ordered: 3, Received: 3}, {Ordered: 2, Received: 2}}, entity.OrderStatusReceived},
		{"todo de una vez", entity.OrderStatusOrdered,
			[]receiving.LineProgress{{Ordered: 1, Received: 1}}, entity.OrderStatusReceived},
		{"draft no se deriva", entity.OrderStatusDraft,
			[]receiving.LineProgress{{Ordered: 1, Received: 1}}, entity.OrderStatusDraft},
		{"cancelled no se deriva", entity.OrderStatusCancelled,
			[]receiving.LineProgress{{Ordered: 1, Received: 1}}, entity.OrderStatusCancelled},
		{"sin líneas sin cambio", entity.OrderStatusOrdered, nil, entity.OrderStatusOrdered},
		{"parcial no retrocede", entity.OrderStatusPartiallyReceived,
			[]receiving.LineProgress{{Ordered: 3}}, entity.OrderStatusPartiallyReceived},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, receiving.DeriveStatus(tt.current, tt.lines))
		})
	}
}
