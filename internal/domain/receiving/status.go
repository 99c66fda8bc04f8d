package receiving

import "github.com/jhoicas/Repuestos-api/internal/domain/entity"

// LineProgress cantidades pedida y recibida de una línea.
type LineProgress struct {
	Ordered  int
	Received int
}

// DeriveStatus calcula el estado del pedido a partir de lo recibido (servicio de dominio).
//   - received si no queda pendiente en ninguna línea
//   - partially_received si se recibió algo pero no todo
//   - sin cambio en cualquier otro caso
//
// Solo aplica a pedidos ordered o partially_received; nunca retrocede.
func DeriveStatus(current entity.OrderStatus, lines []LineProgress) entity.OrderStatus {
	if !current.CanReceive() || len(lines) == 0 {
		return current
	}
	pending, received := 0, 0
	for _, l := range lines {
		if l.Received < l.Ordered {
			pending += l.Ordered - l.Received
		}
		received += l.Received
	}
	switch {
	case pending == 0:
		return entity.OrderStatusReceived
	case received > 0:
		return entity.OrderStatusPartiallyReceived
	}
	return current
}
