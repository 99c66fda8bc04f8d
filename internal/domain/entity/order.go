package entity

import (
	"fmt"
	"time"

	"github.com/jhoicas/Repuestos-api/internal/domain"
)

// OrderStatus estado de un pedido a proveedor.
type OrderStatus string

// Estados del pedido. received y cancelled son terminales.
const (
	OrderStatusDraft             OrderStatus = "draft"
	OrderStatusOrdered           OrderStatus = "ordered"
	OrderStatusPartiallyReceived OrderStatus = "partially_received"
	OrderStatusReceived          OrderStatus = "received"
	OrderStatusCancelled         OrderStatus = "cancelled"
)

// ParseOrderStatus convierte un string al estado correspondiente; cualquier otro valor es inválido.
func ParseOrderStatus(s string) (OrderStatus, error) {
	st := OrderStatus(s)
	if !st.IsValid() {
		return "", fmt.Errorf("estado de pedido %q: %w", s, domain.ErrInvalidInput)
	}
	return st, nil
}

func (s OrderStatus) String() string { return string(s) }

// IsValid indica si el estado pertenece al conjunto cerrado.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusDraft, OrderStatusOrdered, OrderStatusPartiallyReceived,
		OrderStatusReceived, OrderStatusCancelled:
		return true
	}
	return false
}

// IsTerminal indica si no hay transición posible desde este estado.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusReceived || s == OrderStatusCancelled
}

// CanReceive indica si se pueden registrar recepciones.
func (s OrderStatus) CanReceive() bool {
	return s == OrderStatusOrdered || s == OrderStatusPartiallyReceived
}

// CanTransitionTo aplica la máquina de estados:
// draft -> ordered -> partially_received -> received, y cancelled desde cualquier estado no terminal.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusDraft:
		return target == OrderStatusOrdered || target == OrderStatusCancelled
	case OrderStatusOrdered:
		return target == OrderStatusPartiallyReceived || target == OrderStatusReceived || target == OrderStatusCancelled
	case OrderStatusPartiallyReceived:
		return target == OrderStatusReceived || target == OrderStatusCancelled
	}
	return false
}

// Order representa un pedido a proveedor. Site es el nombre de la sede y no cambia tras la creación.
type Order struct {
	ID          string
	SupplierID  string
	Site        string
	Status      OrderStatus
	ExternalRef string
	OrderedAt   *time.Time
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewOrder crea un pedido en borrador.
func NewOrder(id, supplierID, site, externalRef, createdBy string, now time.Time) (*Order, error) {
	if supplierID == "" || site == "" {
		return nil, domain.ErrInvalidInput
	}
	return &Order{
		ID:          id,
		SupplierID:  supplierID,
		Site:        site,
		Status:      OrderStatusDraft,
		ExternalRef: externalRef,
		CreatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// IsEditable indica si se pueden agregar líneas.
func (o *Order) IsEditable() bool { return o.Status == OrderStatusDraft }

// MarkOrdered pasa de draft a ordered; requiere al menos una línea.
func (o *Order) MarkOrdered(itemCount int, now time.Time) error {
	if !o.Status.CanTransitionTo(OrderStatusOrdered) {
		return fmt.Errorf("%s -> %s: %w", o.Status, OrderStatusOrdered, domain.ErrInvalidTransition)
	}
	if itemCount == 0 {
		return domain.ErrEmptyOrder
	}
	o.Status = OrderStatusOrdered
	o.OrderedAt = &now
	o.UpdatedAt = now
	return nil
}

// Cancel lleva el pedido a cancelled desde cualquier estado no terminal.
func (o *Order) Cancel(now time.Time) error {
	if !o.Status.CanTransitionTo(OrderStatusCancelled) {
		return fmt.Errorf("%s -> %s: %w", o.Status, OrderStatusCancelled, domain.ErrInvalidTransition)
	}
	o.Status = OrderStatusCancelled
	o.UpdatedAt = now
	return nil
}

// ApplyDerivedStatus aplica un estado calculado a partir de lo recibido.
// Solo avanza hacia partially_received o received; devuelve true si hubo cambio.
func (o *Order) ApplyDerivedStatus(target OrderStatus, now time.Time) bool {
	if target == o.Status {
		return false
	}
	if target != OrderStatusPartiallyReceived && target != OrderStatusReceived {
		return false
	}
	if !o.Status.CanTransitionTo(target) {
		return false
	}
	o.Status = target
	o.UpdatedAt = now
	return true
}
