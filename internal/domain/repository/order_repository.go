package repository

import (
	"context"

	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para pedidos.
// Las lecturas devuelven (nil, nil) si el pedido no existe.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	// GetForUpdate bloquea la fila del pedido (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Order, error)
	// Update persiste estado, ordered_at y updated_at.
	Update(ctx context.Context, order *entity.Order) error
}

// OrderItemRepository define el puerto de persistencia para líneas de pedido.
type OrderItemRepository interface {
	Create(ctx context.Context, item *entity.OrderItem) error
	GetByID(ctx context.Context, id string) (*entity.OrderItem, error)
	ListByOrder(ctx context.Context, orderID string) ([]*entity.OrderItem, error)
	// ListByOrderForUpdate bloquea las líneas del pedido en orden de ID.
	ListByOrderForUpdate(ctx context.Context, orderID string) ([]*entity.OrderItem, error)
	// ListOrphanOrderIDs devuelve los pedidos del proveedor con líneas sin repuesto para esa referencia.
	ListOrphanOrderIDs(ctx context.Context, supplierID, supplierRef string) ([]string, error)
	// RelinkPart asigna partID a toda línea con part_id nulo y esa referencia en pedidos del proveedor.
	// Las líneas ya enlazadas quedan fuera del filtro, así que repetirlo no cambia nada.
	RelinkPart(ctx context.Context, supplierID, supplierRef, partID string) (int, error)
}
