package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
)

var _ repository.OrderItemRepository = (*OrderItemRepo)(nil)

// OrderItemRepo implementación de OrderItemRepository sobre PostgreSQL.
type OrderItemRepo struct {
	q Querier
}

// NewOrderItemRepository construye el adaptador de líneas de pedido.
func NewOrderItemRepository(q Querier) *OrderItemRepo {
	return &OrderItemRepo{q: q}
}

const orderItemColumns = `id, order_id, part_id, COALESCE(supplier_ref, ''), qty, unit_price, currency, created_at`

func scanOrderItem(row pgx.Row) (*entity.OrderItem, error) {
	var it entity.OrderItem
	if err := row.Scan(&it.ID, &it.OrderID, &it.PartID, &it.SupplierRef, &it.Qty, &it.UnitPrice,
		&it.Currency, &it.CreatedAt); err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *OrderItemRepo) list(ctx context.Context, query string, args ...any) ([]*entity.OrderItem, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()
	out := []*entity.OrderItem{}
	for rows.Next() {
		it, err := scanOrderItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// Create inserta la línea.
func (r *OrderItemRepo) Create(ctx context.Context, it *entity.OrderItem) error {
	query := `
		INSERT INTO order_items (id, order_id, part_id, supplier_ref, qty, unit_price, currency, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query, it.ID, it.OrderID, it.PartID, nullIfEmpty(it.SupplierRef),
		it.Qty, it.UnitPrice, it.Currency, it.CreatedAt)
	if err != nil {
		return mapWriteError("create order item", err)
	}
	return nil
}

// GetByID obtiene una línea. Devuelve (nil, nil) si no existe.
func (r *OrderItemRepo) GetByID(ctx context.Context, id string) (*entity.OrderItem, error) {
	if !validID(id) {
		return nil, nil
	}
	it, err := scanOrderItem(r.q.QueryRow(ctx, `SELECT `+orderItemColumns+` FROM order_items WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order item: %w", err)
	}
	return it, nil
}

// ListByOrder lista las líneas en orden de creación.
func (r *OrderItemRepo) ListByOrder(ctx context.Context, orderID string) ([]*entity.OrderItem, error) {
	if !validID(orderID) {
		return []*entity.OrderItem{}, nil
	}
	return r.list(ctx, `SELECT `+orderItemColumns+` FROM order_items WHERE order_id = $1 ORDER BY created_at, id`, orderID)
}

// ListByOrderForUpdate bloquea las líneas del pedido en orden de ID (orden estable entre transacciones).
func (r *OrderItemRepo) ListByOrderForUpdate(ctx context.Context, orderID string) ([]*entity.OrderItem, error) {
	if !validID(orderID) {
		return []*entity.OrderItem{}, nil
	}
	return r.list(ctx, `SELECT `+orderItemColumns+` FROM order_items WHERE order_id = $1 ORDER BY id FOR UPDATE`, orderID)
}

// ListOrphanOrderIDs pedidos del proveedor con líneas sin repuesto para la referencia.
func (r *OrderItemRepo) ListOrphanOrderIDs(ctx context.Context, supplierID, supplierRef string) ([]string, error) {
	if !validID(supplierID) {
		return []string{}, nil
	}
	query := `
		SELECT DISTINCT oi.order_id::text
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE oi.part_id IS NULL AND oi.supplier_ref = $2 AND o.supplier_id = $1
		ORDER BY 1`
	rows, err := r.q.Query(ctx, query, supplierID, supplierRef)
	if err != nil {
		return nil, fmt.Errorf("list orphan orders: %w", err)
	}
	defer rows.Close()
	out := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// RelinkPart asigna el repuesto a las líneas huérfanas del proveedor con esa referencia.
// El filtro part_id IS NULL hace que repetirlo no cambie nada.
func (r *OrderItemRepo) RelinkPart(ctx context.Context, supplierID, supplierRef, partID string) (int, error) {
	query := `
		UPDATE order_items SET part_id = $3
		WHERE part_id IS NULL
		  AND supplier_ref = $2
		  AND order_id IN (SELECT id FROM orders WHERE supplier_id = $1)`
	tag, err := r.q.Exec(ctx, query, supplierID, supplierRef, partID)
	if err != nil {
		return 0, fmt.Errorf("relink order items: %w", err)
	}
	return int(tag.RowsAffected()), nil
}
