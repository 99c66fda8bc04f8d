package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
)

var _ repository.ReceiptRepository = (*ReceiptRepo)(nil)

// ReceiptRepo implementación de ReceiptRepository sobre PostgreSQL. Solo inserta y lee.
type ReceiptRepo struct {
	q Querier
}

// NewReceiptRepository construye el adaptador de recepciones.
func NewReceiptRepository(q Querier) *ReceiptRepo {
	return &ReceiptRepo{q: q}
}

const receiptItemColumns = `ri.id, ri.receipt_id, ri.order_item_id, ri.part_id, ri.qty_received, ri.condition,
	COALESCE(ri.location, '')`

// Create inserta la cabecera de la recepción.
func (r *ReceiptRepo) Create(ctx context.Context, rc *entity.Receipt) error {
	query := `INSERT INTO receipts (id, order_id, site, created_by, created_at) VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.q.Exec(ctx, query, rc.ID, rc.OrderID, rc.Site, nullIfEmpty(rc.CreatedBy), rc.CreatedAt); err != nil {
		return mapWriteError("create receipt", err)
	}
	return nil
}

// CreateItem inserta una línea recibida.
func (r *ReceiptRepo) CreateItem(ctx context.Context, it *entity.ReceiptItem) error {
	query := `
		INSERT INTO receipt_items (id, receipt_id, order_item_id, part_id, qty_received, condition, location)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, it.ID, it.ReceiptID, it.OrderItemID, it.PartID, it.QtyReceived,
		string(it.Condition), nullIfEmpty(it.Location))
	if err != nil {
		return mapWriteError("create receipt item", err)
	}
	return nil
}

func scanReceiptItem(row pgx.Row) (entity.ReceiptItem, error) {
	var (
		it   entity.ReceiptItem
		cond string
	)
	if err := row.Scan(&it.ID, &it.ReceiptID, &it.OrderItemID, &it.PartID, &it.QtyReceived, &cond, &it.Location); err != nil {
		return it, err
	}
	c, err := entity.ParseCondition(cond)
	if err != nil {
		return it, err
	}
	it.Condition = c
	return it, nil
}

func (r *ReceiptRepo) items(ctx context.Context, query string, arg string) ([]entity.ReceiptItem, error) {
	rows, err := r.q.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list receipt items: %w", err)
	}
	defer rows.Close()
	out := []entity.ReceiptItem{}
	for rows.Next() {
		it, err := scanReceiptItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan receipt item: %w", err)
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// GetByID devuelve la recepción con sus líneas, o (nil, nil).
func (r *ReceiptRepo) GetByID(ctx context.Context, id string) (*entity.Receipt, error) {
	if !validID(id) {
		return nil, nil
	}
	var rc entity.Receipt
	err := r.q.QueryRow(ctx,
		`SELECT id, order_id, site, COALESCE(created_by, ''), created_at FROM receipts WHERE id = $1`, id,
	).Scan(&rc.ID, &rc.OrderID, &rc.Site, &rc.CreatedBy, &rc.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get receipt: %w", err)
	}
	rc.Items, err = r.items(ctx, `SELECT `+receiptItemColumns+` FROM receipt_items ri WHERE ri.receipt_id = $1 ORDER BY ri.seq`, id)
	if err != nil {
		return nil, err
	}
	return &rc, nil
}

// ListByOrder devuelve las recepciones del pedido con sus líneas, en orden cronológico.
func (r *ReceiptRepo) ListByOrder(ctx context.Context, orderID string) ([]*entity.Receipt, error) {
	if !validID(orderID) {
		return []*entity.Receipt{}, nil
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, order_id, site, COALESCE(created_by, ''), created_at
		FROM receipts WHERE order_id = $1 ORDER BY created_at, id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list receipts: %w", err)
	}
	out := []*entity.Receipt{}
	byID := map[string]*entity.Receipt{}
	for rows.Next() {
		var rc entity.Receipt
		if err := rows.Scan(&rc.ID, &rc.OrderID, &rc.Site, &rc.CreatedBy, &rc.CreatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan receipt: %w", err)
		}
		rc.Items = []entity.ReceiptItem{}
		out = append(out, &rc)
		byID[rc.ID] = &rc
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	items, err := r.items(ctx, `
		SELECT `+receiptItemColumns+`
		FROM receipt_items ri JOIN receipts rc ON rc.id = ri.receipt_id
		WHERE rc.order_id = $1 ORDER BY ri.seq`, orderID)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		if rc, ok := byID[it.ReceiptID]; ok {
			rc.Items = append(rc.Items, it)
		}
	}
	return out, nil
}

// SumReceivedByOrder devuelve lo recibido por línea del pedido.
func (r *ReceiptRepo) SumReceivedByOrder(ctx context.Context, orderID string) (map[string]int, error) {
	out := map[string]int{}
	if !validID(orderID) {
		return out, nil
	}
	rows, err := r.q.Query(ctx, `
		SELECT ri.order_item_id::text, SUM(ri.qty_received)
		FROM receipt_items ri JOIN order_items oi ON oi.id = ri.order_item_id
		WHERE oi.order_id = $1
		GROUP BY ri.order_item_id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("sum received: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			id  string
			qty int64
		)
		if err := rows.Scan(&id, &qty); err != nil {
			return nil, err
		}
		out[id] = int(qty)
	}
	return out, rows.Err()
}

// SumReceivedByItem devuelve lo recibido de una línea (0 si nada).
func (r *ReceiptRepo) SumReceivedByItem(ctx context.Context, orderItemID string) (int, error) {
	if !validID(orderItemID) {
		return 0, nil
	}
	var total int64
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(qty_received), 0) FROM receipt_items WHERE order_item_id = $1`, orderItemID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum received by item: %w", err)
	}
	return int(total), nil
}
