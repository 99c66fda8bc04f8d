package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
)

var _ repository.PendingRefRepository = (*PendingRefRepo)(nil)

// PendingRefRepo implementación de la cola de referencias pendientes sobre PostgreSQL.
type PendingRefRepo struct {
	q Querier
}

// NewPendingRefRepository construye el adaptador de referencias pendientes.
func NewPendingRefRepository(q Querier) *PendingRefRepo {
	return &PendingRefRepo{q: q}
}

const pendingRefColumns = `id, supplier_id, supplier_ref, COALESCE(product_url, ''), COALESCE(note, ''),
	COALESCE(created_by, ''), created_at`

func scanPendingRef(row pgx.Row) (*entity.PendingRef, error) {
	var p entity.PendingRef
	if err := row.Scan(&p.ID, &p.SupplierID, &p.SupplierRef, &p.ProductURL, &p.Note, &p.CreatedBy, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PendingRefRepo) get(ctx context.Context, query string, args ...any) (*entity.PendingRef, error) {
	p, err := scanPendingRef(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pending ref: %w", err)
	}
	return p, nil
}

// CreateIfAbsent inserta la referencia; si ya existe una para (proveedor, referencia) devuelve esa.
// En ambos casos la fila queda bloqueada hasta el fin de la transacción: una aprobación concurrente
// espera a que la línea huérfana del llamador sea visible antes de re-enlazar.
func (r *PendingRefRepo) CreateIfAbsent(ctx context.Context, ref *entity.PendingRef) (*entity.PendingRef, bool, error) {
	query := `
		INSERT INTO pending_refs (id, supplier_id, supplier_ref, product_url, note, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (supplier_id, supplier_ref) DO UPDATE SET supplier_ref = pending_refs.supplier_ref
		RETURNING ` + pendingRefColumns + `, (xmax = 0)`
	var (
		p       entity.PendingRef
		created bool
	)
	err := r.q.QueryRow(ctx, query, ref.ID, ref.SupplierID, ref.SupplierRef,
		nullIfEmpty(ref.ProductURL), nullIfEmpty(ref.Note), nullIfEmpty(ref.CreatedBy), ref.CreatedAt).
		Scan(&p.ID, &p.SupplierID, &p.SupplierRef, &p.ProductURL, &p.Note, &p.CreatedBy, &p.CreatedAt, &created)
	if err != nil {
		return nil, false, mapWriteError("create pending ref", err)
	}
	return &p, created, nil
}

// GetByID devuelve la referencia o (nil, nil).
func (r *PendingRefRepo) GetByID(ctx context.Context, id string) (*entity.PendingRef, error) {
	if !validID(id) {
		return nil, nil
	}
	return r.get(ctx, `SELECT `+pendingRefColumns+` FROM pending_refs WHERE id = $1`, id)
}

// GetForUpdate bloquea la fila de la referencia.
func (r *PendingRefRepo) GetForUpdate(ctx context.Context, id string) (*entity.PendingRef, error) {
	if !validID(id) {
		return nil, nil
	}
	return r.get(ctx, `SELECT `+pendingRefColumns+` FROM pending_refs WHERE id = $1 FOR UPDATE`, id)
}

// GetBySupplierRef busca la referencia pendiente del par (proveedor, referencia).
func (r *PendingRefRepo) GetBySupplierRef(ctx context.Context, supplierID, supplierRef string) (*entity.PendingRef, error) {
	if !validID(supplierID) {
		return nil, nil
	}
	return r.get(ctx, `SELECT `+pendingRefColumns+` FROM pending_refs WHERE supplier_id = $1 AND supplier_ref = $2`,
		supplierID, supplierRef)
}

// List lista la cola en orden de llegada, opcionalmente filtrada por proveedor.
func (r *PendingRefRepo) List(ctx context.Context, supplierID string, limit, offset int) ([]*entity.PendingRef, error) {
	out := []*entity.PendingRef{}
	query := `SELECT ` + pendingRefColumns + ` FROM pending_refs`
	var args []any
	if supplierID != "" {
		if !validID(supplierID) {
			return out, nil
		}
		args = append(args, supplierID)
		query += ` WHERE supplier_id = $1`
	}
	query += ` ORDER BY created_at, id`
	if limit > 0 {
		args = append(args, limit, offset)
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list pending refs: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		p, err := scanPendingRef(rows)
		if err != nil {
			return nil, fmt.Errorf("scan pending ref: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Delete elimina la referencia. ErrNotFound si no existía.
func (r *PendingRefRepo) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return domain.ErrNotFound
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM pending_refs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete pending ref: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
