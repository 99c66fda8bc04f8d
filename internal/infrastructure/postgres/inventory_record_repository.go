package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
)

var _ repository.InventoryRecordRepository = (*InventoryRecordRepo)(nil)

// InventoryRecordRepo implementación de InventoryRecordRepository sobre PostgreSQL.
type InventoryRecordRepo struct {
	q Querier
}

// NewInventoryRecordRepository construye el adaptador de existencias.
func NewInventoryRecordRepository(q Querier) *InventoryRecordRepo {
	return &InventoryRecordRepo{q: q}
}

const inventoryColumns = `site, part_id, condition, qty_on_hand, COALESCE(location, ''), updated_at`

func scanInventoryRecord(row pgx.Row) (*entity.InventoryRecord, error) {
	var (
		rec  entity.InventoryRecord
		cond string
	)
	if err := row.Scan(&rec.Site, &rec.PartID, &cond, &rec.QtyOnHand, &rec.Location, &rec.UpdatedAt); err != nil {
		return nil, err
	}
	c, err := entity.ParseCondition(cond)
	if err != nil {
		return nil, err
	}
	rec.Condition = c
	return &rec, nil
}

// Get devuelve el registro o (nil, nil) si no existe.
func (r *InventoryRecordRepo) Get(ctx context.Context, key entity.InventoryKey) (*entity.InventoryRecord, error) {
	if !validID(key.PartID) {
		return nil, nil
	}
	rec, err := scanInventoryRecord(r.q.QueryRow(ctx,
		`SELECT `+inventoryColumns+` FROM inventory_records WHERE site = $1 AND part_id = $2 AND condition = $3`,
		key.Site, key.PartID, string(key.Condition)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory record: %w", err)
	}
	return rec, nil
}

// LockSitePart toma un advisory lock de transacción sobre (sede, repuesto).
// Cubre también el caso en que aún no existe ninguna fila que bloquear.
func (r *InventoryRecordRepo) LockSitePart(ctx context.Context, sp entity.SitePart) error {
	_, err := r.q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1 || '/' || $2, 0))`, sp.Site, sp.PartID)
	if err != nil {
		return fmt.Errorf("lock site part: %w", err)
	}
	return nil
}

// KnownLocation devuelve la ubicación del par en cualquier condición, o "".
func (r *InventoryRecordRepo) KnownLocation(ctx context.Context, sp entity.SitePart) (string, error) {
	if !validID(sp.PartID) {
		return "", nil
	}
	var loc string
	err := r.q.QueryRow(ctx, `
		SELECT location FROM inventory_records
		WHERE site = $1 AND part_id = $2 AND location IS NOT NULL AND location <> ''
		ORDER BY condition
		LIMIT 1`, sp.Site, sp.PartID).Scan(&loc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("known location: %w", err)
	}
	return loc, nil
}

// AddQuantity suma delta al registro (lo crea si no existe). La ubicación existente nunca se reemplaza.
func (r *InventoryRecordRepo) AddQuantity(ctx context.Context, key entity.InventoryKey, delta int, location string) (*entity.InventoryRecord, error) {
	query := `
		INSERT INTO inventory_records (site, part_id, condition, qty_on_hand, location, updated_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (site, part_id, condition) DO UPDATE
		SET qty_on_hand = inventory_records.qty_on_hand + EXCLUDED.qty_on_hand,
		    location    = COALESCE(NULLIF(inventory_records.location, ''), EXCLUDED.location),
		    updated_at  = now()
		RETURNING ` + inventoryColumns
	rec, err := scanInventoryRecord(r.q.QueryRow(ctx, query,
		key.Site, key.PartID, string(key.Condition), delta, nullIfEmpty(location)))
	if err != nil {
		return nil, mapWriteError("upsert inventory record", err)
	}
	return rec, nil
}

// List lista existencias con filtros opcionales, ordenadas por sede, repuesto y condición.
func (r *InventoryRecordRepo) List(ctx context.Context, f repository.InventoryFilter) ([]*entity.InventoryRecord, error) {
	out := []*entity.InventoryRecord{}
	var (
		where []string
		args  []any
	)
	if f.Site != "" {
		args = append(args, f.Site)
		where = append(where, fmt.Sprintf("site = $%d", len(args)))
	}
	if f.PartID != "" {
		if !validID(f.PartID) {
			return out, nil
		}
		args = append(args, f.PartID)
		where = append(where, fmt.Sprintf("part_id = $%d", len(args)))
	}
	if f.Condition != "" {
		args = append(args, string(f.Condition))
		where = append(where, fmt.Sprintf("condition = $%d", len(args)))
	}

	query := `SELECT ` + inventoryColumns + ` FROM inventory_records`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY site, part_id, condition`
	if f.Limit > 0 {
		args = append(args, f.Limit, f.Offset)
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		rec, err := scanInventoryRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory record: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
