package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
)

var (
	_ repository.PartRepository            = (*PartRepo)(nil)
	_ repository.SupplierRepository        = (*SupplierRepo)(nil)
	_ repository.SiteRepository            = (*SiteRepo)(nil)
	_ repository.SupplierPartRefRepository = (*SupplierPartRefRepo)(nil)
)

// PartRepo lectura del catálogo de repuestos.
type PartRepo struct{ q Querier }

// NewPartRepository construye el adaptador de repuestos.
func NewPartRepository(q Querier) *PartRepo { return &PartRepo{q: q} }

func (r *PartRepo) get(ctx context.Context, where string, arg string) (*entity.Part, error) {
	var p entity.Part
	err := r.q.QueryRow(ctx, `SELECT id, sku, label, created_at FROM parts WHERE `+where, arg).
		Scan(&p.ID, &p.SKU, &p.Label, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get part: %w", err)
	}
	return &p, nil
}

// GetByID busca el repuesto por ID.
func (r *PartRepo) GetByID(ctx context.Context, id string) (*entity.Part, error) {
	if !validID(id) {
		return nil, nil
	}
	return r.get(ctx, "id = $1", id)
}

// GetBySKU busca el repuesto por SKU.
func (r *PartRepo) GetBySKU(ctx context.Context, sku string) (*entity.Part, error) {
	return r.get(ctx, "sku = $1", sku)
}

// SupplierRepo lectura de proveedores.
type SupplierRepo struct{ q Querier }

func NewSupplierRepository(q Querier) *SupplierRepo { return &SupplierRepo{q: q} }

func (r *SupplierRepo) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	if !validID(id) {
		return nil, nil
	}
	var s entity.Supplier
	err := r.q.QueryRow(ctx,
		`SELECT id, name, COALESCE(catalog_url, ''), created_at FROM suppliers WHERE id = $1`, id,
	).Scan(&s.ID, &s.Name, &s.CatalogURL, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return &s, nil
}

// SiteRepo lectura de sedes.
type SiteRepo struct{ q Querier }

func NewSiteRepository(q Querier) *SiteRepo { return &SiteRepo{q: q} }

// GetByName busca la sede por nombre exacto.
func (r *SiteRepo) GetByName(ctx context.Context, name string) (*entity.Site, error) {
	var s entity.Site
	err := r.q.QueryRow(ctx, `SELECT id, name, created_at FROM sites WHERE name = $1`, name).
		Scan(&s.ID, &s.Name, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get site: %w", err)
	}
	return &s, nil
}

// SupplierPartRefRepo referencias canónicas proveedor -> repuesto.
type SupplierPartRefRepo struct{ q Querier }

func NewSupplierPartRefRepository(q Querier) *SupplierPartRefRepo {
	return &SupplierPartRefRepo{q: q}
}

// GetBySupplierRef devuelve la referencia del par o (nil, nil).
func (r *SupplierPartRefRepo) GetBySupplierRef(ctx context.Context, supplierID, supplierRef string) (*entity.SupplierPartRef, error) {
	if !validID(supplierID) {
		return nil, nil
	}
	var ref entity.SupplierPartRef
	err := r.q.QueryRow(ctx, `
		SELECT id, part_id, supplier_id, supplier_ref, COALESCE(product_url, ''), created_at
		FROM supplier_part_refs WHERE supplier_id = $1 AND supplier_ref = $2`, supplierID, supplierRef,
	).Scan(&ref.ID, &ref.PartID, &ref.SupplierID, &ref.SupplierRef, &ref.ProductURL, &ref.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier part ref: %w", err)
	}
	return &ref, nil
}

// Create inserta la referencia; un par repetido devuelve domain.ErrDuplicate.
func (r *SupplierPartRefRepo) Create(ctx context.Context, ref *entity.SupplierPartRef) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO supplier_part_refs (id, part_id, supplier_id, supplier_ref, product_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		ref.ID, ref.PartID, ref.SupplierID, ref.SupplierRef, nullIfEmpty(ref.ProductURL), ref.CreatedAt)
	if err != nil {
		return mapWriteError("create supplier part ref", err)
	}
	return nil
}
