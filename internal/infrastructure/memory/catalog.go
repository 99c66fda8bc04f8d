package memory

import (
	"context"

	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
)

type partRepo struct{ a access }

func (r *partRepo) GetByID(_ context.Context, id string) (*entity.Part, error) {
	var out *entity.Part
	err := r.a.read(func(st *state) error {
		if p, ok := st.parts[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

func (r *partRepo) GetBySKU(_ context.Context, sku string) (*entity.Part, error) {
	var out *entity.Part
	err := r.a.read(func(st *state) error {
		for _, p := range st.parts {
			if p.SKU == sku {
				out = &p
				return nil
			}
		}
		return nil
	})
	return out, err
}

type supplierRepo struct{ a access }

func (r *supplierRepo) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	var out *entity.Supplier
	err := r.a.read(func(st *state) error {
		if s, ok := st.suppliers[id]; ok {
			out = &s
		}
		return nil
	})
	return out, err
}

type siteRepo struct{ a access }

func (r *siteRepo) GetByName(_ context.Context, name string) (*entity.Site, error) {
	var out *entity.Site
	err := r.a.read(func(st *state) error {
		for _, s := range st.sites {
			if s.Name == name {
				out = &s
				return nil
			}
		}
		return nil
	})
	return out, err
}

type supplierRefRepo struct{ a access }

func findRef(st *state, supplierID, supplierRef string) (entity.SupplierPartRef, bool) {
	for _, r := range st.refs {
		if r.SupplierID == supplierID && r.SupplierRef == supplierRef {
			return r, true
		}
	}
	return entity.SupplierPartRef{}, false
}

func (r *supplierRefRepo) GetBySupplierRef(_ context.Context, supplierID, supplierRef string) (*entity.SupplierPartRef, error) {
	var out *entity.SupplierPartRef
	err := r.a.read(func(st *state) error {
		if ref, ok := findRef(st, supplierID, supplierRef); ok {
			out = &ref
		}
		return nil
	})
	return out, err
}

func (r *supplierRefRepo) Create(ctx context.Context, ref *entity.SupplierPartRef) error {
	return r.a.write(ctx, func(st *state) error {
		if _, ok := findRef(st, ref.SupplierID, ref.SupplierRef); ok {
			return domain.ErrDuplicate
		}
		if _, ok := st.parts[ref.PartID]; !ok {
			return domain.ErrNotFound
		}
		st.refs[ref.ID] = *ref
		return nil
	})
}
