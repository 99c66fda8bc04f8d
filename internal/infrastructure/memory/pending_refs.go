package memory

import (
	"context"
	"time"

	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
)

type pendingRefRepo struct{ a access }

func findPending(st *state, supplierID, supplierRef string) (entity.PendingRef, bool) {
	for _, p := range st.pending {
		if p.SupplierID == supplierID && p.SupplierRef == supplierRef {
			return p, true
		}
	}
	return entity.PendingRef{}, false
}

func (r *pendingRefRepo) CreateIfAbsent(ctx context.Context, ref *entity.PendingRef) (*entity.PendingRef, bool, error) {
	var (
		out     entity.PendingRef
		created bool
	)
	err := r.a.write(ctx, func(st *state) error {
		if p, ok := findPending(st, ref.SupplierID, ref.SupplierRef); ok {
			out = p
			return nil
		}
		st.pending[ref.ID] = *ref
		out, created = *ref, true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return &out, created, nil
}

func (r *pendingRefRepo) GetByID(_ context.Context, id string) (*entity.PendingRef, error) {
	var out *entity.PendingRef
	err := r.a.read(func(st *state) error {
		if p, ok := st.pending[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

func (r *pendingRefRepo) GetForUpdate(ctx context.Context, id string) (*entity.PendingRef, error) {
	return r.GetByID(ctx, id)
}

func (r *pendingRefRepo) GetBySupplierRef(_ context.Context, supplierID, supplierRef string) (*entity.PendingRef, error) {
	var out *entity.PendingRef
	err := r.a.read(func(st *state) error {
		if p, ok := findPending(st, supplierID, supplierRef); ok {
			out = &p
		}
		return nil
	})
	return out, err
}

func (r *pendingRefRepo) List(_ context.Context, supplierID string, limit, offset int) ([]*entity.PendingRef, error) {
	out := []*entity.PendingRef{}
	err := r.a.read(func(st *state) error {
		for _, p := range st.pending {
			if supplierID == "" || p.SupplierID == supplierID {
				out = append(out, &p)
			}
		}
		return nil
	})
	sortByCreated(out, func(p *entity.PendingRef) (time.Time, string) { return p.CreatedAt, p.ID })
	return page(out, limit, offset), err
}

func (r *pendingRefRepo) Delete(ctx context.Context, id string) error {
	return r.a.write(ctx, func(st *state) error {
		if _, ok := st.pending[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.pending, id)
		return nil
	})
}
