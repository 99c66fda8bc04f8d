package memory

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
)

type orderRepo struct{ a access }

func (r *orderRepo) Create(ctx context.Context, o *entity.Order) error {
	return r.a.write(ctx, func(st *state) error {
		if _, ok := st.orders[o.ID]; ok {
			return domain.ErrDuplicate
		}
		st.orders[o.ID] = *o
		return nil
	})
}

func (r *orderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	var out *entity.Order
	err := r.a.read(func(st *state) error {
		if o, ok := st.orders[id]; ok {
			out = &o
		}
		return nil
	})
	return out, err
}

// GetForUpdate equivale a GetByID: las transacciones en memoria ya son exclusivas.
func (r *orderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.GetByID(ctx, id)
}

func (r *orderRepo) Update(ctx context.Context, o *entity.Order) error {
	return r.a.write(ctx, func(st *state) error {
		if _, ok := st.orders[o.ID]; !ok {
			return domain.ErrNotFound
		}
		st.orders[o.ID] = *o
		return nil
	})
}

type orderItemRepo struct{ a access }

func copyItem(it entity.OrderItem) *entity.OrderItem {
	if it.PartID != nil {
		p := *it.PartID
		it.PartID = &p
	}
	return &it
}

func (r *orderItemRepo) Create(ctx context.Context, it *entity.OrderItem) error {
	return r.a.write(ctx, func(st *state) error {
		if _, ok := st.orders[it.OrderID]; !ok {
			return domain.ErrNotFound
		}
		if _, ok := st.items[it.ID]; ok {
			return domain.ErrDuplicate
		}
		st.items[it.ID] = *copyItem(*it)
		return nil
	})
}

func (r *orderItemRepo) GetByID(_ context.Context, id string) (*entity.OrderItem, error) {
	var out *entity.OrderItem
	err := r.a.read(func(st *state) error {
		if it, ok := st.items[id]; ok {
			out = copyItem(it)
		}
		return nil
	})
	return out, err
}

func (r *orderItemRepo) ListByOrder(_ context.Context, orderID string) ([]*entity.OrderItem, error) {
	out := []*entity.OrderItem{}
	err := r.a.read(func(st *state) error {
		for _, it := range st.items {
			if it.OrderID == orderID {
				out = append(out, copyItem(it))
			}
		}
		return nil
	})
	sortByCreated(out, func(it *entity.OrderItem) (t time.Time, id string) { return it.CreatedAt, it.ID })
	return out, err
}

func (r *orderItemRepo) ListByOrderForUpdate(ctx context.Context, orderID string) ([]*entity.OrderItem, error) {
	out, err := r.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	slices.SortFunc(out, func(a, b *entity.OrderItem) int { return strings.Compare(a.ID, b.ID) })
	return out, nil
}

func orphan(st *state, it entity.OrderItem, supplierID, supplierRef string) bool {
	if it.PartID != nil || it.SupplierRef != supplierRef {
		return false
	}
	o, ok := st.orders[it.OrderID]
	return ok && o.SupplierID == supplierID
}

func (r *orderItemRepo) ListOrphanOrderIDs(_ context.Context, supplierID, supplierRef string) ([]string, error) {
	var out []string
	err := r.a.read(func(st *state) error {
		seen := map[string]bool{}
		for _, it := range st.items {
			if orphan(st, it, supplierID, supplierRef) && !seen[it.OrderID] {
				seen[it.OrderID] = true
				out = append(out, it.OrderID)
			}
		}
		return nil
	})
	slices.Sort(out)
	return out, err
}

func (r *orderItemRepo) RelinkPart(ctx context.Context, supplierID, supplierRef, partID string) (int, error) {
	n := 0
	err := r.a.write(ctx, func(st *state) error {
		for id, it := range st.items {
			if !orphan(st, it, supplierID, supplierRef) {
				continue
			}
			p := partID
			it.PartID = &p
			st.items[id] = it
			n++
		}
		return nil
	})
	return n, err
}
