package memory

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
)

type inventoryRepo struct {
	a   access
	now func() time.Time
}

func (r *inventoryRepo) Get(_ context.Context, key entity.InventoryKey) (*entity.InventoryRecord, error) {
	var out *entity.InventoryRecord
	err := r.a.read(func(st *state) error {
		if rec, ok := st.inventory[key]; ok {
			out = &rec
		}
		return nil
	})
	return out, err
}

// LockSitePart no hace nada: una transacción en memoria ya excluye a las demás.
func (r *inventoryRepo) LockSitePart(context.Context, entity.SitePart) error { return nil }

func (r *inventoryRepo) KnownLocation(_ context.Context, sp entity.SitePart) (string, error) {
	loc := ""
	err := r.a.read(func(st *state) error {
		for _, c := range entity.Conditions {
			rec, ok := st.inventory[entity.InventoryKey{Site: sp.Site, PartID: sp.PartID, Condition: c}]
			if ok && rec.Location != "" {
				loc = rec.Location
				return nil
			}
		}
		return nil
	})
	return loc, err
}

func (r *inventoryRepo) AddQuantity(ctx context.Context, key entity.InventoryKey, delta int, location string) (*entity.InventoryRecord, error) {
	if delta <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	var out entity.InventoryRecord
	err := r.a.write(ctx, func(st *state) error {
		rec, ok := st.inventory[key]
		if !ok {
			rec = entity.InventoryRecord{Site: key.Site, PartID: key.PartID, Condition: key.Condition}
		}
		rec.QtyOnHand += delta
		if rec.Location == "" {
			rec.Location = location
		}
		rec.UpdatedAt = r.now()
		st.inventory[key] = rec
		out = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *inventoryRepo) List(_ context.Context, f repository.InventoryFilter) ([]*entity.InventoryRecord, error) {
	out := []*entity.InventoryRecord{}
	err := r.a.read(func(st *state) error {
		for _, rec := range st.inventory {
			if f.Site != "" && rec.Site != f.Site {
				continue
			}
			if f.PartID != "" && rec.PartID != f.PartID {
				continue
			}
			if f.Condition != "" && rec.Condition != f.Condition {
				continue
			}
			out = append(out, &rec)
		}
		return nil
	})
	slices.SortFunc(out, func(a, b *entity.InventoryRecord) int {
		if c := strings.Compare(a.Site, b.Site); c != 0 {
			return c
		}
		if c := strings.Compare(a.PartID, b.PartID); c != 0 {
			return c
		}
		return strings.Compare(string(a.Condition), string(b.Condition))
	})
	return page(out, f.Limit, f.Offset), err
}
