package memory

import (
	"context"
	"slices"
	"time"

	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
)

type receiptRepo struct{ a access }

func (r *receiptRepo) Create(ctx context.Context, rc *entity.Receipt) error {
	return r.a.write(ctx, func(st *state) error {
		if _, ok := st.orders[rc.OrderID]; !ok {
			return domain.ErrNotFound
		}
		if _, ok := st.receipts[rc.ID]; ok {
			return domain.ErrDuplicate
		}
		head := *rc
		head.Items = nil
		st.receipts[rc.ID] = head
		return nil
	})
}

func (r *receiptRepo) CreateItem(ctx context.Context, it *entity.ReceiptItem) error {
	if it.QtyReceived <= 0 {
		return domain.ErrInvalidQuantity
	}
	return r.a.write(ctx, func(st *state) error {
		if _, ok := st.receipts[it.ReceiptID]; !ok {
			return domain.ErrNotFound
		}
		if _, ok := st.items[it.OrderItemID]; !ok {
			return domain.ErrNotFound
		}
		st.receiptItems[it.ReceiptID] = append(st.receiptItems[it.ReceiptID], *it)
		return nil
	})
}

func withItems(st *state, rc entity.Receipt) *entity.Receipt {
	rc.Items = slices.Clone(st.receiptItems[rc.ID])
	if rc.Items == nil {
		rc.Items = []entity.ReceiptItem{}
	}
	return &rc
}

func (r *receiptRepo) GetByID(_ context.Context, id string) (*entity.Receipt, error) {
	var out *entity.Receipt
	err := r.a.read(func(st *state) error {
		if rc, ok := st.receipts[id]; ok {
			out = withItems(st, rc)
		}
		return nil
	})
	return out, err
}

func (r *receiptRepo) ListByOrder(_ context.Context, orderID string) ([]*entity.Receipt, error) {
	out := []*entity.Receipt{}
	err := r.a.read(func(st *state) error {
		for _, rc := range st.receipts {
			if rc.OrderID == orderID {
				out = append(out, withItems(st, rc))
			}
		}
		return nil
	})
	sortByCreated(out, func(rc *entity.Receipt) (time.Time, string) { return rc.CreatedAt, rc.ID })
	return out, err
}

func (r *receiptRepo) SumReceivedByOrder(_ context.Context, orderID string) (map[string]int, error) {
	out := map[string]int{}
	err := r.a.read(func(st *state) error {
		for id, rc := range st.receipts {
			if rc.OrderID != orderID {
				continue
			}
			for _, it := range st.receiptItems[id] {
				out[it.OrderItemID] += it.QtyReceived
			}
		}
		return nil
	})
	return out, err
}

func (r *receiptRepo) SumReceivedByItem(_ context.Context, orderItemID string) (int, error) {
	total := 0
	err := r.a.read(func(st *state) error {
		for _, list := range st.receiptItems {
			for _, it := range list {
				if it.OrderItemID == orderItemID {
					total += it.QtyReceived
				}
			}
		}
		return nil
	})
	return total, err
}
