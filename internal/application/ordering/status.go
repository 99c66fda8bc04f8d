package ordering

import (
	"context"
	"time"

	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/receiving"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
)

// RecomputeStatusInTx recalcula el estado derivado del pedido con las cantidades recibidas
// y lo persiste si cambió. El pedido debe venir bloqueado por el llamador.
func RecomputeStatusInTx(ctx context.Context, tx repository.Store, order *entity.Order, now time.Time) (bool, error) {
	if !order.Status.CanReceive() {
		return false, nil
	}
	items, err := tx.OrderItems.ListByOrder(ctx, order.ID)
	if err != nil {
		return false, err
	}
	received, err := tx.Receipts.SumReceivedByOrder(ctx, order.ID)
	if err != nil {
		return false, err
	}
	lines := make([]receiving.LineProgress, 0, len(items))
	for _, it := range items {
		lines = append(lines, receiving.LineProgress{Ordered: it.Qty, Received: received[it.ID]})
	}
	target := receiving.DeriveStatus(order.Status, lines)
	if !order.ApplyDerivedStatus(target, now) {
		return false, nil
	}
	if err := tx.Orders.Update(ctx, order); err != nil {
		return false, err
	}
	return true, nil
}
