package repository

import (
	"context"

	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
)

// ReceiptRepository define el puerto para recepciones y sus líneas (solo inserción).
type ReceiptRepository interface {
	Create(ctx context.Context, receipt *entity.Receipt) error
	CreateItem(ctx context.Context, item *entity.ReceiptItem) error
	// GetByID devuelve la recepción con sus líneas, o (nil, nil).
	GetByID(ctx context.Context, id string) (*entity.Receipt, error)
	ListByOrder(ctx context.Context, orderID string) ([]*entity.Receipt, error)
	// SumReceivedByOrder devuelve lo recibido por línea (order_item_id -> cantidad).
	SumReceivedByOrder(ctx context.Context, orderID string) (map[string]int, error)
	SumReceivedByItem(ctx context.Context, orderItemID string) (int, error)
}
