package repository

import (
	"context"

	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
)

// PendingRefRepository define el puerto de la cola de referencias pendientes.
type PendingRefRepository interface {
	// CreateIfAbsent inserta la referencia salvo que ya exista una para (proveedor, referencia);
	// en ese caso devuelve la existente y created=false. La fila devuelta queda bloqueada en la transacción.
	CreateIfAbsent(ctx context.Context, ref *entity.PendingRef) (stored *entity.PendingRef, created bool, err error)
	GetByID(ctx context.Context, id string) (*entity.PendingRef, error)
	GetForUpdate(ctx context.Context, id string) (*entity.PendingRef, error)
	GetBySupplierRef(ctx context.Context, supplierID, supplierRef string) (*entity.PendingRef, error)
	List(ctx context.Context, supplierID string, limit, offset int) ([]*entity.PendingRef, error)
	Delete(ctx context.Context, id string) error
}
