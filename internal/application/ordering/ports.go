package ordering

import (
	"context"

	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción, pasando los repositorios atados a esa tx.
type TxRunner interface {
	Run(ctx context.Context, fn func(tx repository.Store) error) error
}

// PendingRaiser abre (o reutiliza) la referencia pendiente de una línea sin repuesto,
// dentro de la misma transacción que crea la línea. Lo implementa la cola de resolución.
type PendingRaiser interface {
	RaisePendingInTx(ctx context.Context, tx repository.Store, in entity.PendingRef) (*entity.PendingRef, bool, error)
}
