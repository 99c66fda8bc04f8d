package postgres

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Repuestos-api/internal/application/inventory"
	"github.com/jhoicas/Repuestos-api/internal/application/ordering"
	"github.com/jhoicas/Repuestos-api/internal/application/receiving"
	"github.com/jhoicas/Repuestos-api/internal/application/resolution"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
)

var (
	_ ordering.TxRunner   = (*TxRunner)(nil)
	_ receiving.TxRunner  = (*TxRunner)(nil)
	_ resolution.TxRunner = (*TxRunner)(nil)
	_ inventory.TxRunner  = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool             *pgxpool.Pool
	lockTimeout      time.Duration
	statementTimeout time.Duration
}

// NewTxRunner construye el runner con el pool. Los timeouts se aplican con SET LOCAL en cada
// transacción; cero deja el valor del servidor.
func NewTxRunner(pool *pgxpool.Pool, lockTimeout, statementTimeout time.Duration) *TxRunner {
	return &TxRunner{pool: pool, lockTimeout: lockTimeout, statementTimeout: statementTimeout}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Los errores de contención salen como domain.ErrContention.
func (r *TxRunner) Run(ctx context.Context, fn func(tx repository.Store) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return mapContention(fmt.Errorf("begin transaction: %w", err))
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx,
		`SELECT set_config('lock_timeout', $1, true), set_config('statement_timeout', $2, true)`,
		millis(r.lockTimeout), millis(r.statementTimeout),
	); err != nil {
		return fmt.Errorf("set timeouts: %w", err)
	}

	if err := fn(NewStore(tx)); err != nil {
		return mapContention(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return mapContention(fmt.Errorf("commit transaction: %w", err))
	}
	return nil
}

func millis(d time.Duration) string {
	if d <= 0 {
		return "0"
	}
	return strconv.FormatInt(d.Milliseconds(), 10)
}
