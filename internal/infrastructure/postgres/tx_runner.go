package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Almacen-api/internal/application/ledger"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ ledger.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL. Es la
// garantía de atomicidad del libro: mutación de cantidad, auditoría y
// registro de movimiento confirman o se descartan juntos.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback. Errores de begin/commit se clasifican como transitorios
// cuando la conexión es la causa.
func (r *TxRunner) Run(ctx context.Context, fn func(
	stockRepo repository.StockItemRepository,
	auditRepo repository.AuditRepository,
	movRepo repository.MovementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return wrapErr("begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	stockRepo := NewStockItemRepository(tx)
	auditRepo := NewAuditRepository(tx)
	movRepo := NewMovementRepository(tx)

	if err := fn(stockRepo, auditRepo, movRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return wrapErr("commit transaction", err)
	}
	return nil
}
