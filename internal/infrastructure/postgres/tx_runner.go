package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/almacen-wms/internal/application/ledger"
	"github.com/tu-usuario/almacen-wms/internal/application/picklist"
	"github.com/tu-usuario/almacen-wms/internal/domain/repository"
)

// Ensure TxRunner implements ledger.TxRunner and picklist.TxRunner.
var _ ledger.TxRunner = (*TxRunner)(nil)
var _ picklist.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con los repos del ledger atados a la
// tx y hace Commit o Rollback. Movimiento y snapshots viven o mueren juntos.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	snapRepo repository.SnapshotRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	movRepo := NewMovementRepository(tx)
	snapRepo := NewSnapshotRepository(tx)

	if err := fn(movRepo, snapRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunPickList inicia una transacción con el repo de líneas de picking atado a
// la tx (para el leer-sumar-incrementar atómico de RecordScan).
func (r *TxRunner) RunPickList(ctx context.Context, fn func(
	pickRepo repository.PickLineRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	pickRepo := NewPickLineRepository(tx)

	if err := fn(pickRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
