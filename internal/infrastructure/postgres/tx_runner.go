package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Inventario-ledger/internal/application/ports"
)

var _ ports.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL serializable.
type TxRunner struct {
	pool *pgxpool.Pool
	log  zerolog.Logger
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool, log zerolog.Logger) *TxRunner {
	return &TxRunner{pool: pool, log: log}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Si la conexión no estaba abierta se reintenta una sola vez.
func (r *TxRunner) Run(ctx context.Context, fn func(repos ports.Repos) error) error {
	err := r.run(ctx, fn)
	if err != nil && isConnNotOpen(err) {
		r.log.Warn().Err(err).Msg("conexión no disponible, reintentando transacción")
		err = r.run(ctx, fn)
	}
	return err
}

func (r *TxRunner) run(ctx context.Context, fn func(repos ports.Repos) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable, AccessMode: pgx.ReadWrite})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewRepos(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Read ejecuta fn en una transacción de solo lectura (snapshot REPEATABLE READ) que siempre se descarta.
func (r *TxRunner) Read(ctx context.Context, fn func(repos ports.Repos) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		if isConnNotOpen(err) {
			r.log.Warn().Err(err).Msg("conexión no disponible, reintentando lectura")
			tx, err = r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
		}
		if err != nil {
			return fmt.Errorf("begin read transaction: %w", err)
		}
	}
	defer func() { _ = tx.Rollback(ctx) }()
	return fn(NewRepos(tx))
}

// NewRepos construye todos los repositorios sobre el mismo Querier (pool o tx).
func NewRepos(q Querier) ports.Repos {
	return ports.Repos{
		Products:    NewProductRepository(q),
		Movements:   NewInventoryMovementRepository(q),
		MoneyBoxes:  NewMoneyBoxRepository(q),
		MoneyBoxTxs: NewMoneyBoxTransactionRepository(q),
		Parties:     NewPartyRepository(q),
		Orders:      NewOrderRepository(q),
		Returns:     NewReturnRepository(q),
	}
}
