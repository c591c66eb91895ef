package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/ironhub-api/internal/application/ports"
	"github.com/jhoicas/ironhub-api/internal/domain"
	"github.com/jhoicas/ironhub-api/internal/domain/entity"
)

var _ ports.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(ports.Repos) error) error {
	return r.run(ctx, pgx.TxOptions{}, fn)
}

// RunForCustomer bloquea la fila del cliente (SELECT ... FOR UPDATE) antes de ejecutar fn.
func (r *TxRunner) RunForCustomer(ctx context.Context, customerID string, fn func(ports.Repos, *entity.Customer) error) error {
	return r.Run(ctx, func(rp ports.Repos) error {
		c, err := rp.Customers.LockByID(ctx, customerID)
		if err != nil {
			return err
		}
		if c == nil {
			return fmt.Errorf("cliente %s: %w", customerID, domain.ErrNotFound)
		}
		return fn(rp, c)
	})
}

// RunReadOnly usa REPEATABLE READ: todas las lecturas ven la misma foto.
func (r *TxRunner) RunReadOnly(ctx context.Context, fn func(ports.Repos) error) error {
	return r.run(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}, fn)
}

func (r *TxRunner) run(ctx context.Context, opts pgx.TxOptions, fn func(ports.Repos) error) error {
	tx, err := r.pool.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(repos(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func repos(q Querier) ports.Repos {
	return ports.Repos{
		Customers: NewCustomerRepository(q),
		Quotes:    NewQuoteRepository(q),
		Payments:  NewPaymentRepository(q),
		Audit:     NewAuditLogRepository(q),
		Inventory: NewInventoryRepository(q),
	}
}
