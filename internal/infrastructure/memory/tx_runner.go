package memory

import (
	"context"
	"fmt"

	"github.com/jhoicas/ironhub-api/internal/application/ports"
	"github.com/jhoicas/ironhub-api/internal/domain"
	"github.com/jhoicas/ironhub-api/internal/domain/entity"
)

var _ ports.TxRunner = (*TxRunner)(nil)

// TxRunner transacciones sobre el Store: si fn falla se restaura la foto previa.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run ejecuta fn con el store bloqueado para escritura. Un error o un panic en fn restauran
// la foto previa antes de liberar el lock.
func (r *TxRunner) Run(ctx context.Context, fn func(ports.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.data.snapshot()
	committed := false
	defer func() {
		if !committed {
			s.data = before
		}
	}()

	if err := fn(repos(&view{st: s.data})); err != nil {
		return err
	}
	committed = true
	return nil
}

// RunForCustomer igual que Run pero verifica que el cliente exista y se lo pasa a fn.
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

// RunReadOnly ejecuta fn con el store bloqueado para lectura; los intentos de escritura fallan.
func (r *TxRunner) RunReadOnly(ctx context.Context, fn func(ports.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(repos(&view{st: s.data, readOnly: true}))
}

func repos(v *view) ports.Repos {
	return ports.Repos{
		Customers: &CustomerRepo{v: v},
		Quotes:    &QuoteRepo{v: v},
		Payments:  &PaymentRepo{v: v},
		Audit:     &AuditLogRepo{v: v},
		Inventory: &InventoryRepo{v: v},
	}
}
