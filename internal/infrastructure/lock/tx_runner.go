package lock

import (
	"context"
	"errors"
	"time"

	"github.com/jhoicas/ironhub-api/internal/application/ports"
	"github.com/jhoicas/ironhub-api/internal/domain"
	"github.com/jhoicas/ironhub-api/internal/domain/entity"
	"github.com/jhoicas/ironhub-api/pkg/logger"
)

var _ ports.TxRunner = (*TxRunner)(nil)

const keyPrefix = "lock:customer:"

// TxRunner decora otro TxRunner: RunForCustomer toma primero el lock distribuido del cliente.
// Run y RunReadOnly se delegan sin lock.
type TxRunner struct {
	next   ports.TxRunner
	locker Locker
	ttl    time.Duration
	log    *logger.Logger
}

// NewTxRunner construye el decorador. ttl debe cubrir la transacción más larga esperada.
func NewTxRunner(next ports.TxRunner, locker Locker, ttl time.Duration, log *logger.Logger) *TxRunner {
	if log == nil {
		log = logger.Nop()
	}
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	return &TxRunner{next: next, locker: locker, ttl: ttl, log: log.Named("lock")}
}

// Run delega en el runner subyacente.
func (r *TxRunner) Run(ctx context.Context, fn func(ports.Repos) error) error {
	return r.next.Run(ctx, fn)
}

// RunReadOnly delega en el runner subyacente.
func (r *TxRunner) RunReadOnly(ctx context.Context, fn func(ports.Repos) error) error {
	return r.next.RunReadOnly(ctx, fn)
}

// RunForCustomer serializa por cliente entre procesos; domain.ErrConflict si no se obtiene el lock.
func (r *TxRunner) RunForCustomer(ctx context.Context, customerID string, fn func(ports.Repos, *entity.Customer) error) error {
	key := keyPrefix + customerID
	release, err := r.locker.Obtain(ctx, key, r.ttl)
	if errors.Is(err, ErrNotObtained) {
		r.log.Warn().Str("customer_id", customerID).Msg("lock de cliente ocupado")
		return domain.ErrConflict
	}
	if err != nil {
		return err
	}
	defer func() {
		// Contexto propio: la liberación debe ocurrir aunque el request se haya cancelado.
		relCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if relErr := release(relCtx); relErr != nil {
			r.log.Warn().Err(relErr).Str("customer_id", customerID).Msg("no se pudo liberar el lock")
		}
	}()
	return r.next.RunForCustomer(ctx, customerID, fn)
}
