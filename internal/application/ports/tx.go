package ports

import (
	"context"

	"github.com/jhoicas/ironhub-api/internal/domain/entity"
	"github.com/jhoicas/ironhub-api/internal/domain/repository"
)

// Repos agrupa los repositorios atados a una misma transacción.
type Repos struct {
	Customers repository.CustomerRepository
	Quotes    repository.QuoteRepository
	Payments  repository.PaymentRepository
	Audit     repository.AuditLogRepository
	Inventory repository.InventoryRepository
}

// TxRunner ejecuta callbacks dentro de una transacción. Si fn retorna error se hace rollback
// y ningún cambio queda visible.
type TxRunner interface {
	Run(ctx context.Context, fn func(r Repos) error) error
	// RunForCustomer bloquea al cliente para escritura (un solo escritor por cliente) y le
	// pasa a fn el registro bloqueado. domain.ErrNotFound si el cliente no existe.
	RunForCustomer(ctx context.Context, customerID string, fn func(r Repos, customer *entity.Customer) error) error
	// RunReadOnly garantiza una foto consistente: nunca se observa un pago sin su total.
	RunReadOnly(ctx context.Context, fn func(r Repos) error) error
}
