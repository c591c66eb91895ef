package repository

import (
	"context"

	"github.com/jhoicas/ironhub-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// CustomerRepository define el puerto de persistencia para Customer.
// GetByID y LockByID devuelven (nil, nil) cuando el cliente no existe.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	// LockByID obtiene el cliente bloqueándolo para escritura hasta el fin de la transacción.
	LockByID(ctx context.Context, id string) (*entity.Customer, error)
	// List devuelve los clientes en orden de creación.
	List(ctx context.Context) ([]*entity.Customer, error)
	Count(ctx context.Context) (int, error)
	// AddPaid y AddBilled incrementan los totales; domain.ErrInconsistent si la fila no existe.
	AddPaid(ctx context.Context, id string, amount decimal.Decimal) error
	AddBilled(ctx context.Context, id string, amount decimal.Decimal) error
	// Receivables suma facturado − pagado de todos los clientes.
	Receivables(ctx context.Context) (decimal.Decimal, error)
}
