package repository

import (
	"context"

	"github.com/jhoicas/ironhub-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// PaymentRepository define el puerto de persistencia para Payment (solo inserción y lectura).
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	// ListByCustomer devuelve los pagos del cliente, más recientes primero (fecha, luego creación).
	ListByCustomer(ctx context.Context, customerID string) ([]*entity.Payment, error)
	SumByCustomer(ctx context.Context, customerID string) (decimal.Decimal, error)
}
