package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ironhub-api/internal/domain"
	"github.com/jhoicas/ironhub-api/internal/domain/entity"
	"github.com/jhoicas/ironhub-api/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo pagos (solo inserción).
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador.
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

// Create persiste el pago. invoice_id vacío se guarda como NULL.
func (r *PaymentRepo) Create(ctx context.Context, p *entity.Payment) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO payments (id, customer_id, date, amount, method, invoice_id, source, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.ID, p.CustomerID, p.Date, p.Amount, string(p.Method), nullString(p.InvoiceID), p.Source, p.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// ListByCustomer más recientes primero: fecha, luego creación, luego orden de inserción.
func (r *PaymentRepo) ListByCustomer(ctx context.Context, customerID string) ([]*entity.Payment, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, customer_id, date, amount, method, COALESCE(invoice_id, ''), source, created_at
		FROM payments WHERE customer_id = $1
		ORDER BY date DESC, created_at DESC, seq DESC`, customerID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Payment, 0)
	for rows.Next() {
		var p entity.Payment
		var method string
		if err := rows.Scan(&p.ID, &p.CustomerID, &p.Date, &p.Amount, &method, &p.InvoiceID, &p.Source, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		p.Method = entity.PaymentMethod(method)
		list = append(list, &p)
	}
	return list, rows.Err()
}

// SumByCustomer suma de los pagos del cliente (para la conciliación).
func (r *PaymentRepo) SumByCustomer(ctx context.Context, customerID string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.q.QueryRow(ctx, `SELECT COALESCE(SUM(amount), 0) FROM payments WHERE customer_id = $1`, customerID).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum payments: %w", err)
	}
	return sum, nil
}
