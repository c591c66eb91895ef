package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ironhub-api/internal/domain"
	"github.com/jhoicas/ironhub-api/internal/domain/entity"
	"github.com/jhoicas/ironhub-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

const customerColumns = `id, name, email, phone, billing_address, shipping_address, internal_notes,
	total_billed, total_paid, created_at, updated_at`

// Create persiste un nuevo cliente. Las direcciones se guardan como JSONB.
func (r *CustomerRepo) Create(ctx context.Context, customer *entity.Customer) error {
	query := `
		INSERT INTO customers (` + customerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		customer.ID, customer.Name, customer.Email, customer.Phone,
		customer.BillingAddress, customer.ShippingAddress, customer.InternalNotes,
		customer.TotalBilled, customer.TotalPaid, customer.CreatedAt, customer.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	return r.getOne(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = $1`, id)
}

// LockByID obtiene el cliente con FOR UPDATE; la fila queda bloqueada hasta el fin de la tx.
func (r *CustomerRepo) LockByID(ctx context.Context, id string) (*entity.Customer, error) {
	return r.getOne(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = $1 FOR UPDATE`, id)
}

func (r *CustomerRepo) getOne(ctx context.Context, query, id string) (*entity.Customer, error) {
	c, err := scanCustomer(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}

// List lista clientes en orden de creación.
func (r *CustomerRepo) List(ctx context.Context) ([]*entity.Customer, error) {
	rows, err := r.q.Query(ctx, `SELECT `+customerColumns+` FROM customers ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Customer, 0)
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Count número de clientes.
func (r *CustomerRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM customers`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count customers: %w", err)
	}
	return n, nil
}

// AddPaid suma amount a total_paid.
func (r *CustomerRepo) AddPaid(ctx context.Context, id string, amount decimal.Decimal) error {
	return r.addTotal(ctx, "total_paid", id, amount)
}

// AddBilled suma amount a total_billed.
func (r *CustomerRepo) AddBilled(ctx context.Context, id string, amount decimal.Decimal) error {
	return r.addTotal(ctx, "total_billed", id, amount)
}

// column proviene solo de AddPaid/AddBilled, nunca de entrada externa.
func (r *CustomerRepo) addTotal(ctx context.Context, column, id string, amount decimal.Decimal) error {
	query := fmt.Sprintf(`UPDATE customers SET %s = %s + $2, updated_at = now() WHERE id = $1`, column, column)
	tag, err := r.q.Exec(ctx, query, id, amount)
	if err != nil {
		return fmt.Errorf("update %s: %w", column, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("cliente %s: %w", id, domain.ErrInconsistent)
	}
	return nil
}

// Receivables suma total_billed − total_paid de todos los clientes.
func (r *CustomerRepo) Receivables(ctx context.Context) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.q.QueryRow(ctx, `SELECT COALESCE(SUM(total_billed - total_paid), 0) FROM customers`).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum receivables: %w", err)
	}
	return sum, nil
}

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	err := row.Scan(
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.BillingAddress, &c.ShippingAddress, &c.InternalNotes,
		&c.TotalBilled, &c.TotalPaid, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
