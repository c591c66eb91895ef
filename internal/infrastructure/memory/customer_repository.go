package memory

import (
	"context"
	"fmt"

	"github.com/jhoicas/ironhub-api/internal/domain"
	"github.com/jhoicas/ironhub-api/internal/domain/entity"
	"github.com/jhoicas/ironhub-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo clientes en memoria.
type CustomerRepo struct {
	v *view
}

func (r *CustomerRepo) find(id string) int {
	for i, c := range r.v.st.customers {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// Create agrega el cliente; domain.ErrDuplicate si el ID ya existe.
func (r *CustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	if err := r.v.writable(); err != nil {
		return err
	}
	if r.find(c.ID) >= 0 {
		return domain.ErrDuplicate
	}
	r.v.st.customers = append(r.v.st.customers, c.Clone())
	return nil
}

func (r *CustomerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	if i := r.find(id); i >= 0 {
		return r.v.st.customers[i].Clone(), nil
	}
	return nil, nil
}

// LockByID en memoria el lock es el del store, tomado por el TxRunner.
func (r *CustomerRepo) LockByID(ctx context.Context, id string) (*entity.Customer, error) {
	return r.GetByID(ctx, id)
}

func (r *CustomerRepo) List(_ context.Context) ([]*entity.Customer, error) {
	out := make([]*entity.Customer, 0, len(r.v.st.customers))
	for _, c := range r.v.st.customers {
		out = append(out, c.Clone())
	}
	return out, nil
}

func (r *CustomerRepo) Count(_ context.Context) (int, error) {
	return len(r.v.st.customers), nil
}

func (r *CustomerRepo) AddPaid(_ context.Context, id string, amount decimal.Decimal) error {
	return r.update(id, func(c *entity.Customer) { c.TotalPaid = c.TotalPaid.Add(amount) })
}

func (r *CustomerRepo) AddBilled(_ context.Context, id string, amount decimal.Decimal) error {
	return r.update(id, func(c *entity.Customer) { c.TotalBilled = c.TotalBilled.Add(amount) })
}

func (r *CustomerRepo) update(id string, mutate func(*entity.Customer)) error {
	if err := r.v.writable(); err != nil {
		return err
	}
	i := r.find(id)
	if i < 0 {
		return fmt.Errorf("actualizar totales de %s: %w", id, domain.ErrInconsistent)
	}
	c := r.v.st.customers[i].Clone()
	mutate(c)
	r.v.st.customers[i] = c
	return nil
}

func (r *CustomerRepo) Receivables(_ context.Context) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, c := range r.v.st.customers {
		sum = sum.Add(c.TotalBilled.Sub(c.TotalPaid))
	}
	return sum, nil
}
