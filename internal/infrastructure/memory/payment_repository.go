package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/ironhub-api/internal/domain"
	"github.com/jhoicas/ironhub-api/internal/domain/entity"
	"github.com/jhoicas/ironhub-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo pagos en memoria (solo inserción).
type PaymentRepo struct {
	v *view
}

func (r *PaymentRepo) Create(_ context.Context, p *entity.Payment) error {
	if err := r.v.writable(); err != nil {
		return err
	}
	for _, existing := range r.v.st.payments {
		if existing.ID == p.ID {
			return domain.ErrDuplicate
		}
	}
	cp := *p
	r.v.st.payments = append(r.v.st.payments, &cp)
	return nil
}

// ListByCustomer más recientes primero: fecha desc, luego creación desc, luego inserción desc.
func (r *PaymentRepo) ListByCustomer(_ context.Context, customerID string) ([]*entity.Payment, error) {
	out := make([]*entity.Payment, 0)
	for i := len(r.v.st.payments) - 1; i >= 0; i-- {
		if p := r.v.st.payments[i]; p.CustomerID == customerID {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *PaymentRepo) SumByCustomer(_ context.Context, customerID string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, p := range r.v.st.payments {
		if p.CustomerID == customerID {
			sum = sum.Add(p.Amount)
		}
	}
	return sum, nil
}
