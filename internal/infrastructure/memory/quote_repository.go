package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/ironhub-api/internal/domain"
	"github.com/jhoicas/ironhub-api/internal/domain/entity"
	"github.com/jhoicas/ironhub-api/internal/domain/repository"
)

var _ repository.QuoteRepository = (*QuoteRepo)(nil)

// QuoteRepo cotizaciones en memoria, en orden de creación.
type QuoteRepo struct {
	v *view
}

func (r *QuoteRepo) find(id string) int {
	for i, q := range r.v.st.quotes {
		if q.ID == id {
			return i
		}
	}
	return -1
}

func (r *QuoteRepo) Create(_ context.Context, q *entity.Quote) error {
	if err := r.v.writable(); err != nil {
		return err
	}
	if r.find(q.ID) >= 0 {
		return domain.ErrDuplicate
	}
	r.v.st.quotes = append(r.v.st.quotes, q.Clone())
	return nil
}

func (r *QuoteRepo) GetByID(_ context.Context, id string) (*entity.Quote, error) {
	if i := r.find(id); i >= 0 {
		return r.v.st.quotes[i].Clone(), nil
	}
	return nil, nil
}

func (r *QuoteRepo) Exists(_ context.Context, id string) (bool, error) {
	return r.find(id) >= 0, nil
}

func (r *QuoteRepo) List(_ context.Context) ([]*entity.Quote, error) {
	return r.filter(func(*entity.Quote) bool { return true }), nil
}

func (r *QuoteRepo) ListByCustomer(_ context.Context, customerID string) ([]*entity.Quote, error) {
	return r.filter(func(q *entity.Quote) bool { return q.CustomerID == customerID }), nil
}

func (r *QuoteRepo) ListByStatus(_ context.Context, status entity.QuoteStatus) ([]*entity.Quote, error) {
	return r.filter(func(q *entity.Quote) bool { return q.Status == status }), nil
}

func (r *QuoteRepo) filter(keep func(*entity.Quote) bool) []*entity.Quote {
	out := make([]*entity.Quote, 0)
	for _, q := range r.v.st.quotes {
		if keep(q) {
			out = append(out, q.Clone())
		}
	}
	return out
}

func (r *QuoteRepo) UpdateStatus(_ context.Context, id string, status entity.QuoteStatus, sentAt *time.Time, updatedAt time.Time) error {
	if err := r.v.writable(); err != nil {
		return err
	}
	i := r.find(id)
	if i < 0 {
		return fmt.Errorf("cotización %s: %w", id, domain.ErrNotFound)
	}
	q := r.v.st.quotes[i].Clone()
	q.Status = status
	q.SentAt = sentAt
	q.UpdatedAt = updatedAt
	r.v.st.quotes[i] = q
	return nil
}
