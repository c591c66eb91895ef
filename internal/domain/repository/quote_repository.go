package repository

import (
	"context"
	"time"

	"github.com/jhoicas/ironhub-api/internal/domain/entity"
)

// QuoteRepository define el puerto de persistencia para Quote y sus líneas.
type QuoteRepository interface {
	Create(ctx context.Context, quote *entity.Quote) error
	// GetByID devuelve (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.Quote, error)
	Exists(ctx context.Context, id string) (bool, error)
	List(ctx context.Context) ([]*entity.Quote, error)
	ListByCustomer(ctx context.Context, customerID string) ([]*entity.Quote, error)
	ListByStatus(ctx context.Context, status entity.QuoteStatus) ([]*entity.Quote, error)
	UpdateStatus(ctx context.Context, id string, status entity.QuoteStatus, sentAt *time.Time, updatedAt time.Time) error
}
