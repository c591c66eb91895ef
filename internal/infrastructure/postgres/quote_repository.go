package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/ironhub-api/internal/domain"
	"github.com/jhoicas/ironhub-api/internal/domain/entity"
	"github.com/jhoicas/ironhub-api/internal/domain/repository"
)

var _ repository.QuoteRepository = (*QuoteRepo)(nil)

// QuoteRepo cotizaciones y sus líneas (tabla quote_items).
type QuoteRepo struct {
	q Querier
}

// NewQuoteRepository construye el adaptador.
func NewQuoteRepository(q Querier) *QuoteRepo {
	return &QuoteRepo{q: q}
}

// Create inserta la cotización y sus líneas. Usar dentro de una tx para que sea atómico.
func (r *QuoteRepo) Create(ctx context.Context, quote *entity.Quote) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO quotes (id, customer_id, status, created_at, sent_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		quote.ID, quote.CustomerID, string(quote.Status), quote.CreatedAt, quote.SentAt, quote.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("cliente %s: %w", quote.CustomerID, domain.ErrNotFound)
		}
		return fmt.Errorf("insert quote: %w", err)
	}

	for i, it := range quote.Items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO quote_items (quote_id, position, description, quantity, price)
			VALUES ($1, $2, $3, $4, $5)`,
			quote.ID, i, it.Description, it.Quantity, it.Price,
		)
		if err != nil {
			return fmt.Errorf("insert quote item: %w", err)
		}
	}
	return nil
}

const quoteColumns = `id, customer_id, status, created_at, sent_at, updated_at`

// GetByID obtiene la cotización con sus líneas.
func (r *QuoteRepo) GetByID(ctx context.Context, id string) (*entity.Quote, error) {
	var q entity.Quote
	var status string
	err := r.q.QueryRow(ctx, `SELECT `+quoteColumns+` FROM quotes WHERE id = $1`, id).Scan(
		&q.ID, &q.CustomerID, &status, &q.CreatedAt, &q.SentAt, &q.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get quote: %w", err)
	}
	q.Status = entity.QuoteStatus(status)
	if err := r.loadItems(ctx, []*entity.Quote{&q}); err != nil {
		return nil, err
	}
	return &q, nil
}

// Exists indica si ya hay una cotización con ese ID.
func (r *QuoteRepo) Exists(ctx context.Context, id string) (bool, error) {
	var ok bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM quotes WHERE id = $1)`, id).Scan(&ok); err != nil {
		return false, fmt.Errorf("quote exists: %w", err)
	}
	return ok, nil
}

// List todas las cotizaciones en orden de creación.
func (r *QuoteRepo) List(ctx context.Context) ([]*entity.Quote, error) {
	return r.list(ctx, `SELECT `+quoteColumns+` FROM quotes ORDER BY seq`)
}

// ListByCustomer cotizaciones del cliente en orden de creación.
func (r *QuoteRepo) ListByCustomer(ctx context.Context, customerID string) ([]*entity.Quote, error) {
	return r.list(ctx, `SELECT `+quoteColumns+` FROM quotes WHERE customer_id = $1 ORDER BY seq`, customerID)
}

// ListByStatus cotizaciones en un estado dado.
func (r *QuoteRepo) ListByStatus(ctx context.Context, status entity.QuoteStatus) ([]*entity.Quote, error) {
	return r.list(ctx, `SELECT `+quoteColumns+` FROM quotes WHERE status = $1 ORDER BY seq`, string(status))
}

// UpdateStatus cambia el estado (y sent_at si se indica).
func (r *QuoteRepo) UpdateStatus(ctx context.Context, id string, status entity.QuoteStatus, sentAt *time.Time, updatedAt time.Time) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE quotes SET status = $2, sent_at = COALESCE($3, sent_at), updated_at = $4
		WHERE id = $1`,
		id, string(status), sentAt, updatedAt,
	)
	if err != nil {
		return fmt.Errorf("update quote status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("cotización %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *QuoteRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Quote, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}
	list := make([]*entity.Quote, 0)
	for rows.Next() {
		var q entity.Quote
		var status string
		if err := rows.Scan(&q.ID, &q.CustomerID, &status, &q.CreatedAt, &q.SentAt, &q.UpdatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan quote: %w", err)
		}
		q.Status = entity.QuoteStatus(status)
		list = append(list, &q)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// loadItems carga las líneas de todas las cotizaciones con una sola consulta.
func (r *QuoteRepo) loadItems(ctx context.Context, quotes []*entity.Quote) error {
	if len(quotes) == 0 {
		return nil
	}
	ids := make([]string, 0, len(quotes))
	byID := make(map[string]*entity.Quote, len(quotes))
	for _, q := range quotes {
		ids = append(ids, q.ID)
		byID[q.ID] = q
		q.Items = make([]entity.QuoteItem, 0)
	}

	rows, err := r.q.Query(ctx, `
		SELECT quote_id, description, quantity, price
		FROM quote_items WHERE quote_id = ANY($1) ORDER BY quote_id, position`, ids)
	if err != nil {
		return fmt.Errorf("list quote items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var quoteID string
		var it entity.QuoteItem
		if err := rows.Scan(&quoteID, &it.Description, &it.Quantity, &it.Price); err != nil {
			return fmt.Errorf("scan quote item: %w", err)
		}
		if q := byID[quoteID]; q != nil {
			q.Items = append(q.Items, it)
		}
	}
	return rows.Err()
}
