package ledger

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/jhoicas/ironhub-api/internal/application/dto"
	"github.com/jhoicas/ironhub-api/internal/application/ports"
	"github.com/jhoicas/ironhub-api/internal/domain"
	"github.com/jhoicas/ironhub-api/internal/domain/entity"
	domledger "github.com/jhoicas/ironhub-api/internal/domain/ledger"
	"github.com/jhoicas/ironhub-api/internal/domain/repository"
	"github.com/jhoicas/ironhub-api/pkg/logger"
)

const (
	quoteIDPrefix   = "QT-"
	quoteSuffixLen  = 4
	quoteIDAttempts = 5
)

// QuoteUseCase emisión de cotizaciones y su ciclo de vida.
// Aceptar una cotización es el evento de facturación: su total se suma a total_billed del cliente.
type QuoteUseCase struct {
	tx    ports.TxRunner
	clock ports.Clock
	ids   ports.IDGenerator
	log   *logger.Logger
}

// NewQuoteUseCase construye el caso de uso. log puede ser nil.
func NewQuoteUseCase(tx ports.TxRunner, clock ports.Clock, ids ports.IDGenerator, log *logger.Logger) *QuoteUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &QuoteUseCase{tx: tx, clock: clock, ids: ids, log: log.Named("quotes")}
}

// List devuelve las cotizaciones; status vacío = todas.
func (uc *QuoteUseCase) List(ctx context.Context, status string) ([]dto.QuoteResponse, error) {
	var filter entity.QuoteStatus
	if status != "" {
		filter = entity.QuoteStatus(status)
		if !filter.Valid() {
			return nil, fmt.Errorf("%w: estado %q desconocido", domain.ErrInvalidInput, status)
		}
	}
	var list []*entity.Quote
	err := uc.tx.RunReadOnly(ctx, func(r ports.Repos) error {
		var err error
		if filter == "" {
			list, err = r.Quotes.List(ctx)
		} else {
			list, err = r.Quotes.ListByStatus(ctx, filter)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.QuoteResponse, 0, len(list))
	for _, q := range list {
		out = append(out, ToQuoteResponse(q))
	}
	return out, nil
}

// Get devuelve una cotización por ID.
func (uc *QuoteUseCase) Get(ctx context.Context, id string) (*dto.QuoteResponse, error) {
	var q *entity.Quote
	err := uc.tx.RunReadOnly(ctx, func(r ports.Repos) error {
		var err error
		q, err = r.Quotes.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, fmt.Errorf("cotización %s: %w", id, domain.ErrNotFound)
	}
	resp := ToQuoteResponse(q)
	return &resp, nil
}

// Create emite una cotización para un cliente existente.
// Un status válido del caller se respeta; cualquier otro valor queda en draft.
// Si nace como accepted se factura de inmediato.
func (uc *QuoteUseCase) Create(ctx context.Context, actor string, in dto.CreateQuoteRequest) (*dto.QuoteResponse, error) {
	in.CustomerID = strings.TrimSpace(in.CustomerID)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	items := make([]entity.QuoteItem, 0, len(in.Items))
	for i, it := range in.Items {
		if !it.Quantity.IsPositive() {
			return nil, fmt.Errorf("%w: items[%d].quantity debe ser mayor que cero", domain.ErrInvalidInput, i)
		}
		if it.Price.IsNegative() {
			return nil, fmt.Errorf("%w: items[%d].price no puede ser negativo", domain.ErrInvalidInput, i)
		}
		if !domledger.FitsPlaces(it.Quantity, domledger.QuantityPlaces) {
			return nil, fmt.Errorf("%w: items[%d].quantity admite como máximo %d decimales", domain.ErrInvalidInput, i, domledger.QuantityPlaces)
		}
		if !domledger.FitsPlaces(it.Price, domledger.MoneyPlaces) {
			return nil, fmt.Errorf("%w: items[%d].price admite como máximo %d decimales", domain.ErrInvalidInput, i, domledger.MoneyPlaces)
		}
		items = append(items, entity.QuoteItem{
			Description: strings.TrimSpace(it.Description),
			Quantity:    it.Quantity,
			Price:       it.Price,
		})
	}

	status := entity.QuoteStatus(strings.ToLower(strings.TrimSpace(in.Status)))
	if !status.Valid() {
		status = entity.QuoteStatusDraft
	}

	now := uc.clock.Now()
	quote := &entity.Quote{
		CustomerID: in.CustomerID,
		Items:      items,
		Status:     status,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if status != entity.QuoteStatusDraft {
		sentAt := now
		quote.SentAt = &sentAt
	}
	total := domledger.QuoteTotal(quote)

	err := uc.tx.RunForCustomer(ctx, in.CustomerID, func(r ports.Repos, _ *entity.Customer) error {
		id, err := uc.newQuoteID(ctx, r.Quotes, now.Year())
		if err != nil {
			return err
		}
		quote.ID = id
		if err := r.Quotes.Create(ctx, quote); err != nil {
			return fmt.Errorf("crear cotización: %w", err)
		}
		if status == entity.QuoteStatusAccepted {
			if err := r.Customers.AddBilled(ctx, in.CustomerID, total); err != nil {
				return err
			}
		}
		entry := NewAuditEntry(uc.ids, now, in.CustomerID, actor, entity.AuditActionQuoteCreated,
			fmt.Sprintf("Quote %s created with status %s, total %s.", quote.ID, status, money(total)))
		return r.Audit.Append(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("quote_id", quote.ID).Str("customer_id", quote.CustomerID).
		Str("status", string(status)).Str("total", total.String()).Msg("cotización creada")
	resp := ToQuoteResponse(quote)
	return &resp, nil
}

// ChangeStatus aplica una transición del flujo draft → sent → accepted|rejected.
// Entrar a sent marca sent_at; entrar a accepted suma el total a lo facturado del cliente.
func (uc *QuoteUseCase) ChangeStatus(ctx context.Context, actor, quoteID, status string) (*dto.QuoteResponse, error) {
	to := entity.QuoteStatus(strings.ToLower(strings.TrimSpace(status)))
	if !to.Valid() {
		return nil, fmt.Errorf("%w: estado %q desconocido", domain.ErrInvalidInput, status)
	}

	current, err := uc.Get(ctx, quoteID)
	if err != nil {
		return nil, err
	}

	var updated *entity.Quote
	err = uc.tx.RunForCustomer(ctx, current.CustomerID, func(r ports.Repos, _ *entity.Customer) error {
		// Releer bajo el lock del cliente: el estado pudo cambiar desde la lectura anterior.
		q, err := r.Quotes.GetByID(ctx, quoteID)
		if err != nil {
			return err
		}
		if q == nil {
			return fmt.Errorf("cotización %s: %w", quoteID, domain.ErrNotFound)
		}
		from := q.Status
		if !entity.CanTransition(from, to) {
			return fmt.Errorf("%w: %s → %s", domain.ErrInvalidTransition, from, to)
		}

		now := uc.clock.Now()
		sentAt := q.SentAt
		if to == entity.QuoteStatusSent {
			sentAt = &now
		}
		if err := r.Quotes.UpdateStatus(ctx, q.ID, to, sentAt, now); err != nil {
			return err
		}
		total := domledger.QuoteTotal(q)
		if to == entity.QuoteStatusAccepted {
			if err := r.Customers.AddBilled(ctx, q.CustomerID, total); err != nil {
				return err
			}
		}
		entry := NewAuditEntry(uc.ids, now, q.CustomerID, actor, entity.AuditActionQuoteStatus,
			fmt.Sprintf("Quote %s moved from %s to %s (total %s).", q.ID, from, to, money(total)))
		if err := r.Audit.Append(ctx, entry); err != nil {
			return err
		}

		q.Status = to
		q.SentAt = sentAt
		q.UpdatedAt = now
		updated = q
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("quote_id", updated.ID).Str("status", string(to)).Msg("estado de cotización actualizado")
	resp := ToQuoteResponse(updated)
	return &resp, nil
}

// newQuoteID genera QT-<año><4 alfanuméricos> reintentando ante colisión.
func (uc *QuoteUseCase) newQuoteID(ctx context.Context, quotes repository.QuoteRepository, year int) (string, error) {
	for attempt := 0; attempt < quoteIDAttempts; attempt++ {
		id := fmt.Sprintf("%s%d%s", quoteIDPrefix, year, quoteSuffix(uc.ids.NewID()))
		exists, err := quotes.Exists(ctx, id)
		if err != nil {
			return "", err
		}
		if !exists {
			return id, nil
		}
	}
	return "", fmt.Errorf("generar id de cotización: %w", domain.ErrDuplicate)
}

// quoteSuffix toma los últimos caracteres alfanuméricos de raw en mayúsculas.
func quoteSuffix(raw string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(raw) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
		}
	}
	s := b.String()
	if len(s) >= quoteSuffixLen {
		return s[len(s)-quoteSuffixLen:]
	}
	return strings.Repeat("0", quoteSuffixLen-len(s)) + s
}
