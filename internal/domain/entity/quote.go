package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuoteStatus estado de una cotización/factura.
type QuoteStatus string

// Estados de la cotización. El flujo válido es draft → sent → accepted|rejected.
const (
	QuoteStatusDraft    QuoteStatus = "draft"
	QuoteStatusSent     QuoteStatus = "sent"
	QuoteStatusAccepted QuoteStatus = "accepted"
	QuoteStatusRejected QuoteStatus = "rejected"
)

var quoteTransitions = map[QuoteStatus][]QuoteStatus{
	QuoteStatusDraft: {QuoteStatusSent},
	QuoteStatusSent:  {QuoteStatusAccepted, QuoteStatusRejected},
}

// Valid indica si s es uno de los estados conocidos.
func (s QuoteStatus) Valid() bool {
	switch s {
	case QuoteStatusDraft, QuoteStatusSent, QuoteStatusAccepted, QuoteStatusRejected:
		return true
	}
	return false
}

// Terminal indica si desde s ya no hay transiciones posibles.
func (s QuoteStatus) Terminal() bool {
	return s == QuoteStatusAccepted || s == QuoteStatusRejected
}

// CanTransition indica si el cambio from → to respeta el flujo hacia adelante.
func CanTransition(from, to QuoteStatus) bool {
	for _, next := range quoteTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// QuoteItem línea de la cotización.
type QuoteItem struct {
	Description string
	Quantity    decimal.Decimal
	Price       decimal.Decimal // precio unitario
}

// Quote cotización emitida a un cliente; al ser aceptada se convierte en lo facturado.
// El total nunca se persiste: se calcula con ledger.QuoteTotal.
type Quote struct {
	ID         string
	CustomerID string
	Items      []QuoteItem
	Status     QuoteStatus
	CreatedAt  time.Time
	SentAt     *time.Time
	UpdatedAt  time.Time
}

// Clone devuelve una copia que no comparte el slice de ítems ni SentAt.
func (q *Quote) Clone() *Quote {
	if q == nil {
		return nil
	}
	cp := *q
	cp.Items = append([]QuoteItem(nil), q.Items...)
	if q.SentAt != nil {
		t := *q.SentAt
		cp.SentAt = &t
	}
	return &cp
}
