package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/ironhub-api/internal/application/dto"
	"github.com/jhoicas/ironhub-api/internal/application/ports"
	"github.com/jhoicas/ironhub-api/internal/domain/entity"
	domledger "github.com/jhoicas/ironhub-api/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

// systemActor actor de la bitácora cuando la operación no trae usuario.
const systemActor = "system"

// DateLayout formato de la fecha de pago en la API.
const DateLayout = "2006-01-02"

func toAddress(a dto.AddressDTO) entity.Address {
	return entity.Address{
		Street:  strings.TrimSpace(a.Street),
		City:    strings.TrimSpace(a.City),
		State:   strings.TrimSpace(a.State),
		Zip:     strings.TrimSpace(a.Zip),
		Country: strings.TrimSpace(a.Country),
	}
}

func fromAddress(a entity.Address) dto.AddressDTO {
	return dto.AddressDTO{Street: a.Street, City: a.City, State: a.State, Zip: a.Zip, Country: a.Country}
}

// ToCustomerResponse convierte la entidad y agrega el saldo derivado.
func ToCustomerResponse(c *entity.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{
		ID:              c.ID,
		Name:            c.Name,
		Email:           c.Email,
		Phone:           c.Phone,
		BillingAddress:  fromAddress(c.BillingAddress),
		ShippingAddress: fromAddress(c.ShippingAddress),
		InternalNotes:   c.InternalNotes,
		TotalBilled:     c.TotalBilled,
		TotalPaid:       c.TotalPaid,
		Balance:         domledger.Balance(c),
		CreatedAt:       c.CreatedAt,
	}
}

// ToQuoteResponse convierte la cotización; el total se calcula con domledger.QuoteTotal.
func ToQuoteResponse(q *entity.Quote) dto.QuoteResponse {
	items := make([]dto.QuoteItemDTO, 0, len(q.Items))
	for _, it := range q.Items {
		items = append(items, dto.QuoteItemDTO{Description: it.Description, Quantity: it.Quantity, Price: it.Price})
	}
	return dto.QuoteResponse{
		ID:         q.ID,
		CustomerID: q.CustomerID,
		Items:      items,
		Status:     string(q.Status),
		Total:      domledger.QuoteTotal(q),
		CreatedAt:  q.CreatedAt,
		SentAt:     q.SentAt,
	}
}

// ToPaymentResponse convierte el pago.
func ToPaymentResponse(p *entity.Payment) dto.PaymentResponse {
	return dto.PaymentResponse{
		ID:         p.ID,
		CustomerID: p.CustomerID,
		Date:       p.Date.Format(DateLayout),
		Amount:     p.Amount,
		Method:     string(p.Method),
		InvoiceID:  p.InvoiceID,
		Source:     p.Source,
		CreatedAt:  p.CreatedAt,
	}
}

// ToAuditLogResponse convierte la entrada de bitácora.
func ToAuditLogResponse(l *entity.AuditLog) dto.AuditLogResponse {
	return dto.AuditLogResponse{
		ID:         l.ID,
		CustomerID: l.CustomerID,
		UserEmail:  l.UserEmail,
		Action:     l.Action,
		Details:    l.Details,
		CreatedAt:  l.CreatedAt,
	}
}

// NewAuditEntry arma una entrada de bitácora. customerID vacío = evento global.
func NewAuditEntry(ids ports.IDGenerator, now time.Time, customerID, actor, action, details string) *entity.AuditLog {
	if strings.TrimSpace(actor) == "" {
		actor = systemActor
	}
	return &entity.AuditLog{
		ID:         ids.NewID(),
		CustomerID: customerID,
		UserEmail:  actor,
		Action:     action,
		Details:    details,
		CreatedAt:  now,
	}
}

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

func paymentDetails(p *entity.Payment) string {
	target := "unallocated"
	if p.Allocated() {
		target = "allocated to " + p.InvoiceID
	}
	return fmt.Sprintf("Payment %s of %s received via %s, %s.", p.ID, money(p.Amount), p.Method, target)
}
