package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AddressDTO dirección en peticiones y respuestas.
type AddressDTO struct {
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Zip     string `json:"zip,omitempty"`
	Country string `json:"country,omitempty"`
}

// CreateCustomerRequest body para POST /api/customers.
// Los totales no se aceptan: un cliente nuevo siempre arranca en cero.
type CreateCustomerRequest struct {
	Name            string     `json:"name" validate:"required,max=200"`
	Email           string     `json:"email" validate:"omitempty,email"`
	Phone           string     `json:"phone,omitempty" validate:"max=50"`
	BillingAddress  AddressDTO `json:"billing_address"`
	ShippingAddress AddressDTO `json:"shipping_address"`
	InternalNotes   string     `json:"internal_notes,omitempty"`
}

// BulkCustomersRequest body para POST /api/customers/bulk.
type BulkCustomersRequest struct {
	Items []CreateCustomerRequest `json:"items"`
}

// CustomerResponse cliente con sus totales y el saldo derivado.
type CustomerResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Email           string          `json:"email,omitempty"`
	Phone           string          `json:"phone,omitempty"`
	BillingAddress  AddressDTO      `json:"billing_address"`
	ShippingAddress AddressDTO      `json:"shipping_address"`
	InternalNotes   string          `json:"internal_notes,omitempty"`
	TotalBilled     decimal.Decimal `json:"total_billed"`
	TotalPaid       decimal.Decimal `json:"total_paid"`
	Balance         decimal.Decimal `json:"balance"`
	CreatedAt       time.Time       `json:"created_at"`
}

// QuoteItemDTO línea de cotización.
type QuoteItemDTO struct {
	Description string          `json:"description" validate:"required"`
	Quantity    decimal.Decimal `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

// CreateQuoteRequest body para POST /api/quotes. Status es opcional (por defecto draft).
type CreateQuoteRequest struct {
	CustomerID string         `json:"customer_id" validate:"required"`
	Items      []QuoteItemDTO `json:"items" validate:"required,min=1,dive"`
	Status     string         `json:"status,omitempty"`
}

// ChangeQuoteStatusRequest body para PATCH /api/quotes/:id/status.
type ChangeQuoteStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=draft sent accepted rejected"`
}

// QuoteResponse cotización con su total calculado.
type QuoteResponse struct {
	ID         string          `json:"id"`
	CustomerID string          `json:"customer_id"`
	Items      []QuoteItemDTO  `json:"items"`
	Status     string          `json:"status"`
	Total      decimal.Decimal `json:"total"`
	CreatedAt  time.Time       `json:"created_at"`
	SentAt     *time.Time      `json:"sent_at,omitempty"`
}

// CreatePaymentRequest body para POST /api/customers/:id/payments y cada ítem del bulk.
// Date en formato YYYY-MM-DD; vacío = hoy. InvoiceID vacío = fondos sin asignar.
type CreatePaymentRequest struct {
	CustomerID string          `json:"customer_id"`
	Date       string          `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Amount     decimal.Decimal `json:"amount"`
	Method     string          `json:"method" validate:"required,oneof='Bank Transfer' 'Credit Card' Check"`
	InvoiceID  string          `json:"invoice_id,omitempty"`
}

// BulkPaymentsRequest body para POST /api/payments/bulk.
type BulkPaymentsRequest struct {
	Items []CreatePaymentRequest `json:"items"`
}

// PaymentResponse pago registrado.
type PaymentResponse struct {
	ID         string          `json:"id"`
	CustomerID string          `json:"customer_id"`
	Date       string          `json:"date"`
	Amount     decimal.Decimal `json:"amount"`
	Method     string          `json:"method"`
	InvoiceID  string          `json:"invoice_id,omitempty"`
	Source     string          `json:"source"`
	CreatedAt  time.Time       `json:"created_at"`
}

// AuditLogResponse entrada de la bitácora.
type AuditLogResponse struct {
	ID         string    `json:"id"`
	CustomerID string    `json:"customer_id,omitempty"`
	UserEmail  string    `json:"user_email"`
	Action     string    `json:"action"`
	Details    string    `json:"details"`
	CreatedAt  time.Time `json:"created_at"`
}

// AccountViewResponse vista de cuenta del cliente (GET /api/customers/:id).
// Pagos y bitácora van del más reciente al más antiguo.
type AccountViewResponse struct {
	Customer CustomerResponse   `json:"customer"`
	Quotes   []QuoteResponse    `json:"quotes"`
	Payments []PaymentResponse  `json:"payments"`
	Logs     []AuditLogResponse `json:"logs"`
}

// BalanceResponse saldo del cliente, recalculado en cada lectura.
type BalanceResponse struct {
	CustomerID  string          `json:"customer_id"`
	TotalBilled decimal.Decimal `json:"total_billed"`
	TotalPaid   decimal.Decimal `json:"total_paid"`
	Balance     decimal.Decimal `json:"balance"`
}

// ReconciliationResponse compara el total pagado almacenado con la suma de los pagos.
type ReconciliationResponse struct {
	CustomerID   string          `json:"customer_id"`
	TotalPaid    decimal.Decimal `json:"total_paid"`
	PaymentsSum  decimal.Decimal `json:"payments_sum"`
	PaymentCount int             `json:"payment_count"`
	Difference   decimal.Decimal `json:"difference"`
	Consistent   bool            `json:"consistent"`
}
