package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod medio de pago aceptado.
type PaymentMethod string

// Medios de pago (deben coincidir con el CHECK de la tabla payments).
const (
	PaymentMethodBankTransfer PaymentMethod = "Bank Transfer"
	PaymentMethodCreditCard   PaymentMethod = "Credit Card"
	PaymentMethodCheck        PaymentMethod = "Check"
)

// Valid indica si m es un medio de pago conocido.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodBankTransfer, PaymentMethodCreditCard, PaymentMethodCheck:
		return true
	}
	return false
}

// Origen del registro del pago.
const (
	PaymentSourceManual = "manual"
	PaymentSourceImport = "import"
)

// Payment recibo de dinero de un cliente. Inmutable una vez creado.
// InvoiceID vacío = fondos sin asignar a una factura.
type Payment struct {
	ID         string
	CustomerID string
	Date       time.Time
	Amount     decimal.Decimal
	Method     PaymentMethod
	InvoiceID  string
	Source     string
	CreatedAt  time.Time
}

// Allocated indica si el pago está asignado a una factura.
func (p *Payment) Allocated() bool { return p.InvoiceID != "" }
