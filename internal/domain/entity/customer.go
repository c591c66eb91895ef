package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Address dirección postal de facturación o de envío.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Country string `json:"country"`
}

// Customer representa una cuenta de cliente con sus totales de cartera.
// TotalBilled y TotalPaid solo crecen; el saldo se deriva (ver ledger.Balance).
type Customer struct {
	ID              string
	Name            string
	Email           string
	Phone           string
	BillingAddress  Address
	ShippingAddress Address
	InternalNotes   string
	TotalBilled     decimal.Decimal
	TotalPaid       decimal.Decimal
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Clone devuelve una copia independiente del cliente.
func (c *Customer) Clone() *Customer {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}
