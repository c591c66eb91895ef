package ledger_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/ironhub-api/internal/domain/entity"
	"github.com/jhoicas/ironhub-api/internal/domain/ledger"
)

func item(qty, price int64) entity.QuoteItem {
	return entity.QuoteItem{Description: "ítem", Quantity: decimal.NewFromInt(qty), Price: decimal.NewFromInt(price)}
}

func TestQuoteTotal_SumaCantidadPorPrecio(t *testing.T) {
	q := &entity.Quote{Items: []entity.QuoteItem{item(2, 500), item(1, 1200)}}

	first := ledger.QuoteTotal(q)
	second := ledger.QuoteTotal(q)

	assert.True(t, decimal.NewFromInt(2200).Equal(first), "total esperado 2200, obtenido %s", first)
	assert.True(t, first.Equal(second), "dos llamadas con la misma entrada deben coincidir")
}

func TestQuoteTotal_Decimales(t *testing.T) {
	q := &entity.Quote{Items: []entity.QuoteItem{{
		Quantity: decimal.RequireFromString("1.5"),
		Price:    decimal.RequireFromString("10.10"),
	}}}
	assert.Equal(t, "15.15", ledger.QuoteTotal(q).StringFixed(2))
}

func TestQuoteTotal_SinItemsONil(t *testing.T) {
	assert.True(t, ledger.QuoteTotal(&entity.Quote{}).IsZero())
	assert.True(t, ledger.QuoteTotal(nil).IsZero())
}

func TestBalance(t *testing.T) {
	tests := []struct {
		name   string
		billed string
		paid   string
		want   string
	}{
		{"saldo pendiente", "10514.31", "8000", "2514.31"},
		{"al día", "100", "100", "0"},
		{"sobrepago", "0", "2300", "-2300"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &entity.Customer{
				TotalBilled: decimal.RequireFromString(tt.billed),
				TotalPaid:   decimal.RequireFromString(tt.paid),
			}
			assert.True(t, decimal.RequireFromString(tt.want).Equal(ledger.Balance(c)))
		})
	}
}

func TestSumPayments(t *testing.T) {
	payments := []*entity.Payment{
		{Amount: decimal.NewFromInt(1500)},
		{Amount: decimal.NewFromInt(800)},
	}
	assert.True(t, decimal.NewFromInt(2300).Equal(ledger.SumPayments(payments)))
	assert.True(t, ledger.SumPayments(nil).IsZero())
}

func TestFitsPlaces(t *testing.T) {
	tests := []struct {
		value  string
		places int32
		want   bool
	}{
		{"10", ledger.MoneyPlaces, true},
		{"10.25", ledger.MoneyPlaces, true},
		{"10.250", ledger.MoneyPlaces, true},
		{"0.001", ledger.MoneyPlaces, false},
		{"1.2345", ledger.QuantityPlaces, true},
		{"1.23456", ledger.QuantityPlaces, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ledger.FitsPlaces(decimal.RequireFromString(tt.value), tt.places), tt.value)
	}
}
