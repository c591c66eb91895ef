package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appledger "github.com/jhoicas/ironhub-api/internal/application/ledger"
	"github.com/jhoicas/ironhub-api/internal/domain/entity"
)

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0":         "$0.00",
		"999.5":     "$999.50",
		"1000":      "$1,000.00",
		"1234567.5": "$1,234,567.50",
		"-20":       "-$20.00",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatMoney(decimal.RequireFromString(in)), in)
	}
}

func TestGenerateStatement_GeneraPDF(t *testing.T) {
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	snap := &appledger.AccountSnapshot{
		Customer: &entity.Customer{
			ID: "c1", Name: "Acme Logistics", Email: "ap@acme.test",
			TotalBilled: decimal.NewFromInt(5000), TotalPaid: decimal.NewFromInt(1500),
		},
		Quotes: []*entity.Quote{{
			ID: "QT-2026A1B2", CustomerID: "c1", Status: entity.QuoteStatusAccepted, CreatedAt: now,
			Items: []entity.QuoteItem{{Description: "Lowboy haul", Quantity: decimal.NewFromInt(2), Price: decimal.NewFromInt(2500)}},
		}},
		Payments: []*entity.Payment{{
			ID: "PAY-1", CustomerID: "c1", Date: now, Amount: decimal.NewFromInt(1500),
			Method: entity.PaymentMethodCheck, InvoiceID: "QT-2026A1B2",
		}},
		GeneratedAt: now,
	}

	out, err := NewMarotoPDFGenerator("").GenerateStatement(snap)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateStatement_SinCliente(t *testing.T) {
	_, err := NewMarotoPDFGenerator("x").GenerateStatement(&appledger.AccountSnapshot{})
	assert.Error(t, err)
}
