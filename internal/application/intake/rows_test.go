package intake_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ironhub-api/internal/application/dto"
	"github.com/jhoicas/ironhub-api/internal/application/intake"
	"github.com/jhoicas/ironhub-api/internal/domain"
)

func TestNormalize_Pagos(t *testing.T) {
	tests := []struct {
		name       string
		fields     map[string]string
		wantErr    error
		wantAmount string
		wantMethod string
		wantDate   string
	}{
		{"wire con fecha US", map[string]string{"amount": "$1,250.50", "method": "Wire", "date": "4/7/2026", "customer_id": "c1"}, nil, "1250.5", "Bank Transfer", "2026-04-07"},
		{"cheque sin fecha", map[string]string{"amount": "99", "method": "cheque", "invoice_id": "QT-1"}, nil, "99", "Check", ""},
		{"tarjeta", map[string]string{"amount": "USD 10", "method": "CC", "customer_id": "c1"}, nil, "10", "Credit Card", ""},
		{"monto negativo entre paréntesis", map[string]string{"amount": "(50)", "method": "ach", "customer_id": "c1"}, domain.ErrInvalidAmount, "", "", ""},
		{"sin monto", map[string]string{"method": "ach", "customer_id": "c1"}, domain.ErrInvalidAmount, "", "", ""},
		{"monto con fracción de centavo", map[string]string{"amount": "$10.005", "method": "ach", "customer_id": "c1"}, domain.ErrInvalidInput, "", "", ""},
		{"método desconocido", map[string]string{"amount": "10", "method": "crypto", "customer_id": "c1"}, domain.ErrInvalidInput, "", "", ""},
		{"sin cliente ni factura", map[string]string{"amount": "10", "method": "ach"}, domain.ErrInvalidInput, "", "", ""},
		{"fecha ilegible", map[string]string{"amount": "10", "method": "ach", "customer_id": "c1", "date": "ayer"}, domain.ErrInvalidInput, "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row, err := intake.Normalize(dto.IntakeEntityPayments, 7, tt.fields)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 7, row.SourceRow())
			req := row.Record().(dto.CreatePaymentRequest)
			assert.True(t, req.Amount.Equal(decimal.RequireFromString(tt.wantAmount)))
			assert.Equal(t, tt.wantMethod, req.Method)
			assert.Equal(t, tt.wantDate, req.Date)
		})
	}
}

func TestNormalize_Inventario(t *testing.T) {
	row, err := intake.Normalize(dto.IntakeEntityInventory, 1, map[string]string{"name": "Track pad", "part_number": "TP-9", "type": "Spare", "cost": "12.00"})
	require.NoError(t, err)
	req := row.Record().(dto.CreateInventoryItemRequest)
	assert.Equal(t, "part", req.Type)
	assert.Equal(t, 1, req.Quantity)
	require.NotNil(t, req.Cost)

	_, err = intake.Normalize(dto.IntakeEntityInventory, 2, map[string]string{"name": "X", "quantity": "2.5"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = intake.Normalize(dto.IntakeEntityInventory, 3, map[string]string{"name": "X", "type": "vehicle"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNormalize_Clientes(t *testing.T) {
	row, err := intake.Normalize(dto.IntakeEntityCustomers, 1, map[string]string{"name": "Apex", "email": "Apex Billing <Billing@Apex.com>"})
	require.NoError(t, err)
	assert.Equal(t, "billing@apex.com", row.Record().(dto.CreateCustomerRequest).Email)

	_, err = intake.Normalize(dto.IntakeEntityCustomers, 2, map[string]string{"name": "Apex", "email": "nope"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
