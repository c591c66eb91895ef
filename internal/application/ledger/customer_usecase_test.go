package ledger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ironhub-api/internal/application/dto"
	"github.com/jhoicas/ironhub-api/internal/domain"
	"github.com/jhoicas/ironhub-api/internal/domain/entity"
)

func TestBulkCustomers_TresFilasTresClientes(t *testing.T) {
	ctx := context.Background()
	f := newFixture(nil)

	res, err := f.customers.BulkCreate(ctx, actor, []dto.CreateCustomerRequest{
		{Name: "Apex Rigging", Email: "ap@apex.com"},
		{Name: "Bayou Heavy Haul", Email: "ops@bayou.com"},
		{Name: "Summit Cranes", Email: "ar@summit.com", BillingAddress: dto.AddressDTO{City: "Houston", State: "TX"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Succeeded)
	assert.Zero(t, res.Failed)

	list, err := f.customers.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	for _, c := range list {
		assert.True(t, c.TotalBilled.IsZero())
		assert.True(t, c.TotalPaid.IsZero())
	}
	assert.Equal(t, "Apex Rigging", list[0].Name, "orden de inserción")
	assert.Equal(t, "Houston", list[2].BillingAddress.City)

	logs := f.store.AuditLogs()
	require.Len(t, logs, 3)
	seen := map[string]int{}
	for _, l := range logs {
		assert.Equal(t, entity.AuditActionAccountCreated, l.Action)
		seen[l.CustomerID]++
	}
	for _, c := range list {
		assert.Equal(t, 1, seen[c.ID])
	}
}

func TestBulkCustomers_FilaInvalidaNoDetieneLasDemas(t *testing.T) {
	ctx := context.Background()
	f := newFixture(nil)

	res, err := f.customers.BulkCreate(ctx, actor, []dto.CreateCustomerRequest{
		{Name: "Ok"},
		{Name: ""},
		{Name: "Bad mail", Email: "not-an-email"},
		{Name: "Ok 2"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Succeeded)
	assert.Equal(t, 2, res.Failed)
	assert.Equal(t, dto.BulkStatusError, res.Results[1].Status)
	assert.Contains(t, res.Results[2].Error, "email")
	assert.Len(t, f.store.AuditLogs(), 2)
}

func TestCreateCustomer_EmailDuplicadoPermitido(t *testing.T) {
	ctx := context.Background()
	f := newFixture(nil)
	a, err := f.customers.Create(ctx, actor, dto.CreateCustomerRequest{Name: "A", Email: "same@x.com"})
	require.NoError(t, err)
	b, err := f.customers.Create(ctx, actor, dto.CreateCustomerRequest{Name: "B", Email: "same@x.com"})
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestGetAccountView_ClienteInexistente(t *testing.T) {
	f := newFixture(nil)
	_, err := f.accounts.GetAccountView(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
