package ledger_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ironhub-api/internal/application/dto"
	"github.com/jhoicas/ironhub-api/internal/domain"
	"github.com/jhoicas/ironhub-api/internal/domain/entity"
)

const actor = "ops@americaniron.com"

func mustCustomer(t *testing.T, f *fixture, name string) string {
	t.Helper()
	c, err := f.customers.Create(context.Background(), actor, dto.CreateCustomerRequest{Name: name, Email: "billing@example.com"})
	require.NoError(t, err)
	return c.ID
}

func mustQuote(t *testing.T, f *fixture, customerID string, qty, price int64) string {
	t.Helper()
	q, err := f.quotes.Create(context.Background(), actor, dto.CreateQuoteRequest{
		CustomerID: customerID,
		Items:      []dto.QuoteItemDTO{{Description: "CAT 320 transport", Quantity: decimal.NewFromInt(qty), Price: decimal.NewFromInt(price)}},
	})
	require.NoError(t, err)
	return q.ID
}

func payment(amount int64, invoiceID string) dto.CreatePaymentRequest {
	return dto.CreatePaymentRequest{
		Date:      "2026-05-01",
		Amount:    decimal.NewFromInt(amount),
		Method:    string(entity.PaymentMethodBankTransfer),
		InvoiceID: invoiceID,
	}
}

func TestLedger_EscenarioCompleto(t *testing.T) {
	ctx := context.Background()
	f := newFixture(nil)

	cID := mustCustomer(t, f, "Gulf Coast Cranes")
	qID := mustQuote(t, f, cID, 3, 1000)

	p1, err := f.payments.Create(ctx, actor, cID, payment(1500, qID))
	require.NoError(t, err)
	p2, err := f.payments.Create(ctx, actor, cID, payment(800, ""))
	require.NoError(t, err)

	view, err := f.accounts.GetAccountView(ctx, cID)
	require.NoError(t, err)

	ids := []string{}
	for _, p := range view.Payments {
		ids = append(ids, p.ID)
	}
	assert.ElementsMatch(t, []string{p1.ID, p2.ID}, ids)
	assert.True(t, view.Customer.TotalPaid.Equal(decimal.NewFromInt(2300)))
	assert.True(t, view.Customer.Balance.Equal(view.Customer.TotalBilled.Sub(decimal.NewFromInt(2300))))
	require.Len(t, view.Quotes, 1)
	assert.True(t, view.Quotes[0].Total.Equal(decimal.NewFromInt(3000)))

	// Aceptar la cotización factura su total.
	_, err = f.quotes.ChangeStatus(ctx, actor, qID, "sent")
	require.NoError(t, err)
	_, err = f.quotes.ChangeStatus(ctx, actor, qID, "accepted")
	require.NoError(t, err)

	bal, err := f.accounts.Balance(ctx, cID)
	require.NoError(t, err)
	assert.True(t, bal.TotalBilled.Equal(decimal.NewFromInt(3000)))
	assert.True(t, bal.Balance.Equal(decimal.NewFromInt(700)))
}

func TestCreatePayment_MontoInvalidoNoCambiaEstado(t *testing.T) {
	ctx := context.Background()
	f := newFixture(nil)
	cID := mustCustomer(t, f, "Acme")
	before, err := f.accounts.GetAccountView(ctx, cID)
	require.NoError(t, err)

	for _, amount := range []int64{0, -50} {
		_, err := f.payments.Create(ctx, actor, cID, payment(amount, ""))
		assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	}

	after, err := f.accounts.GetAccountView(ctx, cID)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestCreatePayment_MasDeDosDecimalesNoCambiaEstado(t *testing.T) {
	ctx := context.Background()
	f := newFixture(nil)
	cID := mustCustomer(t, f, "Acme")

	in := payment(0, "")
	in.Amount = decimal.RequireFromString("0.001")
	_, err := f.payments.Create(ctx, actor, cID, in)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	bal, err := f.accounts.Balance(ctx, cID)
	require.NoError(t, err)
	assert.True(t, bal.TotalPaid.IsZero())
	assert.True(t, bal.Balance.IsZero())

	// Ceros a la derecha no agregan precisión.
	in.Amount = decimal.RequireFromString("12.500")
	_, err = f.payments.Create(ctx, actor, cID, in)
	require.NoError(t, err)
}

func TestCreatePayment_ClienteInexistente(t *testing.T) {
	ctx := context.Background()
	f := newFixture(nil)
	before := len(f.store.AuditLogs())

	_, err := f.payments.Create(ctx, actor, "no-existe", payment(100, ""))
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Len(t, f.store.AuditLogs(), before)
}

func TestCreatePayment_FacturaDeOtroCliente(t *testing.T) {
	ctx := context.Background()
	f := newFixture(nil)
	a := mustCustomer(t, f, "A")
	b := mustCustomer(t, f, "B")
	qB := mustQuote(t, f, b, 1, 500)

	_, err := f.payments.Create(ctx, actor, a, payment(100, qB))
	assert.ErrorIs(t, err, domain.ErrInvalidAllocation)

	bal, err := f.accounts.Balance(ctx, a)
	require.NoError(t, err)
	assert.True(t, bal.TotalPaid.IsZero())
}

func TestCreatePayment_FacturaInexistente(t *testing.T) {
	ctx := context.Background()
	f := newFixture(nil)
	a := mustCustomer(t, f, "A")

	_, err := f.payments.Create(ctx, actor, a, payment(100, "QT-2026XXXX"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreatePayment_ValidaMetodoYFecha(t *testing.T) {
	ctx := context.Background()
	f := newFixture(nil)
	a := mustCustomer(t, f, "A")

	bad := payment(100, "")
	bad.Method = "Bitcoin"
	_, err := f.payments.Create(ctx, actor, a, bad)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	bad = payment(100, "")
	bad.Date = "05/01/2026"
	_, err = f.payments.Create(ctx, actor, a, bad)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	noDate := payment(100, "")
	noDate.Date = ""
	p, err := f.payments.Create(ctx, actor, a, noDate)
	require.NoError(t, err)
	assert.Equal(t, "2026-05-10", p.Date)
	assert.Equal(t, entity.PaymentSourceManual, p.Source)
	assert.True(t, strings.HasPrefix(p.ID, "PAY-"))
}

func TestCreatePayment_UnaEntradaDeBitacoraPorPago(t *testing.T) {
	ctx := context.Background()
	f := newFixture(nil)
	cID := mustCustomer(t, f, "A")

	for i := 0; i < 3; i++ {
		_, err := f.payments.Create(ctx, actor, cID, payment(10, ""))
		require.NoError(t, err)
	}
	view, err := f.accounts.GetAccountView(ctx, cID)
	require.NoError(t, err)

	count := 0
	for _, l := range view.Logs {
		if l.Action == entity.AuditActionPayment {
			count++
			assert.Equal(t, actor, l.UserEmail)
		}
	}
	assert.Equal(t, 3, count)
	// Más reciente primero.
	assert.Equal(t, entity.AuditActionPayment, view.Logs[0].Action)
	assert.Equal(t, entity.AuditActionAccountCreated, view.Logs[len(view.Logs)-1].Action)
}

func TestCreatePayment_ConcurrenteNoPierdeActualizaciones(t *testing.T) {
	ctx := context.Background()
	f := newFixture(nil)
	a := mustCustomer(t, f, "A")
	b := mustCustomer(t, f, "B")

	const workers = 40
	var wg sync.WaitGroup
	for i := 1; i <= workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			target := a
			if i%2 == 0 {
				target = b
			}
			_, err := f.payments.Create(ctx, actor, target, payment(int64(i), ""))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	for _, id := range []string{a, b} {
		rec, err := f.payments.Reconcile(ctx, id)
		require.NoError(t, err)
		assert.True(t, rec.Consistent, "cliente %s", id)
		assert.Equal(t, workers/2, rec.PaymentCount)
	}
	recA, _ := f.payments.Reconcile(ctx, a)
	recB, _ := f.payments.Reconcile(ctx, b)
	// impares 1..39 = 400, pares 2..40 = 420
	assert.True(t, recA.TotalPaid.Equal(decimal.NewFromInt(400)))
	assert.True(t, recB.TotalPaid.Equal(decimal.NewFromInt(420)))
}

func TestBulkPayments_ResultadoPorItemYTotales(t *testing.T) {
	ctx := context.Background()
	f := newFixture(nil)
	cID := mustCustomer(t, f, "A")

	items := []dto.CreatePaymentRequest{
		{CustomerID: cID, Amount: decimal.NewFromInt(100), Method: "Check"},
		{CustomerID: cID, Amount: decimal.Zero, Method: "Check"},
		{CustomerID: "ghost", Amount: decimal.NewFromInt(5), Method: "Check"},
		{CustomerID: cID, Amount: decimal.NewFromInt(50), Method: "Credit Card"},
	}
	res, err := f.payments.BulkCreate(ctx, actor, items)
	require.NoError(t, err)

	assert.Equal(t, 4, res.Total)
	assert.Equal(t, 2, res.Succeeded)
	assert.Equal(t, 2, res.Failed)
	assert.Equal(t, dto.BulkStatusOK, res.Results[0].Status)
	assert.Equal(t, dto.BulkStatusError, res.Results[1].Status)
	assert.ErrorIs(t, res.Results[1].Err, domain.ErrInvalidAmount)
	assert.Equal(t, dto.BulkStatusError, res.Results[2].Status)
	assert.Equal(t, 3, res.Results[3].Index)

	rec, err := f.payments.Reconcile(ctx, cID)
	require.NoError(t, err)
	assert.True(t, rec.TotalPaid.Equal(decimal.NewFromInt(150)))
	assert.True(t, rec.Consistent)

	view, _ := f.accounts.GetAccountView(ctx, cID)
	for _, p := range view.Payments {
		assert.Equal(t, entity.PaymentSourceImport, p.Source)
	}
}

func TestReconcile_ClienteInexistente(t *testing.T) {
	f := newFixture(nil)
	_, err := f.payments.Reconcile(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
