package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/jhoicas/ironhub-api/internal/application/analytics"
	"github.com/jhoicas/ironhub-api/internal/application/auth"
	"github.com/jhoicas/ironhub-api/internal/application/dto"
	"github.com/jhoicas/ironhub-api/internal/application/intake"
	"github.com/jhoicas/ironhub-api/internal/application/inventory"
	"github.com/jhoicas/ironhub-api/internal/application/ledger"
	"github.com/jhoicas/ironhub-api/internal/application/ports"
	"github.com/jhoicas/ironhub-api/internal/domain/entity"
	"github.com/jhoicas/ironhub-api/internal/infrastructure/importer"
	"github.com/jhoicas/ironhub-api/internal/infrastructure/memory"
	"github.com/jhoicas/ironhub-api/internal/infrastructure/pdf"
	"github.com/jhoicas/ironhub-api/internal/infrastructure/system"
	apphttp "github.com/jhoicas/ironhub-api/internal/interfaces/http"
)

const (
	adminEmail    = "admin@americaniron.test"
	adminPassword = "s3cret-pass"
)

// testAPIOptions variantes del armado de la API para pruebas.
type testAPIOptions struct {
	production bool
	// paymentsTx reemplaza el TxRunner del caso de uso de pagos.
	paymentsTx func(ports.TxRunner) ports.TxRunner
}

// newTestAPI arma la API completa sobre el store en memoria y devuelve la app y un token de admin.
func newTestAPI(t *testing.T) (*fiber.App, string) {
	return newTestAPIWith(t, testAPIOptions{})
}

func newTestAPIWith(t *testing.T, opts testAPIOptions) (*fiber.App, string) {
	t.Helper()
	store := memory.New()
	tx := memory.NewTxRunner(store)
	clock := system.Clock{}
	ids := system.UUIDGenerator{}

	var paymentsTx ports.TxRunner = tx
	if opts.paymentsTx != nil {
		paymentsTx = opts.paymentsTx(tx)
	}

	customers := ledger.NewCustomerUseCase(tx, clock, ids, nil)
	payments := ledger.NewPaymentUseCase(paymentsTx, clock, ids, nil)
	inv := inventory.NewUseCase(tx, clock, ids, nil)
	authUC := auth.NewAuthUseCase(memory.NewUserRepository(store), clock, ids,
		auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer})

	created, err := authUC.EnsureAdmin(context.Background(), adminEmail, adminPassword)
	require.NoError(t, err)
	require.True(t, created)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		CustomerUC:  customers,
		QuoteUC:     ledger.NewQuoteUseCase(tx, clock, ids, nil),
		PaymentUC:   payments,
		AccountUC:   ledger.NewAccountUseCase(tx, clock, pdf.NewMarotoPDFGenerator("")),
		InventoryUC: inv,
		IntakeUC:    intake.NewUseCase(importer.NewParser(), nil, tx, customers, payments, inv, nil),
		DashboardUC: appanalytics.NewDashboardUseCase(tx, clock),
		AuthUC:      authUC,
		DB:          store,
		JWTSecret:   testJWTSecret,
		Production:  opts.production,
	})

	var login dto.LoginResponse
	resp := call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: adminEmail, Password: adminPassword})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &login)
	require.NotEmpty(t, login.Token)
	return app, "Bearer " + login.Token
}

func call(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	var e dto.ErrorResponse
	decode(t, resp, &e)
	return e.Code
}

func createCustomer(t *testing.T, app *fiber.App, token, name string) string {
	t.Helper()
	resp := call(t, app, http.MethodPost, "/api/customers", token, map[string]any{"name": name, "email": "ap@acme.test"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var c dto.CustomerResponse
	decode(t, resp, &c)
	return c.ID
}

func TestHealth(t *testing.T) {
	app, _ := newTestAPI(t)
	resp := call(t, app, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRutasProtegidasSinToken(t *testing.T) {
	app, _ := newTestAPI(t)
	resp := call(t, app, http.MethodGet, "/api/customers", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	app, _ := newTestAPI(t)
	resp := call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: adminEmail, Password: "wrong-password"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", errorCode(t, resp))
}

func TestFlujoDeCartera_CotizacionPagoYVistaDeCuenta(t *testing.T) {
	app, token := newTestAPI(t)
	customerID := createCustomer(t, app, token, "Acme Logistics")

	resp := call(t, app, http.MethodPost, "/api/quotes", token, map[string]any{
		"customer_id": customerID,
		"status":      "accepted",
		"items":       []map[string]any{{"description": "Lowboy haul", "quantity": 2, "price": 2500}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var quote dto.QuoteResponse
	decode(t, resp, &quote)
	assert.Equal(t, "5000", quote.Total.String())

	resp = call(t, app, http.MethodPost, "/api/customers/"+customerID+"/payments", token, map[string]any{
		"amount": 1500, "method": "Check", "invoice_id": quote.ID, "date": "2026-05-01",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/customers/"+customerID, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var view dto.AccountViewResponse
	decode(t, resp, &view)
	assert.Equal(t, "5000", view.Customer.TotalBilled.String())
	assert.Equal(t, "1500", view.Customer.TotalPaid.String())
	assert.Equal(t, "3500", view.Customer.Balance.String())
	require.Len(t, view.Payments, 1)
	assert.Equal(t, adminEmail, view.Logs[0].UserEmail)

	resp = call(t, app, http.MethodGet, "/api/customers/"+customerID+"/reconciliation", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var rec dto.ReconciliationResponse
	decode(t, resp, &rec)
	assert.True(t, rec.Consistent)

	resp = call(t, app, http.MethodGet, "/api/customers/"+customerID+"/statement", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "attachment")
}

func TestCrearPago_MapeoDeErrores(t *testing.T) {
	app, token := newTestAPI(t)
	customerID := createCustomer(t, app, token, "Acme")

	cases := []struct {
		name   string
		path   string
		body   map[string]any
		status int
		code   string
	}{
		{"monto cero", "/api/customers/" + customerID + "/payments", map[string]any{"amount": 0, "method": "Check"}, http.StatusBadRequest, "INVALID_AMOUNT"},
		{"cliente inexistente", "/api/customers/nope/payments", map[string]any{"amount": 10, "method": "Check"}, http.StatusNotFound, "NOT_FOUND"},
		{"medio inválido", "/api/customers/" + customerID + "/payments", map[string]any{"amount": 10, "method": "Cash"}, http.StatusBadRequest, "VALIDATION"},
		{"factura inexistente", "/api/customers/" + customerID + "/payments", map[string]any{"amount": 10, "method": "Check", "invoice_id": "QT-0000"}, http.StatusNotFound, "NOT_FOUND"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := call(t, app, http.MethodPost, tc.path, token, tc.body)
			assert.Equal(t, tc.status, resp.StatusCode)
			assert.Equal(t, tc.code, errorCode(t, resp))
		})
	}
}

// brokenTx falla cada escritura por cliente con un error crudo del driver.
type brokenTx struct {
	ports.TxRunner
}

func (brokenTx) RunForCustomer(context.Context, string, func(ports.Repos, *entity.Customer) error) error {
	return errors.New(`insert payment: ERROR: new row for relation "payments" violates check constraint "payments_amount_check" (SQLSTATE 23514)`)
}

func TestPagosMasivos_ProduccionOcultaErroresInternos(t *testing.T) {
	app, token := newTestAPIWith(t, testAPIOptions{
		production: true,
		paymentsTx: func(next ports.TxRunner) ports.TxRunner { return brokenTx{TxRunner: next} },
	})

	resp := call(t, app, http.MethodPost, "/api/payments/bulk", token, map[string]any{
		"items": []map[string]any{
			{"customer_id": "c-1", "amount": 0, "method": "Check"},
			{"customer_id": "c-1", "amount": 10, "method": "Check"},
		},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.BulkResponse
	decode(t, resp, &out)
	require.Len(t, out.Results, 2)
	assert.Equal(t, 2, out.Failed)

	assert.Equal(t, "INVALID_AMOUNT", out.Results[0].Code)
	assert.Contains(t, out.Results[0].Error, "monto")

	assert.Equal(t, "INTERNAL", out.Results[1].Code)
	assert.Equal(t, "error interno del servidor", out.Results[1].Error)
	assert.NotContains(t, out.Results[1].Error, "SQLSTATE")
}

func TestCambioDeEstado_TransicionInvalida(t *testing.T) {
	app, token := newTestAPI(t)
	customerID := createCustomer(t, app, token, "Acme")
	resp := call(t, app, http.MethodPost, "/api/quotes", token, map[string]any{
		"customer_id": customerID,
		"items":       []map[string]any{{"description": "Crane", "quantity": 1, "price": 900}},
	})
	var quote dto.QuoteResponse
	decode(t, resp, &quote)

	resp = call(t, app, http.MethodPatch, "/api/quotes/"+quote.ID+"/status", token, map[string]any{"status": "accepted"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INVALID_TRANSITION", errorCode(t, resp))

	resp = call(t, app, http.MethodPatch, "/api/quotes/"+quote.ID+"/status", token, map[string]any{"status": "sent"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRegistro_SoloAdmin(t *testing.T) {
	app, token := newTestAPI(t)

	resp := call(t, app, http.MethodPost, "/api/auth/register", token, dto.RegisterRequest{
		Email: "clerk@americaniron.test", Password: "clerk-pass-1", Role: "employee",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "clerk@americaniron.test", Password: "clerk-pass-1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var login dto.LoginResponse
	decode(t, resp, &login)

	resp = call(t, app, http.MethodPost, "/api/auth/register", "Bearer "+login.Token, dto.RegisterRequest{
		Email: "other@americaniron.test", Password: "other-pass-1",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestIntake_CSVDryRunNoEscribe(t *testing.T) {
	app, token := newTestAPI(t)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", "clientes.csv")
	require.NoError(t, err)
	_, err = io.Copy(fw, strings.NewReader("Name,Email,Phone\nAcme,ap@acme.test,555\n,missing@acme.test,\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/intake/customers?dry_run=true", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.IntakeResponse
	decode(t, resp, &out)
	assert.True(t, out.DryRun)
	assert.Equal(t, 2, out.Rows)
	assert.Equal(t, 1, out.Valid)
	require.Len(t, out.Errors, 1)
	assert.Equal(t, 2, out.Errors[0].Row)

	resp = call(t, app, http.MethodGet, "/api/customers", token, nil)
	var list []dto.CustomerResponse
	decode(t, resp, &list)
	assert.Empty(t, list)
}

func TestIntake_TextoSinExtractor(t *testing.T) {
	app, token := newTestAPI(t)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("content", "Acme paid 1500 by check"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/intake/payments", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDashboard_Resumen(t *testing.T) {
	app, token := newTestAPI(t)
	createCustomer(t, app, token, "Acme")

	resp := call(t, app, http.MethodGet, "/api/dashboard/summary", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var sum dto.DashboardSummaryDTO
	decode(t, resp, &sum)
	assert.Equal(t, 1, sum.CustomerCount)
}
