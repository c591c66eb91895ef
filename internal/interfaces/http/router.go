package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/ironhub-api/internal/application/analytics"
	"github.com/jhoicas/ironhub-api/internal/application/auth"
	"github.com/jhoicas/ironhub-api/internal/application/intake"
	"github.com/jhoicas/ironhub-api/internal/application/inventory"
	"github.com/jhoicas/ironhub-api/internal/application/ledger"
	"github.com/jhoicas/ironhub-api/internal/domain/entity"
	"github.com/jhoicas/ironhub-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CustomerUC  *ledger.CustomerUseCase
	QuoteUC     *ledger.QuoteUseCase
	PaymentUC   *ledger.PaymentUseCase
	AccountUC   *ledger.AccountUseCase
	InventoryUC *inventory.UseCase
	IntakeUC    *intake.UseCase
	DashboardUC *appanalytics.DashboardUseCase
	AuthUC      *auth.AuthUseCase
	DB          Pinger
	JWTSecret   string
	Production  bool
	Logger      *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	errs := newErrorWriter(deps.Production, deps.Logger)

	app.Use(RequestLogger(deps.Logger))
	app.Get("/health", Health(deps.DB))

	api := app.Group("/api")

	// Auth (login público, registro solo admin)
	authHandler := NewAuthHandler(deps.AuthUC, errs)
	api.Post("/auth/login", authHandler.Login)
	api.Post("/auth/register", AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleAdmin), authHandler.Register)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Customers y cuenta
	customerHandler := NewCustomerHandler(deps.CustomerUC, deps.AccountUC, deps.PaymentUC, errs)
	paymentHandler := NewPaymentHandler(deps.PaymentUC, errs)
	customers := protected.Group("/customers")
	customers.Get("/", customerHandler.List)
	customers.Post("/", customerHandler.Create)
	customers.Post("/bulk", customerHandler.BulkCreate)
	customers.Get("/:id", customerHandler.GetAccount)
	customers.Get("/:id/balance", customerHandler.Balance)
	customers.Get("/:id/reconciliation", customerHandler.Reconcile)
	customers.Get("/:id/statement", customerHandler.Statement)
	customers.Post("/:id/payments", paymentHandler.Create)

	// Payments
	protected.Post("/payments/bulk", paymentHandler.BulkCreate)

	// Quotes
	quoteHandler := NewQuoteHandler(deps.QuoteUC, errs)
	quotes := protected.Group("/quotes")
	quotes.Get("/", quoteHandler.List)
	quotes.Post("/", quoteHandler.Create)
	quotes.Get("/:id", quoteHandler.Get)
	quotes.Patch("/:id/status", quoteHandler.ChangeStatus)

	// Inventory
	inventoryHandler := NewInventoryHandler(deps.InventoryUC, errs)
	inv := protected.Group("/inventory")
	inv.Get("/", inventoryHandler.List)
	inv.Post("/", inventoryHandler.Create)
	inv.Post("/bulk", inventoryHandler.BulkCreate)

	// Intake
	intakeHandler := NewIntakeHandler(deps.IntakeUC, errs)
	protected.Post("/intake/:entity", intakeHandler.Import)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, errs)
	protected.Get("/dashboard/summary", dashboardHandler.GetSummary)
}
