package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ironhub-api/internal/application/dto"
	"github.com/jhoicas/ironhub-api/internal/application/ledger"
)

// CustomerHandler maneja clientes y la vista de su cuenta.
type CustomerHandler struct {
	customers *ledger.CustomerUseCase
	accounts  *ledger.AccountUseCase
	payments  *ledger.PaymentUseCase
	errs      *errorWriter
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(customers *ledger.CustomerUseCase, accounts *ledger.AccountUseCase, payments *ledger.PaymentUseCase, errs *errorWriter) *CustomerHandler {
	return &CustomerHandler{customers: customers, accounts: accounts, payments: payments, errs: errs}
}

// List GET /api/customers
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	list, err := h.customers.List(c.UserContext())
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(list)
}

// Create godoc
// @Summary      Crear cliente
// @Tags         customers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCustomerRequest  true  "datos del cliente"
// @Success      201   {object}  dto.CustomerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/customers [post]
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.customers.Create(c.UserContext(), GetActor(c), in)
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// BulkCreate POST /api/customers/bulk
// Cada ítem se procesa por separado; la respuesta trae el resultado por ítem.
func (h *CustomerHandler) BulkCreate(c *fiber.Ctx) error {
	var in dto.BulkCustomersRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.customers.BulkCreate(c.UserContext(), GetActor(c), in.Items)
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(h.errs.bulk(c, out))
}

// GetAccount godoc
// @Summary      Vista de la cuenta (cliente, cotizaciones, pagos, bitácora)
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del cliente"
// @Success      200  {object}  dto.AccountViewResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [get]
func (h *CustomerHandler) GetAccount(c *fiber.Ctx) error {
	out, err := h.accounts.GetAccountView(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// Balance GET /api/customers/:id/balance
func (h *CustomerHandler) Balance(c *fiber.Ctx) error {
	out, err := h.accounts.Balance(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// Reconcile GET /api/customers/:id/reconciliation
func (h *CustomerHandler) Reconcile(c *fiber.Ctx) error {
	out, err := h.payments.Reconcile(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// Statement GET /api/customers/:id/statement
// Devuelve el estado de cuenta en PDF como adjunto.
func (h *CustomerHandler) Statement(c *fiber.Ctx) error {
	pdf, filename, err := h.accounts.Statement(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.errs.write(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdf)
}
