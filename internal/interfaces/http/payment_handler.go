package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ironhub-api/internal/application/dto"
	"github.com/jhoicas/ironhub-api/internal/application/ledger"
)

// PaymentHandler registro de pagos.
type PaymentHandler struct {
	uc   *ledger.PaymentUseCase
	errs *errorWriter
}

// NewPaymentHandler construye el handler.
func NewPaymentHandler(uc *ledger.PaymentUseCase, errs *errorWriter) *PaymentHandler {
	return &PaymentHandler{uc: uc, errs: errs}
}

// Create godoc
// @Summary      Registrar pago de un cliente
// @Description  Inserta el pago, suma el monto a total_paid y registra la bitácora en una sola transacción.
// @Tags         payments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del cliente"
// @Param        body  body  dto.CreatePaymentRequest  true  "monto, medio, fecha, factura"
// @Success      201   {object}  dto.PaymentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/payments [post]
func (h *PaymentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// BulkCreate POST /api/payments/bulk
func (h *PaymentHandler) BulkCreate(c *fiber.Ctx) error {
	var in dto.BulkPaymentsRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.BulkCreate(c.UserContext(), GetActor(c), in.Items)
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(h.errs.bulk(c, out))
}
