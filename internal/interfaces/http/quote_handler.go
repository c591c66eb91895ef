package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ironhub-api/internal/application/dto"
	"github.com/jhoicas/ironhub-api/internal/application/ledger"
)

// QuoteHandler cotizaciones y su ciclo de vida.
type QuoteHandler struct {
	uc   *ledger.QuoteUseCase
	errs *errorWriter
}

// NewQuoteHandler construye el handler.
func NewQuoteHandler(uc *ledger.QuoteUseCase, errs *errorWriter) *QuoteHandler {
	return &QuoteHandler{uc: uc, errs: errs}
}

// List GET /api/quotes?status=sent
func (h *QuoteHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.UserContext(), c.Query("status"))
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(list)
}

// Get GET /api/quotes/:id
func (h *QuoteHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// Create POST /api/quotes
func (h *QuoteHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateQuoteRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetActor(c), in)
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ChangeStatus godoc
// @Summary      Cambiar estado de la cotización
// @Description  draft → sent → accepted|rejected. Aceptar suma el total a lo facturado del cliente.
// @Tags         quotes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "ID de la cotización"
// @Param        body  body  dto.ChangeQuoteStatusRequest  true  "nuevo estado"
// @Success      200   {object}  dto.QuoteResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/quotes/{id}/status [patch]
func (h *QuoteHandler) ChangeStatus(c *fiber.Ctx) error {
	var in dto.ChangeQuoteStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.ChangeStatus(c.UserContext(), GetActor(c), c.Params("id"), in.Status)
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}
