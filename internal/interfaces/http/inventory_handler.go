package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ironhub-api/internal/application/dto"
	"github.com/jhoicas/ironhub-api/internal/application/inventory"
)

// InventoryHandler registro de equipos y repuestos.
type InventoryHandler struct {
	uc   *inventory.UseCase
	errs *errorWriter
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.UseCase, errs *errorWriter) *InventoryHandler {
	return &InventoryHandler{uc: uc, errs: errs}
}

// List GET /api/inventory
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.UserContext())
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(list)
}

// Create POST /api/inventory
func (h *InventoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInventoryItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// BulkCreate POST /api/inventory/bulk
func (h *InventoryHandler) BulkCreate(c *fiber.Ctx) error {
	var in dto.BulkInventoryRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.BulkCreate(c.UserContext(), GetActor(c), in.Items)
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(h.errs.bulk(c, out))
}
