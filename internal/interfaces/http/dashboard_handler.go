package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/ironhub-api/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc   *appanalytics.DashboardUseCase
	errs *errorWriter
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase, errs *errorWriter) *DashboardHandler {
	return &DashboardHandler{uc: uc, errs: errs}
}

// GetSummary devuelve el resumen de cartera y del pipeline de cotizaciones.
// GET /api/dashboard/summary
//
// Respuesta: DashboardSummaryDTO (customer_count, receivables, accepted_revenue,
// pending_pipeline, inventory_units, ...). Todo sale de una misma foto de lectura.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.UserContext())
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(summary)
}
