package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ironhub-api/internal/application/dto"
	"github.com/jhoicas/ironhub-api/internal/application/intake"
)

// IntakeHandler ingesta de datos legados (CSV, XLSX o texto libre vía LLM).
type IntakeHandler struct {
	uc   *intake.UseCase
	errs *errorWriter
}

// NewIntakeHandler construye el handler.
func NewIntakeHandler(uc *intake.UseCase, errs *errorWriter) *IntakeHandler {
	return &IntakeHandler{uc: uc, errs: errs}
}

// Import godoc
// @Summary      Ingesta masiva de clientes, inventario o pagos
// @Description  Archivo multipart (file: .csv o .xlsx) o texto libre (content) que un LLM convierte en filas. dry_run=true solo valida.
// @Tags         intake
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        entity   path      string  true   "customers | inventory | payments"
// @Param        dry_run  query     bool    false  "solo validar"
// @Param        file     formData  file    false  "archivo .csv o .xlsx"
// @Param        content  formData  string  false  "texto libre"
// @Success      200  {object}  dto.IntakeResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      408  {object}  dto.ErrorResponse
// @Router       /api/intake/{entity} [post]
func (h *IntakeHandler) Import(c *fiber.Ctx) error {
	in := intake.Input{
		Entity: c.Params("entity"),
		DryRun: c.QueryBool("dry_run", false),
		Actor:  GetActor(c),
	}

	if fh, err := c.FormFile("file"); err == nil {
		f, err := fh.Open()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "no se pudo leer el archivo"})
		}
		defer f.Close()
		in.File = f
		in.Filename = fh.Filename
	} else {
		in.Text = c.FormValue("content")
	}

	out, err := h.uc.Import(c.UserContext(), in)
	if err != nil {
		// El extractor LLM envuelve timeouts de red en su propio mensaje.
		if !errors.Is(err, c.UserContext().Err()) && isTimeout(err) {
			return c.Status(fiber.StatusRequestTimeout).JSON(dto.ErrorResponse{
				Code: "TIMEOUT", Message: "el servicio de IA tardó demasiado; intenta de nuevo",
			})
		}
		return h.errs.write(c, err)
	}
	out.Result = h.errs.bulk(c, out.Result)
	return c.JSON(out)
}

// isTimeout detecta errores de timeout/cancelación de contexto en el mensaje de error.
func isTimeout(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "timeout") ||
		strings.Contains(msg, "deadline exceeded") ||
		strings.Contains(msg, "cancelación")
}
