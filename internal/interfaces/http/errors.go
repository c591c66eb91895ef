package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ironhub-api/internal/application/dto"
	"github.com/jhoicas/ironhub-api/internal/domain"
	"github.com/jhoicas/ironhub-api/pkg/logger"
)

// errorWriter traduce errores de dominio a respuestas HTTP.
type errorWriter struct {
	production bool
	log        *logger.Logger
}

func newErrorWriter(production bool, log *logger.Logger) *errorWriter {
	if log == nil {
		log = logger.Nop()
	}
	return &errorWriter{production: production, log: log.Named("http")}
}

type errorMapping struct {
	target error
	status int
	code   string
}

// El orden importa: se devuelve el primer sentinel que coincide con errors.Is.
var errorMappings = []errorMapping{
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrInvalidAmount, fiber.StatusBadRequest, "INVALID_AMOUNT"},
	{domain.ErrInvalidAllocation, fiber.StatusBadRequest, "INVALID_ALLOCATION"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrInvalidTransition, fiber.StatusConflict, "INVALID_TRANSITION"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
}

const (
	internalMessage = "error interno del servidor"
	timeoutMessage  = "la operación tardó demasiado; intenta de nuevo"
)

// classify devuelve status, código y mensaje para el cliente. known = false cuando el error no
// corresponde a ningún sentinel; en producción su mensaje se reemplaza por uno genérico.
func (w *errorWriter) classify(err error) (status int, code, msg string, known bool) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.status, m.code, err.Error(), true
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fiber.StatusRequestTimeout, "TIMEOUT", timeoutMessage, true
	}
	msg = err.Error()
	if w.production {
		msg = internalMessage
	}
	return fiber.StatusInternalServerError, "INTERNAL", msg, false
}

// write responde con el status del sentinel. Los errores no mapeados se registran y, en
// producción, se ocultan detrás de un mensaje genérico.
func (w *errorWriter) write(c *fiber.Ctx, err error) error {
	status, code, msg, known := w.classify(err)
	if !known {
		w.log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error interno")
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

// bulk aplica a cada ítem fallido la misma traducción que write.
func (w *errorWriter) bulk(c *fiber.Ctx, out *dto.BulkResponse) *dto.BulkResponse {
	if out == nil {
		return nil
	}
	for i := range out.Results {
		r := &out.Results[i]
		if r.Err == nil {
			continue
		}
		_, code, msg, known := w.classify(r.Err)
		if !known {
			w.log.Error().Err(r.Err).Str("path", c.Path()).Int("index", r.Index).Msg("error interno en ítem masivo")
		}
		r.Code = code
		r.Error = msg
	}
	return out
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
