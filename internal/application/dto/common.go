package dto

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jhoicas/ironhub-api/internal/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Validate aplica las etiquetas `validate` del struct. Los errores de validación se devuelven
// envolviendo domain.ErrInvalidInput con un mensaje legible por campo.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, ValidationMessage(verrs))
	}
	return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
}

// ValidationMessage arma un mensaje "campo: regla" por cada error, separados por "; ".
func ValidationMessage(verrs validator.ValidationErrors) string {
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Namespace()
		if i := strings.Index(field, "."); i >= 0 {
			field = field[i+1:]
		}
		switch fe.Tag() {
		case "required":
			parts = append(parts, field+": es obligatorio")
		case "email":
			parts = append(parts, field+": email inválido")
		case "oneof":
			parts = append(parts, fmt.Sprintf("%s: debe ser uno de [%s]", field, fe.Param()))
		case "min", "max":
			parts = append(parts, fmt.Sprintf("%s: %s=%s", field, fe.Tag(), fe.Param()))
		case "datetime":
			parts = append(parts, fmt.Sprintf("%s: formato esperado %s", field, fe.Param()))
		default:
			parts = append(parts, fmt.Sprintf("%s: regla %s", field, fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}

// Estados de cada ítem en respuestas masivas.
const (
	BulkStatusOK    = "ok"
	BulkStatusError = "error"
)

// BulkItemResult resultado de un ítem dentro de una operación masiva.
// Index es la posición (0-based) en la petición; Line la fila del archivo de origen cuando aplica.
// Err conserva el error original para que la capa HTTP decida qué mensaje expone.
type BulkItemResult struct {
	Index  int    `json:"index"`
	Line   int    `json:"line,omitempty"`
	Status string `json:"status"`
	ID     string `json:"id,omitempty"`
	Code   string `json:"code,omitempty"`
	Error  string `json:"error,omitempty"`
	Err    error  `json:"-"`
}

// BulkItemOK resultado exitoso de un ítem.
func BulkItemOK(index int, id string) BulkItemResult {
	return BulkItemResult{Index: index, Status: BulkStatusOK, ID: id}
}

// BulkItemFailed resultado fallido de un ítem.
func BulkItemFailed(index int, err error) BulkItemResult {
	return BulkItemResult{Index: index, Status: BulkStatusError, Error: err.Error(), Err: err}
}

// BulkResponse resumen de una operación masiva con el detalle por ítem.
type BulkResponse struct {
	Total     int              `json:"total"`
	Succeeded int              `json:"succeeded"`
	Failed    int              `json:"failed"`
	Results   []BulkItemResult `json:"results"`
}

// Add registra el resultado de un ítem y actualiza los contadores.
func (b *BulkResponse) Add(r BulkItemResult) {
	b.Total++
	if r.Status == BulkStatusOK {
		b.Succeeded++
	} else {
		b.Failed++
	}
	b.Results = append(b.Results, r)
}
