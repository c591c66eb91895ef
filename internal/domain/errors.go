package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")

	// Ledger
	ErrInvalidAmount     = errors.New("monto de pago inválido")
	ErrInvalidAllocation = errors.New("la factura no pertenece al cliente del pago")
	ErrInvalidTransition = errors.New("transición de estado no permitida")
	// ErrInconsistent señala un invariante interno roto (p. ej. actualizar totales de un
	// cliente que desapareció dentro de la transacción). Nunca debería llegar al cliente HTTP.
	ErrInconsistent = errors.New("estado interno inconsistente")

	// ErrConflict otra operación sobre el mismo cliente está en curso (lock no obtenido).
	ErrConflict = errors.New("operación concurrente en curso, reintente")
)
