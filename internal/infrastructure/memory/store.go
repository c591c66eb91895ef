// Package memory implementa los repositorios sobre estructuras en memoria (APP_STORE=memory y tests).
// Las transacciones toman el lock del store completo: un escritor a la vez, lectores concurrentes.
package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/jhoicas/ironhub-api/internal/domain/entity"
)

var errReadOnly = errors.New("memory: escritura dentro de una transacción de solo lectura")

// state contenido del store. Las entidades se reemplazan (copy-on-write) en lugar de mutarse,
// así que copiar los slices basta para tomar una foto para rollback.
type state struct {
	customers []*entity.Customer
	quotes    []*entity.Quote
	payments  []*entity.Payment
	logs      []*entity.AuditLog
	inventory []*entity.InventoryItem
}

func (s *state) snapshot() *state {
	return &state{
		customers: append([]*entity.Customer(nil), s.customers...),
		quotes:    append([]*entity.Quote(nil), s.quotes...),
		payments:  append([]*entity.Payment(nil), s.payments...),
		logs:      append([]*entity.AuditLog(nil), s.logs...),
		inventory: append([]*entity.InventoryItem(nil), s.inventory...),
	}
}

// Store base de datos en memoria.
type Store struct {
	mu   sync.RWMutex
	data *state

	usersMu sync.RWMutex
	users   []*entity.User
}

// New crea un store vacío.
func New() *Store {
	return &Store{data: &state{}}
}

// Ping satisface el health check.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// view acceso a un estado dentro de una transacción (el lock ya está tomado).
type view struct {
	st       *state
	readOnly bool
}

func (v *view) writable() error {
	if v.readOnly {
		return errReadOnly
	}
	return nil
}
