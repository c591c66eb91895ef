// Package system adapta el reloj y la generación de IDs del sistema a los puertos de la aplicación.
package system

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/ironhub-api/internal/application/ports"
)

var (
	_ ports.Clock       = Clock{}
	_ ports.IDGenerator = UUIDGenerator{}
)

// Clock reloj de pared en UTC.
type Clock struct{}

// Now devuelve la hora actual en UTC.
func (Clock) Now() time.Time { return time.Now().UTC() }

// UUIDGenerator genera UUID v4.
type UUIDGenerator struct{}

// NewID devuelve un UUID v4 nuevo.
func (UUIDGenerator) NewID() string { return uuid.New().String() }
