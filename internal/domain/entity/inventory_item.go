package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de ítem de inventario.
const (
	InventoryTypeEquipment = "equipment"
	InventoryTypePart      = "part"
)

// InventoryItem equipo o repuesto del registro de inventario.
// Price aplica a equipos y Cost a repuestos; ambos son opcionales.
type InventoryItem struct {
	ID           string
	Name         string
	Description  string
	ModelNumber  string
	SerialNumber string
	PartNumber   string
	Price        decimal.NullDecimal
	Cost         decimal.NullDecimal
	Quantity     int
	Type         string
	CreatedAt    time.Time
}
