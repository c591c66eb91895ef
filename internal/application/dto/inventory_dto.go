package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateInventoryItemRequest body para POST /api/inventory.
type CreateInventoryItemRequest struct {
	Name         string           `json:"name" validate:"required,max=200"`
	Description  string           `json:"description,omitempty"`
	ModelNumber  string           `json:"model_number,omitempty"`
	SerialNumber string           `json:"serial_number,omitempty"`
	PartNumber   string           `json:"part_number,omitempty"`
	Price        *decimal.Decimal `json:"price,omitempty"`
	Cost         *decimal.Decimal `json:"cost,omitempty"`
	Quantity     int              `json:"quantity" validate:"min=0"`
	Type         string           `json:"type,omitempty" validate:"omitempty,oneof=equipment part"`
}

// BulkInventoryRequest body para POST /api/inventory/bulk.
type BulkInventoryRequest struct {
	Items []CreateInventoryItemRequest `json:"items"`
}

// InventoryItemResponse ítem del registro de inventario.
type InventoryItemResponse struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Description  string           `json:"description,omitempty"`
	ModelNumber  string           `json:"model_number,omitempty"`
	SerialNumber string           `json:"serial_number,omitempty"`
	PartNumber   string           `json:"part_number,omitempty"`
	Price        *decimal.Decimal `json:"price,omitempty"`
	Cost         *decimal.Decimal `json:"cost,omitempty"`
	Quantity     int              `json:"quantity"`
	Type         string           `json:"type"`
	CreatedAt    time.Time        `json:"created_at"`
}
