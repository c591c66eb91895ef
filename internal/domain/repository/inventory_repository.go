package repository

import (
	"context"

	"github.com/jhoicas/ironhub-api/internal/domain/entity"
)

// InventoryRepository define el puerto de persistencia del registro de inventario.
type InventoryRepository interface {
	Create(ctx context.Context, item *entity.InventoryItem) error
	List(ctx context.Context) ([]*entity.InventoryItem, error)
}
