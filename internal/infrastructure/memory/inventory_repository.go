package memory

import (
	"context"

	"github.com/jhoicas/ironhub-api/internal/domain"
	"github.com/jhoicas/ironhub-api/internal/domain/entity"
	"github.com/jhoicas/ironhub-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo registro de inventario en memoria.
type InventoryRepo struct {
	v *view
}

func (r *InventoryRepo) Create(_ context.Context, item *entity.InventoryItem) error {
	if err := r.v.writable(); err != nil {
		return err
	}
	for _, existing := range r.v.st.inventory {
		if existing.ID == item.ID {
			return domain.ErrDuplicate
		}
	}
	cp := *item
	r.v.st.inventory = append(r.v.st.inventory, &cp)
	return nil
}

func (r *InventoryRepo) List(_ context.Context) ([]*entity.InventoryItem, error) {
	out := make([]*entity.InventoryItem, 0, len(r.v.st.inventory))
	for _, it := range r.v.st.inventory {
		cp := *it
		out = append(out, &cp)
	}
	return out, nil
}
