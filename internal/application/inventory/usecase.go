package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ironhub-api/internal/application/dto"
	"github.com/jhoicas/ironhub-api/internal/application/ledger"
	"github.com/jhoicas/ironhub-api/internal/application/ports"
	"github.com/jhoicas/ironhub-api/internal/domain"
	"github.com/jhoicas/ironhub-api/internal/domain/entity"
	domledger "github.com/jhoicas/ironhub-api/internal/domain/ledger"
	"github.com/jhoicas/ironhub-api/pkg/logger"
)

// UseCase registro de inventario (equipos y repuestos).
type UseCase struct {
	tx    ports.TxRunner
	clock ports.Clock
	ids   ports.IDGenerator
	log   *logger.Logger
}

// NewUseCase construye el caso de uso. log puede ser nil.
func NewUseCase(tx ports.TxRunner, clock ports.Clock, ids ports.IDGenerator, log *logger.Logger) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{tx: tx, clock: clock, ids: ids, log: log.Named("inventory")}
}

// List devuelve el registro completo en orden de alta.
func (uc *UseCase) List(ctx context.Context) ([]dto.InventoryItemResponse, error) {
	var items []*entity.InventoryItem
	err := uc.tx.RunReadOnly(ctx, func(r ports.Repos) error {
		var err error
		items, err = r.Inventory.List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.InventoryItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, toResponse(it))
	}
	return out, nil
}

// Create da de alta un ítem.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateInventoryItemRequest) (*dto.InventoryItemResponse, error) {
	item, err := uc.build(in)
	if err != nil {
		return nil, err
	}
	if err := uc.tx.Run(ctx, func(r ports.Repos) error { return r.Inventory.Create(ctx, item) }); err != nil {
		return nil, err
	}
	resp := toResponse(item)
	return &resp, nil
}

// BulkCreate valida todas las filas y guarda las válidas en una sola transacción junto con
// una entrada "Bulk Ingest" en la bitácora. Las filas inválidas se reportan por ítem.
func (uc *UseCase) BulkCreate(ctx context.Context, actor string, in []dto.CreateInventoryItemRequest) (*dto.BulkResponse, error) {
	results := make([]dto.BulkItemResult, len(in))
	valid := make([]*entity.InventoryItem, 0, len(in))
	validIdx := make([]int, 0, len(in))
	for i, row := range in {
		item, err := uc.build(row)
		if err != nil {
			results[i] = dto.BulkItemFailed(i, err)
			continue
		}
		valid = append(valid, item)
		validIdx = append(validIdx, i)
	}

	if len(valid) > 0 {
		err := uc.tx.Run(ctx, func(r ports.Repos) error {
			for _, item := range valid {
				if err := r.Inventory.Create(ctx, item); err != nil {
					return fmt.Errorf("guardar %s: %w", item.Name, err)
				}
			}
			entry := ledger.NewAuditEntry(uc.ids, uc.clock.Now(), "", actor, entity.AuditActionBulkIngest,
				fmt.Sprintf("Imported %d inventory units into registry.", len(valid)))
			return r.Audit.Append(ctx, entry)
		})
		for k, item := range valid {
			i := validIdx[k]
			if err != nil {
				results[i] = dto.BulkItemFailed(i, err)
			} else {
				results[i] = dto.BulkItemOK(i, item.ID)
			}
		}
	}

	out := &dto.BulkResponse{Results: make([]dto.BulkItemResult, 0, len(in))}
	for _, r := range results {
		out.Add(r)
	}
	uc.log.Info().Int("total", out.Total).Int("imported", out.Succeeded).Msg("ingesta de inventario")
	return out, nil
}

func (uc *UseCase) build(in dto.CreateInventoryItemRequest) (*entity.InventoryItem, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Type = strings.ToLower(strings.TrimSpace(in.Type))
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if in.Type == "" {
		in.Type = entity.InventoryTypeEquipment
	}
	if (in.Price != nil && in.Price.IsNegative()) || (in.Cost != nil && in.Cost.IsNegative()) {
		return nil, fmt.Errorf("%w: price y cost no pueden ser negativos", domain.ErrInvalidInput)
	}
	if (in.Price != nil && !domledger.FitsPlaces(*in.Price, domledger.MoneyPlaces)) ||
		(in.Cost != nil && !domledger.FitsPlaces(*in.Cost, domledger.MoneyPlaces)) {
		return nil, fmt.Errorf("%w: price y cost admiten como máximo %d decimales", domain.ErrInvalidInput, domledger.MoneyPlaces)
	}
	return &entity.InventoryItem{
		ID:           uc.ids.NewID(),
		Name:         in.Name,
		Description:  strings.TrimSpace(in.Description),
		ModelNumber:  strings.TrimSpace(in.ModelNumber),
		SerialNumber: strings.TrimSpace(in.SerialNumber),
		PartNumber:   strings.TrimSpace(in.PartNumber),
		Price:        nullDecimal(in.Price),
		Cost:         nullDecimal(in.Cost),
		Quantity:     in.Quantity,
		Type:         in.Type,
		CreatedAt:    uc.clock.Now(),
	}, nil
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(*d)
}

func decimalPtr(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	v := d.Decimal
	return &v
}

func toResponse(it *entity.InventoryItem) dto.InventoryItemResponse {
	return dto.InventoryItemResponse{
		ID:           it.ID,
		Name:         it.Name,
		Description:  it.Description,
		ModelNumber:  it.ModelNumber,
		SerialNumber: it.SerialNumber,
		PartNumber:   it.PartNumber,
		Price:        decimalPtr(it.Price),
		Cost:         decimalPtr(it.Cost),
		Quantity:     it.Quantity,
		Type:         it.Type,
		CreatedAt:    it.CreatedAt,
	}
}
