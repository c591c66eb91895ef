package inventory_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ironhub-api/internal/application/dto"
	"github.com/jhoicas/ironhub-api/internal/application/inventory"
	"github.com/jhoicas/ironhub-api/internal/domain"
	"github.com/jhoicas/ironhub-api/internal/domain/entity"
	"github.com/jhoicas/ironhub-api/internal/infrastructure/memory"
)

type fixedClock struct{}

func (fixedClock) Now() time.Time { return time.Date(2026, 2, 3, 9, 0, 0, 0, time.UTC) }

type seqIDs struct {
	mu sync.Mutex
	n  int
}

func (g *seqIDs) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("inv-%d", g.n)
}

func newUseCase() (*inventory.UseCase, *memory.Store) {
	store := memory.New()
	return inventory.NewUseCase(memory.NewTxRunner(store), fixedClock{}, &seqIDs{}, nil), store
}

func TestCreate_TipoPorDefectoEquipment(t *testing.T) {
	uc, _ := newUseCase()
	price := decimal.NewFromInt(185000)

	item, err := uc.Create(context.Background(), dto.CreateInventoryItemRequest{
		Name: "CAT 336 Excavator", ModelNumber: "336", SerialNumber: "CAT0336X", Quantity: 1, Price: &price,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.InventoryTypeEquipment, item.Type)
	require.NotNil(t, item.Price)
	assert.True(t, item.Price.Equal(price))
	assert.Nil(t, item.Cost)
}

func TestCreate_PrecioConFraccionDeCentavo(t *testing.T) {
	uc, _ := newUseCase()
	price := decimal.RequireFromString("99.999")

	_, err := uc.Create(context.Background(), dto.CreateInventoryItemRequest{Name: "Bucket", Quantity: 1, Price: &price})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBulkCreate_UnaEntradaDeBitacoraGlobal(t *testing.T) {
	uc, store := newUseCase()

	res, err := uc.BulkCreate(context.Background(), "ops@americaniron.com", []dto.CreateInventoryItemRequest{
		{Name: "Hydraulic pump", PartNumber: "HP-100", Quantity: 4, Type: "part"},
		{Name: "", Quantity: 1},
		{Name: "Boom cylinder", Quantity: 2, Type: "PART"},
		{Name: "Negativo", Quantity: -1},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Succeeded)
	assert.Equal(t, 2, res.Failed)
	assert.Equal(t, dto.BulkStatusError, res.Results[1].Status)
	assert.Equal(t, dto.BulkStatusOK, res.Results[2].Status)

	list, err := uc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 2)

	logs := store.AuditLogs()
	require.Len(t, logs, 1)
	assert.Equal(t, entity.AuditActionBulkIngest, logs[0].Action)
	assert.Empty(t, logs[0].CustomerID)
	assert.Equal(t, "Imported 2 inventory units into registry.", logs[0].Details)
}

func TestBulkCreate_SinFilasValidasNoEscribeBitacora(t *testing.T) {
	uc, store := newUseCase()
	res, err := uc.BulkCreate(context.Background(), "", []dto.CreateInventoryItemRequest{{Name: ""}})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Failed)
	assert.Empty(t, store.AuditLogs())
}
