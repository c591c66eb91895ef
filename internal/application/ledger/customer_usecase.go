package ledger

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/ironhub-api/internal/application/dto"
	"github.com/jhoicas/ironhub-api/internal/application/ports"
	"github.com/jhoicas/ironhub-api/internal/domain/entity"
	"github.com/jhoicas/ironhub-api/pkg/logger"
	"github.com/shopspring/decimal"
)

// CustomerUseCase alta y consulta de clientes.
type CustomerUseCase struct {
	tx    ports.TxRunner
	clock ports.Clock
	ids   ports.IDGenerator
	log   *logger.Logger
}

// NewCustomerUseCase construye el caso de uso. log puede ser nil.
func NewCustomerUseCase(tx ports.TxRunner, clock ports.Clock, ids ports.IDGenerator, log *logger.Logger) *CustomerUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &CustomerUseCase{tx: tx, clock: clock, ids: ids, log: log.Named("customers")}
}

// List devuelve todos los clientes en orden de creación.
func (uc *CustomerUseCase) List(ctx context.Context) ([]dto.CustomerResponse, error) {
	var list []*entity.Customer
	err := uc.tx.RunReadOnly(ctx, func(r ports.Repos) error {
		var err error
		list, err = r.Customers.List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, ToCustomerResponse(c))
	}
	return out, nil
}

// Create registra un cliente con totales en cero y una entrada "Account Created" en la bitácora,
// ambos en la misma transacción.
func (uc *CustomerUseCase) Create(ctx context.Context, actor string, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	customer := &entity.Customer{
		ID:              uc.ids.NewID(),
		Name:            in.Name,
		Email:           in.Email,
		Phone:           strings.TrimSpace(in.Phone),
		BillingAddress:  toAddress(in.BillingAddress),
		ShippingAddress: toAddress(in.ShippingAddress),
		InternalNotes:   in.InternalNotes,
		TotalBilled:     decimal.Zero,
		TotalPaid:       decimal.Zero,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		if err := r.Customers.Create(ctx, customer); err != nil {
			return fmt.Errorf("crear cliente: %w", err)
		}
		entry := NewAuditEntry(uc.ids, now, customer.ID, actor, entity.AuditActionAccountCreated,
			fmt.Sprintf("Customer account created for %s.", customer.Name))
		return r.Audit.Append(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("customer_id", customer.ID).Str("actor", actor).Msg("cliente creado")
	resp := ToCustomerResponse(customer)
	return &resp, nil
}

// BulkCreate crea cada cliente en su propia transacción y reporta el resultado por ítem.
// Un ítem inválido no impide la creación de los demás.
func (uc *CustomerUseCase) BulkCreate(ctx context.Context, actor string, items []dto.CreateCustomerRequest) (*dto.BulkResponse, error) {
	out := &dto.BulkResponse{Results: make([]dto.BulkItemResult, 0, len(items))}
	for i, item := range items {
		c, err := uc.Create(ctx, actor, item)
		if err != nil {
			out.Add(dto.BulkItemFailed(i, err))
			continue
		}
		out.Add(dto.BulkItemOK(i, c.ID))
	}
	uc.log.Info().Int("total", out.Total).Int("failed", out.Failed).Msg("carga masiva de clientes")
	return out, nil
}
