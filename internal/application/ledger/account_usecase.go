package ledger

import (
	"context"
	"fmt"

	"github.com/jhoicas/ironhub-api/internal/application/dto"
	"github.com/jhoicas/ironhub-api/internal/application/ports"
	"github.com/jhoicas/ironhub-api/internal/domain"
	"github.com/jhoicas/ironhub-api/internal/domain/entity"
	domledger "github.com/jhoicas/ironhub-api/internal/domain/ledger"
)

// AccountUseCase lecturas compuestas de la cuenta de un cliente.
type AccountUseCase struct {
	tx        ports.TxRunner
	clock     ports.Clock
	generator StatementPDFGenerator
}

// NewAccountUseCase construye el caso de uso. generator puede ser nil si no se sirve el PDF.
func NewAccountUseCase(tx ports.TxRunner, clock ports.Clock, generator StatementPDFGenerator) *AccountUseCase {
	return &AccountUseCase{tx: tx, clock: clock, generator: generator}
}

// GetAccountView devuelve cliente, cotizaciones, pagos (más recientes primero) y bitácora del cliente,
// todo leído en la misma transacción de solo lectura.
func (uc *AccountUseCase) GetAccountView(ctx context.Context, customerID string) (*dto.AccountViewResponse, error) {
	var logs []*entity.AuditLog
	snap, err := uc.snapshot(ctx, customerID, func(r ports.Repos) error {
		var err error
		logs, err = r.Audit.ListByCustomer(ctx, customerID)
		return err
	})
	if err != nil {
		return nil, err
	}

	view := &dto.AccountViewResponse{
		Customer: ToCustomerResponse(snap.Customer),
		Quotes:   make([]dto.QuoteResponse, 0, len(snap.Quotes)),
		Payments: make([]dto.PaymentResponse, 0, len(snap.Payments)),
		Logs:     make([]dto.AuditLogResponse, 0, len(logs)),
	}
	for _, q := range snap.Quotes {
		view.Quotes = append(view.Quotes, ToQuoteResponse(q))
	}
	for _, p := range snap.Payments {
		view.Payments = append(view.Payments, ToPaymentResponse(p))
	}
	for _, l := range logs {
		view.Logs = append(view.Logs, ToAuditLogResponse(l))
	}
	return view, nil
}

// Balance recalcula facturado − pagado en cada llamada.
func (uc *AccountUseCase) Balance(ctx context.Context, customerID string) (*dto.BalanceResponse, error) {
	var c *entity.Customer
	err := uc.tx.RunReadOnly(ctx, func(r ports.Repos) error {
		var err error
		c, err = r.Customers.GetByID(ctx, customerID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("cliente %s: %w", customerID, domain.ErrNotFound)
	}
	return &dto.BalanceResponse{
		CustomerID:  c.ID,
		TotalBilled: c.TotalBilled,
		TotalPaid:   c.TotalPaid,
		Balance:     domledger.Balance(c),
	}, nil
}

// Statement genera el estado de cuenta en PDF. Retorna los bytes y el nombre de archivo sugerido.
func (uc *AccountUseCase) Statement(ctx context.Context, customerID string) ([]byte, string, error) {
	if uc.generator == nil {
		return nil, "", fmt.Errorf("generador de PDF no configurado")
	}
	snap, err := uc.snapshot(ctx, customerID, nil)
	if err != nil {
		return nil, "", err
	}
	pdf, err := uc.generator.GenerateStatement(snap)
	if err != nil {
		return nil, "", fmt.Errorf("generar estado de cuenta: %w", err)
	}
	filename := fmt.Sprintf("statement-%s-%s.pdf", snap.Customer.ID, snap.GeneratedAt.Format("20060102"))
	return pdf, filename, nil
}

// snapshot lee cliente, cotizaciones y pagos en una transacción de solo lectura; extra permite
// agregar lecturas a la misma foto.
func (uc *AccountUseCase) snapshot(ctx context.Context, customerID string, extra func(r ports.Repos) error) (*AccountSnapshot, error) {
	snap := &AccountSnapshot{GeneratedAt: uc.clock.Now()}
	err := uc.tx.RunReadOnly(ctx, func(r ports.Repos) error {
		c, err := r.Customers.GetByID(ctx, customerID)
		if err != nil {
			return err
		}
		if c == nil {
			return fmt.Errorf("cliente %s: %w", customerID, domain.ErrNotFound)
		}
		snap.Customer = c
		if snap.Quotes, err = r.Quotes.ListByCustomer(ctx, customerID); err != nil {
			return err
		}
		if snap.Payments, err = r.Payments.ListByCustomer(ctx, customerID); err != nil {
			return err
		}
		if extra != nil {
			return extra(r)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}
