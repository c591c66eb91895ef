package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/ironhub-api/internal/application/dto"
	"github.com/jhoicas/ironhub-api/internal/application/ports"
	"github.com/jhoicas/ironhub-api/internal/domain"
	"github.com/jhoicas/ironhub-api/internal/domain/entity"
	domledger "github.com/jhoicas/ironhub-api/internal/domain/ledger"
	"github.com/jhoicas/ironhub-api/pkg/logger"
)

const paymentIDPrefix = "PAY-"

// PaymentUseCase registro de pagos y su aplicación al total pagado del cliente.
type PaymentUseCase struct {
	tx    ports.TxRunner
	clock ports.Clock
	ids   ports.IDGenerator
	log   *logger.Logger
}

// NewPaymentUseCase construye el caso de uso. log puede ser nil.
func NewPaymentUseCase(tx ports.TxRunner, clock ports.Clock, ids ports.IDGenerator, log *logger.Logger) *PaymentUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &PaymentUseCase{tx: tx, clock: clock, ids: ids, log: log.Named("payments")}
}

// Create registra un pago manual para el cliente.
func (uc *PaymentUseCase) Create(ctx context.Context, actor, customerID string, in dto.CreatePaymentRequest) (*dto.PaymentResponse, error) {
	in.CustomerID = customerID
	p, err := uc.record(ctx, actor, in, entity.PaymentSourceManual)
	if err != nil {
		return nil, err
	}
	resp := ToPaymentResponse(p)
	return &resp, nil
}

// BulkCreate registra cada pago en su propia transacción, aplicando el total del cliente
// ítem por ítem. El resultado se reporta por ítem.
func (uc *PaymentUseCase) BulkCreate(ctx context.Context, actor string, items []dto.CreatePaymentRequest) (*dto.BulkResponse, error) {
	out := &dto.BulkResponse{Results: make([]dto.BulkItemResult, 0, len(items))}
	for i, item := range items {
		p, err := uc.record(ctx, actor, item, entity.PaymentSourceImport)
		if err != nil {
			out.Add(dto.BulkItemFailed(i, err))
			continue
		}
		out.Add(dto.BulkItemOK(i, p.ID))
	}
	uc.log.Info().Int("total", out.Total).Int("failed", out.Failed).Msg("carga masiva de pagos")
	return out, nil
}

// record valida, persiste el pago, incrementa total_paid y agrega la entrada de bitácora
// en una única transacción con el cliente bloqueado. Cualquier error deja el estado intacto.
func (uc *PaymentUseCase) record(ctx context.Context, actor string, in dto.CreatePaymentRequest, source string) (*entity.Payment, error) {
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: debe ser mayor que cero", domain.ErrInvalidAmount)
	}
	if !domledger.FitsPlaces(in.Amount, domledger.MoneyPlaces) {
		return nil, fmt.Errorf("%w: %s tiene más de %d decimales", domain.ErrInvalidAmount, in.Amount, domledger.MoneyPlaces)
	}
	in.CustomerID = strings.TrimSpace(in.CustomerID)
	in.InvoiceID = strings.TrimSpace(in.InvoiceID)
	in.Date = strings.TrimSpace(in.Date)
	if in.CustomerID == "" {
		return nil, fmt.Errorf("%w: customer_id es obligatorio", domain.ErrInvalidInput)
	}
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	method := entity.PaymentMethod(in.Method)
	if !method.Valid() {
		return nil, fmt.Errorf("%w: método de pago %q", domain.ErrInvalidInput, in.Method)
	}

	now := uc.clock.Now()
	date, err := paymentDate(in.Date, now)
	if err != nil {
		return nil, err
	}

	payment := &entity.Payment{
		ID:         paymentIDPrefix + uc.ids.NewID(),
		CustomerID: in.CustomerID,
		Date:       date,
		Amount:     in.Amount,
		Method:     method,
		InvoiceID:  in.InvoiceID,
		Source:     source,
		CreatedAt:  now,
	}

	err = uc.tx.RunForCustomer(ctx, in.CustomerID, func(r ports.Repos, customer *entity.Customer) error {
		if payment.Allocated() {
			q, err := r.Quotes.GetByID(ctx, payment.InvoiceID)
			if err != nil {
				return err
			}
			if q == nil {
				return fmt.Errorf("factura %s: %w", payment.InvoiceID, domain.ErrNotFound)
			}
			if q.CustomerID != customer.ID {
				return fmt.Errorf("%w: %s pertenece a otro cliente", domain.ErrInvalidAllocation, q.ID)
			}
		}
		if err := r.Payments.Create(ctx, payment); err != nil {
			return fmt.Errorf("crear pago: %w", err)
		}
		if err := r.Customers.AddPaid(ctx, customer.ID, payment.Amount); err != nil {
			return err
		}
		entry := NewAuditEntry(uc.ids, now, customer.ID, actor, entity.AuditActionPayment, paymentDetails(payment))
		return r.Audit.Append(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("payment_id", payment.ID).
		Str("customer_id", payment.CustomerID).
		Str("amount", payment.Amount.String()).
		Str("invoice_id", payment.InvoiceID).
		Str("source", source).
		Msg("pago registrado")
	return payment, nil
}

// Reconcile recalcula Σ pagos del cliente y lo compara con el total pagado almacenado.
func (uc *PaymentUseCase) Reconcile(ctx context.Context, customerID string) (*dto.ReconciliationResponse, error) {
	var (
		customer *entity.Customer
		payments []*entity.Payment
	)
	err := uc.tx.RunReadOnly(ctx, func(r ports.Repos) error {
		var err error
		customer, err = r.Customers.GetByID(ctx, customerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return fmt.Errorf("cliente %s: %w", customerID, domain.ErrNotFound)
		}
		payments, err = r.Payments.ListByCustomer(ctx, customerID)
		return err
	})
	if err != nil {
		return nil, err
	}

	sum := domledger.SumPayments(payments)
	diff := customer.TotalPaid.Sub(sum)
	if !diff.IsZero() {
		uc.log.Warn().Str("customer_id", customerID).Str("difference", diff.String()).Msg("total pagado no cuadra con los pagos")
	}
	return &dto.ReconciliationResponse{
		CustomerID:   customerID,
		TotalPaid:    customer.TotalPaid,
		PaymentsSum:  sum,
		PaymentCount: len(payments),
		Difference:   diff,
		Consistent:   diff.IsZero(),
	}, nil
}

// paymentDate interpreta YYYY-MM-DD; vacío = fecha de now.
func paymentDate(raw string, now time.Time) (time.Time, error) {
	if raw == "" {
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: fecha %q (esperado YYYY-MM-DD)", domain.ErrInvalidInput, raw)
	}
	return t, nil
}
