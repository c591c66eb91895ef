// Package intake importa clientes, inventario y pagos desde archivos CSV/XLSX o texto libre.
package intake

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/jhoicas/ironhub-api/internal/application/dto"
	"github.com/jhoicas/ironhub-api/internal/application/inventory"
	"github.com/jhoicas/ironhub-api/internal/application/ledger"
	"github.com/jhoicas/ironhub-api/internal/application/ports"
	"github.com/jhoicas/ironhub-api/internal/domain"
	"github.com/jhoicas/ironhub-api/pkg/logger"
)

const (
	maxRows          = 5000
	extractorTimeout = 45 * time.Second
)

// Input petición de ingesta. Se usa File (con Filename para detectar el formato) o Text.
type Input struct {
	Entity   string
	Filename string
	File     io.Reader
	Text     string
	DryRun   bool
	Actor    string
}

// UseCase orquesta parseo, normalización por fila y escritura masiva.
type UseCase struct {
	parser    ports.SpreadsheetParser
	extractor ports.ImportExtractor
	tx        ports.TxRunner
	customers *ledger.CustomerUseCase
	payments  *ledger.PaymentUseCase
	inventory *inventory.UseCase
	log       *logger.Logger
}

// NewUseCase construye el caso de uso. extractor puede ser nil (sin ingesta de texto libre).
func NewUseCase(
	parser ports.SpreadsheetParser,
	extractor ports.ImportExtractor,
	tx ports.TxRunner,
	customers *ledger.CustomerUseCase,
	payments *ledger.PaymentUseCase,
	inv *inventory.UseCase,
	log *logger.Logger,
) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{
		parser:    parser,
		extractor: extractor,
		tx:        tx,
		customers: customers,
		payments:  payments,
		inventory: inv,
		log:       log.Named("intake"),
	}
}

// Import lee las filas, las normaliza y, salvo en dry run, las escribe con la operación
// masiva de la entidad. Los errores por fila no abortan la ingesta.
func (uc *UseCase) Import(ctx context.Context, in Input) (*dto.IntakeResponse, error) {
	switch in.Entity {
	case dto.IntakeEntityCustomers, dto.IntakeEntityInventory, dto.IntakeEntityPayments:
	default:
		return nil, fmt.Errorf("%w: entidad %q (customers|inventory|payments)", domain.ErrInvalidInput, in.Entity)
	}

	source, raw, err := uc.read(ctx, in)
	if err != nil {
		return nil, err
	}
	if len(raw) > maxRows {
		return nil, fmt.Errorf("%w: máximo %d filas por ingesta", domain.ErrInvalidInput, maxRows)
	}

	resp := &dto.IntakeResponse{Entity: in.Entity, Source: source, DryRun: in.DryRun, Errors: []dto.IntakeRowError{}}
	rows := make([]ImportRow, 0, len(raw))
	for _, r := range raw {
		fields := normalizeFields(r.Fields)
		if len(fields) == 0 {
			continue
		}
		resp.Rows++
		row, err := Normalize(in.Entity, r.Row, fields)
		if err != nil {
			resp.Errors = append(resp.Errors, dto.IntakeRowError{Row: r.Row, Error: err.Error()})
			continue
		}
		rows = append(rows, row)
	}

	if in.Entity == dto.IntakeEntityPayments {
		rows, resp.Errors, err = uc.resolvePaymentCustomers(ctx, rows, resp.Errors)
		if err != nil {
			return nil, err
		}
	}
	resp.Valid = len(rows)

	if in.DryRun {
		resp.Records = make([]any, 0, len(rows))
		for _, r := range rows {
			resp.Records = append(resp.Records, r.Record())
		}
		return resp, nil
	}
	if len(rows) == 0 {
		return resp, nil
	}

	result, err := uc.write(ctx, in.Entity, in.Actor, rows)
	if err != nil {
		return nil, err
	}
	for i := range result.Results {
		result.Results[i].Line = rows[result.Results[i].Index].SourceRow()
	}
	resp.Result = result

	uc.log.Info().
		Str("entity", in.Entity).
		Str("source", source).
		Int("rows", resp.Rows).
		Int("imported", result.Succeeded).
		Int("rejected", len(resp.Errors)+result.Failed).
		Msg("ingesta completada")
	return resp, nil
}

func (uc *UseCase) read(ctx context.Context, in Input) (string, []ports.RawRow, error) {
	if in.File != nil {
		switch strings.ToLower(filepath.Ext(in.Filename)) {
		case ".csv", ".txt":
			rows, err := uc.parser.ParseCSV(in.File)
			return dto.IntakeSourceCSV, rows, err
		case ".xlsx":
			rows, err := uc.parser.ParseXLSX(in.File)
			return dto.IntakeSourceXLSX, rows, err
		}
		return "", nil, fmt.Errorf("%w: formato de archivo %q (.csv|.xlsx)", domain.ErrInvalidInput, in.Filename)
	}

	text := strings.TrimSpace(in.Text)
	if text == "" {
		return "", nil, fmt.Errorf("%w: se requiere un archivo o contenido de texto", domain.ErrInvalidInput)
	}
	if uc.extractor == nil {
		return "", nil, fmt.Errorf("%w: ingesta de texto libre no configurada", domain.ErrInvalidInput)
	}
	ctx, cancel := context.WithTimeout(ctx, extractorTimeout)
	defer cancel()
	maps, err := uc.extractor.ExtractRows(ctx, text, in.Entity)
	if err != nil {
		return "", nil, fmt.Errorf("extraer filas: %w", err)
	}
	rows := make([]ports.RawRow, 0, len(maps))
	for i, m := range maps {
		rows = append(rows, ports.RawRow{Row: i + 1, Fields: m})
	}
	return dto.IntakeSourceText, rows, nil
}

// resolvePaymentCustomers completa customer_id desde la factura cuando la fila solo trae invoice_id.
func (uc *UseCase) resolvePaymentCustomers(ctx context.Context, rows []ImportRow, rowErrs []dto.IntakeRowError) ([]ImportRow, []dto.IntakeRowError, error) {
	out := make([]ImportRow, 0, len(rows))
	err := uc.tx.RunReadOnly(ctx, func(r ports.Repos) error {
		for _, row := range rows {
			p := row.(PaymentImportRow)
			if p.Request.CustomerID != "" {
				out = append(out, p)
				continue
			}
			q, err := r.Quotes.GetByID(ctx, p.Request.InvoiceID)
			if err != nil {
				return err
			}
			if q == nil {
				rowErrs = append(rowErrs, dto.IntakeRowError{
					Row:   p.Row,
					Error: fmt.Errorf("factura %s: %w", p.Request.InvoiceID, domain.ErrNotFound).Error(),
				})
				continue
			}
			p.Request.CustomerID = q.CustomerID
			out = append(out, p)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return out, rowErrs, nil
}

func (uc *UseCase) write(ctx context.Context, entityType, actor string, rows []ImportRow) (*dto.BulkResponse, error) {
	switch entityType {
	case dto.IntakeEntityCustomers:
		items := make([]dto.CreateCustomerRequest, 0, len(rows))
		for _, r := range rows {
			items = append(items, r.(CustomerImportRow).Request)
		}
		return uc.customers.BulkCreate(ctx, actor, items)
	case dto.IntakeEntityInventory:
		items := make([]dto.CreateInventoryItemRequest, 0, len(rows))
		for _, r := range rows {
			items = append(items, r.(InventoryImportRow).Request)
		}
		return uc.inventory.BulkCreate(ctx, actor, items)
	case dto.IntakeEntityPayments:
		items := make([]dto.CreatePaymentRequest, 0, len(rows))
		for _, r := range rows {
			items = append(items, r.(PaymentImportRow).Request)
		}
		return uc.payments.BulkCreate(ctx, actor, items)
	}
	return nil, fmt.Errorf("%w: entidad %q", domain.ErrInvalidInput, entityType)
}
