package intake

import (
	"errors"
	"fmt"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ironhub-api/internal/application/dto"
	"github.com/jhoicas/ironhub-api/internal/application/ledger"
	"github.com/jhoicas/ironhub-api/internal/domain"
	"github.com/jhoicas/ironhub-api/internal/domain/entity"
	domledger "github.com/jhoicas/ironhub-api/internal/domain/ledger"
)

// ImportRow fila validada y normalizada. Implementaciones: CustomerImportRow,
// InventoryImportRow y PaymentImportRow.
type ImportRow interface {
	SourceRow() int
	Record() any
}

// CustomerImportRow cliente listo para CustomerUseCase.BulkCreate.
type CustomerImportRow struct {
	Row     int
	Request dto.CreateCustomerRequest
}

func (r CustomerImportRow) SourceRow() int { return r.Row }
func (r CustomerImportRow) Record() any    { return r.Request }

// InventoryImportRow ítem listo para inventory.UseCase.BulkCreate.
type InventoryImportRow struct {
	Row     int
	Request dto.CreateInventoryItemRequest
}

func (r InventoryImportRow) SourceRow() int { return r.Row }
func (r InventoryImportRow) Record() any    { return r.Request }

// PaymentImportRow pago listo para PaymentUseCase.BulkCreate. CustomerID puede quedar
// vacío hasta resolverse por la factura.
type PaymentImportRow struct {
	Row     int
	Request dto.CreatePaymentRequest
}

func (r PaymentImportRow) SourceRow() int { return r.Row }
func (r PaymentImportRow) Record() any    { return r.Request }

// Normalize tipa una fila cruda según la entidad. Las claves ya deben venir normalizadas.
func Normalize(entityType string, row int, fields map[string]string) (ImportRow, error) {
	switch entityType {
	case dto.IntakeEntityCustomers:
		return normalizeCustomer(row, fields)
	case dto.IntakeEntityInventory:
		return normalizeInventory(row, fields)
	case dto.IntakeEntityPayments:
		return normalizePayment(row, fields)
	}
	return nil, fmt.Errorf("%w: entidad %q", domain.ErrInvalidInput, entityType)
}

func normalizeCustomer(row int, f map[string]string) (ImportRow, error) {
	if f["name"] == "" {
		return nil, fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput)
	}
	email := f["email"]
	if email == "" {
		return nil, fmt.Errorf("%w: email es obligatorio", domain.ErrInvalidInput)
	}
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return nil, fmt.Errorf("%w: email %q inválido", domain.ErrInvalidInput, email)
	}
	billing := dto.AddressDTO{Street: f["street"], City: f["city"], State: f["state"], Zip: f["zip"], Country: f["country"]}
	req := dto.CreateCustomerRequest{
		Name:            f["name"],
		Email:           strings.ToLower(addr.Address),
		Phone:           f["phone"],
		BillingAddress:  billing,
		ShippingAddress: billing,
		InternalNotes:   f["internal_notes"],
	}
	if err := dto.Validate(req); err != nil {
		return nil, err
	}
	return CustomerImportRow{Row: row, Request: req}, nil
}

func normalizeInventory(row int, f map[string]string) (ImportRow, error) {
	if f["name"] == "" {
		return nil, fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput)
	}
	qty := 1
	if raw := f["quantity"]; raw != "" {
		n, err := parseQuantity(raw)
		if err != nil {
			return nil, err
		}
		qty = n
	}
	typ, err := parseInventoryType(f["type"])
	if err != nil {
		return nil, err
	}
	req := dto.CreateInventoryItemRequest{
		Name:         f["name"],
		Description:  f["description"],
		ModelNumber:  f["model_number"],
		SerialNumber: f["serial_number"],
		PartNumber:   f["part_number"],
		Quantity:     qty,
		Type:         typ,
	}
	if raw := f["price"]; raw != "" {
		d, err := parseMoney(raw)
		if err != nil {
			return nil, fmt.Errorf("price: %w", err)
		}
		req.Price = &d
	}
	if raw := f["cost"]; raw != "" {
		d, err := parseMoney(raw)
		if err != nil {
			return nil, fmt.Errorf("cost: %w", err)
		}
		req.Cost = &d
	}
	if err := dto.Validate(req); err != nil {
		return nil, err
	}
	return InventoryImportRow{Row: row, Request: req}, nil
}

func normalizePayment(row int, f map[string]string) (ImportRow, error) {
	raw := f["amount"]
	if raw == "" {
		return nil, domain.ErrInvalidAmount
	}
	amount, err := parseMoney(raw)
	if err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	method, err := parseMethod(f["method"])
	if err != nil {
		return nil, err
	}
	date := ""
	if f["date"] != "" {
		t, err := parseDate(f["date"])
		if err != nil {
			return nil, err
		}
		date = t.Format(ledger.DateLayout)
	}
	req := dto.CreatePaymentRequest{
		CustomerID: f["customer_id"],
		Date:       date,
		Amount:     amount,
		Method:     string(method),
		InvoiceID:  f["invoice_id"],
	}
	if req.CustomerID == "" && req.InvoiceID == "" {
		return nil, fmt.Errorf("%w: se requiere customer_id o invoice_id", domain.ErrInvalidInput)
	}
	return PaymentImportRow{Row: row, Request: req}, nil
}

// parseMoney acepta "$1,250.00", "1250", "USD 99.5".
func parseMoney(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(strings.ToUpper(s), "USD")
	s = strings.NewReplacer("$", "", ",", "", " ", "").Replace(s)
	negative := strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")")
	s = strings.Trim(s, "()")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: monto %q", domain.ErrInvalidInput, raw)
	}
	if !domledger.FitsPlaces(d, domledger.MoneyPlaces) {
		return decimal.Zero, fmt.Errorf("%w: monto %q tiene más de %d decimales", domain.ErrInvalidInput, raw, domledger.MoneyPlaces)
	}
	if negative {
		d = d.Neg()
	}
	return d, nil
}

func parseQuantity(raw string) (int, error) {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if n, err := strconv.Atoi(s); err == nil && n >= 0 {
		return n, nil
	}
	if d, err := decimal.NewFromString(s); err == nil && d.IsInteger() && !d.IsNegative() {
		return int(d.IntPart()), nil
	}
	return 0, fmt.Errorf("%w: quantity %q", domain.ErrInvalidInput, raw)
}

func parseInventoryType(raw string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "equipment", "machine", "machinery", "unit":
		return entity.InventoryTypeEquipment, nil
	case "part", "parts", "component", "spare":
		return entity.InventoryTypePart, nil
	}
	return "", fmt.Errorf("%w: type %q (equipment|part)", domain.ErrInvalidInput, raw)
}

var errUnknownMethod = errors.New("método de pago desconocido")

func parseMethod(raw string) (entity.PaymentMethod, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch s {
	case "bank transfer", "bank_transfer", "transfer", "wire", "wire transfer", "ach", "bank", "eft":
		return entity.PaymentMethodBankTransfer, nil
	case "credit card", "credit_card", "card", "cc", "visa", "mastercard", "amex":
		return entity.PaymentMethodCreditCard, nil
	case "check", "cheque", "chk":
		return entity.PaymentMethodCheck, nil
	case "":
		return "", fmt.Errorf("%w: method es obligatorio", domain.ErrInvalidInput)
	}
	return "", fmt.Errorf("%w: %w %q", domain.ErrInvalidInput, errUnknownMethod, raw)
}

var dateLayouts = []string{
	ledger.DateLayout,
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"02-Jan-2006",
	"2 Jan 2006",
	time.RFC3339,
}

func parseDate(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: fecha %q", domain.ErrInvalidInput, raw)
}
