package ledger

import (
	"time"

	"github.com/jhoicas/ironhub-api/internal/domain/entity"
)

// AccountSnapshot foto consistente de la cuenta de un cliente (leída en una sola transacción).
type AccountSnapshot struct {
	Customer    *entity.Customer
	Quotes      []*entity.Quote
	Payments    []*entity.Payment
	GeneratedAt time.Time
}

// StatementPDFGenerator genera el estado de cuenta en PDF a partir de una foto de la cuenta.
// La implementación vive en infrastructure/pdf.
type StatementPDFGenerator interface {
	GenerateStatement(snapshot *AccountSnapshot) ([]byte, error)
}
