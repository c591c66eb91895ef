package entity

import "time"

// Acciones registradas en la bitácora.
const (
	AuditActionAccountCreated = "Account Created"
	AuditActionPayment        = "Payment Received"
	AuditActionQuoteCreated   = "Quote Created"
	AuditActionQuoteStatus    = "Quote Status"
	AuditActionBulkIngest     = "Bulk Ingest"
)

// AuditLog entrada append-only de la bitácora. CustomerID vacío = evento global.
type AuditLog struct {
	ID         string
	CustomerID string
	UserEmail  string
	Action     string
	Details    string
	CreatedAt  time.Time
}
