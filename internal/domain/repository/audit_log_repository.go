package repository

import (
	"context"

	"github.com/jhoicas/ironhub-api/internal/domain/entity"
)

// AuditLogRepository bitácora append-only.
type AuditLogRepository interface {
	Append(ctx context.Context, entry *entity.AuditLog) error
	// ListByCustomer devuelve las entradas del cliente, más recientes primero.
	ListByCustomer(ctx context.Context, customerID string) ([]*entity.AuditLog, error)
}
