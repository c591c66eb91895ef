package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/ironhub-api/internal/domain/entity"
	"github.com/jhoicas/ironhub-api/internal/domain/repository"
)

var _ repository.AuditLogRepository = (*AuditLogRepo)(nil)

// AuditLogRepo bitácora append-only.
type AuditLogRepo struct {
	q Querier
}

// NewAuditLogRepository construye el adaptador.
func NewAuditLogRepository(q Querier) *AuditLogRepo {
	return &AuditLogRepo{q: q}
}

// Append inserta una entrada. customer_id vacío = evento global (NULL).
func (r *AuditLogRepo) Append(ctx context.Context, e *entity.AuditLog) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO audit_logs (id, customer_id, user_email, action, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		e.ID, nullString(e.CustomerID), e.UserEmail, e.Action, e.Details, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

// ListByCustomer más recientes primero.
func (r *AuditLogRepo) ListByCustomer(ctx context.Context, customerID string) ([]*entity.AuditLog, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, COALESCE(customer_id, ''), user_email, action, details, created_at
		FROM audit_logs WHERE customer_id = $1
		ORDER BY created_at DESC, seq DESC`, customerID)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.AuditLog, 0)
	for rows.Next() {
		var e entity.AuditLog
		if err := rows.Scan(&e.ID, &e.CustomerID, &e.UserEmail, &e.Action, &e.Details, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
