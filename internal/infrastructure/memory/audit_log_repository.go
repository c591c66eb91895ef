package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/ironhub-api/internal/domain/entity"
	"github.com/jhoicas/ironhub-api/internal/domain/repository"
)

var _ repository.AuditLogRepository = (*AuditLogRepo)(nil)

// AuditLogRepo bitácora en memoria.
type AuditLogRepo struct {
	v *view
}

func (r *AuditLogRepo) Append(_ context.Context, entry *entity.AuditLog) error {
	if err := r.v.writable(); err != nil {
		return err
	}
	cp := *entry
	r.v.st.logs = append(r.v.st.logs, &cp)
	return nil
}

func (r *AuditLogRepo) ListByCustomer(_ context.Context, customerID string) ([]*entity.AuditLog, error) {
	out := make([]*entity.AuditLog, 0)
	for i := len(r.v.st.logs) - 1; i >= 0; i-- {
		if l := r.v.st.logs[i]; l.CustomerID == customerID {
			cp := *l
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// AuditLogs devuelve todas las entradas en orden de inserción (incluye eventos globales).
func (s *Store) AuditLogs() []*entity.AuditLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*entity.AuditLog, 0, len(s.data.logs))
	for _, l := range s.data.logs {
		cp := *l
		out = append(out, &cp)
	}
	return out
}
