package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/workermill-examples/shipapi/internal/domain/entity"
	"github.com/workermill-examples/shipapi/internal/domain/repository"
)

var _ repository.AuditLogRepository = (*AuditLogRepo)(nil)

// AuditLogRepo implementación de AuditLogRepository sobre PostgreSQL (usable con pool o tx).
type AuditLogRepo struct {
	q Querier
}

// NewAuditLogRepository construye el adaptador de auditoría. Pasar pool o tx (Querier).
func NewAuditLogRepository(q Querier) *AuditLogRepo {
	return &AuditLogRepo{q: q}
}

// Create inserta una entrada de auditoría. Changes se serializa a jsonb.
func (r *AuditLogRepo) Create(log *entity.AuditLog) error {
	changes, err := json.Marshal(log.Changes)
	if err != nil {
		return fmt.Errorf("marshal audit changes: %w", err)
	}
	query := `
		INSERT INTO audit_logs (id, user_id, action, resource_type, resource_id, changes, ip_address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		RETURNING created_at`
	err = r.q.QueryRow(context.Background(), query,
		log.ID, log.UserID, log.Action, log.ResourceType, log.ResourceID, changes, log.IPAddress,
	).Scan(&log.CreatedAt)
	if err != nil {
		return fmt.Errorf("create audit log: %w", err)
	}
	return nil
}

// List devuelve una página del historial filtrado, más reciente primero, y el total.
func (r *AuditLogRepo) List(filter repository.AuditLogFilter, limit, offset int) ([]*entity.AuditLog, int, error) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.StartDate != nil {
		conds = append(conds, "created_at >= "+arg(*filter.StartDate))
	}
	if filter.EndDate != nil {
		conds = append(conds, "created_at <= "+arg(*filter.EndDate))
	}
	if filter.Action != "" {
		conds = append(conds, "action = "+arg(filter.Action))
	}
	if filter.ResourceType != "" {
		conds = append(conds, "resource_type = "+arg(filter.ResourceType))
	}
	if filter.UserID != "" {
		conds = append(conds, "user_id = "+arg(filter.UserID))
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.q.QueryRow(context.Background(), "SELECT count(*) FROM audit_logs"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count audit logs: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, user_id, action, resource_type, resource_id, changes, ip_address, created_at
		FROM audit_logs%s ORDER BY created_at DESC LIMIT %s OFFSET %s`,
		where, arg(limit), arg(offset))
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()

	var out []*entity.AuditLog
	for rows.Next() {
		var (
			a       entity.AuditLog
			changes []byte
		)
		if err := rows.Scan(&a.ID, &a.UserID, &a.Action, &a.ResourceType, &a.ResourceID, &changes, &a.IPAddress, &a.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan audit log: %w", err)
		}
		if len(changes) > 0 {
			if err := json.Unmarshal(changes, &a.Changes); err != nil {
				return nil, 0, fmt.Errorf("unmarshal audit changes: %w", err)
			}
		}
		out = append(out, &a)
	}
	return out, total, rows.Err()
}
