package repository

import (
	"time"

	"github.com/workermill-examples/shipapi/internal/domain/entity"
)

// AuditLogFilter filtros del listado de auditoría (solo admin).
type AuditLogFilter struct {
	StartDate    *time.Time
	EndDate      *time.Time
	Action       string
	ResourceType string
	UserID       string
}

// AuditLogRepository puerto de persistencia para la auditoría (append-only).
type AuditLogRepository interface {
	Create(log *entity.AuditLog) error
	List(filter AuditLogFilter, limit, offset int) ([]*entity.AuditLog, int, error)
}
