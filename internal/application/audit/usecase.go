package audit

import (
	"time"

	"github.com/google/uuid"
	"github.com/workermill-examples/shipapi/internal/application/dto"
	"github.com/workermill-examples/shipapi/internal/domain"
	"github.com/workermill-examples/shipapi/internal/domain/entity"
	"github.com/workermill-examples/shipapi/internal/domain/repository"
)

// Actor identidad del usuario que ejecuta una operación mutante.
// Viaja desde el middleware hasta la entrada de auditoría.
type Actor struct {
	UserID string
	IP     *string
}

// NewEntry arma una entrada de auditoría lista para persistir junto a la mutación.
func NewEntry(actor Actor, action, resourceType, resourceID string, changes map[string]any) *entity.AuditLog {
	return &entity.AuditLog{
		ID:           uuid.NewString(),
		UserID:       actor.UserID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Changes:      changes,
		IPAddress:    actor.IP,
	}
}

// Diff par old/new de un campo que cambió.
func Diff(oldVal, newVal any) map[string]any {
	return map[string]any{"old": oldVal, "new": newVal}
}

// AuditUseCase consulta del historial de cambios (solo admin).
type AuditUseCase struct {
	auditRepo repository.AuditLogRepository
}

// NewAuditUseCase construye el caso de uso de auditoría.
func NewAuditUseCase(auditRepo repository.AuditLogRepository) *AuditUseCase {
	return &AuditUseCase{auditRepo: auditRepo}
}

// List devuelve el historial filtrado y paginado, más reciente primero.
// Fechas inválidas devuelven ErrInvalidInput.
func (uc *AuditUseCase) List(in dto.ListAuditLogsRequest) (*dto.ListResponse[dto.AuditLogResponse], error) {
	in.Normalize()

	filter := repository.AuditLogFilter{
		Action:       in.Action,
		ResourceType: in.ResourceType,
		UserID:       in.UserID,
	}
	if in.StartDate != "" {
		t, err := time.Parse(time.RFC3339, in.StartDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		filter.StartDate = &t
	}
	if in.EndDate != "" {
		t, err := time.Parse(time.RFC3339, in.EndDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		filter.EndDate = &t
	}

	logs, total, err := uc.auditRepo.List(filter, in.Limit(), in.Offset())
	if err != nil {
		return nil, err
	}
	items := make([]dto.AuditLogResponse, 0, len(logs))
	for _, l := range logs {
		items = append(items, toAuditLogResponse(l))
	}
	resp := dto.NewListResponse(items, in.PageRequest, total)
	return &resp, nil
}

func toAuditLogResponse(l *entity.AuditLog) dto.AuditLogResponse {
	return dto.AuditLogResponse{
		ID:           l.ID,
		UserID:       l.UserID,
		Action:       l.Action,
		ResourceType: l.ResourceType,
		ResourceID:   l.ResourceID,
		Changes:      l.Changes,
		IPAddress:    l.IPAddress,
		CreatedAt:    l.CreatedAt,
	}
}
