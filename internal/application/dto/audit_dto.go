package dto

import "time"

// ListAuditLogsRequest filtros del historial de auditoría (query params, solo admin).
// Las fechas van en RFC 3339.
type ListAuditLogsRequest struct {
	PageRequest
	StartDate    string `query:"start_date"`
	EndDate      string `query:"end_date"`
	Action       string `query:"action" validate:"omitempty,oneof=create update delete transfer"`
	ResourceType string `query:"resource_type"`
	UserID       string `query:"user_id" validate:"omitempty,uuid"`
}

// AuditLogResponse entrada del historial de cambios.
type AuditLogResponse struct {
	ID           string         `json:"id"`
	UserID       string         `json:"user_id"`
	Action       string         `json:"action"`
	ResourceType string         `json:"resource_type"`
	ResourceID   string         `json:"resource_id"`
	Changes      map[string]any `json:"changes"`
	IPAddress    *string        `json:"ip_address"`
	CreatedAt    time.Time      `json:"created_at"`
}
