package entity

import "time"

// Acciones registradas en la auditoría.
const (
	AuditActionCreate   = "create"
	AuditActionUpdate   = "update"
	AuditActionDelete   = "delete"
	AuditActionTransfer = "transfer"
)

// Tipos de recurso auditados.
const (
	ResourceCategory   = "category"
	ResourceProduct    = "product"
	ResourceWarehouse  = "warehouse"
	ResourceStockLevel = "stock_level"
)

// AuditLog entrada append-only del historial de cambios. Changes guarda el
// diff a nivel de campo (jsonb); en updates solo los campos que cambiaron.
type AuditLog struct {
	ID           string
	UserID       string
	Action       string
	ResourceType string
	ResourceID   string
	Changes      map[string]any
	IPAddress    *string
	CreatedAt    time.Time
}
