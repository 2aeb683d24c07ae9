package entity

import "time"

// StockTransfer registro inmutable de una transferencia completada entre bodegas.
// FromWarehouseID != ToWarehouseID y Quantity > 0 (constraints en DB).
type StockTransfer struct {
	ID              string
	ProductID       string
	FromWarehouseID string
	ToWarehouseID   string
	Quantity        int
	InitiatedBy     string
	Notes           *string
	CreatedAt       time.Time
}
