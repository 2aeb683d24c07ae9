package entity

import "time"

// Warehouse bodega física. Capacity > 0 (constraint en DB).
type Warehouse struct {
	ID        string
	Name      string
	Location  string
	Capacity  int
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
