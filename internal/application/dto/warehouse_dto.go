package dto

import "time"

// CreateWarehouseRequest entrada para crear una bodega.
type CreateWarehouseRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Location string `json:"location" validate:"required,min=1,max=500"`
	Capacity int    `json:"capacity" validate:"required,gt=0"`
}

// UpdateWarehouseRequest entrada para actualizar; IsActive permite desactivar la bodega.
type UpdateWarehouseRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=200"`
	Location *string `json:"location" validate:"omitempty,min=1,max=500"`
	Capacity *int    `json:"capacity" validate:"omitempty,gt=0"`
	IsActive *bool   `json:"is_active"`
}

// WarehouseResponse salida de una bodega.
type WarehouseResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	Capacity  int       `json:"capacity"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WarehouseDetailResponse bodega con su resumen de ocupación.
type WarehouseDetailResponse struct {
	WarehouseResponse
	TotalProducts          int     `json:"total_products"`
	TotalQuantity          int     `json:"total_quantity"`
	CapacityUtilizationPct float64 `json:"capacity_utilization_pct"`
}
