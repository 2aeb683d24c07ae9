package dto

import "time"

// UpsertStockRequest entrada para fijar existencias de un producto en una bodega.
// MinThreshold es opcional; si se omite en la creación se aplica el default 10.
type UpsertStockRequest struct {
	Quantity     int  `json:"quantity" validate:"gte=0"`
	MinThreshold *int `json:"min_threshold" validate:"omitempty,gte=0"`
}

// TransferStockRequest entrada para transferir stock entre bodegas.
type TransferStockRequest struct {
	ProductID       string  `json:"product_id" validate:"required,uuid"`
	FromWarehouseID string  `json:"from_warehouse_id" validate:"required,uuid"`
	ToWarehouseID   string  `json:"to_warehouse_id" validate:"required,uuid"`
	Quantity        int     `json:"quantity" validate:"required,gt=0"`
	Notes           *string `json:"notes" validate:"omitempty,max=1000"`
}

// StockLevelResponse salida de existencias por producto y bodega.
type StockLevelResponse struct {
	ID           string    `json:"id"`
	ProductID    string    `json:"product_id"`
	WarehouseID  string    `json:"warehouse_id"`
	Quantity     int       `json:"quantity"`
	MinThreshold int       `json:"min_threshold"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TransferResponse salida de una transferencia completada.
type TransferResponse struct {
	ID              string    `json:"id"`
	ProductID       string    `json:"product_id"`
	FromWarehouseID string    `json:"from_warehouse_id"`
	ToWarehouseID   string    `json:"to_warehouse_id"`
	Quantity        int       `json:"quantity"`
	InitiatedBy     string    `json:"initiated_by"`
	Notes           *string   `json:"notes"`
	CreatedAt       time.Time `json:"created_at"`
}

// StockAlertResponse fila de alerta de stock bajo.
type StockAlertResponse struct {
	ProductID         string `json:"product_id"`
	ProductName       string `json:"product_name"`
	ProductSKU        string `json:"product_sku"`
	WarehouseID       string `json:"warehouse_id"`
	WarehouseName     string `json:"warehouse_name"`
	WarehouseLocation string `json:"warehouse_location"`
	Quantity          int    `json:"quantity"`
	MinThreshold      int    `json:"min_threshold"`
	Deficit           int    `json:"deficit"`
}
