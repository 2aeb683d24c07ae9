package repository

import "github.com/workermill-examples/shipapi/internal/domain/entity"

// WarehouseSummary agregados de stock de una bodega para el detalle.
type WarehouseSummary struct {
	TotalProducts int
	TotalQuantity int
}

// WarehouseRepository puerto de persistencia para bodegas.
type WarehouseRepository interface {
	Create(warehouse *entity.Warehouse) error
	GetByID(id string) (*entity.Warehouse, error)
	List(limit, offset int) ([]*entity.Warehouse, int, error)
	Update(warehouse *entity.Warehouse) error
	// StockSummary cuenta productos distintos y suma cantidades en la bodega.
	StockSummary(warehouseID string) (*WarehouseSummary, error)
}
