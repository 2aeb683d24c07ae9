package repository

import "github.com/workermill-examples/shipapi/internal/domain/entity"

// StockAlertItem fila de alerta de stock bajo con sus datos de presentación.
type StockAlertItem struct {
	ProductID         string
	ProductName       string
	ProductSKU        string
	WarehouseID       string
	WarehouseName     string
	WarehouseLocation string
	Quantity          int
	MinThreshold      int
}

// StockLevelRepository puerto de persistencia para existencias.
// Las implementaciones deben ser usables con pool o con una transacción.
type StockLevelRepository interface {
	Get(productID, warehouseID string) (*entity.StockLevel, error)
	// GetForUpdate lee la fila con SELECT FOR UPDATE. Devuelve nil (sin error)
	// si la fila no existe.
	GetForUpdate(productID, warehouseID string) (*entity.StockLevel, error)
	// EnsureRow crea la fila con cantidad 0 si no existe (ON CONFLICT DO NOTHING),
	// para poder bloquear origen y destino en orden consistente.
	EnsureRow(productID, warehouseID string) error
	Upsert(level *entity.StockLevel) error
	ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.StockLevel, int, error)
	ListByProduct(productID string) ([]*entity.StockLevel, error)
	// ListAlerts filas con quantity < min_threshold, ordenadas por déficit
	// descendente (mayor quiebre primero).
	ListAlerts(limit, offset int) ([]*StockAlertItem, int, error)
}
