package entity

import "time"

// StockLevel existencias de un producto en una bodega. Una fila por par
// (ProductID, WarehouseID); Quantity >= 0 en todo momento, incluso a mitad
// de una transferencia.
type StockLevel struct {
	ID           string
	ProductID    string
	WarehouseID  string
	Quantity     int
	MinThreshold int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Deficit faltante respecto al umbral mínimo. Positivo solo si la fila está en alerta.
func (s *StockLevel) Deficit() int {
	return s.MinThreshold - s.Quantity
}
