package repository

import (
	"github.com/shopspring/decimal"
	"github.com/workermill-examples/shipapi/internal/domain/entity"
)

// ProductFilter filtros combinables del listado de productos.
// Si Search no es vacío, el orden es por relevancia full-text y SortBy se ignora.
type ProductFilter struct {
	Search     string
	CategoryID string
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	IsActive   *bool
	SortBy     string // name | price | created_at | sku (whitelist en el usecase)
	SortOrder  string // asc | desc
}

// ProductRepository puerto de persistencia para productos.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	List(filter ProductFilter, limit, offset int) ([]*entity.Product, int, error)
	Update(product *entity.Product) error
	// Deactivate soft delete: pone is_active=false sin tocar la fila.
	Deactivate(id string) error
}
