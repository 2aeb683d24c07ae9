package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name        string           `json:"name" validate:"required,min=1,max=200"`
	SKU         string           `json:"sku" validate:"required,min=1,max=100"`
	Description *string          `json:"description" validate:"omitempty,max=2000"`
	Price       decimal.Decimal  `json:"price"`
	WeightKg    *decimal.Decimal `json:"weight_kg"`
	CategoryID  string           `json:"category_id" validate:"required,uuid"`
}

// UpdateProductRequest entrada para actualizar; el SKU no es editable.
type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string          `json:"description" validate:"omitempty,max=2000"`
	Price       *decimal.Decimal `json:"price"`
	WeightKg    *decimal.Decimal `json:"weight_kg"`
	CategoryID  *string          `json:"category_id" validate:"omitempty,uuid"`
	IsActive    *bool            `json:"is_active"`
}

// ListProductsRequest filtros del listado (query params).
type ListProductsRequest struct {
	PageRequest
	Search     string  `query:"search"`
	CategoryID string  `query:"category_id" validate:"omitempty,uuid"`
	MinPrice   *string `query:"min_price"`
	MaxPrice   *string `query:"max_price"`
	IsActive   *bool   `query:"is_active"`
	SortBy     string  `query:"sort_by" validate:"omitempty,oneof=name price created_at sku"`
	SortOrder  string  `query:"sort_order" validate:"omitempty,oneof=asc desc"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	SKU         string           `json:"sku"`
	Description *string          `json:"description"`
	Price       decimal.Decimal  `json:"price"`
	WeightKg    *decimal.Decimal `json:"weight_kg"`
	CategoryID  string           `json:"category_id"`
	IsActive    bool             `json:"is_active"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}
