package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product producto del catálogo. Nunca se borra físicamente: el soft delete
// pone IsActive=false para no romper referencias de stock, transferencias y auditoría.
type Product struct {
	ID          string
	Name        string
	SKU         string
	Description *string
	Price       decimal.Decimal
	WeightKg    *decimal.Decimal
	CategoryID  string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
