package entity

import "time"

// Category categoría de productos. La jerarquía padre-hijo se expresa vía ParentID.
type Category struct {
	ID          string
	Name        string
	Description *string
	ParentID    *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
