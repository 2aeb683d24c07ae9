package repository

import "github.com/workermill-examples/shipapi/internal/domain/entity"

// CategoryRepository puerto de persistencia para categorías.
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	List(limit, offset int) ([]*entity.Category, int, error)
	Update(category *entity.Category) error
	Delete(id string) error
	// CountProducts cuenta productos (activos o no) asignados a la categoría,
	// para la protección de borrado en cascada.
	CountProducts(categoryID string) (int, error)
}
