package repository

import "github.com/workermill-examples/shipapi/internal/domain/entity"

// UserRepository puerto de persistencia para usuarios.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	// FindByAPIKeyPrefix localiza al dueño de un API key por su prefijo de 8
	// caracteres; la verificación del hash completo es responsabilidad del caller.
	FindByAPIKeyPrefix(prefix string) (*entity.User, error)
}
