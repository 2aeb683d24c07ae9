package entity

import "time"

// Roles de usuario. El rol se incluye en los claims del JWT para RBAC.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User usuario de la API. PasswordHash es bcrypt; el API key se guarda solo
// como hash SHA-256 más un prefijo de 8 caracteres para el lookup.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Role         string // "admin" | "user"
	APIKeyHash   *string
	APIKeyPrefix *string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
