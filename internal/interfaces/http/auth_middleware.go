package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/workermill-examples/shipapi/internal/application/audit"
	"github.com/workermill-examples/shipapi/internal/domain/entity"
	"github.com/workermill-examples/shipapi/internal/domain/repository"
	"github.com/workermill-examples/shipapi/pkg/apikey"
	"github.com/workermill-examples/shipapi/pkg/jwt"
)

// Locals keys para identidad en Fiber.
const (
	LocalUserID = "user_id"
	LocalRole   = "role"
)

// AuthMiddleware acepta Bearer JWT (access token) o X-API-Key y deja
// user_id y role en c.Locals. Con ambas credenciales presentes gana el Bearer.
// En ambos caminos la fila del usuario se resuelve contra la DB: un usuario
// desactivado o borrado pierde acceso de inmediato, sin esperar a que expire
// el token. El rol efectivo es el de la DB, no el del claim.
func AuthMiddleware(tokens *jwt.Manager, userRepo repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if authHeader := c.Get("Authorization"); authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
				return writeError(c, fiber.StatusUnauthorized, CodeUnauthorized, "formato: Bearer <token>")
			}
			claims, err := tokens.Parse(strings.TrimSpace(parts[1]), jwt.TypeAccess)
			if err != nil {
				return writeError(c, fiber.StatusUnauthorized, CodeUnauthorized, "token inválido o expirado")
			}
			user, err := userRepo.GetByID(claims.UserID)
			if err != nil || user == nil || !user.IsActive {
				return writeError(c, fiber.StatusUnauthorized, CodeUnauthorized, "usuario inactivo o inexistente")
			}
			return authenticated(c, user)
		}

		if key := c.Get("X-API-Key"); key != "" {
			if !apikey.Valid(key) {
				return writeError(c, fiber.StatusUnauthorized, CodeUnauthorized, "API key inválida")
			}
			user, err := userRepo.FindByAPIKeyPrefix(apikey.Prefix(key))
			if err != nil || user == nil || user.APIKeyHash == nil || !apikey.Verify(*user.APIKeyHash, key) {
				return writeError(c, fiber.StatusUnauthorized, CodeUnauthorized, "API key inválida")
			}
			if !user.IsActive {
				return writeError(c, fiber.StatusUnauthorized, CodeUnauthorized, "usuario inactivo")
			}
			return authenticated(c, user)
		}

		return writeError(c, fiber.StatusUnauthorized, CodeUnauthorized, "credenciales requeridas")
	}
}

func authenticated(c *fiber.Ctx, user *entity.User) error {
	c.Locals(LocalUserID, user.ID)
	c.Locals(LocalRole, user.Role)
	return c.Next()
}

// RequireAdmin corta con 403 si el usuario autenticado no es admin.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetRole(c) != entity.RoleAdmin {
			return writeError(c, fiber.StatusForbidden, CodeForbidden, "se requiere rol admin")
		}
		return c.Next()
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	v := c.Locals(LocalUserID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetRole devuelve el rol del contexto (después del middleware de auth).
func GetRole(c *fiber.Ctx) string {
	v := c.Locals(LocalRole)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// actorFrom arma la identidad para auditoría desde el contexto de la petición.
func actorFrom(c *fiber.Ctx) audit.Actor {
	ip := c.IP()
	return audit.Actor{UserID: GetUserID(c), IP: &ip}
}
