package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/workermill-examples/shipapi/internal/application/dto"
	"github.com/workermill-examples/shipapi/internal/domain"
	"github.com/workermill-examples/shipapi/pkg/validator"
)

// Códigos de error expuestos por la API.
const (
	CodeNotFound          = "NOT_FOUND"
	CodeConflict          = "CONFLICT"
	CodeValidation        = "VALIDATION_ERROR"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeForbidden         = "FORBIDDEN"
	CodeRateLimited       = "RATE_LIMIT_EXCEEDED"
	CodeInsufficientStock = "INSUFFICIENT_STOCK"
	CodeInternal          = "INTERNAL_ERROR"
)

// respondError traduce errores de dominio al envoltorio {"error": {...}} con
// el status correspondiente. Errores desconocidos responden 500 sin filtrar
// el mensaje interno.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return writeError(c, fiber.StatusNotFound, CodeNotFound, err.Error())
	case errors.Is(err, domain.ErrEmailAlreadyExists),
		errors.Is(err, domain.ErrDuplicate),
		errors.Is(err, domain.ErrConflict):
		return writeError(c, fiber.StatusConflict, CodeConflict, err.Error())
	case errors.Is(err, domain.ErrInsufficientStock):
		return writeError(c, fiber.StatusBadRequest, CodeInsufficientStock, err.Error())
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrWarehouseInactive),
		errors.Is(err, domain.ErrCategoryInUse):
		return writeError(c, fiber.StatusBadRequest, CodeValidation, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		return writeError(c, fiber.StatusUnauthorized, CodeUnauthorized, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		return writeError(c, fiber.StatusForbidden, CodeForbidden, err.Error())
	default:
		return writeError(c, fiber.StatusInternalServerError, CodeInternal, "error interno")
	}
}

// respondValidation responde 422 con el detalle por campo.
func respondValidation(c *fiber.Ctx, details []validator.FieldError) error {
	return c.Status(fiber.StatusUnprocessableEntity).
		JSON(dto.NewErrorResponse(CodeValidation, "datos de entrada inválidos", details))
}

// respondBadBody responde 400 por cuerpo no parseable.
func respondBadBody(c *fiber.Ctx) error {
	return writeError(c, fiber.StatusBadRequest, CodeValidation, "cuerpo de la petición inválido")
}

func writeError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(dto.NewErrorResponse(code, message, nil))
}
