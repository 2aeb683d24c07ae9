package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/workermill-examples/shipapi/internal/application/audit"
	"github.com/workermill-examples/shipapi/internal/application/dto"
	"github.com/workermill-examples/shipapi/pkg/validator"
)

// AuditHandler consulta del historial de auditoría (solo admin).
type AuditHandler struct {
	uc *audit.AuditUseCase
}

// NewAuditHandler construye el handler.
func NewAuditHandler(uc *audit.AuditUseCase) *AuditHandler {
	return &AuditHandler{uc: uc}
}

// List godoc
// @Summary      Historial de auditoría
// @Tags         audit
// @Security     Bearer
// @Produce      json
// @Param        page           query  int     false  "Página"            default(1)
// @Param        per_page       query  int     false  "Tamaño de página"  default(20)
// @Param        start_date     query  string  false  "Desde (RFC 3339)"
// @Param        end_date       query  string  false  "Hasta (RFC 3339)"
// @Param        action         query  string  false  "create | update | delete | transfer"
// @Param        resource_type  query  string  false  "Tipo de recurso"
// @Param        user_id        query  string  false  "Filtrar por usuario"
// @Success      200  {object}  dto.ListResponse[dto.AuditLogResponse]
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/v1/audit-log [get]
func (h *AuditHandler) List(c *fiber.Ctx) error {
	var in dto.ListAuditLogsRequest
	if err := c.QueryParser(&in); err != nil {
		return respondBadBody(c)
	}
	if details := validator.Struct(in); details != nil {
		return respondValidation(c, details)
	}
	out, err := h.uc.List(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
