package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/workermill-examples/shipapi/internal/application/usecase"
)

// ShowcaseHandler endpoints públicos: landing, stats y health.
type ShowcaseHandler struct {
	uc      *usecase.ShowcaseUseCase
	landing []byte
}

// NewShowcaseHandler construye el handler. landing es el HTML embebido de la raíz.
func NewShowcaseHandler(uc *usecase.ShowcaseUseCase, landing []byte) *ShowcaseHandler {
	return &ShowcaseHandler{uc: uc, landing: landing}
}

// Landing sirve la página HTML pública en la raíz.
func (h *ShowcaseHandler) Landing(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(h.landing)
}

// Stats godoc
// @Summary      Estadísticas públicas
// @Tags         showcase
// @Produce      json
// @Success      200  {object}  dto.ShowcaseStatsResponse
// @Router       /showcase/stats [get]
func (h *ShowcaseHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Health godoc
// @Summary      Health check
// @Tags         showcase
// @Produce      json
// @Success      200  {object}  dto.HealthResponse
// @Router       /health [get]
func (h *ShowcaseHandler) Health(c *fiber.Ctx) error {
	return c.JSON(h.uc.Health(c.UserContext()))
}
