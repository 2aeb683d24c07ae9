package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/workermill-examples/shipapi/internal/application/dto"
	"github.com/workermill-examples/shipapi/internal/application/stock"
	"github.com/workermill-examples/shipapi/pkg/validator"
)

// StockHandler maneja existencias, transferencias y alertas (protegido).
type StockHandler struct {
	uc *stock.StockUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *stock.StockUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// Upsert godoc
// @Summary      Fijar existencias de un producto en una bodega
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        product_id    path  string  true  "ID del producto"
// @Param        warehouse_id  path  string  true  "ID de la bodega"
// @Param        body  body  dto.UpsertStockRequest  true  "Cantidad y umbral"
// @Success      200   {object}  dto.StockLevelResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/stock/{product_id}/{warehouse_id} [put]
func (h *StockHandler) Upsert(c *fiber.Ctx) error {
	var in dto.UpsertStockRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	if details := validator.Struct(in); details != nil {
		return respondValidation(c, details)
	}
	out, err := h.uc.Upsert(c.UserContext(), actorFrom(c), c.Params("product_id"), c.Params("warehouse_id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Consultar existencias de un producto en una bodega
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        product_id    path  string  true  "ID del producto"
// @Param        warehouse_id  path  string  true  "ID de la bodega"
// @Success      200  {object}  dto.StockLevelResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/stock/{product_id}/{warehouse_id} [get]
func (h *StockHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Params("product_id"), c.Params("warehouse_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListByProduct godoc
// @Summary      Existencias de un producto en todas las bodegas
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        product_id  path  string  true  "ID del producto"
// @Success      200  {array}  dto.StockLevelResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/stock/product/{product_id} [get]
func (h *StockHandler) ListByProduct(c *fiber.Ctx) error {
	out, err := h.uc.ListByProduct(c.Params("product_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListByWarehouse godoc
// @Summary      Existencias de una bodega
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  path   string  true   "ID de la bodega"
// @Param        page          query  int     false  "Página"            default(1)
// @Param        per_page      query  int     false  "Tamaño de página"  default(20)
// @Success      200  {object}  dto.ListResponse[dto.StockLevelResponse]
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/warehouses/{warehouse_id}/stock [get]
func (h *StockHandler) ListByWarehouse(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return respondBadBody(c)
	}
	out, err := h.uc.ListByWarehouse(c.Params("warehouse_id"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Transfer godoc
// @Summary      Transferir stock entre bodegas (atómico)
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransferStockRequest  true  "Transferencia"
// @Success      201   {object}  dto.TransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/stock/transfer [post]
func (h *StockHandler) Transfer(c *fiber.Ctx) error {
	var in dto.TransferStockRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	if details := validator.Struct(in); details != nil {
		return respondValidation(c, details)
	}
	out, err := h.uc.Transfer(c.UserContext(), actorFrom(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Alerts godoc
// @Summary      Alertas de stock bajo umbral
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        page      query  int  false  "Página"            default(1)
// @Param        per_page  query  int  false  "Tamaño de página"  default(20)
// @Success      200  {object}  dto.ListResponse[dto.StockAlertResponse]
// @Router       /api/v1/stock/alerts [get]
func (h *StockHandler) Alerts(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return respondBadBody(c)
	}
	out, err := h.uc.Alerts(page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
