package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/application/inventory"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// StockHandler consultas del libro de stock y ajustes manuales (protegido).
type StockHandler struct {
	uc *inventory.StockUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *inventory.StockUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// RegisterAdjustment godoc
// @Summary      Registrar ajuste o devolución manual
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterAdjustmentRequest  true  "ADJUSTMENT con signo libre; RETURN positivo"
// @Success      201   {object}  dto.StockMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/adjustments [post]
func (h *StockHandler) RegisterAdjustment(c *fiber.Ctx) error {
	var in dto.RegisterAdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mov, err := h.uc.RegisterAdjustment(c.Context(), inventory.AdjustmentInputDTO{
		ProductID:        in.ProductID,
		InventoryPointID: in.InventoryPointID,
		ChangeType:       in.ChangeType,
		QuantityChange:   in.QuantityChange,
		ReferenceID:      in.ReferenceID,
		CreatedBy:        GetCoUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewStockMovementResponse(mov))
}

// GetCurrentStock godoc
// @Summary      Cantidad total de un producto (todos los puntos)
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        product_id  path  int  true  "ID del producto"
// @Success      200  {object}  map[string]int64
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/products/{product_id} [get]
func (h *StockHandler) GetCurrentStock(c *fiber.Ctx) error {
	productID, err := c.ParamsInt("product_id")
	if err != nil || productID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "product_id numérico requerido"})
	}
	qty, err := h.uc.GetCurrentStock(c.Context(), int64(productID))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"product_id": productID, "quantity": qty})
}

// GetAvailableAtPoint godoc
// @Summary      Saldo de un producto en un punto
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        product_id  path  int  true  "ID del producto"
// @Param        point_id    path  int  true  "ID del punto de inventario"
// @Success      200  {object}  map[string]int64
// @Router       /api/stock/products/{product_id}/points/{point_id} [get]
func (h *StockHandler) GetAvailableAtPoint(c *fiber.Ctx) error {
	productID, err := c.ParamsInt("product_id")
	if err != nil || productID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "product_id numérico requerido"})
	}
	pointID, err := c.ParamsInt("point_id")
	if err != nil || pointID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "point_id numérico requerido"})
	}
	qty, err := h.uc.GetAvailableAtPoint(c.Context(), int64(productID), int64(pointID))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"product_id": productID, "inventory_point_id": pointID, "quantity": qty})
}

// ListMovements godoc
// @Summary      Historial del libro de stock
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  int  false  "Filtrar por producto"
// @Param        point_id    query  int  false  "Filtrar por punto"
// @Param        limit       query  int  false  "Límite"   default(20)
// @Param        offset      query  int  false  "Offset"   default(0)
// @Success      200  {array}  dto.StockMovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/movements [get]
func (h *StockHandler) ListMovements(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	productID := int64(c.QueryInt("product_id", 0))
	pointID := int64(c.QueryInt("point_id", 0))

	var movs []*entity.StockMovement
	switch {
	case productID != 0:
		list, err := h.uc.ListMovementsByProduct(c.Context(), productID, limit, offset)
		if err != nil {
			return respondError(c, err)
		}
		movs = list
	case pointID != 0:
		list, err := h.uc.ListMovementsByPoint(c.Context(), pointID, limit, offset)
		if err != nil {
			return respondError(c, err)
		}
		movs = list
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id o point_id es requerido"})
	}

	out := make([]dto.StockMovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, dto.NewStockMovementResponse(m))
	}
	return c.JSON(out)
}

// ListBalances godoc
// @Summary      Saldos materializados por producto o por punto
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  int  false  "Saldos del producto en cada punto"
// @Param        point_id    query  int  false  "Saldos de todos los productos del punto"
// @Success      200  {array}  dto.InventoryStockResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/balances [get]
func (h *StockHandler) ListBalances(c *fiber.Ctx) error {
	productID := int64(c.QueryInt("product_id", 0))
	pointID := int64(c.QueryInt("point_id", 0))

	var balances []*entity.InventoryStock
	switch {
	case productID != 0:
		list, err := h.uc.ListStockByProduct(c.Context(), productID)
		if err != nil {
			return respondError(c, err)
		}
		balances = list
	case pointID != 0:
		list, err := h.uc.ListStockByPoint(c.Context(), pointID)
		if err != nil {
			return respondError(c, err)
		}
		balances = list
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id o point_id es requerido"})
	}

	out := make([]dto.InventoryStockResponse, 0, len(balances))
	for _, s := range balances {
		out = append(out, dto.NewInventoryStockResponse(s))
	}
	return c.JSON(out)
}
