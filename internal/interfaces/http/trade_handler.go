package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/application/inventory"
)

// TradeHandler maneja compras, ventas y traslados (protegido).
type TradeHandler struct {
	purchaseUC *inventory.RegisterPurchaseUseCase
	saleUC     *inventory.RegisterSaleUseCase
	transferUC *inventory.TransferUseCase
	queryUC    *inventory.TradeQueryUseCase
}

// NewTradeHandler construye el handler.
func NewTradeHandler(
	purchaseUC *inventory.RegisterPurchaseUseCase,
	saleUC *inventory.RegisterSaleUseCase,
	transferUC *inventory.TransferUseCase,
	queryUC *inventory.TradeQueryUseCase,
) *TradeHandler {
	return &TradeHandler{
		purchaseUC: purchaseUC,
		saleUC:     saleUC,
		transferUC: transferUC,
		queryUC:    queryUC,
	}
}

// CreatePurchase godoc
// @Summary      Registrar compra a proveedor
// @Tags         purchases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePurchaseRequest  true  "Compra con sus líneas"
// @Success      201   {object}  dto.PurchaseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/purchases [post]
func (h *TradeHandler) CreatePurchase(c *fiber.Ctx) error {
	var in dto.CreatePurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	items := make([]inventory.PurchaseItemInput, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, inventory.PurchaseItemInput{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitCost:  it.UnitCost,
			TotalCost: it.TotalCost,
		})
	}
	purchase, err := h.purchaseUC.RegisterPurchase(c.Context(), inventory.PurchaseInputDTO{
		SupplierID:       in.SupplierID,
		InventoryPointID: in.InventoryPointID,
		CreatedBy:        GetCoUserID(c),
		Items:            items,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewPurchaseResponse(purchase))
}

// GetPurchase godoc
// @Summary      Obtener compra por ID
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID de la compra"
// @Success      200  {object}  dto.PurchaseResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchases/{id} [get]
func (h *TradeHandler) GetPurchase(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id numérico requerido"})
	}
	purchase, err := h.queryUC.GetPurchase(c.Context(), int64(id))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewPurchaseResponse(purchase))
}

// ListPurchases godoc
// @Summary      Listar compras
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        supplier_id  query  int  false  "Filtrar por proveedor"
// @Param        limit        query  int  false  "Límite"   default(20)
// @Param        offset       query  int  false  "Offset"   default(0)
// @Success      200  {array}  dto.PurchaseResponse
// @Router       /api/purchases [get]
func (h *TradeHandler) ListPurchases(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	supplierID := int64(c.QueryInt("supplier_id", 0))
	purchases, err := h.queryUC.ListPurchases(c.Context(), supplierID, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.PurchaseResponse, 0, len(purchases))
	for _, p := range purchases {
		out = append(out, dto.NewPurchaseResponse(p))
	}
	return c.JSON(out)
}

// CreateSale godoc
// @Summary      Registrar venta
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "Venta con sus líneas"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *TradeHandler) CreateSale(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	items := make([]inventory.SaleItemInput, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, inventory.SaleItemInput{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Discount:  it.Discount,
			Tax:       it.Tax,
		})
	}
	// Si no viene vendedor explícito, la venta queda a nombre del usuario autenticado.
	sellerCoUserID := in.SellerCoUserID
	if sellerCoUserID == "" && in.SellerID == 0 {
		sellerCoUserID = GetCoUserID(c)
	}
	sale, err := h.saleUC.RegisterSale(c.Context(), inventory.SaleInputDTO{
		SaleNo:           in.SaleNo,
		SellerID:         in.SellerID,
		SellerCoUserID:   sellerCoUserID,
		CurrencyID:       in.CurrencyID,
		InventoryPointID: in.InventoryPointID,
		Items:            items,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewSaleResponse(sale))
}

// GetSale godoc
// @Summary      Obtener venta por ID
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *TradeHandler) GetSale(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id numérico requerido"})
	}
	sale, err := h.queryUC.GetSale(c.Context(), int64(id))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewSaleResponse(sale))
}

// ListSales godoc
// @Summary      Listar ventas
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200  {array}  dto.SaleResponse
// @Router       /api/sales [get]
func (h *TradeHandler) ListSales(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	sales, err := h.queryUC.ListSales(c.Context(), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.SaleResponse, 0, len(sales))
	for _, s := range sales {
		out = append(out, dto.NewSaleResponse(s))
	}
	return c.JSON(out)
}

// CreateTransfer godoc
// @Summary      Crear traslado entre puntos (PENDING, sin mover stock)
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransferRequest  true  "Traslado con sus líneas"
// @Success      201   {object}  dto.TransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/transfers [post]
func (h *TradeHandler) CreateTransfer(c *fiber.Ctx) error {
	var in dto.CreateTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	items := make([]inventory.TransferItemInput, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, inventory.TransferItemInput{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	transfer, err := h.transferUC.CreateTransfer(c.Context(), inventory.TransferInputDTO{
		FromPointID:    in.FromPointID,
		ToPointID:      in.ToPointID,
		AssignedUserID: in.AssignedUserID,
		CreatedBy:      GetCoUserID(c),
		Note:           in.Note,
		Items:          items,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewTransferResponse(transfer))
}

// GetTransfer godoc
// @Summary      Obtener traslado por ID
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID del traslado"
// @Success      200  {object}  dto.TransferResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transfers/{id} [get]
func (h *TradeHandler) GetTransfer(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id numérico requerido"})
	}
	transfer, err := h.queryUC.GetTransfer(c.Context(), int64(id))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewTransferResponse(transfer))
}

// ListTransfers godoc
// @Summary      Listar traslados
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        status            query  string  false  "PENDING, COMPLETED o CANCELLED"
// @Param        assigned_user_id  query  int     false  "Filtrar por usuario asignado"
// @Param        limit             query  int     false  "Límite"   default(20)
// @Param        offset            query  int     false  "Offset"   default(0)
// @Success      200  {array}  dto.TransferResponse
// @Router       /api/transfers [get]
func (h *TradeHandler) ListTransfers(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	status := c.Query("status")
	assignedUserID := int64(c.QueryInt("assigned_user_id", 0))
	transfers, err := h.queryUC.ListTransfers(c.Context(), status, assignedUserID, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.TransferResponse, 0, len(transfers))
	for _, t := range transfers {
		out = append(out, dto.NewTransferResponse(t))
	}
	return c.JSON(out)
}

// SignTransfer godoc
// @Summary      Firmar traslado (aplica los movimientos de stock)
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del traslado"
// @Param        body  body  dto.SignTransferRequest  true  "Firma del receptor"
// @Success      200   {object}  dto.TransferResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transfers/{id}/sign [post]
func (h *TradeHandler) SignTransfer(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id numérico requerido"})
	}
	var in dto.SignTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.SignatureData == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "signature_data es requerido"})
	}
	transfer, err := h.transferUC.SignTransfer(c.Context(), int64(id), in.SignatureData, GetCoUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewTransferResponse(transfer))
}

// CancelTransfer godoc
// @Summary      Cancelar traslado pendiente
// @Tags         transfers
// @Security     Bearer
// @Param        id  path  int  true  "ID del traslado"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/transfers/{id} [delete]
func (h *TradeHandler) CancelTransfer(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id numérico requerido"})
	}
	if err := h.transferUC.CancelTransfer(c.Context(), int64(id)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
