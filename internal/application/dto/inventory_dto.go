package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// PurchaseItemRequest línea del body para POST /api/purchases.
type PurchaseItemRequest struct {
	ProductID int64           `json:"product_id" validate:"required"`
	Quantity  int64           `json:"quantity" validate:"required,gt=0"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	TotalCost decimal.Decimal `json:"total_cost"` // opcional; si falta se deriva
}

// CreatePurchaseRequest body para POST /api/purchases.
type CreatePurchaseRequest struct {
	SupplierID       int64                 `json:"supplier_id" validate:"required"`
	InventoryPointID int64                 `json:"inventory_point_id" validate:"required"`
	Items            []PurchaseItemRequest `json:"items" validate:"required,min=1"`
}

// PurchaseItemResponse línea de compra en respuestas.
type PurchaseItemResponse struct {
	ID        int64           `json:"id"`
	ProductID int64           `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	TotalCost decimal.Decimal `json:"total_cost"`
}

// PurchaseResponse salida de una compra.
type PurchaseResponse struct {
	ID               int64                  `json:"id"`
	SupplierID       int64                  `json:"supplier_id"`
	InventoryPointID int64                  `json:"inventory_point_id"`
	TotalQuantity    int64                  `json:"total_quantity"`
	UnitCost         decimal.Decimal        `json:"unit_cost"`
	TotalCost        decimal.Decimal        `json:"total_cost"`
	CreatedBy        string                 `json:"created_by"`
	CreatedAt        time.Time              `json:"created_at"`
	Items            []PurchaseItemResponse `json:"items,omitempty"`
}

// NewPurchaseResponse mapea la entidad a su representación HTTP.
func NewPurchaseResponse(p *entity.Purchase) PurchaseResponse {
	items := make([]PurchaseItemResponse, 0, len(p.Items))
	for _, it := range p.Items {
		items = append(items, PurchaseItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitCost:  it.UnitCost,
			TotalCost: it.TotalCost,
		})
	}
	return PurchaseResponse{
		ID:               p.ID,
		SupplierID:       p.SupplierID,
		InventoryPointID: p.InventoryPointID,
		TotalQuantity:    p.TotalQuantity,
		UnitCost:         p.UnitCost,
		TotalCost:        p.TotalCost,
		CreatedBy:        p.CreatedBy,
		CreatedAt:        p.CreatedAt,
		Items:            items,
	}
}

// SaleItemRequest línea del body para POST /api/sales.
type SaleItemRequest struct {
	ProductID int64           `json:"product_id" validate:"required"`
	Quantity  int64           `json:"quantity" validate:"required,gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Discount  decimal.Decimal `json:"discount"`
	Tax       decimal.Decimal `json:"tax"`
}

// CreateSaleRequest body para POST /api/sales. El vendedor viene por
// exactamente uno de seller_id o seller_co_user_id; si no viene ninguno se
// asume el usuario autenticado.
type CreateSaleRequest struct {
	SaleNo           string            `json:"sale_no" validate:"required,max=12"`
	SellerID         int64             `json:"seller_id"`
	SellerCoUserID   string            `json:"seller_co_user_id"`
	CurrencyID       int64             `json:"currency_id" validate:"required"`
	InventoryPointID int64             `json:"inventory_point_id" validate:"required"`
	Items            []SaleItemRequest `json:"items" validate:"required,min=1"`
}

// SaleItemResponse línea de venta en respuestas.
type SaleItemResponse struct {
	ID         int64           `json:"id"`
	ProductID  int64           `json:"product_id"`
	Quantity   int64           `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Discount   decimal.Decimal `json:"discount"`
	Tax        decimal.Decimal `json:"tax"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// SaleResponse salida de una venta.
type SaleResponse struct {
	ID               int64              `json:"id"`
	SaleNo           string             `json:"sale_no"`
	SellerID         int64              `json:"seller_id"`
	CurrencyID       int64              `json:"currency_id"`
	InventoryPointID int64              `json:"inventory_point_id"`
	TotalQuantity    int64              `json:"total_quantity"`
	TotalAmount      decimal.Decimal    `json:"total_amount"`
	TotalDiscount    decimal.Decimal    `json:"total_discount"`
	TotalTax         decimal.Decimal    `json:"total_tax"`
	NetAmount        decimal.Decimal    `json:"net_amount"`
	GrandTotal       decimal.Decimal    `json:"grand_total"`
	CreatedAt        time.Time          `json:"created_at"`
	Items            []SaleItemResponse `json:"items,omitempty"`
}

// NewSaleResponse mapea la entidad a su representación HTTP.
func NewSaleResponse(s *entity.Sale) SaleResponse {
	items := make([]SaleItemResponse, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, SaleItemResponse{
			ID:         it.ID,
			ProductID:  it.ProductID,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			Discount:   it.Discount,
			Tax:        it.Tax,
			TotalPrice: it.TotalPrice,
		})
	}
	return SaleResponse{
		ID:               s.ID,
		SaleNo:           s.SaleNo,
		SellerID:         s.SellerID,
		CurrencyID:       s.CurrencyID,
		InventoryPointID: s.InventoryPointID,
		TotalQuantity:    s.TotalQuantity,
		TotalAmount:      s.TotalAmount,
		TotalDiscount:    s.TotalDiscount,
		TotalTax:         s.TotalTax,
		NetAmount:        s.NetAmount,
		GrandTotal:       s.GrandTotal,
		CreatedAt:        s.CreatedAt,
		Items:            items,
	}
}

// TransferItemRequest línea del body para POST /api/transfers.
type TransferItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required"`
	Quantity  int64 `json:"quantity" validate:"required,gt=0"`
}

// CreateTransferRequest body para POST /api/transfers.
type CreateTransferRequest struct {
	FromPointID    int64                 `json:"from_point_id" validate:"required"`
	ToPointID      int64                 `json:"to_point_id" validate:"required"`
	AssignedUserID int64                 `json:"assigned_user_id"`
	Note           string                `json:"note"`
	Items          []TransferItemRequest `json:"items" validate:"required,min=1"`
}

// SignTransferRequest body para POST /api/transfers/:id/sign.
type SignTransferRequest struct {
	SignatureData string `json:"signature_data" validate:"required"`
}

// TransferItemResponse línea de traslado en respuestas.
type TransferItemResponse struct {
	ID        int64 `json:"id"`
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

// TransferResponse salida de un traslado.
type TransferResponse struct {
	ID             int64                  `json:"id"`
	FromPointID    int64                  `json:"from_point_id"`
	ToPointID      int64                  `json:"to_point_id"`
	AssignedUserID int64                  `json:"assigned_user_id,omitempty"`
	CreatedBy      string                 `json:"created_by"`
	Note           string                 `json:"note,omitempty"`
	Status         string                 `json:"status"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
	Items          []TransferItemResponse `json:"items,omitempty"`
}

// NewTransferResponse mapea la entidad a su representación HTTP.
func NewTransferResponse(t *entity.Transfer) TransferResponse {
	items := make([]TransferItemResponse, 0, len(t.Items))
	for _, it := range t.Items {
		items = append(items, TransferItemResponse{ID: it.ID, ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return TransferResponse{
		ID:             t.ID,
		FromPointID:    t.FromPointID,
		ToPointID:      t.ToPointID,
		AssignedUserID: t.AssignedUserID,
		CreatedBy:      t.CreatedBy,
		Note:           t.Note,
		Status:         t.Status,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
		Items:          items,
	}
}

// RegisterAdjustmentRequest body para POST /api/stock/adjustments.
type RegisterAdjustmentRequest struct {
	ProductID        int64  `json:"product_id" validate:"required"`
	InventoryPointID int64  `json:"inventory_point_id" validate:"required"`
	ChangeType       string `json:"change_type" validate:"required,oneof=ADJUSTMENT RETURN"`
	QuantityChange   int64  `json:"quantity_change" validate:"required"`
	ReferenceID      *int64 `json:"reference_id"`
}

// StockMovementResponse asiento del libro en respuestas.
type StockMovementResponse struct {
	ID               int64     `json:"id"`
	TransactionID    string    `json:"transaction_id"`
	ProductID        int64     `json:"product_id"`
	InventoryPointID int64     `json:"inventory_point_id"`
	ChangeType       string    `json:"change_type"`
	QuantityChange   int64     `json:"quantity_change"`
	ResultingStock   int64     `json:"resulting_stock"`
	ReferenceID      *int64    `json:"reference_id,omitempty"`
	CreatedBy        string    `json:"created_by"`
	CreatedAt        time.Time `json:"created_at"`
}

// NewStockMovementResponse mapea el asiento a su representación HTTP.
func NewStockMovementResponse(m *entity.StockMovement) StockMovementResponse {
	return StockMovementResponse{
		ID:               m.ID,
		TransactionID:    m.TransactionID,
		ProductID:        m.ProductID,
		InventoryPointID: m.InventoryPointID,
		ChangeType:       m.ChangeType,
		QuantityChange:   m.QuantityChange,
		ResultingStock:   m.ResultingStock,
		ReferenceID:      m.ReferenceID,
		CreatedBy:        m.CreatedBy,
		CreatedAt:        m.CreatedAt,
	}
}

// InventoryStockResponse saldo materializado por producto+punto.
type InventoryStockResponse struct {
	ProductID        int64     `json:"product_id"`
	InventoryPointID int64     `json:"inventory_point_id"`
	Quantity         int64     `json:"quantity"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// NewInventoryStockResponse mapea el saldo a su representación HTTP.
func NewInventoryStockResponse(s *entity.InventoryStock) InventoryStockResponse {
	return InventoryStockResponse{
		ProductID:        s.ProductID,
		InventoryPointID: s.InventoryPointID,
		Quantity:         s.Quantity,
		UpdatedAt:        s.UpdatedAt,
	}
}
