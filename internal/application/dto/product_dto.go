package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	SKU           string          `json:"sku" validate:"required,max=64"`
	Name          string          `json:"name" validate:"required,max=200"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	MinStock      decimal.Decimal `json:"min_stock"`
	MaxStock      decimal.Decimal `json:"max_stock"`
	OpeningStock  decimal.Decimal `json:"opening_stock"`
}

// ProductResponse producto con sus agregados.
type ProductResponse struct {
	ID             string          `json:"id"`
	SKU            string          `json:"sku"`
	Name           string          `json:"name"`
	CurrentStock   decimal.Decimal `json:"current_stock"`
	TotalSold      decimal.Decimal `json:"total_sold"`
	TotalPurchased decimal.Decimal `json:"total_purchased"`
	AverageCost    decimal.Decimal `json:"average_cost"`
	PurchasePrice  decimal.Decimal `json:"purchase_price"`
	SalePrice      decimal.Decimal `json:"sale_price"`
	MinStock       decimal.Decimal `json:"min_stock"`
	MaxStock       decimal.Decimal `json:"max_stock"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// MovementsPage listado paginado de movimientos de un producto.
type MovementsPage struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
