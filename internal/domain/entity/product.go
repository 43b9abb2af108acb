package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo con sus agregados de inventario.
// CurrentStock, TotalSold, TotalPurchased y AverageCost solo se modifican a través del
// registrador de movimientos, en la misma transacción que escribe el movimiento.
type Product struct {
	ID             string
	SKU            string
	Name           string
	CurrentStock   decimal.Decimal
	TotalSold      decimal.Decimal
	TotalPurchased decimal.Decimal
	AverageCost    decimal.Decimal // costo promedio ponderado de compra
	PurchasePrice  decimal.Decimal
	SalePrice      decimal.Decimal
	MinStock       decimal.Decimal // cero = sin umbral
	MaxStock       decimal.Decimal // cero = sin umbral
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsCatalogProduct indica si una referencia de producto apunta al catálogo.
// Las líneas manuales (sin producto) nunca generan movimientos.
func IsCatalogProduct(productID *string) bool {
	return productID != nil && strings.TrimSpace(*productID) != ""
}
