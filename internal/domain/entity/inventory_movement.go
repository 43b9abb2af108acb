package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType tipo de movimiento de inventario.
type MovementType string

const (
	MovementPurchase       MovementType = "purchase"
	MovementSale           MovementType = "sale"
	MovementSaleReturn     MovementType = "sale_return"
	MovementPurchaseReturn MovementType = "purchase_return"
	MovementAdjustment     MovementType = "adjustment"
)

// Valid indica si el tipo es uno de los conocidos.
func (t MovementType) Valid() bool {
	switch t {
	case MovementPurchase, MovementSale, MovementSaleReturn, MovementPurchaseReturn, MovementAdjustment:
		return true
	}
	return false
}

// Tipos de documento que originan un movimiento.
const (
	ReferencePurchase   = "purchase"
	ReferenceSale       = "sale"
	ReferenceReturn     = "return"
	ReferenceAdjustment = "adjustment"
	ReferenceTransfer   = "transfer"
)

// Reference identifica el documento que origina un movimiento o transacción.
type Reference struct {
	Type string
	ID   string
}

// InventoryMovement es un registro inmutable de auditoría de un cambio de stock.
// Solo se inserta; nunca se actualiza ni se elimina.
type InventoryMovement struct {
	ID            string
	ProductID     string
	Type          MovementType
	Quantity      decimal.Decimal // con signo: positivo entrada, negativo salida
	PreviousStock decimal.Decimal
	NewStock      decimal.Decimal
	ReferenceType string
	ReferenceID   string
	UnitCost      decimal.Decimal
	Notes         string
	CreatedBy     string // vacío = sin actor
	CreatedAt     time.Time
}
