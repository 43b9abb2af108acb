package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de reembolso de una devolución.
const (
	RefundCash    = "cash"    // movimiento en caja
	RefundBalance = "balance" // ajuste del saldo del tercero
	RefundNone    = "none"    // solo reversa de stock
)

// Return cabecera de devolución sobre una orden.
type Return struct {
	ID           string
	OrderID      string
	OrderKind    OrderKind
	Reason       string
	RefundMethod string
	MoneyBoxID   string
	TotalAmount  decimal.Decimal
	CashRefunded decimal.Decimal // parte del total que movió dinero en caja
	CreatedBy    string
	CreatedAt    time.Time
	Items        []ReturnItem
}

// ReturnItem línea de devolución, referencia la línea original.
// Total es el valor con el descuento de la orden prorrateado.
type ReturnItem struct {
	ID              string
	ReturnID        string
	OrderLineItemID string
	ProductID       *string
	Quantity        decimal.Decimal
	Price           decimal.Decimal
	Total           decimal.Decimal
}
