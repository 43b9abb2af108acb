package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderKind distingue compras de ventas.
type OrderKind string

const (
	OrderPurchase OrderKind = "purchase"
	OrderSale     OrderKind = "sale"
)

// OrderStatus estado de la cabecera.
type OrderStatus string

const (
	OrderCompleted         OrderStatus = "completed"
	OrderPartiallyReturned OrderStatus = "partially_returned"
	OrderReturned          OrderStatus = "returned"
	OrderCancelled         OrderStatus = "cancelled"
)

// Order cabecera de compra o venta.
type Order struct {
	ID            string
	Kind          OrderKind
	PartyID       string
	InvoiceNumber string
	Total         decimal.Decimal
	Discount      decimal.Decimal
	NetAmount     decimal.Decimal
	PaidAmount    decimal.Decimal
	Status        OrderStatus
	MoneyBoxID    string
	Notes         string
	CreatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Items         []OrderLineItem
}

// Remaining es el saldo por pagar/cobrar de la orden.
func (o *Order) Remaining() decimal.Decimal {
	return o.NetAmount.Sub(o.PaidAmount)
}

// OrderLineItem línea de una orden. ProductID nil o vacío = línea manual fuera de catálogo.
// Invariante: ReturnedQuantity <= Quantity.
type OrderLineItem struct {
	ID               string
	OrderID          string
	ProductID        *string
	Description      string
	Quantity         decimal.Decimal
	Price            decimal.Decimal
	ReturnedQuantity decimal.Decimal
}

// Returnable devuelve la cantidad aún disponible para devolución.
func (l *OrderLineItem) Returnable() decimal.Decimal {
	return l.Quantity.Sub(l.ReturnedQuantity)
}

// Subtotal cantidad por precio.
func (l *OrderLineItem) Subtotal() decimal.Decimal {
	return l.Quantity.Mul(l.Price)
}
