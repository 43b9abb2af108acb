package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReturnLineRequest línea a devolver.
type ReturnLineRequest struct {
	LineItemID string          `json:"line_item_id" validate:"required"`
	Quantity   decimal.Decimal `json:"quantity"`
}

// ReturnRequest body para POST /api/orders/:id/returns.
type ReturnRequest struct {
	Lines        []ReturnLineRequest `json:"lines" validate:"required,min=1,dive"`
	Reason       string              `json:"reason,omitempty"`
	RefundMethod string              `json:"refund_method,omitempty" validate:"omitempty,oneof=cash balance none"`
	MoneyBoxID   string              `json:"money_box_id,omitempty"`
}

// ReturnResponse resultado de la devolución.
type ReturnResponse struct {
	ReturnID       string            `json:"return_id"`
	TotalAmount    decimal.Decimal   `json:"total_amount"`
	CashRefunded   decimal.Decimal   `json:"cash_refunded"`
	NewOrderStatus string            `json:"new_order_status"`
	Warnings       []WarningResponse `json:"warnings"`
}

// ReturnItemResponse línea devuelta; total con el descuento de la orden prorrateado.
type ReturnItemResponse struct {
	ID              string          `json:"id"`
	OrderLineItemID string          `json:"order_line_item_id"`
	ProductID       string          `json:"product_id,omitempty"`
	Quantity        decimal.Decimal `json:"quantity"`
	Price           decimal.Decimal `json:"price"`
	Total           decimal.Decimal `json:"total"`
}

// ReturnDetailResponse devolución registrada.
type ReturnDetailResponse struct {
	ID           string               `json:"id"`
	OrderID      string               `json:"order_id"`
	OrderKind    string               `json:"order_kind"`
	Reason       string               `json:"reason,omitempty"`
	RefundMethod string               `json:"refund_method"`
	MoneyBoxID   string               `json:"money_box_id,omitempty"`
	TotalAmount  decimal.Decimal      `json:"total_amount"`
	CashRefunded decimal.Decimal      `json:"cash_refunded"`
	CreatedBy    string               `json:"created_by,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
	Items        []ReturnItemResponse `json:"items"`
}

// ReturnsList devoluciones de una orden en orden de registro.
type ReturnsList struct {
	Items []ReturnDetailResponse `json:"items"`
}
