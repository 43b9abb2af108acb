package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderLineRequest línea de compra o venta. ProductID vacío = línea fuera de catálogo (servicio, cargo libre).
type OrderLineRequest struct {
	ProductID   string          `json:"product_id,omitempty"`
	Description string          `json:"description,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

// OrderRequest body para POST /api/purchases y POST /api/sales.
type OrderRequest struct {
	PartyID       string             `json:"party_id" validate:"required"`
	InvoiceNumber string             `json:"invoice_number,omitempty"`
	Items         []OrderLineRequest `json:"items" validate:"required,min=1,dive"`
	Discount      decimal.Decimal    `json:"discount"`
	PaidAmount    decimal.Decimal    `json:"paid_amount"`
	MoneyBoxID    string             `json:"money_box_id,omitempty"`
	Notes         string             `json:"notes,omitempty"`
}

// OrderLineResponse línea persistida.
type OrderLineResponse struct {
	ID               string          `json:"id"`
	ProductID        string          `json:"product_id,omitempty"`
	Description      string          `json:"description,omitempty"`
	Quantity         decimal.Decimal `json:"quantity"`
	Price            decimal.Decimal `json:"price"`
	ReturnedQuantity decimal.Decimal `json:"returned_quantity"`
}

// OrderResponse orden creada.
type OrderResponse struct {
	ID            string              `json:"id"`
	Kind          string              `json:"kind"`
	PartyID       string              `json:"party_id"`
	InvoiceNumber string              `json:"invoice_number,omitempty"`
	Total         decimal.Decimal     `json:"total"`
	Discount      decimal.Decimal     `json:"discount"`
	NetAmount     decimal.Decimal     `json:"net_amount"`
	PaidAmount    decimal.Decimal     `json:"paid_amount"`
	Status        string              `json:"status"`
	MoneyBoxID    string              `json:"money_box_id,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
	Items         []OrderLineResponse `json:"items"`
}

// CreditStatusResponse estado de crédito del tercero tras la operación.
type CreditStatusResponse struct {
	CurrentBalance  decimal.Decimal  `json:"current_balance"`
	Prospective     decimal.Decimal  `json:"prospective"`
	NewBalance      decimal.Decimal  `json:"new_balance"`
	CreditLimit     *decimal.Decimal `json:"credit_limit"`
	AvailableCredit *decimal.Decimal `json:"available_credit"`
	Exceeded        bool             `json:"exceeded"`
}

// OrderResultResponse respuesta de compra/venta.
type OrderResultResponse struct {
	Order    OrderResponse         `json:"order"`
	Credit   *CreditStatusResponse `json:"credit,omitempty"`
	Warnings []WarningResponse     `json:"warnings"`
}
