package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockAdjustmentRequest body para POST /api/inventory/adjustments.
type StockAdjustmentRequest struct {
	ProductID string           `json:"product_id" validate:"required"`
	Quantity  decimal.Decimal  `json:"quantity"` // con signo
	UnitCost  *decimal.Decimal `json:"unit_cost,omitempty"`
	Notes     string           `json:"notes,omitempty"`
}

// MovementResponse movimiento de inventario escrito.
type MovementResponse struct {
	ID            string          `json:"id"`
	ProductID     string          `json:"product_id"`
	Type          string          `json:"type"`
	Quantity      decimal.Decimal `json:"quantity"`
	PreviousStock decimal.Decimal `json:"previous_stock"`
	NewStock      decimal.Decimal `json:"new_stock"`
	ReferenceType string          `json:"reference_type"`
	ReferenceID   string          `json:"reference_id"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	CreatedBy     string          `json:"created_by,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// WarningResponse advertencia no bloqueante.
type WarningResponse struct {
	Code      string           `json:"code"`
	Message   string           `json:"message"`
	PartyID   string           `json:"party_id,omitempty"`
	ProductID string           `json:"product_id,omitempty"`
	Excess    *decimal.Decimal `json:"excess,omitempty"`
}

// AdjustmentResponse respuesta de un ajuste.
type AdjustmentResponse struct {
	Movement MovementResponse  `json:"movement"`
	Warnings []WarningResponse `json:"warnings"`
}
