package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePartyRequest body para POST /api/parties. Sin credit_limit el crédito es ilimitado.
type CreatePartyRequest struct {
	Kind        string           `json:"kind" validate:"required,oneof=customer supplier"`
	Name        string           `json:"name" validate:"required,max=200"`
	CreditLimit *decimal.Decimal `json:"credit_limit,omitempty"`
}

// PartyResponse tercero con saldo y estado de crédito.
type PartyResponse struct {
	ID          string                `json:"id"`
	Kind        string                `json:"kind"`
	Name        string                `json:"name"`
	Balance     decimal.Decimal       `json:"balance"`
	CreditLimit *decimal.Decimal      `json:"credit_limit"`
	Credit      *CreditStatusResponse `json:"credit,omitempty"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
}
