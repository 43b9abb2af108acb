package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateMoneyBoxRequest body para POST /api/money-boxes.
type CreateMoneyBoxRequest struct {
	Name           string          `json:"name" validate:"required"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
}

// MoneyBoxTransactionRequest body para POST /api/money-boxes/:id/transactions.
type MoneyBoxTransactionRequest struct {
	Type          string          `json:"type" validate:"required"`
	Amount        decimal.Decimal `json:"amount"`
	RelatedBoxID  string          `json:"related_box_id,omitempty"`
	ReferenceType string          `json:"reference_type,omitempty"`
	ReferenceID   string          `json:"reference_id,omitempty"`
	Notes         string          `json:"notes,omitempty"`
}

// TransferRequest body para POST /api/money-boxes/transfers.
type TransferRequest struct {
	FromBoxID string          `json:"from_box_id" validate:"required"`
	ToBoxID   string          `json:"to_box_id" validate:"required"`
	Amount    decimal.Decimal `json:"amount"`
	Notes     string          `json:"notes,omitempty"`
}

// MoneyBoxResponse caja con saldo.
type MoneyBoxResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// MoneyBoxTransactionResponse transacción de caja.
type MoneyBoxTransactionResponse struct {
	ID            string          `json:"id"`
	BoxID         string          `json:"box_id"`
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	BalanceAfter  decimal.Decimal `json:"balance_after"`
	RelatedBoxID  string          `json:"related_box_id,omitempty"`
	ReferenceType string          `json:"reference_type,omitempty"`
	ReferenceID   string          `json:"reference_id,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	CreatedBy     string          `json:"created_by,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// RecordTransactionResponse resultado de registrar una transacción.
type RecordTransactionResponse struct {
	TransactionID string          `json:"transaction_id"`
	NewBalance    decimal.Decimal `json:"new_balance"`
}

// TransferResponse saldos finales de ambas cajas.
type TransferResponse struct {
	FromBox MoneyBoxResponse `json:"from_box"`
	ToBox   MoneyBoxResponse `json:"to_box"`
}

// MoneyBoxTransactionsPage listado paginado.
type MoneyBoxTransactionsPage struct {
	Items []MoneyBoxTransactionResponse `json:"items"`
	Page  PageResponse                  `json:"page"`
}

// MoneyBoxesList todas las cajas, por nombre.
type MoneyBoxesList struct {
	Items []MoneyBoxResponse `json:"items"`
}
