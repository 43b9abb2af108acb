package entity

import "github.com/shopspring/decimal"

// Códigos de advertencia. Las advertencias viajan en el resultado exitoso; nunca son errores.
const (
	WarningCreditExceeded    = "EXCEEDED"
	WarningCreditUnlimited   = "UNLIMITED"
	WarningStockBelowMinimum = "STOCK_BELOW_MINIMUM"
	WarningStockNegative     = "STOCK_NEGATIVE"
)

// Warning advertencia no bloqueante.
type Warning struct {
	Code      string          `json:"code"`
	Message   string          `json:"message"`
	PartyID   string          `json:"party_id,omitempty"`
	ProductID string          `json:"product_id,omitempty"`
	Excess    decimal.Decimal `json:"excess"`
}
