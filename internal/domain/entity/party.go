package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de tercero.
const (
	PartyCustomer = "customer"
	PartySupplier = "supplier"
)

// Party es un cliente o proveedor. Balance es el saldo pendiente con el tercero.
// CreditLimit nil significa crédito ilimitado.
type Party struct {
	ID          string
	Kind        string
	Name        string
	Balance     decimal.Decimal
	CreditLimit *decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
