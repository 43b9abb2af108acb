package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-ledger/internal/domain/moneybox"
)

// MoneyBox es una caja de efectivo con nombre. Balance está desnormalizado y se
// actualiza en cada transacción.
type MoneyBox struct {
	ID        string
	Name      string
	Balance   decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// MoneyBoxTransaction es inmutable. Las correcciones son nuevas transacciones compensatorias.
// Una transferencia genera exactamente dos filas que se referencian mutuamente vía RelatedBoxID.
type MoneyBoxTransaction struct {
	ID            string
	BoxID         string
	Type          moneybox.TransactionType
	Amount        decimal.Decimal // con signo
	BalanceAfter  decimal.Decimal // snapshot calculado al insertar
	RelatedBoxID  *string
	ReferenceType string
	ReferenceID   string
	Notes         string
	CreatedBy     string
	CreatedAt     time.Time
}
