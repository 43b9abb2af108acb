package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
)

// MoneyBoxRepository define el puerto de persistencia para cajas.
type MoneyBoxRepository interface {
	Create(ctx context.Context, box *entity.MoneyBox) error
	GetByID(ctx context.Context, id string) (*entity.MoneyBox, error)
	GetForUpdate(ctx context.Context, id string) (*entity.MoneyBox, error)
	UpdateBalance(ctx context.Context, id string, balance decimal.Decimal) error
	List(ctx context.Context) ([]*entity.MoneyBox, error)
}

// MoneyBoxTransactionRepository define el puerto del libro de transacciones de caja (solo inserción).
type MoneyBoxTransactionRepository interface {
	Create(ctx context.Context, tx *entity.MoneyBoxTransaction) error
	ListByBox(ctx context.Context, boxID string, limit, offset int) ([]*entity.MoneyBoxTransaction, error)
	// SumByBox suma los montos con signo de una caja (verificación de invariantes).
	SumByBox(ctx context.Context, boxID string) (decimal.Decimal, error)
}
