package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
)

// PartyRepository define el puerto de persistencia para clientes y proveedores.
type PartyRepository interface {
	Create(ctx context.Context, party *entity.Party) error
	GetByID(ctx context.Context, id string) (*entity.Party, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Party, error)
	UpdateBalance(ctx context.Context, id string, balance decimal.Decimal) error
}
