package repository

import (
	"context"

	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
)

// ReturnRepository define el puerto de persistencia para devoluciones.
type ReturnRepository interface {
	Create(ctx context.Context, ret *entity.Return) error
	CreateItem(ctx context.Context, item *entity.ReturnItem) error
	GetByID(ctx context.Context, id string) (*entity.Return, error)
	ListByOrder(ctx context.Context, orderID string) ([]*entity.Return, error)
}
