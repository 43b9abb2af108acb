package repository

import (
	"context"

	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID devuelve (nil, nil) si no existe, igual que el resto de repositorios.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	// UpdateAggregates persiste stock, totales y costo promedio. Solo lo usa el registrador de movimientos.
	UpdateAggregates(ctx context.Context, product *entity.Product) error
}
