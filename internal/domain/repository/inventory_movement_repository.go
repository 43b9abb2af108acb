package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
)

// InventoryMovementRepository define el puerto de persistencia para movimientos (solo inserción).
type InventoryMovementRepository interface {
	Create(ctx context.Context, movement *entity.InventoryMovement) error
	ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.InventoryMovement, error)
	ListByReference(ctx context.Context, referenceType, referenceID string) ([]*entity.InventoryMovement, error)
	// SumByProduct suma los deltas con signo de un producto (verificación de invariantes).
	SumByProduct(ctx context.Context, productID string) (decimal.Decimal, error)
}
