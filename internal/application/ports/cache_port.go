package ports

import "context"

// Family identifica una familia de vistas de lectura cacheadas.
type Family string

const (
	FamilyProducts   Family = "products"
	FamilyMovements  Family = "inventory_movements"
	FamilyMoneyBoxes Family = "money_boxes"
	FamilyParties    Family = "parties"
	FamilyOrders     Family = "orders"
	FamilyReturns    Family = "returns"
)

// CacheInvalidator invalida las vistas cacheadas de las familias indicadas.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, families ...Family) error
}

// ReadCache almacena vistas de lectura con TTL, indexadas por familia.
type ReadCache interface {
	Get(ctx context.Context, family Family, key string, dest any) (bool, error)
	Set(ctx context.Context, family Family, key string, value any) error
}
