package ports

import (
	"context"

	"github.com/jhoicas/Inventario-ledger/internal/domain/repository"
)

// Repos agrupa los repositorios atados a una misma transacción.
// Se pasa explícitamente a cada llamada del ledger; no hay estado global de conexión.
type Repos struct {
	Products    repository.ProductRepository
	Movements   repository.InventoryMovementRepository
	MoneyBoxes  repository.MoneyBoxRepository
	MoneyBoxTxs repository.MoneyBoxTransactionRepository
	Parties     repository.PartyRepository
	Orders      repository.OrderRepository
	Returns     repository.ReturnRepository
}

// TxRunner ejecuta fn dentro de una única transacción serializable.
// Commit si fn devuelve nil; Rollback completo ante cualquier error.
// Read ejecuta fn sobre el último estado confirmado, sin bloquear ni ser bloqueado por escritores;
// las escrituras hechas dentro de Read nunca se confirman.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos Repos) error) error
	Read(ctx context.Context, fn func(repos Repos) error) error
}
