package returns

import (
	"context"

	"github.com/jhoicas/Inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/Inventario-ledger/internal/application/moneybox"
	"github.com/jhoicas/Inventario-ledger/internal/application/ports"
)

// StockRecorder registra la reversa de stock dentro de la transacción de la devolución.
type StockRecorder interface {
	Apply(ctx context.Context, repos ports.Repos, in inventory.ApplyInput) (*inventory.MovementResult, error)
}

// CashAccount registra el reembolso en caja dentro de la transacción de la devolución.
type CashAccount interface {
	RecordInTx(ctx context.Context, repos ports.Repos, in moneybox.RecordInput) (*moneybox.RecordResult, error)
}
