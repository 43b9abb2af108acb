package orders

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/Inventario-ledger/internal/application/moneybox"
	"github.com/jhoicas/Inventario-ledger/internal/application/ports"
	"github.com/jhoicas/Inventario-ledger/internal/domain/credit"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/Inventario-ledger/internal/domain/repository"
)

// StockRecorder registra movimientos de stock dentro de la transacción del llamador.
type StockRecorder interface {
	Apply(ctx context.Context, repos ports.Repos, in inventory.ApplyInput) (*inventory.MovementResult, error)
}

// CashAccount registra transacciones de caja dentro de la transacción del llamador.
type CashAccount interface {
	RecordInTx(ctx context.Context, repos ports.Repos, in moneybox.RecordInput) (*moneybox.RecordResult, error)
}

// CreditAdvisor evalúa el crédito del tercero sin bloquear.
type CreditAdvisor interface {
	Check(ctx context.Context, parties repository.PartyRepository, partyID string, prospective decimal.Decimal) (*credit.Status, []entity.Warning)
}
