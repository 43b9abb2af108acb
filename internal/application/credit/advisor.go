// Package credit consulta el límite de crédito del tercero antes de confirmar una compra o venta.
package credit

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-ledger/internal/domain/credit"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/Inventario-ledger/internal/domain/repository"
)

// Advisor evalúa el crédito. Nunca devuelve error ni bloquea la operación.
type Advisor struct {
	log zerolog.Logger
}

// NewAdvisor construye el asesor de crédito.
func NewAdvisor(log zerolog.Logger) *Advisor {
	return &Advisor{log: log}
}

// Check lee el tercero con el repositorio recibido (normalmente el de la transacción abierta)
// y devuelve el estado de crédito con sus advertencias. Si la lectura falla, se registra
// y se devuelve un estado vacío sin advertencias.
func (a *Advisor) Check(ctx context.Context, parties repository.PartyRepository, partyID string, prospective decimal.Decimal) (*credit.Status, []entity.Warning) {
	party, err := parties.GetByID(ctx, partyID)
	if err != nil {
		a.log.Warn().Err(err).Str("party_id", partyID).Msg("no se pudo evaluar el crédito del tercero")
		return nil, nil
	}
	if party == nil {
		a.log.Warn().Str("party_id", partyID).Msg("tercero no encontrado al evaluar crédito")
		return nil, nil
	}
	st, warnings := credit.Check(*party, prospective)
	if st.Exceeded {
		a.log.Info().
			Str("party_id", partyID).
			Str("new_balance", st.NewBalance.String()).
			Msg("límite de crédito excedido")
	}
	return &st, warnings
}
