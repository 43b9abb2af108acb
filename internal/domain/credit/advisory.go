// Package credit calcula advertencias de límite de crédito. Nunca rechaza una operación.
package credit

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
)

// Status estado de crédito del tercero antes y después de la operación.
type Status struct {
	CurrentBalance  decimal.Decimal  `json:"current_balance"`
	Prospective     decimal.Decimal  `json:"prospective_amount"`
	NewBalance      decimal.Decimal  `json:"new_balance"`
	CreditLimit     *decimal.Decimal `json:"credit_limit"`
	AvailableCredit *decimal.Decimal `json:"available_credit"`
	Exceeded        bool             `json:"exceeded"`
}

// Check evalúa el saldo prospectivo contra el límite de crédito del tercero.
// newBalance = balance + prospective. Sin límite siempre emite UNLIMITED (informativo).
func Check(party entity.Party, prospective decimal.Decimal) (Status, []entity.Warning) {
	newBalance := party.Balance.Add(prospective)
	st := Status{
		CurrentBalance: party.Balance,
		Prospective:    prospective,
		NewBalance:     newBalance,
		CreditLimit:    party.CreditLimit,
	}

	if party.CreditLimit == nil {
		return st, []entity.Warning{{
			Code:    entity.WarningCreditUnlimited,
			Message: fmt.Sprintf("%s no tiene límite de crédito configurado", party.Name),
			PartyID: party.ID,
		}}
	}

	limit := *party.CreditLimit
	available := limit.Sub(newBalance)
	st.AvailableCredit = &available
	if newBalance.GreaterThan(limit) {
		excess := newBalance.Sub(limit)
		st.Exceeded = true
		return st, []entity.Warning{{
			Code: entity.WarningCreditExceeded,
			Message: fmt.Sprintf("%s excede su límite de crédito (%s) en %s",
				party.Name, limit.StringFixed(2), excess.StringFixed(2)),
			PartyID: party.ID,
			Excess:  excess,
		}}
	}
	return st, nil
}
