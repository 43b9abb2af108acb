package moneybox

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-ledger/internal/domain"
)

// Application es el resultado de aplicar una transacción a un saldo.
type Application struct {
	Signed     decimal.Decimal // monto con signo que se persiste en la transacción
	NewBalance decimal.Decimal
}

// Apply calcula el nuevo saldo de la caja. amount debe ser positivo; el signo lo define el tipo.
// Un débito que deje el saldo en negativo devuelve *domain.InsufficientFundsError.
func Apply(boxID, boxName string, balance decimal.Decimal, t TransactionType, amount decimal.Decimal) (Application, error) {
	effect, err := t.Effect()
	if err != nil {
		return Application{}, err
	}
	if !amount.GreaterThan(decimal.Zero) {
		return Application{}, domain.Validation("el monto debe ser mayor que cero")
	}
	if err := domain.CheckMoney("el monto", amount); err != nil {
		return Application{}, err
	}
	if effect == Debit {
		if balance.Sub(amount).IsNegative() {
			return Application{}, &domain.InsufficientFundsError{
				BoxID:     boxID,
				BoxName:   boxName,
				Available: balance,
				Required:  amount,
			}
		}
		return Application{Signed: amount.Neg(), NewBalance: balance.Sub(amount)}, nil
	}
	return Application{Signed: amount, NewBalance: balance.Add(amount)}, nil
}
