// Package moneybox define los tipos de transacción de caja y su efecto sobre el saldo.
package moneybox

import (
	"fmt"

	"github.com/jhoicas/Inventario-ledger/internal/domain"
)

// Effect es el signo que un tipo de transacción aplica al saldo de la caja.
type Effect int8

const (
	Credit Effect = 1  // suma al saldo
	Debit  Effect = -1 // resta del saldo
)

// TransactionType es un conjunto cerrado: solo existen los valores declarados en este paquete.
// El valor cero no es válido.
type TransactionType struct {
	name string
}

var (
	Deposit              = TransactionType{"deposit"}
	SaleIncome           = TransactionType{"sale_income"}
	CustomerPayment      = TransactionType{"customer_payment"}
	PurchaseReturnRefund = TransactionType{"purchase_return_refund"}
	TransferIn           = TransactionType{"transfer_in"}
	AdjustmentIn         = TransactionType{"adjustment_in"}

	Withdrawal       = TransactionType{"withdrawal"}
	Expense          = TransactionType{"expense"}
	PurchasePayment  = TransactionType{"purchase_payment"}
	SupplierPayment  = TransactionType{"supplier_payment"}
	SaleReturnRefund = TransactionType{"sale_return_refund"}
	TransferOut      = TransactionType{"transfer_out"}
	AdjustmentOut    = TransactionType{"adjustment_out"}
)

// effects es la tabla explícita tipo -> signo. Todo tipo declarado arriba debe figurar aquí.
var effects = map[TransactionType]Effect{
	Deposit:              Credit,
	SaleIncome:           Credit,
	CustomerPayment:      Credit,
	PurchaseReturnRefund: Credit,
	TransferIn:           Credit,
	AdjustmentIn:         Credit,

	Withdrawal:       Debit,
	Expense:          Debit,
	PurchasePayment:  Debit,
	SupplierPayment:  Debit,
	SaleReturnRefund: Debit,
	TransferOut:      Debit,
	AdjustmentOut:    Debit,
}

// All devuelve todos los tipos válidos.
func All() []TransactionType {
	return []TransactionType{
		Deposit, SaleIncome, CustomerPayment, PurchaseReturnRefund, TransferIn, AdjustmentIn,
		Withdrawal, Expense, PurchasePayment, SupplierPayment, SaleReturnRefund, TransferOut, AdjustmentOut,
	}
}

// ParseTransactionType convierte el nombre externo en un tipo del conjunto cerrado.
func ParseTransactionType(s string) (TransactionType, error) {
	for _, t := range All() {
		if t.name == s {
			return t, nil
		}
	}
	return TransactionType{}, fmt.Errorf("%w: %q", domain.ErrInvalidTransactionType, s)
}

func (t TransactionType) String() string { return t.name }

// IsZero indica si t es el valor cero (no válido).
func (t TransactionType) IsZero() bool { return t.name == "" }

// Effect devuelve el signo del tipo según la tabla.
func (t TransactionType) Effect() (Effect, error) {
	e, ok := effects[t]
	if !ok {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidTransactionType, t.name)
	}
	return e, nil
}

// IsDebit indica si el tipo resta del saldo.
func (t TransactionType) IsDebit() bool {
	e, err := t.Effect()
	return err == nil && e == Debit
}

func (t TransactionType) MarshalText() ([]byte, error) {
	if t.IsZero() {
		return nil, fmt.Errorf("%w: valor vacío", domain.ErrInvalidTransactionType)
	}
	return []byte(t.name), nil
}

func (t *TransactionType) UnmarshalText(b []byte) error {
	parsed, err := ParseTransactionType(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
