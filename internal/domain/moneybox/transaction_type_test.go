package moneybox_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-ledger/internal/domain"
	"github.com/jhoicas/Inventario-ledger/internal/domain/moneybox"
)

func TestEffect_TodosLosTiposTienenSigno(t *testing.T) {
	credits := map[moneybox.TransactionType]bool{
		moneybox.Deposit:              true,
		moneybox.SaleIncome:           true,
		moneybox.CustomerPayment:      true,
		moneybox.PurchaseReturnRefund: true,
		moneybox.TransferIn:           true,
		moneybox.AdjustmentIn:         true,
	}
	for _, tt := range moneybox.All() {
		e, err := tt.Effect()
		require.NoError(t, err, tt.String())
		if credits[tt] {
			assert.Equal(t, moneybox.Credit, e, tt.String())
		} else {
			assert.Equal(t, moneybox.Debit, e, tt.String())
		}
	}
}

func TestParseTransactionType(t *testing.T) {
	for _, tt := range moneybox.All() {
		got, err := moneybox.ParseTransactionType(tt.String())
		require.NoError(t, err)
		assert.Equal(t, tt, got)
	}

	_, err := moneybox.ParseTransactionType("refund")
	assert.True(t, errors.Is(err, domain.ErrInvalidTransactionType))
}

func TestEffect_ValorCeroInvalido(t *testing.T) {
	var zero moneybox.TransactionType
	assert.True(t, zero.IsZero())

	_, err := zero.Effect()
	assert.True(t, errors.Is(err, domain.ErrInvalidTransactionType))

	_, err = moneybox.Apply("b", "Caja", decimal.NewFromInt(10), zero, decimal.NewFromInt(1))
	assert.True(t, errors.Is(err, domain.ErrInvalidTransactionType))
}

func TestUnmarshalText(t *testing.T) {
	var tt moneybox.TransactionType
	require.NoError(t, tt.UnmarshalText([]byte("withdrawal")))
	assert.Equal(t, moneybox.Withdrawal, tt)
	assert.True(t, tt.IsDebit())

	assert.Error(t, tt.UnmarshalText([]byte("nada")))
}
