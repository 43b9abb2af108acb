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

func TestApply_RetiroExactoDejaCero(t *testing.T) {
	app, err := moneybox.Apply("b1", "Diaria", decimal.NewFromInt(100), moneybox.Withdrawal, decimal.NewFromInt(100))
	require.NoError(t, err)
	assert.True(t, app.NewBalance.IsZero())
	assert.True(t, app.Signed.Equal(decimal.NewFromInt(-100)))
}

func TestApply_RetiroMayorFalla(t *testing.T) {
	_, err := moneybox.Apply("b1", "Diaria", decimal.NewFromInt(100), moneybox.Withdrawal, decimal.NewFromInt(101))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientFunds))

	var insufficient *domain.InsufficientFundsError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, "Diaria", insufficient.BoxName)
	assert.True(t, insufficient.Available.Equal(decimal.NewFromInt(100)))
	assert.True(t, insufficient.Required.Equal(decimal.NewFromInt(101)))
}

func TestApply_CreditoSuma(t *testing.T) {
	app, err := moneybox.Apply("b1", "Diaria", decimal.NewFromInt(5), moneybox.SaleIncome, decimal.NewFromInt(7))
	require.NoError(t, err)
	assert.True(t, app.NewBalance.Equal(decimal.NewFromInt(12)))
	assert.True(t, app.Signed.Equal(decimal.NewFromInt(7)))
}

func TestApply_MontoNoPositivo(t *testing.T) {
	for _, amount := range []int64{0, -5} {
		_, err := moneybox.Apply("b1", "Diaria", decimal.NewFromInt(10), moneybox.Deposit, decimal.NewFromInt(amount))
		assert.True(t, errors.Is(err, domain.ErrValidation))
	}
}

func TestApply_RechazaMasDeDosDecimales(t *testing.T) {
	_, err := moneybox.Apply("b1", "Diaria", decimal.NewFromInt(10), moneybox.Deposit, decimal.RequireFromString("0.005"))
	assert.True(t, errors.Is(err, domain.ErrValidation))

	// Ceros a la derecha no cuentan como decimales extra
	app, err := moneybox.Apply("b1", "Diaria", decimal.NewFromInt(10), moneybox.Deposit, decimal.RequireFromString("1.2500"))
	require.NoError(t, err)
	assert.True(t, app.NewBalance.Equal(decimal.RequireFromString("11.25")))
}
