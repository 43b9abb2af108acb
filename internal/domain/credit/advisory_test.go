package credit_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-ledger/internal/domain/credit"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
)

func limit(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

// Escenario E: límite 1000, saldo 900, compra 200.
func TestCheck_ExcedeLimite(t *testing.T) {
	party := entity.Party{ID: "s1", Name: "Proveedor", Balance: decimal.NewFromInt(900), CreditLimit: limit(1000)}

	st, ws := credit.Check(party, decimal.NewFromInt(200))

	assert.True(t, st.Exceeded)
	assert.True(t, st.NewBalance.Equal(decimal.NewFromInt(1100)))
	require.Len(t, ws, 1)
	assert.Equal(t, entity.WarningCreditExceeded, ws[0].Code)
	assert.True(t, ws[0].Excess.Equal(decimal.NewFromInt(100)))
	require.NotNil(t, st.AvailableCredit)
	assert.True(t, st.AvailableCredit.Equal(decimal.NewFromInt(-100)))
}

func TestCheck_DentroDelLimite(t *testing.T) {
	party := entity.Party{ID: "s1", Balance: decimal.NewFromInt(100), CreditLimit: limit(1000)}

	st, ws := credit.Check(party, decimal.NewFromInt(900))

	assert.False(t, st.Exceeded, "igualar el límite no lo excede")
	assert.Empty(t, ws)
}

func TestCheck_SinLimiteSiempreAdvierte(t *testing.T) {
	party := entity.Party{ID: "c1", Balance: decimal.Zero}

	st, ws := credit.Check(party, decimal.Zero)

	assert.False(t, st.Exceeded)
	assert.Nil(t, st.AvailableCredit)
	require.Len(t, ws, 1)
	assert.Equal(t, entity.WarningCreditUnlimited, ws[0].Code)
}
