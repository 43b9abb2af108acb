package credit_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-ledger/internal/application/credit"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
)

// partyStub implementa repository.PartyRepository para el asesor.
type partyStub struct {
	party *entity.Party
	err   error
}

func (s *partyStub) Create(context.Context, *entity.Party) error { return nil }
func (s *partyStub) GetByID(context.Context, string) (*entity.Party, error) {
	return s.party, s.err
}
func (s *partyStub) GetForUpdate(ctx context.Context, id string) (*entity.Party, error) {
	return s.GetByID(ctx, id)
}
func (s *partyStub) UpdateBalance(context.Context, string, decimal.Decimal) error { return nil }

func TestAdvisor_ExcedeLimite(t *testing.T) {
	limit := decimal.NewFromInt(1000)
	repo := &partyStub{party: &entity.Party{ID: "s1", Name: "Proveedor", Balance: decimal.NewFromInt(900), CreditLimit: &limit}}

	st, ws := credit.NewAdvisor(zerolog.Nop()).Check(context.Background(), repo, "s1", decimal.NewFromInt(200))

	require.NotNil(t, st)
	assert.True(t, st.Exceeded)
	require.Len(t, ws, 1)
	assert.Equal(t, entity.WarningCreditExceeded, ws[0].Code)
	assert.True(t, ws[0].Excess.Equal(decimal.NewFromInt(100)))
}

func TestAdvisor_ErrorDeLecturaNoBloquea(t *testing.T) {
	var buf bytes.Buffer
	advisor := credit.NewAdvisor(zerolog.New(&buf))

	st, ws := advisor.Check(context.Background(), &partyStub{err: errors.New("timeout")}, "s1", decimal.NewFromInt(10))
	assert.Nil(t, st)
	assert.Empty(t, ws)
	assert.Contains(t, buf.String(), "timeout")

	st, ws = advisor.Check(context.Background(), &partyStub{}, "s1", decimal.NewFromInt(10))
	assert.Nil(t, st)
	assert.Empty(t, ws)
}
