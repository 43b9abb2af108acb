package moneybox_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-ledger/internal/application/cache"
	appmoneybox "github.com/jhoicas/Inventario-ledger/internal/application/moneybox"
	"github.com/jhoicas/Inventario-ledger/internal/application/ports"
	"github.com/jhoicas/Inventario-ledger/internal/domain"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/Inventario-ledger/internal/domain/moneybox"
	"github.com/jhoicas/Inventario-ledger/internal/infrastructure/memory"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newAccount(t *testing.T) (*appmoneybox.Account, *memory.Store) {
	t.Helper()
	store := memory.New()
	return appmoneybox.NewAccount(store, cache.NewGateway(nil, zerolog.Nop()), zerolog.Nop()), store
}

func mustBox(t *testing.T, acc *appmoneybox.Account, name, opening string) *entity.MoneyBox {
	t.Helper()
	box, err := acc.CreateBox(context.Background(), name, d(opening), "tester")
	require.NoError(t, err)
	return box
}

// balanceAndSum lee el saldo de la caja y la suma de su libro en la misma instantánea.
func balanceAndSum(t *testing.T, store *memory.Store, boxID string) (decimal.Decimal, decimal.Decimal) {
	t.Helper()
	ctx := context.Background()
	var balance, sum decimal.Decimal
	require.NoError(t, store.Read(ctx, func(repos ports.Repos) error {
		box, err := repos.MoneyBoxes.GetByID(ctx, boxID)
		if err != nil {
			return err
		}
		balance = box.Balance
		sum, err = repos.MoneyBoxTxs.SumByBox(ctx, boxID)
		return err
	}))
	return balance, sum
}

// ──────────────────────────────────────────────────────────────────────────────
// RecordTransaction
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateBox_SaldoInicialComoDeposito(t *testing.T) {
	acc, store := newAccount(t)
	box := mustBox(t, acc, "Diaria", "100")

	assert.True(t, box.Balance.Equal(d("100")))
	txs, err := acc.ListTransactions(context.Background(), box.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, moneybox.Deposit, txs[0].Type)

	balance, sum := balanceAndSum(t, store, box.ID)
	assert.True(t, balance.Equal(sum))
}

func TestCreateBox_Validaciones(t *testing.T) {
	acc, _ := newAccount(t)
	_, err := acc.CreateBox(context.Background(), "  ", decimal.Zero, "")
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	_, err = acc.CreateBox(context.Background(), "Caja", d("-1"), "")
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestRecordTransaction_RetiroExacto(t *testing.T) {
	acc, store := newAccount(t)
	box := mustBox(t, acc, "Diaria", "100")

	res, err := acc.RecordTransaction(context.Background(), appmoneybox.RecordInput{
		BoxID: box.ID, Type: moneybox.Withdrawal, Amount: d("100"), Actor: "cajero",
	})
	require.NoError(t, err)
	assert.True(t, res.NewBalance.IsZero())
	assert.NotEmpty(t, res.TransactionID)
	assert.True(t, res.Transaction.Amount.Equal(d("-100")))
	assert.True(t, res.Transaction.BalanceAfter.IsZero())

	balance, sum := balanceAndSum(t, store, box.ID)
	assert.True(t, balance.IsZero())
	assert.True(t, sum.IsZero())
}

func TestRecordTransaction_FondosInsuficientesNoCambiaSaldo(t *testing.T) {
	acc, store := newAccount(t)
	box := mustBox(t, acc, "Diaria", "100")

	_, err := acc.RecordTransaction(context.Background(), appmoneybox.RecordInput{
		BoxID: box.ID, Type: moneybox.Withdrawal, Amount: d("101"),
	})
	require.Error(t, err)
	assert.Equal(t, domain.KindInsufficientFunds, domain.KindOf(err))
	var insufficient *domain.InsufficientFundsError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, "Diaria", insufficient.BoxName)

	balance, _ := balanceAndSum(t, store, box.ID)
	assert.True(t, balance.Equal(d("100")))
	txs, err := acc.ListTransactions(context.Background(), box.ID, 10, 0)
	require.NoError(t, err)
	assert.Len(t, txs, 1)
}

func TestRecordTransaction_RechazaTiposDeTransferencia(t *testing.T) {
	acc, _ := newAccount(t)
	box := mustBox(t, acc, "Diaria", "100")

	for _, typ := range []moneybox.TransactionType{moneybox.TransferIn, moneybox.TransferOut} {
		_, err := acc.RecordTransaction(context.Background(), appmoneybox.RecordInput{BoxID: box.ID, Type: typ, Amount: d("1")})
		assert.Equal(t, domain.KindValidation, domain.KindOf(err), typ.String())
	}
}

func TestRecordTransaction_TipoCeroYCajaInexistente(t *testing.T) {
	acc, _ := newAccount(t)

	_, err := acc.RecordTransaction(context.Background(), appmoneybox.RecordInput{BoxID: "b", Amount: d("1")})
	assert.True(t, errors.Is(err, domain.ErrInvalidTransactionType))

	_, err = acc.RecordTransaction(context.Background(), appmoneybox.RecordInput{BoxID: "nope", Type: moneybox.Deposit, Amount: d("1")})
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestRecordTransaction_CajaRelacionada(t *testing.T) {
	acc, _ := newAccount(t)
	ctx := context.Background()
	box := mustBox(t, acc, "Diaria", "100")
	bank := mustBox(t, acc, "Banco", "0")

	// Retiro para depositar en el banco fuera del sistema: queda enlazado a la caja contraparte
	res, err := acc.RecordTransaction(ctx, appmoneybox.RecordInput{
		BoxID: box.ID, Type: moneybox.Withdrawal, Amount: d("30"), RelatedBoxID: bank.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, res.Transaction.RelatedBoxID)
	assert.Equal(t, bank.ID, *res.Transaction.RelatedBoxID)

	txs, err := acc.ListTransactions(ctx, box.ID, 1, 0)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	require.NotNil(t, txs[0].RelatedBoxID)
	assert.Equal(t, bank.ID, *txs[0].RelatedBoxID)

	// Sin caja relacionada el campo queda vacío
	res, err = acc.RecordTransaction(ctx, appmoneybox.RecordInput{BoxID: box.ID, Type: moneybox.Deposit, Amount: d("1")})
	require.NoError(t, err)
	assert.Nil(t, res.Transaction.RelatedBoxID)
}

func TestRecordTransaction_CajaRelacionadaInvalida(t *testing.T) {
	acc, store := newAccount(t)
	ctx := context.Background()
	box := mustBox(t, acc, "Diaria", "100")

	_, err := acc.RecordTransaction(ctx, appmoneybox.RecordInput{
		BoxID: box.ID, Type: moneybox.Deposit, Amount: d("1"), RelatedBoxID: box.ID,
	})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	_, err = acc.RecordTransaction(ctx, appmoneybox.RecordInput{
		BoxID: box.ID, Type: moneybox.Deposit, Amount: d("1"), RelatedBoxID: "nope",
	})
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))

	balance, sum := balanceAndSum(t, store, box.ID)
	assert.True(t, balance.Equal(d("100")))
	assert.True(t, sum.Equal(d("100")))
}

// ──────────────────────────────────────────────────────────────────────────────
// TransferBetweenBoxes
// ──────────────────────────────────────────────────────────────────────────────

// Escenario D: Principal 500, Chica 20, transferencia de 100.
func TestTransfer_DosFilasEnlazadas(t *testing.T) {
	acc, store := newAccount(t)
	principal := mustBox(t, acc, "Principal", "500")
	petty := mustBox(t, acc, "Chica", "20")

	res, err := acc.TransferBetweenBoxes(context.Background(), appmoneybox.TransferInput{
		FromID: principal.ID, ToID: petty.ID, Amount: d("100"), Actor: "admin",
	})
	require.NoError(t, err)
	assert.True(t, res.FromBox.Balance.Equal(d("400")))
	assert.True(t, res.ToBox.Balance.Equal(d("120")))

	out, err := acc.ListTransactions(context.Background(), principal.ID, 1, 0)
	require.NoError(t, err)
	in, err := acc.ListTransactions(context.Background(), petty.ID, 1, 0)
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Len(t, in, 1)

	assert.Equal(t, moneybox.TransferOut, out[0].Type)
	assert.True(t, out[0].Amount.Equal(d("-100")))
	require.NotNil(t, out[0].RelatedBoxID)
	assert.Equal(t, petty.ID, *out[0].RelatedBoxID)

	assert.Equal(t, moneybox.TransferIn, in[0].Type)
	assert.True(t, in[0].Amount.Equal(d("100")))
	require.NotNil(t, in[0].RelatedBoxID)
	assert.Equal(t, principal.ID, *in[0].RelatedBoxID)

	assert.Equal(t, out[0].ReferenceID, in[0].ReferenceID)
	assert.Equal(t, entity.ReferenceTransfer, out[0].ReferenceType)

	for _, id := range []string{principal.ID, petty.ID} {
		balance, sum := balanceAndSum(t, store, id)
		assert.True(t, balance.Equal(sum))
	}
}

func TestTransfer_MismaCaja(t *testing.T) {
	acc, _ := newAccount(t)
	box := mustBox(t, acc, "Principal", "500")

	_, err := acc.TransferBetweenBoxes(context.Background(), appmoneybox.TransferInput{FromID: box.ID, ToID: box.ID, Amount: d("1")})
	assert.True(t, errors.Is(err, domain.ErrSameBoxTransfer))
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestTransfer_FondosInsuficientesRevierteAmbasPatas(t *testing.T) {
	acc, store := newAccount(t)
	principal := mustBox(t, acc, "Principal", "50")
	petty := mustBox(t, acc, "Chica", "20")

	_, err := acc.TransferBetweenBoxes(context.Background(), appmoneybox.TransferInput{FromID: principal.ID, ToID: petty.ID, Amount: d("100")})
	assert.Equal(t, domain.KindInsufficientFunds, domain.KindOf(err))

	b1, _ := balanceAndSum(t, store, principal.ID)
	b2, _ := balanceAndSum(t, store, petty.ID)
	assert.True(t, b1.Equal(d("50")))
	assert.True(t, b2.Equal(d("20")))
}

func TestTransfer_FallaEnSegundaPataNoDejaPrimera(t *testing.T) {
	acc, store := newAccount(t)
	principal := mustBox(t, acc, "Principal", "500")
	petty := mustBox(t, acc, "Chica", "20")

	writes := 0
	store.SetFailureHook(func(op string) error {
		if op == "money_box_transactions.create" {
			writes++
			if writes == 2 {
				return errors.New("conexión perdida")
			}
		}
		return nil
	})

	_, err := acc.TransferBetweenBoxes(context.Background(), appmoneybox.TransferInput{FromID: principal.ID, ToID: petty.ID, Amount: d("100")})
	require.Error(t, err)
	assert.Equal(t, domain.KindIntegrity, domain.KindOf(err))

	b1, s1 := balanceAndSum(t, store, principal.ID)
	assert.True(t, b1.Equal(d("500")))
	assert.True(t, s1.Equal(d("500")))
}

func TestTransfer_CajaInexistenteYMonto(t *testing.T) {
	acc, _ := newAccount(t)
	box := mustBox(t, acc, "Principal", "500")

	_, err := acc.TransferBetweenBoxes(context.Background(), appmoneybox.TransferInput{FromID: box.ID, ToID: "nope", Amount: d("1")})
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))

	_, err = acc.TransferBetweenBoxes(context.Background(), appmoneybox.TransferInput{FromID: box.ID, ToID: "otra", Amount: decimal.Zero})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestGetBox(t *testing.T) {
	acc, _ := newAccount(t)
	box := mustBox(t, acc, "Principal", "5")

	got, err := acc.GetBox(context.Background(), box.ID)
	require.NoError(t, err)
	assert.Equal(t, "Principal", got.Name)

	_, err = acc.GetBox(context.Background(), "nope")
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestListBoxes_PorNombre(t *testing.T) {
	acc, _ := newAccount(t)
	mustBox(t, acc, "Principal", "5")
	mustBox(t, acc, "Chica", "0")

	list, err := acc.ListBoxes(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Chica", list[0].Name)
	assert.Equal(t, "Principal", list[1].Name)
	assert.True(t, list[1].Balance.Equal(d("5")))
}
