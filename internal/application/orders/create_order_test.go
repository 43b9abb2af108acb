package orders_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-ledger/internal/application/cache"
	"github.com/jhoicas/Inventario-ledger/internal/application/credit"
	"github.com/jhoicas/Inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/Inventario-ledger/internal/application/moneybox"
	"github.com/jhoicas/Inventario-ledger/internal/application/orders"
	"github.com/jhoicas/Inventario-ledger/internal/application/ports"
	"github.com/jhoicas/Inventario-ledger/internal/domain"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
	domainmb "github.com/jhoicas/Inventario-ledger/internal/domain/moneybox"
	"github.com/jhoicas/Inventario-ledger/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func strPtr(s string) *string { return &s }

type fixture struct {
	store    *memory.Store
	uc       *orders.CreateOrderUseCase
	product  entity.Product
	supplier entity.Party
	customer entity.Party
	box      entity.MoneyBox
}

// newFixture: producto con stock 10, proveedor con límite 1000 y saldo 900,
// cliente sin límite y caja con 50.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.New()
	log := zerolog.Nop()
	gw := cache.NewGateway(nil, log)

	limit := d("1000")
	f := &fixture{
		store:    store,
		product:  entity.Product{SKU: "SKU-1", Name: "Tornillo", CurrentStock: d("10")},
		supplier: entity.Party{Kind: entity.PartySupplier, Name: "Ferretería", Balance: d("900"), CreditLimit: &limit},
		customer: entity.Party{Kind: entity.PartyCustomer, Name: "Cliente"},
		box:      entity.MoneyBox{Name: "Principal"},
	}
	require.NoError(t, store.Run(ctx, func(repos ports.Repos) error {
		if err := repos.Products.Create(ctx, &f.product); err != nil {
			return err
		}
		if err := repos.Parties.Create(ctx, &f.supplier); err != nil {
			return err
		}
		if err := repos.Parties.Create(ctx, &f.customer); err != nil {
			return err
		}
		return repos.MoneyBoxes.Create(ctx, &f.box)
	}))

	account := moneybox.NewAccount(store, gw, log)
	_, err := account.RecordTransaction(ctx, moneybox.RecordInput{BoxID: f.box.ID, Type: domainmb.Deposit, Amount: d("50")})
	require.NoError(t, err)

	f.uc = orders.NewCreateOrderUseCase(store, inventory.NewRecorder(log), account, credit.NewAdvisor(log), gw, log)
	return f
}

type snapshot struct {
	stock        decimal.Decimal
	averageCost  decimal.Decimal
	boxBalance   decimal.Decimal
	supplierBal  decimal.Decimal
	customerBal  decimal.Decimal
	movementsSum decimal.Decimal
}

func (f *fixture) snapshot(t *testing.T) snapshot {
	t.Helper()
	ctx := context.Background()
	var s snapshot
	require.NoError(t, f.store.Read(ctx, func(repos ports.Repos) error {
		p, err := repos.Products.GetByID(ctx, f.product.ID)
		if err != nil {
			return err
		}
		b, err := repos.MoneyBoxes.GetByID(ctx, f.box.ID)
		if err != nil {
			return err
		}
		sup, err := repos.Parties.GetByID(ctx, f.supplier.ID)
		if err != nil {
			return err
		}
		cus, err := repos.Parties.GetByID(ctx, f.customer.ID)
		if err != nil {
			return err
		}
		sum, err := repos.Movements.SumByProduct(ctx, f.product.ID)
		if err != nil {
			return err
		}
		s = snapshot{p.CurrentStock, p.AverageCost, b.Balance, sup.Balance, cus.Balance, sum}
		return nil
	}))
	return s
}

func (f *fixture) purchase(qty, price string) orders.OrderInput {
	return orders.OrderInput{
		PartyID: f.supplier.ID,
		Items:   []orders.LineInput{{ProductID: strPtr(f.product.ID), Quantity: d(qty), Price: d(price)}},
	}
}

func (f *fixture) sale(qty, price string) orders.OrderInput {
	return orders.OrderInput{
		PartyID: f.customer.ID,
		Items:   []orders.LineInput{{ProductID: strPtr(f.product.ID), Quantity: d(qty), Price: d(price)}},
	}
}

func hasWarning(ws []entity.Warning, code string) bool {
	for _, w := range ws {
		if w.Code == code {
			return true
		}
	}
	return false
}

// ──────────────────────────────────────────────────────────────────────────────
// ApplyPurchase
// ──────────────────────────────────────────────────────────────────────────────

// Escenarios A y E: compra de 5 a 2.00 a crédito sobre un proveedor con saldo 900 y límite 1000.
func TestApplyPurchase_StockCostoYCredito(t *testing.T) {
	f := newFixture(t)
	in := f.purchase("5", "2.00")
	in.InvoiceNumber = "FAC-1"

	res, err := f.uc.ApplyPurchase(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, entity.OrderCompleted, res.Order.Status)
	assert.True(t, res.Order.NetAmount.Equal(d("10")))
	require.Len(t, res.Order.Items, 1)

	s := f.snapshot(t)
	assert.True(t, s.stock.Equal(d("15")))
	assert.True(t, s.averageCost.Equal(d("2")))
	assert.True(t, s.supplierBal.Equal(d("910")))
	assert.True(t, s.stock.Equal(d("10").Add(s.movementsSum)))

	require.NotNil(t, res.CreditStatus)
	assert.False(t, res.CreditStatus.Exceeded)
}

func TestApplyPurchase_ExcedeCreditoSinBloquear(t *testing.T) {
	f := newFixture(t)

	res, err := f.uc.ApplyPurchase(context.Background(), f.purchase("100", "2"))
	require.NoError(t, err)

	require.NotNil(t, res.CreditStatus)
	assert.True(t, res.CreditStatus.Exceeded)
	require.True(t, hasWarning(res.Warnings, entity.WarningCreditExceeded))
	for _, w := range res.Warnings {
		if w.Code == entity.WarningCreditExceeded {
			assert.True(t, w.Excess.Equal(d("100")))
		}
	}
	assert.True(t, f.snapshot(t).supplierBal.Equal(d("1100")))
}

func TestApplyPurchase_PagoDebitaCaja(t *testing.T) {
	f := newFixture(t)
	in := f.purchase("5", "2")
	in.PaidAmount = d("10")
	in.MoneyBoxID = f.box.ID

	_, err := f.uc.ApplyPurchase(context.Background(), in)
	require.NoError(t, err)

	s := f.snapshot(t)
	assert.True(t, s.boxBalance.Equal(d("40")))
	assert.True(t, s.supplierBal.Equal(d("900")), "pagada completa no cambia el saldo")
}

func TestApplyPurchase_FondosInsuficientesRevierteTodo(t *testing.T) {
	f := newFixture(t)
	before := f.snapshot(t)
	in := f.purchase("30", "2")
	in.PaidAmount = d("60")
	in.MoneyBoxID = f.box.ID

	_, err := f.uc.ApplyPurchase(context.Background(), in)
	require.Error(t, err)
	assert.Equal(t, domain.KindInsufficientFunds, domain.KindOf(err))

	assert.Equal(t, before, f.snapshot(t))
}

func TestApplyPurchase_FacturaDuplicada(t *testing.T) {
	f := newFixture(t)
	in := f.purchase("1", "2")
	in.InvoiceNumber = "FAC-9"

	_, err := f.uc.ApplyPurchase(context.Background(), in)
	require.NoError(t, err)
	before := f.snapshot(t)

	_, err = f.uc.ApplyPurchase(context.Background(), in)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDuplicateReference))
	assert.Equal(t, before, f.snapshot(t))
}

func TestApplyPurchase_TerceroDeOtroTipo(t *testing.T) {
	f := newFixture(t)
	in := f.purchase("1", "2")
	in.PartyID = f.customer.ID

	_, err := f.uc.ApplyPurchase(context.Background(), in)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestApplyPurchase_FallaTardiaRevierteStock(t *testing.T) {
	f := newFixture(t)
	before := f.snapshot(t)
	f.store.SetFailureHook(func(op string) error {
		if op == "parties.update_balance" {
			return errors.New("deadlock detectado")
		}
		return nil
	})

	_, err := f.uc.ApplyPurchase(context.Background(), f.purchase("5", "2"))
	require.Error(t, err)
	assert.Equal(t, domain.KindIntegrity, domain.KindOf(err))

	f.store.SetFailureHook(nil)
	assert.Equal(t, before, f.snapshot(t))
}

// ──────────────────────────────────────────────────────────────────────────────
// ApplySale
// ──────────────────────────────────────────────────────────────────────────────

// Escenario B sobre el stock del escenario A.
func TestApplySale_DescuentaStockYCobra(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.ApplyPurchase(context.Background(), f.purchase("5", "2"))
	require.NoError(t, err)

	in := f.sale("3", "4")
	in.PaidAmount = d("12")
	in.MoneyBoxID = f.box.ID
	res, err := f.uc.ApplySale(context.Background(), in)
	require.NoError(t, err)

	s := f.snapshot(t)
	assert.True(t, s.stock.Equal(d("12")))
	assert.True(t, s.boxBalance.Equal(d("62")))
	assert.True(t, s.customerBal.IsZero())
	assert.True(t, hasWarning(res.Warnings, entity.WarningCreditUnlimited))
}

func TestApplySale_StockNegativoEsAdvertencia(t *testing.T) {
	f := newFixture(t)

	res, err := f.uc.ApplySale(context.Background(), f.sale("12", "1"))
	require.NoError(t, err)

	assert.True(t, hasWarning(res.Warnings, entity.WarningStockNegative))
	s := f.snapshot(t)
	assert.True(t, s.stock.Equal(d("-2")))
	assert.True(t, s.customerBal.Equal(d("12")))
}

func TestApplySale_LineaFueraDeCatalogoSinMovimiento(t *testing.T) {
	f := newFixture(t)
	in := orders.OrderInput{
		PartyID: f.customer.ID,
		Items: []orders.LineInput{
			{ProductID: strPtr(""), Description: "Instalación", Quantity: d("1"), Price: d("30")},
			{Description: "Flete", Quantity: d("1"), Price: d("5")},
		},
	}

	res, err := f.uc.ApplySale(context.Background(), in)
	require.NoError(t, err)
	require.Len(t, res.Order.Items, 2)
	for _, li := range res.Order.Items {
		assert.Nil(t, li.ProductID)
	}

	ctx := context.Background()
	require.NoError(t, f.store.Read(ctx, func(repos ports.Repos) error {
		movs, err := repos.Movements.ListByReference(ctx, entity.ReferenceSale, res.Order.ID)
		require.NoError(t, err)
		assert.Empty(t, movs)
		return nil
	}))
	assert.True(t, f.snapshot(t).stock.Equal(d("10")))
}

func TestApplySale_ProductoInexistenteNoEscribe(t *testing.T) {
	f := newFixture(t)
	before := f.snapshot(t)
	in := f.sale("1", "1")
	in.Items = append(in.Items, orders.LineInput{ProductID: strPtr("fantasma"), Quantity: d("1"), Price: d("1")})

	_, err := f.uc.ApplySale(context.Background(), in)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	assert.Equal(t, before, f.snapshot(t))
}

func TestApplySale_TotalRedondeadoADosDecimales(t *testing.T) {
	f := newFixture(t)
	res, err := f.uc.ApplySale(context.Background(), f.sale("3", "0.3333"))
	require.NoError(t, err)
	assert.True(t, res.Order.Total.Equal(d("1")))
	assert.True(t, res.Order.NetAmount.Equal(d("1")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación
// ──────────────────────────────────────────────────────────────────────────────

func TestApplySale_Validaciones(t *testing.T) {
	f := newFixture(t)
	cases := []struct {
		name   string
		mutate func(*orders.OrderInput)
	}{
		{"sin tercero", func(in *orders.OrderInput) { in.PartyID = "" }},
		{"sin líneas", func(in *orders.OrderInput) { in.Items = nil }},
		{"cantidad cero", func(in *orders.OrderInput) { in.Items[0].Quantity = decimal.Zero }},
		{"precio negativo", func(in *orders.OrderInput) { in.Items[0].Price = d("-1") }},
		{"manual sin descripción", func(in *orders.OrderInput) { in.Items[0].ProductID = nil }},
		{"descuento mayor al total", func(in *orders.OrderInput) { in.Discount = d("100") }},
		{"pago mayor al neto", func(in *orders.OrderInput) { in.PaidAmount = d("100"); in.MoneyBoxID = "b" }},
		{"pago sin caja", func(in *orders.OrderInput) { in.PaidAmount = d("1") }},
		{"descuento con tres decimales", func(in *orders.OrderInput) { in.Discount = d("0.005") }},
		{"pago con tres decimales", func(in *orders.OrderInput) { in.PaidAmount = d("1.005"); in.MoneyBoxID = "b" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := f.sale("2", "5")
			tc.mutate(&in)
			_, err := f.uc.ApplySale(context.Background(), in)
			require.Error(t, err)
			assert.Equal(t, domain.KindValidation, domain.KindOf(err))
		})
	}
}
