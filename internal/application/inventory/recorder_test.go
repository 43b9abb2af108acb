package inventory_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-ledger/internal/application/cache"
	"github.com/jhoicas/Inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/Inventario-ledger/internal/application/ports"
	"github.com/jhoicas/Inventario-ledger/internal/domain"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/Inventario-ledger/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type recordingInvalidator struct {
	mu    sync.Mutex
	calls [][]ports.Family
}

func (r *recordingInvalidator) Invalidate(_ context.Context, families ...ports.Family) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, families)
	return nil
}

func seedProduct(t *testing.T, store *memory.Store, stock string) entity.Product {
	t.Helper()
	p := entity.Product{SKU: "SKU-1", Name: "Tornillo", CurrentStock: d(stock), MinStock: d("5")}
	require.NoError(t, store.Run(context.Background(), func(repos ports.Repos) error {
		return repos.Products.Create(context.Background(), &p)
	}))
	return p
}

func readProduct(t *testing.T, store *memory.Store, id string) (entity.Product, []*entity.InventoryMovement, decimal.Decimal) {
	t.Helper()
	var (
		p    *entity.Product
		movs []*entity.InventoryMovement
		sum  decimal.Decimal
	)
	ctx := context.Background()
	require.NoError(t, store.Read(ctx, func(repos ports.Repos) error {
		var err error
		if p, err = repos.Products.GetByID(ctx, id); err != nil {
			return err
		}
		if movs, err = repos.Movements.ListByProduct(ctx, id, 100, 0); err != nil {
			return err
		}
		sum, err = repos.Movements.SumByProduct(ctx, id)
		return err
	}))
	require.NotNil(t, p)
	return *p, movs, sum
}

// ──────────────────────────────────────────────────────────────────────────────
// Recorder
// ──────────────────────────────────────────────────────────────────────────────

func TestRecorder_CompraYVentaMantienenInvariante(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	rec := inventory.NewRecorder(zerolog.Nop())
	p := seedProduct(t, store, "10")

	// Escenario A
	require.NoError(t, store.Run(ctx, func(repos ports.Repos) error {
		res, err := rec.Apply(ctx, repos, inventory.ApplyInput{
			ProductID: p.ID, Delta: d("5"), Type: entity.MovementPurchase, UnitPrice: d("2.00"),
			Reference: entity.Reference{Type: entity.ReferencePurchase, ID: "o1"},
		})
		require.NoError(t, err)
		assert.True(t, res.Movement.PreviousStock.Equal(d("10")))
		assert.True(t, res.Movement.NewStock.Equal(d("15")))
		assert.Empty(t, res.Warnings)
		return nil
	}))

	got, movs, sum := readProduct(t, store, p.ID)
	assert.True(t, got.CurrentStock.Equal(d("15")))
	assert.True(t, got.AverageCost.Equal(d("2")))
	require.Len(t, movs, 1)
	assert.True(t, movs[0].Quantity.Equal(d("5")))

	// Escenario B
	require.NoError(t, store.Run(ctx, func(repos ports.Repos) error {
		_, err := rec.Apply(ctx, repos, inventory.ApplyInput{
			ProductID: p.ID, Delta: d("-3"), Type: entity.MovementSale, UnitPrice: d("4"),
			Reference: entity.Reference{Type: entity.ReferenceSale, ID: "o2"},
		})
		return err
	}))

	got, movs, sum = readProduct(t, store, p.ID)
	assert.True(t, got.CurrentStock.Equal(d("12")))
	assert.True(t, got.TotalSold.Equal(d("3")))
	require.Len(t, movs, 2)
	assert.True(t, movs[0].UnitCost.Equal(d("2")), "la salida se valora al costo promedio")
	assert.True(t, got.CurrentStock.Equal(d("10").Add(sum)), "stock = inicial + Σ movimientos")
}

func TestRecorder_FallaDelMovimientoNoDejaAgregadoHuerfano(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	rec := inventory.NewRecorder(zerolog.Nop())
	p := seedProduct(t, store, "10")

	boom := errors.New("disco lleno")
	store.SetFailureHook(func(op string) error {
		if op == "movements.create" {
			return boom
		}
		return nil
	})

	err := store.Run(ctx, func(repos ports.Repos) error {
		_, err := rec.Apply(ctx, repos, inventory.ApplyInput{
			ProductID: p.ID, Delta: d("5"), Type: entity.MovementPurchase, UnitPrice: d("2"),
			Reference: entity.Reference{Type: entity.ReferencePurchase, ID: "o1"},
		})
		return err
	})
	require.ErrorIs(t, err, boom)

	got, movs, _ := readProduct(t, store, p.ID)
	assert.True(t, got.CurrentStock.Equal(d("10")))
	assert.True(t, got.TotalPurchased.IsZero())
	assert.Empty(t, movs)
}

func TestRecorder_ProductoInexistenteOVacio(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	rec := inventory.NewRecorder(zerolog.Nop())

	err := store.Run(ctx, func(repos ports.Repos) error {
		_, err := rec.Apply(ctx, repos, inventory.ApplyInput{ProductID: "nope", Delta: d("1"), Type: entity.MovementAdjustment})
		return err
	})
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	err = store.Run(ctx, func(repos ports.Repos) error {
		_, err := rec.Apply(ctx, repos, inventory.ApplyInput{ProductID: " ", Delta: d("1"), Type: entity.MovementAdjustment})
		return err
	})
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

// ──────────────────────────────────────────────────────────────────────────────
// AdjustStockUseCase
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjust_AdvierteStockNegativoEInvalida(t *testing.T) {
	store := memory.New()
	inv := &recordingInvalidator{}
	uc := inventory.NewAdjustStockUseCase(store, inventory.NewRecorder(zerolog.Nop()), cache.NewGateway(inv, zerolog.Nop()), zerolog.Nop())
	p := seedProduct(t, store, "3")

	res, err := uc.Adjust(context.Background(), inventory.AdjustmentInput{ProductID: p.ID, Quantity: d("-4"), Actor: "bodega"})
	require.NoError(t, err)

	assert.True(t, res.Product.CurrentStock.Equal(d("-1")))
	assert.Equal(t, "bodega", res.Movement.CreatedBy)
	assert.Equal(t, entity.ReferenceAdjustment, res.Movement.ReferenceType)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, entity.WarningStockNegative, res.Warnings[0].Code)

	require.Len(t, inv.calls, 1)
	assert.ElementsMatch(t, []ports.Family{ports.FamilyProducts, ports.FamilyMovements}, inv.calls[0])
}

func TestAdjust_ErrorNoInvalida(t *testing.T) {
	store := memory.New()
	inv := &recordingInvalidator{}
	uc := inventory.NewAdjustStockUseCase(store, inventory.NewRecorder(zerolog.Nop()), cache.NewGateway(inv, zerolog.Nop()), zerolog.Nop())

	_, err := uc.Adjust(context.Background(), inventory.AdjustmentInput{ProductID: "nope", Quantity: d("1")})
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	assert.Empty(t, inv.calls)

	_, err = uc.Adjust(context.Background(), inventory.AdjustmentInput{ProductID: "x", Quantity: decimal.Zero})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}
