// Package usecase agrupa el alta y consulta de catálogo y terceros.
package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-ledger/internal/application/cache"
	"github.com/jhoicas/Inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/Inventario-ledger/internal/application/ports"
	"github.com/jhoicas/Inventario-ledger/internal/domain"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
)

// ProductInput alta de producto. Stock y costo promedio no se reciben: se forman con movimientos.
type ProductInput struct {
	SKU           string
	Name          string
	PurchasePrice decimal.Decimal
	SalePrice     decimal.Decimal
	MinStock      decimal.Decimal
	MaxStock      decimal.Decimal
	OpeningStock  decimal.Decimal // se registra como ajuste
	Actor         string
}

// ProductUseCase alta y consulta de productos.
type ProductUseCase struct {
	txRunner ports.TxRunner
	recorder *inventory.Recorder
	cache    *cache.Gateway
	log      zerolog.Logger
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(txRunner ports.TxRunner, recorder *inventory.Recorder, gateway *cache.Gateway, log zerolog.Logger) *ProductUseCase {
	return &ProductUseCase{txRunner: txRunner, recorder: recorder, cache: gateway, log: log}
}

// Create crea el producto con agregados en cero. Un stock inicial entra como ajuste
// en la misma transacción, así el stock sigue siendo la suma de sus movimientos.
func (uc *ProductUseCase) Create(ctx context.Context, in ProductInput) (*entity.Product, error) {
	in.SKU, in.Name = strings.TrimSpace(in.SKU), strings.TrimSpace(in.Name)
	if in.SKU == "" || in.Name == "" {
		return nil, domain.Validation("sku y nombre son obligatorios")
	}
	for field, v := range map[string]decimal.Decimal{
		"precio de compra": in.PurchasePrice,
		"precio de venta":  in.SalePrice,
		"stock mínimo":     in.MinStock,
		"stock máximo":     in.MaxStock,
		"stock inicial":    in.OpeningStock,
	} {
		if v.IsNegative() {
			return nil, domain.Validation("%s negativo", field)
		}
	}
	if in.MaxStock.IsPositive() && in.MinStock.GreaterThan(in.MaxStock) {
		return nil, domain.Validation("el stock mínimo supera el máximo")
	}

	var product entity.Product
	err := uc.cache.Run(ctx, uc.txRunner, func(repos ports.Repos) error {
		now := time.Now().UTC()
		product = entity.Product{
			SKU:            in.SKU,
			Name:           in.Name,
			CurrentStock:   decimal.Zero,
			TotalSold:      decimal.Zero,
			TotalPurchased: decimal.Zero,
			AverageCost:    decimal.Zero,
			PurchasePrice:  in.PurchasePrice,
			SalePrice:      in.SalePrice,
			MinStock:       in.MinStock,
			MaxStock:       in.MaxStock,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if in.OpeningStock.IsPositive() {
			// costo de referencia hasta la primera compra
			product.AverageCost = in.PurchasePrice
		}
		if err := repos.Products.Create(ctx, &product); err != nil {
			return fmt.Errorf("create product: %w", err)
		}
		if !in.OpeningStock.IsPositive() {
			return nil
		}
		res, err := uc.recorder.Apply(ctx, repos, inventory.ApplyInput{
			ProductID: product.ID,
			Delta:     in.OpeningStock,
			Type:      entity.MovementAdjustment,
			UnitPrice: in.PurchasePrice,
			Reference: entity.Reference{Type: entity.ReferenceAdjustment, ID: uuid.New().String()},
			Notes:     "stock inicial",
			Actor:     in.Actor,
		})
		if err != nil {
			return err
		}
		product = res.Product
		return nil
	}, ports.FamilyProducts, ports.FamilyMovements)
	if err != nil {
		return nil, domain.Integrity(err)
	}
	uc.log.Info().Str("product_id", product.ID).Str("sku", product.SKU).Msg("producto creado")
	return &product, nil
}

// Get devuelve el producto o ErrNotFound.
func (uc *ProductUseCase) Get(ctx context.Context, id string) (*entity.Product, error) {
	p, err := cache.Cached(ctx, uc.cache, ports.FamilyProducts, "product:"+id, func() (entity.Product, error) {
		var p entity.Product
		err := uc.txRunner.Read(ctx, func(repos ports.Repos) error {
			found, err := repos.Products.GetByID(ctx, id)
			if err != nil {
				return fmt.Errorf("get product: %w", err)
			}
			if found == nil {
				return domain.NotFound("producto", id)
			}
			p = *found
			return nil
		})
		return p, err
	})
	if err != nil {
		return nil, domain.Integrity(err)
	}
	return &p, nil
}

// ListMovements movimientos del producto, más recientes primero.
func (uc *ProductUseCase) ListMovements(ctx context.Context, productID string, limit, offset int) ([]*entity.InventoryMovement, error) {
	var list []*entity.InventoryMovement
	err := uc.txRunner.Read(ctx, func(repos ports.Repos) error {
		p, err := repos.Products.GetByID(ctx, productID)
		if err != nil {
			return fmt.Errorf("get product: %w", err)
		}
		if p == nil {
			return domain.NotFound("producto", productID)
		}
		list, err = repos.Movements.ListByProduct(ctx, productID, limit, offset)
		if err != nil {
			return fmt.Errorf("list movements: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, domain.Integrity(err)
	}
	return list, nil
}
