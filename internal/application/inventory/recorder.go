package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-ledger/internal/application/ports"
	"github.com/jhoicas/Inventario-ledger/internal/domain"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/Inventario-ledger/internal/domain/inventory"
)

// ApplyInput datos de un movimiento de stock.
// Delta lleva el signo: positivo entra, negativo sale.
// UnitPrice es el precio de la línea; en compras alimenta el costo promedio.
type ApplyInput struct {
	ProductID string
	Delta     decimal.Decimal
	Type      entity.MovementType
	UnitPrice decimal.Decimal
	Reference entity.Reference
	Notes     string
	Actor     string
}

// MovementResult movimiento escrito y producto con los agregados resultantes.
type MovementResult struct {
	Movement entity.InventoryMovement
	Product  entity.Product
	Warnings []entity.Warning
}

// Recorder aplica movimientos de stock dentro de la transacción del llamador.
// Cada llamada bloquea el producto, actualiza sus agregados y escribe exactamente un movimiento;
// si cualquiera de las dos escrituras falla, el error aborta la transacción completa.
type Recorder struct {
	log zerolog.Logger
}

// NewRecorder construye el registrador de movimientos.
func NewRecorder(log zerolog.Logger) *Recorder {
	return &Recorder{log: log}
}

// Apply registra el movimiento usando los repositorios de la transacción activa.
func (r *Recorder) Apply(ctx context.Context, repos ports.Repos, in ApplyInput) (*MovementResult, error) {
	if strings.TrimSpace(in.ProductID) == "" {
		return nil, domain.Validation("movimiento sin producto de catálogo")
	}

	// Lectura dentro de la transacción (SELECT FOR UPDATE), nunca un valor previo a la tx
	product, err := repos.Products.GetForUpdate(ctx, in.ProductID)
	if err != nil {
		return nil, fmt.Errorf("lock product %s: %w", in.ProductID, err)
	}
	if product == nil {
		return nil, domain.NotFound("producto", in.ProductID)
	}

	change, err := inventory.ApplyMovement(*product, in.Delta, in.Type, in.UnitPrice)
	if err != nil {
		return nil, err
	}

	if err := repos.Products.UpdateAggregates(ctx, &change.Product); err != nil {
		return nil, fmt.Errorf("update product aggregates: %w", err)
	}

	mov := entity.InventoryMovement{
		ProductID:     in.ProductID,
		Type:          in.Type,
		Quantity:      in.Delta,
		PreviousStock: change.PreviousStock,
		NewStock:      change.NewStock,
		ReferenceType: in.Reference.Type,
		ReferenceID:   in.Reference.ID,
		UnitCost:      unitCost(in, product),
		Notes:         in.Notes,
		CreatedBy:     in.Actor,
		CreatedAt:     time.Now().UTC(),
	}
	if err := repos.Movements.Create(ctx, &mov); err != nil {
		return nil, fmt.Errorf("create inventory movement: %w", err)
	}

	r.log.Debug().
		Str("product_id", in.ProductID).
		Str("type", string(in.Type)).
		Str("delta", in.Delta.String()).
		Str("new_stock", change.NewStock.String()).
		Msg("movimiento de inventario registrado")

	var warnings []entity.Warning
	if in.Delta.IsNegative() {
		warnings = inventory.StockWarnings(change.Product)
	}
	return &MovementResult{Movement: mov, Product: change.Product, Warnings: warnings}, nil
}

// unitCost: entradas y devoluciones a proveedor al precio de la línea; salidas al costo promedio vigente.
func unitCost(in ApplyInput, p *entity.Product) decimal.Decimal {
	switch in.Type {
	case entity.MovementPurchase, entity.MovementPurchaseReturn:
		return in.UnitPrice
	case entity.MovementAdjustment:
		if in.UnitPrice.IsPositive() {
			return in.UnitPrice
		}
	}
	return p.AverageCost
}
