package inventory

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-ledger/internal/domain"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
)

// Change describe el efecto de un movimiento sobre los agregados de un producto.
type Change struct {
	PreviousStock decimal.Decimal
	NewStock      decimal.Decimal
	Product       entity.Product // producto con los agregados ya actualizados
}

// ApplyMovement calcula los nuevos agregados de p para un delta con signo.
// No persiste nada: el registrador escribe el producto y el movimiento en la misma transacción.
func ApplyMovement(p entity.Product, delta decimal.Decimal, t entity.MovementType, unitPrice decimal.Decimal) (Change, error) {
	if !t.Valid() {
		return Change{}, domain.Validation("tipo de movimiento %q", t)
	}
	if delta.IsZero() {
		return Change{}, domain.Validation("la cantidad del movimiento no puede ser cero")
	}
	if err := checkDirection(t, delta); err != nil {
		return Change{}, err
	}

	qty := delta.Abs()
	out := p
	out.CurrentStock = p.CurrentStock.Add(delta)

	switch t {
	case entity.MovementPurchase:
		out.AverageCost = CostCalculator(p.TotalPurchased, p.AverageCost, qty, unitPrice)
		out.TotalPurchased = p.TotalPurchased.Add(qty)
	case entity.MovementSale:
		out.TotalSold = p.TotalSold.Add(qty)
	case entity.MovementSaleReturn:
		out.TotalSold = floorZero(p.TotalSold.Sub(qty))
	case entity.MovementPurchaseReturn:
		out.TotalPurchased = floorZero(p.TotalPurchased.Sub(qty))
	case entity.MovementAdjustment:
		// solo cambia el stock
	}

	return Change{PreviousStock: p.CurrentStock, NewStock: out.CurrentStock, Product: out}, nil
}

// checkDirection valida el signo esperado por tipo; los ajustes admiten ambos.
func checkDirection(t entity.MovementType, delta decimal.Decimal) error {
	positive := delta.IsPositive()
	switch t {
	case entity.MovementPurchase, entity.MovementSaleReturn:
		if !positive {
			return fmt.Errorf("%w: %s requiere cantidad positiva", domain.ErrValidation, t)
		}
	case entity.MovementSale, entity.MovementPurchaseReturn:
		if positive {
			return fmt.Errorf("%w: %s requiere cantidad negativa", domain.ErrValidation, t)
		}
	}
	return nil
}

// StockWarnings devuelve advertencias de umbral para el stock resultante.
func StockWarnings(p entity.Product) []entity.Warning {
	switch {
	case p.CurrentStock.IsNegative():
		return []entity.Warning{{
			Code:      entity.WarningStockNegative,
			Message:   fmt.Sprintf("el producto %s quedó con stock negativo (%s)", p.Name, p.CurrentStock.String()),
			ProductID: p.ID,
		}}
	case p.MinStock.IsPositive() && p.CurrentStock.LessThan(p.MinStock):
		return []entity.Warning{{
			Code:      entity.WarningStockBelowMinimum,
			Message:   fmt.Sprintf("el producto %s está por debajo del stock mínimo (%s < %s)", p.Name, p.CurrentStock.String(), p.MinStock.String()),
			ProductID: p.ID,
		}}
	}
	return nil
}

func floorZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
