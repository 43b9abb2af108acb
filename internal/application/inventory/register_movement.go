package inventory

import (
	"context"

	"github.com/jhoicas/Inventario-ledger/internal/application/dto"
)

// AdjustFromRequest adapta el request HTTP al caso de uso Adjust(ctx, AdjustmentInput).
func (uc *AdjustStockUseCase) AdjustFromRequest(ctx context.Context, actor string, in dto.StockAdjustmentRequest) (*MovementResult, error) {
	return uc.Adjust(ctx, AdjustmentInput{
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		UnitCost:  in.UnitCost,
		Notes:     in.Notes,
		Actor:     actor,
	})
}
