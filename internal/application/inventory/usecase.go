package inventory

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/jhoicas/Inventario-ledger/internal/application/cache"
	"github.com/jhoicas/Inventario-ledger/internal/application/ports"
	"github.com/jhoicas/Inventario-ledger/internal/domain"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
)

var tracer = otel.Tracer("github.com/jhoicas/Inventario-ledger/internal/application/inventory")

// AdjustStockUseCase registra ajustes manuales de inventario (conteos, mermas) en su propia transacción.
type AdjustStockUseCase struct {
	txRunner ports.TxRunner
	recorder *Recorder
	cache    *cache.Gateway
	log      zerolog.Logger
}

// NewAdjustStockUseCase construye el caso de uso.
func NewAdjustStockUseCase(txRunner ports.TxRunner, recorder *Recorder, gateway *cache.Gateway, log zerolog.Logger) *AdjustStockUseCase {
	return &AdjustStockUseCase{txRunner: txRunner, recorder: recorder, cache: gateway, log: log}
}

// AdjustmentInput entrada para un ajuste. Quantity con signo; UnitCost opcional.
type AdjustmentInput struct {
	ProductID string
	Quantity  decimal.Decimal
	UnitCost  *decimal.Decimal
	Notes     string
	Actor     string
}

// Adjust aplica el ajuste y devuelve el movimiento escrito.
func (uc *AdjustStockUseCase) Adjust(ctx context.Context, in AdjustmentInput) (*MovementResult, error) {
	ctx, span := tracer.Start(ctx, "inventory.Adjust")
	defer span.End()

	if strings.TrimSpace(in.ProductID) == "" || in.Quantity.IsZero() {
		return nil, domain.Validation("producto y cantidad distinta de cero son obligatorios")
	}
	price := decimal.Zero
	if in.UnitCost != nil {
		if in.UnitCost.IsNegative() {
			return nil, domain.Validation("costo unitario negativo")
		}
		price = *in.UnitCost
	}
	span.SetAttributes(attribute.String("product_id", in.ProductID))

	ref := entity.Reference{Type: entity.ReferenceAdjustment, ID: uuid.New().String()}
	var res *MovementResult
	err := uc.cache.Run(ctx, uc.txRunner, func(repos ports.Repos) error {
		var err error
		res, err = uc.recorder.Apply(ctx, repos, ApplyInput{
			ProductID: in.ProductID,
			Delta:     in.Quantity,
			Type:      entity.MovementAdjustment,
			UnitPrice: price,
			Reference: ref,
			Notes:     in.Notes,
			Actor:     in.Actor,
		})
		return err
	}, ports.FamilyProducts, ports.FamilyMovements)
	if err != nil {
		span.RecordError(err)
		return nil, domain.Integrity(err)
	}
	uc.log.Info().Str("product_id", in.ProductID).Str("quantity", in.Quantity.String()).Msg("ajuste de inventario aplicado")
	return res, nil
}
