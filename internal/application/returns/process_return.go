// Package returns procesa devoluciones parciales o totales de compras y ventas.
package returns

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/jhoicas/Inventario-ledger/internal/application/cache"
	"github.com/jhoicas/Inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/Inventario-ledger/internal/application/moneybox"
	"github.com/jhoicas/Inventario-ledger/internal/application/ports"
	"github.com/jhoicas/Inventario-ledger/internal/domain"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
	domainmb "github.com/jhoicas/Inventario-ledger/internal/domain/moneybox"
	domainreturns "github.com/jhoicas/Inventario-ledger/internal/domain/returns"
)

var tracer = otel.Tracer("github.com/jhoicas/Inventario-ledger/internal/application/returns")

// LineInput cantidad a devolver de una línea original.
type LineInput struct {
	LineItemID string
	Quantity   decimal.Decimal
}

// ReturnInput solicitud de devolución. RefundMethod vacío equivale a "none".
type ReturnInput struct {
	OrderID      string
	Lines        []LineInput
	Reason       string
	RefundMethod string
	MoneyBoxID   string
	Actor        string
}

// ReturnResult resultado de la devolución.
type ReturnResult struct {
	ReturnID       string
	TotalAmount    decimal.Decimal
	NewOrderStatus entity.OrderStatus
	Return         entity.Return
	Warnings       []entity.Warning
}

// ProcessReturnUseCase revierte stock, cantidades devueltas y (opcionalmente) dinero
// de una orden en una sola transacción.
type ProcessReturnUseCase struct {
	txRunner ports.TxRunner
	recorder StockRecorder
	account  CashAccount
	cache    *cache.Gateway
	log      zerolog.Logger
}

// NewProcessReturnUseCase construye el caso de uso.
func NewProcessReturnUseCase(txRunner ports.TxRunner, recorder StockRecorder, account CashAccount, gateway *cache.Gateway, log zerolog.Logger) *ProcessReturnUseCase {
	return &ProcessReturnUseCase{txRunner: txRunner, recorder: recorder, account: account, cache: gateway, log: log}
}

// requestedLine línea validada: original resuelta y cantidad acumulada de la solicitud.
type requestedLine struct {
	line     entity.OrderLineItem
	quantity decimal.Decimal
}

// ProcessReturn valida todas las líneas antes de escribir; cualquier rechazo deja el estado intacto.
// No es idempotente: reenviar la misma solicitud aplica la devolución otra vez.
func (uc *ProcessReturnUseCase) ProcessReturn(ctx context.Context, in ReturnInput) (*ReturnResult, error) {
	ctx, span := tracer.Start(ctx, "returns.ProcessReturn")
	defer span.End()
	span.SetAttributes(attribute.String("order_id", in.OrderID))

	method, err := validateInput(in)
	if err != nil {
		return nil, err
	}

	var res *ReturnResult
	err = uc.cache.Run(ctx, uc.txRunner, func(repos ports.Repos) error {
		order, err := repos.Orders.GetForUpdate(ctx, in.OrderID)
		if err != nil {
			return fmt.Errorf("lock order %s: %w", in.OrderID, err)
		}
		if order == nil {
			return domain.NotFound("orden", in.OrderID)
		}
		if !domainreturns.ReturnableStatus(order.Status) {
			return fmt.Errorf("%w: la orden %s está en estado %s", domain.ErrInvalidState, order.ID, order.Status)
		}

		requested, err := resolveLines(order, in.Lines)
		if err != nil {
			return err
		}

		prior, err := repos.Returns.ListByOrder(ctx, order.ID)
		if err != nil {
			return fmt.Errorf("list previous returns: %w", err)
		}
		priorValue, priorCash := decimal.Zero, decimal.Zero
		for _, p := range prior {
			priorValue = priorValue.Add(p.TotalAmount)
			priorCash = priorCash.Add(p.CashRefunded)
		}

		now := time.Now().UTC()
		ret := entity.Return{
			OrderID:      order.ID,
			OrderKind:    order.Kind,
			Reason:       in.Reason,
			RefundMethod: method,
			MoneyBoxID:   in.MoneyBoxID,
			TotalAmount:  returnTotal(order, requested, priorValue),
			CashRefunded: decimal.Zero,
			CreatedBy:    in.Actor,
			CreatedAt:    now,
		}
		var toBalance decimal.Decimal
		switch method {
		case entity.RefundCash:
			ret.CashRefunded, toBalance = domainreturns.CashSplit(ret.TotalAmount, order.PaidAmount, priorCash)
		case entity.RefundBalance:
			toBalance = ret.TotalAmount
		}
		if err := repos.Returns.Create(ctx, &ret); err != nil {
			return fmt.Errorf("create return: %w", err)
		}

		movType, sign := entity.MovementSaleReturn, decimal.NewFromInt(1)
		if order.Kind == entity.OrderPurchase {
			movType, sign = entity.MovementPurchaseReturn, decimal.NewFromInt(-1)
		}
		ref := entity.Reference{Type: entity.ReferenceReturn, ID: ret.ID}

		var warnings []entity.Warning
		for _, rl := range requested {
			item := entity.ReturnItem{
				ReturnID:        ret.ID,
				OrderLineItemID: rl.line.ID,
				ProductID:       rl.line.ProductID,
				Quantity:        rl.quantity,
				Price:           rl.line.Price,
				Total:           domainreturns.LineValue(order, rl.line, rl.quantity),
			}
			if err := repos.Returns.CreateItem(ctx, &item); err != nil {
				return fmt.Errorf("create return item: %w", err)
			}
			ret.Items = append(ret.Items, item)

			if err := repos.Orders.UpdateReturnedQuantity(ctx, rl.line.ID, rl.line.ReturnedQuantity.Add(rl.quantity)); err != nil {
				return fmt.Errorf("update returned quantity: %w", err)
			}

			if !entity.IsCatalogProduct(rl.line.ProductID) {
				continue
			}
			mv, err := uc.recorder.Apply(ctx, repos, inventory.ApplyInput{
				ProductID: *rl.line.ProductID,
				Delta:     rl.quantity.Mul(sign),
				Type:      movType,
				UnitPrice: rl.line.Price,
				Reference: ref,
				Notes:     in.Reason,
				Actor:     in.Actor,
			})
			if err != nil {
				return err
			}
			warnings = append(warnings, mv.Warnings...)
		}

		if err := uc.refund(ctx, repos, order, ret, toBalance, in); err != nil {
			return err
		}

		updated, err := repos.Orders.GetByID(ctx, order.ID)
		if err != nil {
			return fmt.Errorf("get order: %w", err)
		}
		status := domainreturns.ResolveStatus(updated)
		if err := repos.Orders.UpdateStatus(ctx, order.ID, status); err != nil {
			return fmt.Errorf("update order status: %w", err)
		}

		res = &ReturnResult{
			ReturnID:       ret.ID,
			TotalAmount:    ret.TotalAmount,
			NewOrderStatus: status,
			Return:         ret,
			Warnings:       warnings,
		}
		return nil
	}, ports.FamilyReturns, ports.FamilyOrders, ports.FamilyProducts, ports.FamilyMovements, ports.FamilyMoneyBoxes, ports.FamilyParties)
	if err != nil {
		span.RecordError(err)
		return nil, domain.Integrity(err)
	}

	uc.log.Info().
		Str("order_id", in.OrderID).
		Str("return_id", res.ReturnID).
		Str("total", res.TotalAmount.String()).
		Str("status", string(res.NewOrderStatus)).
		Msg("devolución procesada")
	return res, nil
}

// refund aplica el efecto monetario: ret.CashRefunded en caja y toBalance contra el saldo del tercero.
func (uc *ProcessReturnUseCase) refund(ctx context.Context, repos ports.Repos, order *entity.Order, ret entity.Return, toBalance decimal.Decimal, in ReturnInput) error {
	if ret.CashRefunded.IsPositive() {
		// Venta: el dinero sale de la caja hacia el cliente. Compra: el proveedor lo reintegra.
		t := domainmb.SaleReturnRefund
		if order.Kind == entity.OrderPurchase {
			t = domainmb.PurchaseReturnRefund
		}
		if _, err := uc.account.RecordInTx(ctx, repos, moneybox.RecordInput{
			BoxID:     in.MoneyBoxID,
			Type:      t,
			Amount:    ret.CashRefunded,
			Reference: entity.Reference{Type: entity.ReferenceReturn, ID: ret.ID},
			Notes:     in.Reason,
			Actor:     in.Actor,
		}); err != nil {
			return err
		}
	}
	if !toBalance.IsPositive() {
		return nil
	}
	party, err := repos.Parties.GetForUpdate(ctx, order.PartyID)
	if err != nil {
		return fmt.Errorf("lock party %s: %w", order.PartyID, err)
	}
	if party == nil {
		return domain.NotFound("tercero", order.PartyID)
	}
	if err := repos.Parties.UpdateBalance(ctx, party.ID, party.Balance.Sub(toBalance)); err != nil {
		return fmt.Errorf("update party balance: %w", err)
	}
	return nil
}

// returnTotal valor de la devolución con el descuento prorrateado. Nunca supera el neto
// aún no devuelto; si la devolución completa la orden, toma exactamente ese resto.
func returnTotal(order *entity.Order, requested []requestedLine, priorValue decimal.Decimal) decimal.Decimal {
	outstanding := order.NetAmount.Sub(priorValue)
	if outstanding.IsNegative() {
		outstanding = decimal.Zero
	}
	total := decimal.Zero
	for _, rl := range requested {
		total = total.Add(domainreturns.LineValue(order, rl.line, rl.quantity))
	}
	if total.GreaterThan(outstanding) || completesOrder(order, requested) {
		return outstanding
	}
	return total
}

// completesOrder indica si tras la solicitud no queda ninguna unidad pendiente en la orden.
func completesOrder(order *entity.Order, requested []requestedLine) bool {
	pending := make(map[string]decimal.Decimal, len(order.Items))
	for _, l := range order.Items {
		pending[l.ID] = l.Returnable()
	}
	for _, rl := range requested {
		pending[rl.line.ID] = pending[rl.line.ID].Sub(rl.quantity)
	}
	for _, q := range pending {
		if q.IsPositive() {
			return false
		}
	}
	return true
}

// resolveLines agrupa ids repetidos y valida cada cantidad contra lo pendiente de la línea original.
func resolveLines(order *entity.Order, lines []LineInput) ([]requestedLine, error) {
	byID := make(map[string]entity.OrderLineItem, len(order.Items))
	for _, l := range order.Items {
		byID[l.ID] = l
	}

	var out []requestedLine
	index := make(map[string]int, len(lines))
	for _, l := range lines {
		original, ok := byID[l.LineItemID]
		if !ok {
			return nil, domain.NotFound("línea de la orden", l.LineItemID)
		}
		if i, seen := index[l.LineItemID]; seen {
			out[i].quantity = out[i].quantity.Add(l.Quantity)
			continue
		}
		index[l.LineItemID] = len(out)
		out = append(out, requestedLine{line: original, quantity: l.Quantity})
	}

	for _, rl := range out {
		available := rl.line.Returnable()
		if rl.quantity.GreaterThan(available) {
			return nil, &domain.RejectedQuantityError{
				LineItemID: rl.line.ID,
				Requested:  rl.quantity,
				Available:  available,
			}
		}
	}
	return out, nil
}

func validateInput(in ReturnInput) (string, error) {
	if strings.TrimSpace(in.OrderID) == "" {
		return "", domain.Validation("orden obligatoria")
	}
	if len(in.Lines) == 0 {
		return "", domain.Validation("la devolución debe tener al menos una línea")
	}
	for i, l := range in.Lines {
		if strings.TrimSpace(l.LineItemID) == "" {
			return "", domain.Validation("línea %d: id de línea obligatorio", i+1)
		}
		if !l.Quantity.IsPositive() {
			return "", domain.Validation("línea %d: la cantidad debe ser mayor que cero", i+1)
		}
	}
	method := strings.ToLower(strings.TrimSpace(in.RefundMethod))
	switch method {
	case "":
		method = entity.RefundNone
	case entity.RefundCash:
		if strings.TrimSpace(in.MoneyBoxID) == "" {
			return "", domain.Validation("el reembolso en efectivo requiere caja")
		}
	case entity.RefundBalance, entity.RefundNone:
	default:
		return "", domain.Validation("método de reembolso desconocido: %s", in.RefundMethod)
	}
	return method, nil
}
