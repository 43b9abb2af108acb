// Package orders crea compras y ventas: cabecera, líneas, movimientos de stock, pago en caja
// y saldo del tercero en una sola transacción.
package orders

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
	"github.com/jhoicas/Inventario-ledger/internal/domain/credit"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
	domainmb "github.com/jhoicas/Inventario-ledger/internal/domain/moneybox"
)

var tracer = otel.Tracer("github.com/jhoicas/Inventario-ledger/internal/application/orders")

// LineInput línea solicitada. ProductID nil o vacío = línea fuera de catálogo.
type LineInput struct {
	ProductID   *string
	Description string
	Quantity    decimal.Decimal
	Price       decimal.Decimal
}

// OrderInput entrada común de compras y ventas.
type OrderInput struct {
	PartyID       string
	InvoiceNumber string
	Items         []LineInput
	Discount      decimal.Decimal
	PaidAmount    decimal.Decimal
	MoneyBoxID    string
	Notes         string
	Actor         string
}

// PurchaseResult orden creada, advertencias y estado de crédito con el proveedor.
type PurchaseResult struct {
	Order        entity.Order
	Warnings     []entity.Warning
	CreditStatus *credit.Status
}

// SaleResult orden creada y advertencias.
type SaleResult struct {
	Order    entity.Order
	Warnings []entity.Warning
}

// CreateOrderUseCase orquesta applyPurchase y applySale.
type CreateOrderUseCase struct {
	txRunner ports.TxRunner
	recorder StockRecorder
	account  CashAccount
	advisor  CreditAdvisor
	cache    *cache.Gateway
	log      zerolog.Logger
}

// NewCreateOrderUseCase construye el caso de uso.
func NewCreateOrderUseCase(
	txRunner ports.TxRunner,
	recorder StockRecorder,
	account CashAccount,
	advisor CreditAdvisor,
	gateway *cache.Gateway,
	log zerolog.Logger,
) *CreateOrderUseCase {
	return &CreateOrderUseCase{
		txRunner: txRunner,
		recorder: recorder,
		account:  account,
		advisor:  advisor,
		cache:    gateway,
		log:      log,
	}
}

// orderKindRules parámetros que distinguen compra de venta.
type orderKindRules struct {
	kind      entity.OrderKind
	partyKind string
	movement  entity.MovementType
	sign      decimal.Decimal
	payment   domainmb.TransactionType
}

var (
	purchaseRules = orderKindRules{
		kind:      entity.OrderPurchase,
		partyKind: entity.PartySupplier,
		movement:  entity.MovementPurchase,
		sign:      decimal.NewFromInt(1),
		payment:   domainmb.PurchasePayment,
	}
	saleRules = orderKindRules{
		kind:      entity.OrderSale,
		partyKind: entity.PartyCustomer,
		movement:  entity.MovementSale,
		sign:      decimal.NewFromInt(-1),
		payment:   domainmb.SaleIncome,
	}
)

// ApplyPurchase registra una compra: entra stock, se recalcula el costo promedio,
// el pago sale de la caja y el pendiente queda como saldo con el proveedor.
func (uc *CreateOrderUseCase) ApplyPurchase(ctx context.Context, in OrderInput) (*PurchaseResult, error) {
	ctx, span := tracer.Start(ctx, "orders.ApplyPurchase")
	defer span.End()

	order, warnings, status, err := uc.apply(ctx, purchaseRules, in)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.String("order_id", order.ID))
	return &PurchaseResult{Order: *order, Warnings: warnings, CreditStatus: status}, nil
}

// ApplySale registra una venta: sale stock, el cobro entra a la caja y el pendiente
// queda como saldo del cliente.
func (uc *CreateOrderUseCase) ApplySale(ctx context.Context, in OrderInput) (*SaleResult, error) {
	ctx, span := tracer.Start(ctx, "orders.ApplySale")
	defer span.End()

	order, warnings, _, err := uc.apply(ctx, saleRules, in)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.String("order_id", order.ID))
	return &SaleResult{Order: *order, Warnings: warnings}, nil
}

func (uc *CreateOrderUseCase) apply(ctx context.Context, rules orderKindRules, in OrderInput) (*entity.Order, []entity.Warning, *credit.Status, error) {
	total, net, err := validateInput(in)
	if err != nil {
		return nil, nil, nil, err
	}
	remaining := net.Sub(in.PaidAmount)

	var (
		order    *entity.Order
		warnings []entity.Warning
		status   *credit.Status
	)
	err = uc.cache.Run(ctx, uc.txRunner, func(repos ports.Repos) error {
		warnings = nil

		party, err := repos.Parties.GetForUpdate(ctx, in.PartyID)
		if err != nil {
			return fmt.Errorf("lock party %s: %w", in.PartyID, err)
		}
		if party == nil {
			return domain.NotFound("tercero", in.PartyID)
		}
		if party.Kind != rules.partyKind {
			return domain.Validation("el tercero %s no es un %s", party.ID, rules.partyKind)
		}

		if in.InvoiceNumber != "" {
			exists, err := repos.Orders.ExistsByPartyAndInvoice(ctx, rules.kind, party.ID, in.InvoiceNumber)
			if err != nil {
				return fmt.Errorf("check invoice number: %w", err)
			}
			if exists {
				return fmt.Errorf("%w: factura %s", domain.ErrDuplicateReference, in.InvoiceNumber)
			}
		}

		// El catálogo se resuelve completo antes de aplicar cualquier movimiento
		for i := range in.Items {
			if !entity.IsCatalogProduct(in.Items[i].ProductID) {
				continue
			}
			id := *in.Items[i].ProductID
			p, err := repos.Products.GetByID(ctx, id)
			if err != nil {
				return fmt.Errorf("get product %s: %w", id, err)
			}
			if p == nil {
				return domain.NotFound("producto", id)
			}
		}

		var creditWarnings []entity.Warning
		status, creditWarnings = uc.advisor.Check(ctx, repos.Parties, party.ID, remaining)
		warnings = append(warnings, creditWarnings...)

		now := time.Now().UTC()
		order = &entity.Order{
			Kind:          rules.kind,
			PartyID:       party.ID,
			InvoiceNumber: in.InvoiceNumber,
			Total:         total,
			Discount:      in.Discount,
			NetAmount:     net,
			PaidAmount:    in.PaidAmount,
			Status:        entity.OrderCompleted,
			MoneyBoxID:    in.MoneyBoxID,
			Notes:         in.Notes,
			CreatedBy:     in.Actor,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := repos.Orders.Create(ctx, order); err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		ref := entity.Reference{Type: referenceFor(rules.kind), ID: order.ID}
		for _, li := range in.Items {
			item := entity.OrderLineItem{
				OrderID:          order.ID,
				ProductID:        li.ProductID,
				Description:      li.Description,
				Quantity:         li.Quantity,
				Price:            li.Price,
				ReturnedQuantity: decimal.Zero,
			}
			if !entity.IsCatalogProduct(li.ProductID) {
				item.ProductID = nil
			}
			if err := repos.Orders.CreateLineItem(ctx, &item); err != nil {
				return fmt.Errorf("create order line item: %w", err)
			}
			order.Items = append(order.Items, item)

			if item.ProductID == nil {
				continue
			}
			res, err := uc.recorder.Apply(ctx, repos, inventory.ApplyInput{
				ProductID: *item.ProductID,
				Delta:     item.Quantity.Mul(rules.sign),
				Type:      rules.movement,
				UnitPrice: item.Price,
				Reference: ref,
				Notes:     in.Notes,
				Actor:     in.Actor,
			})
			if err != nil {
				return err
			}
			warnings = append(warnings, res.Warnings...)
		}

		if in.PaidAmount.IsPositive() {
			if _, err := uc.account.RecordInTx(ctx, repos, moneybox.RecordInput{
				BoxID:     in.MoneyBoxID,
				Type:      rules.payment,
				Amount:    in.PaidAmount,
				Reference: ref,
				Notes:     in.Notes,
				Actor:     in.Actor,
			}); err != nil {
				return err
			}
		}

		if !remaining.IsZero() {
			if err := repos.Parties.UpdateBalance(ctx, party.ID, party.Balance.Add(remaining)); err != nil {
				return fmt.Errorf("update party balance: %w", err)
			}
		}
		return nil
	}, ports.FamilyOrders, ports.FamilyProducts, ports.FamilyMovements, ports.FamilyMoneyBoxes, ports.FamilyParties)
	if err != nil {
		return nil, nil, nil, domain.Integrity(err)
	}

	uc.log.Info().
		Str("order_id", order.ID).
		Str("kind", string(rules.kind)).
		Str("party_id", in.PartyID).
		Str("net_amount", net.String()).
		Int("warnings", len(warnings)).
		Msg("orden registrada")
	return order, warnings, status, nil
}

// validateInput valida la entrada y devuelve total bruto y neto.
func validateInput(in OrderInput) (total, net decimal.Decimal, err error) {
	if strings.TrimSpace(in.PartyID) == "" {
		return total, net, domain.Validation("tercero obligatorio")
	}
	if len(in.Items) == 0 {
		return total, net, domain.Validation("la orden debe tener al menos una línea")
	}
	total = decimal.Zero
	for i, li := range in.Items {
		if !li.Quantity.IsPositive() {
			return total, net, domain.Validation("línea %d: la cantidad debe ser mayor que cero", i+1)
		}
		if li.Price.IsNegative() {
			return total, net, domain.Validation("línea %d: precio negativo", i+1)
		}
		if !entity.IsCatalogProduct(li.ProductID) && strings.TrimSpace(li.Description) == "" {
			return total, net, domain.Validation("línea %d: una línea fuera de catálogo requiere descripción", i+1)
		}
		total = total.Add(li.Quantity.Mul(li.Price))
	}
	// Las líneas admiten precios de 4 decimales; la cabecera se guarda a 2
	total = domain.RoundMoney(total)
	if in.Discount.IsNegative() {
		return total, net, domain.Validation("descuento negativo")
	}
	if err := domain.CheckMoney("descuento", in.Discount); err != nil {
		return total, net, err
	}
	if err := domain.CheckMoney("monto pagado", in.PaidAmount); err != nil {
		return total, net, err
	}
	net = total.Sub(in.Discount)
	if net.IsNegative() {
		return total, net, domain.Validation("el descuento supera el total")
	}
	if in.PaidAmount.IsNegative() || in.PaidAmount.GreaterThan(net) {
		return total, net, domain.Validation("el monto pagado debe estar entre 0 y %s", net.StringFixed(2))
	}
	if in.PaidAmount.IsPositive() && strings.TrimSpace(in.MoneyBoxID) == "" {
		return total, net, domain.Validation("un pago requiere caja")
	}
	return total, net, nil
}

func referenceFor(kind entity.OrderKind) string {
	if kind == entity.OrderPurchase {
		return entity.ReferencePurchase
	}
	return entity.ReferenceSale
}
