// Package returns contiene las reglas puras de devolución.
package returns

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-ledger/internal/domain"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
)

// LineValue valor de qty unidades de la línea con el descuento de la orden prorrateado:
// qty·precio·neto/total, redondeado a centavos.
func LineValue(order *entity.Order, line entity.OrderLineItem, qty decimal.Decimal) decimal.Decimal {
	gross := qty.Mul(line.Price)
	if order.Total.IsPositive() && order.NetAmount.LessThan(order.Total) {
		gross = gross.Mul(order.NetAmount).Div(order.Total)
	}
	return domain.RoundMoney(gross)
}

// ReturnedValue valor acumulado devuelto de la orden según las cantidades devueltas de sus líneas.
func ReturnedValue(order *entity.Order) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range order.Items {
		sum = sum.Add(LineValue(order, l, l.ReturnedQuantity))
	}
	return sum
}

// ResolveStatus recalcula el estado de la orden después de una devolución.
// La orden queda "returned" si todas las líneas están devueltas por cantidad o si el
// valor acumulado devuelto cubre el monto neto; en otro caso "partially_returned".
func ResolveStatus(order *entity.Order) entity.OrderStatus {
	allReturned := len(order.Items) > 0
	anyReturned := false
	for i := range order.Items {
		l := &order.Items[i]
		if l.ReturnedQuantity.LessThan(l.Quantity) {
			allReturned = false
		}
		if l.ReturnedQuantity.IsPositive() {
			anyReturned = true
		}
	}
	if !anyReturned {
		return entity.OrderCompleted
	}
	if allReturned || ReturnedValue(order).GreaterThanOrEqual(order.NetAmount) {
		return entity.OrderReturned
	}
	return entity.OrderPartiallyReturned
}

// CashSplit reparte el total de un reembolso en efectivo. En caja solo sale (o entra) lo que
// realmente se cobró (o pagó) y aún no se reembolsó; el resto ajusta el saldo pendiente del tercero.
func CashSplit(total, paid, alreadyRefunded decimal.Decimal) (cash, balance decimal.Decimal) {
	available := paid.Sub(alreadyRefunded)
	if available.IsNegative() {
		available = decimal.Zero
	}
	cash = decimal.Min(total, available)
	return cash, total.Sub(cash)
}

// ReturnableStatus indica si la orden admite devoluciones en su estado actual.
// Una orden parcialmente devuelta sigue aceptando devoluciones sobre lo pendiente.
func ReturnableStatus(s entity.OrderStatus) bool {
	return s == entity.OrderCompleted || s == entity.OrderPartiallyReturned
}
