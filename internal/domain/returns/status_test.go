package returns_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/Inventario-ledger/internal/domain/returns"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func line(qty, price, returned int64) entity.OrderLineItem {
	return entity.OrderLineItem{
		Quantity:         decimal.NewFromInt(qty),
		Price:            decimal.NewFromInt(price),
		ReturnedQuantity: decimal.NewFromInt(returned),
	}
}

// orderOf arma una orden con total = Σ qty·precio y neto = total − discount.
func orderOf(discount int64, lines ...entity.OrderLineItem) *entity.Order {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}
	return &entity.Order{Total: total, NetAmount: total.Sub(decimal.NewFromInt(discount)), Items: lines}
}

func TestResolveStatus(t *testing.T) {
	cases := []struct {
		name  string
		order *entity.Order
		want  entity.OrderStatus
	}{
		{"sin devoluciones", orderOf(0, line(3, 5, 0)), entity.OrderCompleted},
		{"parcial", orderOf(0, line(3, 5, 2)), entity.OrderPartiallyReturned},
		{"todas las cantidades", orderOf(0, line(3, 5, 3), line(1, 2, 1)), entity.OrderReturned},
		// Con descuento el valor devuelto se prorratea: media orden sigue siendo parcial
		{"descuento prorrateado", orderOf(15, line(2, 10, 1), line(1, 5, 0)), entity.OrderPartiallyReturned},
		// Todas las unidades devueltas aunque el valor no alcance el neto
		{"cantidades sin valor", &entity.Order{NetAmount: d("10"), Items: []entity.OrderLineItem{line(1, 0, 1)}}, entity.OrderReturned},
		// Precio de línea por encima del total registrado: el valor cubre el neto antes que las cantidades
		{"valor cubre el neto", &entity.Order{Total: d("10"), NetAmount: d("10"), Items: []entity.OrderLineItem{line(2, 10, 1)}}, entity.OrderReturned},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, returns.ResolveStatus(tc.order))
		})
	}
}

func TestLineValue_ProrrateaDescuento(t *testing.T) {
	// 2 × 4.00 con descuento 4: neto 4, cada unidad vale 2
	o := orderOf(4, line(2, 4, 0))
	assert.True(t, returns.LineValue(o, o.Items[0], d("2")).Equal(d("4")))
	assert.True(t, returns.LineValue(o, o.Items[0], d("1")).Equal(d("2")))

	// Sin descuento el valor es qty·precio
	o = orderOf(0, line(3, 4, 0))
	assert.True(t, returns.LineValue(o, o.Items[0], d("2")).Equal(d("8")))

	// Se redondea a centavos: 1 de 3 unidades a 1.00 con neto 2
	o = orderOf(1, line(3, 1, 0))
	assert.True(t, returns.LineValue(o, o.Items[0], d("1")).Equal(d("0.67")))
}

func TestCashSplit(t *testing.T) {
	cases := []struct {
		name                  string
		total, paid, refunded string
		wantCash, wantBalance string
	}{
		{"pagada completa", "8", "12", "0", "8", "0"},
		{"a crédito", "8", "0", "0", "0", "8"},
		{"pago parcial", "8", "5", "0", "5", "3"},
		{"reembolsos previos", "8", "12", "10", "2", "6"},
		{"previos exceden lo pagado", "3", "5", "6", "0", "3"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cash, bal := returns.CashSplit(d(tc.total), d(tc.paid), d(tc.refunded))
			assert.True(t, cash.Equal(d(tc.wantCash)), "cash=%s", cash)
			assert.True(t, bal.Equal(d(tc.wantBalance)), "balance=%s", bal)
		})
	}
}

func TestReturnableStatus(t *testing.T) {
	assert.True(t, returns.ReturnableStatus(entity.OrderCompleted))
	assert.True(t, returns.ReturnableStatus(entity.OrderPartiallyReturned))
	assert.False(t, returns.ReturnableStatus(entity.OrderReturned))
	assert.False(t, returns.ReturnableStatus(entity.OrderCancelled))
}
