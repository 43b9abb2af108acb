package inventory

import "github.com/shopspring/decimal"

// CostCalculator implementa el costo promedio ponderado sobre el total comprado (servicio de dominio).
// NuevoCosto = ((CostoActual * TotalComprado) + (Precio * CantEntrada)) / (TotalComprado + CantEntrada)
// Si no hubo compras previas el costo es el precio de la entrada.
func CostCalculator(totalPurchased, averageCost, qtyIn, price decimal.Decimal) decimal.Decimal {
	if !totalPurchased.GreaterThan(decimal.Zero) {
		return price
	}
	sum := totalPurchased.Add(qtyIn)
	if sum.LessThanOrEqual(decimal.Zero) {
		return averageCost
	}
	num := averageCost.Mul(totalPurchased).Add(price.Mul(qtyIn))
	return num.Div(sum)
}
