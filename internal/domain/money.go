package domain

import "github.com/shopspring/decimal"

// MoneyPlaces decimales de los importes persistidos (NUMERIC(18,2)).
const MoneyPlaces = 2

// RoundMoney redondea un importe calculado a MoneyPlaces.
func RoundMoney(v decimal.Decimal) decimal.Decimal {
	return v.Round(MoneyPlaces)
}

// CheckMoney rechaza importes con más decimales de los que se persisten.
// Si se aceptaran, saldo y transacciones se redondearían por separado en la base.
func CheckMoney(field string, v decimal.Decimal) error {
	if !v.Equal(v.Round(MoneyPlaces)) {
		return Validation("%s admite como máximo %d decimales: %s", field, MoneyPlaces, v.String())
	}
	return nil
}
