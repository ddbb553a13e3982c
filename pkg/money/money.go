// Package money formatea montos con su moneda para descripciones de
// asientos y respuestas de la API. El núcleo opera siempre en
// shopspring/decimal; aquí solo se da formato de presentación.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.Spanish)

// Format devuelve "COP 1500.00" validando el código ISO 4217; si el código
// no es válido se devuelve el monto solo, nunca se falla por presentación.
func Format(amount decimal.Decimal, code string) string {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return amount.StringFixed(2)
	}
	return printer.Sprintf("%v %v", unit, amount.StringFixed(2))
}

// Describe arma la descripción por defecto de un asiento del ledger.
func Describe(entryType string, amount decimal.Decimal, code string) string {
	return fmt.Sprintf("%s %s", entryType, Format(amount, code))
}
