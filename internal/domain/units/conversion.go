// Package units implementa la conversión de cantidades entre unidades de
// una misma familia de medida (peso, volumen, longitud) mediante tablas de
// multiplicadores fijos hacia una sub-unidad canónica:
//
//	convert(q, u1, u2) = q * tabla[u1] / tabla[u2]
//
// Todas las conversiones son puras y deterministas, en aritmética decimal
// (shopspring/decimal) para que los viajes compra→base→venta no acumulen
// error de coma flotante. Pares no soportados (ej: peso→volumen) se
// rechazan con ErrConversionUnsupported, nunca se dejan pasar en silencio.
package units

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
)

// factorTables mapea familia -> {unidad -> multiplicador respecto a la
// sub-unidad canónica de la familia (g, ml y mm respectivamente)}.
var factorTables = map[string]map[string]decimal.Decimal{
	entity.FamilyWeight: {
		"mg": decimal.RequireFromString("0.001"),
		"g":  decimal.NewFromInt(1),
		"kg": decimal.NewFromInt(1000),
		"t":  decimal.NewFromInt(1000000),
	},
	entity.FamilyVolume: {
		"ml": decimal.NewFromInt(1),
		"cl": decimal.NewFromInt(10),
		"l":  decimal.NewFromInt(1000),
	},
	entity.FamilyLength: {
		"mm": decimal.NewFromInt(1),
		"cm": decimal.NewFromInt(10),
		"m":  decimal.NewFromInt(1000),
	},
}

// FamilyOf devuelve la familia de medida a la que pertenece la unidad.
// La segunda salida es false para unidades fuera de las tablas (las de
// piece/pack son libres y se convierten con el factor plano del producto).
func FamilyOf(unit string) (string, bool) {
	for family, table := range factorTables {
		if _, ok := table[unit]; ok {
			return family, true
		}
	}
	return "", false
}

// IsSupported indica si el par (from, to) es convertible: misma unidad o
// ambas unidades dentro de la misma familia. Los llamadores deben
// consultar esto antes de Convert cuando la unidad viene del usuario.
func IsSupported(from, to string) bool {
	if from == to {
		return true
	}
	famFrom, okFrom := FamilyOf(from)
	famTo, okTo := FamilyOf(to)
	return okFrom && okTo && famFrom == famTo
}

// Convert convierte una cantidad entre dos unidades de la misma familia.
// Convert(q, u, u) == q idénticamente. Retorna ErrConversionUnsupported
// para pares entre familias o unidades desconocidas.
func Convert(quantity decimal.Decimal, from, to string) (decimal.Decimal, error) {
	if from == to {
		return quantity, nil
	}
	famFrom, okFrom := FamilyOf(from)
	famTo, okTo := FamilyOf(to)
	if !okFrom || !okTo || famFrom != famTo {
		return decimal.Zero, domain.ErrConversionUnsupported
	}
	table := factorTables[famFrom]
	return quantity.Mul(table[from]).Div(table[to]), nil
}

// ToBaseUnits convierte una cantidad expresada en cualquier unidad del
// producto a su unidad base. Orden de resolución: identidad, tabla de la
// familia, tamaño de unidad de compra, factor plano del producto (último
// recurso para piece/pack).
func ToBaseUnits(p *entity.Product, quantity decimal.Decimal, unit string) (decimal.Decimal, error) {
	if unit == "" || unit == p.BaseUnit {
		return quantity, nil
	}
	if IsSupported(unit, p.BaseUnit) {
		return Convert(quantity, unit, p.BaseUnit)
	}
	if unit == p.PurchaseUnit && p.PurchaseUnitSize.IsPositive() {
		return quantity.Mul(p.PurchaseUnitSize), nil
	}
	if p.UnitConversionFactor.IsPositive() {
		return quantity.Mul(p.UnitConversionFactor), nil
	}
	return decimal.Zero, domain.ErrConversionUnsupported
}

// FromBaseUnits convierte una cantidad en unidad base a otra unidad del
// producto (inversa de ToBaseUnits).
func FromBaseUnits(p *entity.Product, quantity decimal.Decimal, unit string) (decimal.Decimal, error) {
	if unit == "" || unit == p.BaseUnit {
		return quantity, nil
	}
	if IsSupported(p.BaseUnit, unit) {
		return Convert(quantity, p.BaseUnit, unit)
	}
	if unit == p.PurchaseUnit && p.PurchaseUnitSize.IsPositive() {
		return quantity.Div(p.PurchaseUnitSize), nil
	}
	if p.UnitConversionFactor.IsPositive() {
		return quantity.Div(p.UnitConversionFactor), nil
	}
	return decimal.Zero, domain.ErrConversionUnsupported
}
