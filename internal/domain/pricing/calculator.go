// Package pricing deriva costos, precios y márgenes para cualquier par
// cantidad+unidad a partir de los precios por unidad base del producto,
// normalizando siempre a través de la unidad base (servicio de dominio).
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/units"
)

var cien = decimal.NewFromInt(100)

// PriceFor devuelve el precio de venta de una cantidad en la unidad dada:
// convert(cantidad, unidad, base) * SellingPricePerBase.
func PriceFor(p *entity.Product, quantity decimal.Decimal, unit string) (decimal.Decimal, error) {
	base, err := units.ToBaseUnits(p, quantity, unit)
	if err != nil {
		return decimal.Zero, err
	}
	return base.Mul(p.SellingPricePerBase), nil
}

// CostFor devuelve el costo de una cantidad en la unidad dada (simétrico a PriceFor).
func CostFor(p *entity.Product, quantity decimal.Decimal, unit string) (decimal.Decimal, error) {
	base, err := units.ToBaseUnits(p, quantity, unit)
	if err != nil {
		return decimal.Zero, err
	}
	return base.Mul(p.CostPricePerBase), nil
}

// WholesalePriceFor devuelve el precio mayorista de una cantidad en la unidad dada.
func WholesalePriceFor(p *entity.Product, quantity decimal.Decimal, unit string) (decimal.Decimal, error) {
	base, err := units.ToBaseUnits(p, quantity, unit)
	if err != nil {
		return decimal.Zero, err
	}
	return base.Mul(p.WholesalePricePerBase), nil
}

// CostPerSellingUnit devuelve el costo efectivo de UNA unidad de venta,
// normalizado a través de la unidad base. Cuando la unidad de compra y la
// de venta difieren, el margen debe derivarse de este valor, nunca de
// CostPricePerBase directamente.
func CostPerSellingUnit(p *entity.Product) (decimal.Decimal, error) {
	return CostFor(p, decimal.NewFromInt(1), p.SellingUnit)
}

// SellingPricePerSellingUnit devuelve el precio de venta de UNA unidad de venta.
func SellingPricePerSellingUnit(p *entity.Product) (decimal.Decimal, error) {
	return PriceFor(p, decimal.NewFromInt(1), p.SellingUnit)
}

// ProfitMarginPercent devuelve el margen porcentual sobre el costo,
// normalizando costo y venta a la unidad de venta:
// (venta - costo) / costo * 100; 0 cuando el costo es cero.
func ProfitMarginPercent(p *entity.Product) (decimal.Decimal, error) {
	cost, err := CostPerSellingUnit(p)
	if err != nil {
		return decimal.Zero, err
	}
	if cost.IsZero() {
		return decimal.Zero, nil
	}
	sell, err := SellingPricePerSellingUnit(p)
	if err != nil {
		return decimal.Zero, err
	}
	return sell.Sub(cost).Div(cost).Mul(cien), nil
}

// ProfitPerSellingUnit devuelve la ganancia absoluta por unidad de venta.
func ProfitPerSellingUnit(p *entity.Product) (decimal.Decimal, error) {
	cost, err := CostPerSellingUnit(p)
	if err != nil {
		return decimal.Zero, err
	}
	sell, err := SellingPricePerSellingUnit(p)
	if err != nil {
		return decimal.Zero, err
	}
	return sell.Sub(cost), nil
}

// LineTotal calcula subtotal de una línea: cantidad en la unidad dada por
// precio unitario expresado en esa misma unidad.
func LineTotal(quantity, unitPrice decimal.Decimal) decimal.Decimal {
	return quantity.Mul(unitPrice)
}
