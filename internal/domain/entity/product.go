package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Familias de medida soportadas por producto.
const (
	FamilyPiece  = "piece"
	FamilyWeight = "weight"
	FamilyVolume = "volume"
	FamilyLength = "length"
	FamilyPack   = "pack"
)

// ValidFamily indica si la familia de medida es una de las soportadas.
func ValidFamily(f string) bool {
	switch f {
	case FamilyPiece, FamilyWeight, FamilyVolume, FamilyLength, FamilyPack:
		return true
	}
	return false
}

// Product representa un producto o SKU de la tienda.
// StockQuantity se expresa SIEMPRE en unidad base y es la única fuente de
// verdad del stock; solo se muta a través del ledger de inventario.
// Los precios (costo, venta, mayorista) son por UNA unidad base.
type Product struct {
	ID                    string
	ShopID                string
	SKU                   string // código único por tienda
	Name                  string
	Description           string
	Family                string          // piece, weight, volume, length, pack
	BaseUnit              string          // unidad canónica de stock y precios (ej: g, ml, unit)
	PurchaseUnit          string          // unidad en la que se compra (ej: kg, caja)
	PurchaseUnitSize      decimal.Decimal // unidades base por unidad de compra
	SellingUnit           string          // unidad en la que se vende
	UnitConversionFactor  decimal.Decimal // multiplicador plano, último recurso para piece/pack
	CostPricePerBase      decimal.Decimal
	SellingPricePerBase   decimal.Decimal
	WholesalePricePerBase decimal.Decimal
	StockQuantity         decimal.Decimal // siempre en unidad base, nunca negativo
	LowStockThreshold     decimal.Decimal // en unidad base
	IsActive              bool
	SyncStatus            string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// IsLowStock indica stock bajo: 0 < stock <= umbral.
func (p *Product) IsLowStock() bool {
	return p.StockQuantity.IsPositive() && p.StockQuantity.LessThanOrEqual(p.LowStockThreshold)
}

// IsOutOfStock indica stock agotado (exactamente cero).
func (p *Product) IsOutOfStock() bool {
	return p.StockQuantity.IsZero()
}
