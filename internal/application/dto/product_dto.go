package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest alta de producto (colaborador de captura de productos).
type CreateProductRequest struct {
	SKU                   string          `json:"sku"`
	Name                  string          `json:"name"`
	Description           string          `json:"description"`
	Family                string          `json:"family"` // piece, weight, volume, length, pack
	BaseUnit              string          `json:"base_unit"`
	PurchaseUnit          string          `json:"purchase_unit"`
	PurchaseUnitSize      decimal.Decimal `json:"purchase_unit_size"`
	SellingUnit           string          `json:"selling_unit"`
	UnitConversionFactor  decimal.Decimal `json:"unit_conversion_factor"`
	CostPricePerBase      decimal.Decimal `json:"cost_price_per_base"`
	SellingPricePerBase   decimal.Decimal `json:"selling_price_per_base"`
	WholesalePricePerBase decimal.Decimal `json:"wholesale_price_per_base"`
	LowStockThreshold     decimal.Decimal `json:"low_stock_threshold"`
}

// UpdateProductRequest edición de producto. El cambio de base_unit se
// rechaza mientras haya stock.
type UpdateProductRequest struct {
	Name                  string          `json:"name"`
	Description           string          `json:"description"`
	BaseUnit              string          `json:"base_unit"`
	PurchaseUnit          string          `json:"purchase_unit"`
	PurchaseUnitSize      decimal.Decimal `json:"purchase_unit_size"`
	SellingUnit           string          `json:"selling_unit"`
	UnitConversionFactor  decimal.Decimal `json:"unit_conversion_factor"`
	CostPricePerBase      decimal.Decimal `json:"cost_price_per_base"`
	SellingPricePerBase   decimal.Decimal `json:"selling_price_per_base"`
	WholesalePricePerBase decimal.Decimal `json:"wholesale_price_per_base"`
	LowStockThreshold     decimal.Decimal `json:"low_stock_threshold"`
}

// ProductResponse producto con stock en unidad base y de venta.
type ProductResponse struct {
	ID                    string          `json:"id"`
	SKU                   string          `json:"sku"`
	Name                  string          `json:"name"`
	Description           string          `json:"description,omitempty"`
	Family                string          `json:"family"`
	BaseUnit              string          `json:"base_unit"`
	PurchaseUnit          string          `json:"purchase_unit"`
	PurchaseUnitSize      decimal.Decimal `json:"purchase_unit_size"`
	SellingUnit           string          `json:"selling_unit"`
	UnitConversionFactor  decimal.Decimal `json:"unit_conversion_factor"`
	CostPricePerBase      decimal.Decimal `json:"cost_price_per_base"`
	SellingPricePerBase   decimal.Decimal `json:"selling_price_per_base"`
	WholesalePricePerBase decimal.Decimal `json:"wholesale_price_per_base"`
	StockQuantity         decimal.Decimal `json:"stock_quantity"` // unidad base
	StockInSellingUnit    decimal.Decimal `json:"stock_in_selling_unit"`
	LowStockThreshold     decimal.Decimal `json:"low_stock_threshold"`
	IsLowStock            bool            `json:"is_low_stock"`
	IsOutOfStock          bool            `json:"is_out_of_stock"`
	IsActive              bool            `json:"is_active"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
}

// PricingResponse costos/precios/margen derivados para cantidad+unidad.
type PricingResponse struct {
	ProductID           string          `json:"product_id"`
	Quantity            decimal.Decimal `json:"quantity"`
	Unit                string          `json:"unit"`
	QuantityInBaseUnits decimal.Decimal `json:"quantity_in_base_units"`
	Price               decimal.Decimal `json:"price"`
	WholesalePrice      decimal.Decimal `json:"wholesale_price"`
	Cost                decimal.Decimal `json:"cost"`
	CostPerSellingUnit  decimal.Decimal `json:"cost_per_selling_unit"`
	ProfitMarginPercent decimal.Decimal `json:"profit_margin_percent"`
}
