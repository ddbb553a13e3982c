package product

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/pricing"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
	"github.com/jhoicas/Tienda-api/internal/domain/units"
)

// UseCase gestiona el catálogo de productos (colaborador de captura).
// El stock NUNCA se muta aquí: eso es del ledger de inventario.
type UseCase struct {
	repo repository.ProductRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.ProductRepository) *UseCase {
	return &UseCase{repo: repo}
}

// validateUnits verifica la coherencia de las unidades del producto:
// familia válida, y unidades de compra/venta convertibles a la base (por
// tabla de familia o por factor plano).
func validateUnits(p *entity.Product) error {
	if !entity.ValidFamily(p.Family) || p.BaseUnit == "" {
		return domain.ErrInvalidInput
	}
	if fam, ok := units.FamilyOf(p.BaseUnit); ok && fam != p.Family {
		return domain.ErrInvalidInput
	}
	for _, u := range []string{p.PurchaseUnit, p.SellingUnit} {
		if u == "" || u == p.BaseUnit {
			continue
		}
		if units.IsSupported(u, p.BaseUnit) {
			continue
		}
		if u == p.PurchaseUnit && p.PurchaseUnitSize.IsPositive() {
			continue
		}
		if p.UnitConversionFactor.IsPositive() {
			continue
		}
		return domain.ErrConversionUnsupported
	}
	return nil
}

// Create da de alta un producto con stock cero.
func (uc *UseCase) Create(ctx context.Context, shopID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.SKU == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.CostPricePerBase.IsNegative() || in.SellingPricePerBase.IsNegative() ||
		in.WholesalePricePerBase.IsNegative() || in.LowStockThreshold.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	p := &entity.Product{
		ID:                    uuid.New().String(),
		ShopID:                shopID,
		SKU:                   in.SKU,
		Name:                  in.Name,
		Description:           in.Description,
		Family:                in.Family,
		BaseUnit:              in.BaseUnit,
		PurchaseUnit:          in.PurchaseUnit,
		PurchaseUnitSize:      in.PurchaseUnitSize,
		SellingUnit:           in.SellingUnit,
		UnitConversionFactor:  in.UnitConversionFactor,
		CostPricePerBase:      in.CostPricePerBase,
		SellingPricePerBase:   in.SellingPricePerBase,
		WholesalePricePerBase: in.WholesalePricePerBase,
		StockQuantity:         decimal.Zero,
		LowStockThreshold:     in.LowStockThreshold,
		IsActive:              true,
		SyncStatus:            entity.SyncStatusPending,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	if p.PurchaseUnit == "" {
		p.PurchaseUnit = p.BaseUnit
	}
	if p.SellingUnit == "" {
		p.SellingUnit = p.BaseUnit
	}
	if err := validateUnits(p); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(p); err != nil {
		return nil, err
	}
	return toResponse(p), nil
}

// Update edita un producto. El cambio de unidad base se rechaza mientras
// haya stock: reconvertir stock histórico en silencio corrompe el ledger.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrProductNotFound
	}
	if in.BaseUnit != "" && in.BaseUnit != p.BaseUnit && p.StockQuantity.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	if in.Name != "" {
		p.Name = in.Name
	}
	if in.Description != "" {
		p.Description = in.Description
	}
	if in.BaseUnit != "" {
		p.BaseUnit = in.BaseUnit
	}
	if in.PurchaseUnit != "" {
		p.PurchaseUnit = in.PurchaseUnit
	}
	if in.PurchaseUnitSize.IsPositive() {
		p.PurchaseUnitSize = in.PurchaseUnitSize
	}
	if in.SellingUnit != "" {
		p.SellingUnit = in.SellingUnit
	}
	if in.UnitConversionFactor.IsPositive() {
		p.UnitConversionFactor = in.UnitConversionFactor
	}
	if !in.CostPricePerBase.IsNegative() && !in.CostPricePerBase.IsZero() {
		p.CostPricePerBase = in.CostPricePerBase
	}
	if in.SellingPricePerBase.IsPositive() {
		p.SellingPricePerBase = in.SellingPricePerBase
	}
	if in.WholesalePricePerBase.IsPositive() {
		p.WholesalePricePerBase = in.WholesalePricePerBase
	}
	if in.LowStockThreshold.IsPositive() {
		p.LowStockThreshold = in.LowStockThreshold
	}
	if err := validateUnits(p); err != nil {
		return nil, err
	}
	p.SyncStatus = entity.SyncStatusPending
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(p); err != nil {
		return nil, err
	}
	return toResponse(p), nil
}

// GetByID devuelve un producto.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrProductNotFound
	}
	return toResponse(p), nil
}

// List lista productos paginados.
func (uc *UseCase) List(ctx context.Context, limit, offset int) ([]*dto.ProductResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toResponse(p))
	}
	return out, nil
}

// Pricing deriva precio/costo/margen para una cantidad en la unidad dada.
func (uc *UseCase) Pricing(ctx context.Context, id string, quantity decimal.Decimal, unit string) (*dto.PricingResponse, error) {
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrProductNotFound
	}
	if !quantity.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	qtyBase, err := units.ToBaseUnits(p, quantity, unit)
	if err != nil {
		return nil, err
	}
	price, err := pricing.PriceFor(p, quantity, unit)
	if err != nil {
		return nil, err
	}
	wholesale, err := pricing.WholesalePriceFor(p, quantity, unit)
	if err != nil {
		return nil, err
	}
	cost, err := pricing.CostFor(p, quantity, unit)
	if err != nil {
		return nil, err
	}
	costPerSU, err := pricing.CostPerSellingUnit(p)
	if err != nil {
		return nil, err
	}
	margin, err := pricing.ProfitMarginPercent(p)
	if err != nil {
		return nil, err
	}
	return &dto.PricingResponse{
		ProductID:           p.ID,
		Quantity:            quantity,
		Unit:                unit,
		QuantityInBaseUnits: qtyBase,
		Price:               price,
		WholesalePrice:      wholesale,
		Cost:                cost,
		CostPerSellingUnit:  costPerSU,
		ProfitMarginPercent: margin,
	}, nil
}

func toResponse(p *entity.Product) *dto.ProductResponse {
	inSelling, err := units.FromBaseUnits(p, p.StockQuantity, p.SellingUnit)
	if err != nil {
		inSelling = p.StockQuantity
	}
	return &dto.ProductResponse{
		ID:                    p.ID,
		SKU:                   p.SKU,
		Name:                  p.Name,
		Description:           p.Description,
		Family:                p.Family,
		BaseUnit:              p.BaseUnit,
		PurchaseUnit:          p.PurchaseUnit,
		PurchaseUnitSize:      p.PurchaseUnitSize,
		SellingUnit:           p.SellingUnit,
		UnitConversionFactor:  p.UnitConversionFactor,
		CostPricePerBase:      p.CostPricePerBase,
		SellingPricePerBase:   p.SellingPricePerBase,
		WholesalePricePerBase: p.WholesalePricePerBase,
		StockQuantity:         p.StockQuantity,
		StockInSellingUnit:    inSelling,
		LowStockThreshold:     p.LowStockThreshold,
		IsLowStock:            p.IsLowStock(),
		IsOutOfStock:          p.IsOutOfStock(),
		IsActive:              p.IsActive,
		CreatedAt:             p.CreatedAt,
		UpdatedAt:             p.UpdatedAt,
	}
}
