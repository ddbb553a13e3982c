package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, shop_id, sku, name, description, family, base_unit, purchase_unit, purchase_unit_size, selling_unit, unit_conversion_factor, cost_price_per_base, selling_price_per_base, wholesale_price_per_base, stock_quantity, low_stock_threshold, is_active, sync_status, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.ShopID, &p.SKU, &p.Name, &p.Description, &p.Family,
		&p.BaseUnit, &p.PurchaseUnit, &p.PurchaseUnitSize, &p.SellingUnit,
		&p.UnitConversionFactor, &p.CostPricePerBase, &p.SellingPricePerBase,
		&p.WholesalePricePerBase, &p.StockQuantity, &p.LowStockThreshold,
		&p.IsActive, &p.SyncStatus, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un nuevo producto. El stock inicia en 0.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.ShopID, product.SKU, product.Name, product.Description, product.Family,
		product.BaseUnit, product.PurchaseUnit, product.PurchaseUnitSize, product.SellingUnit,
		product.UnitConversionFactor, product.CostPricePerBase, product.SellingPricePerBase,
		product.WholesalePricePerBase, product.StockQuantity, product.LowStockThreshold,
		product.IsActive, product.SyncStatus, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetBySKU obtiene un producto por SKU.
func (r *ProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE sku = $1`
	p, err := scanProduct(r.q.QueryRow(context.Background(), query, sku))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by sku: %w", err)
	}
	return p, nil
}

// GetForUpdate obtiene un producto bloqueando su fila (FOR UPDATE).
// Solo tiene sentido sobre un repositorio atado a una transacción.
func (r *ProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 FOR UPDATE`
	p, err := scanProduct(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product for update: %w", err)
	}
	return p, nil
}

// Update actualiza un producto existente. No toca stock_quantity: el stock
// solo se muta vía UpdateStock desde el ledger de inventario.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET name = $2, description = $3, family = $4, base_unit = $5,
			purchase_unit = $6, purchase_unit_size = $7, selling_unit = $8,
			unit_conversion_factor = $9, cost_price_per_base = $10, selling_price_per_base = $11,
			wholesale_price_per_base = $12, low_stock_threshold = $13, is_active = $14,
			sync_status = $15, updated_at = $16
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Description, product.Family, product.BaseUnit,
		product.PurchaseUnit, product.PurchaseUnitSize, product.SellingUnit,
		product.UnitConversionFactor, product.CostPricePerBase, product.SellingPricePerBase,
		product.WholesalePricePerBase, product.LowStockThreshold, product.IsActive,
		product.SyncStatus, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// UpdateStock persiste el stock derivado del ledger (usado por el motor de inventario).
func (r *ProductRepo) UpdateStock(productID string, stock decimal.Decimal, at time.Time) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET stock_quantity = $2, sync_status = 'pending', updated_at = $3 WHERE id = $1`,
		productID, stock, at,
	)
	if err != nil {
		return fmt.Errorf("update product stock: %w", err)
	}
	return nil
}

// List lista productos con paginación.
func (r *ProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// ListLowStock lista productos activos con stock bajo (0 < stock <= umbral).
func (r *ProductRepo) ListLowStock(limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
		WHERE is_active AND stock_quantity > 0 AND stock_quantity <= low_stock_threshold
		ORDER BY stock_quantity ASC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
