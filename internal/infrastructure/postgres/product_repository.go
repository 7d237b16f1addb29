package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// productSelect lee el producto con los nombres de categoría y proveedor.
const productSelect = `
	SELECT p.id, p.sku, p.name, p.description, p.brand, p.cost_price, p.sale_price, p.current_stock,
		p.minimum_stock, p.maximum_stock, p.unit_of_measure, p.barcode, p.category_id, p.supplier_id,
		p.is_active, p.created_at, p.updated_at, COALESCE(c.name, ''), COALESCE(s.name, '')
	FROM products p
	LEFT JOIN categories c ON c.id = p.category_id
	LEFT JOIN suppliers s ON s.id = p.supplier_id`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto. El stock inicia en 0.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (id, sku, name, description, brand, cost_price, sale_price, current_stock,
			minimum_stock, maximum_stock, unit_of_measure, barcode, category_id, supplier_id, is_active,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 0, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.SKU, p.Name, p.Description, p.Brand, p.CostPrice, p.SalePrice,
		p.MinimumStock, p.MaximumStock, p.UnitOfMeasure, p.Barcode, p.CategoryID, p.SupplierID, p.IsActive,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return domain.ErrDuplicate
		case isForeignKeyViolation(err):
			return fmt.Errorf("categoría o proveedor: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("insert product: %w", err)
	}
	p.CurrentStock = 0
	return nil
}

// GetByID obtiene un producto por ID. Devuelve nil, nil si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, productSelect+` WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetBySKU obtiene un producto por SKU. Devuelve nil, nil si no existe.
func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, productSelect+` WHERE p.sku = $1`, sku))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by sku: %w", err)
	}
	return p, nil
}

// Update actualiza los datos descriptivos y precios. No modifica current_stock.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products SET sku = $2, name = $3, description = $4, brand = $5, cost_price = $6, sale_price = $7,
			minimum_stock = $8, maximum_stock = $9, unit_of_measure = $10, barcode = $11, category_id = $12,
			supplier_id = $13, is_active = $14, updated_at = $15
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		p.ID, p.SKU, p.Name, p.Description, p.Brand, p.CostPrice, p.SalePrice,
		p.MinimumStock, p.MaximumStock, p.UnitOfMeasure, p.Barcode, p.CategoryID, p.SupplierID, p.IsActive,
		p.UpdatedAt,
	)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return domain.ErrDuplicate
		case isForeignKeyViolation(err):
			return fmt.Errorf("categoría o proveedor: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista productos activos ordenados por nombre.
func (r *ProductRepo) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	query := productSelect + ` WHERE p.is_active ORDER BY p.name LIMIT $1 OFFSET $2`
	return r.list(ctx, query, limitOrDefault(limit, 50, 500), offset)
}

// Deactivate baja lógica: el producto deja de aceptar ventas y movimientos.
func (r *ProductRepo) Deactivate(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE products SET is_active = false, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivate product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListBelowMinimum productos activos con stock en o por debajo del mínimo, los más críticos primero.
func (r *ProductRepo) ListBelowMinimum(ctx context.Context, limit int) ([]*entity.Product, error) {
	query := productSelect + `
		WHERE p.is_active AND p.current_stock <= p.minimum_stock
		ORDER BY (p.current_stock - p.minimum_stock), p.name LIMIT $1`
	return r.list(ctx, query, limitOrDefault(limit, 100, 500))
}

func (r *ProductRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, query, args...)
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

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.SKU, &p.Name, &p.Description, &p.Brand, &p.CostPrice, &p.SalePrice,
		&p.CurrentStock, &p.MinimumStock, &p.MaximumStock, &p.UnitOfMeasure, &p.Barcode, &p.CategoryID,
		&p.SupplierID, &p.IsActive, &p.CreatedAt, &p.UpdatedAt, &p.CategoryName, &p.SupplierName)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
