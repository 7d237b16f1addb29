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

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleSelect = `
	SELECT s.id, s.sale_number, s.customer_id, COALESCE(c.name, ''), s.sale_date, s.subtotal, s.tax_amount,
		s.total_amount, s.payment_method, s.user_id, COALESCE(u.username, ''), s.status, s.created_at
	FROM sales s
	LEFT JOIN customers c ON c.id = s.customer_id
	LEFT JOIN users u ON u.id = s.user_id`

// SaleRepo ventas y líneas de venta sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de ventas. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create inserta la cabecera de la venta.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	query := `
		INSERT INTO sales (id, sale_number, customer_id, sale_date, subtotal, tax_amount, total_amount,
			payment_method, user_id, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.SaleNumber, s.CustomerID, s.SaleDate, s.Subtotal, s.TaxAmount, s.TotalAmount,
		s.PaymentMethod, s.UserID, s.Status, s.CreatedAt,
	)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return fmt.Errorf("venta %s: %w", s.SaleNumber, domain.ErrDuplicate)
		case isForeignKeyViolation(err):
			return fmt.Errorf("cliente o usuario de la venta: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// CreateItem inserta una línea de venta.
func (r *SaleRepo) CreateItem(ctx context.Context, it *entity.SaleItem) error {
	query := `
		INSERT INTO sale_items (id, sale_id, product_id, quantity, unit_price, line_total)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, it.ID, it.SaleID, it.ProductID, it.Quantity, it.UnitPrice, it.LineTotal)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("producto %s: %w", it.ProductID, domain.ErrNotFound)
		}
		return fmt.Errorf("insert sale item: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de una venta. Devuelve nil, nil si no existe.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	s, err := scanSale(r.q.QueryRow(ctx, saleSelect+` WHERE s.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return s, nil
}

// GetItemsBySaleID líneas de la venta en orden de inserción, con el nombre del producto.
func (r *SaleRepo) GetItemsBySaleID(ctx context.Context, saleID string) ([]*entity.SaleItem, error) {
	query := `
		SELECT si.id, si.sale_id, si.product_id, p.name, si.quantity, si.unit_price, si.line_total
		FROM sale_items si JOIN products p ON p.id = si.product_id
		WHERE si.sale_id = $1 ORDER BY si.position`
	rows, err := r.q.Query(ctx, query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()
	var items []*entity.SaleItem
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.ProductName, &it.Quantity,
			&it.UnitPrice, &it.LineTotal); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

// List ventas más recientes primero.
func (r *SaleRepo) List(ctx context.Context, limit, offset int) ([]*entity.Sale, error) {
	return r.list(ctx, saleSelect+` ORDER BY s.created_at DESC LIMIT $1 OFFSET $2`,
		limitOrDefault(limit, 50, 500), offset)
}

// ListByCustomer historial de compras de un cliente.
func (r *SaleRepo) ListByCustomer(ctx context.Context, customerID string, limit int) ([]*entity.Sale, error) {
	return r.list(ctx, saleSelect+` WHERE s.customer_id = $1 ORDER BY s.created_at DESC LIMIT $2`,
		customerID, limitOrDefault(limit, 50, 500))
}

func (r *SaleRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Sale, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	err := row.Scan(&s.ID, &s.SaleNumber, &s.CustomerID, &s.CustomerName, &s.SaleDate, &s.Subtotal,
		&s.TaxAmount, &s.TotalAmount, &s.PaymentMethod, &s.UserID, &s.Username, &s.Status, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
