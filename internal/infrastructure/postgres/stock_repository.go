package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/inventory"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Adjust aplica delta con una sola sentencia relativa. El UPDATE toma el lock de la fila,
// así dos transacciones sobre el mismo producto se serializan y ninguna pierde su cambio.
func (r *StockRepo) Adjust(ctx context.Context, productID string, delta int, allowNegative bool) (int, error) {
	query := `
		UPDATE products SET current_stock = current_stock + $2, updated_at = now()
		WHERE id = $1 AND is_active AND ($3 OR current_stock + $2 >= 0)
		RETURNING current_stock`
	var stock int
	err := r.q.QueryRow(ctx, query, productID, delta, allowNegative).Scan(&stock)
	if err == nil {
		return stock, nil
	}
	if isNumericOutOfRange(err) {
		return 0, fmt.Errorf("producto %s: %w", productID, inventory.ErrStockOutOfRange)
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("adjust stock %s: %w", productID, err)
	}

	var active bool
	err = r.q.QueryRow(ctx, `SELECT is_active FROM products WHERE id = $1`, productID).Scan(&active)
	if errors.Is(err, pgx.ErrNoRows) || (err == nil && !active) {
		return 0, fmt.Errorf("producto %s: %w", productID, domain.ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("check product %s: %w", productID, err)
	}
	return 0, fmt.Errorf("producto %s: %w", productID, domain.ErrInsufficientStock)
}
