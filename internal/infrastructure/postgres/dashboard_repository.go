package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/ventas-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo consultas de solo lectura para el tablero.
type DashboardRepo struct {
	q Querier
}

// NewDashboardRepository construye el adaptador de agregados.
func NewDashboardRepository(q Querier) *DashboardRepo {
	return &DashboardRepo{q: q}
}

// SalesSince total y cantidad de ventas desde since.
func (r *DashboardRepo) SalesSince(ctx context.Context, since time.Time) (decimal.Decimal, int, error) {
	var total decimal.Decimal
	var count int
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(total_amount), 0), COUNT(*) FROM sales WHERE sale_date >= $1`, since,
	).Scan(&total, &count)
	if err != nil {
		return decimal.Zero, 0, fmt.Errorf("sales since: %w", err)
	}
	return total, count, nil
}

// StockTotals stock total, productos activos y valor del inventario a costo (stock negativo no suma valor).
func (r *DashboardRepo) StockTotals(ctx context.Context) (int, int, decimal.Decimal, error) {
	var stock, count int
	var value decimal.Decimal
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(SUM(current_stock), 0), COUNT(*),
			COALESCE(SUM(GREATEST(current_stock, 0) * cost_price), 0)
		FROM products WHERE is_active`,
	).Scan(&stock, &count, &value)
	if err != nil {
		return 0, 0, decimal.Zero, fmt.Errorf("stock totals: %w", err)
	}
	return stock, count, value, nil
}

// LowStockCount productos activos en o por debajo del mínimo.
func (r *DashboardRepo) LowStockCount(ctx context.Context) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE is_active AND current_stock <= minimum_stock`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("low stock count: %w", err)
	}
	return n, nil
}
