package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// DashboardRepository consultas agregadas para el tablero.
type DashboardRepository interface {
	// SalesSince total vendido y número de ventas desde la fecha dada.
	SalesSince(ctx context.Context, since time.Time) (decimal.Decimal, int, error)
	// StockTotals suma de stock, productos activos y valor del inventario a costo.
	StockTotals(ctx context.Context) (totalStock, productCount int, value decimal.Decimal, err error)
	LowStockCount(ctx context.Context) (int, error)
}
