package dto

import "github.com/shopspring/decimal"

// DashboardStatsDTO respuesta de GET /api/dashboard/stats.
type DashboardStatsDTO struct {
	MonthlySales   decimal.Decimal `json:"monthly_sales"`   // total vendido en el mes en curso
	SalesCount     int             `json:"sales_count"`     // ventas del mes en curso
	TotalStock     int             `json:"total_stock"`     // unidades en inventario (productos activos)
	ProductCount   int             `json:"product_count"`   // productos activos
	InventoryValue decimal.Decimal `json:"inventory_value"` // stock valorizado a costo
	LowStockCount  int             `json:"low_stock_count"` // productos en o bajo el mínimo
	DateLabel      string          `json:"date_label"`      // ej. "Octubre 2026"
}
