package entity

import "github.com/shopspring/decimal"

// DashboardStats agregados mostrados en el tablero principal.
type DashboardStats struct {
	MonthlySales   decimal.Decimal
	SalesCount     int
	TotalStock     int
	ProductCount   int
	InventoryValue decimal.Decimal
	LowStockCount  int
}
