package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del inventario.
// CurrentStock solo lo modifica el ajustador de stock (ventas y movimientos); el CRUD nunca lo toca.
type Product struct {
	ID            string
	SKU           string // código único
	Name          string
	Description   string
	Brand         string
	CostPrice     decimal.Decimal
	SalePrice     decimal.Decimal
	CurrentStock  int
	MinimumStock  int
	MaximumStock  *int // nil = sin máximo definido
	UnitOfMeasure string
	Barcode       string
	CategoryID    *string
	SupplierID    *string
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Solo lectura, resueltos por join.
	CategoryName string
	SupplierName string
}

// IsLowStock indica si el stock está en o por debajo del mínimo.
func (p *Product) IsLowStock() bool {
	return p.CurrentStock <= p.MinimumStock
}

// InventoryValue stock actual valorizado a costo. Stock negativo aporta cero.
func (p *Product) InventoryValue() decimal.Decimal {
	if p.CurrentStock <= 0 {
		return decimal.Zero
	}
	return p.CostPrice.Mul(decimal.NewFromInt(int64(p.CurrentStock)))
}
