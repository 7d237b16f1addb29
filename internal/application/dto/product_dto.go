package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. El stock siempre inicia en 0.
type CreateProductRequest struct {
	SKU           string          `json:"sku" validate:"required,min=1,max=50"`
	Name          string          `json:"name" validate:"required,min=1,max=150"`
	Description   string          `json:"description"`
	Brand         string          `json:"brand"`
	CostPrice     decimal.Decimal `json:"cost_price"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	MinimumStock  int             `json:"minimum_stock"`
	MaximumStock  *int            `json:"maximum_stock"`
	UnitOfMeasure string          `json:"unit_of_measure"`
	Barcode       string          `json:"barcode"`
	CategoryID    *string         `json:"category_id"`
	SupplierID    *string         `json:"supplier_id"`
}

// UpdateProductRequest entrada para actualizar un producto (sin stock).
type UpdateProductRequest struct {
	SKU           *string          `json:"sku"`
	Name          *string          `json:"name"`
	Description   *string          `json:"description"`
	Brand         *string          `json:"brand"`
	CostPrice     *decimal.Decimal `json:"cost_price"`
	SalePrice     *decimal.Decimal `json:"sale_price"`
	MinimumStock  *int             `json:"minimum_stock"`
	MaximumStock  *int             `json:"maximum_stock"`
	UnitOfMeasure *string          `json:"unit_of_measure"`
	Barcode       *string          `json:"barcode"`
	CategoryID    *string          `json:"category_id"` // "" quita la categoría
	SupplierID    *string          `json:"supplier_id"` // "" quita el proveedor
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID            string          `json:"id"`
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Brand         string          `json:"brand"`
	CostPrice     decimal.Decimal `json:"cost_price"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	CurrentStock  int             `json:"current_stock"`
	MinimumStock  int             `json:"minimum_stock"`
	MaximumStock  *int            `json:"maximum_stock"`
	UnitOfMeasure string          `json:"unit_of_measure"`
	Barcode       string          `json:"barcode"`
	CategoryID    *string         `json:"category_id"`
	CategoryName  string          `json:"category_name"`
	SupplierID    *string         `json:"supplier_id"`
	SupplierName  string          `json:"supplier_name"`
	IsActive      bool            `json:"is_active"`
	LowStock      bool            `json:"low_stock"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
