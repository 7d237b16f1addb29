package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest línea enviada por el cliente. LineTotal es opcional; si viene, se verifica.
type SaleItemRequest struct {
	ProductID string           `json:"product_id"`
	Quantity  int              `json:"quantity"`
	UnitPrice decimal.Decimal  `json:"unit_price"`
	LineTotal *decimal.Decimal `json:"line_total"`
}

// CreateSaleRequest body para POST /api/sales. Los totales los calcula el cliente y el servidor los verifica.
type CreateSaleRequest struct {
	CustomerID    *string           `json:"customer_id"`
	Items         []SaleItemRequest `json:"items"`
	Subtotal      decimal.Decimal   `json:"subtotal"`
	TaxAmount     decimal.Decimal   `json:"tax_amount"`
	TotalAmount   decimal.Decimal   `json:"total_amount"`
	PaymentMethod string            `json:"payment_method"`
}

// SaleCreatedResponse respuesta de una venta confirmada.
type SaleCreatedResponse struct {
	ID         string `json:"id"`
	SaleNumber string `json:"sale_number"`
	Message    string `json:"message"`
}

// SaleItemResponse línea de una venta leída.
type SaleItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// SaleResponse venta con sus líneas (las líneas se omiten en listados).
type SaleResponse struct {
	ID            string             `json:"id"`
	SaleNumber    string             `json:"sale_number"`
	CustomerID    *string            `json:"customer_id"`
	CustomerName  string             `json:"customer_name"`
	SaleDate      time.Time          `json:"sale_date"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	TaxAmount     decimal.Decimal    `json:"tax_amount"`
	TotalAmount   decimal.Decimal    `json:"total_amount"`
	PaymentMethod string             `json:"payment_method"`
	UserID        string             `json:"user_id"`
	Username      string             `json:"username"`
	Status        string             `json:"status"`
	Items         []SaleItemResponse `json:"items,omitempty"`
}
