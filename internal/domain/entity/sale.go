package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago aceptados.
const (
	PaymentCash     = "efectivo"
	PaymentCard     = "tarjeta"
	PaymentTransfer = "transferencia"
	PaymentCheck    = "cheque"
)

// SaleStatusCompleted único estado de una venta registrada.
const SaleStatusCompleted = "completada"

// ValidPaymentMethod indica si m es uno de los métodos de pago aceptados.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentTransfer, PaymentCheck:
		return true
	}
	return false
}

// Sale cabecera de una venta. Inmutable una vez confirmada.
type Sale struct {
	ID            string
	SaleNumber    string
	CustomerID    *string
	CustomerName  string // solo lectura (join)
	SaleDate      time.Time
	Subtotal      decimal.Decimal
	TaxAmount     decimal.Decimal
	TotalAmount   decimal.Decimal
	PaymentMethod string
	UserID        string
	Username      string // solo lectura (join)
	Status        string
	CreatedAt     time.Time
	Items         []*SaleItem
}

// SaleItem línea de una venta.
type SaleItem struct {
	ID          string
	SaleID      string
	ProductID   string
	ProductName string // solo lectura (join)
	Quantity    int
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
}
