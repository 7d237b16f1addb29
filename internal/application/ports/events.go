package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// StockChange stock resultante de un producto tras confirmar la transacción.
type StockChange struct {
	ProductID string `json:"product_id"`
	Delta     int    `json:"delta"`
	NewStock  int    `json:"new_stock"`
}

// SaleCreatedEvent se publica después del commit de una venta.
type SaleCreatedEvent struct {
	SaleID      string          `json:"sale_id"`
	SaleNumber  string          `json:"sale_number"`
	UserID      string          `json:"user_id"`
	CustomerID  *string         `json:"customer_id,omitempty"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Stock       []StockChange   `json:"stock"`
	OccurredAt  time.Time       `json:"occurred_at"`
}

// MovementRecordedEvent se publica después del commit de un movimiento de inventario.
type MovementRecordedEvent struct {
	MovementID   string      `json:"movement_id"`
	MovementType string      `json:"movement_type"`
	Quantity     int         `json:"quantity"`
	UserID       string      `json:"user_id"`
	Stock        StockChange `json:"stock"`
	OccurredAt   time.Time   `json:"occurred_at"`
}

// EventPublisher puerto de salida para notificar cambios ya confirmados.
// Nunca se invoca dentro de una transacción; un fallo de publicación no revierte nada.
type EventPublisher interface {
	SaleCreated(ctx context.Context, ev SaleCreatedEvent) error
	MovementRecorded(ctx context.Context, ev MovementRecordedEvent) error
}

// NopPublisher descarta los eventos (sin broker configurado).
type NopPublisher struct{}

func (NopPublisher) SaleCreated(context.Context, SaleCreatedEvent) error           { return nil }
func (NopPublisher) MovementRecorded(context.Context, MovementRecordedEvent) error { return nil }
