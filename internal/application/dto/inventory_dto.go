package dto

import "time"

// CreateMovementRequest body para POST /api/inventory/movements.
// El usuario se toma del token, no del body.
type CreateMovementRequest struct {
	ProductID    string `json:"product_id"`
	MovementType string `json:"movement_type"` // entrada | salida
	Quantity     int    `json:"quantity"`
	Reason       string `json:"reason"`
}

// MovementCreatedResponse respuesta de un movimiento confirmado.
type MovementCreatedResponse struct {
	ID       string `json:"id"`
	NewStock int    `json:"new_stock"`
	Message  string `json:"message"`
}

// MovementResponse fila del historial de movimientos.
type MovementResponse struct {
	ID           string    `json:"id"`
	ProductID    string    `json:"product_id"`
	ProductName  string    `json:"product_name"`
	MovementType string    `json:"movement_type"`
	Quantity     int       `json:"quantity"`
	Reason       string    `json:"reason"`
	UserID       string    `json:"user_id"`
	Username     string    `json:"username"`
	CreatedAt    time.Time `json:"created_at"`
}

// LowStockItemDTO producto bajo mínimo con la cantidad sugerida de reposición.
type LowStockItemDTO struct {
	ProductID         string `json:"product_id"`
	SKU               string `json:"sku"`
	ProductName       string `json:"product_name"`
	CurrentStock      int    `json:"current_stock"`
	MinimumStock      int    `json:"minimum_stock"`
	TargetStock       int    `json:"target_stock"`        // máximo si existe, si no mínimo × 1.5
	SuggestedOrderQty int    `json:"suggested_order_qty"` // TargetStock - CurrentStock
	Priority          int    `json:"priority"`            // 1 = más urgente
}
