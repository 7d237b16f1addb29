package entity

import "time"

// Tipos de movimiento de inventario.
const (
	MovementTypeIn  = "entrada"
	MovementTypeOut = "salida"
)

// InventoryMovement ajuste manual de stock. Quantity siempre positiva; el signo lo da Type.
type InventoryMovement struct {
	ID        string
	ProductID string
	Type      string
	Quantity  int
	Reason    string
	UserID    string
	CreatedAt time.Time
}

// MovementDetail modelo de lectura: movimiento con nombre de producto y usuario.
type MovementDetail struct {
	InventoryMovement
	ProductName string
	Username    string
}
