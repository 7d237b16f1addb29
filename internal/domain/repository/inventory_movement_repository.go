package repository

import (
	"context"

	"github.com/jhoicas/ventas-api/internal/domain/entity"
)

// InventoryMovementRepository persistencia del historial de movimientos (solo inserción).
type InventoryMovementRepository interface {
	Create(ctx context.Context, m *entity.InventoryMovement) error
	ListRecent(ctx context.Context, limit int) ([]*entity.MovementDetail, error)
	ListByProduct(ctx context.Context, productID string, limit int) ([]*entity.MovementDetail, error)
}
