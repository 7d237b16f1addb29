package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

// InventoryMovementRepo implementación sobre PostgreSQL (usable con pool o tx).
type InventoryMovementRepo struct {
	q Querier
}

// NewInventoryMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryMovementRepository(q Querier) *InventoryMovementRepo {
	return &InventoryMovementRepo{q: q}
}

// Create persiste un movimiento de inventario.
func (r *InventoryMovementRepo) Create(ctx context.Context, m *entity.InventoryMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `
		INSERT INTO inventory_movements (id, product_id, movement_type, quantity, reason, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, m.ID, m.ProductID, m.Type, m.Quantity, m.Reason, m.UserID, m.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("producto o usuario del movimiento: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("create inventory movement: %w", err)
	}
	return nil
}

// ListRecent últimos movimientos, más recientes primero.
func (r *InventoryMovementRepo) ListRecent(ctx context.Context, limit int) ([]*entity.MovementDetail, error) {
	query := movementSelect + ` ORDER BY m.created_at DESC LIMIT $1`
	return r.list(ctx, query, limitOrDefault(limit, 100, 100))
}

// ListByProduct historial de un producto, más recientes primero.
func (r *InventoryMovementRepo) ListByProduct(ctx context.Context, productID string, limit int) ([]*entity.MovementDetail, error) {
	query := movementSelect + ` WHERE m.product_id = $1 ORDER BY m.created_at DESC LIMIT $2`
	return r.list(ctx, query, productID, limitOrDefault(limit, 100, 500))
}

const movementSelect = `
	SELECT m.id, m.product_id, m.movement_type, m.quantity, m.reason, m.user_id, m.created_at,
		p.name, COALESCE(u.username, '')
	FROM inventory_movements m
	JOIN products p ON p.id = m.product_id
	LEFT JOIN users u ON u.id = m.user_id`

func (r *InventoryMovementRepo) list(ctx context.Context, query string, args ...any) ([]*entity.MovementDetail, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.MovementDetail
	for rows.Next() {
		var d entity.MovementDetail
		if err := rows.Scan(&d.ID, &d.ProductID, &d.Type, &d.Quantity, &d.Reason, &d.UserID, &d.CreatedAt,
			&d.ProductName, &d.Username); err != nil {
			return nil, fmt.Errorf("scan inventory movement: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}
