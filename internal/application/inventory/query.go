package inventory

import (
	"context"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// MaxMovements tope de filas devueltas por el historial.
const MaxMovements = 100

// MovementQueryUseCase lectura del historial de movimientos.
type MovementQueryUseCase struct {
	movRepo     repository.InventoryMovementRepository
	productRepo repository.ProductRepository
}

func NewMovementQueryUseCase(movRepo repository.InventoryMovementRepository, productRepo repository.ProductRepository) *MovementQueryUseCase {
	return &MovementQueryUseCase{movRepo: movRepo, productRepo: productRepo}
}

// ListRecent últimos movimientos, más recientes primero (máximo 100).
func (uc *MovementQueryUseCase) ListRecent(ctx context.Context, limit int) ([]dto.MovementResponse, error) {
	if limit <= 0 || limit > MaxMovements {
		limit = MaxMovements
	}
	list, err := uc.movRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	return toMovementResponses(list), nil
}

// ListByProduct historial de un producto.
func (uc *MovementQueryUseCase) ListByProduct(ctx context.Context, productID string, limit int) ([]dto.MovementResponse, error) {
	p, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if limit <= 0 || limit > MaxMovements {
		limit = MaxMovements
	}
	list, err := uc.movRepo.ListByProduct(ctx, productID, limit)
	if err != nil {
		return nil, err
	}
	return toMovementResponses(list), nil
}

func toMovementResponses(list []*entity.MovementDetail) []dto.MovementResponse {
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.MovementResponse{
			ID:           m.ID,
			ProductID:    m.ProductID,
			ProductName:  m.ProductName,
			MovementType: m.Type,
			Quantity:     m.Quantity,
			Reason:       m.Reason,
			UserID:       m.UserID,
			Username:     m.Username,
			CreatedAt:    m.CreatedAt,
		})
	}
	return out
}
