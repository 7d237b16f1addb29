package inventory

import (
	"context"
	"sort"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// LowStockUseCase genera la lista de reposición: productos en o bajo su stock mínimo
// con la cantidad sugerida para volver al objetivo.
type LowStockUseCase struct {
	productRepo repository.ProductRepository
}

// NewLowStockUseCase construye el caso de uso de reposición.
func NewLowStockUseCase(productRepo repository.ProductRepository) *LowStockUseCase {
	return &LowStockUseCase{productRepo: productRepo}
}

// List devuelve las sugerencias ordenadas por urgencia.
// Objetivo = stock máximo si está definido; si no, mínimo × 1.5 (redondeado hacia arriba).
func (uc *LowStockUseCase) List(ctx context.Context, limit int) ([]dto.LowStockItemDTO, error) {
	products, err := uc.productRepo.ListBelowMinimum(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LowStockItemDTO, 0, len(products))
	for _, p := range products {
		target := (p.MinimumStock*3 + 1) / 2
		if p.MaximumStock != nil && *p.MaximumStock > p.MinimumStock {
			target = *p.MaximumStock
		}
		suggested := target - p.CurrentStock
		if suggested < 0 {
			suggested = 0
		}
		out = append(out, dto.LowStockItemDTO{
			ProductID:         p.ID,
			SKU:               p.SKU,
			ProductName:       p.Name,
			CurrentStock:      p.CurrentStock,
			MinimumStock:      p.MinimumStock,
			TargetStock:       target,
			SuggestedOrderQty: suggested,
		})
	}

	// Primero el mayor déficit bajo el mínimo; a igualdad, el de mayor pedido sugerido.
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		defA, defB := a.MinimumStock-a.CurrentStock, b.MinimumStock-b.CurrentStock
		if defA != defB {
			return defA > defB
		}
		return a.SuggestedOrderQty > b.SuggestedOrderQty
	})
	for i := range out {
		out[i].Priority = i + 1
	}
	return out, nil
}
