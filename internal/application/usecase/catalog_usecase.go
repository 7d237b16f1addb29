package usecase

import (
	"context"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// CatalogUseCase listas de categorías y proveedores para los selectores de producto.
type CatalogUseCase struct {
	categories repository.CategoryRepository
	suppliers  repository.SupplierRepository
}

func NewCatalogUseCase(categories repository.CategoryRepository, suppliers repository.SupplierRepository) *CatalogUseCase {
	return &CatalogUseCase{categories: categories, suppliers: suppliers}
}

// Categories todas las categorías por nombre.
func (uc *CatalogUseCase) Categories(ctx context.Context) ([]dto.CategoryResponse, error) {
	list, err := uc.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.CategoryResponse{ID: c.ID, Name: c.Name, Description: c.Description, CreatedAt: c.CreatedAt})
	}
	return out, nil
}

// Suppliers proveedores activos por nombre.
func (uc *CatalogUseCase) Suppliers(ctx context.Context) ([]dto.SupplierResponse, error) {
	list, err := uc.suppliers.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.SupplierResponse{
			ID:          s.ID,
			Name:        s.Name,
			ContactName: s.ContactName,
			Phone:       s.Phone,
			Email:       s.Email,
			Address:     s.Address,
			CreatedAt:   s.CreatedAt,
		})
	}
	return out, nil
}
