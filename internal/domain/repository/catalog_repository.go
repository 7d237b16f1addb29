package repository

import (
	"context"

	"github.com/jhoicas/ventas-api/internal/domain/entity"
)

// CategoryRepository catálogo de categorías (solo lectura desde la API).
type CategoryRepository interface {
	List(ctx context.Context) ([]*entity.Category, error)
}

// SupplierRepository catálogo de proveedores (solo lectura desde la API).
type SupplierRepository interface {
	// ListActive proveedores activos ordenados por nombre.
	ListActive(ctx context.Context) ([]*entity.Supplier, error)
}
