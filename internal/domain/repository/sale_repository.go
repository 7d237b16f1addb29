package repository

import (
	"context"

	"github.com/jhoicas/ventas-api/internal/domain/entity"
)

// SaleRepository persistencia de ventas y sus líneas. Solo inserción y lectura.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	CreateItem(ctx context.Context, item *entity.SaleItem) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	GetItemsBySaleID(ctx context.Context, saleID string) ([]*entity.SaleItem, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Sale, error)
	ListByCustomer(ctx context.Context, customerID string, limit int) ([]*entity.Sale, error)
}
