package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. El stock se maneja vía ventas y movimientos.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un nuevo producto. El stock inicia en 0.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	sku := strings.TrimSpace(in.SKU)
	name := strings.TrimSpace(in.Name)
	if sku == "" {
		return nil, domain.Invalid("sku", "obligatorio")
	}
	if name == "" {
		return nil, domain.Invalid("name", "obligatorio")
	}
	if err := checkPricesAndLimits(in.CostPrice.IsNegative(), in.SalePrice.IsNegative(), in.MinimumStock, in.MaximumStock); err != nil {
		return nil, err
	}
	categoryID, err := optionalRef("category_id", in.CategoryID)
	if err != nil {
		return nil, err
	}
	supplierID, err := optionalRef("supplier_id", in.SupplierID)
	if err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if in.UnitOfMeasure == "" {
		in.UnitOfMeasure = "unidad"
	}
	now := time.Now()
	product := &entity.Product{
		ID:            uuid.New().String(),
		SKU:           sku,
		Name:          name,
		Description:   in.Description,
		Brand:         in.Brand,
		CostPrice:     in.CostPrice.Round(2),
		SalePrice:     in.SalePrice.Round(2),
		CurrentStock:  0,
		MinimumStock:  in.MinimumStock,
		MaximumStock:  in.MaximumStock,
		UnitOfMeasure: in.UnitOfMeasure,
		Barcode:       in.Barcode,
		CategoryID:    categoryID,
		SupplierID:    supplierID,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return uc.reload(ctx, product)
}

// GetByID obtiene un producto por ID. ErrNotFound si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// Update actualiza un producto. No permite modificar el stock.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.SKU != nil {
		sku := strings.TrimSpace(*in.SKU)
		if sku == "" {
			return nil, domain.Invalid("sku", "obligatorio")
		}
		if sku != product.SKU {
			other, err := uc.repo.GetBySKU(ctx, sku)
			if err != nil {
				return nil, err
			}
			if other != nil {
				return nil, domain.ErrDuplicate
			}
		}
		product.SKU = sku
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, domain.Invalid("name", "obligatorio")
		}
		product.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Brand != nil {
		product.Brand = *in.Brand
	}
	if in.CostPrice != nil {
		product.CostPrice = in.CostPrice.Round(2)
	}
	if in.SalePrice != nil {
		product.SalePrice = in.SalePrice.Round(2)
	}
	if in.MinimumStock != nil {
		product.MinimumStock = *in.MinimumStock
	}
	if in.MaximumStock != nil {
		product.MaximumStock = in.MaximumStock
	}
	if in.UnitOfMeasure != nil {
		product.UnitOfMeasure = *in.UnitOfMeasure
	}
	if in.Barcode != nil {
		product.Barcode = *in.Barcode
	}
	if in.CategoryID != nil {
		if product.CategoryID, err = optionalRef("category_id", in.CategoryID); err != nil {
			return nil, err
		}
	}
	if in.SupplierID != nil {
		if product.SupplierID, err = optionalRef("supplier_id", in.SupplierID); err != nil {
			return nil, err
		}
	}
	if err := checkPricesAndLimits(product.CostPrice.IsNegative(), product.SalePrice.IsNegative(), product.MinimumStock, product.MaximumStock); err != nil {
		return nil, err
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return uc.reload(ctx, product)
}

// List lista productos activos con paginación.
func (uc *ProductUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Delete baja lógica del producto; su historial de ventas y movimientos se conserva.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Deactivate(ctx, id)
}

// reload relee el producto guardado para devolver los nombres de categoría y proveedor.
func (uc *ProductUseCase) reload(ctx context.Context, saved *entity.Product) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(ctx, saved.ID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		p = saved
	}
	return toProductResponse(p), nil
}

// optionalRef normaliza una referencia opcional: nil o "" = sin referencia.
func optionalRef(field string, id *string) (*string, error) {
	if id == nil || strings.TrimSpace(*id) == "" {
		return nil, nil
	}
	v := strings.TrimSpace(*id)
	if _, err := uuid.Parse(v); err != nil {
		return nil, domain.Invalid(field, "identificador inválido")
	}
	return &v, nil
}

func checkPricesAndLimits(negCost, negSale bool, minimum int, maximum *int) error {
	if negCost {
		return domain.Invalid("cost_price", "no puede ser negativo")
	}
	if negSale {
		return domain.Invalid("sale_price", "no puede ser negativo")
	}
	if minimum < 0 {
		return domain.Invalid("minimum_stock", "no puede ser negativo")
	}
	if maximum != nil && *maximum < minimum {
		return domain.Invalid("maximum_stock", "debe ser mayor o igual al mínimo")
	}
	return nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:            p.ID,
		SKU:           p.SKU,
		Name:          p.Name,
		Description:   p.Description,
		Brand:         p.Brand,
		CostPrice:     p.CostPrice,
		SalePrice:     p.SalePrice,
		CurrentStock:  p.CurrentStock,
		MinimumStock:  p.MinimumStock,
		MaximumStock:  p.MaximumStock,
		UnitOfMeasure: p.UnitOfMeasure,
		Barcode:       p.Barcode,
		CategoryID:    p.CategoryID,
		CategoryName:  p.CategoryName,
		SupplierID:    p.SupplierID,
		SupplierName:  p.SupplierName,
		IsActive:      p.IsActive,
		LowStock:      p.IsLowStock(),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
