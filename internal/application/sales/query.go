package sales

import (
	"context"
	"fmt"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/application/ports"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// Claves de configuración usadas en el comprobante.
const (
	SettingBusinessName    = "business_name"
	SettingBusinessTaxID   = "business_tax_id"
	SettingBusinessAddress = "business_address"
	SettingBusinessPhone   = "business_phone"
)

// QueryUseCase lecturas de ventas y comprobante PDF.
type QueryUseCase struct {
	saleRepo     repository.SaleRepository
	customerRepo repository.CustomerRepository
	settingsRepo repository.SettingsRepository
	receipts     ports.ReceiptGenerator
}

// NewQueryUseCase construye el caso de uso de lectura.
func NewQueryUseCase(
	saleRepo repository.SaleRepository,
	customerRepo repository.CustomerRepository,
	settingsRepo repository.SettingsRepository,
	receipts ports.ReceiptGenerator,
) *QueryUseCase {
	return &QueryUseCase{saleRepo: saleRepo, customerRepo: customerRepo, settingsRepo: settingsRepo, receipts: receipts}
}

// Get devuelve la venta con sus líneas.
func (uc *QueryUseCase) Get(ctx context.Context, id string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.saleRepo.GetItemsBySaleID(ctx, id)
	if err != nil {
		return nil, err
	}
	sale.Items = items
	out := toSaleResponse(sale)
	return &out, nil
}

// List ventas más recientes primero, sin líneas.
func (uc *QueryUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.SaleResponse, error) {
	page.DefaultPage()
	list, err := uc.saleRepo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toSaleResponses(list), nil
}

// ListByCustomer historial de compras del cliente.
func (uc *QueryUseCase) ListByCustomer(ctx context.Context, customerID string, limit int) ([]dto.SaleResponse, error) {
	c, err := uc.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.saleRepo.ListByCustomer(ctx, customerID, limit)
	if err != nil {
		return nil, err
	}
	return toSaleResponses(list), nil
}

// Receipt genera el comprobante PDF de la venta.
func (uc *QueryUseCase) Receipt(ctx context.Context, id string) ([]byte, *dto.SaleResponse, error) {
	sale, err := uc.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	settings, err := uc.settingsRepo.All(ctx)
	if err != nil {
		return nil, nil, err
	}
	values := make(map[string]string, len(settings))
	for _, s := range settings {
		values[s.Key] = s.Value
	}
	info := ports.BusinessInfo{
		Name:    values[SettingBusinessName],
		TaxID:   values[SettingBusinessTaxID],
		Address: values[SettingBusinessAddress],
		Phone:   values[SettingBusinessPhone],
	}
	pdf, err := uc.receipts.GenerateSaleReceipt(sale, info)
	if err != nil {
		return nil, nil, fmt.Errorf("generar comprobante: %w", err)
	}
	return pdf, sale, nil
}

func toSaleResponses(list []*entity.Sale) []dto.SaleResponse {
	out := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toSaleResponse(s))
	}
	return out
}

func toSaleResponse(s *entity.Sale) dto.SaleResponse {
	r := dto.SaleResponse{
		ID:            s.ID,
		SaleNumber:    s.SaleNumber,
		CustomerID:    s.CustomerID,
		CustomerName:  s.CustomerName,
		SaleDate:      s.SaleDate,
		Subtotal:      s.Subtotal,
		TaxAmount:     s.TaxAmount,
		TotalAmount:   s.TotalAmount,
		PaymentMethod: s.PaymentMethod,
		UserID:        s.UserID,
		Username:      s.Username,
		Status:        s.Status,
	}
	for _, it := range s.Items {
		r.Items = append(r.Items, dto.SaleItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			LineTotal:   it.LineTotal,
		})
	}
	return r
}
