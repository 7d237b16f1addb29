package ports

import "github.com/jhoicas/ventas-api/internal/application/dto"

// BusinessInfo datos del negocio impresos en el comprobante (tomados de la configuración general).
type BusinessInfo struct {
	Name    string
	TaxID   string
	Address string
	Phone   string
}

// ReceiptGenerator genera el comprobante de una venta en PDF.
type ReceiptGenerator interface {
	GenerateSaleReceipt(sale *dto.SaleResponse, business BusinessInfo) ([]byte, error)
}
