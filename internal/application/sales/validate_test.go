package sales

import (
	"context"
	"errors"
	"testing"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/inventory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Rechazos(t *testing.T) {
	base := func() dto.CreateSaleRequest { return saleOf(item(productA, 3, "100")) }
	badTotal := dec("999")

	cases := []struct {
		name  string
		field string
		edit  func(r *dto.CreateSaleRequest)
	}{
		{"sin items", "items", func(r *dto.CreateSaleRequest) { r.Items = nil }},
		{"cantidad cero", "items[0].quantity", func(r *dto.CreateSaleRequest) { r.Items[0].Quantity = 0 }},
		{"precio negativo", "items[0].unit_price", func(r *dto.CreateSaleRequest) { r.Items[0].UnitPrice = dec("-1") }},
		{"precio con 3 decimales", "items[0].unit_price", func(r *dto.CreateSaleRequest) { r.Items[0].UnitPrice = dec("1.005") }},
		{"producto inválido", "items[0].product_id", func(r *dto.CreateSaleRequest) { r.Items[0].ProductID = "abc" }},
		{"line_total incoherente", "items[0].line_total", func(r *dto.CreateSaleRequest) { r.Items[0].LineTotal = &badTotal }},
		{"subtotal incoherente", "subtotal", func(r *dto.CreateSaleRequest) { r.Subtotal = dec("299") }},
		{"impuesto negativo", "tax_amount", func(r *dto.CreateSaleRequest) {
			r.TaxAmount = dec("-45")
			r.TotalAmount = dec("255")
		}},
		{"total incoherente", "total_amount", func(r *dto.CreateSaleRequest) { r.TotalAmount = dec("300") }},
		{"método de pago", "payment_method", func(r *dto.CreateSaleRequest) { r.PaymentMethod = "bitcoin" }},
		{"cliente inválido", "customer_id", func(r *dto.CreateSaleRequest) {
			id := "no-es-uuid"
			r.CustomerID = &id
		}},
		{"impuesto con 3 decimales", "tax_amount", func(r *dto.CreateSaleRequest) {
			r.TaxAmount = dec("45.001")
			r.TotalAmount = dec("345.001")
		}},

		// Topes de las columnas INTEGER y NUMERIC(12,2).
		{"cantidad fuera de rango", "items[0].quantity", func(r *dto.CreateSaleRequest) {
			*r = saleOf(item(productA, inventory.MaxQuantity+1, "1"))
		}},
		{"suma por producto fuera de rango", "items[1].quantity", func(r *dto.CreateSaleRequest) {
			*r = saleOf(item(productA, inventory.MaxQuantity, "0"), item(productA, 1, "0"))
		}},
		{"precio fuera de rango", "items[0].unit_price", func(r *dto.CreateSaleRequest) {
			*r = saleOf(item(productA, 1, "99999999999999.99"))
		}},
		{"línea fuera de rango", "items[0].line_total", func(r *dto.CreateSaleRequest) {
			*r = saleOf(item(productA, 2, "9999999999.99"))
		}},
		{"subtotal fuera de rango", "subtotal", func(r *dto.CreateSaleRequest) {
			*r = saleOf(item(productA, 1, "6000000000"), item(productB, 1, "6000000000"))
		}},
		{"impuesto fuera de rango", "tax_amount", func(r *dto.CreateSaleRequest) {
			r.TaxAmount = dec("10000000000")
			r.TotalAmount = dec("10000000300")
		}},
		{"total fuera de rango", "total_amount", func(r *dto.CreateSaleRequest) {
			*r = saleOf(item(productA, 1, "9000000000"))
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := base()
			tc.edit(&req)
			_, err := validate(req)
			require.Error(t, err)
			var ve *domain.ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tc.field, ve.Field)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestValidate_RedondeoADosDecimales(t *testing.T) {
	req := dto.CreateSaleRequest{
		Items:         []dto.SaleItemRequest{item(productA, 3, "0.33")},
		Subtotal:      dec("0.990"),
		TaxAmount:     dec("0.150"),
		TotalAmount:   dec("1.14"),
		PaymentMethod: "Tarjeta",
	}
	v, err := validate(req)
	require.NoError(t, err)
	assert.Equal(t, "tarjeta", v.PaymentMethod)
	assert.True(t, v.TaxAmount.Equal(decimal.RequireFromString("0.15")))
	assert.True(t, v.TotalAmount.Equal(decimal.RequireFromString("1.14")))
}

func TestCreateSale_ValidacionNoAbreTransaccion(t *testing.T) {
	st := newStore()
	uc := newUseCase(st, nil, false)

	req := saleOf(item(productA, 1, "10"))
	req.TotalAmount = dec("1")
	_, err := uc.Execute(context.Background(), userID, req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, st.Commits+st.Rollbacks)
	assert.Equal(t, 10, st.Stock(productA))
}

func TestValidate_MontosBajoElTope(t *testing.T) {
	req := saleOf(item(productA, inventory.MaxQuantity, "0"), item(productB, 1, "8000000000"))
	v, err := validate(req)
	require.NoError(t, err)
	assert.True(t, v.TotalAmount.Equal(dec("9200000000")))
}
