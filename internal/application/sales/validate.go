package sales

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// maxItems límite de líneas por venta.
const maxItems = 500

// maxAmount tope exclusivo de los montos: las columnas son NUMERIC(12,2).
var maxAmount = decimal.New(1, 10)

// validLine línea ya verificada, con el total recalculado.
type validLine struct {
	ProductID string
	Quantity  int
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}

// validSale venta verificada lista para persistir.
type validSale struct {
	CustomerID    *string
	Lines         []validLine
	Subtotal      decimal.Decimal
	TaxAmount     decimal.Decimal
	TotalAmount   decimal.Decimal
	PaymentMethod string
}

// validate comprueba la forma de la venta y la coherencia de los montos enviados por el cliente:
// line_total = quantity × unit_price, subtotal = Σ line_total, total = subtotal + tax (a 2 decimales).
func validate(in dto.CreateSaleRequest) (*validSale, error) {
	if len(in.Items) == 0 {
		return nil, domain.Invalid("items", "la venta debe tener al menos un producto")
	}
	if len(in.Items) > maxItems {
		return nil, domain.Invalid("items", fmt.Sprintf("máximo %d líneas por venta", maxItems))
	}
	method := strings.ToLower(strings.TrimSpace(in.PaymentMethod))
	if !entity.ValidPaymentMethod(method) {
		return nil, domain.Invalid("payment_method", "debe ser efectivo, tarjeta, transferencia o cheque")
	}

	var customerID *string
	if in.CustomerID != nil && strings.TrimSpace(*in.CustomerID) != "" {
		id := strings.TrimSpace(*in.CustomerID)
		if _, err := uuid.Parse(id); err != nil {
			return nil, domain.Invalid("customer_id", "identificador inválido")
		}
		customerID = &id
	}

	out := &validSale{CustomerID: customerID, PaymentMethod: method, Lines: make([]validLine, 0, len(in.Items))}
	sum := decimal.Zero
	perProduct := make(map[string]int64, len(in.Items))
	for i, it := range in.Items {
		field := fmt.Sprintf("items[%d]", i)
		if _, err := uuid.Parse(it.ProductID); err != nil {
			return nil, domain.Invalid(field+".product_id", "identificador inválido")
		}
		if it.Quantity <= 0 {
			return nil, domain.Invalid(field+".quantity", "debe ser mayor a 0")
		}
		if it.Quantity > inventory.MaxQuantity {
			return nil, domain.Invalid(field+".quantity", fmt.Sprintf("máximo %d", inventory.MaxQuantity))
		}
		perProduct[it.ProductID] += int64(it.Quantity)
		if perProduct[it.ProductID] > inventory.MaxQuantity {
			return nil, domain.Invalid(field+".quantity", fmt.Sprintf("la cantidad total del producto supera %d", inventory.MaxQuantity))
		}
		if it.UnitPrice.IsNegative() {
			return nil, domain.Invalid(field+".unit_price", "no puede ser negativo")
		}
		if !it.UnitPrice.Equal(money(it.UnitPrice)) {
			return nil, domain.Invalid(field+".unit_price", "máximo 2 decimales")
		}
		if it.UnitPrice.GreaterThanOrEqual(maxAmount) {
			return nil, amountTooLarge(field + ".unit_price")
		}
		lineTotal := it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))).Round(2)
		if lineTotal.GreaterThanOrEqual(maxAmount) {
			return nil, amountTooLarge(field + ".line_total")
		}
		if it.LineTotal != nil && !money(*it.LineTotal).Equal(lineTotal) {
			return nil, domain.Invalid(field+".line_total", fmt.Sprintf("se esperaba %s", lineTotal.StringFixed(2)))
		}
		sum = sum.Add(lineTotal)
		out.Lines = append(out.Lines, validLine{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			LineTotal: lineTotal,
		})
	}

	if sum.GreaterThanOrEqual(maxAmount) {
		return nil, amountTooLarge("subtotal")
	}
	if !money(in.Subtotal).Equal(sum) {
		return nil, domain.Invalid("subtotal", fmt.Sprintf("se esperaba %s", sum.StringFixed(2)))
	}
	if in.TaxAmount.IsNegative() {
		return nil, domain.Invalid("tax_amount", "no puede ser negativo")
	}
	if !in.TaxAmount.Equal(money(in.TaxAmount)) {
		return nil, domain.Invalid("tax_amount", "máximo 2 decimales")
	}
	if in.TaxAmount.GreaterThanOrEqual(maxAmount) {
		return nil, amountTooLarge("tax_amount")
	}
	tax := in.TaxAmount
	total := sum.Add(tax)
	if total.GreaterThanOrEqual(maxAmount) {
		return nil, amountTooLarge("total_amount")
	}
	if !money(in.TotalAmount).Equal(total) {
		return nil, domain.Invalid("total_amount", fmt.Sprintf("se esperaba %s", total.StringFixed(2)))
	}
	out.Subtotal, out.TaxAmount, out.TotalAmount = sum, tax, total
	return out, nil
}

func amountTooLarge(field string) error {
	return domain.Invalid(field, "debe ser menor a "+maxAmount.StringFixed(0))
}

func money(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
