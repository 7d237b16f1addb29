package sales

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"testing"

	"github.com/jhoicas/ventas-api/internal/application/apptest"
	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/application/ports"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	productA  = "11111111-1111-1111-1111-111111111111"
	productB  = "22222222-2222-2222-2222-222222222222"
	missingID = "99999999-9999-9999-9999-999999999999"
	customerX = "33333333-3333-3333-3333-333333333333"
	userID    = "44444444-4444-4444-4444-444444444444"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

type recordingPublisher struct {
	mu    sync.Mutex
	sales []ports.SaleCreatedEvent
	err   error
}

func (p *recordingPublisher) SaleCreated(_ context.Context, ev ports.SaleCreatedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sales = append(p.sales, ev)
	return p.err
}

func (p *recordingPublisher) MovementRecorded(context.Context, ports.MovementRecordedEvent) error {
	return nil
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newStore() *apptest.Store {
	st := apptest.NewStore()
	st.PutProduct(entity.Product{ID: productA, SKU: "A", Name: "Producto A", CurrentStock: 10, IsActive: true})
	st.PutProduct(entity.Product{ID: productB, SKU: "B", Name: "Producto B", CurrentStock: 1, IsActive: true})
	st.PutCustomer(entity.Customer{ID: customerX, Name: "Cliente X", IsActive: true})
	return st
}

func newUseCase(st *apptest.Store, pub ports.EventPublisher, allowNegative bool) *CreateSaleUseCase {
	return NewCreateSaleUseCase(st, st.Customers(), pub, nil, allowNegative, logger.Nop())
}

// saleOf arma un request coherente: 15% de impuesto sobre el subtotal.
func saleOf(items ...dto.SaleItemRequest) dto.CreateSaleRequest {
	sub := decimal.Zero
	for _, it := range items {
		sub = sub.Add(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	tax := sub.Mul(dec("0.15")).Round(2)
	return dto.CreateSaleRequest{
		Items:         items,
		Subtotal:      sub,
		TaxAmount:     tax,
		TotalAmount:   sub.Add(tax),
		PaymentMethod: "efectivo",
	}
}

func item(productID string, qty int, price string) dto.SaleItemRequest {
	return dto.SaleItemRequest{ProductID: productID, Quantity: qty, UnitPrice: dec(price)}
}

// ── Escenarios ───────────────────────────────────────────────────────────────

func TestCreateSale_DescuentaStock(t *testing.T) {
	st := newStore()
	pub := &recordingPublisher{}
	uc := newUseCase(st, pub, false)

	lt := dec("300")
	req := dto.CreateSaleRequest{
		Items:         []dto.SaleItemRequest{{ProductID: productA, Quantity: 3, UnitPrice: dec("100"), LineTotal: &lt}},
		Subtotal:      dec("300"),
		TaxAmount:     dec("45"),
		TotalAmount:   dec("345"),
		PaymentMethod: "efectivo",
	}
	res, err := uc.Execute(context.Background(), userID, req)
	require.NoError(t, err)

	assert.Equal(t, 7, st.Stock(productA))
	assert.Regexp(t, regexp.MustCompile(`^SALE-\d+-[0-9a-f]{8}$`), res.SaleNumber)
	assert.Equal(t, "Venta creada correctamente", res.Message)

	sales, items, _ := st.Counts()
	assert.Equal(t, 1, sales)
	assert.Equal(t, 1, items)

	require.Len(t, pub.sales, 1)
	assert.Equal(t, res.ID, pub.sales[0].SaleID)
	assert.Equal(t, []ports.StockChange{{ProductID: productA, Delta: -3, NewStock: 7}}, pub.sales[0].Stock)
}

func TestCreateSale_AgrupaLineasDelMismoProducto(t *testing.T) {
	st := newStore()
	uc := newUseCase(st, nil, false)

	_, err := uc.Execute(context.Background(), userID, saleOf(
		item(productA, 2, "10"),
		item(productA, 3, "9.50"),
	))
	require.NoError(t, err)

	assert.Equal(t, 5, st.Stock(productA))
	_, items, _ := st.Counts()
	assert.Equal(t, 2, items, "se guarda una línea por item enviado")
}

func TestCreateSale_StockInsuficienteRevierteTodo(t *testing.T) {
	st := newStore()
	uc := newUseCase(st, nil, false)

	_, err := uc.Execute(context.Background(), userID, saleOf(
		item(productA, 2, "10"),
		item(productB, 2, "5"),
	))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, 10, st.Stock(productA), "el descuento de A no debe persistir")
	assert.Equal(t, 1, st.Stock(productB))
	sales, items, _ := st.Counts()
	assert.Zero(t, sales)
	assert.Zero(t, items)
}

func TestCreateSale_PermiteNegativoSiEstaConfigurado(t *testing.T) {
	st := newStore()
	uc := newUseCase(st, nil, true)

	_, err := uc.Execute(context.Background(), userID, saleOf(item(productB, 3, "5")))
	require.NoError(t, err)
	assert.Equal(t, -2, st.Stock(productB))
}

func TestCreateSale_ProductoInexistente(t *testing.T) {
	st := newStore()
	uc := newUseCase(st, nil, false)

	_, err := uc.Execute(context.Background(), userID, saleOf(
		item(productA, 1, "10"),
		item(missingID, 1, "10"),
	))
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, domain.KindReferential, domain.KindOf(err))
	assert.Equal(t, 10, st.Stock(productA))
}

func TestCreateSale_ProductoInactivo(t *testing.T) {
	st := newStore()
	st.PutProduct(entity.Product{ID: productB, SKU: "B", Name: "Producto B", CurrentStock: 5, IsActive: false})
	uc := newUseCase(st, nil, false)

	_, err := uc.Execute(context.Background(), userID, saleOf(item(productB, 1, "5")))
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 5, st.Stock(productB))
}

func TestCreateSale_FalloAlInsertarLinea(t *testing.T) {
	st := newStore()
	st.FailItemInsert = 2
	uc := newUseCase(st, nil, false)

	_, err := uc.Execute(context.Background(), userID, saleOf(
		item(productA, 1, "10"),
		item(productB, 1, "5"),
	))
	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.NotErrorIs(t, err, domain.ErrCommit)

	sales, items, _ := st.Counts()
	assert.Zero(t, sales, "sin cabecera huérfana")
	assert.Zero(t, items)
	assert.Equal(t, 10, st.Stock(productA))
}

func TestCreateSale_FalloEnCommit(t *testing.T) {
	st := newStore()
	st.FailCommit = true
	pub := &recordingPublisher{}
	uc := newUseCase(st, pub, false)

	_, err := uc.Execute(context.Background(), userID, saleOf(item(productA, 1, "10")))
	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.ErrorIs(t, err, domain.ErrCommit)
	assert.Equal(t, 10, st.Stock(productA))
	assert.Empty(t, pub.sales, "no se publica nada si no hubo commit")
}

func TestCreateSale_ContextoCancelado(t *testing.T) {
	st := newStore()
	uc := newUseCase(st, nil, false)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := uc.Execute(ctx, userID, saleOf(item(productA, 1, "10")))
	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.Equal(t, 10, st.Stock(productA))
}

func TestCreateSale_FalloDePublicacionNoAfectaLaVenta(t *testing.T) {
	st := newStore()
	uc := newUseCase(st, &recordingPublisher{err: errors.New("nats caído")}, false)

	res, err := uc.Execute(context.Background(), userID, saleOf(item(productA, 1, "10")))
	require.NoError(t, err)
	assert.NotEmpty(t, res.ID)
	assert.Equal(t, 9, st.Stock(productA))
}

func TestCreateSale_Cliente(t *testing.T) {
	st := newStore()
	st.PutCustomer(entity.Customer{ID: missingID, Name: "Inactivo", IsActive: false})
	uc := newUseCase(st, nil, false)

	req := saleOf(item(productA, 1, "10"))
	id := customerX
	req.CustomerID = &id
	_, err := uc.Execute(context.Background(), userID, req)
	require.NoError(t, err)

	inactive := missingID
	req.CustomerID = &inactive
	_, err = uc.Execute(context.Background(), userID, req)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	empty := ""
	req.CustomerID = &empty
	_, err = uc.Execute(context.Background(), userID, req)
	assert.NoError(t, err, "customer_id vacío equivale a venta sin cliente")
}

func TestCreateSale_SinUsuario(t *testing.T) {
	st := newStore()
	_, err := newUseCase(st, nil, false).Execute(context.Background(), "", saleOf(item(productA, 1, "10")))
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// ── Concurrencia ─────────────────────────────────────────────────────────────

func TestCreateSale_Concurrentes(t *testing.T) {
	st := apptest.NewStore()
	st.PutProduct(entity.Product{ID: productA, SKU: "A", Name: "A", CurrentStock: 50, IsActive: true})
	st.PutProduct(entity.Product{ID: productB, SKU: "B", Name: "B", CurrentStock: 50, IsActive: true})
	uc := newUseCase(st, nil, false)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := uc.Execute(context.Background(), userID, saleOf(item(productA, 1, "10")))
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			_, err := uc.Execute(context.Background(), userID, saleOf(item(productB, 2, "10")))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 30, st.Stock(productA))
	assert.Equal(t, 10, st.Stock(productB))
	sales, _, _ := st.Counts()
	assert.Equal(t, 40, sales)
}

func TestCreateSale_ConcurrentesNoSobrevenden(t *testing.T) {
	st := apptest.NewStore()
	st.PutProduct(entity.Product{ID: productA, SKU: "A", Name: "A", CurrentStock: 5, IsActive: true})
	uc := newUseCase(st, nil, false)

	var wg sync.WaitGroup
	var mu sync.Mutex
	ok, rejected := 0, 0
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Execute(context.Background(), userID, saleOf(item(productA, 1, "10")))
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				ok++
			} else if errors.Is(err, domain.ErrInsufficientStock) {
				rejected++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, ok)
	assert.Equal(t, 3, rejected)
	assert.Equal(t, 0, st.Stock(productA))
}

// ── Lectura ──────────────────────────────────────────────────────────────────

func TestCreateSale_LecturaPosterior(t *testing.T) {
	st := newStore()
	uc := newUseCase(st, nil, false)
	res, err := uc.Execute(context.Background(), userID, saleOf(
		item(productA, 2, "10"),
		item(productB, 1, "5.25"),
	))
	require.NoError(t, err)

	q := NewQueryUseCase(st.Sales(), st.Customers(), nil, nil)
	sale, err := q.Get(context.Background(), res.ID)
	require.NoError(t, err)

	assert.Equal(t, res.SaleNumber, sale.SaleNumber)
	assert.Equal(t, entity.SaleStatusCompleted, sale.Status)
	assert.True(t, sale.Subtotal.Equal(dec("25.25")))
	require.Len(t, sale.Items, 2)
	assert.Equal(t, productA, sale.Items[0].ProductID)
	assert.Equal(t, "Producto A", sale.Items[0].ProductName)
	assert.True(t, sale.Items[1].LineTotal.Equal(dec("5.25")))
}

func TestQuery_VentaInexistente(t *testing.T) {
	st := newStore()
	q := NewQueryUseCase(st.Sales(), st.Customers(), nil, nil)
	_, err := q.Get(context.Background(), missingID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestQuery_HistorialDeCliente(t *testing.T) {
	st := newStore()
	uc := newUseCase(st, nil, false)
	req := saleOf(item(productA, 1, "10"))
	id := customerX
	req.CustomerID = &id
	_, err := uc.Execute(context.Background(), userID, req)
	require.NoError(t, err)
	_, err = uc.Execute(context.Background(), userID, saleOf(item(productA, 1, "10")))
	require.NoError(t, err)

	q := NewQueryUseCase(st.Sales(), st.Customers(), nil, nil)
	list, err := q.ListByCustomer(context.Background(), customerX, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Cliente X", list[0].CustomerName)

	_, err = q.ListByCustomer(context.Background(), missingID, 10)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
