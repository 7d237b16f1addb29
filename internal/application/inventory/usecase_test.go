package inventory

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/jhoicas/ventas-api/internal/application/apptest"
	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/inventory"
	"github.com/jhoicas/ventas-api/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	productP2 = "55555555-5555-5555-5555-555555555555"
	productQ  = "66666666-6666-6666-6666-666666666666"
	missingID = "99999999-9999-9999-9999-999999999999"
	userID    = "44444444-4444-4444-4444-444444444444"
)

func newStore() *apptest.Store {
	st := apptest.NewStore()
	st.PutProduct(entity.Product{ID: productP2, SKU: "P2", Name: "Producto P2", CurrentStock: 5, MinimumStock: 2, IsActive: true})
	st.PutProduct(entity.Product{ID: productQ, SKU: "Q", Name: "Producto Q", CurrentStock: 0, IsActive: true})
	return st
}

func move(productID, typ string, qty int) dto.CreateMovementRequest {
	return dto.CreateMovementRequest{ProductID: productID, MovementType: typ, Quantity: qty, Reason: "ajuste de conteo"}
}

// ── Escenario P2 ─────────────────────────────────────────────────────────────

func TestRegisterMovement_SalidaHastaCeroLuegoRechaza(t *testing.T) {
	st := newStore()
	uc := NewRegisterMovementUseCase(st, nil, nil, false, logger.Nop())

	res, err := uc.RegisterMovement(context.Background(), userID, move(productP2, "salida", 5))
	require.NoError(t, err)
	assert.Equal(t, 0, res.NewStock)
	assert.Equal(t, 0, st.Stock(productP2))

	_, err = uc.RegisterMovement(context.Background(), userID, move(productP2, "salida", 1))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, domain.KindPolicy, domain.KindOf(err))
	assert.Equal(t, 0, st.Stock(productP2))

	_, _, movements := st.Counts()
	assert.Equal(t, 1, movements, "el movimiento rechazado no queda registrado")
}

func TestRegisterMovement_SalidaNegativaPermitida(t *testing.T) {
	st := newStore()
	uc := NewRegisterMovementUseCase(st, nil, nil, true, logger.Nop())

	_, err := uc.RegisterMovement(context.Background(), userID, move(productP2, "salida", 5))
	require.NoError(t, err)
	res, err := uc.RegisterMovement(context.Background(), userID, move(productP2, "salida", 1))
	require.NoError(t, err)
	assert.Equal(t, -1, res.NewStock)
	assert.Equal(t, -1, st.Stock(productP2))
}

func TestRegisterMovement_Entrada(t *testing.T) {
	st := newStore()
	uc := NewRegisterMovementUseCase(st, nil, nil, false, logger.Nop())

	res, err := uc.RegisterMovement(context.Background(), userID, move(productQ, "ENTRADA", 12))
	require.NoError(t, err)
	assert.Equal(t, 12, res.NewStock)
	assert.Equal(t, "Movimiento registrado correctamente", res.Message)

	list, err := NewMovementQueryUseCase(st.Movements(), st.Products()).ListByProduct(context.Background(), productQ, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "entrada", list[0].MovementType)
	assert.Equal(t, 12, list[0].Quantity)
	assert.Equal(t, "Producto Q", list[0].ProductName)
}

// ── Validación y fallos ──────────────────────────────────────────────────────

func TestRegisterMovement_Validacion(t *testing.T) {
	st := newStore()
	uc := NewRegisterMovementUseCase(st, nil, nil, false, logger.Nop())

	cases := map[string]dto.CreateMovementRequest{
		"tipo":           move(productQ, "ajuste", 1),
		"cantidad cero":  move(productQ, "entrada", 0),
		"negativa":       move(productQ, "entrada", -3),
		"fuera de rango": move(productQ, "entrada", inventory.MaxQuantity+1),
		"producto":       move("p-1", "entrada", 1),
		"motivo largo": {
			ProductID: productQ, MovementType: "entrada", Quantity: 1, Reason: strings.Repeat("x", 501),
		},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := uc.RegisterMovement(context.Background(), userID, req)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
	assert.Zero(t, st.Commits+st.Rollbacks, "la validación ocurre antes de abrir la transacción")
}

func TestRegisterMovement_ProductoInexistente(t *testing.T) {
	st := newStore()
	uc := NewRegisterMovementUseCase(st, nil, nil, false, logger.Nop())

	_, err := uc.RegisterMovement(context.Background(), userID, move(missingID, "entrada", 1))
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, _, movements := st.Counts()
	assert.Zero(t, movements)
}

func TestRegisterMovement_FalloAlInsertar(t *testing.T) {
	st := newStore()
	st.FailMovementIns = true
	uc := NewRegisterMovementUseCase(st, nil, nil, false, logger.Nop())

	_, err := uc.RegisterMovement(context.Background(), userID, move(productP2, "entrada", 3))
	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.Equal(t, 5, st.Stock(productP2))
}

func TestRegisterMovement_FalloEnCommit(t *testing.T) {
	st := newStore()
	st.FailCommit = true
	uc := NewRegisterMovementUseCase(st, nil, nil, false, logger.Nop())

	_, err := uc.RegisterMovement(context.Background(), userID, move(productP2, "entrada", 3))
	assert.ErrorIs(t, err, domain.ErrCommit)
	assert.Equal(t, 5, st.Stock(productP2))
	_, _, movements := st.Counts()
	assert.Zero(t, movements)
}

// ── Concurrencia ─────────────────────────────────────────────────────────────

func TestRegisterMovement_ConcurrentesSobreElMismoProducto(t *testing.T) {
	st := newStore()
	uc := NewRegisterMovementUseCase(st, nil, nil, false, logger.Nop())

	var wg sync.WaitGroup
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.RegisterMovement(context.Background(), userID, move(productQ, "entrada", 3))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 75, st.Stock(productQ))
	_, _, movements := st.Counts()
	assert.Equal(t, 25, movements)
}

func TestRegisterMovement_ConcurrentesSobreProductosDistintos(t *testing.T) {
	st := newStore()
	st.PutProduct(entity.Product{ID: productQ, SKU: "Q", Name: "Producto Q", CurrentStock: 1, IsActive: true})
	uc := NewRegisterMovementUseCase(st, nil, nil, false, logger.Nop())

	// P2 tiene 5 y Q tiene 1: cada salida deja su producto en cero, ninguna bloquea a la otra.
	reqs := []dto.CreateMovementRequest{move(productP2, "salida", 5), move(productQ, "salida", 1)}
	errs := make([]error, len(reqs))
	var wg sync.WaitGroup
	for i, req := range reqs {
		wg.Add(1)
		go func(i int, req dto.CreateMovementRequest) {
			defer wg.Done()
			_, errs[i] = uc.RegisterMovement(context.Background(), userID, req)
		}(i, req)
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, 0, st.Stock(productP2))
	assert.Equal(t, 0, st.Stock(productQ))
	assert.Equal(t, 2, st.Commits)
	_, _, movements := st.Counts()
	assert.Equal(t, 2, movements)
}

func TestRegisterMovement_StockFueraDeRango(t *testing.T) {
	st := newStore()
	st.PutProduct(entity.Product{ID: productQ, SKU: "Q", Name: "Producto Q", CurrentStock: inventory.MaxQuantity, IsActive: true})
	uc := NewRegisterMovementUseCase(st, nil, nil, false, logger.Nop())

	_, err := uc.RegisterMovement(context.Background(), userID, move(productQ, "entrada", 1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, inventory.MaxQuantity, st.Stock(productQ))
	_, _, movements := st.Counts()
	assert.Zero(t, movements)
}

// ── Lecturas ─────────────────────────────────────────────────────────────────

func TestMovementQuery_RecientesPrimero(t *testing.T) {
	st := newStore()
	uc := NewRegisterMovementUseCase(st, nil, nil, false, logger.Nop())
	for _, q := range []int{1, 2, 3} {
		_, err := uc.RegisterMovement(context.Background(), userID, move(productQ, "entrada", q))
		require.NoError(t, err)
	}

	list, err := NewMovementQueryUseCase(st.Movements(), st.Products()).ListRecent(context.Background(), 500)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, 3, list[0].Quantity)
	assert.Equal(t, 1, list[2].Quantity)

	_, err = NewMovementQueryUseCase(st.Movements(), st.Products()).ListByProduct(context.Background(), missingID, 10)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLowStock_Sugerencias(t *testing.T) {
	st := apptest.NewStore()
	maxStock := 20
	st.PutProduct(entity.Product{ID: productP2, SKU: "P2", Name: "Con máximo", CurrentStock: 1, MinimumStock: 5, MaximumStock: &maxStock, IsActive: true})
	st.PutProduct(entity.Product{ID: productQ, SKU: "Q", Name: "Sin máximo", CurrentStock: -2, MinimumStock: 5, IsActive: true})
	st.PutProduct(entity.Product{ID: missingID, SKU: "OK", Name: "Suficiente", CurrentStock: 50, MinimumStock: 5, IsActive: true})

	list, err := NewLowStockUseCase(st.Products()).List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, productQ, list[0].ProductID, "mayor déficit primero")
	assert.Equal(t, 8, list[0].TargetStock)
	assert.Equal(t, 10, list[0].SuggestedOrderQty)
	assert.Equal(t, 1, list[0].Priority)

	assert.Equal(t, 20, list[1].TargetStock)
	assert.Equal(t, 19, list[1].SuggestedOrderQty)
	assert.Equal(t, 2, list[1].Priority)
}
