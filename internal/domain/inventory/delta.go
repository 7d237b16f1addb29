package inventory

import (
	"fmt"
	"math"
	"sort"

	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
)

// MaxQuantity tope de cantidades y de stock: las columnas son INTEGER.
const MaxQuantity = math.MaxInt32

// ErrStockOutOfRange el stock resultante no cabe en la columna.
var ErrStockOutOfRange = domain.Invalid("quantity", "el stock resultante excede el máximo permitido")

// Delta cambio de stock con signo para un producto.
type Delta struct {
	ProductID string
	Amount    int
}

// Line cantidad vendida de un producto en una línea de venta.
type Line struct {
	ProductID string
	Quantity  int
}

// SaleDeltas agrupa las cantidades por producto y las devuelve negadas,
// ordenadas por product id para que dos ventas concurrentes bloqueen filas en el mismo orden.
func SaleDeltas(lines []Line) []Delta {
	sum := make(map[string]int, len(lines))
	for _, l := range lines {
		sum[l.ProductID] += l.Quantity
	}
	out := make([]Delta, 0, len(sum))
	for id, q := range sum {
		out = append(out, Delta{ProductID: id, Amount: -q})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out
}

// MovementDelta +qty para entrada, -qty para salida.
func MovementDelta(movementType string, qty int) (int, error) {
	if qty <= 0 {
		return 0, domain.Invalid("quantity", "debe ser mayor a 0")
	}
	if qty > MaxQuantity {
		return 0, domain.Invalid("quantity", fmt.Sprintf("máximo %d", MaxQuantity))
	}
	switch movementType {
	case entity.MovementTypeIn:
		return qty, nil
	case entity.MovementTypeOut:
		return -qty, nil
	default:
		return 0, domain.Invalid("movement_type", "debe ser entrada o salida")
	}
}

// Apply calcula el stock resultante y aplica el piso en cero salvo que allowNegative sea true.
// Un resultado fuera del rango de la columna es un error de validación.
func Apply(current, delta int, allowNegative bool) (int, error) {
	next := int64(current) + int64(delta)
	if next > MaxQuantity || next < math.MinInt32 {
		return current, ErrStockOutOfRange
	}
	if next < 0 && !allowNegative {
		return current, domain.ErrInsufficientStock
	}
	return int(next), nil
}
