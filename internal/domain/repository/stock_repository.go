package repository

import "context"

// StockRepository ajusta current_stock con una actualización relativa.
// Se usa dentro de transacciones; la fila queda bloqueada hasta el commit.
type StockRepository interface {
	// Adjust suma delta al stock y devuelve el valor resultante.
	// ErrNotFound si el producto no existe o está inactivo; ErrInsufficientStock si
	// el resultado sería negativo y allowNegative es false.
	Adjust(ctx context.Context, productID string, delta int, allowNegative bool) (int, error)
}
