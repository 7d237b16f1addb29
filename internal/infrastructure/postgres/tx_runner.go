package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/ventas-api/internal/application/inventory"
	"github.com/jhoicas/ventas-api/internal/application/sales"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Ensure TxRunner implements inventory.TxRunner and sales.TxRunner.
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ sales.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL (READ COMMITTED).
// Los repos que recibe el callback están atados a la tx; nada se confirma si fn falla.
type TxRunner struct {
	pool    *pgxpool.Pool
	timeout time.Duration
	tracer  trace.Tracer
}

// NewTxRunner construye el runner con el pool. timeout acota cada transacción completa.
func NewTxRunner(pool *pgxpool.Pool, timeout time.Duration, tracer trace.Tracer) *TxRunner {
	return &TxRunner{pool: pool, timeout: timeout, tracer: tracer}
}

// Run inicia una transacción para un movimiento de inventario.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.InventoryMovementRepository,
	stockRepo repository.StockRepository,
) error) error {
	return r.run(ctx, "tx.movement", func(tx pgx.Tx) error {
		return fn(NewInventoryMovementRepository(tx), NewStockRepository(tx))
	})
}

// RunSale inicia una transacción para registrar una venta con sus líneas y el descuento de stock.
func (r *TxRunner) RunSale(ctx context.Context, fn func(
	saleRepo repository.SaleRepository,
	stockRepo repository.StockRepository,
) error) error {
	return r.run(ctx, "tx.sale", func(tx pgx.Tx) error {
		return fn(NewSaleRepository(tx), NewStockRepository(tx))
	})
}

func (r *TxRunner) run(ctx context.Context, name string, fn func(tx pgx.Tx) error) (err error) {
	ctx, span := r.tracer.Start(ctx, name, trace.WithSpanKind(trace.SpanKindInternal))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			span.SetAttributes(attribute.String("error.kind", domain.KindOf(err).String()))
		}
		span.End()
	}()

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return domain.StorageError(fmt.Errorf("begin transaction: %w", err))
	}
	// Rollback tras Commit devuelve ErrTxClosed; se ignora.
	defer func() { _ = tx.Rollback(context.WithoutCancel(ctx)) }()

	if err := fn(tx); err != nil {
		return domain.StorageError(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return domain.CommitError(fmt.Errorf("commit transaction: %w", err))
	}
	return nil
}
