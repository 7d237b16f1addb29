// Package analytics contiene el caso de uso del tablero principal.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/application/ports"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
	"github.com/jhoicas/ventas-api/pkg/logger"
	"github.com/shopspring/decimal"
)

// DashboardUseCase genera los agregados del tablero: ventas del mes en curso y estado del inventario.
//
// Fuente de datos: DashboardRepository (consultas read-only). El resultado se guarda en StatsCache;
// ventas y movimientos confirmados invalidan la caché.
type DashboardUseCase struct {
	repo  repository.DashboardRepository
	cache ports.StatsCache
	log   *logger.Logger
	now   func() time.Time
}

// NewDashboardUseCase construye el caso de uso. cache nil equivale a sin caché.
func NewDashboardUseCase(repo repository.DashboardRepository, cache ports.StatsCache, log *logger.Logger) *DashboardUseCase {
	if cache == nil {
		cache = ports.NopStatsCache{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &DashboardUseCase{repo: repo, cache: cache, log: log.Named("dashboard"), now: time.Now}
}

// GetStats devuelve los agregados, desde caché si están vigentes.
//
// Tres consultas en paralelo:
//  1. SalesSince(inicio de mes) → MonthlySales + SalesCount
//  2. StockTotals               → TotalStock + ProductCount + InventoryValue
//  3. LowStockCount             → LowStockCount
func (uc *DashboardUseCase) GetStats(ctx context.Context) (*dto.DashboardStatsDTO, error) {
	cached, err := uc.cache.Get(ctx)
	if err != nil {
		uc.log.Warn().Err(err).Msg("no se pudo leer la caché del dashboard")
	}
	if cached != nil {
		return cached, nil
	}

	now := uc.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	// ── Goroutines para paralelizar las 3 consultas DB ────────────────────────
	type salesResult struct {
		total decimal.Decimal
		count int
		err   error
	}
	type stockResult struct {
		units, products int
		value           decimal.Decimal
		err             error
	}
	type lowResult struct {
		count int
		err   error
	}

	salesCh := make(chan salesResult, 1)
	stockCh := make(chan stockResult, 1)
	lowCh := make(chan lowResult, 1)

	go func() {
		total, count, err := uc.repo.SalesSince(ctx, monthStart)
		salesCh <- salesResult{total, count, err}
	}()
	go func() {
		units, products, value, err := uc.repo.StockTotals(ctx)
		stockCh <- stockResult{units, products, value, err}
	}()
	go func() {
		n, err := uc.repo.LowStockCount(ctx)
		lowCh <- lowResult{n, err}
	}()

	sales := <-salesCh
	stock := <-stockCh
	low := <-lowCh

	if sales.err != nil {
		return nil, fmt.Errorf("dashboard: ventas del mes: %w", sales.err)
	}
	if stock.err != nil {
		return nil, fmt.Errorf("dashboard: totales de stock: %w", stock.err)
	}
	if low.err != nil {
		return nil, fmt.Errorf("dashboard: stock bajo: %w", low.err)
	}

	out := &dto.DashboardStatsDTO{
		MonthlySales:   sales.total.Round(2),
		SalesCount:     sales.count,
		TotalStock:     stock.units,
		ProductCount:   stock.products,
		InventoryValue: stock.value.Round(2),
		LowStockCount:  low.count,
		DateLabel:      monthLabel(now),
	}
	if err := uc.cache.Set(ctx, out); err != nil {
		uc.log.Warn().Err(err).Msg("no se pudo guardar la caché del dashboard")
	}
	return out, nil
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
