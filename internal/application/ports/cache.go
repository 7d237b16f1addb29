package ports

import (
	"context"

	"github.com/jhoicas/ventas-api/internal/application/dto"
)

// StatsCache caché de los agregados del tablero. Nunca se consulta para decisiones de stock.
type StatsCache interface {
	// Get devuelve (nil, nil) si no hay entrada vigente.
	Get(ctx context.Context) (*dto.DashboardStatsDTO, error)
	Set(ctx context.Context, stats *dto.DashboardStatsDTO) error
	Invalidate(ctx context.Context) error
}

// NopStatsCache no guarda nada.
type NopStatsCache struct{}

func (NopStatsCache) Get(context.Context) (*dto.DashboardStatsDTO, error) { return nil, nil }
func (NopStatsCache) Set(context.Context, *dto.DashboardStatsDTO) error   { return nil }
func (NopStatsCache) Invalidate(context.Context) error                    { return nil }
