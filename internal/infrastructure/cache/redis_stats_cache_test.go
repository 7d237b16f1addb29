package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Requiere un Redis real: TEST_REDIS_ADDR=localhost:6379 go test ./internal/infrastructure/cache/...
func TestRedisStatsCache_Integracion(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR no definido")
	}
	ctx := context.Background()
	client, err := Connect(ctx, addr, "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	c := NewRedisStatsCache(client, time.Minute)
	require.NoError(t, c.Invalidate(ctx))

	got, err := c.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)

	in := &dto.DashboardStatsDTO{MonthlySales: decimal.RequireFromString("345.00"), SalesCount: 3, DateLabel: "Octubre 2026"}
	require.NoError(t, c.Set(ctx, in))

	got, err = c.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, in.MonthlySales.Equal(got.MonthlySales))
	assert.Equal(t, 3, got.SalesCount)

	ttl, err := client.TTL(ctx, StatsKey).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, c.Invalidate(ctx))
	got, err = c.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestNewRedisStatsCache_TTLPorDefecto(t *testing.T) {
	c := NewRedisStatsCache(nil, 0)
	assert.Equal(t, 30*time.Second, c.ttl)
}
