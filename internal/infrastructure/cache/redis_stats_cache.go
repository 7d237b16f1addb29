// Package cache implementa la caché de estadísticas del tablero sobre Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/application/ports"
	"github.com/redis/go-redis/v9"
)

// StatsKey clave única de los agregados del tablero.
const StatsKey = "ventas:dashboard:stats"

const (
	maxRetries      = 3
	minRetryBackoff = 100 * time.Millisecond
	maxRetryBackoff = 300 * time.Millisecond
	dialTimeout     = 5 * time.Second
	readTimeout     = 3 * time.Second
	writeTimeout    = 3 * time.Second
)

var _ ports.StatsCache = (*RedisStatsCache)(nil)

// Connect abre el cliente Redis y verifica la conexión con PING.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:            addr,
		Password:        password,
		DB:              db,
		MaxRetries:      maxRetries,
		MinRetryBackoff: minRetryBackoff,
		MaxRetryBackoff: maxRetryBackoff,
		DialTimeout:     dialTimeout,
		ReadTimeout:     readTimeout,
		WriteTimeout:    writeTimeout,
	})
	pingCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return client, nil
}

// RedisStatsCache guarda el DTO del tablero como JSON con expiración.
type RedisStatsCache struct {
	rdb redis.Cmdable
	ttl time.Duration
}

// NewRedisStatsCache construye la caché. ttl <= 0 usa 30 segundos.
func NewRedisStatsCache(rdb redis.Cmdable, ttl time.Duration) *RedisStatsCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &RedisStatsCache{rdb: rdb, ttl: ttl}
}

// Get devuelve nil, nil si la clave no existe o expiró.
func (c *RedisStatsCache) Get(ctx context.Context) (*dto.DashboardStatsDTO, error) {
	raw, err := c.rdb.Get(ctx, StatsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}
	var stats dto.DashboardStatsDTO
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil, fmt.Errorf("decodificar stats: %w", err)
	}
	return &stats, nil
}

func (c *RedisStatsCache) Set(ctx context.Context, stats *dto.DashboardStatsDTO) error {
	raw, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	if err := c.rdb.Set(ctx, StatsKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (c *RedisStatsCache) Invalidate(ctx context.Context) error {
	if err := c.rdb.Del(ctx, StatsKey).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
