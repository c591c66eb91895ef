// Package lock serializa las escrituras de un mismo cliente entre réplicas de la API
// usando un lock distribuido en Redis.
package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/ironhub-api/pkg/config"
)

// ErrNotObtained el lock lo tiene otro proceso y se agotaron los reintentos.
var ErrNotObtained = errors.New("lock no obtenido")

// Locker obtiene un lock con TTL y devuelve la función para liberarlo.
type Locker interface {
	Obtain(ctx context.Context, key string, ttl time.Duration) (release func(context.Context) error, err error)
}

// NewRedisClient conecta a Redis y verifica la conexión con PING.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: 50,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis %s: %w", cfg.Addr, err)
	}
	return rdb, nil
}

// RedisLocker implementa Locker con bsm/redislock.
type RedisLocker struct {
	client  *redislock.Client
	retries int
	backoff time.Duration
}

// NewRedisLocker construye el locker sobre un cliente go-redis.
func NewRedisLocker(rdb redislock.RedisClient) *RedisLocker {
	return &RedisLocker{
		client:  redislock.New(rdb),
		retries: 40,
		backoff: 50 * time.Millisecond,
	}
}

// Obtain reintenta con backoff lineal antes de rendirse con ErrNotObtained.
func (l *RedisLocker) Obtain(ctx context.Context, key string, ttl time.Duration) (func(context.Context) error, error) {
	lk, err := l.client.Obtain(ctx, key, ttl, &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(l.backoff), l.retries),
	})
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, ErrNotObtained
	}
	if err != nil {
		return nil, fmt.Errorf("obtener lock %s: %w", key, err)
	}
	return lk.Release, nil
}
