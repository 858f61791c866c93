package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/harmony-ledger/harmony/internal/config"
)

// ErrRedisNotConfigured is returned by Ping on a nil handle.
var ErrRedisNotConfigured = errors.New("redis client not configured")

// Redis holds the client shared by the readiness probe and the audit stream.
type Redis struct {
	Client *redis.Client
}

// NewRedis builds the client and pings it once. The client is returned even
// when the ping fails so readiness can keep reporting it and audit appends
// resume once the server is reachable.
func NewRedis(ctx context.Context, cfg config.RedisConfig) (*Redis, error) {
	timeout := cfg.Timeout()
	client := redis.NewClient(&redis.Options{
		Addr:                  cfg.Addr,
		Password:              cfg.Password,
		DB:                    cfg.DB,
		DialTimeout:           timeout,
		ReadTimeout:           timeout,
		WriteTimeout:          timeout,
		ContextTimeoutEnabled: true,
	})

	r := &Redis{Client: client}
	if err := r.Ping(ctx); err != nil {
		return r, fmt.Errorf("ping redis at %s: %w", cfg.Addr, err)
	}
	return r, nil
}

// Close closes the client.
func (r *Redis) Close() {
	if r != nil && r.Client != nil {
		_ = r.Client.Close()
	}
}

// Ping verifies Redis connectivity.
func (r *Redis) Ping(ctx context.Context) error {
	if r == nil || r.Client == nil {
		return ErrRedisNotConfigured
	}
	return r.Client.Ping(ctx).Err()
}
