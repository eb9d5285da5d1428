package redis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"biosphere-server/internal/naming"
	"biosphere-server/internal/shared/config"

	"github.com/redis/go-redis/v9"
)

const pingTimeout = 5 * time.Second

// Client is the shared name registry backend. A nil *Client is valid and
// means names are only unique within this process.
type Client struct {
	*redis.Client
	namespace string
}

// Connect dials redis when it is enabled. Disabled redis returns a nil
// client and no error.
func Connect(ctx context.Context, cfg config.RedisConfig) (*Client, error) {
	logger := slog.With("component", "redis", "operation", "connect")

	if !cfg.Enabled {
		logger.Info("Redis disabled, using in-memory name registry")
		return nil, nil
	}

	opts, err := options(cfg)
	if err != nil {
		logger.Error("Failed to parse Redis URL", "error", err)
		return nil, err
	}
	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		logger.Error("Failed to ping Redis", "addr", opts.Addr, "error", err)
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	logger.Info("Redis name registry connected", "addr", opts.Addr, "namespace", cfg.Namespace)
	return &Client{Client: rdb, namespace: cfg.Namespace}, nil
}

// options prefers REDIS_URL and falls back to host and port.
func options(cfg config.RedisConfig) (*redis.Options, error) {
	if cfg.URL != "" {
		opts, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
		}
		return opts, nil
	}

	return &redis.Options{
		Addr:         fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  pingTimeout,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	}, nil
}

// Registry returns the registry species and biome names are claimed in.
func (c *Client) Registry() naming.Registry {
	if c == nil || c.Client == nil {
		return naming.NewMemoryRegistry()
	}
	return naming.NewRedisRegistry(c.Client, c.namespace)
}

// Healthy pings the server. A nil client has nothing to reach and reports
// false.
func (c *Client) Healthy(ctx context.Context) bool {
	if c == nil || c.Client == nil {
		return false
	}
	return c.Ping(ctx).Err() == nil
}

func (c *Client) Close() error {
	if c == nil || c.Client == nil {
		return nil
	}
	return c.Client.Close()
}
