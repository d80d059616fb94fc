package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/carlosintrieri/AV3/internal/config"
)

const (
	metricsKey = "dashboard:metrics"
	chartKey   = "dashboard:chart"
)

// Client wraps Redis for the best-effort dashboard read cache. A nil *Client
// is valid and disables caching.
type Client struct {
	Client *redis.Client
}

// NewClient creates a new Redis client and verifies the connection.
func NewClient(cfg *config.RedisConfig) (*Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{Client: client}, nil
}

// GetMetrics returns the cached metrics payload, redis.Nil-wrapped error
// when absent.
func (c *Client) GetMetrics(ctx context.Context) (string, error) {
	if c == nil {
		return "", redis.Nil
	}
	return c.Client.Get(ctx, metricsKey).Result()
}

// SetMetrics caches the serialized metrics payload.
func (c *Client) SetMetrics(ctx context.Context, payload string, ttl time.Duration) error {
	if c == nil {
		return nil
	}
	return c.Client.Set(ctx, metricsKey, payload, ttl).Err()
}

// GetChart returns the cached chart series payload.
func (c *Client) GetChart(ctx context.Context) (string, error) {
	if c == nil {
		return "", redis.Nil
	}
	return c.Client.Get(ctx, chartKey).Result()
}

// SetChart caches the serialized chart series.
func (c *Client) SetChart(ctx context.Context, payload string, ttl time.Duration) error {
	if c == nil {
		return nil
	}
	return c.Client.Set(ctx, chartKey, payload, ttl).Err()
}

// InvalidateDashboard drops the cached dashboard payloads. Called after any
// project write so the next poll reads fresh aggregates.
func (c *Client) InvalidateDashboard(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.Client.Del(ctx, metricsKey, chartKey).Err()
}

// IsMiss reports whether err is a cache miss.
func IsMiss(err error) bool {
	return errors.Is(err, redis.Nil)
}

// Close closes the Redis client.
func (c *Client) Close() error {
	if c == nil {
		return nil
	}
	return c.Client.Close()
}
