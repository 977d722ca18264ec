package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client wraps redis.Client but fails safe by swallowing connectivity errors.
// A nil *Client is valid and behaves as an always-empty cache.
type Client struct {
	client *redis.Client
}

// New creates a new Redis client. An empty addr disables caching and returns nil.
func New(addr, password string, db int) *Client {
	if addr == "" {
		return nil
	}
	return &Client{client: redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})}
}

// Ping reports whether redis is reachable. A disabled cache is never reachable.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil || c.client == nil {
		return errors.New("cache disabled")
	}
	return c.client.Ping(ctx).Err()
}

// Get returns value or nil if missing or redis unavailable.
func (c *Client) Get(ctx context.Context, key string) []byte {
	if c == nil || c.client == nil {
		return nil
	}
	res, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		// redis.Nil and connectivity errors both read as a miss
		return nil
	}
	return res
}

// Set stores value with TTL, ignoring redis errors.
func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if c == nil || c.client == nil {
		return
	}
	_ = c.client.Set(ctx, key, value, ttl).Err()
}

// Store is Set for callers that must know whether the write happened.
func (c *Client) Store(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if c == nil || c.client == nil {
		return errors.New("cache disabled")
	}
	return c.client.Set(ctx, key, value, ttl).Err()
}

// Delete removes a key, ignoring redis errors.
func (c *Client) Delete(ctx context.Context, key string) {
	if c == nil || c.client == nil {
		return
	}
	_ = c.client.Del(ctx, key).Err()
}

// GetJSON decodes the cached value into dst and reports whether it was a hit.
func (c *Client) GetJSON(ctx context.Context, key string, dst any) bool {
	data := c.Get(ctx, key)
	if data == nil {
		return false
	}
	return json.Unmarshal(data, dst) == nil
}

// SetJSON encodes v and stores it with TTL.
func (c *Client) SetJSON(ctx context.Context, key string, v any, ttl time.Duration) {
	payload, err := json.Marshal(v)
	if err != nil {
		return
	}
	c.Set(ctx, key, payload, ttl)
}

// Close releases the connection pool.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
