// Package redis caches resolved payloads. Resolution is deterministic for
// a given template document and override set, so the cache key is a digest
// of both and entries never need invalidation beyond their TTL.
package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/dathuynh1108/rule-table-render/pkg/domain"
)

// ErrCacheMiss is returned by Load when no payload is cached for the key.
var ErrCacheMiss = fmt.Errorf("payload not found in cache")

// Cache stores resolved payloads in Redis keyed by render digest.
type Cache struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Cache)

// WithTTL sets the expiration for cached payloads.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		c.ttl = ttl
	}
}

// WithPrefix sets the key prefix for cached payloads.
func WithPrefix(prefix string) Option {
	return func(c *Cache) {
		c.prefix = prefix
	}
}

// New creates a Redis payload cache with its own client.
func New(address, password string, db int, opts ...Option) *Cache {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a payload cache from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Cache {
	cache := &Cache{
		client: client,
		prefix: "tablerender:payload:",
		ttl:    time.Hour,
	}
	for _, opt := range opts {
		opt(cache)
	}
	return cache
}

// Key derives the cache key for a template document and an override set.
// Overrides are serialized in sorted key order so equivalent maps always
// digest identically.
func Key(templateDoc []byte, overrides map[string]any) string {
	h := sha256.New()
	h.Write(templateDoc)

	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		h.Write([]byte(k))
		h.Write([]byte{'='})
		if data, err := json.Marshal(overrides[k]); err == nil {
			h.Write(data)
		}
		h.Write([]byte{';'})
	}
	return hex.EncodeToString(h.Sum(nil))
}

func (c *Cache) redisKey(key string) string {
	return c.prefix + key
}

// Save stores a resolved payload under the given key.
func (c *Cache) Save(ctx context.Context, key string, payload *domain.Payload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}
	if err := c.client.Set(ctx, c.redisKey(key), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save payload to redis: %w", err)
	}
	return nil
}

// Load retrieves a cached payload. Returns ErrCacheMiss when absent.
func (c *Cache) Load(ctx context.Context, key string) (*domain.Payload, error) {
	val, err := c.client.Get(ctx, c.redisKey(key)).Result()
	if err != nil {
		if err == backend.Nil {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get payload from redis: %w", err)
	}

	var payload domain.Payload
	if err := json.Unmarshal([]byte(val), &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached payload: %w", err)
	}
	return &payload, nil
}

// Delete evicts a cached payload.
func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, c.redisKey(key)).Err()
}

// Close closes the underlying redis client.
func (c *Cache) Close() error {
	return c.client.Close()
}
