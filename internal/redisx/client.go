package redisx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

func New(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
}

func Exists(ctx context.Context, rdb *redis.Client, key string) (bool, error) {
	n, err := rdb.Exists(ctx, key).Result()
	return n > 0, err
}

// JSONCache stores one JSON document under a fixed key.
type JSONCache struct {
	RDB *redis.Client
	Key string
	TTL time.Duration
}

func SettingsCache(rdb *redis.Client, id string) *JSONCache {
	return &JSONCache{RDB: rdb, Key: fmt.Sprintf(KeySettings, id), TTL: TTLSettings}
}

// Get decodes the cached document into out. A miss is (false, nil).
func (c *JSONCache) Get(ctx context.Context, out any) (bool, error) {
	b, err := c.RDB.Get(ctx, c.Key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(b, out); err != nil {
		return false, fmt.Errorf("decode %s: %w", c.Key, err)
	}
	return true, nil
}

func (c *JSONCache) Set(ctx context.Context, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.RDB.Set(ctx, c.Key, b, c.TTL).Err()
}

// Deduper remembers processed event ids for one consumer.
type Deduper struct {
	RDB     *redis.Client
	Service string
}

// Seen marks id as processed and reports whether it had been marked before.
func (d *Deduper) Seen(ctx context.Context, id string) (bool, error) {
	key := fmt.Sprintf(KeyDedup, d.Service, id)
	ok, err := d.RDB.SetNX(ctx, key, "1", TTLDedup).Result()
	if err != nil {
		return false, err
	}
	return !ok, nil
}

// Denylist holds revoked session ids until their token would expire anyway.
type Denylist struct {
	RDB *redis.Client
}

func (d *Denylist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return d.RDB.Set(ctx, fmt.Sprintf(KeyRevokedSession, jti), "1", ttl).Err()
}

func (d *Denylist) Revoked(ctx context.Context, jti string) (bool, error) {
	return Exists(ctx, d.RDB, fmt.Sprintf(KeyRevokedSession, jti))
}
