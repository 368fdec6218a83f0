// Package cache stores rendered portfolio PDFs in redis, keyed by export cache key.
package cache

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// KeyPrefix namespaces cache entries.
const KeyPrefix = "checkdisout:pdf:"

// Cache is a redis-backed PDF cache.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// Open parses a redis URL and checks the server is reachable.
func Open(ctx context.Context, url string, ttl time.Duration) (c *Cache, err error) {
	var opts *redis.Options
	opts, err = redis.ParseURL(url)
	if err != nil {
		err = errors.Wrapf(err, "invalid redis URL: %s", url)
		return c, err
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = client.Ping(pingCtx).Err()
	if err != nil {
		_ = client.Close()
		err = errors.Wrap(err, "failed to reach redis")
		return c, err
	}

	c = New(client, ttl)
	return c, err
}

// New wraps an existing client.
func New(client *redis.Client, ttl time.Duration) (c *Cache) {
	c = &Cache{client: client, ttl: ttl}
	return c
}

// Get returns the cached PDF for key. A miss is (nil, false, nil).
func (c *Cache) Get(ctx context.Context, key string) (data []byte, found bool, err error) {
	data, err = c.client.Get(ctx, KeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		data = nil
		err = nil
		return data, found, err
	}
	if err != nil {
		err = errors.Wrapf(err, "failed to read cache entry %s", key)
		return data, found, err
	}

	found = true
	return data, found, err
}

// Put stores a rendered PDF under key.
func (c *Cache) Put(ctx context.Context, key string, data []byte) (err error) {
	err = c.client.Set(ctx, KeyPrefix+key, data, c.ttl).Err()
	if err != nil {
		err = errors.Wrapf(err, "failed to write cache entry %s", key)
		return err
	}
	return err
}

// Close releases the redis connection.
func (c *Cache) Close() (err error) {
	err = c.client.Close()
	return err
}
