package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tidwall/buntdb"
)

// Cache is a byte-oriented key/value cache with optional expiry.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

// NewCache builds the cache named by driver: "none", "buntdb" or "valkey".
// For buntdb, addr is a file path or ":memory:".
func NewCache(driver, addr, prefix string) (Cache, error) {
	switch driver {
	case "", "none":
		return NopCache{}, nil
	case "buntdb":
		if addr == "" {
			addr = ":memory:"
		}
		return NewBuntCache(addr, prefix)
	case "valkey":
		return NewValkeyCache(addr, prefix)
	default:
		return nil, fmt.Errorf("unsupported cache driver %q", driver)
	}
}

// NopCache never stores anything.
type NopCache struct{}

func (NopCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (NopCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NopCache) Delete(context.Context, ...string) error { return nil }
func (NopCache) Close() error { return nil }

// BuntCache is an embedded cache for single-instance deployments.
type BuntCache struct {
	db     *buntdb.DB
	prefix string
}

func NewBuntCache(path, prefix string) (*BuntCache, error) {
	db, err := buntdb.Open(path)
	if err != nil {
		return nil, err
	}
	if prefix == "" {
		prefix = "catalog:"
	}
	return &BuntCache{db: db, prefix: prefix}, nil
}

func (c *BuntCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	var val string
	err := c.db.View(func(tx *buntdb.Tx) error {
		var err error
		val, err = tx.Get(c.prefix + key)
		return err
	})
	if errors.Is(err, buntdb.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(val), true, nil
}

func (c *BuntCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	return c.db.Update(func(tx *buntdb.Tx) error {
		var opts *buntdb.SetOptions
		if ttl > 0 {
			opts = &buntdb.SetOptions{Expires: true, TTL: ttl}
		}
		_, _, err := tx.Set(c.prefix+key, string(value), opts)
		return err
	})
}

func (c *BuntCache) Delete(_ context.Context, keys ...string) error {
	return c.db.Update(func(tx *buntdb.Tx) error {
		for _, k := range keys {
			if _, err := tx.Delete(c.prefix + k); err != nil && !errors.Is(err, buntdb.ErrNotFound) {
				return err
			}
		}
		return nil
	})
}

func (c *BuntCache) Close() error { return c.db.Close() }
