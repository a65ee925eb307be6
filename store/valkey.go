package store

import (
	"context"
	"time"

	valkey "github.com/valkey-io/valkey-go"
)

// ValkeyCache keeps cache entries in Valkey (Redis-compatible), shared between
// service replicas.
type ValkeyCache struct {
	client valkey.Client
	prefix string
}

// NewValkeyCache connects to addr, e.g. "127.0.0.1:6379"; prefix namespaces keys.
func NewValkeyCache(addr, prefix string) (*ValkeyCache, error) {
	cli, err := valkey.NewClient(valkey.ClientOption{InitAddress: []string{addr}})
	if err != nil {
		return nil, err
	}
	return NewValkeyCacheFromClient(cli, prefix), nil
}

func NewValkeyCacheFromClient(cli valkey.Client, prefix string) *ValkeyCache {
	if prefix == "" {
		prefix = "catalog:"
	}
	return &ValkeyCache{client: cli, prefix: prefix}
}

func (c *ValkeyCache) key(k string) string { return c.prefix + k }

func (c *ValkeyCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := c.client.Do(ctx, c.client.B().Get().Key(c.key(key)).Build()).AsBytes()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return b, true, nil
}

func (c *ValkeyCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	cmd := c.client.B().Set().Key(c.key(key)).Value(valkey.BinaryString(value))
	if ttl > 0 {
		return c.client.Do(ctx, cmd.Ex(ttl).Build()).Error()
	}
	return c.client.Do(ctx, cmd.Build()).Error()
}

// Delete removes keys; missing keys are not an error.
func (c *ValkeyCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.key(k)
	}
	return c.client.Do(ctx, c.client.B().Del().Key(full...).Build()).Error()
}

func (c *ValkeyCache) Close() error {
	c.client.Close()
	return nil
}
