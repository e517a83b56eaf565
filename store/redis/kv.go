// Package redis stores envelopes in Redis.
package redis

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	json "github.com/goccy/go-json"
	"github.com/warp/wage-engine/store"
)

// Client is the Redis client type used across the module.
type Client = redis.Client

// Config holds the connection settings.
type Config struct {
	Addr     string
	Password string
	DB       int
}

// NewClient creates a Redis client. It does not connect until first use.
func NewClient(cfg Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// Ping checks the connection.
func Ping(ctx context.Context, client *redis.Client) error {
	return client.Ping(ctx).Err()
}

// DefaultPrefix namespaces envelope keys.
const DefaultPrefix = "wage-engine:kv:"

// KV implements store.KV on Redis. Each envelope is one JSON string value.
type KV struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewKV creates a KV. A zero ttl keeps values forever.
func NewKV(client *redis.Client, ttl time.Duration) *KV {
	return &KV{client: client, prefix: DefaultPrefix, ttl: ttl}
}

var _ store.KV = (*KV)(nil)

func (k *KV) Get(ctx context.Context, key string) (*store.Envelope, error) {
	val, err := k.client.Get(ctx, k.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get %q: %w", key, err)
	}

	var env store.Envelope
	if err := json.Unmarshal(val, &env); err != nil {
		return nil, fmt.Errorf("failed to decode envelope %q: %w", key, err)
	}
	return &env, nil
}

func (k *KV) Put(ctx context.Context, key string, env store.Envelope) error {
	if err := store.ValidateKey(key); err != nil {
		return err
	}
	if err := env.Check(); err != nil {
		return err
	}

	val, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("failed to encode envelope %q: %w", key, err)
	}
	if err := k.client.Set(ctx, k.prefix+key, val, k.ttl).Err(); err != nil {
		return fmt.Errorf("failed to put %q: %w", key, err)
	}
	return nil
}

func (k *KV) Delete(ctx context.Context, key string) error {
	n, err := k.client.Del(ctx, k.prefix+key).Result()
	if err != nil {
		return fmt.Errorf("failed to delete %q: %w", key, err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// Keys scans the prefix and returns the keys sorted.
func (k *KV) Keys(ctx context.Context) ([]string, error) {
	var (
		keys   []string
		cursor uint64
	)
	for {
		batch, next, err := k.client.Scan(ctx, cursor, k.prefix+"*", 100).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to scan keys: %w", err)
		}
		for _, full := range batch {
			keys = append(keys, strings.TrimPrefix(full, k.prefix))
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	return uniqueSorted(keys), nil
}

// uniqueSorted sorts keys and drops repeats; SCAN may return a key more
// than once.
func uniqueSorted(keys []string) []string {
	sort.Strings(keys)
	return slices.Compact(keys)
}
