package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	// ErrNotFound is returned when no cart has been persisted under a key.
	ErrNotFound = errors.New("cart not found in storage")
)

// CartStorage persists serialized carts under opaque keys. Implementations
// hold the whole cart as a single value; partial updates are not supported.
type CartStorage interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
}

// RedisCartStorage stores each cart as one Redis string value.
type RedisCartStorage struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisCartStorage creates a RedisCartStorage. A zero ttl keeps carts
// until the key is evicted or deleted externally.
func NewRedisCartStorage(client *redis.Client, prefix string, ttl time.Duration) *RedisCartStorage {
	return &RedisCartStorage{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (s *RedisCartStorage) storageKey(key string) string {
	return fmt.Sprintf("%s:%s", s.prefix, key)
}

// Load reads the persisted cart payload. ErrNotFound is returned when the
// key has never been written or has expired.
func (s *RedisCartStorage) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.storageKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load cart %q: %w", key, err)
	}
	return data, nil
}

// Save writes the cart payload, refreshing the TTL on every write.
func (s *RedisCartStorage) Save(ctx context.Context, key string, data []byte) error {
	if err := s.client.Set(ctx, s.storageKey(key), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save cart %q: %w", key, err)
	}
	return nil
}
