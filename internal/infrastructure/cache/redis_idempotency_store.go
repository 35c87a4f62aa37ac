package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// defaultCheckoutTTL keeps a replayed checkout answerable for a day
const defaultCheckoutTTL = 24 * time.Hour

// RedisIdempotencyStore remembers completed checkouts in Redis, suitable
// for deployments where several instances share idempotency state
type RedisIdempotencyStore struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewRedisIdempotencyStore creates a Redis-backed idempotency store and
// verifies the connection
func NewRedisIdempotencyStore(addr, password string, db int) (*RedisIdempotencyStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisIdempotencyStore{
		client:    client,
		keyPrefix: "pos:idempotency:",
		ttl:       defaultCheckoutTTL,
	}, nil
}

// NewRedisIdempotencyStoreWithClient wraps an existing client, useful for
// tests or when sharing a client across components
func NewRedisIdempotencyStoreWithClient(client *redis.Client, keyPrefix string) *RedisIdempotencyStore {
	if keyPrefix == "" {
		keyPrefix = "pos:idempotency:"
	}
	return &RedisIdempotencyStore{client: client, keyPrefix: keyPrefix, ttl: defaultCheckoutTTL}
}

// Get returns the transaction number stored for the key
func (s *RedisIdempotencyStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, s.keyPrefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read idempotency key: %w", err)
	}
	return value, true, nil
}

// Set stores the transaction number for the key with the store TTL
func (s *RedisIdempotencyStore) Set(ctx context.Context, key, transactionNumber string) error {
	if err := s.client.Set(ctx, s.keyPrefix+key, transactionNumber, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store idempotency key: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (s *RedisIdempotencyStore) Close() error {
	return s.client.Close()
}
