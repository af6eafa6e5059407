package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/LumaLabs/lexipage"
	"github.com/redis/go-redis/v9"
)

// RedisStore is a Redis-backed entry store. Entries are JSON-encoded.
type RedisStore struct {
	client    *redis.Client
	ttl       time.Duration
	keyPrefix string
}

// RedisConfig holds configuration for the Redis store.
type RedisConfig struct {
	URL       string // Redis connection URL (e.g., "redis://localhost:6379")
	TTL       int    // TTL in seconds (0 = no expiration)
	KeyPrefix string // Prefix for all keys (default: "lexipage:")
}

// NewRedisStore creates a new Redis store with the given configuration.
func NewRedisStore(cfg RedisConfig) (*RedisStore, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = "lexipage:"
	}

	ttl := time.Duration(cfg.TTL) * time.Second
	if cfg.TTL <= 0 {
		ttl = 0
	}

	return &RedisStore{
		client:    client,
		ttl:       ttl,
		keyPrefix: prefix,
	}, nil
}

// NewRedisStoreFromClient creates a RedisStore from an existing Redis client.
func NewRedisStoreFromClient(client *redis.Client, ttlSeconds int, keyPrefix string) *RedisStore {
	if keyPrefix == "" {
		keyPrefix = "lexipage:"
	}

	ttl := time.Duration(ttlSeconds) * time.Second
	if ttlSeconds <= 0 {
		ttl = 0
	}

	return &RedisStore{
		client:    client,
		ttl:       ttl,
		keyPrefix: keyPrefix,
	}
}

// Get retrieves an entry from Redis.
func (s *RedisStore) Get(key string) (lexipage.Entry, bool) {
	key = lexipage.NormalizeKey(key)
	ctx := context.Background()

	val, err := s.client.Get(ctx, s.keyPrefix+key).Result()
	if err == redis.Nil {
		return lexipage.Entry{}, false
	}
	if err != nil {
		// Treat backend errors as a cache miss
		return lexipage.Entry{}, false
	}

	var entry lexipage.Entry
	if err := json.Unmarshal([]byte(val), &entry); err != nil {
		// Undecodable payload is as good as absent
		return lexipage.Entry{}, false
	}
	return entry, true
}

// Put stores an entry in Redis.
func (s *RedisStore) Put(key string, e lexipage.Entry) error {
	key = lexipage.NormalizeKey(key)
	ctx := context.Background()

	data, err := json.Marshal(e)
	if err != nil {
		return &lexipage.CacheError{Message: "encoding entry", Cause: err}
	}

	fullKey := s.keyPrefix + key
	if s.ttl > 0 {
		return s.client.Set(ctx, fullKey, data, s.ttl).Err()
	}
	return s.client.Set(ctx, fullKey, data, 0).Err()
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Ping tests the Redis connection.
func (s *RedisStore) Ping() error {
	ctx := context.Background()
	return s.client.Ping(ctx).Err()
}

// Verify RedisStore implements Store
var _ Store = (*RedisStore)(nil)
