package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultRedisKey = "safellm:response-cache"

// RedisStore keeps entries in a Redis list, preserving insertion order across
// restarts of the service. A TTL on the list key expires the whole cache when
// it goes idle.
type RedisStore struct {
	client     *redis.Client
	key        string
	maxEntries int
	ttl        time.Duration
}

// NewRedisStore creates a Redis-backed store. An empty key uses the default;
// maxEntries <= 0 means unbounded; ttl <= 0 means no expiry.
func NewRedisStore(client *redis.Client, key string, maxEntries int, ttl time.Duration) *RedisStore {
	if key == "" {
		key = defaultRedisKey
	}
	return &RedisStore{
		client:     client,
		key:        key,
		maxEntries: maxEntries,
		ttl:        ttl,
	}
}

func (s *RedisStore) Append(ctx context.Context, entry Entry) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}

	if err := s.client.RPush(ctx, s.key, payload).Err(); err != nil {
		return fmt.Errorf("failed to append cache entry: %w", err)
	}

	if s.maxEntries > 0 {
		// Keep only the newest maxEntries elements.
		if err := s.client.LTrim(ctx, s.key, int64(-s.maxEntries), -1).Err(); err != nil {
			return fmt.Errorf("failed to trim cache: %w", err)
		}
	}

	if s.ttl > 0 {
		if err := s.client.Expire(ctx, s.key, s.ttl).Err(); err != nil {
			return fmt.Errorf("failed to set cache expiry: %w", err)
		}
	}

	return nil
}

func (s *RedisStore) Entries(ctx context.Context) ([]Entry, error) {
	raw, err := s.client.LRange(ctx, s.key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read cache entries: %w", err)
	}

	entries := make([]Entry, 0, len(raw))
	for _, item := range raw {
		var entry Entry
		if err := json.Unmarshal([]byte(item), &entry); err != nil {
			// Skip entries written by an incompatible version.
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

var _ Store = (*RedisStore)(nil)
