package history

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyRecent = "search:recent:%s"

// Store keeps a small per-session ring of recent free-text searches in
// Redis. Everything here is best-effort: a down Redis is logged and
// search carries on without history.
type Store struct {
	client *redis.Client
	limit  int
}

// New connects a store to Redis.
func New(addr, password string, limit int) *Store {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  1 * time.Second,
		WriteTimeout: 1 * time.Second,
	})
	return &Store{client: client, limit: limit}
}

// NewWithClient wraps an existing client, used by tests.
func NewWithClient(client *redis.Client, limit int) *Store {
	return &Store{client: client, limit: limit}
}

// Record pushes a committed search to the front of the session's ring,
// deduplicating and trimming to the limit.
func (s *Store) Record(sessionID, query string) {
	if sessionID == "" || query == "" {
		return
	}
	ctx := context.Background()
	key := fmt.Sprintf(keyRecent, sessionID)

	pipe := s.client.TxPipeline()
	pipe.LRem(ctx, key, 0, query)
	pipe.LPush(ctx, key, query)
	pipe.LTrim(ctx, key, 0, int64(s.limit-1))
	pipe.Expire(ctx, key, 24*time.Hour)
	if _, err := pipe.Exec(ctx); err != nil {
		log.Printf("[history] error recording search: %v", err)
	}
}

// Recent returns the session's recent searches, newest first.
func (s *Store) Recent(sessionID string) []string {
	ctx := context.Background()
	key := fmt.Sprintf(keyRecent, sessionID)
	values, err := s.client.LRange(ctx, key, 0, int64(s.limit-1)).Result()
	if err != nil {
		log.Printf("[history] error reading recent searches: %v", err)
		return nil
	}
	return values
}

// Ping checks the Redis connection for the health endpoint.
func (s *Store) Ping() error {
	return s.client.Ping(context.Background()).Err()
}
