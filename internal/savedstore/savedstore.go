// Package savedstore keeps each session's saved listing ids in Redis.
// Entries are keyed by the session token's id and expire with the token,
// so saved listings are session-local and vanish when the session does.
package savedstore

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	// Load .env file to environments
	_ "github.com/joho/godotenv/autoload"
	"github.com/redis/go-redis/v9"
)

// Store wraps the Redis client holding saved-listing sets.
type Store struct {
	rdb *redis.Client
}

// New builds a Store around an existing Redis client.
func New(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

// NewFromEnv connects to Redis using REDIS_ADDR, REDIS_PASSWORD and REDIS_DB
// and pings it once to fail fast on misconfiguration.
func NewFromEnv(ctx context.Context) (*Store, error) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	db := 0
	if raw := os.Getenv("REDIS_DB"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB %q: %w", raw, err)
		}
		db = parsed
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &Store{rdb: rdb}, nil
}

func sessionKey(sessionID string) string {
	return "saved:" + sessionID
}

// Toggle flips membership of a listing in the session's saved set and
// reports the resulting state (true when the listing is now saved). The
// set's expiry is refreshed to ttl so it never outlives the session token.
// SADD's reply decides the branch, so concurrent toggles for the same
// member serialize on Redis instead of racing a separate membership read.
func (s *Store) Toggle(ctx context.Context, sessionID string, listingID uuid.UUID, ttl time.Duration) (bool, error) {
	key := sessionKey(sessionID)
	member := listingID.String()

	added, err := s.rdb.SAdd(ctx, key, member).Result()
	if err != nil {
		return false, err
	}
	if added == 0 {
		// Already saved: this toggle removes it.
		if err := s.rdb.SRem(ctx, key, member).Err(); err != nil {
			return false, err
		}
		return false, nil
	}

	if ttl > 0 {
		if err := s.rdb.Expire(ctx, key, ttl).Err(); err != nil {
			return false, err
		}
	}
	return true, nil
}

// List returns the session's saved listing ids. Members that are not valid
// uuids are skipped rather than failing the whole read.
func (s *Store) List(ctx context.Context, sessionID string) ([]uuid.UUID, error) {
	members, err := s.rdb.SMembers(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(members))
	for _, member := range members {
		id, err := uuid.Parse(member)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Clear drops the session's saved set, used on logout.
func (s *Store) Clear(ctx context.Context, sessionID string) error {
	return s.rdb.Del(ctx, sessionKey(sessionID)).Err()
}

// Close releases the underlying Redis connection.
func (s *Store) Close() error {
	return s.rdb.Close()
}
