package redis

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// IdempotencyStore records the outcome of seat mutations keyed by the
// client-supplied Idempotency-Key header, so a retried request replays
// the original status instead of mutating the plan twice.
type IdempotencyStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewIdempotencyStore(rdb *redis.Client, ttl time.Duration) *IdempotencyStore {
	return &IdempotencyStore{rdb: rdb, ttl: ttl}
}

// Begin claims the key for the current request. It returns false when
// another request already holds or completed it.
func (s *IdempotencyStore) Begin(ctx context.Context, key string, lockTTL time.Duration) (bool, error) {
	return s.rdb.SetNX(ctx, key, "LOCK", lockTTL).Result()
}

// Commit stores the final HTTP status for the key, replacing the lock.
func (s *IdempotencyStore) Commit(ctx context.Context, key string, status int) error {
	return s.rdb.Set(ctx, key, "RES:"+strconv.Itoa(status), s.ttl).Err()
}

// Replay returns the stored status for a completed key. A key that is
// absent or still locked reports ok=false.
func (s *IdempotencyStore) Replay(ctx context.Context, key string) (int, bool, error) {
	v, err := s.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	if res, found := strings.CutPrefix(v, "RES:"); found {
		status, err := strconv.Atoi(res)
		if err != nil {
			return 0, false, nil
		}
		return status, true, nil
	}
	return 0, false, nil
}

// Release drops the lock so a failed request can be retried.
func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, key).Err()
}
