package locker

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-redsync/redsync/v4"
	goredsync "github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisLocker implements DistributedLocker on Redsync (the Redlock
// algorithm). Held mutexes are tracked per key so Release can verify
// ownership.
type RedisLocker struct {
	rs     *redsync.Redsync
	logger *zap.Logger

	mu      sync.Mutex
	mutexes map[string]*redsync.Mutex
}

// NewRedisLocker creates a RedisLocker on top of an existing Redis client.
func NewRedisLocker(client *redis.Client, logger *zap.Logger) *RedisLocker {
	return &RedisLocker{
		rs:      redsync.New(goredsync.NewPool(client)),
		logger:  logger,
		mutexes: make(map[string]*redsync.Mutex),
	}
}

// Acquire tries to take the lock exactly once; it never blocks waiting for a
// holder. The lock expires after ttl on its own, so a crashed holder cannot
// deadlock the cluster.
func (r *RedisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	mutex := r.rs.NewMutex(
		key,
		redsync.WithExpiry(ttl),
		redsync.WithTries(1),
	)

	if err := mutex.LockContext(ctx); err != nil {
		// Redsync reports contention either as ErrFailed or as a wrapped
		// "lock already taken" error depending on the path; both mean
		// another instance holds the key.
		if err == redsync.ErrFailed || strings.Contains(err.Error(), "lock already taken") {
			r.logger.Debug("lock held elsewhere", zap.String("key", key))

			return false, nil
		}

		return false, fmt.Errorf("acquire lock %s: %w", key, err)
	}

	r.mu.Lock()
	r.mutexes[key] = mutex
	r.mu.Unlock()

	r.logger.Debug("lock acquired",
		zap.String("key", key),
		zap.Duration("ttl", ttl),
	)

	return true, nil
}

// Release unlocks key if this instance owns it. Redsync verifies the lock
// token, so releasing after expiry or without ownership cannot steal the key
// from another holder.
func (r *RedisLocker) Release(ctx context.Context, key string) error {
	r.mu.Lock()
	mutex, owned := r.mutexes[key]
	delete(r.mutexes, key)
	r.mu.Unlock()

	if !owned {
		r.logger.Debug("release skipped, lock not owned here", zap.String("key", key))

		return nil
	}

	ok, err := mutex.UnlockContext(ctx)
	if err != nil {
		return fmt.Errorf("release lock %s: %w", key, err)
	}
	if ok {
		r.logger.Debug("lock released", zap.String("key", key))
	} else {
		r.logger.Debug("lock already expired", zap.String("key", key))
	}

	return nil
}
