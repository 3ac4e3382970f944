package locker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// DefaultKeyPrefix namespaces lock keys in Redis.
const DefaultKeyPrefix = "lock"

// RedisLocker implements DistributedLocker with Redsync (Redlock).
type RedisLocker struct {
	rs      *redsync.Redsync
	logger  *zap.Logger
	prefix  string
	mutexes map[string]*redsync.Mutex
	mu      sync.Mutex
}

// NewRedisLocker creates a Redis-based locker. An empty prefix falls back
// to DefaultKeyPrefix.
func NewRedisLocker(client *redis.Client, logger *zap.Logger, prefix string) *RedisLocker {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}

	return &RedisLocker{
		rs:      redsync.New(goredis.NewPool(client)),
		logger:  logger,
		prefix:  prefix,
		mutexes: make(map[string]*redsync.Mutex),
	}
}

// Acquire makes a single non-blocking attempt at the lock.
func (r *RedisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	name := r.prefix + ":" + key
	mutex := r.rs.NewMutex(name,
		redsync.WithExpiry(ttl),
		redsync.WithTries(1),
	)

	if err := mutex.LockContext(ctx); err != nil {
		// Contention surfaces either as ErrFailed or as a wrapped
		// "lock already taken" error.
		if errors.Is(err, redsync.ErrFailed) || strings.Contains(err.Error(), "lock already taken") {
			r.logger.Debug("lock already held", zap.String("key", name))
			return false, nil
		}

		return false, fmt.Errorf("acquire lock %s: %w", name, err)
	}

	r.mu.Lock()
	r.mutexes[key] = mutex
	r.mu.Unlock()

	r.logger.Debug("lock acquired",
		zap.String("key", name),
		zap.Duration("ttl", ttl),
	)

	return true, nil
}

// Release unlocks key if this instance holds it.
func (r *RedisLocker) Release(ctx context.Context, key string) error {
	r.mu.Lock()
	mutex, exists := r.mutexes[key]
	delete(r.mutexes, key)
	r.mu.Unlock()

	if !exists {
		return nil
	}

	ok, err := mutex.UnlockContext(ctx)
	if err != nil {
		return fmt.Errorf("release lock %s: %w", mutex.Name(), err)
	}
	if !ok {
		r.logger.Debug("lock expired before release", zap.String("key", mutex.Name()))
	}

	return nil
}
