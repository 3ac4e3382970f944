// Package locker provides distributed locks so that identical generation
// requests arriving at different instances are processed once.
package locker

import (
	"context"
	"errors"
	"time"
)

// ErrLockHeld is returned by WithLock when another holder owns the key.
var ErrLockHeld = errors.New("lock held by another holder")

// DistributedLocker provides distributed lock capabilities across instances.
// Implementations must be safe for concurrent use.
type DistributedLocker interface {
	// Acquire tries once to take the lock. It returns false, not an error,
	// when someone else holds it. The lock expires after ttl.
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Release gives the lock back. Releasing a lock this instance does not
	// own is a no-op.
	Release(ctx context.Context, key string) error
}

// WithLock runs fn while holding key. It returns ErrLockHeld without calling
// fn when the lock is taken. The release uses a fresh context so a
// cancelled request still frees its lock.
func WithLock(ctx context.Context, l DistributedLocker, key string, ttl time.Duration, fn func(ctx context.Context) error) error {
	acquired, err := l.Acquire(ctx, key, ttl)
	if err != nil {
		return err
	}
	if !acquired {
		return ErrLockHeld
	}

	defer func() {
		releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		_ = l.Release(releaseCtx, key)
	}()

	return fn(ctx)
}

// NopLocker always grants the lock. It is used when Redis is disabled.
type NopLocker struct{}

// Acquire always succeeds.
func (NopLocker) Acquire(context.Context, string, time.Duration) (bool, error) {
	return true, nil
}

// Release does nothing.
func (NopLocker) Release(context.Context, string) error {
	return nil
}
