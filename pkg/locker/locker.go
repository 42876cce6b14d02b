// Package locker coordinates work across service instances with distributed
// locks.
package locker

import (
	"context"
	"time"
)

// DistributedLocker is a non-blocking distributed lock. Implementations must
// be safe for concurrent use.
//
// Acquire returns false without error when another instance already holds the
// key. The ttl doubles as a cooldown: a holder that never releases simply
// keeps the key for ttl.
type DistributedLocker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Release unlocks key if this instance owns it; releasing a lock owned
	// elsewhere (or already expired) is a no-op.
	Release(ctx context.Context, key string) error
}
