package lock

import (
	"context"
	"sync"
	"time"
)

var (
	lockMap sync.Map
)

const pollInterval = 20 * time.Millisecond

// WithDelay runs safeCode while holding the named lock. It waits up to wait
// for the lock and reports success=false when it could not get it in time or
// ctx was done first.
func WithDelay(ctx context.Context, key string, wait time.Duration, safeCode func() error) (success bool, err error) {
	isTimeout := time.After(wait)
	for {
		if _, loaded := lockMap.LoadOrStore(key, true); !loaded {
			break
		}
		select {
		case <-isTimeout:
			return false, nil
		case <-ctx.Done():
			return false, nil
		case <-time.After(pollInterval):
		}
	}
	defer lockMap.Delete(key)
	return true, safeCode()
}
