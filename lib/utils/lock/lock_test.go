package lock

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithDelay(t *testing.T) {
	t.Run(`serializes holders of one key`, func(t *testing.T) {
		var active, maxActive int32
		wg := sync.WaitGroup{}
		for n := 0; n < 5; n++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				ok, err := WithDelay(context.Background(), "same-key", time.Second, func() error {
					cur := atomic.AddInt32(&active, 1)
					for {
						prev := atomic.LoadInt32(&maxActive)
						if cur <= prev || atomic.CompareAndSwapInt32(&maxActive, prev, cur) {
							break
						}
					}
					time.Sleep(5 * time.Millisecond)
					atomic.AddInt32(&active, -1)
					return nil
				})
				assert.True(t, ok)
				assert.NoError(t, err)
			}()
		}
		wg.Wait()
		require.Equal(t, int32(1), maxActive)
	})

	t.Run(`times out while held`, func(t *testing.T) {
		release := make(chan struct{})
		started := make(chan struct{})
		go func() {
			_, _ = WithDelay(context.Background(), "busy", time.Second, func() error {
				close(started)
				<-release
				return nil
			})
		}()
		<-started
		ok, err := WithDelay(context.Background(), "busy", 30*time.Millisecond, func() error { return nil })
		close(release)
		require.False(t, ok)
		require.NoError(t, err)
	})

	t.Run(`returns the callback error`, func(t *testing.T) {
		ok, err := WithDelay(context.Background(), "err-key", time.Second, func() error { return errors.New("boom") })
		require.True(t, ok)
		require.EqualError(t, err, "boom")
	})
}
