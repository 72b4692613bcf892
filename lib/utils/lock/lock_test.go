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
	t.Run(`WithDelay error passthrough check`, func(t *testing.T) {
		expected := errors.New("boom")
		ok, err := WithDelay(context.Background(), "k1", time.Second, func() error {
			return expected
		})
		require.True(t, ok)
		require.ErrorIs(t, err, expected)

		// блокировка освобождена
		ok, err = WithDelay(context.Background(), "k1", time.Second, func() error { return nil })
		require.True(t, ok)
		require.NoError(t, err)
	})

	t.Run(`WithDelay timeout check`, func(t *testing.T) {
		started := make(chan struct{})
		release := make(chan struct{})
		go func() {
			_, _ = WithDelay(context.Background(), "k2", time.Second, func() error {
				close(started)
				<-release
				return nil
			})
		}()
		<-started
		ok, err := WithDelay(context.Background(), "k2", 100*time.Millisecond, func() error {
			t.Fatal("код не должен выполняться")
			return nil
		})
		close(release)
		require.False(t, ok)
		require.NoError(t, err)
	})

	t.Run(`WithDelay context cancel check`, func(t *testing.T) {
		started := make(chan struct{})
		release := make(chan struct{})
		go func() {
			_, _ = WithDelay(context.Background(), "k3", time.Second, func() error {
				close(started)
				<-release
				return nil
			})
		}()
		<-started
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		ok, err := WithDelay(ctx, "k3", time.Second, func() error { return nil })
		close(release)
		require.False(t, ok)
		require.NoError(t, err)
	})

	t.Run(`WithDelay mutual exclusion check`, func(t *testing.T) {
		var inside, maxInside int32
		wg := sync.WaitGroup{}
		for n := 0; n < 8; n++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				ok, _ := WithDelay(context.Background(), "k4", 5*time.Second, func() error {
					cur := atomic.AddInt32(&inside, 1)
					for {
						prev := atomic.LoadInt32(&maxInside)
						if cur <= prev || atomic.CompareAndSwapInt32(&maxInside, prev, cur) {
							break
						}
					}
					time.Sleep(5 * time.Millisecond)
					atomic.AddInt32(&inside, -1)
					return nil
				})
				assert.True(t, ok)
			}()
		}
		wg.Wait()
		require.Equal(t, int32(1), maxInside)
	})
}
