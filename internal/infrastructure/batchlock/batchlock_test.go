package batchlock

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/medicine-inventory-api/internal/domain"
	"github.com/jhoicas/medicine-inventory-api/pkg/logger"
)

func TestLocal_MutualExclusion(t *testing.T) {
	l := NewLocal()
	var inside, maxInside int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := l.Lock(context.Background(), "B1")
			if !assert.NoError(t, err) {
				return
			}
			n := atomic.AddInt32(&inside, 1)
			for {
				m := atomic.LoadInt32(&maxInside)
				if n <= m || atomic.CompareAndSwapInt32(&maxInside, m, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&inside, -1)
			unlock()
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), maxInside)
	assert.Empty(t, l.locks)
}

func TestLocal_DifferentBatchesDoNotBlock(t *testing.T) {
	l := NewLocal()
	unlock1, err := l.Lock(context.Background(), "B1")
	require.NoError(t, err)
	defer unlock1()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	unlock2, err := l.Lock(ctx, "B2")
	require.NoError(t, err)
	unlock2()
}

func TestLocal_ContextCancelled(t *testing.T) {
	l := NewLocal()
	unlock, err := l.Lock(context.Background(), "B1")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = l.Lock(ctx, "B1")
	assert.ErrorIs(t, err, domain.ErrLockNotAcquired)

	unlock()
	unlock() // idempotente
	assert.Empty(t, l.locks)
}

func newRedisLocker(t *testing.T, wait time.Duration) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedis(client, 5*time.Second, wait, logger.Nop()), mr
}

func TestRedis_LockAndUnlock(t *testing.T) {
	locker, mr := newRedisLocker(t, 50*time.Millisecond)

	unlock, err := locker.Lock(context.Background(), "B1")
	require.NoError(t, err)
	assert.True(t, mr.Exists(LockKey("B1")))

	_, err = locker.Lock(context.Background(), "B1")
	assert.ErrorIs(t, err, domain.ErrLockNotAcquired)

	unlock()
	assert.False(t, mr.Exists(LockKey("B1")))

	unlock2, err := locker.Lock(context.Background(), "B1")
	require.NoError(t, err)
	unlock2()
}

func TestRedis_UnlockDoesNotDeleteForeignToken(t *testing.T) {
	locker, mr := newRedisLocker(t, 0)

	unlock, err := locker.Lock(context.Background(), "B1")
	require.NoError(t, err)

	// Simula que el TTL expiró y otra instancia tomó el lote.
	require.NoError(t, mr.Set(LockKey("B1"), "otra-instancia"))
	unlock()

	got, err := mr.Get(LockKey("B1"))
	require.NoError(t, err)
	assert.Equal(t, "otra-instancia", got)
}

func TestRedis_WaitsForRelease(t *testing.T) {
	locker, _ := newRedisLocker(t, time.Second)

	unlock, err := locker.Lock(context.Background(), "B1")
	require.NoError(t, err)
	go func() {
		time.Sleep(50 * time.Millisecond)
		unlock()
	}()

	unlock2, err := locker.Lock(context.Background(), "B1")
	require.NoError(t, err)
	unlock2()
}

func TestLockKey(t *testing.T) {
	assert.Equal(t, "inventory:batch:B-001:lock", LockKey("B-001"))
}
