package statecache

import (
	"context"
	"errors"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keyStr(k uint64) string { return strconv.FormatUint(k, 10) }

func TestHolder_CachesWithinTTL(t *testing.T) {
	var calls int32
	h := New(func(_ context.Context, k uint64) (string, error) {
		n := atomic.AddInt32(&calls, 1)
		return "v" + strconv.Itoa(int(n)), nil
	}, time.Minute, keyStr)

	now := time.Now()
	h.now = func() time.Time { return now }

	v, err := h.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "v1", v)

	v, _ = h.Get(context.Background(), 1)
	assert.Equal(t, "v1", v)

	now = now.Add(2 * time.Minute)
	v, _ = h.Get(context.Background(), 1)
	assert.Equal(t, "v2", v)
}

func TestHolder_InvalidateRefetchesAndNotifies(t *testing.T) {
	version := "old"
	h := New(func(_ context.Context, k uint64) (string, error) { return version, nil }, 0, keyStr)

	var seen []string
	unsubscribe := h.Subscribe(func(k uint64, v string) { seen = append(seen, keyStr(k)+"="+v) })

	v, _ := h.Get(context.Background(), 9)
	assert.Equal(t, "old", v)

	version = "new"
	v, _ = h.Get(context.Background(), 9)
	assert.Equal(t, "old", v, "ttl 0 means entries never expire on their own")

	v, err := h.Invalidate(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, "new", v)
	assert.Equal(t, []string{"9=new"}, seen)

	unsubscribe()
	unsubscribe()
	_, _ = h.Invalidate(context.Background(), 9)
	assert.Len(t, seen, 1)
}

func TestHolder_FetchErrorNotCached(t *testing.T) {
	fail := true
	h := New(func(_ context.Context, k uint64) (int, error) {
		if fail {
			return 0, errors.New("db down")
		}
		return 5, nil
	}, time.Minute, keyStr)

	var notified int32
	h.Subscribe(func(uint64, int) { atomic.AddInt32(&notified, 1) })

	_, err := h.Invalidate(context.Background(), 1)
	assert.Error(t, err)
	assert.Zero(t, h.Len())
	assert.Zero(t, atomic.LoadInt32(&notified))

	fail = false
	v, err := h.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 5, v)
}

func TestHolder_Forget(t *testing.T) {
	h := New(func(_ context.Context, k uint64) (int, error) { return 1, nil }, 0, keyStr)
	_, _ = h.Get(context.Background(), 1)
	assert.Equal(t, 1, h.Len())
	h.Forget(1)
	assert.Zero(t, h.Len())
}

func TestHolder_InvalidateDuringInFlightGet(t *testing.T) {
	var version int32 = 1
	var calls int32
	readV1 := make(chan struct{})
	release := make(chan struct{})
	h := New(func(_ context.Context, k uint64) (int, error) {
		v := int(atomic.LoadInt32(&version))
		if atomic.AddInt32(&calls, 1) == 1 {
			close(readV1)
			<-release
		}
		return v, nil
	}, 0, keyStr)

	var seen []int
	h.Subscribe(func(_ uint64, v int) { seen = append(seen, v) })

	stale := make(chan int)
	go func() {
		v, _ := h.Get(context.Background(), 1)
		stale <- v
	}()
	<-readV1

	atomic.StoreInt32(&version, 2)
	v, err := h.Invalidate(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 2, v, "invalidate must not join the fetch started before it")
	assert.Equal(t, []int{2}, seen)

	v, _ = h.Get(context.Background(), 1)
	assert.Equal(t, 2, v)

	close(release)
	assert.Equal(t, 1, <-stale)

	v, _ = h.Get(context.Background(), 1)
	assert.Equal(t, 2, v, "stale fetch finishing late must not overwrite the refreshed entry")
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
}

func TestHolder_ForgetDropsInFlightResult(t *testing.T) {
	var calls int32
	started := make(chan struct{})
	release := make(chan struct{})
	h := New(func(_ context.Context, k uint64) (int, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			close(started)
			<-release
		}
		return 7, nil
	}, 0, keyStr)

	done := make(chan struct{})
	go func() {
		_, _ = h.Get(context.Background(), 3)
		close(done)
	}()
	<-started
	h.Forget(3)
	close(release)
	<-done

	assert.Zero(t, h.Len())
}
