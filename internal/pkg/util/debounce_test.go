package util

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebouncer_OnlyLastTriggerFires(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)

	var mu sync.Mutex
	var got []int
	for i := 1; i <= 5; i++ {
		v := i
		d.Trigger("post-1", func() {
			mu.Lock()
			got = append(got, v)
			mu.Unlock()
		})
		time.Sleep(5 * time.Millisecond)
	}

	require.Eventually(t, func() bool { return d.Pending() == 0 }, time.Second, 5*time.Millisecond)
	time.Sleep(40 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{5}, got)
}

func TestDebouncer_KeysAreIndependent(t *testing.T) {
	d := NewDebouncer(10 * time.Millisecond)
	var count int32
	d.Trigger("a", func() { atomic.AddInt32(&count, 1) })
	d.Trigger("b", func() { atomic.AddInt32(&count, 1) })

	require.Eventually(t, func() bool { return atomic.LoadInt32(&count) == 2 }, time.Second, 5*time.Millisecond)
}

func TestDebouncer_Cancel(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	var fired int32
	d.Trigger("a", func() { atomic.StoreInt32(&fired, 1) })
	d.Cancel("a")

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&fired))
	assert.Equal(t, 0, d.Pending())
}

func TestDebouncer_FlushRunsPending(t *testing.T) {
	d := NewDebouncer(time.Hour)
	var count int32
	d.Trigger("a", func() { atomic.AddInt32(&count, 1) })
	d.Trigger("b", func() { atomic.AddInt32(&count, 1) })

	d.Flush()

	assert.Equal(t, int32(2), atomic.LoadInt32(&count))
	assert.Equal(t, 0, d.Pending())
}
