package reactive_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/delaneyj/signalflow/reactive"
)

func TestQueueFlushRunsNestedWork(t *testing.T) {
	q := reactive.NewQueue()
	var order []string
	q.Schedule(func() {
		order = append(order, "a")
		q.Schedule(func() { order = append(order, "c") })
	})
	q.Schedule(func() { order = append(order, "b") })
	q.Schedule(nil)

	assert.Equal(t, 2, q.Len())
	assert.Equal(t, 3, q.Flush())
	assert.Equal(t, []string{"a", "b", "c"}, order)
	assert.Zero(t, q.Flush())
}

func TestDirectAndSchedulerFunc(t *testing.T) {
	ran := false
	reactive.Direct.Schedule(func() { ran = true })
	assert.True(t, ran)

	var nilFunc reactive.SchedulerFunc
	assert.NotPanics(t, func() { nilFunc.Schedule(func() {}) })
}

func TestPoolRunsWork(t *testing.T) {
	pool, err := reactive.NewPool(4, nil)
	require.NoError(t, err)
	defer pool.Release()

	var wg sync.WaitGroup
	total := atomic.NewInt64(0)
	for i := 1; i <= 100; i++ {
		i := i
		wg.Add(1)
		pool.Schedule(func() {
			defer wg.Done()
			total.Add(int64(i))
		})
	}
	wg.Wait()
	assert.Equal(t, int64(5050), total.Load())
}

func TestPoolLogsPanics(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	pool, err := reactive.NewPool(1, zap.New(core))
	require.NoError(t, err)
	defer pool.Release()

	pool.Schedule(func() { panic("boom") })
	assert.Eventually(t, func() bool {
		return logs.FilterMessage("scheduled work panicked").Len() == 1
	}, time.Second, time.Millisecond)
}
