package reactive_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/delaneyj/signalflow/reactive"
)

func TestBlockedReactionOnlyHoldsUpItsOwnWrite(t *testing.T) {
	lt := reactive.NewLifetime()
	defer lt.Close()

	a := reactive.NewSignal(0)
	entered := make(chan struct{})
	release := make(chan struct{})
	ran := make(chan int, 8)
	reactive.React1(lt, a, func(ctx context.Context, v int) error {
		ran <- v
		if v == 1 {
			close(entered)
			<-release
		}
		return nil
	})
	require.Equal(t, 0, receive(t, ran))

	done := make(chan struct{})
	go func() {
		a.Set(1)
		close(done)
	}()
	<-entered
	require.Equal(t, 1, receive(t, ran))

	other := reactive.NewSignal(0)
	double := reactive.Derived1(lt, other, func(v int) int { return v * 2 })
	other.Set(5)
	assert.Equal(t, 10, double.Get())

	// the busy reaction picks this up once it returns
	assert.True(t, a.Set(2))
	assert.Equal(t, 2, a.Get())

	close(release)
	select {
	case <-done:
	case <-time.After(time.Second):
		require.FailNow(t, "first write never finished")
	}
	assert.Equal(t, 2, receive(t, ran))
}

func TestSettleInsideReaction(t *testing.T) {
	lt := reactive.NewLifetime()
	defer lt.Close()

	n := reactive.NewSignal(1)
	square := reactive.Async1(lt, n, func(ctx context.Context, v int) (int, error) {
		return v * v, nil
	}, reactive.WithScheduler(reactive.Goroutine))

	results := make(chan int, 4)
	reactive.React1(lt, n, func(ctx context.Context, _ int) error {
		ctx, cancel := context.WithTimeout(ctx, time.Second)
		defer cancel()
		v, err := reactive.Settle[int](ctx, square)
		if err != nil {
			return err
		}
		results <- v
		return nil
	}, reactive.WithErrorHandler(func(_ reactive.NodeInfo, err error) {
		assert.NoError(t, err)
	}))
	assert.Equal(t, 1, receive(t, results))

	n.Set(2)
	assert.Equal(t, 4, receive(t, results))
}

func TestConcurrentWritersEndOnLastValue(t *testing.T) {
	lt := reactive.NewLifetime()
	defer lt.Close()

	a := reactive.NewSignal(0)
	b := reactive.NewSignal(0)
	sum := reactive.Derived2(lt, a, b, func(a, b int) int { return a + b })

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		w := w
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 1; i <= 100; i++ {
				if w%2 == 0 {
					a.Set(w*1000 + i)
				} else {
					b.Set(w*1000 + i)
				}
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, a.Get()+b.Get(), sum.Get())
}
