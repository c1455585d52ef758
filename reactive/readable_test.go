package reactive_test

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/delaneyj/signalflow/reactive"
)

func receive[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v, ok := <-ch:
		require.True(t, ok, "channel closed")
		return v
	case <-time.After(time.Second):
		require.FailNow(t, "timed out waiting for a value")
	}
	panic("unreachable")
}

func TestMapIsLazy(t *testing.T) {
	lt := reactive.NewLifetime()
	defer lt.Close()

	s := reactive.NewSignal(2)
	calls := 0
	label := reactive.Map[int, string](s, func(v int) string {
		calls++
		return "#" + strconv.Itoa(v)
	})
	assert.Equal(t, 0, calls)

	assert.Equal(t, "#2", label.Get())
	assert.Equal(t, "#2", label.Get())
	assert.Equal(t, 2, calls)

	var seen []string
	current := label.Subscribe(lt, func(v string) {
		seen = append(seen, v)
	})
	assert.Equal(t, "#2", current)
	s.Set(3)
	assert.Equal(t, []string{"#3"}, seen)
}

func TestChangesSkipsCurrentValue(t *testing.T) {
	lt := reactive.NewLifetime()
	s := reactive.NewSignal(1)

	changes := reactive.Changes[int](lt, s)
	s.Set(2)
	s.Set(3)
	assert.Equal(t, 2, receive(t, changes))
	assert.Equal(t, 3, receive(t, changes))

	lt.Close()
	_, ok := <-changes
	assert.False(t, ok)
	assert.Equal(t, 0, s.Subscribers())
}

func TestChangesAreMulticast(t *testing.T) {
	lt := reactive.NewLifetime()
	defer lt.Close()

	s := reactive.NewSignal(0)
	a := reactive.Changes[int](lt, s)
	s.Set(1)
	b := reactive.Changes[int](lt, s)
	s.Set(2)

	assert.Equal(t, 1, receive(t, a))
	assert.Equal(t, 2, receive(t, a))
	assert.Equal(t, 2, receive(t, b))
}

func TestChangesNeverBlockWriters(t *testing.T) {
	lt := reactive.NewLifetime()
	defer lt.Close()

	s := reactive.NewSignal(0)
	changes := reactive.Changes[int](lt, s)
	for i := 1; i <= 1000; i++ {
		s.Set(i)
	}
	for i := 1; i <= 1000; i++ {
		require.Equal(t, i, receive(t, changes))
	}
}

func TestValuesStartsWithCurrent(t *testing.T) {
	lt := reactive.NewLifetime()
	defer lt.Close()

	s := reactive.NewSignal("a")
	values := reactive.Values[string](lt, s)
	s.Set("b")

	assert.Equal(t, "a", receive(t, values))
	assert.Equal(t, "b", receive(t, values))
}

func TestCombineCarriesLastKnownValues(t *testing.T) {
	lt := reactive.NewLifetime()
	defer lt.Close()

	a := reactive.NewSignal(1)
	b := reactive.NewSignal("x")
	both := reactive.Combine(a, b)
	assert.Equal(t, []any{1, "x"}, both.Get())

	var tuples [][]any
	current := both.Subscribe(lt, func(v []any) {
		tuples = append(tuples, v)
	})
	assert.Equal(t, []any{1, "x"}, current)

	a.Set(2)
	b.Set("y")
	a.Set(3)
	assert.Equal(t, [][]any{
		{2, "x"},
		{2, "y"},
		{3, "y"},
	}, tuples)
}

func TestCombineWithoutSources(t *testing.T) {
	lt := reactive.NewLifetime()
	defer lt.Close()

	empty := reactive.Combine()
	values := reactive.Values[[]any](lt, empty)
	assert.Equal(t, []any{}, receive(t, values))

	select {
	case v := <-values:
		assert.Failf(t, "unexpected tuple", "%v", v)
	case <-time.After(20 * time.Millisecond):
	}
}

func TestConstNeverChanges(t *testing.T) {
	lt := reactive.NewLifetime()
	defer lt.Close()

	c := reactive.Const(42)
	assert.Equal(t, 42, c.Get())
	assert.Equal(t, 42, c.Subscribe(lt, func(int) {
		assert.Fail(t, "const delivered a change")
	}))

	d := reactive.Derived2(lt, c, reactive.NewSignal(1), func(a, b int) int { return a + b })
	assert.Equal(t, 43, d.Get())
}
