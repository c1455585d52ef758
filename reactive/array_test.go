package reactive_test

import (
	"cmp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/delaneyj/signalflow/reactive"
)

func watch[T any](t *testing.T, a *reactive.Array[T]) *[][]T {
	t.Helper()
	lt := reactive.NewLifetime()
	t.Cleanup(lt.Close)

	seen := &[][]T{}
	a.Subscribe(lt, func(items []T) {
		*seen = append(*seen, items)
	})
	return seen
}

func TestArrayPush(t *testing.T) {
	a := reactive.NewArray([]int{1, 2, 3})
	seen := watch(t, a)

	assert.Equal(t, 4, a.Push(4))
	assert.Equal(t, []int{1, 2, 3, 4}, a.Get())
	assert.Equal(t, [][]int{{1, 2, 3, 4}}, *seen)
}

func TestArraySplice(t *testing.T) {
	a := reactive.NewArray([]int{1, 2, 3, 4, 5})
	assert.Equal(t, []int{2, 3}, a.Splice(1, 2))
	assert.Equal(t, []int{1, 4, 5}, a.Get())

	assert.Empty(t, a.Splice(1, 0, 7, 8))
	assert.Equal(t, []int{1, 7, 8, 4, 5}, a.Get())

	assert.Equal(t, []int{4, 5}, a.Splice(-2, 10))
	assert.Equal(t, []int{1, 7, 8}, a.Get())

	assert.Empty(t, a.Splice(99, 1, 9))
	assert.Equal(t, []int{1, 7, 8, 9}, a.Get())
}

func TestArraySpliceRoundTrip(t *testing.T) {
	inserted := []int{7, 8}
	for _, tt := range []struct {
		name  string
		items []int
		start int
	}{
		{"empty at zero", []int{}, 0},
		{"empty negative", []int{}, -3},
		{"single at zero", []int{1}, 0},
		{"single at end", []int{1}, 1},
		{"single negative", []int{1}, -1},
		{"many at zero", []int{1, 2, 3, 4, 5}, 0},
		{"many in middle", []int{1, 2, 3, 4, 5}, 2},
		{"many at end", []int{1, 2, 3, 4, 5}, 5},
		{"many past end", []int{1, 2, 3, 4, 5}, 9},
		{"many negative", []int{1, 2, 3, 4, 5}, -2},
		{"many too negative", []int{1, 2, 3, 4, 5}, -9},
	} {
		t.Run(tt.name, func(t *testing.T) {
			a := reactive.NewArray(tt.items)
			require.Empty(t, a.Splice(tt.start, 0, inserted...))
			require.Equal(t, len(tt.items)+len(inserted), a.Len())

			// where the insert landed, counted from the front
			at := min(tt.start, len(tt.items))
			if tt.start < 0 {
				at = max(len(tt.items)+tt.start, 0)
			}
			assert.Equal(t, inserted, a.Splice(at, len(inserted)))
			assert.Equal(t, tt.items, a.Get())
		})
	}
}

func TestArrayMove(t *testing.T) {
	a := reactive.NewArray([]int{1, 2, 3, 4})
	require.True(t, a.Move(0, 2))
	assert.Equal(t, []int{2, 3, 1, 4}, a.Get())

	b := reactive.NewArray([]int{1, 2, 3, 4})
	require.True(t, b.Move(3, 1))
	assert.Equal(t, []int{1, 4, 2, 3}, b.Get())

	// moving back restores the original order
	require.True(t, b.Move(1, 3))
	assert.Equal(t, []int{1, 2, 3, 4}, b.Get())
}

func TestArrayMoveOutOfRange(t *testing.T) {
	a := reactive.NewArray([]int{1, 2, 3})
	seen := watch(t, a)

	assert.False(t, a.Move(-1, 0))
	assert.False(t, a.Move(0, 3))
	assert.False(t, a.Move(5, 1))
	assert.Equal(t, []int{1, 2, 3}, a.Get())
	assert.Empty(t, *seen)
}

func TestArrayEveryMutationNotifies(t *testing.T) {
	a := reactive.NewArray([]string{"b", "a"})
	seen := watch(t, a)

	a.Move(0, 0)
	a.Sort(strings.Compare)
	a.Reverse()
	a.Unshift("z")
	a.InsertAt(1, "y")
	a.Clear()
	a.Clear()

	assert.Equal(t, [][]string{
		{"b", "a"},
		{"a", "b"},
		{"b", "a"},
		{"z", "b", "a"},
		{"z", "y", "b", "a"},
		{},
		{},
	}, *seen)
}

func TestArrayMutationsNeverAlias(t *testing.T) {
	a := reactive.NewArray([]int{1, 2})
	before := a.Get()
	a.Push(3)
	a.Pop()

	after := a.Get()
	assert.Equal(t, before, after)
	assert.NotSame(t, &before[0], &after[0])

	a.Clear()
	empty := a.Get()
	a.Clear()
	assert.False(t, reactive.Identical(empty, a.Get()))
}

func TestArrayPopAndShift(t *testing.T) {
	a := reactive.NewArray([]int{1, 2, 3})

	v, ok := a.Pop()
	assert.True(t, ok)
	assert.Equal(t, 3, v)

	v, ok = a.Shift()
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	assert.Equal(t, []int{2}, a.Get())

	a.Pop()
	seen := watch(t, a)
	_, ok = a.Pop()
	assert.False(t, ok)
	_, ok = a.Shift()
	assert.False(t, ok)
	assert.Empty(t, *seen, "empty pop and shift do not write")
}

func TestArrayRemove(t *testing.T) {
	a := reactive.NewArray([]int{1, 2, 1, 3})
	seen := watch(t, a)

	assert.True(t, a.Remove(1))
	assert.Equal(t, []int{2, 1, 3}, a.Get())
	assert.False(t, a.Remove(7))
	assert.Len(t, *seen, 1)

	v, ok := a.RemoveAt(1)
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	_, ok = a.RemoveAt(5)
	assert.False(t, ok)
	assert.Equal(t, []int{2, 3}, a.Get())
}

type todo struct {
	ID    int
	Title string
}

func TestArrayRemoveWithItemEquality(t *testing.T) {
	a := reactive.NewArray([]*todo{{1, "write"}, {2, "test"}},
		reactive.WithEquals(func(a, b *todo) bool { return a.ID == b.ID }),
	)
	assert.True(t, a.Remove(&todo{ID: 2}))
	require.Equal(t, 1, a.Len())
	first, ok := a.At(0)
	require.True(t, ok)
	assert.Equal(t, "write", first.Title)
}

func TestArrayInsertAtClamps(t *testing.T) {
	a := reactive.NewArray([]int{1, 2})
	a.InsertAt(-5, 0)
	a.InsertAt(99, 3)
	a.InsertAt(2, 9)
	assert.Equal(t, []int{0, 1, 9, 2, 3}, a.Get())
}

func TestArraySortIsStable(t *testing.T) {
	a := reactive.NewArray([]todo{{3, "c"}, {1, "a"}, {3, "b"}, {2, "d"}})
	a.Sort(func(x, y todo) int { return cmp.Compare(x.ID, y.ID) })
	assert.Equal(t, []todo{{1, "a"}, {2, "d"}, {3, "c"}, {3, "b"}}, a.Get())
}

func TestArrayViews(t *testing.T) {
	lt := reactive.NewLifetime()
	defer lt.Close()

	a := reactive.NewArray([]string{"x"})
	var lengths []int
	assert.Equal(t, 1, a.Length().Subscribe(lt, func(n int) {
		lengths = append(lengths, n)
	}))

	labels := reactive.MapItems(a, func(item string, i int) string {
		return strings.Repeat(item, i+1)
	})
	var rendered [][]string
	labels.Subscribe(lt, func(v []string) {
		rendered = append(rendered, v)
	})

	a.Push("y", "z")
	a.Shift()

	assert.Equal(t, []int{3, 2}, lengths)
	assert.Equal(t, [][]string{{"x", "yy", "zzz"}, {"y", "zz"}}, rendered)
	assert.Equal(t, []string{"y", "zz"}, labels.Get())
}

func TestArrayCopiesInput(t *testing.T) {
	items := []int{1, 2}
	a := reactive.NewArray(items)
	items[0] = 9
	assert.Equal(t, []int{1, 2}, a.Get())

	_, ok := a.At(2)
	assert.False(t, ok)
}
