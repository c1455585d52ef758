package reactive_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/delaneyj/signalflow/reactive"
)

type point struct{ X, Y int }

type tagged struct {
	Name string
	Tags []string
}

func TestIdentical(t *testing.T) {
	items := []int{1, 2, 3}
	m := map[string]int{"a": 1}
	p := &point{1, 2}
	ch := make(chan int)

	assert.True(t, reactive.Identical(1, 1))
	assert.False(t, reactive.Identical(1, 2))
	assert.True(t, reactive.Identical("a", "a"))
	assert.True(t, reactive.Identical(point{1, 2}, point{1, 2}))

	assert.True(t, reactive.Identical(items, items))
	assert.False(t, reactive.Identical(items, []int{1, 2, 3}))
	assert.False(t, reactive.Identical(items, items[:2]))
	assert.True(t, reactive.Identical[[]int](nil, nil))

	assert.True(t, reactive.Identical(m, m))
	assert.False(t, reactive.Identical(m, map[string]int{"a": 1}))
	assert.True(t, reactive.Identical(p, p))
	assert.False(t, reactive.Identical(p, &point{1, 2}))
	assert.True(t, reactive.Identical(ch, ch))

	var a, b any = items, items
	assert.True(t, reactive.Identical(a, b))
	assert.False(t, reactive.Identical[any](1, "1"))
	assert.True(t, reactive.Identical[any](nil, nil))
	assert.False(t, reactive.Identical[any](nil, 0))

	// structs holding slices are not comparable and always count as changed
	v := tagged{Name: "x", Tags: []string{"t"}}
	assert.False(t, reactive.Identical(v, v))
}

func TestEqualityHelpers(t *testing.T) {
	assert.True(t, reactive.Comparable(point{1, 2}, point{1, 2}))
	assert.True(t, reactive.DeepEqual([]int{1, 2}, []int{1, 2}))
	assert.True(t, reactive.DeepEqual(
		tagged{Name: "x", Tags: []string{"a"}},
		tagged{Name: "x", Tags: []string{"a"}},
	))
	assert.False(t, reactive.Never(1, 1))
}

func TestDeepEqualSuppressesStructuralRewrites(t *testing.T) {
	s := reactive.NewSignal(tagged{Name: "x"}, reactive.WithEquals(reactive.DeepEqual[tagged]))
	assert.False(t, s.Set(tagged{Name: "x"}))
	assert.True(t, s.Set(tagged{Name: "x", Tags: []string{"a"}}))
}
