package reactive

import (
	"slices"
)

// Array is a Signal holding a slice. Every mutator builds a new backing array and
// writes it through the signal, so any mutation that replaces the slice notifies.
// Slices returned by Get are shared and must not be modified.
type Array[T any] struct {
	*Signal[[]T]
	itemEqual EqualFunc[T]
}

// NewArray copies items into a new Array. WithEquals here takes a func(a, b T)
// bool and is used by Remove.
func NewArray[T any](items []T, opts ...Option) *Array[T] {
	o := buildOptions(defaultOptions(), opts)
	itemEqual := equalFor(&o, Identical[T])
	o.equal = nil
	return &Array[T]{
		Signal:    newSignal(KindArray, clone(items), o),
		itemEqual: itemEqual,
	}
}

// fresh allocates a slice that never shares its backing array with another
// fresh slice, even when empty. Zero-sized element types are the exception.
func fresh[T any](n int) []T {
	return make([]T, n, max(n, 1))
}

func clone[T any](items []T) []T {
	out := fresh[T](len(items))
	copy(out, items)
	return out
}

// Len reads the current length.
func (a *Array[T]) Len() int {
	return len(a.Get())
}

// Length is a live view of the length.
func (a *Array[T]) Length() Readable[int] {
	return Map[[]T, int](a, func(items []T) int {
		return len(items)
	})
}

// At returns the item at i, if any.
func (a *Array[T]) At(i int) (T, bool) {
	items := a.Get()
	if i < 0 || i >= len(items) {
		var zero T
		return zero, false
	}
	return items[i], true
}

// Push appends items and returns the new length.
func (a *Array[T]) Push(items ...T) int {
	n := 0
	a.Update(func(cur []T) []T {
		next := fresh[T](len(cur) + len(items))
		copy(next, cur)
		copy(next[len(cur):], items)
		n = len(next)
		return next
	})
	return n
}

// Pop removes the last item. On an empty array nothing is written.
func (a *Array[T]) Pop() (T, bool) {
	var (
		item T
		ok   bool
	)
	a.Update(func(cur []T) []T {
		if len(cur) == 0 {
			return cur
		}
		item, ok = cur[len(cur)-1], true
		return clone(cur[:len(cur)-1])
	})
	return item, ok
}

// Shift removes the first item. On an empty array nothing is written.
func (a *Array[T]) Shift() (T, bool) {
	var (
		item T
		ok   bool
	)
	a.Update(func(cur []T) []T {
		if len(cur) == 0 {
			return cur
		}
		item, ok = cur[0], true
		return clone(cur[1:])
	})
	return item, ok
}

// Unshift prepends items and returns the new length.
func (a *Array[T]) Unshift(items ...T) int {
	n := 0
	a.Update(func(cur []T) []T {
		next := fresh[T](len(cur) + len(items))
		copy(next, items)
		copy(next[len(items):], cur)
		n = len(next)
		return next
	})
	return n
}

// Splice removes deleteCount items at start, inserts items in their place and
// returns what was removed. A negative start counts back from the end; start
// and deleteCount are clamped to the array.
func (a *Array[T]) Splice(start, deleteCount int, items ...T) []T {
	var removed []T
	a.Update(func(cur []T) []T {
		var next []T
		next, removed = splice(cur, start, deleteCount, items)
		return next
	})
	return removed
}

func splice[T any](cur []T, start, deleteCount int, items []T) (next, removed []T) {
	n := len(cur)
	switch {
	case start < 0:
		start = max(n+start, 0)
	case start > n:
		start = n
	}
	deleteCount = min(max(deleteCount, 0), n-start)

	removed = make([]T, deleteCount)
	copy(removed, cur[start:start+deleteCount])

	next = fresh[T](n - deleteCount + len(items))
	copy(next, cur[:start])
	copy(next[start:], items)
	copy(next[start+len(items):], cur[start+deleteCount:])
	return next, removed
}

// InsertAt inserts item at index, clamped to the array.
func (a *Array[T]) InsertAt(index int, item T) {
	a.Update(func(cur []T) []T {
		index = min(max(index, 0), len(cur))
		next, _ := splice(cur, index, 0, []T{item})
		return next
	})
}

// RemoveAt removes the item at index. Out of range is a no-op.
func (a *Array[T]) RemoveAt(index int) (T, bool) {
	var (
		item T
		ok   bool
	)
	a.Update(func(cur []T) []T {
		if index < 0 || index >= len(cur) {
			return cur
		}
		item, ok = cur[index], true
		next, _ := splice(cur, index, 1, nil)
		return next
	})
	return item, ok
}

// Remove removes the first item equal to item and reports whether it found one.
func (a *Array[T]) Remove(item T) bool {
	found := false
	a.Update(func(cur []T) []T {
		i := slices.IndexFunc(cur, func(v T) bool {
			return a.itemEqual(v, item)
		})
		if i < 0 {
			return cur
		}
		found = true
		next, _ := splice(cur, i, 1, nil)
		return next
	})
	return found
}

// Move moves the item at from so it ends up at index to. Either index out of
// range is a no-op.
func (a *Array[T]) Move(from, to int) bool {
	moved := false
	a.Update(func(cur []T) []T {
		if from < 0 || from >= len(cur) || to < 0 || to >= len(cur) {
			return cur
		}
		moved = true
		next := clone(cur)
		item := next[from]
		if from < to {
			copy(next[from:to], next[from+1:to+1])
		} else {
			copy(next[to+1:from+1], next[to:from])
		}
		next[to] = item
		return next
	})
	return moved
}

// Sort stably sorts with cmp, which returns a negative number when a sorts
// before b.
func (a *Array[T]) Sort(cmp func(a, b T) int) {
	a.Update(func(cur []T) []T {
		next := clone(cur)
		slices.SortStableFunc(next, cmp)
		return next
	})
}

func (a *Array[T]) Reverse() {
	a.Update(func(cur []T) []T {
		next := clone(cur)
		slices.Reverse(next)
		return next
	})
}

func (a *Array[T]) Clear() {
	a.Update(func([]T) []T {
		return fresh[T](0)
	})
}

// MapItems is a live view applying fn to every item.
func MapItems[T, U any](a *Array[T], fn func(item T, index int) U) Readable[[]U] {
	return Map[[]T, []U](a, func(items []T) []U {
		out := make([]U, len(items))
		for i, item := range items {
			out[i] = fn(item, i)
		}
		return out
	})
}
