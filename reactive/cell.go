package reactive

import (
	"slices"

	"go.uber.org/atomic"

	"github.com/delaneyj/signalflow/internal/syncutils"
)

type subscriber[T any] struct {
	fn     func(T)
	active atomic.Bool

	mu syncutils.Mutex
	// seen is the newest sequence handed to fn or waiting for it. It starts at
	// the last commit before the subscription existed.
	seen    uint64
	running bool
	next    T
	hasNext bool
}

// offer hands v to fn unless a newer value already got there. Calls to fn never
// overlap: a value offered while fn runs on another goroutine replaces any
// waiting one and is picked up by that goroutine when fn returns.
func (s *subscriber[T]) offer(seq uint64, v T) {
	s.mu.Lock()
	if seq <= s.seen {
		s.mu.Unlock()
		return
	}
	s.seen = seq
	if s.running {
		s.next, s.hasNext = v, true
		s.mu.Unlock()
		return
	}
	s.running = true
	s.mu.Unlock()

	finished := false
	defer func() {
		if !finished {
			s.mu.Lock()
			s.running = false
			s.hasNext = false
			s.mu.Unlock()
		}
	}()

	for {
		if s.active.Load() {
			s.fn(v)
		}

		s.mu.Lock()
		if !s.hasNext {
			s.running = false
			s.mu.Unlock()
			finished = true
			return
		}
		var zero T
		v, s.next, s.hasNext = s.next, zero, false
		s.mu.Unlock()
	}
}

// cell is the storage shared by every stored node: the current value, a commit
// sequence and the ordered subscriber list. Writes commit under the lock and
// deliveries run through the propagation queue without it.
type cell[T any] struct {
	mu    syncutils.Mutex
	value T
	seq   uint64
	subs  []*subscriber[T]
	equal EqualFunc[T]
}

func newCell[T any](initial T, equal EqualFunc[T]) *cell[T] {
	if equal == nil {
		equal = Never[T]
	}
	return &cell[T]{value: initial, equal: equal}
}

func (c *cell[T]) load() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// commit applies next to the stored value. When equality holds nothing is stored
// or queued. Callers must follow a true result with flush.
func (c *cell[T]) commit(next func(T) T) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	current := c.value
	v := next(current)
	if c.equal(current, v) {
		return current, false
	}
	c.value = v
	c.seq++
	seq := c.seq
	propagation.push(func() {
		c.deliver(seq, v)
	})
	return v, true
}

// replace stores v without notifying anyone.
func (c *cell[T]) replace(v T) {
	c.mu.Lock()
	c.value = v
	c.mu.Unlock()
}

func (c *cell[T]) flush() {
	propagation.drain()
}

func (c *cell[T]) write(v T) bool {
	_, changed := c.commit(func(T) T { return v })
	if changed {
		c.flush()
	}
	return changed
}

func (c *cell[T]) deliver(seq uint64, v T) {
	c.mu.Lock()
	subs := slices.Clone(c.subs)
	c.mu.Unlock()
	c.deliverTo(subs, seq, v)
}

func (c *cell[T]) deliverTo(subs []*subscriber[T], seq uint64, v T) {
	next := 0
	defer func() {
		if next < len(subs) {
			// a subscriber panicked, the rest hear about v on the next drain
			rest := subs[next:]
			propagation.push(func() {
				c.deliverTo(rest, seq, v)
			})
		}
	}()

	for next < len(subs) {
		s := subs[next]
		next++
		if s.active.Load() {
			s.offer(seq, v)
		}
	}
}

// subscribe returns the current value and registers fn for every later commit,
// as one step.
func (c *cell[T]) subscribe(fn func(T)) (T, func()) {
	s := &subscriber[T]{fn: fn}
	s.active.Store(true)

	c.mu.Lock()
	s.seen = c.seq
	c.subs = append(c.subs, s)
	current := c.value
	c.mu.Unlock()

	return current, func() {
		if !s.active.CompareAndSwap(true, false) {
			return
		}
		c.mu.Lock()
		defer c.mu.Unlock()
		if i := slices.Index(c.subs, s); i >= 0 {
			c.subs = slices.Delete(c.subs, i, i+1)
		}
	}
}

func (c *cell[T]) subscribers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.subs)
}
