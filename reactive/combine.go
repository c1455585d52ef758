package reactive

import (
	"slices"

	"github.com/delaneyj/signalflow/internal/syncutils"
)

type combination struct {
	sources []AnyReadable
}

// Combine joins sources into one tuple-valued Readable. A subscriber gets a new
// tuple each time any single source changes, with the other positions holding
// their last delivered values, so no tuple ever mixes a value with one that was
// never committed alongside it. With no sources the tuple is empty and never
// changes.
func Combine(sources ...AnyReadable) Readable[[]any] {
	return &combination{sources: slices.Clone(sources)}
}

func (c *combination) Get() []any {
	values := make([]any, len(c.sources))
	for i, src := range c.sources {
		values[i] = src.anyValue()
	}
	return values
}

type combineState struct {
	mu      syncutils.Mutex
	tuple   []any
	running bool
	dirty   bool
}

func (c *combination) Subscribe(lt *Lifetime, fn func([]any)) []any {
	st := &combineState{tuple: make([]any, len(c.sources))}

	// changes racing the registration wait here until every slot is filled
	st.mu.Lock()
	defer st.mu.Unlock()
	for i, src := range c.sources {
		i := i
		st.tuple[i] = src.observeAny(lt, func(v any) {
			st.set(i, v, fn)
		})
	}
	return slices.Clone(st.tuple)
}

// set stores v in slot i and calls fn with the tuple. Calls never overlap; slots
// changed on other goroutines while fn runs are folded into one more call with
// the latest tuple.
func (st *combineState) set(i int, v any, fn func([]any)) {
	st.mu.Lock()
	st.tuple[i] = v
	if st.running {
		st.dirty = true
		st.mu.Unlock()
		return
	}
	st.running = true

	finished := false
	defer func() {
		if !finished {
			st.mu.Lock()
			st.running = false
			st.dirty = false
			st.mu.Unlock()
		}
	}()

	for {
		snapshot := slices.Clone(st.tuple)
		st.dirty = false
		st.mu.Unlock()

		fn(snapshot)

		st.mu.Lock()
		if !st.dirty {
			st.running = false
			st.mu.Unlock()
			finished = true
			return
		}
	}
}

func (c *combination) anyValue() any { return c.Get() }

func (c *combination) observeAny(lt *Lifetime, fn func(any)) any {
	return observeAny[[]any](c, lt, fn)
}
