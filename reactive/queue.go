package reactive

import (
	"github.com/petermattis/goid"

	"github.com/delaneyj/signalflow/internal/syncutils"
)

// propagation carries deliveries. Each goroutine that writes gets its own
// serial queue for the length of that write: deliveries run breadth first in
// commit order, so a node hears about a change only after every direct
// subscriber of the changed cell has, and a combined tuple never pairs a fresh
// downstream value with a stale upstream one. Writes on other goroutines
// propagate independently, so a subscriber that blocks only holds up the write
// it is part of.
var propagation = &propagator{queues: map[int64]*serialQueue{}}

type propagator struct {
	mu     syncutils.Mutex
	queues map[int64]*serialQueue
}

// serialQueue runs pushed work one unit at a time, in push order. Whoever calls
// drain first becomes the runner; nested drains on the same goroutine return at
// once and their work is picked up by the active runner. Callbacks that write
// back into the graph therefore never re-enter a delivery loop.
type serialQueue struct {
	pending []func()
	running bool
}

func (p *propagator) push(fn func()) {
	id := goid.Get()
	p.mu.Lock()
	q := p.queues[id]
	if q == nil {
		q = &serialQueue{}
		p.queues[id] = q
	}
	q.pending = append(q.pending, fn)
	p.mu.Unlock()
}

func (p *propagator) drain() {
	id := goid.Get()
	p.mu.Lock()
	q := p.queues[id]
	if q == nil || q.running {
		p.mu.Unlock()
		return
	}
	q.running = true

	settled := false
	defer func() {
		if !settled {
			// a unit panicked, whatever is left runs on this goroutine's next write
			p.mu.Lock()
			q.running = false
			p.mu.Unlock()
		}
	}()

	for {
		if len(q.pending) == 0 {
			delete(p.queues, id)
			settled = true
			p.mu.Unlock()
			return
		}
		fn := q.pending[0]
		q.pending[0] = nil
		q.pending = q.pending[1:]
		p.mu.Unlock()

		fn()

		p.mu.Lock()
	}
}

