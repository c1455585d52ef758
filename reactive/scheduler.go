package reactive

import (
	"github.com/cockroachdb/errors"
	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/delaneyj/signalflow/internal/syncutils"
)

// Scheduler decides where reaction effects and async computations run.
type Scheduler interface {
	Schedule(fn func())
}

// SchedulerFunc adapts a function into a Scheduler.
type SchedulerFunc func(func())

func (f SchedulerFunc) Schedule(fn func()) {
	if f == nil || fn == nil {
		return
	}
	f(fn)
}

// Direct runs work immediately on the calling goroutine.
var Direct Scheduler = SchedulerFunc(func(fn func()) {
	fn()
})

// Goroutine runs every unit of work on its own goroutine.
var Goroutine Scheduler = SchedulerFunc(func(fn func()) {
	go fn()
})

// Queue holds work until Flush is called.
type Queue struct {
	mu      syncutils.Mutex
	pending []func()
}

func NewQueue() *Queue {
	return &Queue{}
}

func (q *Queue) Schedule(fn func()) {
	if fn == nil {
		return
	}
	q.mu.Lock()
	q.pending = append(q.pending, fn)
	q.mu.Unlock()
}

// Len returns the number of queued units.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Flush runs queued work, including work queued while flushing, and returns
// how many units ran.
func (q *Queue) Flush() int {
	ran := 0
	for {
		q.mu.Lock()
		pending := q.pending
		q.pending = nil
		q.mu.Unlock()
		if len(pending) == 0 {
			return ran
		}
		for _, fn := range pending {
			fn()
		}
		ran += len(pending)
	}
}

// Pool runs work on a bounded ants worker pool.
type Pool struct {
	pool   *ants.Pool
	logger *zap.Logger
}

func NewPool(size int, logger *zap.Logger) (*Pool, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Pool{logger: logger}
	pool, err := ants.NewPool(size,
		ants.WithNonblocking(false),
		ants.WithPanicHandler(func(r interface{}) {
			p.logger.Error("scheduled work panicked", zap.Any("panic", r))
		}),
	)
	if err != nil {
		return nil, errors.Wrapf(err, "creating pool of %d workers", size)
	}
	p.pool = pool
	return p, nil
}

// Schedule submits fn, falling back to a plain goroutine if the pool refuses it.
func (p *Pool) Schedule(fn func()) {
	if err := p.pool.Submit(fn); err != nil {
		p.logger.Warn("pool rejected work, running on a new goroutine", zap.Error(err))
		go fn()
	}
}

func (p *Pool) Running() int {
	return p.pool.Running()
}

func (p *Pool) Release() {
	p.pool.Release()
}
