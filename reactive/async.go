package reactive

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/delaneyj/signalflow/internal/syncutils"
)

// AsyncFunc computes a value from a source tuple. ctx is cancelled when the run
// is superseded or abandoned, and carries the run's lifetime: anything deferred
// on it is released however the run ends.
type AsyncFunc[A any] func(ctx context.Context, values []any) (A, error)

// Strategy decides what happens to an in-flight run when the sources change again.
type Strategy uint8

const (
	// StrategyAbort cancels the in-flight run and discards whatever it produces.
	StrategyAbort Strategy = iota
)

func (s Strategy) String() string {
	switch s {
	case StrategyAbort:
		return "abort"
	default:
		return fmt.Sprintf("strategy(%d)", uint8(s))
	}
}

// Task is one run of an async derivation.
type Task struct {
	generation uint64
	lt         *Lifetime
	abandon    func(*Task)
}

func (t *Task) Generation() uint64 {
	return t.generation
}

// Cancel abandons the run. If it was the current run, the derivation settles on
// an error wrapping ErrTaskCancelled and keeps its previous value.
func (t *Task) Cancel() {
	t.abandon(t)
}

// Done closes once the run has settled, been superseded or been cancelled.
func (t *Task) Done() <-chan struct{} {
	return t.lt.Done()
}

// Async is a Readable of AsyncState driven by a cancellable computation over its
// sources.
//
//	any state        + sources change -> Loading or Reloading, previous run aborted
//	Loading/Reloading + run succeeds  -> Success
//	Loading/Reloading + run fails     -> Error, previous value kept
type Async[A any] struct {
	info       NodeInfo
	lt         *Lifetime
	cell       *cell[AsyncState[A]]
	fn         AsyncFunc[A]
	strategy   Strategy
	scheduler  Scheduler
	valueEqual EqualFunc[A]
	hooks      Hooks
	logger     *zap.Logger

	mu         syncutils.Mutex
	generation uint64
	current    *Task
	latest     []any
}

// NewAsync starts the first run immediately. Runs are scheduled with the
// configured Scheduler, Goroutine by default. With WithEquals, a result equal to
// the previous value keeps the previous value and clears the loading flag
// without notifying subscribers.
func NewAsync[A any](lt *Lifetime, sources []AnyReadable, fn AsyncFunc[A], opts ...Option) *Async[A] {
	o := buildOptions(lt.defaults, opts)
	a := &Async[A]{
		info:       newNodeInfo(KindAsync, o.name),
		fn:         fn,
		strategy:   o.strategy,
		scheduler:  schedulerFor(&o, Goroutine),
		valueEqual: equalFor[A](&o, nil),
		hooks:      o.hooks,
		logger:     o.logger,
	}
	if a.strategy != StrategyAbort {
		a.logger.Warn("unsupported strategy, using abort",
			append(a.info.fields(), zap.Stringer("strategy", a.strategy))...,
		)
		a.strategy = StrategyAbort
	}
	valueEqual := a.valueEqual
	if valueEqual == nil {
		valueEqual = Identical[A]
	}
	a.cell = newCell(Loading[A](), sameState(valueEqual))
	a.lt = lt.nodeLifetime(a.info)

	a.mu.Lock()
	current := Combine(sources...).Subscribe(a.lt, a.trigger)
	task, aborted := a.startLocked(current)
	a.mu.Unlock()

	a.launch(task, aborted, current)
	return a
}

func (a *Async[A]) trigger(values []any) {
	a.mu.Lock()
	task, aborted := a.startLocked(values)
	a.mu.Unlock()

	a.launch(task, aborted, values)
}

// startLocked moves to Loading or Reloading and creates the next task. It returns
// the task it superseded, which the caller closes outside the lock.
func (a *Async[A]) startLocked(values []any) (task, aborted *Task) {
	if a.lt.Closed() {
		return nil, nil
	}
	a.latest = values

	switch a.strategy {
	case StrategyAbort:
		aborted = a.current
		a.current = nil
	}

	a.generation++
	task = &Task{
		generation: a.generation,
		lt:         a.lt.Child(),
		abandon:    a.abandon,
	}
	a.current = task
	a.cell.commit(func(s AsyncState[A]) AsyncState[A] {
		return s.reload()
	})
	return task, aborted
}

func (a *Async[A]) launch(task, aborted *Task, values []any) {
	if aborted != nil {
		aborted.lt.Close()
		a.hooks.OnAsync(a.info, AsyncCancelled)
		if ce := a.logger.Check(zap.DebugLevel, "async run aborted"); ce != nil {
			ce.Write(append(a.info.fields(), zap.Uint64("generation", aborted.generation))...)
		}
	}
	a.cell.flush()
	if task == nil {
		return
	}

	a.hooks.OnAsync(a.info, AsyncStarted)
	a.scheduler.Schedule(func() {
		if task.lt.Closed() {
			// superseded before it got to run
			a.hooks.OnAsync(a.info, AsyncDiscarded)
			return
		}
		v, err := a.call(task.lt.Context(), values)
		a.settle(task, v, err)
	})
}

func (a *Async[A]) call(ctx context.Context, values []any) (v A, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Wrapf(ErrComputationPanicked, "%v", r)
		}
	}()
	return a.fn(ctx, values)
}

func (a *Async[A]) settle(task *Task, v A, err error) {
	a.mu.Lock()
	if a.current != task || task.lt.Closed() {
		a.mu.Unlock()
		task.lt.Close()
		a.hooks.OnAsync(a.info, AsyncDiscarded)
		if ce := a.logger.Check(zap.DebugLevel, "stale async result discarded"); ce != nil {
			ce.Write(append(a.info.fields(), zap.Uint64("generation", task.generation))...)
		}
		return
	}
	a.current = nil
	event := AsyncSucceeded
	switch prev := a.cell.load(); {
	case err != nil:
		event = AsyncFailed
		a.cell.commit(func(s AsyncState[A]) AsyncState[A] {
			return s.fail(err)
		})
	case a.valueEqual != nil && prev.hasValue && a.valueEqual(prev.value, v):
		// same value: loading ends without a notification
		a.cell.replace(Success(prev.value))
	default:
		a.cell.commit(func(AsyncState[A]) AsyncState[A] {
			return Success(v)
		})
	}
	a.mu.Unlock()

	task.lt.Close()
	a.hooks.OnAsync(a.info, event)
	if ce := a.logger.Check(zap.DebugLevel, "async run settled"); ce != nil {
		ce.Write(append(a.info.fields(), zap.Uint64("generation", task.generation), zap.Error(err))...)
	}
	a.cell.flush()
}

func (a *Async[A]) abandon(task *Task) {
	a.mu.Lock()
	current := a.current == task
	if current {
		a.current = nil
		a.cell.commit(func(s AsyncState[A]) AsyncState[A] {
			return s.fail(errors.Wrapf(ErrTaskCancelled, "generation %d", task.generation))
		})
	}
	a.mu.Unlock()

	task.lt.Close()
	if current {
		a.hooks.OnAsync(a.info, AsyncCancelled)
		a.cell.flush()
	}
}

func (a *Async[A]) Info() NodeInfo {
	return a.info
}

func (a *Async[A]) Get() AsyncState[A] {
	return a.cell.load()
}

func (a *Async[A]) Subscribe(lt *Lifetime, fn func(AsyncState[A])) AsyncState[A] {
	return subscribeCell(a.cell, lt, fn)
}

// Current is the in-flight run, or nil when settled.
func (a *Async[A]) Current() *Task {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.current
}

// Restart reruns the computation over the last source tuple.
func (a *Async[A]) Restart() {
	a.mu.Lock()
	values := a.latest
	a.mu.Unlock()
	a.trigger(values)
}

// Stop detaches a from its sources and cancels the in-flight run. The state is
// left as it was.
func (a *Async[A]) Stop() {
	a.mu.Lock()
	a.current = nil
	a.mu.Unlock()
	a.lt.Close()
}

func (a *Async[A]) anyValue() any { return a.Get() }

func (a *Async[A]) observeAny(lt *Lifetime, fn func(any)) any {
	return observeAny[AsyncState[A]](a, lt, fn)
}
