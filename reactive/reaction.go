package reactive

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/delaneyj/signalflow/internal/syncutils"
)

// Effect is the side effect of a Reaction.
type Effect func(ctx context.Context, values []any) error

// Reaction runs an effect with the initial source tuple and again after every
// combined source change. Runs never overlap; changes that arrive during a run
// collapse into one follow-up run with the latest tuple.
type Reaction struct {
	info      NodeInfo
	lt        *Lifetime
	effect    Effect
	scheduler Scheduler
	hooks     Hooks
	logger    *zap.Logger
	onError   func(NodeInfo, error)

	mu      syncutils.Mutex
	latest  []any
	running bool
	pending bool
	runs    uint64
}

// NewReaction schedules the first run at once. With the default Direct scheduler
// it has completed by the time NewReaction returns, and later runs happen on
// the delivering goroutine, so effects that block for long should use another
// scheduler. Errors returned by the
// effect go to WithErrorHandler, or are logged; panics reach whoever runs the
// scheduled work.
func NewReaction(lt *Lifetime, sources []AnyReadable, effect Effect, opts ...Option) *Reaction {
	o := buildOptions(lt.defaults, opts)
	r := &Reaction{
		info:      newNodeInfo(KindReaction, o.name),
		effect:    effect,
		scheduler: schedulerFor(&o, Direct),
		hooks:     o.hooks,
		logger:    o.logger,
		onError:   o.onError,
	}
	r.lt = lt.nodeLifetime(r.info)

	r.mu.Lock()
	r.running = true
	r.latest = Combine(sources...).Subscribe(r.lt, r.trigger)
	r.mu.Unlock()

	r.scheduler.Schedule(r.loop)
	return r
}

func (r *Reaction) trigger(values []any) {
	r.mu.Lock()
	r.latest = values
	if r.running {
		r.pending = true
		r.mu.Unlock()
		return
	}
	r.running = true
	r.mu.Unlock()

	r.scheduler.Schedule(r.loop)
}

func (r *Reaction) loop() {
	finished := false
	defer func() {
		if !finished {
			// the effect panicked, let the next change start a fresh loop
			r.mu.Lock()
			r.running = false
			r.pending = false
			r.mu.Unlock()
		}
	}()

	for {
		if r.lt.Closed() {
			r.mu.Lock()
			r.running = false
			r.mu.Unlock()
			finished = true
			return
		}

		r.mu.Lock()
		values := r.latest
		r.pending = false
		r.runs++
		r.mu.Unlock()

		r.run(values)

		r.mu.Lock()
		if !r.pending {
			r.running = false
			r.mu.Unlock()
			finished = true
			return
		}
		r.mu.Unlock()
	}
}

func (r *Reaction) run(values []any) {
	start := time.Now()
	err := r.effect(r.lt.Context(), values)
	elapsed := time.Since(start)
	r.hooks.OnReaction(r.info, elapsed, err)

	if err == nil {
		if ce := r.logger.Check(zap.DebugLevel, "reaction ran"); ce != nil {
			ce.Write(append(r.info.fields(), zap.Duration("elapsed", elapsed))...)
		}
		return
	}
	if r.onError != nil {
		r.onError(r.info, err)
		return
	}
	r.logger.Error("reaction effect failed", append(r.info.fields(), zap.Error(err))...)
}

func (r *Reaction) Info() NodeInfo {
	return r.info
}

// Runs counts started effect executions.
func (r *Reaction) Runs() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.runs
}

// Stop detaches the reaction and cancels the context of a running effect.
func (r *Reaction) Stop() {
	r.lt.Close()
}
