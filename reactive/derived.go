package reactive

import (
	"go.uber.org/zap"

	"github.com/delaneyj/signalflow/internal/syncutils"
)

// Derived is a read-only value recomputed from the current tuple of its sources.
type Derived[T any] struct {
	info    NodeInfo
	lt      *Lifetime
	cell    *cell[T]
	compute func(values []any) T
	hooks   Hooks
	logger  *zap.Logger

	// serializes recomputation, and holds off source changes until the initial
	// value is stored
	mu syncutils.Mutex
}

// NewDerived computes fn over the sources once, then again for every combined
// source change. Every change is passed on unless WithEquals is given. A panic
// in fn reaches whoever wrote the source.
func NewDerived[T any](lt *Lifetime, sources []AnyReadable, fn func(values []any) T, opts ...Option) *Derived[T] {
	o := buildOptions(lt.defaults, opts)
	d := &Derived[T]{
		info:    newNodeInfo(KindDerived, o.name),
		compute: fn,
		hooks:   o.hooks,
		logger:  o.logger,
	}
	var zero T
	d.cell = newCell(zero, equalFor(&o, Never[T]))
	d.lt = lt.nodeLifetime(d.info)

	d.mu.Lock()
	defer d.mu.Unlock()
	current := Combine(sources...).Subscribe(d.lt, d.recompute)
	d.cell.replace(d.compute(current))
	d.hooks.OnRecompute(d.info)
	return d
}

func (d *Derived[T]) recompute(values []any) {
	changed := func() bool {
		d.mu.Lock()
		defer d.mu.Unlock()
		v := d.compute(values)
		_, changed := d.cell.commit(func(T) T { return v })
		return changed
	}()
	d.hooks.OnRecompute(d.info)
	if ce := d.logger.Check(zap.DebugLevel, "derived recomputed"); ce != nil {
		ce.Write(append(d.info.fields(), zap.Bool("changed", changed))...)
	}
	if changed {
		d.cell.flush()
	}
}

func (d *Derived[T]) Info() NodeInfo {
	return d.info
}

func (d *Derived[T]) Get() T {
	return d.cell.load()
}

func (d *Derived[T]) Subscribe(lt *Lifetime, fn func(T)) T {
	return subscribeCell(d.cell, lt, fn)
}

// Stop detaches d from its sources. Get keeps returning the last value.
func (d *Derived[T]) Stop() {
	d.lt.Close()
}

func (d *Derived[T]) anyValue() any { return d.Get() }

func (d *Derived[T]) observeAny(lt *Lifetime, fn func(any)) any {
	return observeAny[T](d, lt, fn)
}
