package reactive

import "go.uber.org/zap"

// Signal is a writable cell. Writes equal to the stored value are dropped;
// others are delivered to subscribers in registration order.
type Signal[T any] struct {
	info   NodeInfo
	cell   *cell[T]
	hooks  Hooks
	logger *zap.Logger
}

func NewSignal[T any](initial T, opts ...Option) *Signal[T] {
	return newSignal(KindSignal, initial, buildOptions(defaultOptions(), opts))
}

func newSignal[T any](kind Kind, initial T, o options) *Signal[T] {
	return &Signal[T]{
		info:   newNodeInfo(kind, o.name),
		cell:   newCell(initial, equalFor(&o, Identical[T])),
		hooks:  o.hooks,
		logger: o.logger,
	}
}

func (s *Signal[T]) Info() NodeInfo {
	return s.info
}

func (s *Signal[T]) Get() T {
	return s.cell.load()
}

// Set stores v and reports whether it was a change. Delivery has finished when
// Set returns, unless Set was called from inside a delivery on the same
// goroutine; then the change is queued behind the delivery in progress. A
// subscriber still busy with an older value on another goroutine gets the
// newest one when it returns.
func (s *Signal[T]) Set(v T) bool {
	return s.Update(func(T) T { return v })
}

// Update stores fn(current). fn runs while the signal is locked, so it must not
// call any method of s, Get included; use the value it is given.
func (s *Signal[T]) Update(fn func(T) T) bool {
	_, changed := s.cell.commit(fn)
	s.hooks.OnWrite(s.info, changed)
	if !changed {
		return false
	}
	if ce := s.logger.Check(zap.DebugLevel, "signal written"); ce != nil {
		ce.Write(s.info.fields()...)
	}
	s.cell.flush()
	return true
}

func (s *Signal[T]) Subscribe(lt *Lifetime, fn func(T)) T {
	return subscribeCell(s.cell, lt, fn)
}

// Subscribers is the number of live subscriptions.
func (s *Signal[T]) Subscribers() int {
	return s.cell.subscribers()
}

func (s *Signal[T]) anyValue() any { return s.Get() }

func (s *Signal[T]) observeAny(lt *Lifetime, fn func(any)) any {
	return observeAny[T](s, lt, fn)
}
