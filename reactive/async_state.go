package reactive

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
)

type AsyncKind uint8

const (
	// StateLoading has no result yet.
	StateLoading AsyncKind = iota
	// StateReloading is refreshing a previous success.
	StateReloading
	StateSuccess
	// StateError holds the failure and, if there was one, the last success.
	StateError
)

func (k AsyncKind) String() string {
	switch k {
	case StateLoading:
		return "loading"
	case StateReloading:
		return "reloading"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	default:
		return fmt.Sprintf("state(%d)", uint8(k))
	}
}

// AsyncState is the result of an async derivation. Only the four shapes built
// by Loading, Reloading, Success and Failure exist: an error never coexists with
// isLoading, and a failure keeps the last successful value.
type AsyncState[A any] struct {
	loading  bool
	value    A
	hasValue bool
	err      error
}

func Loading[A any]() AsyncState[A] {
	return AsyncState[A]{loading: true}
}

func Reloading[A any](prev A) AsyncState[A] {
	return AsyncState[A]{loading: true, value: prev, hasValue: true}
}

func Success[A any](v A) AsyncState[A] {
	return AsyncState[A]{value: v, hasValue: true}
}

func Failure[A any](prev A, hasPrev bool, err error) AsyncState[A] {
	s := AsyncState[A]{hasValue: hasPrev, err: err}
	if hasPrev {
		s.value = prev
	}
	return s
}

func (s AsyncState[A]) IsLoading() bool {
	return s.loading
}

func (s AsyncState[A]) Value() (A, bool) {
	return s.value, s.hasValue
}

func (s AsyncState[A]) Err() error {
	return s.err
}

func (s AsyncState[A]) Kind() AsyncKind {
	switch {
	case s.loading && s.hasValue:
		return StateReloading
	case s.loading:
		return StateLoading
	case s.err != nil:
		return StateError
	default:
		return StateSuccess
	}
}

// Resolve is a one-shot read: the value if there is one, otherwise the error,
// otherwise ErrNoValue.
func (s AsyncState[A]) Resolve() (A, error) {
	switch {
	case s.hasValue:
		return s.value, nil
	case s.err != nil:
		return s.value, s.err
	default:
		return s.value, ErrNoValue
	}
}

func (s AsyncState[A]) String() string {
	switch s.Kind() {
	case StateReloading:
		return fmt.Sprintf("reloading(%v)", s.value)
	case StateSuccess:
		return fmt.Sprintf("success(%v)", s.value)
	case StateError:
		if s.hasValue {
			return fmt.Sprintf("error(%v, %v)", s.value, s.err)
		}
		return fmt.Sprintf("error(%v)", s.err)
	default:
		return "loading"
	}
}

// reload is the state entered when the sources change.
func (s AsyncState[A]) reload() AsyncState[A] {
	if s.hasValue {
		return Reloading(s.value)
	}
	return Loading[A]()
}

func (s AsyncState[A]) fail(err error) AsyncState[A] {
	return Failure(s.value, s.hasValue, err)
}

func sameState[A any](valueEqual EqualFunc[A]) EqualFunc[AsyncState[A]] {
	return func(a, b AsyncState[A]) bool {
		if a.loading != b.loading || a.hasValue != b.hasValue || !Identical(a.err, b.err) {
			return false
		}
		return !a.hasValue || valueEqual(a.value, b.value)
	}
}

// Resolve reads the current state of r once.
func Resolve[A any](r Readable[AsyncState[A]]) (A, error) {
	return r.Get().Resolve()
}

// Settle waits until r is not loading, then resolves it.
func Settle[A any](ctx context.Context, r Readable[AsyncState[A]]) (A, error) {
	lt := NewLifetime()
	defer lt.Close()

	var zero A
	states := Values(lt, r)
	for {
		select {
		case state, ok := <-states:
			if !ok {
				return zero, ErrLifetimeClosed
			}
			if !state.IsLoading() {
				return state.Resolve()
			}
		case <-ctx.Done():
			return zero, errors.Wrap(context.Cause(ctx), "waiting for async state")
		}
	}
}
