package reactive

import (
	"fmt"

	"go.uber.org/zap"
)

// Option configures a node. Options passed to NewLifetime become the defaults of
// every node created under that lifetime and its children.
type Option func(*options)

type options struct {
	name      string
	equal     any
	scheduler Scheduler
	strategy  Strategy
	logger    *zap.Logger
	hooks     Hooks
	onError   func(NodeInfo, error)
}

func defaultOptions() options {
	return options{
		strategy: StrategyAbort,
		logger:   zap.NewNop(),
		hooks:    NopHooks{},
	}
}

func buildOptions(base options, opts []Option) options {
	o := base
	// names and equality never inherit
	o.name = ""
	o.equal = nil
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	if o.hooks == nil {
		o.hooks = NopHooks{}
	}
	return o
}

func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithEquals sets the equality used to suppress writes. T must match the node's
// value type, otherwise the option is ignored with a warning.
func WithEquals[T any](fn func(a, b T) bool) Option {
	return func(o *options) {
		if fn == nil {
			o.equal = nil
			return
		}
		o.equal = EqualFunc[T](fn)
	}
}

// WithScheduler sets where reaction effects and async computations run.
func WithScheduler(s Scheduler) Option {
	return func(o *options) {
		o.scheduler = s
	}
}

func WithStrategy(s Strategy) Option {
	return func(o *options) {
		o.strategy = s
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func WithHooks(h Hooks) Option {
	return func(o *options) {
		o.hooks = h
	}
}

// WithDefaultsOf applies the defaults lt was created with. Signals and Arrays
// have no owning lifetime, so this is how they share its hooks and logger.
// Options after it still override.
func WithDefaultsOf(lt *Lifetime) Option {
	return func(o *options) {
		name, equal := o.name, o.equal
		*o = lt.defaults
		o.name, o.equal = name, equal
	}
}

// WithErrorHandler receives errors returned by reaction effects.
func WithErrorHandler(fn func(node NodeInfo, err error)) Option {
	return func(o *options) {
		o.onError = fn
	}
}

func equalFor[T any](o *options, fallback EqualFunc[T]) EqualFunc[T] {
	switch eq := o.equal.(type) {
	case nil:
		return fallback
	case EqualFunc[T]:
		return eq
	default:
		o.logger.Warn("ignoring equality of mismatched type",
			zap.String("name", o.name),
			zap.String("type", fmt.Sprintf("%T", eq)),
		)
		return fallback
	}
}

func schedulerFor(o *options, fallback Scheduler) Scheduler {
	if o.scheduler == nil {
		return fallback
	}
	return o.scheduler
}
