package reactive

import (
	"context"
	"slices"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/delaneyj/signalflow/internal/syncutils"
)

// Lifetime owns subscriptions and nodes. Closing it detaches everything it owns
// and closes its children first.
type Lifetime struct {
	id       ulid.ULID
	parent   *Lifetime
	owner    *NodeInfo
	defaults options

	mu       syncutils.Mutex
	closed   bool
	cleanups []func()
	nodes    []NodeInfo
	children mapset.Set[*Lifetime]
	ctx      context.Context
	cancel   context.CancelCauseFunc
	done     chan struct{}
}

type lifetimeKey struct{}

func NewLifetime(opts ...Option) *Lifetime {
	defaults := defaultOptions()
	for _, opt := range opts {
		opt(&defaults)
	}
	return newLifetime(nil, defaults)
}

func newLifetime(parent *Lifetime, defaults options) *Lifetime {
	return &Lifetime{
		id:       ulid.Make(),
		parent:   parent,
		defaults: defaults,
		children: mapset.NewSet[*Lifetime](),
		done:     make(chan struct{}),
	}
}

func (l *Lifetime) ID() string {
	return l.id.String()
}

// Owner is the node this lifetime was created for, if any.
func (l *Lifetime) Owner() (NodeInfo, bool) {
	if l.owner == nil {
		return NodeInfo{}, false
	}
	return *l.owner, true
}

func (l *Lifetime) Logger() *zap.Logger {
	return l.defaults.logger
}

// Child creates a lifetime that closes with l. A child of a closed lifetime is
// born closed.
func (l *Lifetime) Child() *Lifetime {
	return l.child(nil)
}

func (l *Lifetime) child(owner *NodeInfo) *Lifetime {
	c := newLifetime(l, l.defaults)
	c.owner = owner

	l.mu.Lock()
	closed := l.closed
	if !closed {
		l.children.Add(c)
	}
	l.mu.Unlock()

	if closed {
		c.Close()
	}
	return c
}

// nodeLifetime creates the child lifetime a node uses for its own subscriptions.
func (l *Lifetime) nodeLifetime(info NodeInfo) *Lifetime {
	l.mu.Lock()
	l.nodes = append(l.nodes, info)
	l.mu.Unlock()
	return l.child(&info)
}

// Defer registers fn to run when the lifetime closes. On a closed lifetime fn
// runs immediately.
func (l *Lifetime) Defer(fn func()) {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		fn()
		return
	}
	l.cleanups = append(l.cleanups, fn)
	l.mu.Unlock()
}

func (l *Lifetime) Closed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.closed
}

func (l *Lifetime) Done() <-chan struct{} {
	return l.done
}

// Context is cancelled with ErrLifetimeClosed when the lifetime closes.
func (l *Lifetime) Context() context.Context {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.ctx == nil {
		l.ctx, l.cancel = context.WithCancelCause(context.WithValue(context.Background(), lifetimeKey{}, l))
		if l.closed {
			l.cancel(ErrLifetimeClosed)
		}
	}
	return l.ctx
}

// FromContext returns the lifetime a context was derived from.
func FromContext(ctx context.Context) (*Lifetime, bool) {
	l, ok := ctx.Value(lifetimeKey{}).(*Lifetime)
	return l, ok
}

// Close detaches everything. Children close first, then deferred cleanups run in
// reverse registration order.
func (l *Lifetime) Close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.closed = true
	children := l.children.ToSlice()
	l.children.Clear()
	cleanups := l.cleanups
	l.cleanups = nil
	cancel := l.cancel
	l.mu.Unlock()

	sortLifetimes(children)
	for i := len(children) - 1; i >= 0; i-- {
		children[i].Close()
	}
	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}
	if cancel != nil {
		cancel(ErrLifetimeClosed)
	}
	close(l.done)

	if l.parent != nil {
		l.parent.mu.Lock()
		l.parent.children.Remove(l)
		if l.owner != nil {
			i := slices.IndexFunc(l.parent.nodes, func(n NodeInfo) bool {
				return n == *l.owner
			})
			if i >= 0 {
				l.parent.nodes = slices.Delete(l.parent.nodes, i, i+1)
			}
		}
		l.parent.mu.Unlock()
	}

	if ce := l.defaults.logger.Check(zap.DebugLevel, "lifetime closed"); ce != nil {
		fields := []zap.Field{zap.String("lifetime", l.ID()), zap.Int("cleanups", len(cleanups))}
		if l.owner != nil {
			fields = append(fields, l.owner.fields()...)
		}
		ce.Write(fields...)
	}
}

// Children returns open child lifetimes in creation order.
func (l *Lifetime) Children() []*Lifetime {
	l.mu.Lock()
	children := l.children.ToSlice()
	l.mu.Unlock()
	sortLifetimes(children)
	return children
}

// Nodes returns the nodes created directly under l.
func (l *Lifetime) Nodes() []NodeInfo {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.nodes)
}

func sortLifetimes(ls []*Lifetime) {
	slices.SortFunc(ls, func(a, b *Lifetime) int {
		return a.id.Compare(b.id)
	})
}
