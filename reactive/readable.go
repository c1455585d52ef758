package reactive

// AnyReadable is the type-erased side of Readable, used to combine sources of
// different types into one tuple.
type AnyReadable interface {
	anyValue() any
	observeAny(lt *Lifetime, fn func(any)) any
}

// Readable is implemented by every reactive value.
type Readable[T any] interface {
	AnyReadable
	// Get returns the current value. It never blocks on delivery and is safe to
	// call from inside a subscriber.
	Get() T
	// Subscribe returns the current value and registers fn for every value
	// committed afterwards, until lt closes.
	Subscribe(lt *Lifetime, fn func(T)) (current T)
}

func subscribeCell[T any](c *cell[T], lt *Lifetime, fn func(T)) T {
	current, cancel := c.subscribe(fn)
	lt.Defer(cancel)
	return current
}

func observeAny[T any](r Readable[T], lt *Lifetime, fn func(any)) any {
	return r.Subscribe(lt, func(v T) {
		fn(v)
	})
}

type mapped[T, U any] struct {
	source Readable[T]
	fn     func(T) U
}

// Map returns a view applying fn to every read of source. It stores nothing;
// fn runs on each Get and for each delivered value.
func Map[T, U any](source Readable[T], fn func(T) U) Readable[U] {
	return &mapped[T, U]{source: source, fn: fn}
}

func (m *mapped[T, U]) Get() U {
	return m.fn(m.source.Get())
}

func (m *mapped[T, U]) Subscribe(lt *Lifetime, fn func(U)) U {
	current := m.source.Subscribe(lt, func(v T) {
		fn(m.fn(v))
	})
	return m.fn(current)
}

func (m *mapped[T, U]) anyValue() any { return m.Get() }

func (m *mapped[T, U]) observeAny(lt *Lifetime, fn func(any)) any {
	return observeAny[U](m, lt, fn)
}

type constant[T any] struct {
	value T
}

// Const is a Readable that never changes.
func Const[T any](v T) Readable[T] {
	return constant[T]{value: v}
}

func (c constant[T]) Get() T { return c.value }

func (c constant[T]) Subscribe(*Lifetime, func(T)) T { return c.value }

func (c constant[T]) anyValue() any { return c.value }

func (c constant[T]) observeAny(*Lifetime, func(any)) any { return c.value }

// Changes streams every value r commits after the call. Each call gets a private
// unbounded buffer so slow readers never hold up writers. The channel closes
// when lt closes.
func Changes[T any](lt *Lifetime, r Readable[T]) <-chan T {
	mb := newMailbox[T](lt)
	r.Subscribe(lt, mb.put)
	return mb.out
}

// Values is Changes preceded by the current value.
func Values[T any](lt *Lifetime, r Readable[T]) <-chan T {
	mb := newMailbox[T](lt)
	mb.hold()
	current := r.Subscribe(lt, mb.put)
	mb.release(current)
	return mb.out
}
