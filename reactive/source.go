package reactive

import "fmt"

type SourceKind uint8

const (
	SourceStatic SourceKind = iota
	SourceReactive
	SourceNode
)

func (k SourceKind) String() string {
	switch k {
	case SourceStatic:
		return "static"
	case SourceReactive:
		return "reactive"
	case SourceNode:
		return "node"
	default:
		return fmt.Sprintf("source(%d)", uint8(k))
	}
}

// Source is an input a consumer binds to: a fixed value, a Readable, or an
// opaque node owned by the consumer. The kind is fixed when the Source is built,
// so consumers switch on Kind instead of inspecting values.
type Source[T any] struct {
	kind     SourceKind
	static   T
	reactive Readable[T]
	node     any
}

func Static[T any](v T) Source[T] {
	return Source[T]{kind: SourceStatic, static: v}
}

func Reactive[T any](r Readable[T]) Source[T] {
	return Source[T]{kind: SourceReactive, reactive: r}
}

func NodeSource[T any](node any) Source[T] {
	return Source[T]{kind: SourceNode, node: node}
}

func (s Source[T]) Kind() SourceKind {
	return s.kind
}

// Node returns the node payload of a SourceNode.
func (s Source[T]) Node() (any, bool) {
	return s.node, s.kind == SourceNode
}

// Readable returns the value side of the source. Static values become Const;
// node sources have none.
func (s Source[T]) Readable() (Readable[T], bool) {
	switch s.kind {
	case SourceStatic:
		return Const(s.static), true
	case SourceReactive:
		return s.reactive, true
	default:
		return nil, false
	}
}

// Bind calls fn with the current value and then with every change until lt
// closes. It reports false for node sources, which carry no value.
func (s Source[T]) Bind(lt *Lifetime, fn func(T)) bool {
	r, ok := s.Readable()
	if !ok {
		return false
	}
	fn(r.Subscribe(lt, fn))
	return true
}
