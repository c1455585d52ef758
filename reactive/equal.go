package reactive

import "reflect"

// EqualFunc reports whether two values are the same for change suppression.
type EqualFunc[T any] func(a, b T) bool

// Identical is the default equality. Scalars, strings and comparable structs
// compare by value; slices, maps, pointers, channels and funcs compare by
// reference. Anything else is never considered equal, so writes of it always notify.
func Identical[T any](a, b T) bool {
	return identical(reflect.ValueOf(&a).Elem(), reflect.ValueOf(&b).Elem())
}

func identical(a, b reflect.Value) bool {
	switch a.Kind() {
	case reflect.Slice:
		return a.UnsafePointer() == b.UnsafePointer() && a.Len() == b.Len() && a.Cap() == b.Cap()
	case reflect.Map, reflect.Pointer, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return a.Pointer() == b.Pointer()
	case reflect.Interface:
		if a.IsNil() || b.IsNil() {
			return a.IsNil() && b.IsNil()
		}
		ae, be := a.Elem(), b.Elem()
		if ae.Type() != be.Type() {
			return false
		}
		return identical(ae, be)
	}
	if !a.Comparable() {
		return false
	}
	return a.Equal(b)
}

// Comparable compares with ==.
func Comparable[T comparable](a, b T) bool {
	return a == b
}

// DeepEqual compares structurally.
func DeepEqual[T any](a, b T) bool {
	return reflect.DeepEqual(a, b)
}

// Never treats every write as a change.
func Never[T any](a, b T) bool {
	return false
}
