package reactive

//go:generate go run ../cmd/codegen --count 4 --out arity_gen.go

// as reads a tuple slot, mapping a nil slot to the zero value.
func as[T any](v any) T {
	t, _ := v.(T)
	return t
}
