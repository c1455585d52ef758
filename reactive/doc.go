// Package reactive is an in-memory dataflow engine: writable Signals, synchronous and
// asynchronous Derived values, side-effecting Reactions and Arrays, all sharing the
// Readable read/subscribe contract.
//
// Every subscription is owned by an explicit *Lifetime. Closing a lifetime detaches
// everything registered on it and on its children.
//
//	lt := reactive.NewLifetime()
//	defer lt.Close()
//
//	count := reactive.NewSignal(1)
//	double := reactive.Derived1(lt, count, func(c int) int { return c * 2 })
//	reactive.React1(lt, double, func(ctx context.Context, d int) error {
//		log.Printf("double is %d", d)
//		return nil
//	})
//	count.Set(2)
package reactive
