// Package reactive provides the dependency-tracking primitives the vrender
// runtime uses to re-render components.
//
// Reading a Signal inside a running Effect subscribes that effect to the
// signal. Writing the signal later re-runs every subscribed effect
// synchronously, before Set returns:
//
//	count := reactive.NewSignal(0)
//	reactive.NewEffect(func() {
//	    fmt.Println("count is", count.Get())
//	}) // prints "count is 0"
//	count.Set(1) // prints "count is 1"
//
// There is no batching and no deferred scheduling: one write may run any
// number of nested effects before it returns.
//
// # Records
//
// Unwrap turns a plain state map into a Record whose Get dereferences any
// value that implements Ref, so component render code reads signals without
// calling Get on them explicitly.
//
// # Goroutines
//
// The tracking stack is process-wide and unsynchronized. All signals and
// effects of one tree must be used from a single goroutine; servers confine
// them to an event loop.
package reactive
