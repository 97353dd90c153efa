package reactive

import (
	"fmt"
	"reflect"
)

// signalBase provides type-erased subscriber management.
type signalBase struct {
	id uint64

	// subs are the listeners subscribed to this signal.
	subs []Listener
}

// subscribe adds a listener to this signal's subscribers.
// Deduplicates by listener ID to prevent double-subscription.
func (s *signalBase) subscribe(l Listener) {
	if l == nil {
		return
	}
	lid := l.ID()
	for _, existing := range s.subs {
		if existing.ID() == lid {
			return
		}
	}
	s.subs = append(s.subs, l)
}

// unsubscribe removes a listener from this signal's subscribers.
func (s *signalBase) unsubscribe(l Listener) {
	if l == nil {
		return
	}
	lid := l.ID()
	for i, existing := range s.subs {
		if existing.ID() == lid {
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			return
		}
	}
}

// notifySubscribers notifies all subscribers in subscription order.
// The slice is copied first because effects resubscribe while they run.
func (s *signalBase) notifySubscribers() {
	subs := make([]Listener, len(s.subs))
	copy(subs, s.subs)
	for _, sub := range subs {
		sub.MarkDirty()
	}
}

// track subscribes the current listener, if any.
func (s *signalBase) track() {
	l := currentListener()
	if l == nil {
		return
	}
	s.subscribe(l)
	if e, ok := l.(*Effect); ok {
		e.addSource(s)
	}
}

// Signal is a reactive value container.
// Reading a Signal's value inside a running Effect subscribes the effect.
type Signal[T any] struct {
	base signalBase

	// value is the current signal value.
	value T

	// equal decides whether a Set changes the value.
	// If nil, uses default equality checking.
	equal func(T, T) bool
}

// NewSignal creates a new signal with the given initial value.
func NewSignal[T any](initial T) *Signal[T] {
	return &Signal[T]{
		base:  signalBase{id: nextID()},
		value: initial,
	}
}

// Get returns the current value and subscribes the current listener.
func (s *Signal[T]) Get() T {
	s.base.track()
	return s.value
}

// Peek returns the current value without subscribing.
func (s *Signal[T]) Peek() T {
	return s.value
}

// Set updates the value and synchronously notifies subscribers if it changed.
func (s *Signal[T]) Set(value T) {
	if s.equals(s.value, value) {
		return
	}
	s.value = value
	s.base.notifySubscribers()
}

// Update reads and updates the signal's value in one step.
func (s *Signal[T]) Update(fn func(T) T) {
	s.Set(fn(s.value))
}

// WithEquals returns the signal configured with a custom equality function.
func (s *Signal[T]) WithEquals(fn func(T, T) bool) *Signal[T] {
	s.equal = fn
	return s
}

// ID returns the unique identifier for this signal.
func (s *Signal[T]) ID() uint64 {
	return s.base.id
}

// Subscribers returns the number of listeners currently subscribed.
func (s *Signal[T]) Subscribers() int {
	return len(s.base.subs)
}

// AnyValue implements Ref. It is a tracked read.
func (s *Signal[T]) AnyValue() any {
	return s.Get()
}

// SetAny implements WritableRef.
func (s *Signal[T]) SetAny(v any) error {
	if v == nil {
		var zero T
		s.Set(zero)
		return nil
	}
	typed, ok := v.(T)
	if !ok {
		return fmt.Errorf("reactive: cannot assign %T to signal of %s", v, reflect.TypeFor[T]())
	}
	s.Set(typed)
	return nil
}

// String formats the current value. Like Get, it subscribes the current
// listener, so a signal passed straight to an element builder is tracked.
func (s *Signal[T]) String() string {
	return fmt.Sprint(s.Get())
}

// equals checks if two values are equal using the configured equality function.
func (s *Signal[T]) equals(a, b T) bool {
	if s.equal != nil {
		return s.equal(a, b)
	}
	return defaultEquals(a, b)
}

// defaultEquals uses == for common comparable values and reflect.DeepEqual
// for everything else.
func defaultEquals[T any](a, b T) bool {
	switch av := any(a).(type) {
	case int:
		bv, ok := any(b).(int)
		return ok && av == bv
	case int64:
		bv, ok := any(b).(int64)
		return ok && av == bv
	case float64:
		bv, ok := any(b).(float64)
		return ok && av == bv
	case string:
		bv, ok := any(b).(string)
		return ok && av == bv
	case bool:
		bv, ok := any(b).(bool)
		return ok && av == bv
	default:
		return reflect.DeepEqual(a, b)
	}
}
