package reactive

// listenerStack holds the listeners currently tracking reads. The top entry
// receives subscriptions; a nil entry disables tracking (Untrack).
var listenerStack []Listener

// currentListener returns the listener being tracked, or nil.
func currentListener() Listener {
	if len(listenerStack) == 0 {
		return nil
	}
	return listenerStack[len(listenerStack)-1]
}

// pushListener makes l the current listener.
func pushListener(l Listener) {
	listenerStack = append(listenerStack, l)
}

// popListener restores the previous listener.
func popListener() {
	listenerStack[len(listenerStack)-1] = nil
	listenerStack = listenerStack[:len(listenerStack)-1]
}

// WithListener runs fn with l as the current listener.
func WithListener(l Listener, fn func()) {
	pushListener(l)
	defer popListener()
	fn()
}

// Untrack runs fn without recording any dependencies.
func Untrack(fn func()) {
	WithListener(nil, fn)
}

// IsTracking reports whether reads are currently being recorded.
func IsTracking() bool {
	return currentListener() != nil
}
