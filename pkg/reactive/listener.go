package reactive

// Listener is anything that can be notified when a dependency changes.
type Listener interface {
	// MarkDirty notifies the listener that one of its dependencies has changed.
	// Effects re-run synchronously.
	MarkDirty()

	// ID returns a unique identifier for this listener.
	ID() uint64
}

// globalIDCounter is the source of unique IDs for all reactive primitives.
var globalIDCounter uint64

// nextID returns the next unique ID for a reactive primitive.
// IDs are monotonically increasing and never reused.
func nextID() uint64 {
	globalIDCounter++
	return globalIDCounter
}
