package reactive

// Effect is a re-runnable unit of work that re-executes whenever a signal it
// read during its previous run is written.
//
// Effects run immediately when created. A write to one of the effect's own
// dependencies while it is running does not re-enter it.
type Effect struct {
	id uint64

	// fn is the effect function to run.
	fn func()

	// sources are the signals this effect depends on.
	sources []*signalBase

	running bool
	stopped bool
	runs    int
}

// NewEffect creates an effect and runs it once, synchronously.
func NewEffect(fn func()) *Effect {
	e := &Effect{
		id: nextID(),
		fn: fn,
	}
	e.run()
	return e
}

// MarkDirty re-runs the effect. Implements the Listener interface.
func (e *Effect) MarkDirty() {
	if e.stopped || e.running {
		return
	}
	e.run()
}

// ID returns the unique identifier for this effect.
// Implements the Listener interface.
func (e *Effect) ID() uint64 {
	return e.id
}

// Run forces a re-run regardless of whether any dependency changed.
func (e *Effect) Run() {
	if e.stopped || e.running {
		return
	}
	e.run()
}

// Stop unsubscribes the effect from all of its sources. A stopped effect
// never runs again.
func (e *Effect) Stop() {
	if e.stopped {
		return
	}
	e.stopped = true
	e.clearSources()
}

// Stopped reports whether Stop has been called.
func (e *Effect) Stopped() bool {
	return e.stopped
}

// Runs returns how many times the effect function has executed.
func (e *Effect) Runs() int {
	return e.runs
}

// Dependencies returns the number of signals read during the last run.
func (e *Effect) Dependencies() int {
	return len(e.sources)
}

// run executes the effect function with fresh dependency tracking.
func (e *Effect) run() {
	e.clearSources()

	e.running = true
	pushListener(e)
	defer func() {
		popListener()
		e.running = false
	}()

	e.runs++
	e.fn()
}

// addSource adds a source dependency.
// Called by signals when they are read during effect execution.
func (e *Effect) addSource(source *signalBase) {
	for _, s := range e.sources {
		if s == source {
			return
		}
	}
	e.sources = append(e.sources, source)
}

func (e *Effect) clearSources() {
	for _, source := range e.sources {
		source.unsubscribe(e)
	}
	e.sources = e.sources[:0]
}
