package runtime

// Phase identifies the lifecycle step being observed.
type Phase string

const (
	PhaseSetup  Phase = "setup"
	PhaseMount  Phase = "mount"
	PhaseUpdate Phase = "update"
)

// Observer is notified around component setup and render passes.
// BeginRender returns a function called with the outcome of the step.
type Observer interface {
	BeginRender(inst *Instance, phase Phase) func(err error)
}

// ObserverFunc adapts a function to an Observer.
type ObserverFunc func(inst *Instance, phase Phase) func(err error)

// BeginRender implements Observer.
func (f ObserverFunc) BeginRender(inst *Instance, phase Phase) func(err error) {
	return f(inst, phase)
}

func noopEnd(error) {}

func (r *Renderer) observe(inst *Instance, phase Phase) func(error) {
	if r.observer == nil {
		return noopEnd
	}
	if end := r.observer.BeginRender(inst, phase); end != nil {
		return end
	}
	return noopEnd
}
