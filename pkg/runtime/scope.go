package runtime

import "github.com/vango-dev/vrender/internal/errors"

// Scoped component contexts. instanceStack is non-empty while Setup runs;
// renderingStack while a render function runs. Nested components push on
// top of their ancestors, so popping always restores the previous occupant.
var (
	instanceStack  []*Instance
	renderingStack []*Instance
)

// CurrentInstance returns the component whose Setup is running, or nil.
func CurrentInstance() *Instance {
	return top(instanceStack)
}

// CurrentRenderingInstance returns the component whose render function is
// running, or nil.
func CurrentRenderingInstance() *Instance {
	return top(renderingStack)
}

func top(stack []*Instance) *Instance {
	if len(stack) == 0 {
		return nil
	}
	return stack[len(stack)-1]
}

func pushInstance(inst *Instance) func() {
	instanceStack = append(instanceStack, inst)
	return func() {
		instanceStack[len(instanceStack)-1] = nil
		instanceStack = instanceStack[:len(instanceStack)-1]
	}
}

func pushRendering(inst *Instance) func() {
	renderingStack = append(renderingStack, inst)
	return func() {
		renderingStack[len(renderingStack)-1] = nil
		renderingStack = renderingStack[:len(renderingStack)-1]
	}
}

// Provide makes value available to descendants of the current component
// under key. It must be called from Setup.
func Provide(key, value any) error {
	inst := CurrentInstance()
	if inst == nil {
		return errors.New("E010").WithDetailf("Provide(%v) called outside of Setup", key)
	}
	// The first Provide forks the chain so siblings do not see each other's values.
	if inst.provides == inst.parentProvides() {
		inst.provides = NewProvides(inst.provides)
	}
	inst.provides.Set(key, value)
	return nil
}

// Inject looks key up among the values provided by ancestors of the current
// component and then by the app. It never sees the component's own values.
func Inject(key any) (any, bool) {
	inst := CurrentInstance()
	if inst == nil {
		inst = CurrentRenderingInstance()
	}
	if inst == nil {
		return nil, false
	}
	return inst.parentProvides().Lookup(key)
}

// InjectOr is Inject with a fallback for missing keys.
func InjectOr(key, fallback any) any {
	if v, ok := Inject(key); ok {
		return v
	}
	return fallback
}
