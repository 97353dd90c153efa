package vdom

// Proxy is the read view a component's render function receives.
// Missing keys are not an error: Get returns nil and Lookup returns false.
type Proxy interface {
	Get(key string) any
	Lookup(key string) (any, bool)
}

// RenderFunc produces a component's VNode tree from its proxy.
type RenderFunc func(p Proxy) *VNode

// Definition describes a component.
//
// Setup runs once per instance before the first render. It may return a
// state record (map[string]any), a RenderFunc that replaces Render, or nil.
type Definition struct {
	// Name is used in logs, metrics and error messages.
	Name string

	// Setup returns the component state.
	Setup func() any

	// Render builds the component tree.
	Render RenderFunc
}

// DisplayName returns Name or "Anonymous".
func (d *Definition) DisplayName() string {
	if d == nil || d.Name == "" {
		return "Anonymous"
	}
	return d.Name
}

// Define is a shorthand for building a Definition.
func Define(name string, setup func() any, render RenderFunc) *Definition {
	return &Definition{Name: name, Setup: setup, Render: render}
}
