// Package runtime mounts vdom trees onto a host surface and keeps mounted
// components in sync with their reactive state.
//
// # Renderer
//
// CreateRenderer binds the core to a HostAdapter, the three primitive
// operations a target surface must provide:
//
//	r := runtime.CreateRenderer(htmlhost.New())
//	app := r.CreateApp(Root)
//	inst, err := app.Mount(container)
//
// Patch dispatches on the node kind. Elements are created, filled (text or
// children) and only then inserted into their parent. Components run Setup
// once, get a stable Proxy over their state, and render inside a
// reactive.Effect: the first run mounts the subtree, later runs (triggered
// by writes to signals read during render) re-render and patch in place.
//
// # Updates
//
// Host adapters cannot remove nodes, so in-place patching is limited to
// text changes and child lists of identical length and shape. Anything else
// fails with ErrUnsupportedUpdate.
//
// # Scopes
//
// CurrentInstance is set while Setup runs and CurrentRenderingInstance while
// a render function runs. Both are stacks with strict push/pop discipline,
// restored on every exit path including panics. Provide and Inject use the
// current instance.
//
// # Goroutines
//
// A renderer, its apps and their reactive state must be used from a single
// goroutine.
package runtime
