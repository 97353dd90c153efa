// Package vdom provides the virtual node model consumed by the vrender runtime.
//
// A VNode describes what should be rendered before it exists on a host
// surface. There are exactly two kinds of node:
//
//   - KindElement: a host element identified by its tag name
//   - KindComponent: a composite node backed by a *Definition
//
// Element children are either a text string or an ordered list of child
// VNodes, never both.
//
// # Element API
//
// Elements are created using variadic factory functions:
//
//	Div(
//	    H1("Title"),
//	    P("Content"),
//	    Comp(Counter),
//	)
//
// # Ownership
//
// The runtime writes the mounted host node (El) and the component instance
// (Component) onto a VNode exactly once. A VNode that has been mounted must
// not be passed as the new side of another mount.
package vdom
