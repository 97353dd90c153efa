// Package errors provides structured, coded errors for vrender.
//
// Every failure the renderer can report has a registered code (e.g. "E001")
// that maps to a category, a short message and a longer explanation. Errors
// carry an optional component name and wrapped cause so that a single value
// can be logged with slog, matched with errors.Is, or printed to a terminal:
//
//	err := errors.New("E001").
//	    WithComponent("Counter").
//	    WithSuggestion("Render the same tag on every pass")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR E001: Unsupported update
//	//
//	//   component Counter
//	//
//	//   Hint: Render the same tag on every pass
//
// # Error Categories
//
//   - mount: failures while turning a VNode tree into host nodes
//   - update: failures while re-rendering a mounted component
//   - component: setup/render failures inside user code
//   - plugin: application plugin installation problems
//   - tree: declarative tree file problems
//   - config: configuration loading problems
//   - publish: output upload problems
//
// Two errors match under errors.Is when their codes are equal, which lets the
// runtime package export sentinels such as runtime.ErrUnsupportedUpdate.
package errors
