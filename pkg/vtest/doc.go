// Package vtest provides an in-memory host for testing renderers.
//
// A Host implements the three host operations the runtime needs and records
// every call, so tests can assert on both the resulting tree and the exact
// sequence of host operations.
//
// # Quick Start
//
//	func TestGreeting(t *testing.T) {
//	    host := vtest.NewHost()
//	    r := runtime.CreateRenderer(host)
//	    root := host.Root()
//
//	    if _, err := r.CreateApp(Greeting).Mount(root); err != nil {
//	        t.Fatalf("mount: %v", err)
//	    }
//	    vtest.ExpectMarkup(t, root, `<root><div>hi</div></root>`)
//	}
//
// # Recorded Operations
//
// Ops returns the calls in order. Count filters them by kind:
//
//	if n := host.Count(vtest.OpInsert); n != 3 {
//	    t.Errorf("expected 3 inserts, got %d", n)
//	}
//
// # Markup
//
// Markup serializes a node and its subtree as compact XML-like text, which
// makes whole-tree comparisons readable in test failures.
package vtest
