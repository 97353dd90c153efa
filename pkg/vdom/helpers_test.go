package vdom

import (
	"strconv"
	"testing"
)

func TestIf(t *testing.T) {
	node := Div()
	if If(true, node) != node {
		t.Error("If(true) should return node")
	}
	if If(false, node) != nil {
		t.Error("If(false) should return nil")
	}
}

func TestIfElse(t *testing.T) {
	a, b := Div(), Span()
	if IfElse(true, a, b) != a || IfElse(false, a, b) != b {
		t.Error("IfElse picked the wrong branch")
	}
}

func TestWhenIsLazy(t *testing.T) {
	called := false
	When(false, func() *VNode {
		called = true
		return Div()
	})
	if called {
		t.Error("When(false) must not call fn")
	}
	if When(true, func() *VNode { return Div() }) == nil {
		t.Error("When(true) should return the node")
	}
}

func TestRange(t *testing.T) {
	items := []string{"a", "", "c"}
	nodes := Range(items, func(s string, i int) *VNode {
		if s == "" {
			return nil
		}
		return Li(s + strconv.Itoa(i))
	})
	if len(nodes) != 2 || nodes[1].Text != "c2" {
		t.Errorf("Range = %+v", nodes)
	}
}

func TestRepeat(t *testing.T) {
	if Repeat(0, func(int) *VNode { return Div() }) != nil {
		t.Error("Repeat(0) should be nil")
	}
	if got := len(Repeat(3, func(int) *VNode { return Div() })); got != 3 {
		t.Errorf("Repeat(3) produced %d nodes", got)
	}
}

func TestCount(t *testing.T) {
	if Count(nil) != 0 {
		t.Error("Count(nil) should be 0")
	}
	if got := Count(Div(P("a"), P("b"))); got != 3 {
		t.Errorf("Count = %d, want 3", got)
	}
}
