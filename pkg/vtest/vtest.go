package vtest

import (
	"fmt"
	"strings"
	"testing"

	"github.com/vango-dev/vrender/pkg/vdom"
)

// OpKind names a host operation.
type OpKind string

const (
	OpCreate  OpKind = "create"
	OpInsert  OpKind = "insert"
	OpSetText OpKind = "setText"
)

// Op is one recorded host call.
type Op struct {
	Kind   OpKind
	Tag    string
	Node   *Node
	Parent *Node
	Anchor *Node
	Text   string
}

// String renders the op for failure messages.
func (o Op) String() string {
	switch o.Kind {
	case OpCreate:
		return fmt.Sprintf("create <%s>#%d", o.Tag, o.Node.ID)
	case OpInsert:
		return fmt.Sprintf("insert #%d into #%d", o.Node.ID, o.Parent.ID)
	case OpSetText:
		return fmt.Sprintf("setText #%d %q", o.Node.ID, o.Text)
	}
	return string(o.Kind)
}

// Node is an in-memory host element.
type Node struct {
	ID       int
	Tag      string
	Text     string
	Parent   *Node
	Children []*Node
}

// TextContent returns the node's text followed by its descendants' text.
func (n *Node) TextContent() string {
	var b strings.Builder
	var walk func(*Node)
	walk = func(n *Node) {
		b.WriteString(n.Text)
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// Host records host operations against an in-memory tree.
type Host struct {
	ops    []Op
	nextID int
	root   *Node
}

// NewHost creates a host with a fresh root container.
func NewHost() *Host {
	h := &Host{}
	h.root = h.newNode("root")
	return h
}

func (h *Host) newNode(tag string) *Node {
	h.nextID++
	return &Node{ID: h.nextID, Tag: tag}
}

// Root returns the container created with the host. Creating it is not
// recorded as an operation.
func (h *Host) Root() *Node {
	return h.root
}

// CreateElement creates a detached node.
func (h *Host) CreateElement(tag string) vdom.HostNode {
	n := h.newNode(tag)
	h.ops = append(h.ops, Op{Kind: OpCreate, Tag: tag, Node: n})
	return n
}

// Insert attaches node to parent before anchor, or last when anchor is nil.
func (h *Host) Insert(node, parent, anchor vdom.HostNode) {
	n, p := mustNode(node), mustNode(parent)
	var a *Node
	if anchor != nil {
		a = mustNode(anchor)
	}
	h.ops = append(h.ops, Op{Kind: OpInsert, Node: n, Parent: p, Anchor: a})

	if n.Parent != nil {
		n.Parent.remove(n)
	}
	n.Parent = p
	if a == nil {
		p.Children = append(p.Children, n)
		return
	}
	for i, c := range p.Children {
		if c == a {
			p.Children = append(p.Children[:i], append([]*Node{n}, p.Children[i:]...)...)
			return
		}
	}
	p.Children = append(p.Children, n)
}

// SetElementText replaces node's content with text. Existing children are
// detached, as with DOM textContent.
func (h *Host) SetElementText(node vdom.HostNode, text string) {
	n := mustNode(node)
	h.ops = append(h.ops, Op{Kind: OpSetText, Node: n, Text: text})
	for _, c := range n.Children {
		c.Parent = nil
	}
	n.Children = nil
	n.Text = text
}

// Ops returns the recorded operations in call order.
func (h *Host) Ops() []Op {
	return h.ops
}

// Count returns how many operations of kind were recorded.
func (h *Host) Count(kind OpKind) int {
	n := 0
	for _, op := range h.ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Reset forgets recorded operations. The tree is kept.
func (h *Host) Reset() {
	h.ops = nil
}

func (n *Node) remove(child *Node) {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			return
		}
	}
}

func mustNode(v vdom.HostNode) *Node {
	n, ok := v.(*Node)
	if !ok {
		panic(fmt.Sprintf("vtest: host node has type %T, want *vtest.Node", v))
	}
	return n
}

// Markup serializes n as <tag>text children</tag>.
func Markup(n *Node) string {
	var b strings.Builder
	writeMarkup(&b, n)
	return b.String()
}

func writeMarkup(b *strings.Builder, n *Node) {
	if n == nil {
		return
	}
	b.WriteString("<" + n.Tag + ">")
	b.WriteString(n.Text)
	for _, c := range n.Children {
		writeMarkup(b, c)
	}
	b.WriteString("</" + n.Tag + ">")
}

// ExpectMarkup asserts that n serializes to want.
func ExpectMarkup(t testing.TB, n *Node, want string) {
	t.Helper()
	if got := Markup(n); got != want {
		t.Errorf("markup mismatch\n got: %s\nwant: %s", got, want)
	}
}

// ExpectOps asserts the exact sequence of recorded operation kinds.
func ExpectOps(t testing.TB, h *Host, want ...OpKind) {
	t.Helper()
	ops := h.Ops()
	if len(ops) != len(want) {
		t.Errorf("expected %d ops, got %d: %v", len(want), len(ops), ops)
		return
	}
	for i, op := range ops {
		if op.Kind != want[i] {
			t.Errorf("op %d: expected %s, got %s (%v)", i, want[i], op.Kind, ops)
		}
	}
}

// ExpectContains asserts that n's text content contains s.
func ExpectContains(t testing.TB, n *Node, s string) {
	t.Helper()
	if text := n.TextContent(); !strings.Contains(text, s) {
		t.Errorf("expected text content to contain %q, got %q", s, truncate(text, 500))
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
