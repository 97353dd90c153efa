package htmlhost

import (
	"fmt"

	"github.com/vango-dev/vrender/pkg/vdom"
)

// Node is an element in the host tree.
type Node struct {
	Tag      string
	Text     string
	Parent   *Node
	Children []*Node
}

// Config configures serialization.
type Config struct {
	// Pretty enables indented output.
	Pretty bool

	// Indent is the string used per level in pretty mode. Defaults to two
	// spaces.
	Indent string

	// RootTag is the tag of the container returned by Root. Defaults to
	// "div".
	RootTag string
}

// Host implements the renderer's host operations over Nodes.
type Host struct {
	config   Config
	root     *Node
	onChange []func(*Node)
}

// New creates a host with an empty root container.
func New(config Config) *Host {
	if config.Indent == "" {
		config.Indent = "  "
	}
	if config.RootTag == "" {
		config.RootTag = "div"
	}
	return &Host{
		config: config,
		root:   &Node{Tag: config.RootTag},
	}
}

// Root returns the container to mount into.
func (h *Host) Root() *Node {
	return h.root
}

// OnChange registers fn to be called with the changed node after every
// insert and text update.
func (h *Host) OnChange(fn func(*Node)) {
	h.onChange = append(h.onChange, fn)
}

// CreateElement creates a detached element.
func (h *Host) CreateElement(tag string) vdom.HostNode {
	return &Node{Tag: tag}
}

// Insert attaches node to parent before anchor, or appends when anchor is
// nil or not a child of parent.
func (h *Host) Insert(node, parent, anchor vdom.HostNode) {
	n, p := asNode(node), asNode(parent)
	if n.Parent != nil {
		n.Parent.removeChild(n)
	}
	n.Parent = p

	if a, ok := anchor.(*Node); ok && a != nil {
		for i, c := range p.Children {
			if c == a {
				p.Children = append(p.Children[:i], append([]*Node{n}, p.Children[i:]...)...)
				h.changed(p)
				return
			}
		}
	}
	p.Children = append(p.Children, n)
	h.changed(p)
}

// SetElementText replaces node's content with text. Existing children are
// detached.
func (h *Host) SetElementText(node vdom.HostNode, text string) {
	n := asNode(node)
	for _, c := range n.Children {
		c.Parent = nil
	}
	n.Children = nil
	n.Text = text
	h.changed(n)
}

func (h *Host) changed(n *Node) {
	for _, fn := range h.onChange {
		fn(n)
	}
}

func (n *Node) removeChild(child *Node) {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			return
		}
	}
}

func asNode(v vdom.HostNode) *Node {
	n, ok := v.(*Node)
	if !ok {
		panic(fmt.Sprintf("htmlhost: host node has type %T, want *htmlhost.Node", v))
	}
	return n
}
