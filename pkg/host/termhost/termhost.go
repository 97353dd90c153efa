// Package termhost is a host adapter that lays a rendered tree out as
// styled terminal text.
package termhost

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/vango-dev/vrender/pkg/vdom"
)

// Theme holds the styles used for each kind of element.
type Theme struct {
	Heading lipgloss.Style
	Text    lipgloss.Style
	Strong  lipgloss.Style
	Em      lipgloss.Style
	Code    lipgloss.Style
	Button  lipgloss.Style
	Bullet  lipgloss.Style
	Tag     lipgloss.Style
	Frame   lipgloss.Style
}

// DefaultTheme returns the colour theme.
func DefaultTheme() Theme {
	return Theme{
		Heading: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1),
		Text:   lipgloss.NewStyle(),
		Strong: lipgloss.NewStyle().Bold(true),
		Em:     lipgloss.NewStyle().Italic(true),
		Code:   lipgloss.NewStyle().Foreground(lipgloss.Color("#98FB98")),
		Button: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")),
		Bullet: lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB")),
		Tag:    lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB")),
		Frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#666666")).
			Padding(0, 1),
	}
}

// PlainTheme returns a theme without any styling.
func PlainTheme() Theme {
	plain := lipgloss.NewStyle()
	return Theme{
		Heading: plain,
		Text:    plain,
		Strong:  plain,
		Em:      plain,
		Code:    plain,
		Button:  plain,
		Bullet:  plain,
		Tag:     plain,
		Frame:   plain,
	}
}

// Node is an element in the terminal tree.
type Node struct {
	Tag      string
	Text     string
	Parent   *Node
	Children []*Node
}

// Host implements the renderer's host operations for terminal output.
type Host struct {
	theme Theme
	root  *Node
}

// New creates a host using theme.
func New(theme Theme) *Host {
	return &Host{theme: theme, root: &Node{Tag: "screen"}}
}

// Root returns the container to mount into.
func (h *Host) Root() *Node { return h.root }

// CreateElement creates a detached element.
func (h *Host) CreateElement(tag string) vdom.HostNode {
	return &Node{Tag: tag}
}

// Insert attaches node to parent before anchor, or appends.
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
				return
			}
		}
	}
	p.Children = append(p.Children, n)
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
		panic(fmt.Sprintf("termhost: host node has type %T, want *termhost.Node", v))
	}
	return n
}
