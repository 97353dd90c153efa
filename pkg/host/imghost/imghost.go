// Package imghost is a host adapter that rasterizes a rendered tree into an
// image, one line of text per element.
package imghost

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/vango-dev/vrender/pkg/vdom"
)

const (
	defaultPadding = 8
	indentWidth    = 2
)

// Options configures rasterization.
type Options struct {
	Face       font.Face
	Background color.Color
	Foreground color.Color
	Accent     color.Color
	Padding    int
}

func (o Options) withDefaults() Options {
	if o.Face == nil {
		o.Face = basicfont.Face7x13
	}
	if o.Background == nil {
		o.Background = color.White
	}
	if o.Foreground == nil {
		o.Foreground = color.Black
	}
	if o.Accent == nil {
		o.Accent = color.RGBA{R: 0x7D, G: 0x56, B: 0xF4, A: 0xFF}
	}
	if o.Padding <= 0 {
		o.Padding = defaultPadding
	}
	return o
}

// Node is an element in the raster tree.
type Node struct {
	Tag      string
	Text     string
	Parent   *Node
	Children []*Node
}

// Host implements the renderer's host operations and draws the result.
type Host struct {
	opts Options
	root *Node
}

// New creates a host.
func New(opts Options) *Host {
	return &Host{opts: opts.withDefaults(), root: &Node{Tag: "canvas"}}
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
		panic(fmt.Sprintf("imghost: host node has type %T, want *imghost.Node", v))
	}
	return n
}

// Line is one row of rasterized text.
type Line struct {
	Text   string
	Depth  int
	Accent bool
}

// Lines flattens the subtree below container into rows. Elements without
// text contribute only their children.
func Lines(container *Node) []Line {
	var lines []Line
	var walk func(n *Node, depth int)
	walk = func(n *Node, depth int) {
		if n.Text != "" {
			lines = append(lines, Line{Text: n.Text, Depth: depth, Accent: isHeading(n.Tag)})
		}
		for _, c := range n.Children {
			walk(c, depth+1)
		}
	}
	for _, c := range container.Children {
		walk(c, 0)
	}
	return lines
}

func isHeading(tag string) bool {
	return len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '6'
}

// Draw rasterizes the subtree below container. The image is sized to fit
// the widest line.
func (h *Host) Draw(container *Node) *image.RGBA {
	o := h.opts
	lines := Lines(container)

	metrics := o.Face.Metrics()
	lineHeight := metrics.Height.Ceil()
	ascent := metrics.Ascent.Ceil()
	space := font.MeasureString(o.Face, strings.Repeat(" ", indentWidth)).Ceil()

	width := 0
	for _, l := range lines {
		if w := l.Depth*space + font.MeasureString(o.Face, l.Text).Ceil(); w > width {
			width = w
		}
	}
	width += 2 * o.Padding
	height := len(lines)*lineHeight + 2*o.Padding

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(o.Background), image.Point{}, draw.Src)

	d := &font.Drawer{Dst: img, Face: o.Face}
	for i, l := range lines {
		src := o.Foreground
		if l.Accent {
			src = o.Accent
		}
		d.Src = image.NewUniform(src)
		d.Dot = fixed.P(o.Padding+l.Depth*space, o.Padding+i*lineHeight+ascent)
		d.DrawString(l.Text)
	}
	return img
}

// EncodePNG draws container and writes it to w as PNG.
func (h *Host) EncodePNG(w io.Writer, container *Node) error {
	return png.Encode(w, h.Draw(container))
}
