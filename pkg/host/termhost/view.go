package termhost

import (
	"strconv"
	"strings"
)

// View lays out the children of container as terminal lines. Headings,
// list items and buttons get their own decorations; containers without
// text only contribute their children. List items are indented one level
// per enclosing list.
func (h *Host) View(container *Node) string {
	var lines []string
	if container.Text != "" {
		lines = append(lines, h.theme.Text.Render(container.Text))
	}
	for _, child := range container.Children {
		lines = h.layout(lines, child, 0)
	}
	return strings.Join(lines, "\n")
}

// Framed is View inside the theme's frame.
func (h *Host) Framed(container *Node) string {
	return h.theme.Frame.Render(h.View(container))
}

func (h *Host) layout(lines []string, n *Node, depth int) []string {
	indent := strings.Repeat("  ", depth)

	if n.Text != "" {
		lines = append(lines, indent+h.line(n))
	}

	childDepth := depth
	if n.Tag == "ul" || n.Tag == "ol" {
		if n.Parent != nil && (n.Parent.Tag == "li" || n.Parent.Tag == "ul" || n.Parent.Tag == "ol") {
			childDepth++
		}
	}
	for _, child := range n.Children {
		lines = h.layout(lines, child, childDepth)
	}
	return lines
}

func (h *Host) line(n *Node) string {
	t := h.theme
	switch n.Tag {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		return t.Heading.Render(n.Text)
	case "strong", "b":
		return t.Strong.Render(n.Text)
	case "em", "i":
		return t.Em.Render(n.Text)
	case "code", "pre":
		return t.Code.Render(n.Text)
	case "button":
		return t.Button.Render("[ " + n.Text + " ]")
	case "li":
		return t.Bullet.Render(h.marker(n)) + " " + t.Text.Render(n.Text)
	}
	return t.Text.Render(n.Text)
}

// marker is "•" in unordered lists and the 1-based position in ordered ones.
func (h *Host) marker(li *Node) string {
	if li.Parent == nil || li.Parent.Tag != "ol" {
		return "•"
	}
	pos := 1
	for _, c := range li.Parent.Children {
		if c == li {
			break
		}
		if c.Tag == "li" {
			pos++
		}
	}
	return strconv.Itoa(pos) + "."
}

// Outline renders container's subtree as one "<tag> text" line per node,
// indented by depth.
func (h *Host) Outline(container *Node) string {
	var b strings.Builder
	var walk func(n *Node, depth int)
	walk = func(n *Node, depth int) {
		b.WriteString(strings.Repeat("  ", depth))
		b.WriteString(h.theme.Tag.Render("<" + n.Tag + ">"))
		if n.Text != "" {
			b.WriteString(" " + h.theme.Text.Render(n.Text))
		}
		b.WriteString("\n")
		for _, c := range n.Children {
			walk(c, depth+1)
		}
	}
	walk(container, 0)
	return b.String()
}
