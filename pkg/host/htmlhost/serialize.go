package htmlhost

import (
	"bytes"
	"fmt"
	"io"
)

// Render serializes n and its subtree.
func (h *Host) Render(n *Node) (string, error) {
	var buf bytes.Buffer
	if err := h.RenderTo(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderTo streams n and its subtree to w.
func (h *Host) RenderTo(w io.Writer, n *Node) error {
	return h.renderNode(w, n, 0)
}

// RenderChildren serializes the children of container without the
// container itself.
func (h *Host) RenderChildren(container *Node) (string, error) {
	var buf bytes.Buffer
	if err := h.renderChildrenTo(&buf, container, 0); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (h *Host) renderChildrenTo(w io.Writer, container *Node, depth int) error {
	if container.Text != "" {
		if _, err := io.WriteString(w, escapeHTML(container.Text)); err != nil {
			return err
		}
	}
	for _, child := range container.Children {
		if err := h.renderNode(w, child, depth); err != nil {
			return err
		}
	}
	return nil
}

func (h *Host) renderNode(w io.Writer, n *Node, depth int) error {
	if n == nil {
		return nil
	}
	if !validTag(n.Tag) {
		return fmt.Errorf("htmlhost: invalid tag %q", n.Tag)
	}
	pretty := h.config.Pretty

	if pretty && depth > 0 {
		h.writeIndent(w, depth)
	}
	if _, err := fmt.Fprintf(w, "<%s>", n.Tag); err != nil {
		return err
	}

	if isVoidElement(n.Tag) {
		if pretty {
			io.WriteString(w, "\n")
		}
		return nil
	}

	block := len(n.Children) > 0 && !isInlineElement(n.Tag)
	if n.Text != "" {
		if _, err := io.WriteString(w, escapeHTML(n.Text)); err != nil {
			return err
		}
	}
	if pretty && block {
		io.WriteString(w, "\n")
	}

	childDepth := depth + 1
	if !pretty || !block {
		childDepth = 0
	}
	for _, child := range n.Children {
		if err := h.renderNode(w, child, childDepth); err != nil {
			return err
		}
	}

	if pretty && block {
		h.writeIndent(w, depth)
	}
	if _, err := fmt.Fprintf(w, "</%s>", n.Tag); err != nil {
		return err
	}
	if pretty && (depth > 0 || block) {
		io.WriteString(w, "\n")
	}
	return nil
}

func (h *Host) writeIndent(w io.Writer, depth int) {
	for i := 0; i < depth; i++ {
		io.WriteString(w, h.config.Indent)
	}
}
