package vdom

import (
	"fmt"
	"strings"
)

// H creates an element node with the given tag and arguments.
//
// Arguments can be: nil, string, fmt.Stringer, *VNode, []*VNode or
// *Definition. Any other value is formatted with fmt.Sprint as text. Strings are concatenated into text content when they are the
// only children; mixed with nodes, each string becomes a <span> child so the
// node keeps a single children shape.
func H(tag string, args ...any) *VNode {
	node := Element(tag)

	var (
		texts []string
		items []*VNode
		mixed bool
	)
	addText := func(s string) {
		texts = append(texts, s)
		items = append(items, &VNode{Kind: KindElement, Tag: "span", ChildrenKind: ChildrenText, Text: s})
	}

	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			// Ignore nil (allows conditional children)
			continue

		case string:
			addText(v)

		case fmt.Stringer:
			addText(v.String())

		case *VNode:
			if v != nil {
				items = append(items, v)
				mixed = true
			}

		case []*VNode:
			for _, child := range v {
				if child != nil {
					items = append(items, child)
					mixed = true
				}
			}

		case *Definition:
			if v != nil {
				items = append(items, Comp(v))
				mixed = true
			}

		default:
			addText(fmt.Sprint(v))
		}
	}

	switch {
	case !mixed && len(texts) > 0:
		node.SetText(strings.Join(texts, ""))
	case len(items) > 0:
		node.SetChildren(items...)
	}
	return node
}

// Textf creates an element whose text content is formatted.
func Textf(tag, format string, args ...any) *VNode {
	return Element(tag).SetText(fmt.Sprintf(format, args...))
}

// Document structure elements

func Div(args ...any) *VNode     { return H("div", args...) }
func Span(args ...any) *VNode    { return H("span", args...) }
func P(args ...any) *VNode       { return H("p", args...) }
func Section(args ...any) *VNode { return H("section", args...) }
func Header(args ...any) *VNode  { return H("header", args...) }
func Footer(args ...any) *VNode  { return H("footer", args...) }
func Main(args ...any) *VNode    { return H("main", args...) }
func Nav(args ...any) *VNode     { return H("nav", args...) }

// Headings

func H1(args ...any) *VNode { return H("h1", args...) }
func H2(args ...any) *VNode { return H("h2", args...) }
func H3(args ...any) *VNode { return H("h3", args...) }

// Lists

func Ul(args ...any) *VNode { return H("ul", args...) }
func Ol(args ...any) *VNode { return H("ol", args...) }
func Li(args ...any) *VNode { return H("li", args...) }

// Inline and controls

func Strong(args ...any) *VNode { return H("strong", args...) }
func Em(args ...any) *VNode     { return H("em", args...) }
func Code(args ...any) *VNode   { return H("code", args...) }
func Button(args ...any) *VNode { return H("button", args...) }
func Label(args ...any) *VNode  { return H("label", args...) }
