package runtime

import "github.com/vango-dev/vrender/pkg/vdom"

// HostAdapter is the set of primitive operations a rendering surface provides.
type HostAdapter interface {
	// CreateElement creates a detached host node for tag.
	CreateElement(tag string) vdom.HostNode

	// Insert attaches node to parent before anchor. A nil anchor appends.
	Insert(node, parent, anchor vdom.HostNode)

	// SetElementText replaces the text content of node.
	SetElementText(node vdom.HostNode, text string)
}

// HostFuncs adapts three plain functions to a HostAdapter.
type HostFuncs struct {
	CreateElementFunc  func(tag string) vdom.HostNode
	InsertFunc         func(node, parent, anchor vdom.HostNode)
	SetElementTextFunc func(node vdom.HostNode, text string)
}

// CreateElement implements HostAdapter.
func (h HostFuncs) CreateElement(tag string) vdom.HostNode {
	return h.CreateElementFunc(tag)
}

// Insert implements HostAdapter.
func (h HostFuncs) Insert(node, parent, anchor vdom.HostNode) {
	h.InsertFunc(node, parent, anchor)
}

// SetElementText implements HostAdapter.
func (h HostFuncs) SetElementText(node vdom.HostNode, text string) {
	h.SetElementTextFunc(node, text)
}
