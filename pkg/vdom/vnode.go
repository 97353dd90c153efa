package vdom

import "fmt"

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement   VKind = iota // <div>, <button>, etc.
	KindComponent              // Nested component
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindComponent:
		return "Component"
	default:
		return "Unknown"
	}
}

// ChildrenKind tells which of the two children shapes an element carries.
type ChildrenKind uint8

const (
	ChildrenNone  ChildrenKind = iota // No children
	ChildrenText                      // Text content
	ChildrenNodes                     // Ordered child VNodes
)

// String returns the string representation of the ChildrenKind.
func (k ChildrenKind) String() string {
	switch k {
	case ChildrenNone:
		return "None"
	case ChildrenText:
		return "Text"
	case ChildrenNodes:
		return "Nodes"
	default:
		return "Unknown"
	}
}

// HostNode is an opaque handle to a node created by a host adapter.
// Host nodes must be comparable; pointer types are the usual choice.
type HostNode = any

// Instance is the runtime record attached to a mounted component node.
type Instance interface {
	Name() string
	IsMounted() bool
}

// Context is the application context attached to a root node.
type Context interface {
	Provided(key any) (any, bool)
}

// VNode is the virtual DOM node.
type VNode struct {
	Kind         VKind        // Node type
	Tag          string       // Element tag name (e.g., "div")
	Def          *Definition  // For KindComponent
	ChildrenKind ChildrenKind // Shape of the children
	Text         string       // For ChildrenText
	Children     []*VNode     // For ChildrenNodes
	AppContext   Context      // Set on the root node at mount time

	el        HostNode
	component Instance
}

// Element creates an element node with no children.
func Element(tag string) *VNode {
	return &VNode{Kind: KindElement, Tag: tag}
}

// Comp creates a component node for the definition.
func Comp(def *Definition) *VNode {
	return &VNode{Kind: KindComponent, Def: def}
}

// El returns the host node this VNode was mounted to, or nil.
func (v *VNode) El() HostNode {
	return v.el
}

// SetEl records the mounted host node. A second assignment of a different
// node is refused.
func (v *VNode) SetEl(n HostNode) error {
	if v.el != nil && v.el != n {
		return fmt.Errorf("vdom: %s node already mounted to a different host node", v.describe())
	}
	v.el = n
	return nil
}

// Component returns the component instance attached to this node, or nil.
func (v *VNode) Component() Instance {
	return v.component
}

// SetComponent attaches the component instance. It may be called once.
func (v *VNode) SetComponent(inst Instance) error {
	if v.component != nil && v.component != inst {
		return fmt.Errorf("vdom: %s node already owns a component instance", v.describe())
	}
	v.component = inst
	return nil
}

// IsMounted reports whether the node has been attached to a host node.
func (v *VNode) IsMounted() bool {
	return v != nil && v.el != nil
}

// SetText replaces the children with text content.
func (v *VNode) SetText(text string) *VNode {
	v.ChildrenKind = ChildrenText
	v.Text = text
	v.Children = nil
	return v
}

// SetChildren replaces the children with the given nodes.
func (v *VNode) SetChildren(children ...*VNode) *VNode {
	v.ChildrenKind = ChildrenNodes
	v.Text = ""
	v.Children = children
	return v
}

// Name returns the tag for elements and the definition name for components.
func (v *VNode) Name() string {
	if v == nil {
		return ""
	}
	if v.Kind == KindComponent {
		if v.Def == nil {
			return ""
		}
		return v.Def.DisplayName()
	}
	return v.Tag
}

func (v *VNode) describe() string {
	return fmt.Sprintf("%s %q", v.Kind, v.Name())
}

// Walk visits the node and every descendant in document order.
// Component nodes are visited but their rendered subtree is not.
// Returning false from fn stops the descent below that node.
func Walk(node *VNode, fn func(n *VNode, depth int) bool) {
	walk(node, 0, fn)
}

func walk(node *VNode, depth int, fn func(*VNode, int) bool) {
	if node == nil {
		return
	}
	if !fn(node, depth) {
		return
	}
	if node.ChildrenKind != ChildrenNodes {
		return
	}
	for _, child := range node.Children {
		walk(child, depth+1, fn)
	}
}
