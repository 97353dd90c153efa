package treefile

import (
	"reflect"

	"github.com/vango-dev/vrender/pkg/runtime"
	"github.com/vango-dev/vrender/pkg/vdom"
)

// Program is a document compiled into component definitions.
type Program struct {
	Doc        *Document
	Root       *vdom.Definition
	Components map[string]*vdom.Definition
	Store      *Store
}

// Build compiles doc. Component references are resolved when rendering,
// first against the app's registry and then against the program.
func Build(doc *Document) (*Program, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	p := &Program{
		Doc:        doc,
		Components: make(map[string]*vdom.Definition, len(doc.Components)),
		Store:      newStore(doc),
	}
	for _, name := range doc.ComponentNames() {
		p.Components[name] = p.define(name, doc.Components[name])
	}
	p.Root = p.Components[doc.Root]
	return p, nil
}

func (p *Program) define(name string, spec *ComponentSpec) *vdom.Definition {
	def := &vdom.Definition{Name: name}
	if len(spec.State) > 0 {
		def.Setup = func() any {
			return p.Store.state(name)
		}
	}
	def.Render = func(proxy vdom.Proxy) *vdom.VNode {
		return p.build(spec.Render, proxy, false)
	}
	return def
}

// Install registers the program's components and provided values on app.
// Program implements runtime.Plugin.
func (p *Program) Install(app *runtime.App, _ ...any) {
	for _, name := range p.Doc.ComponentNames() {
		if app.Component(name) == nil {
			app.RegisterComponent(name, p.Components[name])
		}
	}
	for key, v := range p.Doc.Provide {
		app.Provide(key, v)
	}
}

// build converts a node spec using proxy for placeholders and conditions.
// The renderer patches in place and never removes nodes, so a node whose
// condition is false keeps its tag and children but renders no text.
func (p *Program) build(n *NodeSpec, proxy vdom.Proxy, hidden bool) *vdom.VNode {
	if n.If != "" && !truthy(proxy.Get(n.If)) {
		hidden = true
	}

	if n.Component != "" {
		def := runtime.Resolve(n.Component)
		if def == nil {
			def = p.Components[n.Component]
		}
		return vdom.Comp(def)
	}

	node := vdom.Element(n.Tag)
	switch {
	case len(n.Children) > 0:
		children := make([]*vdom.VNode, len(n.Children))
		for i, c := range n.Children {
			children[i] = p.build(c, proxy, hidden)
		}
		node.SetChildren(children...)
	case n.Text != "" && !hidden:
		node.SetText(interpolate(n.Text, proxy))
	}
	return node
}

func interpolate(text string, proxy vdom.Proxy) string {
	return placeholder.ReplaceAllStringFunc(text, func(m string) string {
		key := placeholder.FindStringSubmatch(m)[1]
		return format(proxy.Get(key))
	})
}

// truthy treats nil, false, zero numbers and empty strings, slices and
// maps as false.
func truthy(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool()
	case reflect.String, reflect.Slice, reflect.Map:
		return rv.Len() > 0
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0
	}
	return true
}
