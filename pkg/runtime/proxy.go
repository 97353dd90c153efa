package runtime

import "github.com/vango-dev/vrender/pkg/vdom"

// Proxy is the stable read view passed to a component's render function.
// Keys resolve against the setup state first and the app's global
// properties second; anything else reads as absent.
type Proxy struct {
	inst *Instance
}

var _ vdom.Proxy = (*Proxy)(nil)

// Lookup returns the value for key and whether it exists.
func (p *Proxy) Lookup(key string) (any, bool) {
	if p == nil || p.inst == nil {
		return nil, false
	}
	if state := p.inst.setupState; state != nil {
		if v, ok := state.Lookup(key); ok {
			return v, true
		}
	}
	if ctx := p.inst.appContext; ctx != nil && ctx.Config != nil {
		if v, ok := ctx.Config.GlobalProperties[key]; ok {
			return v, true
		}
	}
	return nil, false
}

// Get returns the value for key or nil.
func (p *Proxy) Get(key string) any {
	v, _ := p.Lookup(key)
	return v
}

// Instance returns the component the proxy belongs to.
func (p *Proxy) Instance() *Instance {
	return p.inst
}
