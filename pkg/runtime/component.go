package runtime

import (
	"github.com/vango-dev/vrender/internal/errors"
	"github.com/vango-dev/vrender/pkg/reactive"
	"github.com/vango-dev/vrender/pkg/vdom"
)

// instanceCounter hands out component uids.
var instanceCounter uint64

// Instance is the runtime record of one mounted component.
type Instance struct {
	uid        uint64
	vnode      *vdom.VNode
	typ        *vdom.Definition
	parent     *Instance
	appContext *AppContext
	provides   *Provides

	setupState *reactive.Record
	isMounted  bool
	subTree    *vdom.VNode
	update     *reactive.Effect
	render     vdom.RenderFunc
	proxy      *Proxy

	renders int
}

var _ vdom.Instance = (*Instance)(nil)

// newInstance allocates an instance for vnode. The app context comes from
// the parent, then the node itself, then the shared empty default.
func newInstance(vnode *vdom.VNode, parent *Instance) *Instance {
	var appContext *AppContext
	switch {
	case parent != nil:
		appContext = parent.appContext
	case vnode.AppContext != nil:
		appContext, _ = vnode.AppContext.(*AppContext)
	}
	if appContext == nil {
		appContext = defaultAppContext()
	}

	instanceCounter++
	inst := &Instance{
		uid:        instanceCounter,
		vnode:      vnode,
		typ:        vnode.Def,
		parent:     parent,
		appContext: appContext,
	}
	inst.provides = inst.parentProvides()
	return inst
}

// UID returns the instance's process-unique id.
func (i *Instance) UID() uint64 { return i.uid }

// Name returns the component's display name.
func (i *Instance) Name() string {
	if i == nil {
		return ""
	}
	return i.typ.DisplayName()
}

// IsMounted reports whether the first render has been attached.
func (i *Instance) IsMounted() bool { return i.isMounted }

// VNode returns the node currently owning the instance.
func (i *Instance) VNode() *vdom.VNode { return i.vnode }

// Type returns the component definition.
func (i *Instance) Type() *vdom.Definition { return i.typ }

// Parent returns the parent component instance, or nil for a root.
func (i *Instance) Parent() *Instance { return i.parent }

// AppContext returns the shared application context.
func (i *Instance) AppContext() *AppContext { return i.appContext }

// SetupState returns the unwrapped state returned by Setup, or nil.
func (i *Instance) SetupState() *reactive.Record { return i.setupState }

// SubTree returns the tree produced by the most recent render.
func (i *Instance) SubTree() *vdom.VNode { return i.subTree }

// Proxy returns the stable render proxy.
func (i *Instance) Proxy() *Proxy { return i.proxy }

// Update returns the reactive effect driving renders. Calling Run on it
// forces a re-render.
func (i *Instance) Update() *reactive.Effect { return i.update }

// Renders returns how many times the render function has been called.
func (i *Instance) Renders() int { return i.renders }

// parentProvides is the chain Inject reads: the parent's values, or the
// app's for a root component.
func (i *Instance) parentProvides() *Provides {
	if i.parent != nil {
		return i.parent.provides
	}
	return i.appContext.Provides
}

// mountComponent creates an instance for vnode, runs its setup and performs
// the first render inside a reactive effect.
func (r *Renderer) mountComponent(vnode *vdom.VNode, container vdom.HostNode, parent *Instance) error {
	if vnode.Def == nil {
		return errors.New("E007").WithComponent(parent.Name()).WithDetail("component node has no definition")
	}

	inst := newInstance(vnode, parent)
	if err := vnode.SetComponent(inst); err != nil {
		return errors.New("E008").WithComponent(inst.Name()).Wrap(err)
	}

	if err := r.setupComponent(inst); err != nil {
		return err
	}
	return r.setupRenderEffect(inst, container)
}

// setupComponent runs Setup with the instance as the current instance and
// binds the state, proxy and render function.
func (r *Renderer) setupComponent(inst *Instance) error {
	end := r.observe(inst, PhaseSetup)

	result, err := callSetup(inst)
	if err != nil {
		end(err)
		return err
	}

	switch v := result.(type) {
	case nil:
	case map[string]any:
		inst.setupState = reactive.Unwrap(v)
	case *reactive.Record:
		inst.setupState = v
	case vdom.RenderFunc:
		inst.render = v
	case func(vdom.Proxy) *vdom.VNode:
		inst.render = v
	default:
		r.logger.Debug("setup result ignored",
			"component", inst.Name(),
			"type", typeName(result))
	}

	inst.proxy = &Proxy{inst: inst}

	if inst.render == nil {
		inst.render = inst.typ.Render
	}
	if inst.render == nil {
		err := errors.New("E005").WithComponent(inst.Name())
		end(err)
		return err
	}

	end(nil)
	return nil
}

// callSetup invokes Setup inside the current-instance scope. Reads made by
// Setup are not tracked, so they never subscribe an ancestor's render
// effect. Panics and returned errors both become ErrSetupFailed.
func callSetup(inst *Instance) (result any, err error) {
	if inst.typ.Setup == nil {
		return nil, nil
	}

	pop := pushInstance(inst)
	defer pop()
	defer func() {
		if rec := recover(); rec != nil {
			result = nil
			err = errors.FromPanic("E002", rec).WithComponent(inst.Name())
		}
	}()

	reactive.Untrack(func() {
		result = inst.typ.Setup()
	})
	if e, ok := result.(error); ok {
		return nil, errors.New("E002").WithComponent(inst.Name()).Wrap(e)
	}
	return result, nil
}

// setupRenderEffect wraps rendering in a reactive effect. The first run
// mounts synchronously; its error is returned. Later runs patch in place and
// report failures through the app's error handler.
func (r *Renderer) setupRenderEffect(inst *Instance, container vdom.HostNode) error {
	first := true
	var mountErr error

	inst.update = reactive.NewEffect(func() {
		var err error
		if !inst.isMounted {
			err = r.mountSubTree(inst, container)
		} else {
			err = r.updateSubTree(inst, container)
		}
		if first {
			mountErr = err
			return
		}
		if err != nil {
			r.handleError(err, inst, "component update")
		}
	})
	first = false

	if mountErr != nil {
		// A half-mounted subtree must not be re-rendered by later writes.
		inst.update.Stop()
		return mountErr
	}
	return nil
}

func (r *Renderer) mountSubTree(inst *Instance, container vdom.HostNode) (err error) {
	end := r.observe(inst, PhaseMount)
	defer func() { end(err) }()

	subTree, err := r.renderComponentRoot(inst)
	if err != nil {
		return err
	}
	inst.subTree = subTree

	if err := r.Patch(nil, subTree, container, inst); err != nil {
		return err
	}
	if err := inst.vnode.SetEl(subTree.El()); err != nil {
		return errors.New("E008").WithComponent(inst.Name()).Wrap(err)
	}
	inst.isMounted = true

	r.logger.Debug("component mounted", "component", inst.Name(), "uid", inst.uid)
	return nil
}

func (r *Renderer) updateSubTree(inst *Instance, container vdom.HostNode) (err error) {
	end := r.observe(inst, PhaseUpdate)
	defer func() { end(err) }()

	next, err := r.renderComponentRoot(inst)
	if err != nil {
		return err
	}
	prev := inst.subTree
	if err := r.Patch(prev, next, container, inst); err != nil {
		return err
	}
	inst.subTree = next
	if err := inst.vnode.SetEl(next.El()); err != nil {
		return errors.New("E008").WithComponent(inst.Name()).Wrap(err)
	}

	r.logger.Debug("component updated", "component", inst.Name(), "uid", inst.uid)
	return nil
}

// renderComponentRoot calls the render function with the instance as the
// current rendering instance. The previous rendering instance is restored
// on return, so nested component renders unwind correctly.
func (r *Renderer) renderComponentRoot(inst *Instance) (result *vdom.VNode, err error) {
	pop := pushRendering(inst)
	defer pop()
	defer func() {
		if rec := recover(); rec != nil {
			result = nil
			err = errors.FromPanic("E003", rec).WithComponent(inst.Name())
		}
	}()

	inst.renders++
	result = inst.render(inst.proxy)
	if result == nil {
		return nil, errors.New("E004").WithComponent(inst.Name())
	}
	return result, nil
}
