package runtime

import (
	"fmt"
	"log/slog"

	"github.com/vango-dev/vrender/internal/errors"
	"github.com/vango-dev/vrender/pkg/vdom"
)

// Version is the default application version reported by App.Version and
// compared against plugin requirements.
const Version = "v0.3.0"

// Renderer turns vdom trees into host nodes through a HostAdapter.
type Renderer struct {
	host      HostAdapter
	logger    *slog.Logger
	observer  Observer
	version   string
	createApp func(root *vdom.Definition) *App
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the logger used for warnings, errors and debug events.
func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithObserver installs an observer notified around setup and render passes.
func WithObserver(o Observer) Option {
	return func(r *Renderer) {
		r.observer = o
	}
}

// WithVersion overrides the application version (semver, "v" prefixed).
func WithVersion(v string) Option {
	return func(r *Renderer) {
		if v != "" {
			r.version = v
		}
	}
}

// CreateRenderer creates a renderer bound to host.
func CreateRenderer(host HostAdapter, opts ...Option) *Renderer {
	r := &Renderer{
		host:    host,
		logger:  slog.Default(),
		version: Version,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.createApp = createAppAPI(r.Render, r.logger, r.version)
	return r
}

// Host returns the adapter the renderer writes to.
func (r *Renderer) Host() HostAdapter {
	return r.host
}

// CreateApp creates an application whose root component is root.
func (r *Renderer) CreateApp(root *vdom.Definition) *App {
	return r.createApp(root)
}

// Render mounts vnode beneath container, which must be an existing host node
// able to accept children.
func (r *Renderer) Render(vnode *vdom.VNode, container vdom.HostNode, parent *Instance) error {
	if container == nil {
		return errors.New("E009").WithComponent(parent.Name())
	}
	return r.Patch(nil, vnode, container, parent)
}

// Patch reconciles prev (the mounted node, or nil) with next.
// A nil prev mounts next; otherwise next is patched in place.
func (r *Renderer) Patch(prev, next *vdom.VNode, container vdom.HostNode, parent *Instance) error {
	if next == nil {
		return errors.New("E007").WithComponent(parent.Name()).WithDetail("cannot patch a nil node")
	}
	if prev == next {
		return nil
	}

	switch next.Kind {
	case vdom.KindElement:
		if prev == nil {
			return r.mountElement(next, container, parent)
		}
		return r.patchElement(prev, next, parent)

	case vdom.KindComponent:
		if prev == nil {
			return r.mountComponent(next, container, parent)
		}
		return r.updateComponent(prev, next, parent)

	default:
		return errors.New("E006").WithComponent(parent.Name()).WithDetailf("kind %d", next.Kind)
	}
}

// mountElement creates the host node, fills it and inserts it into
// container. Children are attached before the element itself is inserted.
func (r *Renderer) mountElement(vnode *vdom.VNode, container vdom.HostNode, parent *Instance) error {
	if vnode.Tag == "" {
		return errors.New("E007").WithComponent(parent.Name()).WithDetail("element node has no tag")
	}
	if vnode.IsMounted() {
		return errors.New("E008").WithComponent(parent.Name()).WithDetailf("<%s> is already mounted", vnode.Tag)
	}

	el := r.host.CreateElement(vnode.Tag)
	if err := vnode.SetEl(el); err != nil {
		return errors.New("E008").WithComponent(parent.Name()).Wrap(err)
	}

	switch vnode.ChildrenKind {
	case vdom.ChildrenText:
		r.host.SetElementText(el, vnode.Text)
	case vdom.ChildrenNodes:
		if err := r.mountChildren(vnode.Children, el, parent); err != nil {
			return err
		}
	}

	r.host.Insert(el, container, nil)
	return nil
}

// mountChildren mounts each child, in order, into container.
func (r *Renderer) mountChildren(children []*vdom.VNode, container vdom.HostNode, parent *Instance) error {
	for _, child := range children {
		if err := r.Patch(nil, child, container, parent); err != nil {
			return err
		}
	}
	return nil
}

// patchElement updates a mounted element in place. Only text content and
// same-length child lists can change.
func (r *Renderer) patchElement(prev, next *vdom.VNode, parent *Instance) error {
	if prev.Kind != vdom.KindElement || prev.Tag != next.Tag {
		return unsupported(parent, "cannot replace %s %q with <%s>", prev.Kind, prev.Name(), next.Tag)
	}
	el := prev.El()
	if el == nil {
		return unsupported(parent, "previous <%s> was never mounted", prev.Tag)
	}
	if err := next.SetEl(el); err != nil {
		return errors.New("E008").WithComponent(parent.Name()).Wrap(err)
	}

	switch {
	case isTextual(prev) && isTextual(next):
		if textOf(prev) != textOf(next) {
			r.host.SetElementText(el, textOf(next))
		}
		return nil

	case prev.ChildrenKind == vdom.ChildrenNodes && next.ChildrenKind == vdom.ChildrenNodes:
		if len(prev.Children) != len(next.Children) {
			return unsupported(parent, "<%s> children changed from %d to %d", next.Tag, len(prev.Children), len(next.Children))
		}
		for i := range next.Children {
			if err := r.Patch(prev.Children[i], next.Children[i], el, parent); err != nil {
				return err
			}
		}
		return nil

	case len(prev.Children) == 0 && len(next.Children) == 0 && textOf(prev) == "" && textOf(next) == "":
		return nil

	default:
		return unsupported(parent, "<%s> children changed from %s to %s", next.Tag, prev.ChildrenKind, next.ChildrenKind)
	}
}

// updateComponent hands the mounted instance over to the new node.
// Components take no props, so the instance does not re-render here; its
// own effect re-renders when its state changes.
func (r *Renderer) updateComponent(prev, next *vdom.VNode, parent *Instance) error {
	if prev.Kind != vdom.KindComponent || prev.Def != next.Def {
		return unsupported(parent, "cannot replace %s %q with component %q", prev.Kind, prev.Name(), next.Name())
	}
	inst, ok := prev.Component().(*Instance)
	if !ok || inst == nil {
		return unsupported(parent, "previous component %q was never mounted", prev.Name())
	}
	if err := next.SetComponent(inst); err != nil {
		return errors.New("E008").WithComponent(inst.Name()).Wrap(err)
	}
	if err := next.SetEl(prev.El()); err != nil {
		return errors.New("E008").WithComponent(inst.Name()).Wrap(err)
	}
	inst.vnode = next
	return nil
}

func isTextual(n *vdom.VNode) bool {
	return n.ChildrenKind == vdom.ChildrenText || n.ChildrenKind == vdom.ChildrenNone
}

func textOf(n *vdom.VNode) string {
	if n.ChildrenKind == vdom.ChildrenText {
		return n.Text
	}
	return ""
}

// handleError routes an asynchronous render error to the app's handler.
func (r *Renderer) handleError(err error, inst *Instance, info string) {
	if cfg := inst.appContext.Config; cfg != nil && cfg.ErrorHandler != nil {
		cfg.ErrorHandler(err, inst, info)
		return
	}
	r.logger.Error(info+" failed",
		"component", inst.Name(),
		"uid", inst.uid,
		"error", err)
}

func typeName(v any) string {
	return fmt.Sprintf("%T", v)
}
