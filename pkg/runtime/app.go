package runtime

import (
	"log/slog"
	"sync"

	"github.com/vango-dev/vrender/internal/errors"
	"github.com/vango-dev/vrender/pkg/vdom"
)

// AppConfig holds application-level hooks.
type AppConfig struct {
	// ErrorHandler receives errors from reactive re-renders, which have no
	// caller to return to. Defaults to logging.
	ErrorHandler func(err error, inst *Instance, info string)

	// WarnHandler receives non-fatal notices such as duplicate plugin
	// installs. Defaults to logging at warn level.
	WarnHandler func(msg string, inst *Instance)

	// GlobalProperties are readable from every component proxy when the
	// setup state has no such key.
	GlobalProperties map[string]any
}

// AppContext is the registry shared by every instance in one mounted tree.
type AppContext struct {
	App        *App
	Config     *AppConfig
	Mixins     []any
	Components map[string]*vdom.Definition
	Directives map[string]any
	Provides   *Provides
}

var _ vdom.Context = (*AppContext)(nil)

// CreateAppContext returns an empty context.
func CreateAppContext() *AppContext {
	return &AppContext{
		Config:     &AppConfig{GlobalProperties: make(map[string]any)},
		Components: make(map[string]*vdom.Definition),
		Directives: make(map[string]any),
		Provides:   NewProvides(nil),
	}
}

// Provided implements vdom.Context.
func (c *AppContext) Provided(key any) (any, bool) {
	return c.Provides.Lookup(key)
}

var (
	emptyAppContext     *AppContext
	emptyAppContextOnce sync.Once
)

// defaultAppContext is the context of components mounted without an app.
// It is created on first use and shared for the life of the process.
func defaultAppContext() *AppContext {
	emptyAppContextOnce.Do(func() {
		emptyAppContext = CreateAppContext()
	})
	return emptyAppContext
}

// Provides is a chain of provided values. Lookups fall back to the parent.
type Provides struct {
	parent *Provides
	values map[any]any
}

// NewProvides creates a link whose misses delegate to parent.
func NewProvides(parent *Provides) *Provides {
	return &Provides{parent: parent}
}

// Set stores value under key on this link.
func (p *Provides) Set(key, value any) {
	if p.values == nil {
		p.values = make(map[any]any)
	}
	p.values[key] = value
}

// Lookup finds key on this link or the nearest ancestor.
func (p *Provides) Lookup(key any) (any, bool) {
	for link := p; link != nil; link = link.parent {
		if v, ok := link.values[key]; ok {
			return v, true
		}
	}
	return nil, false
}

// Parent returns the link misses delegate to.
func (p *Provides) Parent() *Provides {
	return p.parent
}

type rootRenderFunc func(vnode *vdom.VNode, container vdom.HostNode, parent *Instance) error

// App is the public handle of one application.
type App struct {
	context          *AppContext
	root             *vdom.Definition
	render           rootRenderFunc
	logger           *slog.Logger
	version          string
	installedPlugins map[any]struct{}

	rootInstance *Instance
	container    vdom.HostNode
}

// createAppAPI returns the createApp function bound to a render function.
func createAppAPI(render rootRenderFunc, logger *slog.Logger, version string) func(root *vdom.Definition) *App {
	return func(root *vdom.Definition) *App {
		context := CreateAppContext()
		app := &App{
			context:          context,
			root:             root,
			render:           render,
			logger:           logger,
			version:          version,
			installedPlugins: make(map[any]struct{}),
		}
		context.App = app
		return app
	}
}

// Context returns the app's context.
func (a *App) Context() *AppContext { return a.context }

// Config returns the app's configuration hooks.
func (a *App) Config() *AppConfig { return a.context.Config }

// Version returns the app version plugins are checked against.
func (a *App) Version() string { return a.version }

// RootInstance returns the mounted root component, or nil before Mount.
func (a *App) RootInstance() *Instance { return a.rootInstance }

// Container returns the host node the app was mounted into.
func (a *App) Container() vdom.HostNode { return a.container }

// Component returns the definition registered under name, or nil.
func (a *App) Component(name string) *vdom.Definition {
	return a.context.Components[name]
}

// RegisterComponent registers def under name.
func (a *App) RegisterComponent(name string, def *vdom.Definition) *App {
	if _, exists := a.context.Components[name]; exists {
		a.warn("Component \""+name+"\" has already been registered in target app.", nil)
	}
	a.context.Components[name] = def
	return a
}

// Provide makes value available to every component of the app via Inject.
func (a *App) Provide(key, value any) *App {
	a.context.Provides.Set(key, value)
	return a
}

// Mount renders the root component into rootContainer and returns the root
// instance. Mounting an app twice is a warning and returns the first root.
func (a *App) Mount(rootContainer vdom.HostNode) (*Instance, error) {
	if a.rootInstance != nil {
		a.warn("App has already been mounted.", a.rootInstance)
		return a.rootInstance, nil
	}
	if a.root == nil {
		return nil, errors.New("E007").WithDetail("app has no root component")
	}

	vnode := vdom.Comp(a.root)
	vnode.AppContext = a.context

	err := a.render(vnode, rootContainer, nil)
	inst, _ := vnode.Component().(*Instance)
	if err != nil {
		return inst, err
	}

	a.rootInstance = inst
	a.container = rootContainer
	a.logger.Debug("app mounted", "root", a.root.DisplayName(), "version", a.version)
	return inst, nil
}

// warn reports a non-fatal notice.
func (a *App) warn(msg string, inst *Instance) {
	if h := a.context.Config.WarnHandler; h != nil {
		h(msg, inst)
		return
	}
	a.logger.Warn(msg, "component", inst.Name())
}

// Resolve returns the component registered under name in the app of the
// component currently rendering or running Setup. It returns nil outside a
// component or when nothing is registered under name.
func Resolve(name string) *vdom.Definition {
	inst := CurrentRenderingInstance()
	if inst == nil {
		inst = CurrentInstance()
	}
	if inst == nil {
		return nil
	}
	return inst.appContext.Components[name]
}
