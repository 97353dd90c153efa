package runtime_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/vango-dev/vrender/pkg/runtime"
	"github.com/vango-dev/vrender/pkg/vdom"
	"github.com/vango-dev/vrender/pkg/vtest"
)

func emptyRoot() *vdom.Definition {
	return vdom.Define("Root", nil, func(vdom.Proxy) *vdom.VNode { return vdom.Div() })
}

func TestCreateAppContext(t *testing.T) {
	ctx := runtime.CreateAppContext()

	if ctx.App != nil {
		t.Error("expected no app")
	}
	if ctx.Config == nil || ctx.Config.GlobalProperties == nil {
		t.Error("expected config with global properties")
	}
	if ctx.Components == nil || ctx.Directives == nil || ctx.Provides == nil {
		t.Error("expected empty registries")
	}
	if len(ctx.Mixins) != 0 || len(ctx.Components) != 0 {
		t.Error("expected registries to start empty")
	}

	if runtime.CreateAppContext() == ctx {
		t.Error("expected a fresh context per call")
	}
}

func TestApp_ComponentRegistry(t *testing.T) {
	r, _ := newRenderer()
	app := r.CreateApp(emptyRoot())

	var warnings []string
	app.Config().WarnHandler = func(msg string, _ *runtime.Instance) {
		warnings = append(warnings, msg)
	}

	button := vdom.Define("Button", nil, nil)
	if got := app.RegisterComponent("Button", button); got != app {
		t.Error("expected RegisterComponent to return the app")
	}
	if app.Component("Button") != button {
		t.Error("expected registered definition back")
	}
	if app.Component("Missing") != nil {
		t.Error("expected nil for unknown name")
	}
	if app.Context().Components["Button"] != button {
		t.Error("expected registry to live on the context")
	}

	app.RegisterComponent("Button", vdom.Define("Button2", nil, nil))
	if len(warnings) != 1 {
		t.Errorf("expected a duplicate registration warning, got %v", warnings)
	}
}

func TestApp_ContextBackReference(t *testing.T) {
	r, _ := newRenderer()
	app := r.CreateApp(emptyRoot())

	if app.Context().App != app {
		t.Error("expected context to point back to its app")
	}
	if app.Version() != runtime.Version {
		t.Errorf("expected default version %s, got %s", runtime.Version, app.Version())
	}
}

func TestApp_MountTwice(t *testing.T) {
	r, host := newRenderer()
	app := r.CreateApp(emptyRoot())

	var warnings []string
	app.Config().WarnHandler = func(msg string, _ *runtime.Instance) {
		warnings = append(warnings, msg)
	}

	first, err := app.Mount(host.Root())
	if err != nil {
		t.Fatalf("mount: %v", err)
	}
	second, err := app.Mount(host.Root())
	if err != nil {
		t.Fatalf("second mount: %v", err)
	}

	if first != second || app.RootInstance() != first {
		t.Error("expected the first root instance back")
	}
	if len(host.Root().Children) != 1 {
		t.Errorf("expected a single mounted tree, got %s", vtest.Markup(host.Root()))
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "already been mounted") {
		t.Errorf("expected a remount warning, got %v", warnings)
	}
	if app.Container() != host.Root() {
		t.Error("expected container to be recorded")
	}
}

func TestApp_MountNilContainer(t *testing.T) {
	r, _ := newRenderer()
	_, err := r.CreateApp(emptyRoot()).Mount(nil)
	if !errors.Is(err, runtime.ErrNoContainer) {
		t.Errorf("expected ErrNoContainer, got %v", err)
	}
}

func TestProvideInject(t *testing.T) {
	r, host := newRenderer()
	type key string

	var (
		parentOwn    bool
		childUser    any
		childTheme   any
		siblingSees  bool
		fallback     any
		provideError error
	)

	child := vdom.Define("Child", func() any {
		childUser, _ = runtime.Inject(key("user"))
		childTheme, _ = runtime.Inject(key("theme"))
		fallback = runtime.InjectOr(key("missing"), "default")
		return nil
	}, func(vdom.Proxy) *vdom.VNode { return vdom.Span() })

	parent := vdom.Define("Parent", func() any {
		if err := runtime.Provide(key("user"), "ann"); err != nil {
			provideError = err
		}
		_, parentOwn = runtime.Inject(key("user"))
		return nil
	}, func(vdom.Proxy) *vdom.VNode { return vdom.Div(child) })

	sibling := vdom.Define("Sibling", func() any {
		_, siblingSees = runtime.Inject(key("user"))
		return nil
	}, func(vdom.Proxy) *vdom.VNode { return vdom.Span() })

	root := vdom.Define("Root", nil, func(vdom.Proxy) *vdom.VNode {
		return vdom.Main(parent, sibling)
	})

	app := r.CreateApp(root).Provide(key("theme"), "dark")
	if _, err := app.Mount(host.Root()); err != nil {
		t.Fatalf("mount: %v", err)
	}

	if provideError != nil {
		t.Fatalf("provide: %v", provideError)
	}
	if parentOwn {
		t.Error("expected a component not to inject its own provided value")
	}
	if childUser != "ann" {
		t.Errorf("expected child to inject ann, got %v", childUser)
	}
	if childTheme != "dark" {
		t.Errorf("expected child to inject app value dark, got %v", childTheme)
	}
	if fallback != "default" {
		t.Errorf("expected fallback, got %v", fallback)
	}
	if siblingSees {
		t.Error("expected sibling not to see parent's provided value")
	}
	if v, ok := app.Context().Provided(key("theme")); !ok || v != "dark" {
		t.Errorf("expected app context to expose provided value, got %v", v)
	}
}

func TestProvide_OutsideSetup(t *testing.T) {
	err := runtime.Provide("k", "v")
	if !errors.Is(err, runtime.ErrNoInstance) {
		t.Errorf("expected ErrNoInstance, got %v", err)
	}
	if _, ok := runtime.Inject("k"); ok {
		t.Error("expected Inject outside a component to find nothing")
	}
}

func TestProvides_Chain(t *testing.T) {
	root := runtime.NewProvides(nil)
	root.Set("a", 1)
	child := runtime.NewProvides(root)
	child.Set("b", 2)
	child.Set("a", 3)

	if v, _ := child.Lookup("a"); v != 3 {
		t.Errorf("expected shadowed value 3, got %v", v)
	}
	if v, _ := child.Lookup("b"); v != 2 {
		t.Errorf("expected 2, got %v", v)
	}
	if v, _ := root.Lookup("a"); v != 1 {
		t.Errorf("expected parent untouched, got %v", v)
	}
	if _, ok := root.Lookup("b"); ok {
		t.Error("expected parent not to see child values")
	}
	if child.Parent() != root {
		t.Error("expected parent link")
	}
}

func TestResolve(t *testing.T) {
	r, host := newRenderer()
	badge := vdom.Define("Badge", nil, func(vdom.Proxy) *vdom.VNode { return vdom.Span("new") })

	page := vdom.Define("Page", nil, func(vdom.Proxy) *vdom.VNode {
		return vdom.Div(runtime.Resolve("Badge"))
	})

	app := r.CreateApp(page).RegisterComponent("Badge", badge)
	if _, err := app.Mount(host.Root()); err != nil {
		t.Fatalf("mount: %v", err)
	}
	vtest.ExpectMarkup(t, host.Root(), "<root><div><span>new</span></div></root>")

	if runtime.Resolve("Badge") != nil {
		t.Error("expected nil outside a component")
	}
}
