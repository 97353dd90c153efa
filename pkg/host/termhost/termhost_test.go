package termhost_test

import (
	"strings"
	"testing"

	"github.com/vango-dev/vrender/pkg/host/termhost"
	"github.com/vango-dev/vrender/pkg/reactive"
	"github.com/vango-dev/vrender/pkg/runtime"
	"github.com/vango-dev/vrender/pkg/vdom"
)

func mount(t *testing.T, def *vdom.Definition) *termhost.Host {
	t.Helper()
	host := termhost.New(termhost.PlainTheme())
	if _, err := runtime.CreateRenderer(host).CreateApp(def).Mount(host.Root()); err != nil {
		t.Fatalf("mount: %v", err)
	}
	return host
}

func TestView_Document(t *testing.T) {
	host := mount(t, vdom.Define("Doc", nil, func(vdom.Proxy) *vdom.VNode {
		return vdom.Div(
			vdom.H1("Title"),
			vdom.P("intro"),
			vdom.Ul(vdom.Li("apples"), vdom.Li("pears")),
			vdom.Ol(vdom.Li("first"), vdom.Li("second")),
			vdom.Button("OK"),
		)
	}))

	want := strings.Join([]string{
		"Title",
		"intro",
		"• apples",
		"• pears",
		"1. first",
		"2. second",
		"[ OK ]",
	}, "\n")
	if got := host.View(host.Root()); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestView_NestedLists(t *testing.T) {
	host := mount(t, vdom.Define("Nested", nil, func(vdom.Proxy) *vdom.VNode {
		return vdom.Ul(
			vdom.Li("outer"),
			vdom.Ul(vdom.Li("inner")),
		)
	}))

	want := "• outer\n  • inner"
	if got := host.View(host.Root()); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestView_ReactiveUpdate(t *testing.T) {
	count := reactive.NewSignal(0)
	host := mount(t, vdom.Define("Counter", func() any {
		return map[string]any{"count": count}
	}, func(p vdom.Proxy) *vdom.VNode {
		return vdom.Textf("p", "count %d", p.Get("count"))
	}))

	count.Set(3)
	if got := host.View(host.Root()); got != "count 3" {
		t.Errorf("unexpected view %q", got)
	}
}

func TestOutline(t *testing.T) {
	host := mount(t, vdom.Define("Tree", nil, func(vdom.Proxy) *vdom.VNode {
		return vdom.Section(vdom.H2("head"), vdom.Element("hr"))
	}))

	want := "<screen>\n  <section>\n    <h2> head\n    <hr>\n"
	if got := host.Outline(host.Root()); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestDefaultTheme_RendersText(t *testing.T) {
	host := termhost.New(termhost.DefaultTheme())
	if _, err := runtime.CreateRenderer(host).CreateApp(vdom.Define("T", nil, func(vdom.Proxy) *vdom.VNode {
		return vdom.H1("styled")
	})).Mount(host.Root()); err != nil {
		t.Fatalf("mount: %v", err)
	}

	if out := host.Framed(host.Root()); !strings.Contains(out, "styled") {
		t.Errorf("expected framed view to contain the text, got %q", out)
	}
}
