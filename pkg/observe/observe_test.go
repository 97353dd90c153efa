package observe_test

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/vango-dev/vrender/pkg/observe"
	"github.com/vango-dev/vrender/pkg/runtime"
	"github.com/vango-dev/vrender/pkg/vdom"
	"github.com/vango-dev/vrender/pkg/vtest"
)

func TestMulti_OrderAndNil(t *testing.T) {
	var events []string
	rec := func(name string) runtime.Observer {
		return runtime.ObserverFunc(func(_ *runtime.Instance, phase runtime.Phase) func(error) {
			events = append(events, name+" begin "+string(phase))
			return func(error) { events = append(events, name+" end "+string(phase)) }
		})
	}
	silent := runtime.ObserverFunc(func(*runtime.Instance, runtime.Phase) func(error) { return nil })

	host := vtest.NewHost()
	r := runtime.CreateRenderer(host, runtime.WithObserver(observe.Multi(rec("a"), nil, silent, rec("b"))))
	def := vdom.Define("M", nil, func(vdom.Proxy) *vdom.VNode { return vdom.Div() })
	if err := r.Render(vdom.Comp(def), host.Root(), nil); err != nil {
		t.Fatalf("render: %v", err)
	}

	want := []string{
		"a begin setup", "b begin setup", "b end setup", "a end setup",
		"a begin mount", "b begin mount", "b end mount", "a end mount",
	}
	if strings.Join(events, "|") != strings.Join(want, "|") {
		t.Errorf("got %v\nwant %v", events, want)
	}
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	host := vtest.NewHost()
	r := runtime.CreateRenderer(host, runtime.WithLogger(logger), runtime.WithObserver(observe.Logging(logger)))

	ok := vdom.Define("Fine", nil, func(vdom.Proxy) *vdom.VNode { return vdom.Div() })
	if err := r.Render(vdom.Comp(ok), host.Root(), nil); err != nil {
		t.Fatalf("render: %v", err)
	}
	bad := vdom.Define("Bad", func() any { return errors.New("nope") }, ok.Render)
	if err := r.Render(vdom.Comp(bad), host.Root(), nil); err == nil {
		t.Fatal("expected setup error")
	}

	out := buf.String()
	for _, want := range []string{
		"msg=\"render step\" component=Fine",
		"phase=mount",
		"msg=\"render step failed\" component=Bad",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected log to contain %q\n%s", want, out)
		}
	}
}
