package observe_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/vango-dev/vrender/pkg/observe"
	"github.com/vango-dev/vrender/pkg/reactive"
	"github.com/vango-dev/vrender/pkg/runtime"
	"github.com/vango-dev/vrender/pkg/vdom"
	"github.com/vango-dev/vrender/pkg/vtest"
)

// gather returns the metric families of reg keyed by name.
func gather(t *testing.T, reg *prometheus.Registry) map[string]*dto.MetricFamily {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	out := make(map[string]*dto.MetricFamily, len(families))
	for _, f := range families {
		out[f.GetName()] = f
	}
	return out
}

// counterValue sums the samples of family whose labels include want.
func counterValue(f *dto.MetricFamily, want map[string]string) float64 {
	if f == nil {
		return 0
	}
	var total float64
	for _, m := range f.GetMetric() {
		if matches(m, want) {
			total += m.GetCounter().GetValue()
		}
	}
	return total
}

func matches(m *dto.Metric, want map[string]string) bool {
	found := 0
	for _, lp := range m.GetLabel() {
		if v, ok := want[lp.GetName()]; ok && v == lp.GetValue() {
			found++
		}
	}
	return found == len(want)
}

func TestPrometheus_RecordsSteps(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs := observe.Prometheus(observe.WithRegistry(reg), observe.WithNamespace("test"))

	host := vtest.NewHost()
	r := runtime.CreateRenderer(host, runtime.WithObserver(obs))

	n := reactive.NewSignal(0)
	def := vdom.Define("Counter", func() any {
		return map[string]any{"n": n}
	}, func(p vdom.Proxy) *vdom.VNode {
		if p.Get("n").(int) > 1 {
			return vdom.Span("too big")
		}
		return vdom.Textf("p", "%d", p.Get("n"))
	})

	app := r.CreateApp(def)
	app.Config().ErrorHandler = func(error, *runtime.Instance, string) {}
	if _, err := app.Mount(host.Root()); err != nil {
		t.Fatalf("mount: %v", err)
	}
	n.Set(1)
	n.Set(2)

	families := gather(t, reg)
	total := families["test_renders_total"]

	tests := []struct {
		labels map[string]string
		want   float64
	}{
		{map[string]string{"component": "Counter", "phase": "setup", "status": "success"}, 1},
		{map[string]string{"component": "Counter", "phase": "mount", "status": "success"}, 1},
		{map[string]string{"component": "Counter", "phase": "update", "status": "success"}, 1},
		{map[string]string{"component": "Counter", "phase": "update", "status": "error"}, 1},
	}
	for _, tt := range tests {
		if got := counterValue(total, tt.labels); got != tt.want {
			t.Errorf("renders_total%v = %v, want %v", tt.labels, got, tt.want)
		}
	}

	errs := families["test_render_errors_total"]
	if got := counterValue(errs, map[string]string{"code": "E001"}); got != 1 {
		t.Errorf("expected 1 E001 error, got %v", got)
	}

	gauge := families["test_mounted_components"]
	if gauge == nil || gauge.GetMetric()[0].GetGauge().GetValue() != 1 {
		t.Error("expected one mounted component")
	}

	if families["test_render_duration_seconds"] == nil {
		t.Error("expected duration histogram")
	}
}
