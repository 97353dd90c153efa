// Package observe provides render observers for metrics, tracing and logs.
//
// Observers are installed on a renderer and are called around every
// component setup, first mount and reactive update:
//
//	r := runtime.CreateRenderer(host, runtime.WithObserver(observe.Multi(
//	    observe.Prometheus(observe.WithNamespace("myapp")),
//	    observe.OpenTelemetry(observe.WithTracerName("myapp")),
//	    observe.Logging(logger),
//	)))
//
// # Prometheus
//
// Metrics collected:
//   - vrender_renders_total: counter by component, phase and status
//   - vrender_render_duration_seconds: histogram by component and phase
//   - vrender_render_errors_total: counter by component and error code
//   - vrender_mounted_components: gauge of successfully mounted components
//
// Expose them with promhttp:
//
//	http.Handle("/metrics", promhttp.Handler())
//
// # OpenTelemetry
//
// Each step becomes a span named "vrender.<phase> <Component>". Nested
// component mounts produce nested spans. The tracer comes from the global
// provider unless WithTracer is given.
package observe
