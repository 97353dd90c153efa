package observe

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/vrender/pkg/runtime"
)

// Default tracer name for vrender spans.
const defaultTracerName = "vrender"

// OTelConfig configures the OpenTelemetry observer.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "vrender").
	TracerName string

	// Tracer overrides the tracer from the global provider.
	Tracer trace.Tracer

	// Root is the context spans without an enclosing step are started in.
	// Default: context.Background()
	Root context.Context

	// Filter determines which components are traced.
	// If nil, all are traced.
	Filter func(inst *runtime.Instance, phase runtime.Phase) bool

	// AttributeExtractor adds custom attributes to each span.
	AttributeExtractor func(inst *runtime.Instance) []attribute.KeyValue
}

// OTelOption configures the OpenTelemetry observer.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithTracer sets the tracer directly.
func WithTracer(tracer trace.Tracer) OTelOption {
	return func(c *OTelConfig) {
		c.Tracer = tracer
	}
}

// WithRootContext sets the context top-level spans are parented to.
func WithRootContext(ctx context.Context) OTelOption {
	return func(c *OTelConfig) {
		c.Root = ctx
	}
}

// WithFilter sets a filter function for traced steps.
func WithFilter(filter func(inst *runtime.Instance, phase runtime.Phase) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(inst *runtime.Instance) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

func defaultOTelConfig() OTelConfig {
	return OTelConfig{
		TracerName: defaultTracerName,
		Root:       context.Background(),
	}
}

// OpenTelemetry creates an observer that traces every step. Steps that
// begin while another is open become its children.
func OpenTelemetry(opts ...OTelOption) runtime.Observer {
	config := defaultOTelConfig()
	for _, opt := range opts {
		opt(&config)
	}
	if config.Tracer == nil {
		config.Tracer = otel.Tracer(config.TracerName)
	}
	if config.Root == nil {
		config.Root = context.Background()
	}

	t := &tracer{config: config}
	return runtime.ObserverFunc(t.begin)
}

type tracer struct {
	config OTelConfig

	mu    sync.Mutex
	stack []context.Context
}

func (t *tracer) begin(inst *runtime.Instance, phase runtime.Phase) func(error) {
	if t.config.Filter != nil && !t.config.Filter(inst, phase) {
		return nil
	}

	attrs := []attribute.KeyValue{
		attribute.String("vrender.component", inst.Name()),
		attribute.Int64("vrender.uid", int64(inst.UID())),
		attribute.String("vrender.phase", string(phase)),
	}
	if parent := inst.Parent(); parent != nil {
		attrs = append(attrs, attribute.String("vrender.parent", parent.Name()))
	}
	if t.config.AttributeExtractor != nil {
		attrs = append(attrs, t.config.AttributeExtractor(inst)...)
	}

	t.mu.Lock()
	parent := t.config.Root
	if len(t.stack) > 0 {
		parent = t.stack[len(t.stack)-1]
	}
	ctx, span := t.config.Tracer.Start(parent,
		fmt.Sprintf("vrender.%s %s", phase, inst.Name()),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
	t.stack = append(t.stack, ctx)
	depth := len(t.stack)
	t.mu.Unlock()

	return func(err error) {
		t.mu.Lock()
		if len(t.stack) >= depth {
			t.stack = t.stack[:depth-1]
		}
		t.mu.Unlock()

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.SetAttributes(attribute.Int("vrender.renders", inst.Renders()))
		span.End()
	}
}
