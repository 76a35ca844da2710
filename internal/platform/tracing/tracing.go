// Package tracing configures the OpenTelemetry tracer provider
package tracing

import (
	"context"

	"orderexport/internal/platform/config"
	perr "orderexport/internal/platform/errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Config configures the tracing subsystem
type Config struct {
	Enabled      bool
	Exporter     string // none | stdout | otlp
	OTLPEndpoint string
	SampleRate   float64
	ServiceName  string
}

// FromConfig reads TRACING_* keys
func FromConfig(cfg config.Conf) Config {
	c := cfg.Prefix("TRACING_")
	return Config{
		Enabled:      c.MayBool("ENABLED", false),
		Exporter:     c.MayEnum("EXPORTER", "stdout", "none", "stdout", "otlp"),
		OTLPEndpoint: c.MayString("OTLP_ENDPOINT", "localhost:4317"),
		SampleRate:   c.MayFloat64("SAMPLE_RATE", 1.0),
		ServiceName:  c.MayString("SERVICE_NAME", "orderexport"),
	}
}

// Provider wraps the sdk provider; a disabled Provider hands out no-op tracers
type Provider struct {
	provider *sdktrace.TracerProvider
	tracer   trace.Tracer
}

// Option tweaks provider construction
type Option func(*[]sdktrace.TracerProviderOption)

// WithSyncer exports spans synchronously through exp; tests use it with tracetest recorders
func WithSyncer(exp sdktrace.SpanExporter) Option {
	return func(o *[]sdktrace.TracerProviderOption) { *o = append(*o, sdktrace.WithSyncer(exp)) }
}

// WithSpanProcessor attaches an extra span processor
func WithSpanProcessor(sp sdktrace.SpanProcessor) Option {
	return func(o *[]sdktrace.TracerProviderOption) { *o = append(*o, sdktrace.WithSpanProcessor(sp)) }
}

// NewProvider builds the provider and installs it globally when enabled
func NewProvider(ctx context.Context, cfg Config, opts ...Option) (*Provider, error) {
	name := cfg.ServiceName
	if name == "" {
		name = "orderexport"
	}
	if !cfg.Enabled {
		return &Provider{tracer: noop.NewTracerProvider().Tracer(name)}, nil
	}

	var exporter sdktrace.SpanExporter
	var err error
	switch cfg.Exporter {
	case "stdout":
		exporter, err = stdouttrace.New()
	case "otlp":
		endpoint := cfg.OTLPEndpoint
		if endpoint == "" {
			endpoint = "localhost:4317"
		}
		exporter, err = otlptracegrpc.New(ctx,
			otlptracegrpc.WithEndpoint(endpoint),
			otlptracegrpc.WithInsecure(),
		)
	case "none", "":
	default:
		return nil, perr.Configf("unsupported trace exporter %q", cfg.Exporter)
	}
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeConfig, "create %s exporter", cfg.Exporter)
	}

	rate := cfg.SampleRate
	if rate <= 0 {
		rate = 1.0
	}

	po := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(resource.NewSchemaless(attribute.String("service.name", name))),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(rate))),
	}
	if exporter != nil {
		po = append(po, sdktrace.WithBatcher(exporter))
	}
	for _, o := range opts {
		o(&po)
	}

	tp := sdktrace.NewTracerProvider(po...)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return &Provider{provider: tp, tracer: tp.Tracer(name)}, nil
}

// Tracer returns the tracer; safe on a disabled provider
func (p *Provider) Tracer() trace.Tracer { return p.tracer }

// Enabled reports whether spans are recorded
func (p *Provider) Enabled() bool { return p.provider != nil }

// Shutdown flushes pending spans
func (p *Provider) Shutdown(ctx context.Context) error {
	if p.provider == nil {
		return nil
	}
	return p.provider.Shutdown(ctx)
}
