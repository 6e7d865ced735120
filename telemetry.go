package llmschema

import (
	"context"
	"reflect"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/felixgeelhaar/llmschema/schema"
)

const instrumentationName = "github.com/felixgeelhaar/llmschema"

// TelemetryOption configures the OpenTelemetry instrumentation.
type TelemetryOption func(*telemetryConfig)

type telemetryConfig struct {
	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider
}

// WithTracerProvider sets a custom tracer provider.
func WithTracerProvider(tp trace.TracerProvider) TelemetryOption {
	return func(c *telemetryConfig) {
		c.tracerProvider = tp
	}
}

// WithMeterProvider sets a custom meter provider.
func WithMeterProvider(mp metric.MeterProvider) TelemetryOption {
	return func(c *telemetryConfig) {
		c.meterProvider = mp
	}
}

// Telemetry instruments schema generation with OpenTelemetry traces and
// metrics. It creates a span per generation call and records generation
// counts, errors, and latency.
type Telemetry struct {
	tracer      trace.Tracer
	genCounter  metric.Int64Counter
	errCounter  metric.Int64Counter
	genDuration metric.Float64Histogram
}

// NewTelemetry creates instrumentation using the given providers,
// defaulting to the globals.
func NewTelemetry(opts ...TelemetryOption) *Telemetry {
	cfg := &telemetryConfig{
		tracerProvider: otel.GetTracerProvider(),
		meterProvider:  otel.GetMeterProvider(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	tracer := cfg.tracerProvider.Tracer(instrumentationName)
	meter := cfg.meterProvider.Meter(instrumentationName)

	genCounter, _ := meter.Int64Counter(
		"llmschema.generations",
		metric.WithDescription("Total number of schema generation calls"),
		metric.WithUnit("{call}"),
	)
	errCounter, _ := meter.Int64Counter(
		"llmschema.errors",
		metric.WithDescription("Total number of failed schema generation calls"),
		metric.WithUnit("{error}"),
	)
	genDuration, _ := meter.Float64Histogram(
		"llmschema.generation.duration",
		metric.WithDescription("Duration of schema generation calls"),
		metric.WithUnit("ms"),
	)

	return &Telemetry{
		tracer:      tracer,
		genCounter:  genCounter,
		errCounter:  errCounter,
		genDuration: genDuration,
	}
}

// Generate is the instrumented form of Generate.
func (t *Telemetry) Generate(ctx context.Context, rt reflect.Type, opts ...Option) (Container, error) {
	return t.record(ctx, rt.String(), opts, func() (Container, error) {
		return schema.Generate(rt, opts...)
	})
}

// GenerateFunc is the instrumented form of GenerateFunc.
func (t *Telemetry) GenerateFunc(ctx context.Context, c *Callable, opts ...Option) (Container, error) {
	return t.record(ctx, c.Name(), opts, func() (Container, error) {
		return schema.GenerateFunc(c, opts...)
	})
}

func (t *Telemetry) record(ctx context.Context, subject string, opts []Option, generate func() (Container, error)) (Container, error) {
	adapter := schema.NewSettings(opts...).Adapter().String()

	ctx, span := t.tracer.Start(ctx, "llmschema.generate",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("llmschema.subject", subject),
			attribute.String("llmschema.adapter", adapter),
		),
	)
	defer span.End()

	attrs := []attribute.KeyValue{
		attribute.String("llmschema.adapter", adapter),
	}

	start := time.Now()
	out, err := generate()
	duration := float64(time.Since(start).Microseconds()) / 1000.0

	t.genCounter.Add(ctx, 1, metric.WithAttributes(attrs...))
	t.genDuration.Record(ctx, duration, metric.WithAttributes(attrs...))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		t.errCounter.Add(ctx, 1, metric.WithAttributes(attrs...))
		return nil, err
	}

	span.SetStatus(codes.Ok, "")
	return out, nil
}
