package llmschema

import (
	"context"
	"reflect"
	"testing"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/felixgeelhaar/llmschema/signature"
)

type tracedInput struct {
	Text string `json:"text"`
}

func newTestTelemetry() (*Telemetry, *tracetest.InMemoryExporter, *sdkmetric.ManualReader) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	return NewTelemetry(WithTracerProvider(tp), WithMeterProvider(mp)), exporter, reader
}

func counterValue(t *testing.T, reader *sdkmetric.ManualReader, name string) int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("collect metrics: %v", err)
	}
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				t.Fatalf("metric %q has data %T, want Sum[int64]", name, m.Data)
			}
			var total int64
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
			return total
		}
	}
	return 0
}

func TestTelemetryGenerate(t *testing.T) {
	t.Run("records a span per generation", func(t *testing.T) {
		tel, exporter, _ := newTestTelemetry()

		_, err := tel.Generate(context.Background(), reflect.TypeFor[tracedInput]())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		spans := exporter.GetSpans()
		if len(spans) != 1 {
			t.Fatalf("recorded %d spans, want 1", len(spans))
		}
		if spans[0].Name != "llmschema.generate" {
			t.Errorf("span name = %q, want %q", spans[0].Name, "llmschema.generate")
		}

		attrs := make(map[string]string)
		for _, kv := range spans[0].Attributes {
			attrs[string(kv.Key)] = kv.Value.AsString()
		}
		if attrs["llmschema.adapter"] != "standard" {
			t.Errorf("llmschema.adapter = %q, want %q", attrs["llmschema.adapter"], "standard")
		}
		if attrs["llmschema.subject"] == "" {
			t.Error("expected llmschema.subject attribute")
		}
	})

	t.Run("counts generations", func(t *testing.T) {
		tel, _, reader := newTestTelemetry()

		for i := 0; i < 3; i++ {
			if _, err := tel.Generate(context.Background(), reflect.TypeFor[tracedInput]()); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}

		if got := counterValue(t, reader, "llmschema.generations"); got != 3 {
			t.Errorf("llmschema.generations = %d, want 3", got)
		}
		if got := counterValue(t, reader, "llmschema.errors"); got != 0 {
			t.Errorf("llmschema.errors = %d, want 0", got)
		}
	})

	t.Run("records errors on failed generation", func(t *testing.T) {
		tel, exporter, reader := newTestTelemetry()

		reg := NewRegistry()
		reg.RegisterType(reflect.TypeFor[tracedInput](), &Annotation{
			Name: "tracedInput",
			Parameters: map[string]*Annotation{
				"nonexistent": {Description: "no such field"},
			},
		})

		_, err := tel.Generate(context.Background(), reflect.TypeFor[tracedInput](),
			WithRegistry(reg))
		if err == nil {
			t.Fatal("expected generation error")
		}

		if got := counterValue(t, reader, "llmschema.errors"); got != 1 {
			t.Errorf("llmschema.errors = %d, want 1", got)
		}

		spans := exporter.GetSpans()
		if len(spans) != 1 {
			t.Fatalf("recorded %d spans, want 1", len(spans))
		}
		if len(spans[0].Events) == 0 {
			t.Error("expected a recorded error event on the span")
		}
	})

	t.Run("instruments function generation", func(t *testing.T) {
		tel, exporter, _ := newTestTelemetry()

		c, err := signature.Of("lookup",
			func(key string) string { return "" }, "key").Callable()
		if err != nil {
			t.Fatalf("build callable: %v", err)
		}

		if _, err := tel.GenerateFunc(context.Background(), c, WithAdapter(OpenAITools)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		spans := exporter.GetSpans()
		if len(spans) != 1 {
			t.Fatalf("recorded %d spans, want 1", len(spans))
		}
		attrs := make(map[string]string)
		for _, kv := range spans[0].Attributes {
			attrs[string(kv.Key)] = kv.Value.AsString()
		}
		if attrs["llmschema.subject"] != "lookup" {
			t.Errorf("llmschema.subject = %q, want %q", attrs["llmschema.subject"], "lookup")
		}
		if attrs["llmschema.adapter"] != "openai_tools" {
			t.Errorf("llmschema.adapter = %q, want %q", attrs["llmschema.adapter"], "openai_tools")
		}
	})
}
