package telemetry

import (
	"context"
	"io"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/odvcencio/intes/pkg/errors"
)

const tracerName = "github.com/odvcencio/intes/pkg/signal"

// Tracing exports signal spans as JSON to a writer.
type Tracing struct {
	provider *sdktrace.TracerProvider
}

// NewTracing batches spans to w and installs the provider globally. Spans
// carry the run id so traces from several runs can share one file.
func NewTracing(w io.Writer, version, runID string) (*Tracing, error) {
	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "create trace exporter")
	}

	res := resource.NewSchemaless(
		semconv.ServiceNameKey.String("intes"),
		semconv.ServiceVersionKey.String(version),
		attribute.String("intes.run_id", runID),
	)

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	otel.SetTracerProvider(provider)

	return &Tracing{provider: provider}, nil
}

// Tracer returns the tracer signal buses record with.
func (t *Tracing) Tracer() trace.Tracer {
	return t.provider.Tracer(tracerName)
}

// Shutdown flushes pending spans and stops the exporter.
func (t *Tracing) Shutdown(ctx context.Context) error {
	if err := t.provider.Shutdown(ctx); err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "shut down tracing")
	}
	return nil
}
