package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"accounts/internal/core/port"
)

// NoOpProbe discards all telemetry. Used in tests and wherever no probe is
// wired.
type NoOpProbe struct {
	tracer trace.Tracer
}

func NewNoOpProbe() port.Telemetry {
	return &NoOpProbe{
		tracer: noop.NewTracerProvider().Tracer("noop"),
	}
}

func (p *NoOpProbe) StartRepositorySpan(ctx context.Context, operation string, entity string, attrs []attribute.KeyValue) (context.Context, trace.Span) {
	return p.tracer.Start(ctx, operation)
}

func (p *NoOpProbe) StartServiceSpan(ctx context.Context, service string, operation string, attrs []attribute.KeyValue) (context.Context, trace.Span) {
	return p.tracer.Start(ctx, operation)
}

func (p *NoOpProbe) RecordRepositoryOperation(ctx context.Context, operation string, entity string, duration time.Duration, err error) {
}

func (p *NoOpProbe) RecordServiceOperation(ctx context.Context, service string, operation string, duration time.Duration, err error) {
}

func (p *NoOpProbe) RecordError(ctx context.Context, operation string, err error, metadata map[string]interface{}) {
}
