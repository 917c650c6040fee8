package port

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Telemetry lets the core emit spans and timing events without knowing the
// backend. Repositories and services receive it through their constructors;
// tests pass the no-op probe.
type Telemetry interface {
	StartRepositorySpan(ctx context.Context, operation string, entity string, attrs []attribute.KeyValue) (context.Context, trace.Span)
	StartServiceSpan(ctx context.Context, service string, operation string, attrs []attribute.KeyValue) (context.Context, trace.Span)

	RecordRepositoryOperation(ctx context.Context, operation string, entity string, duration time.Duration, err error)
	RecordServiceOperation(ctx context.Context, service string, operation string, duration time.Duration, err error)
	RecordError(ctx context.Context, operation string, err error, metadata map[string]interface{})
}
