package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"accounts/internal/core/port"
)

const tracerName = "accounts"

// OTELProbe implements port.Telemetry on top of OpenTelemetry.
type OTELProbe struct {
	logger *zap.Logger
}

func NewOTELProbe(logger *zap.Logger) port.Telemetry {
	return &OTELProbe{
		logger: logger,
	}
}

func (p *OTELProbe) StartRepositorySpan(ctx context.Context, operation string, entity string, attrs []attribute.KeyValue) (context.Context, trace.Span) {
	spanName := fmt.Sprintf("repository.%s.%s", entity, operation)

	standard := []attribute.KeyValue{
		attribute.String("repository.entity", entity),
		attribute.String("repository.operation", operation),
		attribute.String("component", "repository"),
	}
	standard = append(standard, attrs...)

	return otel.Tracer(tracerName).Start(ctx, spanName, trace.WithAttributes(standard...))
}

func (p *OTELProbe) StartServiceSpan(ctx context.Context, service string, operation string, attrs []attribute.KeyValue) (context.Context, trace.Span) {
	spanName := fmt.Sprintf("service.%s.%s", service, operation)

	standard := []attribute.KeyValue{
		attribute.String("service.name", service),
		attribute.String("service.operation", operation),
		attribute.String("component", "service"),
	}
	standard = append(standard, attrs...)

	return otel.Tracer(tracerName).Start(ctx, spanName, trace.WithAttributes(standard...))
}

func (p *OTELProbe) RecordRepositoryOperation(ctx context.Context, operation string, entity string, duration time.Duration, err error) {
	span := trace.SpanFromContext(ctx)

	span.SetAttributes(
		attribute.String("repository.entity", entity),
		attribute.String("repository.operation", operation),
		attribute.Int64("repository.duration_ms", duration.Milliseconds()),
	)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

func (p *OTELProbe) RecordServiceOperation(ctx context.Context, service string, operation string, duration time.Duration, err error) {
	span := trace.SpanFromContext(ctx)

	span.SetAttributes(
		attribute.String("service.name", service),
		attribute.String("service.operation", operation),
		attribute.Int64("service.duration_ms", duration.Milliseconds()),
	)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

func (p *OTELProbe) RecordError(ctx context.Context, operation string, err error, metadata map[string]interface{}) {
	span := trace.SpanFromContext(ctx)
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	if p.logger != nil {
		fields := []zap.Field{
			zap.String("operation", operation),
			zap.Error(err),
		}
		for key, value := range metadata {
			fields = append(fields, zap.Any(key, value))
		}
		p.logger.Error("operation failed", fields...)
	}
}
