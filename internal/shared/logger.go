package shared

import (
	"context"
	"fmt"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// AppLogger is the application logger: zap wrapped with otelzap so every
// entry written under a traced context carries trace and span ids.
type AppLogger struct {
	Logger      *otelzap.Logger
	serviceName string
}

func NewAppLogger(serviceName string) (*AppLogger, error) {
	config := zap.NewProductionConfig()
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.TimeKey = "timestamp"

	zapLogger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create zap logger: %w", err)
	}

	return &AppLogger{
		Logger:      otelzap.New(zapLogger),
		serviceName: serviceName,
	}, nil
}

// NewNopAppLogger returns a logger that discards everything, for tests.
func NewNopAppLogger() *AppLogger {
	return &AppLogger{
		Logger:      otelzap.New(zap.NewNop()),
		serviceName: "test",
	}
}

func (l *AppLogger) Sync() error {
	return l.Logger.Sync()
}

// Zap exposes the underlying zap logger for collaborators that do not log
// with a context.
func (l *AppLogger) Zap() *zap.Logger {
	return l.Logger.Logger
}

func (l *AppLogger) Info(ctx context.Context, msg string, fields ...zap.Field) {
	l.Logger.Ctx(ctx).Info(msg, l.withService(fields)...)
}

func (l *AppLogger) Warn(ctx context.Context, msg string, fields ...zap.Field) {
	l.Logger.Ctx(ctx).Warn(msg, l.withService(fields)...)
}

func (l *AppLogger) Error(ctx context.Context, msg string, fields ...zap.Field) {
	l.Logger.Ctx(ctx).Error(msg, l.withService(fields)...)
}

func (l *AppLogger) withService(fields []zap.Field) []zap.Field {
	return append(fields, zap.String("service", l.serviceName))
}
