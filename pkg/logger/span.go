package logger

import (
	"context"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// SpanLogger is a trace span processor writing every finished span to a zap
// logger. Successful spans are logged at debug level, failed ones at warn.
type SpanLogger struct {
	logger *zap.Logger
}

var _ sdktrace.SpanProcessor = (*SpanLogger)(nil)

// NewSpanLogger creates a SpanLogger writing to l.
func NewSpanLogger(l *zap.Logger) *SpanLogger {
	return &SpanLogger{logger: l}
}

// OnStart is a no-op; spans are logged once they end.
func (p *SpanLogger) OnStart(context.Context, sdktrace.ReadWriteSpan) {}

// OnEnd logs the finished span with its identifiers, duration, status and attributes.
func (p *SpanLogger) OnEnd(s sdktrace.ReadOnlySpan) {
	level := zapcore.DebugLevel
	if s.Status().Code == codes.Error {
		level = zapcore.WarnLevel
	}
	ce := p.logger.Check(level, "span finished")
	if ce == nil {
		return
	}

	fields := make([]zapcore.Field, 0, 6+len(s.Attributes()))
	fields = append(fields,
		zap.String("span", s.Name()),
		zap.String("trace_id", s.SpanContext().TraceID().String()),
		zap.String("span_id", s.SpanContext().SpanID().String()),
		zap.Duration("took", s.EndTime().Sub(s.StartTime())),
		zap.String("status", s.Status().Code.String()),
	)
	if s.Parent().IsValid() {
		fields = append(fields, zap.String("parent_id", s.Parent().SpanID().String()))
	}
	if d := s.Status().Description; d != "" {
		fields = append(fields, zap.String("status_description", d))
	}
	for _, kv := range s.Attributes() {
		fields = append(fields, zap.String("attr."+string(kv.Key), kv.Value.Emit()))
	}
	ce.Write(fields...)
}

// Shutdown flushes the underlying logger.
func (p *SpanLogger) Shutdown(context.Context) error {
	_ = p.logger.Sync()

	return nil
}

// ForceFlush is a no-op; entries are written as spans end.
func (p *SpanLogger) ForceFlush(context.Context) error {
	return nil
}
