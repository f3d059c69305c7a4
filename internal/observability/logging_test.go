package observability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerAttachesTraceFields(t *testing.T) {
	tp := trace.NewTracerProvider()
	otel.SetTracerProvider(tp)
	tracer := tp.Tracer("logging-test")

	core, observed := observer.New(zap.InfoLevel)
	logger := &Logger{Logger: zap.New(core)}

	ctx, span := tracer.Start(context.Background(), "resolve-request")
	defer span.End()

	logger.Info(ctx, "request resolved", map[string]interface{}{"tier": "basic"})

	entries := observed.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "request resolved", entries[0].Message)

	fields := entries[0].ContextMap()
	assert.Equal(t, "basic", fields["tier"])
	assert.Equal(t, span.SpanContext().TraceID().String(), fields["trace_id"])
	assert.Equal(t, span.SpanContext().SpanID().String(), fields["span_id"])
}

func TestLoggerWithoutSpanOmitsTraceFields(t *testing.T) {
	core, observed := observer.New(zap.InfoLevel)
	logger := &Logger{Logger: zap.New(core)}

	logger.Info(context.Background(), "no active span", nil)

	entries := observed.All()
	require.Len(t, entries, 1)

	fields := entries[0].ContextMap()
	assert.NotContains(t, fields, "trace_id")
	assert.NotContains(t, fields, "span_id")
}
