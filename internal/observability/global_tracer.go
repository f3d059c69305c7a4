package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var globalTracer trace.Tracer

// InitGlobalTracer initializes the global tracer for the application.
func InitGlobalTracer() {
	globalTracer = otel.Tracer("advice-backend")
}

// GetGlobalTracer returns the global tracer instance for the application.
func GetGlobalTracer() trace.Tracer {
	if globalTracer == nil {
		// Fallback to default tracer if not initialized
		globalTracer = otel.Tracer("advice-backend")
	}
	return globalTracer
}

// TraceFunction starts a new span with a descriptive name for the given service and function.
func TraceFunction(ctx context.Context, serviceName, functionName string, attributes ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := GetGlobalTracer()
	spanName := fmt.Sprintf("%s.%s", serviceName, functionName)
	return tracer.Start(ctx, spanName, trace.WithAttributes(attributes...))
}

// TraceFunctionWithErrorHandling starts a new span and automatically adds error attributes if the function panics or returns an error.
func TraceFunctionWithErrorHandling(ctx context.Context, serviceName, functionName string, fn func() error, attributes ...attribute.KeyValue) error {
	_, span := TraceFunction(ctx, serviceName, functionName, attributes...)
	defer func() {
		if err := recover(); err != nil {
			span.SetAttributes(
				attribute.Bool("error", true),
				attribute.String("error.type", "panic"),
				attribute.String("error.message", fmt.Sprintf("%v", err)),
			)
			span.End()
			panic(err) // re-panic
		}
	}()

	err := fn()
	if err != nil {
		span.SetAttributes(
			attribute.Bool("error", true),
			attribute.String("error.message", err.Error()),
		)
	}
	span.End()
	return err
}

// TraceRequestFunction starts a new span for a consultation request service function.
func TraceRequestFunction(ctx context.Context, functionName string, attributes ...attribute.KeyValue) (context.Context, trace.Span) {
	return TraceFunction(ctx, "request", functionName, attributes...)
}

// TraceLifecycleFunction starts a new span for a request lifecycle function.
func TraceLifecycleFunction(ctx context.Context, functionName string, attributes ...attribute.KeyValue) (context.Context, trace.Span) {
	return TraceFunction(ctx, "lifecycle", functionName, attributes...)
}

// TracePaymentFunction starts a new span for a payment service function.
func TracePaymentFunction(ctx context.Context, functionName string, attributes ...attribute.KeyValue) (context.Context, trace.Span) {
	return TraceFunction(ctx, "payment", functionName, attributes...)
}

// TraceEmailFunction starts a new span for an email service function.
func TraceEmailFunction(ctx context.Context, functionName string, attributes ...attribute.KeyValue) (context.Context, trace.Span) {
	return TraceFunction(ctx, "email", functionName, attributes...)
}

// TraceAIFunction starts a new span for an AI service function.
func TraceAIFunction(ctx context.Context, functionName string, attributes ...attribute.KeyValue) (context.Context, trace.Span) {
	return TraceFunction(ctx, "ai", functionName, attributes...)
}

// TraceAdminFunction starts a new span for an admin service function.
func TraceAdminFunction(ctx context.Context, functionName string, attributes ...attribute.KeyValue) (context.Context, trace.Span) {
	return TraceFunction(ctx, "admin", functionName, attributes...)
}

// TraceHandlerFunction starts a new span for a handler function.
func TraceHandlerFunction(ctx context.Context, functionName string, attributes ...attribute.KeyValue) (context.Context, trace.Span) {
	return TraceFunction(ctx, "handler", functionName, attributes...)
}

// TraceDatabaseFunction starts a new span for a database function.
func TraceDatabaseFunction(ctx context.Context, functionName string, attributes ...attribute.KeyValue) (context.Context, trace.Span) {
	return TraceFunction(ctx, "database", functionName, attributes...)
}

// AttributeRequestID returns a tracing attribute for a consultation request ID.
func AttributeRequestID(id string) attribute.KeyValue {
	return attribute.String("request.id", id)
}

// AttributeTier returns a tracing attribute for a service tier.
func AttributeTier(tier string) attribute.KeyValue {
	return attribute.String("request.tier", tier)
}

// AttributeStatus returns a tracing attribute for a request status.
func AttributeStatus(status string) attribute.KeyValue {
	return attribute.String("request.status", status)
}

// AttributeTopic returns a tracing attribute for a request topic.
func AttributeTopic(topic string) attribute.KeyValue {
	return attribute.String("request.topic", topic)
}

// AttributeCheckoutSessionID returns a tracing attribute for a checkout session ID.
func AttributeCheckoutSessionID(id string) attribute.KeyValue {
	return attribute.String("checkout.session_id", id)
}

// AttributeEmailScenario returns a tracing attribute for an email scenario name.
func AttributeEmailScenario(scenario string) attribute.KeyValue {
	return attribute.String("email.scenario", scenario)
}

// AttributeAdminUsername returns a tracing attribute for an admin username.
func AttributeAdminUsername(username string) attribute.KeyValue {
	return attribute.String("admin.username", username)
}

// AttributeLimit returns a tracing attribute for a limit value.
func AttributeLimit(limit int) attribute.KeyValue {
	return attribute.Int("limit", limit)
}
