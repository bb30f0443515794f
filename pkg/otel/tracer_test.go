package otel_test

import (
	"context"
	"errors"
	"testing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/easyops/datachat-go/pkg/otel"
)

func newTestTracer() *otel.OTelTracer {
	tp := sdktrace.NewTracerProvider()
	return otel.NewTracer(tp.Tracer("test"))
}

func TestTracerStartProducesValidSpanContext(t *testing.T) {
	tracer := newTestTracer()

	ctx, span := tracer.Start(context.Background(), "chat.turn")
	defer span.End()

	sc := span.SpanContext()
	if sc.TraceID == "" || sc.TraceID == "00000000000000000000000000000000" {
		t.Errorf("expected a valid trace id, got %q", sc.TraceID)
	}
	if sc.SpanID == "" || sc.SpanID == "0000000000000000" {
		t.Errorf("expected a valid span id, got %q", sc.SpanID)
	}
	if ctx == nil {
		t.Fatal("expected a non-nil context")
	}
}

func TestTracerNestedSpansShareTraceID(t *testing.T) {
	tracer := newTestTracer()

	ctx, parent := tracer.Start(context.Background(), "parent")
	defer parent.End()
	_, child := tracer.Start(ctx, "child")
	defer child.End()

	if parent.SpanContext().TraceID != child.SpanContext().TraceID {
		t.Error("child span must share the parent trace id")
	}
	if parent.SpanContext().SpanID == child.SpanContext().SpanID {
		t.Error("child span must have its own span id")
	}
}

func TestTracerSpanOptions(t *testing.T) {
	tracer := newTestTracer()

	_, span := tracer.Start(context.Background(), "llm.generate",
		otel.WithSpanKind(otel.SpanKindClient),
		otel.WithAttributes(otel.LLMProvider("gemini")),
	)

	span.AddEvent("first_chunk")
	span.SetAttributes(otel.ContextRows(12))
	span.RecordError(errors.New("stream interrupted"))
	span.SetStatus(otel.StatusError, "stream interrupted")
	span.End()
}

func TestTracerSpanFromContext(t *testing.T) {
	tracer := newTestTracer()

	ctx, span := tracer.Start(context.Background(), "chat.turn")
	defer span.End()

	got := tracer.SpanFromContext(ctx)
	if got.SpanContext().SpanID != span.SpanContext().SpanID {
		t.Error("SpanFromContext must return the active span")
	}
}

func TestNoopTracer(t *testing.T) {
	tracer := otel.NewNoopTracer()

	ctx, span := tracer.Start(context.Background(), "ignored")
	if ctx == nil {
		t.Fatal("noop tracer must still return a context")
	}

	span.SetStatus(otel.StatusOK, "")
	span.RecordError(errors.New("ignored"))
	span.End()

	if sc := span.SpanContext(); sc.TraceID != "" || sc.SpanID != "" {
		t.Errorf("noop span must have an empty span context, got %+v", sc)
	}
}
