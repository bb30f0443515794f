package otel_test

import (
	"context"
	"sync"
	"testing"

	"github.com/easyops/datachat-go/pkg/otel"
)

func TestInMemoryMetricsCounter(t *testing.T) {
	metrics := otel.NewInMemoryMetrics()
	counter := metrics.Counter(otel.MetricChatTurns)

	ctx := context.Background()
	counter.Add(ctx, 5)
	counter.Add(ctx, 3, otel.NewAttr("provider", "fake"))

	if value := metrics.GetCounterValue(otel.MetricChatTurns); value != 8 {
		t.Fatalf("expected counter value 8, got %d", value)
	}
}

func TestInMemoryMetricsSameInstrumentReturned(t *testing.T) {
	metrics := otel.NewInMemoryMetrics()

	first := metrics.Counter("same")
	second := metrics.Counter("same")

	ctx := context.Background()
	first.Add(ctx, 5)
	second.Add(ctx, 3)

	if value := metrics.GetCounterValue("same"); value != 8 {
		t.Fatalf("expected shared counter value 8, got %d", value)
	}
}

func TestInMemoryMetricsHistogram(t *testing.T) {
	metrics := otel.NewInMemoryMetrics()
	hist := metrics.Histogram(otel.MetricChatTurnDuration)

	ctx := context.Background()
	hist.Record(ctx, 12.5)
	hist.Record(ctx, 40)

	values := metrics.GetHistogramValues(otel.MetricChatTurnDuration)
	if len(values) != 2 || values[0] != 12.5 || values[1] != 40 {
		t.Fatalf("expected recorded values [12.5 40], got %v", values)
	}
}

func TestInMemoryMetricsUnknownNames(t *testing.T) {
	metrics := otel.NewInMemoryMetrics()

	if value := metrics.GetCounterValue("missing"); value != 0 {
		t.Errorf("expected 0 for unknown counter, got %d", value)
	}
	if values := metrics.GetHistogramValues("missing"); values != nil {
		t.Errorf("expected nil for unknown histogram, got %v", values)
	}
}

func TestInMemoryMetricsConcurrentAccess(t *testing.T) {
	metrics := otel.NewInMemoryMetrics()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				metrics.Counter("concurrent").Add(ctx, 1)
			}
		}()
	}
	wg.Wait()

	if value := metrics.GetCounterValue("concurrent"); value != 1000 {
		t.Fatalf("expected 1000, got %d", value)
	}
}

func TestNoopMetricsDoNotPanic(t *testing.T) {
	metrics := otel.NewNoopMetrics()
	ctx := context.Background()

	metrics.Counter("x").Add(ctx, 1, otel.NewAttr("k", "v"))
	metrics.Histogram("y").Record(ctx, 1.5)
}
