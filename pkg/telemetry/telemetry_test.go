package telemetry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/Sumatoshi-tech/persist/pkg/telemetry"
)

func setupRecorder(t *testing.T) (*telemetry.Recorder, *sdkmetric.ManualReader, *tracetest.SpanRecorder) {
	t.Helper()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	meter := mp.Meter("test")

	spanRecorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spanRecorder))
	tracer := tp.Tracer("test")

	rec, err := telemetry.New(tracer, meter)
	require.NoError(t, err)

	return rec, reader, spanRecorder
}

func collectMetrics(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()

	var rm metricdata.ResourceMetrics

	require.NoError(t, reader.Collect(context.Background(), &rm))

	return rm
}

func findMetric(rm metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for idx := range rm.ScopeMetrics {
		for midx := range rm.ScopeMetrics[idx].Metrics {
			if rm.ScopeMetrics[idx].Metrics[midx].Name == name {
				return &rm.ScopeMetrics[idx].Metrics[midx]
			}
		}
	}

	return nil
}

func TestOperationRecordsSpanAndCounter(t *testing.T) {
	t.Parallel()

	rec, reader, spans := setupRecorder(t)

	ctx, done := rec.Operation(context.Background(), "avl", "insert")
	_ = ctx
	done()

	ended := spans.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "avl.insert", ended[0].Name())

	rm := collectMetrics(t, reader)
	ops := findMetric(rm, "persist.operations.total")
	require.NotNil(t, ops, "operations counter should exist")
}

func TestRecordRebalanceDepth(t *testing.T) {
	t.Parallel()

	rec, reader, _ := setupRecorder(t)

	rec.RecordRebalanceDepth(context.Background(), 3)

	rm := collectMetrics(t, reader)
	m := findMetric(rm, "persist.avl.rebalance_depth")
	require.NotNil(t, m)

	hist, ok := m.Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	require.NotEmpty(t, hist.DataPoints)
	assert.Equal(t, uint64(1), hist.DataPoints[0].Count)
}

func TestNilRecorderIsNoOp(t *testing.T) {
	t.Parallel()

	var rec *telemetry.Recorder

	ctx, done := rec.Operation(context.Background(), "plist", "push")
	done()

	assert.NotNil(t, ctx)

	assert.NotPanics(t, func() {
		rec.RecordRebalanceDepth(context.Background(), 1)
		rec.RecordTrieDepth(context.Background(), 1)
	})
}
