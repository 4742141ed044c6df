// Package telemetry provides OpenTelemetry tracing and metrics for the
// persist container operations: instruments built once from a Meter, a
// builder that batches instrument-creation errors into one check, and a
// recorder whose methods are safe to call on a nil receiver so
// instrumentation is a true no-op when telemetry is disabled.
package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const (
	metricOperationsTotal = "persist.operations.total"
	metricOperationLatency = "persist.operation.duration.seconds"
	metricRebalanceDepth  = "persist.avl.rebalance_depth"
	metricTrieDepth       = "persist.phamt.trie_depth"

	attrContainer = "container"
	attrOp        = "op"
)

// metricBuilder accumulates OTel instrument creation errors, enabling batch
// construction with a single error check.
type metricBuilder struct {
	meter metric.Meter
	err   error
}

func newMetricBuilder(mt metric.Meter) *metricBuilder {
	return &metricBuilder{meter: mt}
}

func (b *metricBuilder) counter(name, desc, unit string) metric.Int64Counter {
	c, err := b.meter.Int64Counter(name, metric.WithDescription(desc), metric.WithUnit(unit))
	b.setErr(name, err)

	return c
}

func (b *metricBuilder) histogram(name, desc, unit string) metric.Float64Histogram {
	h, err := b.meter.Float64Histogram(name, metric.WithDescription(desc), metric.WithUnit(unit))
	b.setErr(name, err)

	return h
}

func (b *metricBuilder) setErr(name string, err error) {
	if err != nil && b.err == nil {
		b.err = fmt.Errorf("create %s: %w", name, err)
	}
}

// Recorder holds the OTel instruments and tracer used to instrument
// container operations. A nil *Recorder is a valid no-op recorder, so
// callers that never configured telemetry can pass one around unconditionally.
type Recorder struct {
	tracer  trace.Tracer
	ops     metric.Int64Counter
	latency metric.Float64Histogram
	rebal   metric.Float64Histogram
	trie    metric.Float64Histogram
}

// New builds a Recorder from the given tracer and meter. Passing a no-op
// tracer/meter (the OTel SDK defaults when no provider is registered)
// yields a Recorder whose calls are cheap no-ops.
func New(tracer trace.Tracer, mt metric.Meter) (*Recorder, error) {
	b := newMetricBuilder(mt)

	r := &Recorder{
		tracer:  tracer,
		ops:     b.counter(metricOperationsTotal, "Total container operations performed", "{operation}"),
		latency: b.histogram(metricOperationLatency, "Per-operation duration in seconds", "s"),
		rebal:   b.histogram(metricRebalanceDepth, "AVL rebalance recursion depth observed per insert/remove", "{level}"),
		trie:    b.histogram(metricTrieDepth, "HAMT trie depth observed per insert/remove", "{level}"),
	}

	if b.err != nil {
		return nil, b.err
	}

	return r, nil
}

// Operation starts a span named container.op and returns a func to call
// when the operation completes, which records the span end, the operation
// counter, and its latency. Safe to call on a nil receiver.
func (r *Recorder) Operation(ctx context.Context, container, op string) (context.Context, func()) {
	if r == nil {
		return ctx, func() {}
	}

	attrs := metric.WithAttributes(
		attribute.String(attrContainer, container),
		attribute.String(attrOp, op),
	)

	ctx, span := r.tracer.Start(ctx, container+"."+op)
	start := time.Now()

	return ctx, func() {
		span.End()
		r.ops.Add(ctx, 1, attrs)
		r.latency.Record(ctx, time.Since(start).Seconds(), attrs)
	}
}

// RecordRebalanceDepth records how many rebalance frames an AVL insert or
// remove walked through. Safe to call on a nil receiver.
func (r *Recorder) RecordRebalanceDepth(ctx context.Context, depth int) {
	if r == nil {
		return
	}

	r.rebal.Record(ctx, float64(depth))
}

// RecordTrieDepth records how many trie levels a HAMT operation descended
// through. Safe to call on a nil receiver.
func (r *Recorder) RecordTrieDepth(ctx context.Context, depth int) {
	if r == nil {
		return
	}

	r.trie.Record(ctx, float64(depth))
}
