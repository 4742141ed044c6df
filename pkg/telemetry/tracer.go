package telemetry

import (
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// NewTracerProvider returns a TracerProvider with an always-sample sampler
// and no span processor attached: spans are created and recorded in-memory
// but never exported anywhere. Call RegisterSpanProcessor on the result (or
// construct the provider directly) to wire an exporter. The pstore CLI
// builds this provider only when telemetry is enabled and attaches no
// exporter, so its spans are never exported.
func NewTracerProvider(serviceName string) *sdktrace.TracerProvider {
	res := resource.NewSchemaless(semconv.ServiceNameKey.String(serviceName))

	return sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithResource(res),
	)
}
