package resource

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// loadTracer is the tracer a resource emits load spans to.
type loadTracer = trace.Tracer

// Tracer returns a tracer for resource load spans from the global
// provider.
func Tracer() loadTracer {
	return otel.Tracer("solid-alien-signals/resource")
}

// beginLoad starts the per-load observation (metrics timer, span) and
// returns the closer invoked at finalization. applied=false marks a
// completion that was superseded and discarded.
func (r *Resource[T]) beginLoad(refetching any) func(err error, applied bool) {
	if r.metrics == nil && r.tracer == nil {
		return func(error, bool) {}
	}

	start := time.Now()

	var span trace.Span
	if r.tracer != nil {
		_, span = r.tracer.Start(context.Background(), "resource.load",
			trace.WithAttributes(
				attribute.String("resource.name", r.name),
				attribute.Bool("resource.refetch", isRefetch(refetching)),
			))
	}

	return func(err error, applied bool) {
		if r.metrics != nil {
			result := "success"
			switch {
			case !applied:
				result = "stale"
			case err != nil:
				result = "error"
			}
			r.metrics.loads.WithLabelValues(r.name, result).Inc()
			r.metrics.duration.WithLabelValues(r.name).Observe(time.Since(start).Seconds())
		}

		if span != nil {
			switch {
			case !applied:
				span.AddEvent("superseded")
			case err != nil:
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			default:
				span.SetStatus(codes.Ok, "")
			}
			span.End()
		}
	}
}
