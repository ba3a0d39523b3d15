package tracing

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Span attribute keys for row operations.
const (
	AttrRowKey     = "row.action.key"
	AttrRowKind    = "row.action.kind"
	AttrRowIndex   = "row.index"
	AttrArrayAddr  = "array.address"
	AttrArrayCount = "array.count"
)

// SpanPrefixRow prefixes the span name of every row operation.
const SpanPrefixRow = "row."

// Operation identifies one row operation for its span.
type Operation struct {
	Key     string
	Kind    string
	Index   int
	Address string
	Count   int
}

// Traced wraps fn in a span named after op. A nil tracer returns fn
// unchanged.
func Traced(tracer trace.Tracer, op Operation, fn func(ctx context.Context) error) func(ctx context.Context) error {
	if tracer == nil || fn == nil {
		return fn
	}
	return func(ctx context.Context) error {
		ctx, span := tracer.Start(ctx, SpanPrefixRow+op.Key,
			trace.WithSpanKind(trace.SpanKindInternal),
			trace.WithAttributes(
				attribute.String(AttrRowKey, op.Key),
				attribute.String(AttrRowKind, op.Kind),
				attribute.Int(AttrRowIndex, op.Index),
				attribute.String(AttrArrayAddr, op.Address),
				attribute.Int(AttrArrayCount, op.Count),
			),
		)
		defer span.End()

		if err := fn(ctx); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return err
		}
		span.SetStatus(codes.Ok, "")
		return nil
	}
}
