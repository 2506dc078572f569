package tracing

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Database span attributes
const (
	DBSystemKey    = attribute.Key("db.system")
	DBOperationKey = attribute.Key("db.operation")
	DBTableKey     = attribute.Key("db.sql.table")
)

// Booking platform span attributes
const (
	ServiceTypeKey   = attribute.Key("booking.service_type")
	FeeIDKey         = attribute.Key("billing.fee_id")
	AmountKey        = attribute.Key("billing.amount")
	FeePercentageKey = attribute.Key("billing.fee_percentage")
	PartnershipIDKey = attribute.Key("partnership.id")
	DistanceKmKey    = attribute.Key("distance.km")
	PeriodStartKey   = attribute.Key("report.period_start")
	PeriodEndKey     = attribute.Key("report.period_end")
)

// TraceDBQuery wraps a database call on table with a client span.
func TraceDBQuery(ctx context.Context, tracerName, operation, table string, fn func(context.Context) error) error {
	ctx, span := StartSpan(ctx, tracerName, "db."+operation,
		trace.WithSpanKind(trace.SpanKindClient),
	)
	defer span.End()

	span.SetAttributes(
		DBSystemKey.String("postgresql"),
		DBOperationKey.String(operation),
		DBTableKey.String(table),
	)

	err := fn(ctx)
	finish(span, err)
	return err
}

// TraceBusinessLogic wraps business logic with tracing
func TraceBusinessLogic(ctx context.Context, tracerName, operation string, attrs []attribute.KeyValue, fn func(context.Context) error) error {
	ctx, span := StartSpan(ctx, tracerName, operation,
		trace.WithSpanKind(trace.SpanKindInternal),
	)
	defer span.End()

	if len(attrs) > 0 {
		span.SetAttributes(attrs...)
	}

	start := time.Now()
	err := fn(ctx)
	span.SetAttributes(attribute.Int64("duration_ms", time.Since(start).Milliseconds()))

	finish(span, err)
	return err
}

func finish(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return
	}
	span.SetStatus(codes.Ok, "")
}

// BillingAttributes describes a fee computation.
func BillingAttributes(serviceType string, amount, feePercentage float64) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		AmountKey.Float64(amount),
		FeePercentageKey.Float64(feePercentage),
	}
	if serviceType != "" {
		attrs = append(attrs, ServiceTypeKey.String(serviceType))
	}
	return attrs
}

// ReportAttributes describes a reporting window.
func ReportAttributes(start, end time.Time) []attribute.KeyValue {
	return []attribute.KeyValue{
		PeriodStartKey.String(start.Format(time.RFC3339)),
		PeriodEndKey.String(end.Format(time.RFC3339)),
	}
}
