package tracing

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/richxcame/booking-platform/pkg/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

const defaultOTLPEndpoint = "localhost:4317"

// Config describes where a service sends its spans and how many it keeps.
type Config struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	OTLPEndpoint   string
	SampleRate     float64 // 0 picks a rate from Environment
	Enabled        bool
}

// FromConfig builds tracer settings for a service.
func FromConfig(cfg config.TracingConfig, serviceName, version, environment string) Config {
	return Config{
		ServiceName:    serviceName,
		ServiceVersion: version,
		Environment:    environment,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		SampleRate:     cfg.SampleRate,
		Enabled:        cfg.Enabled,
	}
}

// InitTracer installs a global tracer provider exporting over OTLP/gRPC and
// the W3C propagators. It returns nil when tracing is disabled; callers own
// the provider's Shutdown.
func InitTracer(cfg Config, log *zap.Logger) (*sdktrace.TracerProvider, error) {
	if !cfg.Enabled {
		log.Info("tracing disabled")
		return nil, nil
	}

	ctx := context.Background()
	endpoint := cfg.OTLPEndpoint
	if endpoint == "" {
		endpoint = defaultOTLPEndpoint
	}

	res, err := serviceResource(ctx, cfg)
	if err != nil {
		return nil, err
	}
	exporter, err := newExporter(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	rate := sampleRateFor(cfg)
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter,
			sdktrace.WithBatchTimeout(5*time.Second),
			sdktrace.WithMaxExportBatchSize(512),
		),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(rate))),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	log.Info("tracing enabled",
		zap.String("service", cfg.ServiceName),
		zap.String("endpoint", endpoint),
		zap.Float64("sample_rate", rate),
	)
	return tp, nil
}

func serviceResource(ctx context.Context, cfg Config) (*resource.Resource, error) {
	host, err := os.Hostname()
	if err != nil {
		host = "unknown"
	}
	res, err := resource.New(ctx, resource.WithAttributes(
		semconv.ServiceNameKey.String(cfg.ServiceName),
		semconv.ServiceVersionKey.String(cfg.ServiceVersion),
		semconv.DeploymentEnvironmentKey.String(cfg.Environment),
		attribute.String("host.name", host),
	))
	if err != nil {
		return nil, fmt.Errorf("build trace resource: %w", err)
	}
	return res, nil
}

func newExporter(ctx context.Context, endpoint string) (*otlptrace.Exporter, error) {
	conn, err := grpc.NewClient(endpoint, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("dial collector %s: %w", endpoint, err)
	}
	exporter, err := otlptrace.New(ctx, otlptracegrpc.NewClient(otlptracegrpc.WithGRPCConn(conn)))
	if err != nil {
		return nil, fmt.Errorf("create trace exporter: %w", err)
	}
	return exporter, nil
}

// sampleRateFor returns the configured rate clamped to 1, or a rate by
// environment when none is set.
func sampleRateFor(cfg Config) float64 {
	if cfg.SampleRate > 0 {
		return min(cfg.SampleRate, 1)
	}
	switch cfg.Environment {
	case "production", "prod":
		return 0.1
	case "staging", "stage":
		return 0.5
	default:
		return 1
	}
}

// StartSpan starts a span on the named tracer.
func StartSpan(ctx context.Context, tracerName, spanName string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, spanName, opts...)
}
