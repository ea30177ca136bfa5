package infra

import (
	"context"
	"errors"
	"fmt"

	"github.com/tnqbao/gau-showcase-service/config"
	"go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

const instrumentationName = "github.com/tnqbao/gau-showcase-service"

type Telemetry struct {
	Tracer          trace.Tracer
	RequestCounter  metric.Int64Counter
	RequestDuration metric.Float64Histogram
	shutdowns       []func(context.Context) error
}

func InitTelemetry(cfg *config.EnvConfig) (*Telemetry, error) {
	if cfg.Grafana.OTLPEndpoint == "" {
		return NewNoopTelemetry(), nil
	}

	ctx := context.Background()
	res := newResource(cfg)

	traceExporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpoint(cfg.Grafana.OTLPEndpoint))
	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}
	tracerProvider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tracerProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	metricExporter, err := otlpmetrichttp.New(ctx, otlpmetrichttp.WithEndpoint(cfg.Grafana.OTLPEndpoint))
	if err != nil {
		_ = tracerProvider.Shutdown(ctx)
		return nil, fmt.Errorf("failed to create metric exporter: %w", err)
	}
	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(meterProvider)

	if err := runtime.Start(runtime.WithMeterProvider(meterProvider)); err != nil {
		return nil, fmt.Errorf("failed to start runtime instrumentation: %w", err)
	}

	telemetry, err := newTelemetry(tracerProvider.Tracer(instrumentationName), meterProvider.Meter(instrumentationName))
	if err != nil {
		return nil, err
	}
	telemetry.shutdowns = append(telemetry.shutdowns, meterProvider.Shutdown, tracerProvider.Shutdown)
	return telemetry, nil
}

// NewNoopTelemetry records nothing; used when no collector is configured and in tests.
func NewNoopTelemetry() *Telemetry {
	telemetry, _ := newTelemetry(
		tracenoop.NewTracerProvider().Tracer(instrumentationName),
		metricnoop.NewMeterProvider().Meter(instrumentationName),
	)
	return telemetry
}

func newTelemetry(tracer trace.Tracer, meter metric.Meter) (*Telemetry, error) {
	counter, err := meter.Int64Counter("http.server.requests",
		metric.WithDescription("Number of HTTP requests served"))
	if err != nil {
		return nil, fmt.Errorf("failed to create request counter: %w", err)
	}
	duration, err := meter.Float64Histogram("http.server.duration",
		metric.WithDescription("HTTP request latency"),
		metric.WithUnit("ms"))
	if err != nil {
		return nil, fmt.Errorf("failed to create duration histogram: %w", err)
	}
	return &Telemetry{
		Tracer:          tracer,
		RequestCounter:  counter,
		RequestDuration: duration,
	}, nil
}

func (t *Telemetry) Shutdown(ctx context.Context) error {
	var errs []error
	for _, shutdown := range t.shutdowns {
		if err := shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func newResource(cfg *config.EnvConfig) *resource.Resource {
	return resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.Grafana.ServiceName),
		attribute.String("deployment.environment", cfg.Environment.Mode),
		attribute.String("deployment.group", cfg.Environment.Group),
	)
}
