// Package observability wires OpenTelemetry tracing and metrics for the
// application: spans around gateway calls and preview renders, counters for
// the resume workflow, and an optional Prometheus endpoint.
package observability

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.34.0"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// ObservabilityConfig holds configuration for observability
type ObservabilityConfig struct {
	ServiceName    string
	ServiceVersion string
	Enabled        bool
	ConsoleOutput  bool
	SampleRate     float64
	TracingEnabled bool
	MetricsEnabled bool
	Prometheus     PrometheusConfig
}

// Metrics holds the application's custom metrics
type Metrics struct {
	// Resume workflow metrics
	GenerationCount    metric.Int64Counter
	GenerationDuration metric.Float64Histogram
	GenerationErrors   metric.Int64Counter
	ResumesReused      metric.Int64Counter
	PrintFallbacks     metric.Int64Counter

	// Editing metrics
	PreviewRenders metric.Int64Counter
	AutosaveCount  metric.Int64Counter

	// Dashboard metrics
	CacheFallbacks metric.Int64Counter

	// Rate limiting metrics
	RateLimitHits metric.Int64Counter
}

// ObservabilityManager manages OpenTelemetry setup
type ObservabilityManager struct {
	config         ObservabilityConfig
	res            *resource.Resource
	tracerProvider *trace.TracerProvider
	meterProvider  *sdkmetric.MeterProvider
	metrics        *Metrics
	shutdownFuncs  []func(context.Context) error
	prometheusMux  *http.ServeMux
}

// NewObservabilityManager creates a new observability manager
func NewObservabilityManager(obsConfig ObservabilityConfig) (*ObservabilityManager, error) {
	if !obsConfig.Enabled {
		return &ObservabilityManager{config: obsConfig}, nil
	}

	om := &ObservabilityManager{
		config:        obsConfig,
		shutdownFuncs: make([]func(context.Context) error, 0),
	}

	if err := om.initResource(); err != nil {
		return nil, fmt.Errorf("failed to initialize resource: %w", err)
	}

	if err := om.initTracing(); err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}

	if err := om.initMetrics(); err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	return om, nil
}

// initResource creates the OpenTelemetry resource
func (om *ObservabilityManager) initResource() error {
	hostname, _ := os.Hostname()
	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(om.config.ServiceName),
			semconv.ServiceVersion(om.config.ServiceVersion),
			attribute.String("service.instance.id", hostname),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}

	om.res = res
	return nil
}

// initTracing sets up the tracer provider. Spans go to stdout when console
// output is on; otherwise the provider only samples and records.
func (om *ObservabilityManager) initTracing() error {
	if !om.config.TracingEnabled {
		return nil
	}

	opts := []trace.TracerProviderOption{
		trace.WithResource(om.res),
		trace.WithSampler(trace.TraceIDRatioBased(om.sampleRate())),
	}

	if om.config.ConsoleOutput {
		exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
		if err != nil {
			return fmt.Errorf("failed to create stdout trace exporter: %w", err)
		}
		opts = append(opts, trace.WithBatcher(exporter,
			trace.WithBatchTimeout(5*time.Second)))
	}

	om.tracerProvider = trace.NewTracerProvider(opts...)
	om.shutdownFuncs = append(om.shutdownFuncs, om.tracerProvider.Shutdown)

	otel.SetTracerProvider(om.tracerProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return nil
}

// initMetrics sets up the meter provider and registers the custom metrics.
func (om *ObservabilityManager) initMetrics() error {
	if !om.config.MetricsEnabled {
		return nil
	}

	opts := []sdkmetric.Option{sdkmetric.WithResource(om.res)}

	reader, mux, err := SetupPrometheusExporter(om.config.Prometheus)
	if err != nil {
		return err
	}
	if reader != nil {
		opts = append(opts, sdkmetric.WithReader(reader))
		om.prometheusMux = mux
	}

	om.meterProvider = sdkmetric.NewMeterProvider(opts...)
	om.shutdownFuncs = append(om.shutdownFuncs, om.meterProvider.Shutdown)
	otel.SetMeterProvider(om.meterProvider)

	return om.createMetrics()
}

func (om *ObservabilityManager) createMetrics() error {
	meter := om.Meter("nextchapter")

	var err error
	m := &Metrics{}

	if m.GenerationCount, err = meter.Int64Counter("resume_generations_total",
		metric.WithDescription("Completed resume generation runs")); err != nil {
		return err
	}
	if m.GenerationDuration, err = meter.Float64Histogram("resume_generation_duration_seconds",
		metric.WithDescription("End-to-end resume generation duration")); err != nil {
		return err
	}
	if m.GenerationErrors, err = meter.Int64Counter("resume_generation_errors_total",
		metric.WithDescription("Failed resume generation runs")); err != nil {
		return err
	}
	if m.ResumesReused, err = meter.Int64Counter("resume_records_reused_total",
		metric.WithDescription("Generation runs that reused an existing resume record")); err != nil {
		return err
	}
	if m.PrintFallbacks, err = meter.Int64Counter("print_fallbacks_total",
		metric.WithDescription("Downloads that arrived as printable HTML")); err != nil {
		return err
	}
	if m.PreviewRenders, err = meter.Int64Counter("preview_renders_total",
		metric.WithDescription("Live preview renders")); err != nil {
		return err
	}
	if m.AutosaveCount, err = meter.Int64Counter("autosaves_total",
		metric.WithDescription("Background profile saves")); err != nil {
		return err
	}
	if m.CacheFallbacks, err = meter.Int64Counter("dashboard_cache_fallbacks_total",
		metric.WithDescription("Dashboard sources served from the local cache")); err != nil {
		return err
	}
	if m.RateLimitHits, err = meter.Int64Counter("rate_limit_hits_total",
		metric.WithDescription("Requests rejected by rate limiting")); err != nil {
		return err
	}

	om.metrics = m
	return nil
}

func (om *ObservabilityManager) sampleRate() float64 {
	if om.config.SampleRate <= 0 || om.config.SampleRate > 1 {
		return 1.0
	}
	return om.config.SampleRate
}

// Tracer returns a tracer for the given instrumentation name.
func (om *ObservabilityManager) Tracer(name string) oteltrace.Tracer {
	if om.tracerProvider == nil {
		return noop.NewTracerProvider().Tracer(name)
	}
	return om.tracerProvider.Tracer(name)
}

// Meter returns a meter for the given instrumentation name.
func (om *ObservabilityManager) Meter(name string) metric.Meter {
	if om.meterProvider == nil {
		return otel.GetMeterProvider().Meter(name)
	}
	return om.meterProvider.Meter(name)
}

// Metrics returns the registered custom metrics, nil when metrics are off.
func (om *ObservabilityManager) Metrics() *Metrics {
	return om.metrics
}

// PrometheusMux returns the metrics endpoint mux, nil when disabled.
func (om *ObservabilityManager) PrometheusMux() *http.ServeMux {
	return om.prometheusMux
}

// HTTPHandler wraps an http.Handler with otel instrumentation.
func (om *ObservabilityManager) HTTPHandler(handler http.Handler, operation string) http.Handler {
	if !om.config.Enabled || !om.config.TracingEnabled {
		return handler
	}
	return otelhttp.NewHandler(handler, operation)
}

// RecordGeneration records one generation run's outcome.
func (om *ObservabilityManager) RecordGeneration(ctx context.Context, duration time.Duration, reused, printFallback bool, err error) {
	if om.metrics == nil {
		return
	}
	om.metrics.GenerationCount.Add(ctx, 1)
	om.metrics.GenerationDuration.Record(ctx, duration.Seconds())
	if err != nil {
		om.metrics.GenerationErrors.Add(ctx, 1)
		return
	}
	if reused {
		om.metrics.ResumesReused.Add(ctx, 1)
	}
	if printFallback {
		om.metrics.PrintFallbacks.Add(ctx, 1)
	}
}

// Shutdown flushes and stops all providers.
func (om *ObservabilityManager) Shutdown(ctx context.Context) error {
	var firstErr error
	for _, shutdown := range om.shutdownFuncs {
		if err := shutdown(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
