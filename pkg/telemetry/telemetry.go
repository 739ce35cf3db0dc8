package telemetry

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/yesoreyeram/transect/pkg/action"
)

const (
	// Service name for telemetry
	serviceName = "transect"

	// Metric names
	metricParses         = "parse.total"
	metricParseDuration  = "parse.duration"
	metricParseSuccess   = "parse.success.total"
	metricParseFailure   = "parse.failure.total"
	metricActionsApplied = "action.applied.total"
	metricActionDuration = "action.duration"
	metricActionsRejected = "action.rejected.total"
	metricNodesCreated   = "node.created.total"
)

// Provider manages OpenTelemetry setup and provides access to tracers and meters.
type Provider struct {
	meterProvider  *sdkmetric.MeterProvider
	tracerProvider trace.TracerProvider
	meter          metric.Meter
	tracer         trace.Tracer

	// Metrics instruments
	parses          metric.Int64Counter
	parseDuration   metric.Float64Histogram
	parseSuccess    metric.Int64Counter
	parseFailure    metric.Int64Counter
	actionsApplied  metric.Int64Counter
	actionDuration  metric.Float64Histogram
	actionsRejected metric.Int64Counter
	nodesCreated    metric.Int64Counter

	mu sync.RWMutex
}

// Config holds telemetry configuration
type Config struct {
	// ServiceName is the name of the service for telemetry
	ServiceName string

	// ServiceVersion is the version of the service
	ServiceVersion string

	// Environment (e.g., "production", "staging", "development")
	Environment string

	// EnableTracing enables distributed tracing
	EnableTracing bool

	// EnableMetrics enables metrics collection
	EnableMetrics bool
}

// DefaultConfig returns default telemetry configuration
func DefaultConfig() Config {
	return Config{
		ServiceName:    serviceName,
		ServiceVersion: "0.1.0",
		Environment:    "development",
		EnableTracing:  true,
		EnableMetrics:  true,
	}
}

// NewProvider creates a new telemetry provider with Prometheus metrics exporter.
// It initializes OpenTelemetry with the given configuration and returns a provider
// that can be used to create tracers and record metrics.
func NewProvider(ctx context.Context, config Config) (*Provider, error) {
	provider := &Provider{}

	// Create resource with service information
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(config.ServiceName),
			semconv.ServiceVersion(config.ServiceVersion),
			attribute.String("environment", config.Environment),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	// Initialize metrics if enabled
	if config.EnableMetrics {
		if err := provider.initMetrics(res); err != nil {
			return nil, fmt.Errorf("failed to initialize metrics: %w", err)
		}
	}

	// Initialize tracing if enabled
	if config.EnableTracing {
		provider.initTracing()
	}

	return provider, nil
}

// initMetrics initializes the metrics provider with Prometheus exporter
func (p *Provider) initMetrics(res *resource.Resource) error {
	// Create Prometheus exporter
	exporter, err := prometheus.New()
	if err != nil {
		return fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	// Create meter provider with the exporter
	p.meterProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
	)

	// Set as global meter provider
	otel.SetMeterProvider(p.meterProvider)

	// Create meter
	p.meter = p.meterProvider.Meter(serviceName)

	// Create metric instruments
	if err := p.createMetricInstruments(); err != nil {
		return fmt.Errorf("failed to create metric instruments: %w", err)
	}

	return nil
}

// initTracing initializes the tracing provider
func (p *Provider) initTracing() {
	// For now, use the global tracer provider
	// In production, this should be configured with appropriate exporters (OTLP, Jaeger, etc.)
	p.tracerProvider = otel.GetTracerProvider()
	p.tracer = p.tracerProvider.Tracer(serviceName)
}

// createMetricInstruments creates all metric instruments
func (p *Provider) createMetricInstruments() error {
	var err error

	// Parse-level metrics
	p.parses, err = p.meter.Int64Counter(
		metricParses,
		metric.WithDescription("Total number of parses"),
	)
	if err != nil {
		return err
	}

	p.parseDuration, err = p.meter.Float64Histogram(
		metricParseDuration,
		metric.WithDescription("Parse duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return err
	}

	p.parseSuccess, err = p.meter.Int64Counter(
		metricParseSuccess,
		metric.WithDescription("Total number of parses that reached FINISH"),
	)
	if err != nil {
		return err
	}

	p.parseFailure, err = p.meter.Int64Counter(
		metricParseFailure,
		metric.WithDescription("Total number of parses that failed"),
	)
	if err != nil {
		return err
	}

	// Action-level metrics
	p.actionsApplied, err = p.meter.Int64Counter(
		metricActionsApplied,
		metric.WithDescription("Total number of actions applied to a parser state"),
	)
	if err != nil {
		return err
	}

	p.actionDuration, err = p.meter.Float64Histogram(
		metricActionDuration,
		metric.WithDescription("Per-action transition duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return err
	}

	p.actionsRejected, err = p.meter.Int64Counter(
		metricActionsRejected,
		metric.WithDescription("Total number of actions rejected by AssertValid"),
	)
	if err != nil {
		return err
	}

	p.nodesCreated, err = p.meter.Int64Counter(
		metricNodesCreated,
		metric.WithDescription("Total number of graph nodes created (NODE and IMPLICIT actions)"),
	)
	if err != nil {
		return err
	}

	return nil
}

// Tracer returns the tracer for creating spans
func (p *Provider) Tracer() trace.Tracer {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.tracer
}

// Meter returns the meter for recording metrics
func (p *Provider) Meter() metric.Meter {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.meter
}

// RecordParse records metrics for a completed parse
func (p *Provider) RecordParse(ctx context.Context, passageID string, duration time.Duration, success bool, actionCount int) {
	if p.meter == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("passage.id", passageID),
		attribute.Int("actions.count", actionCount),
	}

	p.parses.Add(ctx, 1, metric.WithAttributes(attrs...))
	p.parseDuration.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))

	if success {
		p.parseSuccess.Add(ctx, 1, metric.WithAttributes(attrs...))
	} else {
		p.parseFailure.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

// RecordAction records metrics for a single action transition
func (p *Provider) RecordAction(ctx context.Context, kind action.Kind, duration time.Duration, accepted bool) {
	if p.meter == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("action.kind", kind.String()),
	}

	if accepted {
		p.actionsApplied.Add(ctx, 1, metric.WithAttributes(attrs...))
		p.actionDuration.Record(ctx, float64(duration.Microseconds())/1000, metric.WithAttributes(attrs...))
		if kind == action.Node || kind == action.Implicit {
			p.nodesCreated.Add(ctx, 1, metric.WithAttributes(attrs...))
		}
	} else {
		p.actionsRejected.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

// Shutdown gracefully shuts down the telemetry provider
func (p *Provider) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.meterProvider != nil {
		if err := p.meterProvider.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown meter provider: %w", err)
		}
	}

	return nil
}
