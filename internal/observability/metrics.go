package observability

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"

	"github.com/propmart/catalog-backend/internal/config"
)

type catalogMetrics struct {
	repositoryOps      metric.Int64Counter
	cacheLookups       metric.Int64Counter
	cartOps            metric.Int64Counter
	searchDuration     metric.Float64Histogram
	authEvents         metric.Int64Counter
	rateLimitDecisions metric.Int64Counter
	healthCheckResults metric.Int64Counter
}

var (
	metricsMu  sync.RWMutex
	appMetrics *catalogMetrics
)

func InitMetrics(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*sdkmetric.MeterProvider, error) {
	if !cfg.OTELMetricsEnabled {
		mp := sdkmetric.NewMeterProvider()
		otel.SetMeterProvider(mp)
		logger.Info("otel metrics disabled")
		return mp, nil
	}

	opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithEndpoint(cfg.OTELExporterOTLPEndpoint)}
	if cfg.OTELExporterOTLPInsecure {
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}
	exporter, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create otlp metric exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			attribute.String("service.name", cfg.OTELServiceName),
			attribute.String("deployment.environment", cfg.OTELEnvironment),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("create metric resource: %w", err)
	}

	reader := sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(cfg.OTELMetricsExportInterval))
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(reader),
		sdkmetric.WithView(sdkmetric.NewView(
			sdkmetric.Instrument{Name: "catalog.search.duration"},
			sdkmetric.Stream{
				Aggregation: sdkmetric.AggregationExplicitBucketHistogram{
					Boundaries: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
				},
			},
		)),
	)
	otel.SetMeterProvider(mp)

	meter := mp.Meter("catalog-backend")
	repositoryOps, err := meter.Int64Counter("repository.operations")
	if err != nil {
		return nil, err
	}
	cacheLookups, err := meter.Int64Counter("cache.lookups")
	if err != nil {
		return nil, err
	}
	cartOps, err := meter.Int64Counter("cart.operations")
	if err != nil {
		return nil, err
	}
	searchDuration, err := meter.Float64Histogram(
		"catalog.search.duration",
		metric.WithUnit("s"),
		metric.WithDescription("Duration of catalog search requests in seconds"),
	)
	if err != nil {
		return nil, err
	}
	authEvents, err := meter.Int64Counter("auth.events")
	if err != nil {
		return nil, err
	}
	rateLimitDecisions, err := meter.Int64Counter("http.rate_limit.decisions")
	if err != nil {
		return nil, err
	}
	healthCheckResults, err := meter.Int64Counter("health.check.results")
	if err != nil {
		return nil, err
	}

	metricsMu.Lock()
	appMetrics = &catalogMetrics{
		repositoryOps:      repositoryOps,
		cacheLookups:       cacheLookups,
		cartOps:            cartOps,
		searchDuration:     searchDuration,
		authEvents:         authEvents,
		rateLimitDecisions: rateLimitDecisions,
		healthCheckResults: healthCheckResults,
	}
	metricsMu.Unlock()

	logger.Info("otel metrics initialized", "endpoint", cfg.OTELExporterOTLPEndpoint)
	return mp, nil
}

func loadMetrics() *catalogMetrics {
	metricsMu.RLock()
	defer metricsMu.RUnlock()
	return appMetrics
}

func RecordRepositoryOperation(ctx context.Context, entity, action, status string) {
	m := loadMetrics()
	if m == nil {
		return
	}
	m.repositoryOps.Add(ctx, 1, metric.WithAttributes(
		attribute.String("entity", entity),
		attribute.String("action", action),
		attribute.String("status", status),
	))
}

func RecordCacheLookup(ctx context.Context, key, outcome string) {
	m := loadMetrics()
	if m == nil {
		return
	}
	m.cacheLookups.Add(ctx, 1, metric.WithAttributes(
		attribute.String("key", key),
		attribute.String("outcome", outcome),
	))
}

func RecordCartOperation(ctx context.Context, action, status string) {
	m := loadMetrics()
	if m == nil {
		return
	}
	m.cartOps.Add(ctx, 1, metric.WithAttributes(
		attribute.String("action", action),
		attribute.String("status", status),
	))
}

func RecordSearchDuration(ctx context.Context, status string, duration time.Duration) {
	m := loadMetrics()
	if m == nil {
		return
	}
	m.searchDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("status", status),
	))
}

func RecordAuthEvent(ctx context.Context, flow, outcome string) {
	m := loadMetrics()
	if m == nil {
		return
	}
	m.authEvents.Add(ctx, 1, metric.WithAttributes(
		attribute.String("flow", flow),
		attribute.String("outcome", outcome),
	))
}

func RecordRateLimitDecision(ctx context.Context, scope, outcome string) {
	m := loadMetrics()
	if m == nil {
		return
	}
	m.rateLimitDecisions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("scope", scope),
		attribute.String("outcome", outcome),
	))
}

func RecordHealthCheckResult(ctx context.Context, check, outcome string) {
	m := loadMetrics()
	if m == nil {
		return
	}
	m.healthCheckResults.Add(ctx, 1, metric.WithAttributes(
		attribute.String("check", check),
		attribute.String("outcome", outcome),
	))
}
