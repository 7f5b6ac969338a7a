package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/metinatakli/picture-palace-hub/internal/domain"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/log/global"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

const telemetryShutdownTimeout = 5 * time.Second

// initTelemetry installs the global trace, metric and log providers exporting to the
// configured collector and returns their shutdown function.
func initTelemetry(cfg Config, logger *slog.Logger) (func(context.Context), error) {
	if cfg.OtelCollectorUrl == "" {
		logger.Info("OpenTelemetry collector URL not set, skipping initialization")
		return func(context.Context) {}, nil
	}

	ctx := context.Background()

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(version),
			semconv.DeploymentEnvironment(cfg.Env),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create otel resource: %w", err)
	}

	var shutdowns []func(context.Context) error

	shutdownAll := func(ctx context.Context) {
		ctx, cancel := context.WithTimeout(ctx, telemetryShutdownTimeout)
		defer cancel()

		var err error
		for _, shutdown := range shutdowns {
			err = errors.Join(err, shutdown(ctx))
		}
		if err != nil {
			logger.Error("failed to shutdown telemetry providers", "error", err)
		}
	}

	for _, install := range []func(context.Context, string, *resource.Resource) (func(context.Context) error, error){
		installTracerProvider,
		installMeterProvider,
		installLoggerProvider,
	} {
		shutdown, err := install(ctx, cfg.OtelCollectorUrl, res)
		if err != nil {
			shutdownAll(ctx)
			return nil, err
		}

		shutdowns = append(shutdowns, shutdown)
	}

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	return shutdownAll, nil
}

func installTracerProvider(ctx context.Context, endpoint string, res *resource.Resource) (func(context.Context) error, error) {
	exporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithInsecure(),
		otlptracegrpc.WithEndpoint(endpoint),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create otel trace exporter: %w", err)
	}

	provider := trace.NewTracerProvider(
		trace.WithSampler(trace.ParentBased(trace.AlwaysSample())),
		trace.WithResource(res),
		trace.WithBatcher(exporter),
	)
	otel.SetTracerProvider(provider)

	return provider.Shutdown, nil
}

func installMeterProvider(ctx context.Context, endpoint string, res *resource.Resource) (func(context.Context) error, error) {
	exporter, err := otlpmetricgrpc.New(ctx,
		otlpmetricgrpc.WithInsecure(),
		otlpmetricgrpc.WithEndpoint(endpoint),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create otel metric exporter: %w", err)
	}

	provider := metric.NewMeterProvider(
		metric.WithResource(res),
		metric.WithReader(metric.NewPeriodicReader(exporter, metric.WithInterval(15*time.Second))),
	)
	otel.SetMeterProvider(provider)

	return provider.Shutdown, nil
}

func installLoggerProvider(ctx context.Context, endpoint string, res *resource.Resource) (func(context.Context) error, error) {
	exporter, err := otlploggrpc.New(ctx,
		otlploggrpc.WithInsecure(),
		otlploggrpc.WithEndpoint(endpoint),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create otel log exporter: %w", err)
	}

	provider := log.NewLoggerProvider(
		log.WithResource(res),
		log.WithProcessor(log.NewBatchProcessor(exporter)),
	)
	global.SetLoggerProvider(provider)

	return provider.Shutdown, nil
}

// appMetrics holds the instruments recorded by request handlers. They are no-ops until
// a meter provider is installed.
type appMetrics struct {
	ordersCreated otelmetric.Int64Counter
	orderSeats    otelmetric.Int64Histogram
	topUps        otelmetric.Float64Counter
}

func newAppMetrics(logger *slog.Logger) *appMetrics {
	meter := otel.Meter(serviceName)

	ordersCreated, err := meter.Int64Counter("orders.created",
		otelmetric.WithDescription("Number of committed ticket orders"))
	if err != nil {
		logger.Error("failed to create orders.created counter", "error", err)
	}

	orderSeats, err := meter.Int64Histogram("orders.seats",
		otelmetric.WithDescription("Seats booked per order"),
		otelmetric.WithExplicitBucketBoundaries(1, 2, 4, 8, 16, 32, 64))
	if err != nil {
		logger.Error("failed to create orders.seats histogram", "error", err)
	}

	topUps, err := meter.Float64Counter("balance.top_ups",
		otelmetric.WithDescription("Amount credited through completed top-ups"))
	if err != nil {
		logger.Error("failed to create balance.top_ups counter", "error", err)
	}

	return &appMetrics{
		ordersCreated: ordersCreated,
		orderSeats:    orderSeats,
		topUps:        topUps,
	}
}

func (m *appMetrics) recordOrder(ctx context.Context, order *domain.Order) {
	attrs := otelmetric.WithAttributes(attribute.Int("show.id", order.ShowID))

	if m.ordersCreated != nil {
		m.ordersCreated.Add(ctx, 1, attrs)
	}
	if m.orderSeats != nil {
		m.orderSeats.Record(ctx, int64(order.SeatQuantity), attrs)
	}
}

func (m *appMetrics) recordTopUp(ctx context.Context, p *domain.Payment) {
	if m.topUps != nil {
		m.topUps.Add(ctx, p.Amount.InexactFloat64(), otelmetric.WithAttributes(attribute.String("currency", p.Currency)))
	}
}

// MultiHandler fans log records out to several handlers, typically stdout and the
// OpenTelemetry log bridge.
type MultiHandler struct {
	handlers []slog.Handler
}

func NewMultiHandler(handlers ...slog.Handler) *MultiHandler {
	return &MultiHandler{handlers: handlers}
}

func (h *MultiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}

	return false
}

// Handle passes the record to every handler enabled for its level, even after one fails.
func (h *MultiHandler) Handle(ctx context.Context, record slog.Record) error {
	var errs error

	for _, handler := range h.handlers {
		if !handler.Enabled(ctx, record.Level) {
			continue
		}

		errs = errors.Join(errs, handler.Handle(ctx, record.Clone()))
	}

	return errs
}

func (h *MultiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h.derive(func(handler slog.Handler) slog.Handler { return handler.WithAttrs(attrs) })
}

func (h *MultiHandler) WithGroup(name string) slog.Handler {
	return h.derive(func(handler slog.Handler) slog.Handler { return handler.WithGroup(name) })
}

func (h *MultiHandler) derive(fn func(slog.Handler) slog.Handler) *MultiHandler {
	handlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		handlers[i] = fn(handler)
	}

	return &MultiHandler{handlers: handlers}
}
