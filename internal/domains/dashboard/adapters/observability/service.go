package observability

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	dashboardapp "github.com/Apurer/contractor-dashboard/internal/domains/dashboard/application"
	dashboarddomain "github.com/Apurer/contractor-dashboard/internal/domains/dashboard/domain"
	dashboardports "github.com/Apurer/contractor-dashboard/internal/domains/dashboard/ports"
)

const tracerName = "github.com/Apurer/contractor-dashboard/internal/domains/dashboard/adapters/observability/service"

// Service decorates the dashboard service with tracing, logging, and metrics.
type Service struct {
	inner   dashboardports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core dashboard service.
func New(inner dashboardports.Service, opts ...Option) dashboardports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) Aggregate(ctx context.Context, viewer dashboarddomain.ViewerID) (*dashboarddomain.Overview, error) {
	ctx, span := s.tracer.Start(ctx, "DashboardService.Aggregate",
		trace.WithAttributes(attribute.String("viewer.id", string(viewer))))
	defer span.End()

	started := time.Now()
	s.logInfo(ctx, "aggregating dashboard", slog.String("viewer.id", string(viewer)))
	result, err := s.inner.Aggregate(ctx, viewer)
	if err != nil {
		s.metrics.recordAggregation(ctx, outcome(err), time.Since(started))
		return nil, s.handleError(ctx, span, err, "failed to aggregate dashboard", slog.String("viewer.id", string(viewer)))
	}
	s.metrics.recordAggregation(ctx, "ok", time.Since(started))
	s.metrics.recordFeed(ctx, len(result.Feed))
	span.SetAttributes(
		attribute.Int("dashboard.bids.total", result.Stats.TotalBids),
		attribute.Int("dashboard.bids.accepted", result.Stats.Accepted),
		attribute.Int("dashboard.feed.size", len(result.Feed)),
	)
	s.logInfo(ctx, "dashboard aggregated",
		slog.String("viewer.id", string(viewer)),
		slog.Int("bids.total", result.Stats.TotalBids),
		slog.Int("bids.accepted", result.Stats.Accepted),
		slog.Int("feed.size", len(result.Feed)),
	)
	return result, nil
}

func outcome(err error) string {
	switch {
	case errors.Is(err, dashboardapp.ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, dashboardapp.ErrDataStoreUnavailable):
		return "unavailable"
	case errors.Is(err, context.Canceled):
		return "cancelled"
	default:
		return "error"
	}
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	level := slog.LevelError
	if errors.Is(err, context.Canceled) || errors.Is(err, dashboardapp.ErrUnauthorized) {
		level = slog.LevelWarn
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, level, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

type serviceMetrics struct {
	aggregations metric.Int64Counter
	duration     metric.Float64Histogram
	feedSize     metric.Int64Histogram
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	aggregations, _ := m.Int64Counter("dashboard.service.aggregations", metric.WithDescription("Number of dashboard aggregations by outcome"))
	duration, _ := m.Float64Histogram("dashboard.service.aggregation_duration", metric.WithDescription("Dashboard aggregation latency"), metric.WithUnit("ms"))
	feedSize, _ := m.Int64Histogram("dashboard.service.feed_size", metric.WithDescription("Projects returned in the dashboard feed"))
	return serviceMetrics{aggregations: aggregations, duration: duration, feedSize: feedSize}
}

func (m serviceMetrics) recordAggregation(ctx context.Context, outcome string, elapsed time.Duration) {
	attrs := metric.WithAttributes(attribute.String("outcome", outcome))
	if m.aggregations != nil {
		m.aggregations.Add(ctx, 1, attrs)
	}
	if m.duration != nil {
		m.duration.Record(ctx, float64(elapsed)/float64(time.Millisecond), attrs)
	}
}

func (m serviceMetrics) recordFeed(ctx context.Context, size int) {
	if m.feedSize != nil {
		m.feedSize.Record(ctx, int64(size))
	}
}

var _ dashboardports.Service = (*Service)(nil)
