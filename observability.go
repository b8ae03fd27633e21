package recstore

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const (
	tracerName = "github.com/routinerocket/recstore"
	meterName  = "github.com/routinerocket/recstore"
)

// Metrics holds the OpenTelemetry metric instruments
type Metrics struct {
	OpCount               metric.Int64Counter
	OpDuration            metric.Float64Histogram
	OpErrors              metric.Int64Counter
	FlushErrors           metric.Int64Counter
	UnsupportedPredicates metric.Int64Counter
}

// ObservabilityConfig holds logging, tracing, and metrics configuration
type ObservabilityConfig struct {
	Logger                 *slog.Logger
	Tracer                 trace.Tracer
	Meter                  metric.Meter
	Metrics                *Metrics
	SlowOperationThreshold time.Duration
	LogOperations          bool // Log every operation at debug level
}

// defaultObservabilityConfig returns a config with no logging/tracing/metrics
func defaultObservabilityConfig() *ObservabilityConfig {
	return &ObservabilityConfig{
		SlowOperationThreshold: 200 * time.Millisecond,
	}
}

// Option configures a Store
type Option func(*Store)

// WithLogger sets the logger for the store
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.obs.Logger = logger
	}
}

// WithTracer sets the OpenTelemetry tracer for the store
func WithTracer(tracer trace.Tracer) Option {
	return func(s *Store) {
		s.obs.Tracer = tracer
	}
}

// WithDefaultTracer uses the global OpenTelemetry tracer
func WithDefaultTracer() Option {
	return func(s *Store) {
		s.obs.Tracer = otel.Tracer(tracerName)
	}
}

// WithMeter sets the OpenTelemetry meter for metrics
func WithMeter(meter metric.Meter) Option {
	return func(s *Store) {
		s.obs.Meter = meter
		s.obs.Metrics = initMetrics(meter)
	}
}

// WithDefaultMeter uses the global OpenTelemetry meter
func WithDefaultMeter() Option {
	return func(s *Store) {
		meter := otel.Meter(meterName)
		s.obs.Meter = meter
		s.obs.Metrics = initMetrics(meter)
	}
}

// WithSlowOperationThreshold sets the duration above which operations are logged as slow
func WithSlowOperationThreshold(d time.Duration) Option {
	return func(s *Store) {
		s.obs.SlowOperationThreshold = d
	}
}

// WithOperationLogging enables a debug line for every operation
func WithOperationLogging(enabled bool) Option {
	return func(s *Store) {
		s.obs.LogOperations = enabled
	}
}

func initMetrics(meter metric.Meter) *Metrics {
	opCount, _ := meter.Int64Counter("recstore.op.count",
		metric.WithDescription("Total number of record store operations"),
		metric.WithUnit("{operation}"),
	)

	opDuration, _ := meter.Float64Histogram("recstore.op.duration",
		metric.WithDescription("Operation duration in milliseconds, flush included"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(0.1, 0.5, 1, 5, 10, 25, 50, 100, 250, 500, 1000),
	)

	opErrors, _ := meter.Int64Counter("recstore.op.errors",
		metric.WithDescription("Operations aborted by a hook or persister error"),
		metric.WithUnit("{error}"),
	)

	flushErrors, _ := meter.Int64Counter("recstore.flush.errors",
		metric.WithDescription("Flushes that failed to reach the persister"),
		metric.WithUnit("{error}"),
	)

	unsupported, _ := meter.Int64Counter("recstore.filter.unsupported",
		metric.WithDescription("Where entries ignored because they hold a structured predicate"),
		metric.WithUnit("{predicate}"),
	)

	return &Metrics{
		OpCount:               opCount,
		OpDuration:            opDuration,
		OpErrors:              opErrors,
		FlushErrors:           flushErrors,
		UnsupportedPredicates: unsupported,
	}
}

// spanWrapper wraps a trace.Span to handle nil spans gracefully
type spanWrapper struct {
	span trace.Span
}

func (w spanWrapper) End() {
	if w.span != nil {
		w.span.End()
	}
}

func (w spanWrapper) RecordError(err error) {
	if w.span != nil {
		w.span.RecordError(err)
	}
}

func (w spanWrapper) SetStatus(code codes.Code, description string) {
	if w.span != nil {
		w.span.SetStatus(code, description)
	}
}

func (w spanWrapper) SetAttributes(kv ...attribute.KeyValue) {
	if w.span != nil {
		w.span.SetAttributes(kv...)
	}
}

// operation tracks one store call from start to finish.
type operation struct {
	store *Store
	name  string
	table string
	start time.Time
	span  spanWrapper
}

// begin starts a span (when tracing is enabled) and the operation timer.
func (s *Store) begin(ctx context.Context, name, table string) (context.Context, *operation) {
	op := &operation{store: s, name: name, table: table, start: time.Now()}
	if s.obs.Tracer != nil {
		var span trace.Span
		ctx, span = s.obs.Tracer.Start(ctx, "recstore."+name,
			trace.WithSpanKind(trace.SpanKindInternal),
			trace.WithAttributes(
				attribute.String("db.system", "recstore"),
				attribute.String("db.operation", name),
				attribute.String("db.table", table),
			),
		)
		op.span = spanWrapper{span}
	}
	return ctx, op
}

// end closes the span and records metrics and logs.
func (op *operation) end(ctx context.Context, err error, attrs ...slog.Attr) {
	duration := time.Since(op.start)
	if err != nil {
		op.span.RecordError(err)
		op.span.SetStatus(codes.Error, err.Error())
	}
	op.span.End()
	op.store.recordMetrics(ctx, op.name, op.table, duration, err)
	op.store.logOperation(ctx, op.name, op.table, duration, err, attrs...)
}

// recordMetrics records operation metrics if metrics are enabled
func (s *Store) recordMetrics(ctx context.Context, operation, table string, duration time.Duration, err error) {
	if s.obs.Metrics == nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String("db.operation", operation),
		attribute.String("db.table", table),
	)

	s.obs.Metrics.OpCount.Add(ctx, 1, attrs)
	s.obs.Metrics.OpDuration.Record(ctx, float64(duration.Microseconds())/1000, attrs)

	if err != nil {
		s.obs.Metrics.OpErrors.Add(ctx, 1, attrs)
	}
}

// logOperation logs an operation execution
func (s *Store) logOperation(ctx context.Context, operation, table string, duration time.Duration, err error, extra ...slog.Attr) {
	if s.obs.Logger == nil {
		return
	}

	attrs := []slog.Attr{
		slog.String("operation", operation),
		slog.String("table", table),
		slog.Duration("duration", duration),
	}
	attrs = append(attrs, extra...)

	if err != nil {
		s.obs.Logger.LogAttrs(ctx, slog.LevelError, "operation failed", append(attrs, slog.String("error", err.Error()))...)
		return
	}

	if duration > s.obs.SlowOperationThreshold {
		s.obs.Logger.LogAttrs(ctx, slog.LevelWarn, "slow operation", attrs...)
		return
	}

	if s.obs.LogOperations {
		s.obs.Logger.LogAttrs(ctx, slog.LevelDebug, "operation executed", attrs...)
	}
}

// flushFailed records a flush that did not reach the persister. The mutation
// that triggered it has already been applied in memory.
func (s *Store) flushFailed(ctx context.Context, table string, err error) {
	if s.obs.Metrics != nil {
		s.obs.Metrics.FlushErrors.Add(ctx, 1, metric.WithAttributes(attribute.String("db.table", table)))
	}
	if s.obs.Logger != nil {
		s.obs.Logger.LogAttrs(ctx, slog.LevelError, "flush failed, store is out of sync with disk",
			slog.String("table", table),
			slog.String("error", err.Error()),
		)
	}
}

// unsupportedPredicate records a where entry that was ignored.
func (s *Store) unsupportedPredicate(ctx context.Context, table, column, op string) {
	if s.obs.Metrics != nil {
		s.obs.Metrics.UnsupportedPredicates.Add(ctx, 1, metric.WithAttributes(
			attribute.String("db.table", table),
			attribute.String("predicate", op),
		))
	}
	if s.obs.Logger != nil {
		s.obs.Logger.LogAttrs(ctx, slog.LevelDebug, "structured predicate ignored",
			slog.String("table", table),
			slog.String("column", column),
			slog.String("predicate", op),
		)
	}
}
