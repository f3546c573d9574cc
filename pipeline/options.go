package pipeline

import (
	"go.opentelemetry.io/otel/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/railway/config"
	"github.com/kbukum/railway/logger"
	"github.com/kbukum/railway/resilience"
)

// Option configures a Pipeline. Explicit options take precedence over
// values from WithConfig regardless of order.
type Option func(*options)

type options struct {
	log            *logger.Logger
	tracerProvider trace.TracerProvider
	spanProcessors []sdktrace.SpanProcessor
	meterProvider  metric.MeterProvider
	retry          *resilience.RetryConfig
	observers      []func(Event)
	cfg            *config.PipelineConfig
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithTracerProvider sets the provider stage spans are created on. Defaults
// to the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) { o.tracerProvider = tp }
}

// WithSpanProcessor registers a span processor on the tracer provider built
// from WithConfig when tracing is enabled there.
func WithSpanProcessor(sp sdktrace.SpanProcessor) Option {
	return func(o *options) { o.spanProcessors = append(o.spanProcessors, sp) }
}

// WithMeterProvider sets the provider stage and run metrics are recorded on.
// Defaults to the global provider.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *options) { o.meterProvider = mp }
}

// WithRetry retries each Then stage's function while the error is
// retryable. Bind stages return a Result and are never retried.
func WithRetry(cfg resilience.RetryConfig) Option {
	return func(o *options) { o.retry = &cfg }
}

// WithObserver registers fn to receive every stage and run Event.
// Observers are called synchronously on the running goroutine.
func WithObserver(fn func(Event)) Option {
	return func(o *options) { o.observers = append(o.observers, fn) }
}

// WithConfig applies the name, logging, tracing and retry settings of cfg.
// cfg is expected to be defaulted and validated, as LoadPipelineConfig does.
func WithConfig(cfg config.PipelineConfig) Option {
	return func(o *options) { o.cfg = &cfg }
}
