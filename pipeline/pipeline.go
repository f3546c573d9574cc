package pipeline

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/kbukum/railway/fault"
	"github.com/kbukum/railway/logger"
	"github.com/kbukum/railway/observability"
	"github.com/kbukum/railway/resilience"
	"github.com/kbukum/railway/result"
)

// Pipeline holds what every stage of a chain shares: the classifier, the
// telemetry and the retry policy. It is immutable after New and safe for
// concurrent Runs.
type Pipeline[K fault.Kind] struct {
	name       string
	classifier *fault.Classifier[K]
	log        *logger.Logger
	tracer     trace.Tracer
	metrics    *observability.Metrics
	retry      resilience.RetryConfig
	observers  []func(Event)
	owned      *sdktrace.TracerProvider
}

// New creates a pipeline that classifies stage faults with c. A nil
// classifier recognises nothing, so every fault escapes.
func New[K fault.Kind](name string, c *fault.Classifier[K], opts ...Option) *Pipeline[K] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if c == nil {
		c = fault.New[K]()
	}

	p := &Pipeline[K]{
		name:       name,
		classifier: c,
		log:        o.log,
		observers:  o.observers,
	}
	if o.retry != nil {
		p.retry = *o.retry
	}

	tp := o.tracerProvider
	if cfg := o.cfg; cfg != nil {
		if p.name == "" {
			p.name = cfg.Name
		}
		if p.log == nil {
			p.log = logger.New(&cfg.Logging, cfg.Name)
		}
		if o.retry == nil {
			p.retry = cfg.Retry
		}
		if tp == nil {
			if cfg.Tracing.Enabled {
				spOpts := make([]sdktrace.TracerProviderOption, 0, len(o.spanProcessors))
				for _, sp := range o.spanProcessors {
					spOpts = append(spOpts, sdktrace.WithSpanProcessor(sp))
				}
				p.owned = observability.NewTracerProvider(observability.TracerConfig{
					ServiceName:    cfg.Name,
					ServiceVersion: cfg.Version,
					Environment:    cfg.Environment,
					SampleRate:     cfg.Tracing.SampleRate,
				}, spOpts...)
				tp = p.owned
			} else {
				tp = tracenoop.NewTracerProvider()
			}
		}
	}
	if p.log == nil {
		p.log = logger.Nop()
	}
	p.log = p.log.WithComponent("pipeline")
	p.tracer = observability.Tracer(tp)

	metrics, err := observability.NewMetrics(observability.Meter(o.meterProvider))
	if err != nil {
		p.log.WithError(err).Warn("pipeline metrics disabled", logger.Fields(logger.FieldPipeline, p.name))
		metrics, _ = observability.NewMetrics(metricnoop.NewMeterProvider().Meter(observability.InstrumentationName))
	}
	p.metrics = metrics
	return p
}

// Name returns the pipeline name used in span names, metrics and logs.
func (p *Pipeline[K]) Name() string { return p.name }

// Classifier returns the classifier stage faults are resolved with.
func (p *Pipeline[K]) Classifier() *fault.Classifier[K] { return p.classifier }

// Shutdown flushes and stops the tracer provider New built from WithConfig.
// It is a no-op when the provider was supplied by the caller.
func (p *Pipeline[K]) Shutdown(ctx context.Context) error {
	if p.owned == nil {
		return nil
	}
	return p.owned.Shutdown(ctx)
}

// run is the state of a single Run.
type run struct {
	id string
}

type stageInfo struct {
	name  string
	index int
}

// outcome is how a stage or run resolved.
type outcome struct {
	state State
	kind  string
	err   error
}

func outcomeOf[T any, K fault.Kind](r result.Result[T, K], err error) outcome {
	if err != nil {
		return outcome{state: StateEscaped, err: err}
	}
	return result.Fold(r,
		func(T) outcome { return outcome{state: StateSucceeded} },
		func(kind K) outcome { return outcome{state: StateFailed, kind: kind.String()} },
	)
}

// execute runs one named stage inside its span. body is skipped when ctx is
// already done; the context error is resolved with the classifier instead.
func execute[T any, K fault.Kind](
	ctx context.Context,
	p *Pipeline[K],
	rn *run,
	info stageInfo,
	body func(context.Context) (result.Result[T, K], error),
) (result.Result[T, K], error) {
	ctx, span := observability.StartSpan(ctx, p.tracer, p.name+"."+info.name, trace.WithAttributes(
		attribute.String(observability.AttrPipeline, p.name),
		attribute.String(observability.AttrStage, info.name),
		attribute.Int(observability.AttrStageIndex, info.index),
		attribute.String(observability.AttrRunID, rn.id),
	))
	defer span.End()

	start := time.Now()
	var (
		r   result.Result[T, K]
		err error
	)
	if cerr := ctx.Err(); cerr != nil {
		r, err = fault.Resolve[T](p.classifier, cerr)
	} else {
		r, err = body(ctx)
	}
	p.stageResolved(ctx, rn, info, outcomeOf(r, err), time.Since(start))
	return r, err
}

func (p *Pipeline[K]) stageResolved(ctx context.Context, rn *run, info stageInfo, o outcome, d time.Duration) {
	fields := logger.MergeWithDuration(logger.StageFields(p.name, info.name, rn.id, info.index), d)
	fields[logger.FieldOutcome] = o.state.outcome()
	switch o.state {
	case StateFailed:
		observability.SetSpanFailure(ctx, o.kind)
		fields[logger.FieldErrorKind] = o.kind
	case StateEscaped:
		observability.SetSpanError(ctx, o.err)
		fields = logger.MergeWithError(fields, o.err)
	}
	observability.SetSpanAttribute(ctx, observability.AttrOutcome, o.state.outcome())
	p.metrics.RecordStage(ctx, p.name, info.name, o.state.outcome(), o.kind, d)
	p.log.Debug("stage resolved", fields)

	p.emit(Event{
		RunID:    rn.id,
		Pipeline: p.name,
		Stage:    info.name,
		Index:    info.index,
		State:    o.state,
		Kind:     o.kind,
		Err:      o.err,
		Duration: d,
	})
}

func (p *Pipeline[K]) runFinished(ctx context.Context, rn *run, o outcome, d time.Duration) {
	fields := logger.MergeWithDuration(logger.Fields(
		logger.FieldPipeline, p.name,
		logger.FieldOutcome, o.state.outcome(),
	), d)
	log := p.log.WithContext(ctx)
	switch o.state {
	case StateSucceeded:
		log.Info("pipeline run succeeded", fields)
	case StateFailed:
		fields[logger.FieldErrorKind] = o.kind
		log.Warn("pipeline run failed", fields)
	default:
		log.WithError(o.err).Error("pipeline run aborted by unexpected error", fields)
	}
	p.metrics.RecordRun(ctx, p.name, o.state.outcome())

	p.emit(Event{
		RunID:    rn.id,
		Pipeline: p.name,
		Index:    -1,
		State:    o.state,
		Kind:     o.kind,
		Err:      o.err,
		Duration: d,
	})
}

func (p *Pipeline[K]) emit(e Event) {
	for _, fn := range p.observers {
		fn(e)
	}
}

// withRetry wraps call in the pipeline's retry policy, logging each retry
// and adding it to the stage span as an event.
func withRetry[U any, K fault.Kind](ctx context.Context, p *Pipeline[K], rn *run, info stageInfo, call func() (U, error)) func() (U, error) {
	if !p.retry.Enabled() {
		return call
	}
	cfg := p.retry
	onRetry := cfg.OnRetry
	cfg.OnRetry = func(attempt int, err error, backoff time.Duration) {
		fields := logger.StageFields(p.name, info.name, rn.id, info.index)
		fields[logger.FieldAttempt] = attempt
		p.log.WithError(err).Debug("retrying stage", fields)
		observability.SpanFromContext(ctx).AddEvent("retry", trace.WithAttributes(
			attribute.Int("attempt", attempt),
			attribute.String("backoff", backoff.String()),
		))
		if onRetry != nil {
			onRetry(attempt, err, backoff)
		}
	}
	return func() (U, error) {
		return resilience.Retry(ctx, cfg, call)
	}
}
