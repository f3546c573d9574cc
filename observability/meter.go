package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Meter returns the railway meter from mp, or from the global provider when
// mp is nil.
func Meter(mp metric.MeterProvider) metric.Meter {
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	return mp.Meter(InstrumentationName)
}

// Metrics holds the instruments recorded for pipeline runs.
type Metrics struct {
	stageTotal    metric.Int64Counter
	stageDuration metric.Float64Histogram
	runTotal      metric.Int64Counter
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	stageTotal, err := meter.Int64Counter("railway.stage.total",
		metric.WithDescription("Stages executed, by outcome and error kind"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating railway.stage.total counter: %w", err)
	}

	stageDuration, err := meter.Float64Histogram("railway.stage.duration",
		metric.WithDescription("Duration of stages in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating railway.stage.duration histogram: %w", err)
	}

	runTotal, err := meter.Int64Counter("railway.run.total",
		metric.WithDescription("Pipeline runs, by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating railway.run.total counter: %w", err)
	}

	return &Metrics{
		stageTotal:    stageTotal,
		stageDuration: stageDuration,
		runTotal:      runTotal,
	}, nil
}

// RecordStage records one resolved stage. kind is empty unless the stage
// failed with a classified error.
func (m *Metrics) RecordStage(ctx context.Context, pipeline, stage, outcome, kind string, duration time.Duration) {
	m.stageTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("pipeline", pipeline),
		attribute.String("stage", stage),
		attribute.String("outcome", outcome),
		attribute.String("kind", kind),
	))
	m.stageDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("pipeline", pipeline),
		attribute.String("stage", stage),
	))
}

// RecordRun records a finished pipeline run.
func (m *Metrics) RecordRun(ctx context.Context, pipeline, outcome string) {
	m.runTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("pipeline", pipeline),
		attribute.String("outcome", outcome),
	))
}
