// Package observability provides the OpenTelemetry tracing and metrics used
// by railway pipelines.
//
// Pipelines use the global providers unless they are given their own. Spans
// and instruments are named after the pipeline and stage so a failing stage
// can be found without reading logs.
//
// Tracing:
//
//	tp := observability.NewTracerProvider(observability.DefaultTracerConfig("orders"),
//	    sdktrace.WithSyncer(exporter))
//	defer tp.Shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, tp.Tracer(observability.InstrumentationName), "orders.fetch")
//	defer span.End()
//
// Metrics:
//
//	metrics, err := observability.NewMetrics(observability.Meter(otel.GetMeterProvider()))
//	metrics.RecordStage(ctx, "orders", "fetch", observability.OutcomeSuccess, "", time.Since(start))
//
// Exporters are supplied by the caller through NewTracerProvider options.
package observability
