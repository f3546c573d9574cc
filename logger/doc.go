// Package logger provides structured logging for railway using zerolog.
//
// It supports JSON and console output, level configuration from config or
// environment, and component-scoped loggers. Pipelines log one line per
// stage with the fields defined in this package (pipeline, stage, run_id,
// error_kind, outcome, duration_ms).
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.NewDefault("orders").WithComponent("pipeline")
//	log.Info("run finished", logger.Fields(logger.FieldRunID, id))
package logger
