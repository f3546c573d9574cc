// Package validation validates railway configuration structs.
//
// Struct tags are checked with go-playground/validator; cross-field rules use
// the programmatic Validator. Both report failures as *errors.AppError with
// code INVALID_INPUT and a "fields" detail listing each offending field.
//
// # Struct Tag Validation
//
//	type RetryConfig struct {
//	    MaxAttempts int `mapstructure:"max_attempts" validate:"gte=1"`
//	}
//	err := validation.Validate(cfg)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Custom(cfg.MaxBackoff >= cfg.InitialBackoff, "max_backoff", "must not be below initial_backoff")
//	if err := v.Validate(); err != nil { ... }
package validation
