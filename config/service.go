package config

import (
	"fmt"

	"github.com/kbukum/railway/logger"
	"github.com/kbukum/railway/resilience"
	"github.com/kbukum/railway/validation"
	"github.com/kbukum/railway/version"
)

// Environments accepted in ServiceConfig.Environment.
var Environments = []string{"development", "staging", "production"}

// ServiceConfig contains the fields every railway consumer configures.
// Embed it to extend:
//
//	type MyConfig struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    Endpoint string `yaml:"endpoint" mapstructure:"endpoint"`
//	}
type ServiceConfig struct {
	Name        string        `yaml:"name" mapstructure:"name" validate:"required"`
	Environment string        `yaml:"environment" mapstructure:"environment" validate:"oneof=development staging production"`
	Version     string        `yaml:"version" mapstructure:"version"`
	Debug       bool          `yaml:"debug" mapstructure:"debug"`
	Logging     logger.Config `yaml:"logging" mapstructure:"logging"`
}

// ApplyDefaults applies default values to the base configuration.
func (c *ServiceConfig) ApplyDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Environment == "development" {
		c.Debug = true
	}
	if c.Version == "" {
		c.Version = version.Short()
	}
	c.Logging.ApplyDefaults()
	if c.Debug && c.Logging.Level == "info" {
		c.Logging.Level = "debug"
	}
}

// Validate validates the base configuration fields.
func (c *ServiceConfig) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config.logging: %w", err)
	}
	return nil
}

// TracingConfig controls stage spans.
type TracingConfig struct {
	Enabled    bool    `yaml:"enabled" mapstructure:"enabled"`
	SampleRate float64 `yaml:"sample_rate" mapstructure:"sample_rate" validate:"gte=0,lte=1"`
}

// PipelineConfig configures a pipeline: its name, logging, tracing and the
// retry policy applied to every stage.
type PipelineConfig struct {
	ServiceConfig `yaml:",inline" mapstructure:",squash"`
	Tracing       TracingConfig          `yaml:"tracing" mapstructure:"tracing"`
	Retry         resilience.RetryConfig `yaml:"retry" mapstructure:"retry"`
}

// ApplyDefaults applies defaults to the pipeline and embedded service config.
// Retries stay disabled unless max_attempts is set.
func (c *PipelineConfig) ApplyDefaults() {
	c.ServiceConfig.ApplyDefaults()
	if c.Tracing.Enabled && c.Tracing.SampleRate == 0 {
		c.Tracing.SampleRate = 1.0
	}
	if c.Retry.Enabled() {
		defaults := resilience.DefaultRetryConfig()
		if c.Retry.InitialBackoff == 0 {
			c.Retry.InitialBackoff = defaults.InitialBackoff
		}
		if c.Retry.MaxBackoff == 0 {
			c.Retry.MaxBackoff = defaults.MaxBackoff
		}
		if c.Retry.BackoffFactor == 0 {
			c.Retry.BackoffFactor = defaults.BackoffFactor
		}
	}
}

// Validate validates struct tags plus cross-field constraints.
func (c *PipelineConfig) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := validation.Validate(c); err != nil {
		return err
	}

	v := validation.New()
	v.Custom(c.Retry.MaxBackoff == 0 || c.Retry.MaxBackoff >= c.Retry.InitialBackoff,
		"retry.max_backoff", "must not be less than retry.initial_backoff")
	v.Custom(!c.Retry.Enabled() || c.Retry.BackoffFactor >= 1,
		"retry.backoff_factor", "must be at least 1 when retries are enabled")
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}
