// Package config loads and validates railway configuration.
//
// Files are resolved from standard locations (config.yml and .env next to
// the service's cmd directory, a config directory, or the working
// directory) and read with Viper. Environment variables override file
// values: LOGGING_LEVEL sets logging.level, RETRY_MAX_ATTEMPTS sets
// retry.max_attempts. An optional prefix scopes which variables apply.
//
// # Usage
//
//	cfg, err := config.LoadPipelineConfig("foo-data", config.WithEnvPrefix("RAILWAY"))
//	if err != nil {
//	    return err
//	}
//	p := pipeline.New("foo-data", classifier, pipeline.WithConfig(*cfg))
package config
