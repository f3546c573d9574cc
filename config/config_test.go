package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kbukum/railway/errors"
	"github.com/kbukum/railway/version"
)

func TestServiceConfigApplyDefaults(t *testing.T) {
	t.Run("empty environment defaults to development", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc"}
		cfg.ApplyDefaults()
		if cfg.Environment != "development" {
			t.Errorf("expected 'development', got %q", cfg.Environment)
		}
		if !cfg.Debug {
			t.Error("expected debug=true for development")
		}
		if cfg.Logging.Level != "debug" {
			t.Errorf("expected debug log level in development, got %q", cfg.Logging.Level)
		}
	})

	t.Run("production keeps debug false", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc", Environment: "production"}
		cfg.ApplyDefaults()
		if cfg.Debug {
			t.Error("expected debug=false for production")
		}
		if cfg.Logging.Level != "info" {
			t.Errorf("expected info log level, got %q", cfg.Logging.Level)
		}
	})

	t.Run("version defaults to the build version", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc"}
		cfg.ApplyDefaults()
		if cfg.Version != version.Short() {
			t.Errorf("expected %q, got %q", version.Short(), cfg.Version)
		}

		cfg = ServiceConfig{Name: "svc", Version: "1.4.0"}
		cfg.ApplyDefaults()
		if cfg.Version != "1.4.0" {
			t.Errorf("configured version should be kept, got %q", cfg.Version)
		}
	})
}

func TestServiceConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     ServiceConfig
		wantErr string
	}{
		{"valid development", ServiceConfig{Name: "svc", Environment: "development"}, ""},
		{"valid staging", ServiceConfig{Name: "svc", Environment: "staging"}, ""},
		{"valid production", ServiceConfig{Name: "svc", Environment: "production"}, ""},
		{"missing name", ServiceConfig{Environment: "production"}, "name: is required"},
		{"invalid environment", ServiceConfig{Name: "svc", Environment: "invalid"}, "environment: must be one of"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.cfg.Logging.ApplyDefaults()
			err := tc.cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("expected error containing %q, got %q", tc.wantErr, err.Error())
			}
			if code, _ := errors.CodeOf(err); code != errors.ErrCodeInvalidInput {
				t.Errorf("expected INVALID_INPUT code, got %s", code)
			}
		})
	}
}

func TestServiceConfigValidate_Logging(t *testing.T) {
	cfg := ServiceConfig{Name: "svc", Environment: "production"}
	cfg.ApplyDefaults()
	cfg.Logging.Format = "xml"
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "config.logging") {
		t.Errorf("expected logging error, got %v", err)
	}
}

func validPipelineConfig() PipelineConfig {
	cfg := PipelineConfig{ServiceConfig: ServiceConfig{Name: "foo-data", Environment: "production"}}
	cfg.ApplyDefaults()
	return cfg
}

func TestPipelineConfigApplyDefaults(t *testing.T) {
	cfg := PipelineConfig{ServiceConfig: ServiceConfig{Name: "foo-data"}}
	cfg.Tracing.Enabled = true
	cfg.Retry.MaxAttempts = 3
	cfg.ApplyDefaults()

	if cfg.Tracing.SampleRate != 1.0 {
		t.Errorf("expected sample rate 1.0, got %f", cfg.Tracing.SampleRate)
	}
	if cfg.Retry.InitialBackoff != 100*time.Millisecond {
		t.Errorf("expected default initial backoff, got %v", cfg.Retry.InitialBackoff)
	}
	if cfg.Retry.BackoffFactor != 2.0 {
		t.Errorf("expected default backoff factor, got %f", cfg.Retry.BackoffFactor)
	}

	disabled := PipelineConfig{ServiceConfig: ServiceConfig{Name: "foo-data"}}
	disabled.ApplyDefaults()
	if disabled.Retry.Enabled() {
		t.Error("expected retries disabled by default")
	}
	if disabled.Retry.InitialBackoff != 0 {
		t.Errorf("expected untouched backoff when disabled, got %v", disabled.Retry.InitialBackoff)
	}
}

func TestPipelineConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*PipelineConfig)
		wantErr string
	}{
		{"valid", func(*PipelineConfig) {}, ""},
		{"sample rate above one", func(c *PipelineConfig) { c.Tracing.SampleRate = 1.5 }, "tracing.sample_rate"},
		{"too many attempts", func(c *PipelineConfig) { c.Retry.MaxAttempts = 50 }, "retry.max_attempts"},
		{"jitter above one", func(c *PipelineConfig) { c.Retry.Jitter = 2 }, "retry.jitter"},
		{"max backoff below initial", func(c *PipelineConfig) {
			c.Retry.InitialBackoff = time.Second
			c.Retry.MaxBackoff = time.Millisecond
		}, "retry.max_backoff"},
		{"shrinking backoff", func(c *PipelineConfig) {
			c.Retry.MaxAttempts = 3
			c.Retry.BackoffFactor = 0.5
		}, "retry.backoff_factor"},
		{"missing name", func(c *PipelineConfig) { c.Name = "" }, "name"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validPipelineConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("expected error containing %q, got %q", tc.wantErr, err.Error())
			}
		})
	}
}

func TestLoadPipelineConfigFromYAML(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yml")
	yamlContent := `
name: foo-data
environment: staging
logging:
  level: warn
  format: json
tracing:
  enabled: true
retry:
  max_attempts: 4
  initial_backoff: 50ms
  max_backoff: 2s
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadPipelineConfig("foo-data", WithConfigFile(configPath), WithEnvPrefix("RAILWAY_TEST"))
	if err != nil {
		t.Fatalf("LoadPipelineConfig failed: %v", err)
	}
	if cfg.Name != "foo-data" || cfg.Environment != "staging" {
		t.Errorf("unexpected service config: %+v", cfg.ServiceConfig)
	}
	if cfg.Logging.Level != "warn" || cfg.Logging.Format != "json" {
		t.Errorf("unexpected logging config: %+v", cfg.Logging)
	}
	if !cfg.Tracing.Enabled || cfg.Tracing.SampleRate != 1.0 {
		t.Errorf("unexpected tracing config: %+v", cfg.Tracing)
	}
	if cfg.Retry.MaxAttempts != 4 || cfg.Retry.InitialBackoff != 50*time.Millisecond || cfg.Retry.MaxBackoff != 2*time.Second {
		t.Errorf("unexpected retry config: %+v", cfg.Retry)
	}
}

func TestLoadPipelineConfigEnvOverride(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(configPath, []byte("name: foo-data\nenvironment: production\n"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	t.Setenv("RAILWAY_TEST_ENVIRONMENT", "staging")
	t.Setenv("RAILWAY_TEST_RETRY_MAX_ATTEMPTS", "5")
	t.Setenv("RAILWAY_TEST_LOGGING_LEVEL", "error")

	cfg, err := LoadPipelineConfig("foo-data", WithConfigFile(configPath), WithEnvPrefix("railway_test_"))
	if err != nil {
		t.Fatalf("LoadPipelineConfig failed: %v", err)
	}
	if cfg.Environment != "staging" {
		t.Errorf("expected env override 'staging', got %q", cfg.Environment)
	}
	if cfg.Retry.MaxAttempts != 5 {
		t.Errorf("expected 5 attempts, got %d", cfg.Retry.MaxAttempts)
	}
	if cfg.Logging.Level != "error" {
		t.Errorf("expected log level 'error', got %q", cfg.Logging.Level)
	}
}

func TestLoadPipelineConfigDefaultsName(t *testing.T) {
	cfg, err := LoadPipelineConfig("foo-data",
		WithFileSystem(&mockFS{}),
		WithEnvPrefix("RAILWAY_UNSET_PREFIX"),
	)
	if err != nil {
		t.Fatalf("expected success with no config file, got %v", err)
	}
	if cfg.Name != "foo-data" {
		t.Errorf("expected name from service name, got %q", cfg.Name)
	}
}

func TestLoadPipelineConfigInvalid(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(configPath, []byte("name: foo\nenvironment: moon\n"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	_, err := LoadPipelineConfig("foo", WithConfigFile(configPath), WithEnvPrefix("RAILWAY_UNSET_PREFIX"))
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !errors.IsAppError(err) {
		t.Errorf("expected AppError, got %T", err)
	}
}

func TestLoadConfigUnreadableFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(configPath, []byte("name: [unterminated\n"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	var cfg PipelineConfig
	err := LoadConfig("foo", &cfg, WithConfigFile(configPath))
	if code, ok := errors.CodeOf(err); !ok || code != errors.ErrCodeInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %v", err)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	var cfg PipelineConfig
	err := LoadConfig("nonexistent-service", &cfg, WithConfigFile("/nonexistent/path.yml"))
	if err != nil {
		t.Fatalf("expected LoadConfig to succeed with missing file, got %v", err)
	}
}

func TestLoadConfigEnvFile(t *testing.T) {
	fs := &mockFS{
		files: map[string]bool{"./.env": true},
		env:   map[string]string{"RAILWAY_ENVFILE_NAME": "from-dotenv"},
		t:     t,
	}
	var cfg PipelineConfig
	if err := LoadConfig("svc", &cfg, WithFileSystem(fs), WithEnvPrefix("RAILWAY_ENVFILE")); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if !fs.loaded {
		t.Error("expected .env file to be loaded")
	}
	if cfg.Name != "from-dotenv" {
		t.Errorf("expected name from .env, got %q", cfg.Name)
	}
}

func TestResolverWithMockFS(t *testing.T) {
	tests := []struct {
		name       string
		files      []string
		wantConfig string
		wantEnv    string
	}{
		{"cmd directory", []string{"./cmd/my-svc/config.yml"}, "./cmd/my-svc/config.yml", ""},
		{"short name", []string{"../cmd/svc/config.yml"}, "../cmd/svc/config.yml", ""},
		{"config dir beats root", []string{"./config/config.yml", "./config.yml"}, "./config/config.yml", ""},
		{"service env file first", []string{"./.env", "./cmd/my-svc/.env.my-svc"}, "", "./cmd/my-svc/.env.my-svc"},
		{"nothing found", nil, "", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fs := &mockFS{files: map[string]bool{}}
			for _, f := range tc.files {
				fs.files[f] = true
			}
			resolver := &Resolver{FileSystem: fs}
			files := resolver.ResolveFiles("my-svc", LoaderConfig{})
			if files.ConfigFile != tc.wantConfig {
				t.Errorf("expected config file %q, got %q", tc.wantConfig, files.ConfigFile)
			}
			if files.EnvFile != tc.wantEnv {
				t.Errorf("expected env file %q, got %q", tc.wantEnv, files.EnvFile)
			}
		})
	}
}

func TestResolverExplicitPaths(t *testing.T) {
	resolver := &Resolver{FileSystem: &mockFS{}}
	files := resolver.ResolveFiles("svc", LoaderConfig{ConfigFile: "a.yml", EnvFile: "b.env"})
	if files.ConfigFile != "a.yml" || files.EnvFile != "b.env" {
		t.Errorf("expected explicit paths, got %+v", files)
	}
}

func TestEnvKeyVariants(t *testing.T) {
	got := envKeyVariants("RETRY_MAX_ATTEMPTS")
	want := map[string]bool{
		"retry_max_attempts": true,
		"retry.max.attempts": true,
		"retry.max_attempts": true,
		"retry_max.attempts": true,
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d variants, got %v", len(want), got)
	}
	for _, v := range got {
		if !want[v] {
			t.Errorf("unexpected variant %q", v)
		}
	}

	if single := envKeyVariants("NAME"); len(single) != 1 || single[0] != "name" {
		t.Errorf("expected [name], got %v", single)
	}
}

func TestLoaderOptions(t *testing.T) {
	var lc LoaderConfig
	fs := &mockFS{}
	WithFileSystem(fs)(&lc)
	WithConfigFile("/path/to/config.yml")(&lc)
	WithEnvFile("/path/to/.env")(&lc)
	WithEnvPrefix("app_")(&lc)

	if lc.FileSystem == nil {
		t.Error("expected FileSystem to be set")
	}
	if lc.ConfigFile != "/path/to/config.yml" {
		t.Errorf("expected config file path, got %q", lc.ConfigFile)
	}
	if lc.EnvFile != "/path/to/.env" {
		t.Errorf("expected env file path, got %q", lc.EnvFile)
	}
	if lc.EnvPrefix != "APP" {
		t.Errorf("expected prefix 'APP', got %q", lc.EnvPrefix)
	}
}

type mockFS struct {
	files  map[string]bool
	env    map[string]string
	loaded bool
	t      *testing.T
}

func (m *mockFS) Exists(path string) bool { return m.files[path] }

func (m *mockFS) LoadEnv(string) error {
	m.loaded = true
	for k, v := range m.env {
		m.t.Setenv(k, v)
	}
	return nil
}
