// Package config loads communityboard settings from a YAML file, an optional
// .env file and environment overrides, in that order of precedence (later
// wins).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment overrides.
const (
	APIURLEnv   = "COMMUNITYBOARD_API_URL"
	StateDirEnv = "COMMUNITYBOARD_STATE_DIR"
	TimeoutEnv  = "COMMUNITYBOARD_TIMEOUT"
	LogLevelEnv = "COMMUNITYBOARD_LOG_LEVEL"
)

const (
	// DefaultStateBase is the state directory under the user's home.
	DefaultStateBase = ".communityboard"
	// FileName is the config file inside the state directory.
	FileName = "config.yaml"
)

// Config holds all communityboard configuration.
type Config struct {
	API       APIConfig       `yaml:"api"`
	StateDir  string          `yaml:"state_dir"`
	Logging   LoggingConfig   `yaml:"logging"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// APIConfig locates the community backend.
type APIConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"` // Go duration, e.g. "15s"
}

// LoggingConfig configures the zap logger. File is relative to StateDir
// unless absolute.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// TelemetryConfig names the service in exported traces. Export itself is
// enabled by OTEL_EXPORTER_OTLP_ENDPOINT.
type TelemetryConfig struct {
	ServiceName string `yaml:"service_name"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "http://localhost:5000",
			Timeout: "15s",
		},
		StateDir: defaultStateDir(),
		Logging: LoggingConfig{
			Level: "info",
			File:  "communityboard.log",
		},
		Telemetry: TelemetryConfig{
			ServiceName: "communityboard",
		},
	}
}

func defaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultStateBase
	}
	return filepath.Join(home, DefaultStateBase)
}

// DefaultPath returns the config file location, honoring the state dir
// override.
func DefaultPath() string {
	dir := os.Getenv(StateDirEnv)
	if dir == "" {
		dir = defaultStateDir()
	}
	return filepath.Join(dir, FileName)
}

// Load reads path (missing file means defaults), then applies .env and
// environment overrides.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case os.IsNotExist(err):
		// Defaults only.
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := LoadDotEnv(".env"); err != nil {
		return nil, err
	}
	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDotEnv loads variables from the given files without overriding ones
// already set. Missing files are skipped.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// Save writes the configuration as YAML, creating the directory if needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(APIURLEnv); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv(StateDirEnv); v != "" {
		c.StateDir = v
	}
	if v := os.Getenv(TimeoutEnv); v != "" {
		c.API.Timeout = v
	}
	if v := os.Getenv(LogLevelEnv); v != "" {
		c.Logging.Level = v
	}
}

// Validate checks values that would otherwise fail later.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return errors.New("api.base_url must not be empty")
	}
	if _, err := c.RequestTimeout(); err != nil {
		return err
	}
	return nil
}

// RequestTimeout parses API.Timeout; empty means 15s.
func (c *Config) RequestTimeout() (time.Duration, error) {
	if c.API.Timeout == "" {
		return 15 * time.Second, nil
	}
	d, err := time.ParseDuration(c.API.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid api.timeout %q: %w", c.API.Timeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid api.timeout %q: must be positive", c.API.Timeout)
	}
	return d, nil
}

// LogPath resolves Logging.File against StateDir. Empty means stderr.
func (c *Config) LogPath() string {
	if c.Logging.File == "" || filepath.IsAbs(c.Logging.File) {
		return c.Logging.File
	}
	return filepath.Join(c.StateDir, c.Logging.File)
}
