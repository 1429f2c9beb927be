// Package config provides configuration management for ohcrab
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config holds all configuration for the application
type Config struct {
	App        AppConfig        `mapstructure:"app" yaml:"app" json:"app"`
	Shell      ShellConfig      `mapstructure:"shell" yaml:"shell" json:"shell"`
	Rules      RulesConfig      `mapstructure:"rules" yaml:"rules" json:"rules"`
	Pipeline   PipelineConfig   `mapstructure:"pipeline" yaml:"pipeline" json:"pipeline"`
	Vocabulary VocabularyConfig `mapstructure:"vocabulary" yaml:"vocabulary" json:"vocabulary"`
	Capture    CaptureConfig    `mapstructure:"capture" yaml:"capture" json:"capture"`
	Output     OutputConfig     `mapstructure:"output" yaml:"output" json:"output"`
	Logging    LoggingConfig    `mapstructure:"logging" yaml:"logging" json:"logging"`
}

// AppConfig holds application settings
type AppConfig struct {
	Debug bool `mapstructure:"debug" yaml:"debug" json:"debug"`
}

// ShellConfig selects the shell used to compose and capture commands.
type ShellConfig struct {
	// Name is a shell executable name; empty means detect from $SHELL.
	Name string `mapstructure:"name" yaml:"name" json:"name"`
}

// RulesConfig adjusts the rule registry
type RulesConfig struct {
	Enabled  []string       `mapstructure:"enabled" yaml:"enabled" json:"enabled"`
	Disabled []string       `mapstructure:"disabled" yaml:"disabled" json:"disabled"`
	Priority map[string]int `mapstructure:"priority" yaml:"priority" json:"priority"`
}

// PipelineConfig holds dispatcher settings
type PipelineConfig struct {
	Workers int `mapstructure:"workers" yaml:"workers" json:"workers"`
}

// VocabularyConfig controls discovery of subcommands from tool help output
type VocabularyConfig struct {
	Timeout   time.Duration `mapstructure:"timeout" yaml:"timeout" json:"timeout"`
	Cache     bool          `mapstructure:"cache" yaml:"cache" json:"cache"`
	CacheSize int           `mapstructure:"cache_size" yaml:"cache_size" json:"cache_size"`
	CacheTTL  time.Duration `mapstructure:"cache_ttl" yaml:"cache_ttl" json:"cache_ttl"`
}

// CaptureConfig controls re-running the failed command for its output
type CaptureConfig struct {
	Enabled bool          `mapstructure:"enabled" yaml:"enabled" json:"enabled"`
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout" json:"timeout"`
}

// OutputConfig holds presentation settings
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format" json:"format"`
	Limit  int    `mapstructure:"limit" yaml:"limit" json:"limit"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level      string `mapstructure:"level" yaml:"level" json:"level"`
	File       string `mapstructure:"file" yaml:"file" json:"file"`
	MaxSize    int    `mapstructure:"max_size" yaml:"max_size" json:"max_size"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups" json:"max_backups"`
}

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

var (
	// globalConfig holds the global configuration instance
	globalConfig *Config
	// configPath is the path of the last loaded config file
	configPath string
)

// Load reads the configuration from path (or the default location), with
// OHCRAB_* environment variables taking precedence. A missing file is
// created with documented defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	setDefaults(v)

	v.SetEnvPrefix("OHCRAB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfig), 0o644); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read created config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.Logging.File != "" {
		cfg.Logging.File = expandPath(cfg.Logging.File)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	configPath = path
	globalConfig = &cfg
	return &cfg, nil
}

// Default returns the built-in configuration without touching disk.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// Get returns the global configuration instance, falling back to the
// defaults when nothing was loaded.
func Get() *Config {
	if globalConfig == nil {
		return Default()
	}
	return globalConfig
}

// Set updates the global configuration
func Set(cfg *Config) {
	globalConfig = cfg
}

// Path returns the file the active configuration was read from, or the
// default location when nothing was loaded.
func Path() string {
	if configPath == "" {
		return DefaultPath()
	}
	return configPath
}

// Validate reports values the rest of the program cannot work with.
func (c *Config) Validate() error {
	var errs []error
	if c.Pipeline.Workers < 0 {
		errs = append(errs, fmt.Errorf("%w: pipeline.workers must not be negative", ErrInvalid))
	}
	if c.Vocabulary.Timeout < 0 {
		errs = append(errs, fmt.Errorf("%w: vocabulary.timeout must not be negative", ErrInvalid))
	}
	if c.Vocabulary.Cache && c.Vocabulary.CacheSize <= 0 {
		errs = append(errs, fmt.Errorf("%w: vocabulary.cache_size must be positive when caching", ErrInvalid))
	}
	if c.Vocabulary.CacheTTL < 0 {
		errs = append(errs, fmt.Errorf("%w: vocabulary.cache_ttl must not be negative", ErrInvalid))
	}
	if c.Capture.Timeout < 0 {
		errs = append(errs, fmt.Errorf("%w: capture.timeout must not be negative", ErrInvalid))
	}
	if c.Output.Limit < 0 {
		errs = append(errs, fmt.Errorf("%w: output.limit must not be negative", ErrInvalid))
	}
	switch c.Output.Format {
	case FormatText, FormatJSON, FormatYAML:
	default:
		errs = append(errs, fmt.Errorf("%w: output.format %q is not one of text, json, yaml", ErrInvalid, c.Output.Format))
	}
	for name, p := range c.Rules.Priority {
		if p < 0 {
			errs = append(errs, fmt.Errorf("%w: rules.priority.%s must not be negative", ErrInvalid, name))
		}
	}
	return errors.Join(errs...)
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.debug", false)

	v.SetDefault("shell.name", "")

	v.SetDefault("rules.enabled", []string{})
	v.SetDefault("rules.disabled", []string{})
	v.SetDefault("rules.priority", map[string]int{})

	v.SetDefault("pipeline.workers", 1)

	v.SetDefault("vocabulary.timeout", 3*time.Second)
	v.SetDefault("vocabulary.cache", false)
	v.SetDefault("vocabulary.cache_size", 64)
	v.SetDefault("vocabulary.cache_ttl", 10*time.Minute)

	v.SetDefault("capture.enabled", true)
	v.SetDefault("capture.timeout", 3*time.Second)

	v.SetDefault("output.format", FormatText)
	v.SetDefault("output.limit", 0)

	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.file", "")
	v.SetDefault("logging.max_size", 10)
	v.SetDefault("logging.max_backups", 3)
}

const defaultConfig = `# ohcrab configuration

app:
  debug: false

shell:
  # Executable name of the shell suggestions are written for.
  # Leave empty to use $SHELL.
  name: ""

rules:
  # Rules that are off by default and should run.
  enabled: []
  # Rules that should never run.
  disabled: []
  # Base priority overrides; lower sorts first.
  priority: {}

pipeline:
  # Rules evaluated in parallel. 1 evaluates them one after another.
  workers: 1

vocabulary:
  # Bound on running a tool's --help to learn its subcommands.
  timeout: 3s
  # Remember discovered subcommands for the rest of the process.
  cache: false
  cache_size: 64
  cache_ttl: 10m

capture:
  # Re-run the failed command to read its output when none was given.
  enabled: true
  timeout: 3s

output:
  # text, json or yaml
  format: text
  # Maximum suggestions shown; 0 shows all.
  limit: 0

logging:
  level: warn
  file: ""
  max_size: 10
  max_backups: 3
`

// expandPath expands ~ and environment variables in a path
func expandPath(path string) string {
	if strings.HasPrefix(path, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[1:])
		}
	}
	return os.ExpandEnv(path)
}

// DefaultPath returns the default configuration file path
func DefaultPath() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "ohcrab", "config.yaml")
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".ohcrab.yaml"
	}
	return filepath.Join(homeDir, ".config", "ohcrab", "config.yaml")
}
