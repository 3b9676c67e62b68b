package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"
	"time"

	"github.com/JonnyWalker81/lifedash/internal/insight"
	"github.com/JonnyWalker81/lifedash/internal/logger"
	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrNoConfigFile is returned by Watch when no config file was found
var ErrNoConfigFile = errors.New("no config file in use")

// Config holds all configuration for the application
type Config struct {
	Server  ServerConfig  `mapstructure:"server" yaml:"server"`
	Data    DataConfig    `mapstructure:"data" yaml:"data"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
	Insight InsightConfig `mapstructure:"insight" yaml:"insight"`
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port               string   `mapstructure:"port" yaml:"port"`
	Env                string   `mapstructure:"env" yaml:"env"`
	APIToken           string   `mapstructure:"api_token" yaml:"api_token"`
	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins" yaml:"cors_allowed_origins"`
}

// DataConfig locates the CSV files
type DataConfig struct {
	Dir string `mapstructure:"dir" yaml:"dir"`
}

// LogConfig selects the logging backend and verbosity
type LogConfig struct {
	Level     string `mapstructure:"level" yaml:"level"`
	Format    string `mapstructure:"format" yaml:"format"`
	Backend   string `mapstructure:"backend" yaml:"backend"`
	AddSource bool   `mapstructure:"add_source" yaml:"add_source"`
}

// InsightConfig holds the engine settings. Metric lists and labels
// default to the built-in dashboard layout.
type InsightConfig struct {
	Timezone          string                    `mapstructure:"timezone" yaml:"timezone"`
	ResetStart        string                    `mapstructure:"reset_start" yaml:"reset_start"`
	WeightCheckpoints map[string]float64        `mapstructure:"weight_checkpoints" yaml:"weight_checkpoints"`
	BuildHabits       []string                  `mapstructure:"build_habits" yaml:"build_habits"`
	AvoidMetrics      []string                  `mapstructure:"avoid_metrics" yaml:"avoid_metrics"`
	DangerMetrics     []string                  `mapstructure:"danger_metrics" yaml:"danger_metrics"`
	CorrelationPairs  []insight.CorrelationPair `mapstructure:"correlation_pairs" yaml:"correlation_pairs"`
	Labels            map[string]string         `mapstructure:"labels" yaml:"labels"`
}

// Loader reads configuration from defaults, an optional YAML file, .env and
// LIFEDASH_* environment variables. It can watch the file for changes.
type Loader struct {
	mu       sync.Mutex
	v        *viper.Viper
	envFiles []string
}

// NewLoader creates a loader. An empty path searches ./config.yaml and
// ./config/config.yaml.
func NewLoader(path string, envFiles ...string) *Loader {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("LIFEDASH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// PORT is honored for platforms that inject it
	_ = v.BindEnv("server.port", "LIFEDASH_SERVER_PORT", "PORT")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	return &Loader{v: v, envFiles: envFiles}
}

func setDefaults(v *viper.Viper) {
	d := insight.DefaultSettings()

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.env", "development")
	v.SetDefault("server.api_token", "")
	v.SetDefault("server.cors_allowed_origins", []string{})

	v.SetDefault("data.dir", "./data")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.backend", logger.BackendSlog)
	v.SetDefault("log.add_source", false)

	v.SetDefault("insight.timezone", "Local")
	v.SetDefault("insight.reset_start", "")
	v.SetDefault("insight.weight_checkpoints", map[string]float64{})
	v.SetDefault("insight.build_habits", d.BuildHabits)
	v.SetDefault("insight.avoid_metrics", d.AvoidMetrics)
	v.SetDefault("insight.danger_metrics", d.DangerMetrics)
	v.SetDefault("insight.correlation_pairs", d.CorrelationPairs)
	v.SetDefault("insight.labels", d.Labels)
}

// Load reads and validates the configuration
func (l *Loader) Load() (*Config, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, f := range l.envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error loading %s: %w", f, err)
		}
	}

	// It's okay if no config file is found on the search path.
	// An explicit --config path must exist.
	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return l.decode()
}

func (l *Loader) decode() (*Config, error) {
	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ConfigFileUsed returns the path of the loaded config file, if any
func (l *Loader) ConfigFileUsed() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.v.ConfigFileUsed()
}

// Watch re-decodes the configuration whenever the config file changes and
// hands the result to onChange. Invalid edits are reported as errors and
// the caller keeps its previous configuration.
func (l *Loader) Watch(onChange func(*Config, error)) error {
	if l.ConfigFileUsed() == "" {
		return ErrNoConfigFile
	}

	l.v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		l.mu.Lock()
		cfg, err := l.decode()
		l.mu.Unlock()
		onChange(cfg, err)
	})
	l.v.WatchConfig()
	return nil
}

// Validate checks that all required configuration values are present
func (c *Config) Validate() error {
	if c.Data.Dir == "" {
		return fmt.Errorf("data.dir is required")
	}

	switch c.Log.Backend {
	case logger.BackendSlog, logger.BackendZap:
	default:
		return fmt.Errorf("log.backend must be %q or %q, got %q", logger.BackendSlog, logger.BackendZap, c.Log.Backend)
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text, got %q", c.Log.Format)
	}

	if c.Insight.ResetStart == "" {
		return fmt.Errorf("insight.reset_start is required (YYYY-MM-DD)")
	}
	if _, err := insight.ParseDate(c.Insight.ResetStart); err != nil {
		return fmt.Errorf("insight.reset_start %q is not a YYYY-MM-DD date: %w", c.Insight.ResetStart, err)
	}
	if _, err := c.Insight.Location(); err != nil {
		return err
	}
	if len(c.Insight.BuildHabits) == 0 {
		return fmt.Errorf("insight.build_habits must not be empty")
	}
	return nil
}

// Location resolves the configured timezone
func (c InsightConfig) Location() (*time.Location, error) {
	if c.Timezone == "" || strings.EqualFold(c.Timezone, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("insight.timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Settings converts the insight section into engine settings. Call only on
// a validated config.
func (c InsightConfig) Settings() insight.Settings {
	s := insight.DefaultSettings()
	s.ResetStart, _ = insight.ParseDate(c.ResetStart)
	if c.WeightCheckpoints != nil {
		s.WeightCheckpoints = c.WeightCheckpoints
	}
	if len(c.BuildHabits) > 0 {
		s.BuildHabits = c.BuildHabits
	}
	if c.AvoidMetrics != nil {
		s.AvoidMetrics = c.AvoidMetrics
	}
	if c.DangerMetrics != nil {
		s.DangerMetrics = c.DangerMetrics
	}
	if c.CorrelationPairs != nil {
		s.CorrelationPairs = c.CorrelationPairs
	}
	for k, v := range c.Labels {
		s.Labels[k] = v
	}
	return s
}

// LoggerConfig converts the log section into logger settings
func (c LogConfig) LoggerConfig() logger.Config {
	return logger.Config{
		Level:     logger.ParseLevel(c.Level),
		Format:    c.Format,
		Backend:   c.Backend,
		AddSource: c.AddSource,
	}
}
