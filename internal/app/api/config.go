package api

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/Apurer/paws-adoption-api/internal/platform/observability"
	"github.com/Apurer/paws-adoption-api/internal/shared/search"
)

// ConfigFileEnv names the variable pointing at an optional YAML config file.
const ConfigFileEnv = "PAWS_CONFIG_FILE"

// Config carries the settings for the API process.
type Config struct {
	Port            string `yaml:"port"`
	PostgresDSN     string `yaml:"postgres_dsn"`
	AutoMigrate     bool   `yaml:"auto_migrate"`
	LogLevel        string `yaml:"log_level"`
	Environment     string `yaml:"environment"`
	TracesExporter  string `yaml:"otel_traces_exporter"`
	DefaultPageSize int    `yaml:"default_page_size"`
	MaxPageSize     int    `yaml:"max_page_size"`
	SlowQueryMillis int    `yaml:"db_slow_query_ms"`
}

func defaultConfig() Config {
	return Config{
		Port:            "8080",
		LogLevel:        "info",
		Environment:     "local",
		TracesExporter:  observability.ExporterOTLP,
		DefaultPageSize: search.DefaultLimits.DefaultSize,
		MaxPageSize:     search.DefaultLimits.MaxSize,
		SlowQueryMillis: 200,
	}
}

// PageLimits returns the paging bounds applied to search endpoints.
func (c Config) PageLimits() search.Limits {
	return search.Limits{DefaultSize: c.DefaultPageSize, MaxSize: c.MaxPageSize}
}

// SlowQueryThreshold is the duration after which SQL statements log at warn.
func (c Config) SlowQueryThreshold() time.Duration {
	return time.Duration(c.SlowQueryMillis) * time.Millisecond
}

// LoadConfig layers defaults, the optional YAML file and the environment (a
// local .env file included), then validates the result.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	cfg := defaultConfig()
	if path := strings.TrimSpace(os.Getenv(ConfigFileEnv)); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.Port = envDefault("PORT", c.Port)
	c.PostgresDSN = envDefault("POSTGRES_DSN", c.PostgresDSN)
	c.LogLevel = envDefault("LOG_LEVEL", c.LogLevel)
	c.Environment = envDefault("ENVIRONMENT", c.Environment)
	c.TracesExporter = strings.ToLower(envDefault("OTEL_TRACES_EXPORTER", c.TracesExporter))
	if raw, ok := lookupEnv("AUTO_MIGRATE"); ok {
		c.AutoMigrate = isTruthy(raw)
	}
	for key, target := range map[string]*int{
		"DEFAULT_PAGE_SIZE": &c.DefaultPageSize,
		"MAX_PAGE_SIZE":     &c.MaxPageSize,
		"DB_SLOW_QUERY_MS":  &c.SlowQueryMillis,
	} {
		raw, ok := lookupEnv(key)
		if !ok {
			continue
		}
		value, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("%s must be an integer", key)
		}
		*target = value
	}
	return nil
}

// Validate checks the settings that would otherwise fail at request time.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Port) == "" {
		errs = append(errs, errors.New("PORT is required"))
	}
	if c.DefaultPageSize <= 0 || c.MaxPageSize <= 0 {
		errs = append(errs, errors.New("page sizes must be positive"))
	} else if c.DefaultPageSize > c.MaxPageSize {
		errs = append(errs, fmt.Errorf("DEFAULT_PAGE_SIZE %d exceeds MAX_PAGE_SIZE %d", c.DefaultPageSize, c.MaxPageSize))
	}
	if c.SlowQueryMillis < 0 {
		errs = append(errs, errors.New("DB_SLOW_QUERY_MS cannot be negative"))
	}
	switch c.TracesExporter {
	case observability.ExporterOTLP, observability.ExporterStdout, observability.ExporterNone:
	default:
		errs = append(errs, fmt.Errorf("unknown OTEL_TRACES_EXPORTER %q", c.TracesExporter))
	}
	return errors.Join(errs...)
}

func lookupEnv(key string) (string, bool) {
	val, ok := os.LookupEnv(key)
	val = strings.TrimSpace(val)
	return val, ok && val != ""
}

func envDefault(key, fallback string) string {
	if val, ok := lookupEnv(key); ok {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
