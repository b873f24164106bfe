package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"strfilter/filter"
	"strfilter/sources"
	"strfilter/transformations"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	envKeyConfigPath    = "STRFILTER_CONFIG"
	envKeyLogLevel      = "STRFILTER_LOG_LEVEL"
	envKeyThreshold     = "STRFILTER_THRESHOLD"
	envKeyRedisAddr     = "STRFILTER_REDIS_ADDR"
	envKeyRedisPassword = "STRFILTER_REDIS_PASSWORD"
	envKeyRedisDB       = "STRFILTER_REDIS_DB"
	envKeyCacheTTL      = "STRFILTER_CACHE_TTL"

	DefaultPath      = ".strfilter.yaml"
	DefaultThreshold = 50
	DefaultLogLevel  = "info"
	defaultCacheTTL  = 10 * time.Minute
)

// ExecutionOutput controls where an execution writes its documents
type ExecutionOutput struct {
	Name      string `yaml:"name"`
	Directory string `yaml:"directory"`
}

// Execution is a predefined filtering task
type Execution struct {
	Name        string          `yaml:"name"`
	Output      ExecutionOutput `yaml:"output"`
	Contexts    []string        `yaml:"contexts"`
	KubeContext string          `yaml:"kube-context"`
	Threshold   *int            `yaml:"threshold"`
	Strategies  []filter.Config `yaml:"strategies"`
}

// CacheConfig selects the result cache. Without a Redis address results are cached in memory.
type CacheConfig struct {
	TTL           time.Duration `yaml:"ttl"`
	RedisAddr     string        `yaml:"redis-addr"`
	RedisPassword string        `yaml:"redis-password"`
	RedisDB       int           `yaml:"redis-db"`
}

// Config represents the contents of .strfilter.yaml
type Config struct {
	Threshold       int                      `yaml:"threshold"`
	Contexts        []string                 `yaml:"contexts"`
	Sources         []sources.Source         `yaml:"sources"`
	Strategies      []filter.Config          `yaml:"strategies"`
	Transformations []transformations.Config `yaml:"transformations"`
	Executions      []Execution              `yaml:"executions"`
	Cache           CacheConfig              `yaml:"cache"`
	Gitignore       *bool                    `yaml:"gitignore"`
}

// LoadEnv loads a .env file from the working directory when there is one
func LoadEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}

// ResolvePath picks the config path from the flag, then STRFILTER_CONFIG, then the default
func ResolvePath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return getEnv(envKeyConfigPath, DefaultPath)
}

// LogLevel returns the log level from the flag, or STRFILTER_LOG_LEVEL, or the default
func LogLevel(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return getEnv(envKeyLogLevel, DefaultLogLevel)
}

// Load reads and validates the configuration file at path, applying environment overrides
func Load(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	config, err := Parse(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return config, nil
}

// Parse decodes YAML content, applies defaults and environment overrides, and validates the result
func Parse(content []byte) (*Config, error) {
	config := &Config{Threshold: DefaultThreshold}
	if err := yaml.Unmarshal(content, config); err != nil {
		return nil, err
	}

	if err := config.applyEnv(); err != nil {
		return nil, err
	}
	if config.Cache.TTL == 0 {
		config.Cache.TTL = defaultCacheTTL
	}
	if len(config.Strategies) == 0 {
		config.Strategies = []filter.Config{{Type: filter.TypeSharedSubstrings}}
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return config, nil
}

func (c *Config) applyEnv() error {
	if value := strings.TrimSpace(os.Getenv(envKeyThreshold)); value != "" {
		threshold, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid %s: %s", envKeyThreshold, value)
		}
		c.Threshold = threshold
	}
	if value := strings.TrimSpace(os.Getenv(envKeyRedisAddr)); value != "" {
		c.Cache.RedisAddr = value
	}
	if value := os.Getenv(envKeyRedisPassword); value != "" {
		c.Cache.RedisPassword = value
	}
	if value := strings.TrimSpace(os.Getenv(envKeyRedisDB)); value != "" {
		db, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid %s: %s", envKeyRedisDB, value)
		}
		c.Cache.RedisDB = db
	}
	if value := strings.TrimSpace(os.Getenv(envKeyCacheTTL)); value != "" {
		ttl, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid %s: %s", envKeyCacheTTL, value)
		}
		c.Cache.TTL = ttl
	}
	return nil
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Threshold < 0 {
		return fmt.Errorf("threshold must not be negative, got %d", c.Threshold)
	}
	if err := validateStrategies(c.Strategies); err != nil {
		return err
	}
	if _, err := transformations.BuildAll(c.Transformations); err != nil {
		return err
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache ttl must be positive, got %s", c.Cache.TTL)
	}

	seen := make(map[string]bool)
	for _, execution := range c.Executions {
		if execution.Name == "" {
			return fmt.Errorf("every execution needs a name")
		}
		if seen[execution.Name] {
			return fmt.Errorf("duplicate execution name %q", execution.Name)
		}
		seen[execution.Name] = true

		if execution.Threshold != nil && *execution.Threshold < 0 {
			return fmt.Errorf("threshold of execution %q must not be negative", execution.Name)
		}
		if err := validateStrategies(execution.Strategies); err != nil {
			return fmt.Errorf("execution %q: %w", execution.Name, err)
		}
	}

	return nil
}

func validateStrategies(configs []filter.Config) error {
	for _, s := range configs {
		if !filter.IsKnownType(s.Type) {
			return fmt.Errorf("unknown strategy type: %s (must be one of %s)", s.Type, strings.Join(filter.Types, ", "))
		}
		if s.Threshold != nil && *s.Threshold < 0 {
			return fmt.Errorf("threshold of strategy %s must not be negative", s.Type)
		}
	}
	return nil
}

// GitignoreEnabled reports whether outputs should be checked against .gitignore
func (c *Config) GitignoreEnabled() bool {
	return c.Gitignore == nil || *c.Gitignore
}

// ThresholdFor returns the threshold an execution runs with
func (c *Config) ThresholdFor(execution Execution) int {
	if execution.Threshold != nil {
		return *execution.Threshold
	}
	return c.Threshold
}

// StrategiesFor returns the strategies an execution runs with
func (c *Config) StrategiesFor(execution Execution) []filter.Config {
	if len(execution.Strategies) > 0 {
		return execution.Strategies
	}
	return c.Strategies
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}
