package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the sitesearch configuration.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Index   IndexConfig   `yaml:"index"`
	Site    SiteConfig    `yaml:"site"`
	Render  RenderConfig  `yaml:"render"`
	Auth    AuthConfig    `yaml:"auth"`
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// IndexConfig says where search.json comes from. Exactly one of File and URL is set.
type IndexConfig struct {
	File            string `yaml:"file"`              // local search.json
	URL             string `yaml:"url"`               // site root to fetch from
	Path            string `yaml:"path"`              // default /search.json
	FetchRetries    int    `yaml:"fetch_retries"`     // 0 = single attempt
	FetchTimeoutSec int    `yaml:"fetch_timeout_sec"` // 0 = no timeout
	RetryWaitMs     int    `yaml:"retry_wait_ms"`
}

// SiteConfig holds static site settings.
type SiteConfig struct {
	Dir string `yaml:"dir"` // served at / when set
}

// RenderConfig holds result rendering settings.
type RenderConfig struct {
	ExcerptLength int `yaml:"excerpt_length"` // runes, 0 = whole content
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	return Parse(data)
}

// Parse decodes YAML configuration, expanding ${VAR} references, then applies
// defaults and validates.
func Parse(data []byte) (Config, error) {
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// LoadDotEnv loads variables from a .env file in the working directory.
// A missing file is not an error; variables already set are kept.
func LoadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Index.Path == "" {
		c.Index.Path = "/search.json"
	}
	if c.Index.RetryWaitMs <= 0 {
		c.Index.RetryWaitMs = 1000
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch {
	case c.Index.File == "" && c.Index.URL == "":
		return fmt.Errorf("index.file or index.url is required")
	case c.Index.File != "" && c.Index.URL != "":
		return fmt.Errorf("index.file and index.url are mutually exclusive")
	}
	if c.Index.URL != "" && !strings.HasPrefix(c.Index.URL, "http://") && !strings.HasPrefix(c.Index.URL, "https://") {
		return fmt.Errorf("index.url must be an http(s) URL, got %q", c.Index.URL)
	}
	if c.Index.FetchRetries < 0 {
		return fmt.Errorf("index.fetch_retries must not be negative, got %d", c.Index.FetchRetries)
	}
	if c.Index.FetchTimeoutSec < 0 {
		return fmt.Errorf("index.fetch_timeout_sec must not be negative, got %d", c.Index.FetchTimeoutSec)
	}
	if c.Render.ExcerptLength < 0 {
		return fmt.Errorf("render.excerpt_length must not be negative, got %d", c.Render.ExcerptLength)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
