package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const defaultConfigPath = "config.yaml"

const (
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
	StorageMemory   = "memory"

	defaultSQLitePath = "data/favourites.db"
	defaultNamespace  = "default"
)

// Config holds the application configuration.
type Config struct {
	APIPort    string `yaml:"api_port"`
	HealthPort string `yaml:"health_port"`

	// HTTP server timeouts (optional, defaults apply in server.go)
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`

	NewsAPI NewsAPIConfig `yaml:"news_api"`
	Storage StorageConfig `yaml:"storage"`

	// Database configuration (env vars only, secrets must not live in config.yaml).
	// Required only when Storage.Driver is "postgres".
	DBHost     string `yaml:"-"`
	DBPort     string `yaml:"-"`
	DBUser     string `yaml:"-"`
	DBPassword string `yaml:"-"`
	DBName     string `yaml:"-"`

	// Rate limiting of the news endpoints
	RateLimitRequests int           `yaml:"rate_limit_requests"` // Max requests per window (0 = disabled)
	RateLimitWindow   time.Duration `yaml:"rate_limit_window"`   // Time window for rate limiting
}

// NewsAPIConfig configures the news retrieval client. The key is read from NEWS_API_KEY only.
type NewsAPIConfig struct {
	BaseURL string        `yaml:"base_url"`
	Country string        `yaml:"country"`
	Timeout time.Duration `yaml:"timeout"`
	APIKey  string        `yaml:"-"`
}

// StorageConfig selects the durable key-value backend for favourites.
type StorageConfig struct {
	Driver     string `yaml:"driver"`
	SQLitePath string `yaml:"sqlite_path"`
	Namespace  string `yaml:"namespace"`
}

// Load reads configuration with the following precedence (highest wins):
//  1. Environment variables
//  2. YAML config file (path from CONFIG_PATH env var, or "config.yaml")
//
// Secrets (NEWS_API_KEY, POSTGRES_*) are loaded exclusively from environment variables.
func Load() (*Config, error) {
	cfg, err := LoadBase()
	if err != nil {
		return nil, err
	}

	if cfg.APIPort == "" {
		return nil, fmt.Errorf("api_port is required (set via config file or API_PORT env var)")
	}
	if cfg.HealthPort == "" {
		return nil, fmt.Errorf("health_port is required (set via config file or HEALTH_PORT env var)")
	}

	return cfg, nil
}

// LoadBase reads everything except the listen ports, which only the HTTP service needs.
func LoadBase() (*Config, error) {
	cfg := &Config{}

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = defaultConfigPath
	}

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	if v := os.Getenv("API_PORT"); v != "" {
		cfg.APIPort = v
	}
	if v := os.Getenv("HEALTH_PORT"); v != "" {
		cfg.HealthPort = v
	}

	// HTTP server timeouts (optional, defaults apply in server.go if zero)
	if v := os.Getenv("READ_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.ReadTimeout = d
		}
	}
	if v := os.Getenv("WRITE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.WriteTimeout = d
		}
	}
	if v := os.Getenv("IDLE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.IdleTimeout = d
		}
	}

	// News API (key is env only)
	cfg.NewsAPI.APIKey = os.Getenv("NEWS_API_KEY")
	if v := os.Getenv("NEWS_API_BASE_URL"); v != "" {
		cfg.NewsAPI.BaseURL = v
	}
	if v := os.Getenv("NEWS_API_COUNTRY"); v != "" {
		cfg.NewsAPI.Country = v
	}
	if v := os.Getenv("NEWS_API_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.NewsAPI.Timeout = d
		}
	}

	// Storage
	if v := os.Getenv("STORAGE_DRIVER"); v != "" {
		cfg.Storage.Driver = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Storage.SQLitePath = v
	}
	if v := os.Getenv("STORAGE_NAMESPACE"); v != "" {
		cfg.Storage.Namespace = v
	}
	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = StorageSQLite
	}
	if cfg.Storage.SQLitePath == "" {
		cfg.Storage.SQLitePath = defaultSQLitePath
	}
	if cfg.Storage.Namespace == "" {
		cfg.Storage.Namespace = defaultNamespace
	}

	switch cfg.Storage.Driver {
	case StorageSQLite, StorageMemory:
	case StoragePostgres:
		if err := cfg.loadPostgresEnv(); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown storage driver %q (allowed: %s, %s, %s)",
			cfg.Storage.Driver, StorageSQLite, StoragePostgres, StorageMemory)
	}

	// Rate limiting configuration (env vars override config file)
	if v := os.Getenv("RATE_LIMIT_REQUESTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.RateLimitRequests = n
		}
	}
	if v := os.Getenv("RATE_LIMIT_WINDOW"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RateLimitWindow = d
		}
	}

	// Apply rate limiting defaults if partially configured
	if cfg.RateLimitRequests > 0 && cfg.RateLimitWindow == 0 {
		cfg.RateLimitWindow = time.Minute // Default window: 1 minute
	}

	return cfg, nil
}

func (c *Config) loadPostgresEnv() error {
	c.DBHost = os.Getenv("POSTGRES_HOST")
	c.DBPort = os.Getenv("POSTGRES_PORT")
	c.DBUser = os.Getenv("POSTGRES_USER")
	c.DBPassword = os.Getenv("POSTGRES_PASSWORD")
	c.DBName = os.Getenv("POSTGRES_DB")

	if c.DBHost == "" {
		return fmt.Errorf("POSTGRES_HOST env var is required")
	}
	if c.DBPort == "" {
		return fmt.Errorf("POSTGRES_PORT env var is required")
	}
	if c.DBUser == "" {
		return fmt.Errorf("POSTGRES_USER env var is required")
	}
	if c.DBPassword == "" {
		return fmt.Errorf("POSTGRES_PASSWORD env var is required")
	}
	if c.DBName == "" {
		return fmt.Errorf("POSTGRES_DB env var is required")
	}
	return nil
}

// PostgresConnString returns a PostgreSQL connection string.
func (c *Config) PostgresConnString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName,
	)
}

// APIAddr returns the listen address for the API server.
func (c *Config) APIAddr() string {
	return ":" + c.APIPort
}

// HealthAddr returns the listen address for the health check server.
func (c *Config) HealthAddr() string {
	return ":" + c.HealthPort
}

// RateLimitConfig holds rate limiting settings.
type RateLimitConfig struct {
	Requests int           // Max requests per window (0 = disabled)
	Window   time.Duration // Time window for rate limiting
}

// RateLimitConfig returns the rate limiting configuration.
func (c *Config) RateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Requests: c.RateLimitRequests,
		Window:   c.RateLimitWindow,
	}
}
