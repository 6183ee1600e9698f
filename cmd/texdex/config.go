package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	texdexmemcache "github.com/fwojciec/texdex/memcache"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds process configuration read from the environment.
type Config struct {
	DB            string        `envconfig:"TEXDEX_DB"`
	Addr          string        `envconfig:"TEXDEX_ADDR" default:":10000"`
	FetchTimeout  time.Duration `envconfig:"TEXDEX_FETCH_TIMEOUT" default:"30s"`
	UserAgent     string        `envconfig:"TEXDEX_USER_AGENT" default:"texdex/1.0"`
	ResultLimit   int           `envconfig:"TEXDEX_RESULT_LIMIT" default:"50"`
	CaseSensitive bool          `envconfig:"TEXDEX_CASE_SENSITIVE" default:"false"`
	Sources       string        `envconfig:"TEXDEX_SOURCES"`
	LogLevel      string        `envconfig:"TEXDEX_LOG_LEVEL" default:"info"`
	Metrics       bool          `envconfig:"TEXDEX_METRICS" default:"true"`

	RedisAddr   string `envconfig:"TEXDEX_REDIS_ADDR"`
	RedisStream string `envconfig:"TEXDEX_REDIS_STREAM" default:"texdex:reports"`

	MemcacheAddr string        `envconfig:"TEXDEX_MEMCACHE_ADDR"`
	CacheTTL     time.Duration `envconfig:"TEXDEX_CACHE_TTL" default:"60s"`
}

// LoadConfig reads an optional .env file from the working directory and
// then the process environment.
func LoadConfig() (*Config, error) {
	// Ignore errors, as env vars might be set in the shell
	_ = godotenv.Load(".env")

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if cfg.DB == "" {
		cfg.DB = defaultDBPath()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate returns an error if the configuration cannot be used.
func (c *Config) Validate() error {
	if c.DB == "" {
		return fmt.Errorf("TEXDEX_DB must not be empty")
	}
	if c.Addr == "" {
		return fmt.Errorf("TEXDEX_ADDR must not be empty")
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("TEXDEX_FETCH_TIMEOUT must be positive, got %s", c.FetchTimeout)
	}
	if c.ResultLimit <= 0 {
		return fmt.Errorf("TEXDEX_RESULT_LIMIT must be positive, got %d", c.ResultLimit)
	}
	if c.MemcacheAddr != "" && (c.CacheTTL < time.Second || c.CacheTTL > texdexmemcache.MaxTTL) {
		return fmt.Errorf("TEXDEX_CACHE_TTL must be between 1s and %s, got %s", texdexmemcache.MaxTTL, c.CacheTTL)
	}
	return nil
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "texdex.db"
	}
	dir := filepath.Join(home, ".texdex")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "texdex.db")
}
