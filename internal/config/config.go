package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Catalog drivers accepted in CATALOG_DRIVER.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
)

type Config struct {
	Port       string           `yaml:"port"`
	LogLevel   string           `yaml:"log_level"`
	Catalog    CatalogConfig    `yaml:"catalog"`
	Exclusions ExclusionsConfig `yaml:"exclusions"`
	Scraper    ScraperConfig    `yaml:"scraper"`
	Search     SearchConfig     `yaml:"search"`
}

type CatalogConfig struct {
	Driver        string `yaml:"driver"`
	DBPath        string `yaml:"db_path"`
	DatabaseURL   string `yaml:"database_url"`
	MongoURI      string `yaml:"mongo_uri"`
	MongoDatabase string `yaml:"mongo_database"`
	SeedPath      string `yaml:"seed_path"`
}

type ExclusionsConfig struct {
	// NetworkFile, when set, replaces the scraper with a saved network payload.
	NetworkFile string        `yaml:"network_file"`
	RedisAddr   string        `yaml:"redis_addr"`
	TTL         time.Duration `yaml:"ttl"`
}

type ScraperConfig struct {
	Username    string        `yaml:"username"`
	Password    string        `yaml:"password"`
	BaseURL     string        `yaml:"base_url"`
	ProfilePath string        `yaml:"profile_path"`
	Headless    bool          `yaml:"headless"`
	Timeout     time.Duration `yaml:"timeout"`
}

// Enabled reports whether credentials for the scraper are configured.
func (s ScraperConfig) Enabled() bool {
	return s.Username != "" && s.Password != "" && s.ProfilePath != ""
}

type SearchConfig struct {
	MaxSteps int `yaml:"max_steps"`
	MaxDepth int `yaml:"max_depth"`
}

func Default() Config {
	return Config{
		Port:     "8080",
		LogLevel: "info",
		Catalog: CatalogConfig{
			Driver:        DriverSQLite,
			DBPath:        "data/app.db",
			MongoDatabase: "FMX",
			SeedPath:      "data/seeds/hubs.json",
		},
		Exclusions: ExclusionsConfig{
			TTL: 15 * time.Minute,
		},
		Scraper: ScraperConfig{
			BaseURL:  "https://tycoon.airlines-manager.com",
			Headless: true,
			Timeout:  60 * time.Second,
		},
		Search: SearchConfig{
			MaxSteps: 5_000_000,
		},
	}
}

// Load builds the configuration from defaults, then the YAML file at path
// (skipped when path is empty), then environment variables.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("load config: read %q: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("load config: parse %q: %w", path, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Catalog.Driver {
	case DriverSQLite, DriverMemory:
	case DriverPostgres:
		if c.Catalog.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for the postgres catalog")
		}
	case DriverMongo:
		if c.Catalog.MongoURI == "" {
			return errors.New("MONGO_URI is required for the mongo catalog")
		}
	default:
		return fmt.Errorf("unknown catalog driver %q", c.Catalog.Driver)
	}

	if c.Search.MaxSteps < 0 || c.Search.MaxDepth < 0 {
		return errors.New("search limits cannot be negative")
	}
	return nil
}

func applyEnv(c *Config) error {
	strs := []struct {
		key string
		dst *string
	}{
		{"PORT", &c.Port},
		{"LOG_LEVEL", &c.LogLevel},
		{"CATALOG_DRIVER", &c.Catalog.Driver},
		{"DB_PATH", &c.Catalog.DBPath},
		{"DATABASE_URL", &c.Catalog.DatabaseURL},
		{"MONGO_URI", &c.Catalog.MongoURI},
		{"MONGO_DATABASE", &c.Catalog.MongoDatabase},
		{"SEED_PATH", &c.Catalog.SeedPath},
		{"NETWORK_JSON", &c.Exclusions.NetworkFile},
		{"REDIS_ADDR", &c.Exclusions.RedisAddr},
		{"AM_USERNAME", &c.Scraper.Username},
		{"AM_PASSWORD", &c.Scraper.Password},
		{"AM_BASE_URL", &c.Scraper.BaseURL},
		{"AM_PROFILE_PATH", &c.Scraper.ProfilePath},
	}
	for _, s := range strs {
		*s.dst = Get(s.key, *s.dst)
	}
	c.Catalog.Driver = strings.ToLower(strings.TrimSpace(c.Catalog.Driver))

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"EXCLUSION_TTL", &c.Exclusions.TTL},
		{"SCRAPER_TIMEOUT", &c.Scraper.Timeout},
	}
	for _, d := range durations {
		v := os.Getenv(d.key)
		if v == "" {
			continue
		}
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", d.key, err)
		}
		*d.dst = parsed
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"SEARCH_MAX_STEPS", &c.Search.MaxSteps},
		{"SEARCH_MAX_DEPTH", &c.Search.MaxDepth},
	}
	for _, n := range ints {
		v := os.Getenv(n.key)
		if v == "" {
			continue
		}
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", n.key, err)
		}
		*n.dst = parsed
	}

	if v := os.Getenv("SCRAPER_HEADLESS"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("SCRAPER_HEADLESS: %w", err)
		}
		c.Scraper.Headless = parsed
	}

	return nil
}

// Get returns the environment value for key, or fallback when it is unset or empty.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
