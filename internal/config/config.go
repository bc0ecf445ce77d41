package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Supported values for STORE_BACKEND.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite3"
)

// Config holds the application configuration.
type Config struct {
	ServerPort            string `env:"SERVER_PORT,default=:8080"`
	StoreBackend          string `env:"STORE_BACKEND,default=memory"`
	DatabaseURL           string `env:"DATABASE_URL"` // Required for SQL backends
	BaseURL               string `env:"BASE_URL,default=http://localhost:8080"`
	AllowedDomains        string `env:"ALLOWED_DOMAINS"` // Comma-separated list of allowed domains
	MaxAllocationAttempts int    `env:"MAX_ALLOCATION_ATTEMPTS,default=5"`
	BatchWorkerCount      int    `env:"BATCH_WORKER_COUNT,default=8"`
	BatchMaxURLs          int    `env:"BATCH_MAX_URLS,default=100"`
	LookupCacheTTLSeconds int    `env:"LOOKUP_CACHE_TTL_SECONDS,default=300"`
}

var AppConfig *Config

// LoadConfig loads configuration from environment variables.
// It looks for a .env file in the current directory for development convenience.
func LoadConfig() error {
	// Attempt to load .env file, but don't fail if it's not there (for production)
	_ = godotenv.Load()

	cfg := &Config{
		ServerPort:            getEnv("SERVER_PORT", ":8080"),
		StoreBackend:          strings.ToLower(getEnv("STORE_BACKEND", BackendMemory)),
		DatabaseURL:           getEnv("DATABASE_URL", ""),
		BaseURL:               strings.TrimRight(getEnv("BASE_URL", "http://localhost:8080"), "/"),
		AllowedDomains:        getEnv("ALLOWED_DOMAINS", ""), // Empty means allow all
		MaxAllocationAttempts: getEnvInt("MAX_ALLOCATION_ATTEMPTS", 5),
		BatchWorkerCount:      getEnvInt("BATCH_WORKER_COUNT", 8),
		BatchMaxURLs:          getEnvInt("BATCH_MAX_URLS", 100),
		LookupCacheTTLSeconds: getEnvInt("LOOKUP_CACHE_TTL_SECONDS", 300),
	}

	switch cfg.StoreBackend {
	case BackendMemory:
	case BackendPostgres, BackendSQLite:
		if cfg.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL environment variable is required for store backend %q", cfg.StoreBackend)
		}
	default:
		return fmt.Errorf("unsupported STORE_BACKEND %q", cfg.StoreBackend)
	}

	if cfg.MaxAllocationAttempts < 1 {
		return fmt.Errorf("MAX_ALLOCATION_ATTEMPTS must be positive, got %d", cfg.MaxAllocationAttempts)
	}
	if cfg.BatchWorkerCount < 1 {
		return fmt.Errorf("BATCH_WORKER_COUNT must be positive, got %d", cfg.BatchWorkerCount)
	}
	if cfg.BatchMaxURLs < 1 {
		return fmt.Errorf("BATCH_MAX_URLS must be positive, got %d", cfg.BatchMaxURLs)
	}

	AppConfig = cfg
	return nil
}

// AllowedDomainList returns the trimmed, non-empty entries of AllowedDomains.
func (c *Config) AllowedDomainList() []string {
	var domains []string
	for _, d := range strings.Split(c.AllowedDomains, ",") {
		if d = strings.TrimSpace(d); d != "" {
			domains = append(domains, d)
		}
	}
	return domains
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}
