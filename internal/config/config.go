package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	Environment string
	ServiceName string
	Version     string
	APIKey      string // API key for authentication

	CatalogPath string // weapons catalog JSON

	LoadoutCacheSize int
	LoadoutCacheTTL  time.Duration
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		Environment: getEnv("ENVIRONMENT", "dev"),
		ServiceName: getEnv("SERVICE_NAME", "loadout-bot"),
		Version:     getEnv("VERSION", "dev"),
		APIKey:      getEnv("API_KEY", ""),
		CatalogPath: getEnv("CATALOG_PATH", ConfigPathWeapons),
	}

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	cacheSizeStr := getEnv("LOADOUT_CACHE_SIZE", strconv.Itoa(DefaultLoadoutCacheSize))
	cacheSize, err := strconv.Atoi(cacheSizeStr)
	if err != nil || cacheSize <= 0 {
		return nil, fmt.Errorf("invalid LOADOUT_CACHE_SIZE value: %q", cacheSizeStr)
	}
	cfg.LoadoutCacheSize = cacheSize

	cacheTTLStr := getEnv("LOADOUT_CACHE_TTL", DefaultLoadoutCacheTTL)
	cacheTTL, err := time.ParseDuration(cacheTTLStr)
	if err != nil || cacheTTL <= 0 {
		return nil, fmt.Errorf("invalid LOADOUT_CACHE_TTL value: %q", cacheTTLStr)
	}
	cfg.LoadoutCacheTTL = cacheTTL

	// Validate API key is set
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
