package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	AppEnv      string
	AppName     string
	LogLevel    string
	StoreDriver string
	DatabaseURL string
	RedisURL    string
	StatsToken  string
	StatsdAddr  string

	// Used by the priorities CLI command only
	StatsEndpoint  string
	StatsDays      int
	AffiliatesPath string
}

func Load() *Config {
	_ = godotenv.Load() // Ignore error if .env not found (e.g. prod)

	return &Config{
		Port:           getEnv("PORT", "8080"),
		AppEnv:         getEnv("APP_ENV", "local"),
		AppName:        getEnv("APP_NAME", "click-counter"),
		LogLevel:       getEnv("LOG_LEVEL", "INFO"),
		StoreDriver:    getEnv("STORE_DRIVER", "sqlite"),
		DatabaseURL:    getEnv("DATABASE_URL", "file:db.sqlite"),
		RedisURL:       getEnv("REDIS_URL", "redis://localhost:6379/0"),
		StatsToken:     getEnv("STATS_TOKEN", ""),
		StatsdAddr:     getEnv("STATSD_ADDR", ""),
		StatsEndpoint:  getEnv("STATS_ENDPOINT", ""),
		StatsDays:      getEnvInt("STATS_DAYS", 7),
		AffiliatesPath: getEnv("AFFILIATES_PATH", "goliath/affiliates.json"),
	}
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, fallback string) string {
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
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}
