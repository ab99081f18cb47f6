package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds application configuration
type Config struct {
	Port        string
	LogLevel    string
	CORSOrigins []string
	CardPrefix  string
	StatsCron   string
}

// NewConfig loads configuration from a .env file and environment variables
func NewConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found")
	}

	cfg := &Config{
		Port:        getEnv("PORT", "8000"),
		LogLevel:    getEnv("LOG_LEVEL", "INFO"),
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:8080,http://127.0.0.1:8080")),
		CardPrefix:  getEnv("CARD_PREFIX", "4111"),
		StatsCron:   getEnv("STATS_CRON", "@hourly"),
	}

	if cfg.CardPrefix == "" {
		return nil, fmt.Errorf("CARD_PREFIX is required")
	}
	for _, c := range cfg.CardPrefix {
		if c < '0' || c > '9' {
			return nil, fmt.Errorf("CARD_PREFIX must contain only digits: %q", cfg.CardPrefix)
		}
	}
	if len(cfg.CORSOrigins) == 0 {
		return nil, fmt.Errorf("CORS_ORIGINS is required")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
