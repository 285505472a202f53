package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	DatabasePath  string
	StaticDir     string
	AppEnv        string
	EnableDocs    bool
	EnableMetrics bool
	LogLevel      string
	LogFormat     string
	NodeID        int64
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	nodeID, err := getEnvInt("NODE_ID", 1)
	if err != nil {
		return nil, err
	}
	if nodeID < 0 || nodeID > 1023 {
		return nil, fmt.Errorf("NODE_ID must be between 0 and 1023, got %d", nodeID)
	}

	databasePath := strings.TrimSpace(getEnv("DATABASE_PATH", "database.json"))
	if databasePath == "" {
		return nil, fmt.Errorf("DATABASE_PATH must not be empty")
	}

	return &Config{
		Port:          getEnv("PORT", "5050"),
		DatabasePath:  databasePath,
		StaticDir:     getEnv("STATIC_DIR", "public"),
		AppEnv:        normalizeEnv(getEnv("APP_ENV", "production")),
		EnableDocs:    getEnvBool("ENABLE_API_DOCS", false),
		EnableMetrics: getEnvBool("ENABLE_METRICS", true),
		LogLevel:      strings.ToLower(strings.TrimSpace(getEnv("LOG_LEVEL", "info"))),
		LogFormat:     strings.ToLower(strings.TrimSpace(getEnv("LOG_FORMAT", "json"))),
		NodeID:        nodeID,
	}, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback
	}

	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func getEnvInt(key string, fallback int64) (int64, error) {
	value, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(value) == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return parsed, nil
}

func normalizeEnv(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "dev", "develop", "development", "local":
		return "development"
	case "prod", "production":
		return "production"
	case "stage", "staging":
		return "staging"
	case "test", "testing":
		return "test"
	default:
		return strings.ToLower(strings.TrimSpace(value))
	}
}

func (c *Config) DocsEnabled() bool {
	return c != nil && c.EnableDocs && c.AppEnv == "development"
}
