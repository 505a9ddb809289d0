package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int    `validate:"min=1,max=65535"`
	LogLevel    string `validate:"oneof=debug info warn warning error DEBUG INFO WARN WARNING ERROR"`
	LogFormat   string `validate:"oneof=json text"`
	ServiceName string `validate:"required"`
	Version     string
	Environment string `validate:"required"`
	APIKey      string `validate:"required"`

	// StorageDriver selects the repository backend: "postgres" or "memory"
	StorageDriver string `validate:"oneof=postgres memory"`
	DBUser        string
	DBPassword    string
	DBHost        string
	DBPort        string
	DBName        string
	DBMaxConns    int           `validate:"min=1"`
	DBMaxIdle     time.Duration `validate:"min=0"`
	DBMaxLife     time.Duration `validate:"min=0"`

	GameConfigPath string
	LogDir         string

	// Event publishing
	EventMaxRetries     int           `validate:"min=0"`
	EventRetryDelay     time.Duration `validate:"min=0"`
	EventDeadLetterPath string

	// Event log retention
	EventLogRetentionDays int           `validate:"min=1"`
	EventLogCleanupEvery  time.Duration `validate:"min=0"`

	// Account cache
	AccountCacheSize int           `validate:"min=1"`
	AccountCacheTTL  time.Duration `validate:"min=0"`

	TrustedProxies []string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "text"),
		ServiceName:   getEnv("SERVICE_NAME", "fruitfarm"),
		Version:       getEnv("VERSION", "dev"),
		Environment:   getEnv("ENVIRONMENT", "dev"),
		APIKey:        getEnv("API_KEY", ""),
		StorageDriver: strings.ToLower(getEnv("STORAGE_DRIVER", "postgres")),
		DBUser:        getEnv("DB_USER", "postgres"),
		DBPassword:    getEnv("DB_PASSWORD", "postgres"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBName:        getEnv("DB_NAME", "fruitfarm"),
		DBMaxConns:    getEnvAsInt("DB_MAX_CONNS", 10),
		DBMaxIdle:     getEnvAsDuration("DB_MAX_IDLE", 5*time.Minute),
		DBMaxLife:     getEnvAsDuration("DB_MAX_LIFE", 30*time.Minute),

		GameConfigPath: getEnv("GAME_CONFIG_PATH", ConfigPathGame),
		LogDir:         getEnv("LOG_DIR", "logs"),

		EventMaxRetries:     getEnvAsInt("EVENT_MAX_RETRIES", 5),
		EventRetryDelay:     getEnvAsDuration("EVENT_RETRY_DELAY", 2*time.Second),
		EventDeadLetterPath: getEnv("EVENT_DEADLETTER_PATH", "logs/event_deadletter.jsonl"),

		EventLogRetentionDays: getEnvAsInt("EVENTLOG_RETENTION_DAYS", 30),
		EventLogCleanupEvery:  getEnvAsDuration("EVENTLOG_CLEANUP_INTERVAL", 24*time.Hour),

		AccountCacheSize: getEnvAsInt("ACCOUNT_CACHE_SIZE", 1000),
		AccountCacheTTL:  getEnvAsDuration("ACCOUNT_CACHE_TTL", 5*time.Minute),

		TrustedProxies: splitList(getEnv("TRUSTED_PROXIES", "")),
	}

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	// Validate API key is set
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt parses an integer env var, falling back to the default when unset or invalid
func getEnvAsInt(key string, defaultValue int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

// getEnvAsDuration parses a time.Duration env var, falling back to the default when unset or invalid
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
