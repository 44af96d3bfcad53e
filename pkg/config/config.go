package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Postgres  PostgresConfig
	Redis     RedisConfig
	FileStore FileStoreConfig
	SSO       SSOConfig
	Features  FeatureConfig
	LogLevel  string
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	// Health/metrics server (separate port for k8s probes)
	HealthPort string
}

// PostgresConfig holds database connection settings
type PostgresConfig struct {
	URL      string
	MaxConns int
	MinConns int

	// StatementTimeout bounds every repository call
	StatementTimeout time.Duration
}

// RedisConfig holds session store settings
type RedisConfig struct {
	URL      string
	Password string
	DB       int
}

// FileStoreConfig holds wake word sample storage settings
type FileStoreConfig struct {
	// Type selects the backend: "filesystem" or "s3"
	Type string

	// DataDir is the base directory for filesystem storage; samples land
	// under <DataDir>/wake_word/<wake_word_name>/
	DataDir string

	S3Region       string
	S3Bucket       string
	S3Endpoint     string
	S3AccessKey    string
	S3SecretKey    string
	S3UsePathStyle bool
}

// SSOConfig holds social-login provider settings
type SSOConfig struct {
	CallbackURL      string
	FacebookClientID string
	GoogleClientID   string
	GoogleIssuer     string
}

// FeatureConfig holds behavior flags
type FeatureConfig struct {
	// StrictWakeWord turns the historical silent no-op on an unconfigured
	// wake word into a 404
	StrictWakeWord bool
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:            getEnv("ARIA_HOST", "0.0.0.0"),
			Port:            getEnv("ARIA_PORT", "8080"),
			ReadTimeout:     getEnvDuration("ARIA_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getEnvDuration("ARIA_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:     getEnvDuration("ARIA_IDLE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getEnvDuration("ARIA_SHUTDOWN_TIMEOUT", 30*time.Second),
			HealthPort:      getEnv("ARIA_HEALTH_PORT", "9090"),
		},
		Postgres: PostgresConfig{
			URL:              getEnv("ARIA_POSTGRES_URL", ""),
			MaxConns:         getEnvInt("ARIA_POSTGRES_MAX_CONNS", 20),
			MinConns:         getEnvInt("ARIA_POSTGRES_MIN_CONNS", 2),
			StatementTimeout: getEnvDuration("ARIA_POSTGRES_TIMEOUT", 5*time.Second),
		},
		Redis: RedisConfig{
			URL:      getEnv("ARIA_REDIS_URL", "redis://localhost:6379"),
			Password: getEnv("ARIA_REDIS_PASSWORD", ""),
			DB:       getEnvInt("ARIA_REDIS_DB", 0),
		},
		FileStore: FileStoreConfig{
			Type:           getEnv("ARIA_FILE_STORE", "filesystem"),
			DataDir:        getEnv("ARIA_DATA_DIR", "/opt/aria/data"),
			S3Region:       getEnv("ARIA_S3_REGION", ""),
			S3Bucket:       getEnv("ARIA_S3_BUCKET", ""),
			S3Endpoint:     getEnv("ARIA_S3_ENDPOINT", ""),
			S3AccessKey:    getEnv("ARIA_S3_ACCESS_KEY", ""),
			S3SecretKey:    getEnv("ARIA_S3_SECRET_KEY", ""),
			S3UsePathStyle: getEnvBool("ARIA_S3_USE_PATH_STYLE", false),
		},
		SSO: SSOConfig{
			CallbackURL:      getEnv("ARIA_SSO_CALLBACK_URL", ""),
			FacebookClientID: getEnv("ARIA_FACEBOOK_CLIENT_ID", ""),
			GoogleClientID:   getEnv("ARIA_GOOGLE_CLIENT_ID", ""),
			GoogleIssuer:     getEnv("ARIA_GOOGLE_ISSUER", "https://accounts.google.com"),
		},
		Features: FeatureConfig{
			StrictWakeWord: getEnvBool("ARIA_STRICT_WAKE_WORD", false),
		},
		LogLevel: getEnv("ARIA_LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	if c.Server.HealthPort == "" {
		return fmt.Errorf("health port is required")
	}
	if c.Server.Port == c.Server.HealthPort {
		return fmt.Errorf("server port and health port must be different")
	}

	if c.Postgres.URL == "" {
		return fmt.Errorf("postgres URL is required")
	}

	switch c.FileStore.Type {
	case "filesystem":
		if c.FileStore.DataDir == "" {
			return fmt.Errorf("data directory is required for filesystem storage")
		}
	case "s3":
		if c.FileStore.S3Bucket == "" {
			return fmt.Errorf("S3 bucket is required for s3 storage")
		}
		if c.FileStore.S3Region == "" && c.FileStore.S3Endpoint == "" {
			return fmt.Errorf("S3 region or endpoint is required for s3 storage")
		}
	default:
		return fmt.Errorf("invalid file store type: %s (must be filesystem or s3)", c.FileStore.Type)
	}

	return nil
}

// getEnv returns an environment variable value or a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool returns a boolean environment variable or a default
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return strings.ToLower(value) == "true" || value == "1"
	}
	return defaultValue
}

// getEnvInt returns an integer environment variable or a default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvDuration returns a duration environment variable or a default
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
