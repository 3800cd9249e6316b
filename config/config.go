// Package config provides application configuration management.
// It loads configuration from environment variables with sensible defaults.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	BreachCheck BreachCheckConfig
	Authority   AuthorityConfig
	Session     SessionConfig
	Audit       AuditConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Environment  string
}

// DatabaseConfig holds the audit store database configuration.
// When URL is empty the service falls back to an embedded SQLite file,
// which keeps the audit trail available in development.
type DatabaseConfig struct {
	URL             string
	SQLitePath      string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// RedisConfig holds Redis configuration for the validation record store.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// BreachCheckConfig holds breach oracle (k-anonymity range API) configuration.
type BreachCheckConfig struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

// AuthorityConfig holds the remote rate-limit and session authority endpoints.
type AuthorityConfig struct {
	RateLimitURL string
	SessionURL   string
	APIKey       string
	Timeout      time.Duration
	// TokenSecret verifies the HMAC signature of tokens minted by the
	// session authority before any remote answer is trusted.
	TokenSecret string
}

// SessionConfig holds session lifetime and scoring configuration.
type SessionConfig struct {
	Duration       time.Duration
	StaleRecordAge time.Duration
}

// AuditConfig holds security audit sink configuration.
type AuditConfig struct {
	AlertsEnabled bool
	ResendAPIKey  string
	AlertFrom     string
	AlertTo       string
}

// Load loads configuration from environment variables.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			Port:         getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:  getEnvAsDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getEnvAsDuration("SERVER_WRITE_TIMEOUT", 15*time.Second),
			Environment:  getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			SQLitePath:      getEnv("SQLITE_PATH", "trustd_audit.db"),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		BreachCheck: BreachCheckConfig{
			BaseURL:   getEnv("BREACH_API_URL", "https://api.pwnedpasswords.com"),
			Timeout:   getEnvAsDuration("BREACH_API_TIMEOUT", 5*time.Second),
			UserAgent: getEnv("BREACH_API_USER_AGENT", "trustd-security-service"),
		},
		Authority: AuthorityConfig{
			RateLimitURL: getEnv("RATE_LIMIT_AUTHORITY_URL", "http://localhost:9090"),
			SessionURL:   getEnv("SESSION_AUTHORITY_URL", "http://localhost:9091"),
			APIKey:       getEnv("AUTHORITY_API_KEY", ""),
			Timeout:      getEnvAsDuration("AUTHORITY_TIMEOUT", 5*time.Second),
			TokenSecret:  getEnv("SESSION_TOKEN_SECRET", "change-me-in-production"),
		},
		Session: SessionConfig{
			Duration:       getEnvAsDuration("SESSION_DURATION", 2*time.Hour),
			StaleRecordAge: getEnvAsDuration("SESSION_STALE_RECORD_AGE", 3*time.Hour),
		},
		Audit: AuditConfig{
			AlertsEnabled: getEnvAsBool("AUDIT_ALERTS_ENABLED", false),
			ResendAPIKey:  getEnv("RESEND_API_KEY", ""),
			AlertFrom:     getEnv("AUDIT_ALERT_FROM", "security@trustd.dev"),
			AlertTo:       getEnv("AUDIT_ALERT_TO", ""),
		},
	}
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
