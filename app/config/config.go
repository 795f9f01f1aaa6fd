package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the pairing service
type Config struct {
	// Server
	Port     string `env:"PORT" default:"9500"`
	Host     string `env:"HOST" default:"0.0.0.0"`
	LogLevel string `env:"LOG_LEVEL" default:"info"`

	// Redis document store
	RedisURL string `env:"REDIS_URL" required:"true"`

	// Audit trail database. Optional, the service runs without it.
	DatabaseURL string `env:"DATABASE_URL"`

	// Kratos
	KratosPublicURL string `env:"KRATOS_PUBLIC_URL" required:"true"`

	// Pairing
	PairingBaseURL    string        `env:"PAIRING_BASE_URL" default:"http://localhost:9500"`
	PairingRequestTTL time.Duration `env:"PAIRING_REQUEST_TTL" default:"5m"`

	// HTTP
	CORSOrigins []string `env:"CORS_ORIGINS"`

	// Features
	EnableAuditLog bool `env:"ENABLE_AUDIT_LOG" default:"true"`
	EnableDebug    bool `env:"ENABLE_DEBUG" default:"false"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	config := &Config{}

	// Server configuration
	config.Port = getEnvOrDefault("PORT", "9500")
	config.Host = getEnvOrDefault("HOST", "0.0.0.0")
	config.LogLevel = getEnvOrDefault("LOG_LEVEL", "info")

	// Redis configuration
	config.RedisURL = os.Getenv("REDIS_URL")
	if config.RedisURL == "" {
		return nil, fmt.Errorf("REDIS_URL is required")
	}

	// Database is optional. When unset the audit trail is disabled.
	config.DatabaseURL = os.Getenv("DATABASE_URL")

	// Kratos configuration
	config.KratosPublicURL = os.Getenv("KRATOS_PUBLIC_URL")
	if config.KratosPublicURL == "" {
		return nil, fmt.Errorf("KRATOS_PUBLIC_URL is required")
	}

	// Pairing configuration
	config.PairingBaseURL = getEnvOrDefault("PAIRING_BASE_URL", "http://localhost:9500")

	var err error
	ttlStr := getEnvOrDefault("PAIRING_REQUEST_TTL", "5m")
	config.PairingRequestTTL, err = time.ParseDuration(ttlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PAIRING_REQUEST_TTL: %w", err)
	}

	// HTTP configuration
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		for _, origin := range strings.Split(origins, ",") {
			if trimmed := strings.TrimSpace(origin); trimmed != "" {
				config.CORSOrigins = append(config.CORSOrigins, trimmed)
			}
		}
	}

	// Feature flags
	config.EnableAuditLog = getBoolEnv("ENABLE_AUDIT_LOG", true)
	config.EnableDebug = getBoolEnv("ENABLE_DEBUG", false)

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	// Validate port
	port, err := strconv.Atoi(c.Port)
	if err != nil {
		return fmt.Errorf("invalid port: %s", c.Port)
	}
	if port < 1 || port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535: %s", c.Port)
	}

	// Validate log level
	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, strings.ToLower(c.LogLevel)) {
		return fmt.Errorf("invalid log level: %s (must be one of: %s)", c.LogLevel, strings.Join(validLogLevels, ", "))
	}

	// The pairing URL goes into a QR code, a scheme-less value would
	// produce unopenable links
	if !strings.HasPrefix(c.PairingBaseURL, "http://") && !strings.HasPrefix(c.PairingBaseURL, "https://") {
		return fmt.Errorf("PAIRING_BASE_URL must start with http:// or https://, got: %s", c.PairingBaseURL)
	}

	// A TTL below 10 seconds leaves no time to scan the code
	if c.PairingRequestTTL < 10*time.Second {
		return fmt.Errorf("pairing request TTL must be at least 10 seconds, got: %v", c.PairingRequestTTL)
	}

	return nil
}

// Helper functions

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
