package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration.
type Config struct {
	Gateway GatewayConfig
	Logger  LoggerConfig
}

// GatewayConfig holds NETbilling direct mode configuration.
type GatewayConfig struct {
	Environment string // "production" selects the live endpoint, anything else the test endpoint
	AccountID   string // NETbilling account ID
	SiteTag     string // NETbilling site tag
	Timeout     int    // request timeout in seconds (default: 30)
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level       string // debug, info, warn, error
	Development bool
}

// LoadFromEnv loads configuration from environment variables.
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Gateway: GatewayConfig{
			Environment: getEnv("NETBILLING_ENVIRONMENT", "test"),
			AccountID:   getEnv("NETBILLING_ACCOUNT_ID", ""),
			SiteTag:     getEnv("NETBILLING_SITE_TAG", ""),
			Timeout:     getEnvAsInt("NETBILLING_TIMEOUT", 30),
		},
		Logger: LoggerConfig{
			Level:       getEnv("LOG_LEVEL", "info"),
			Development: getEnvAsBool("LOG_DEVELOPMENT", false),
		},
	}

	// Validate required fields
	if cfg.Gateway.AccountID == "" {
		return nil, fmt.Errorf("NETBILLING_ACCOUNT_ID is required")
	}
	if cfg.Gateway.SiteTag == "" {
		return nil, fmt.Errorf("NETBILLING_SITE_TAG is required")
	}

	return cfg, nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
