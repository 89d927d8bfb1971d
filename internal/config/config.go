package config

import (
	"fmt"
	"os"

	"invoicer/internal/logger"
	"invoicer/pkg/models"
)

type Config struct {
	// Business profile printed on every invoice
	BusinessName   string
	BusinessPhone  string
	BusinessEmail  string
	BusinessSocial string

	// Storage Configuration
	StoreDSN string // SQLite file path, or a postgres:// URL / key=value DSN

	// Export Configuration
	OutputDir string

	// Logging Configuration
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

func Load() (*Config, error) {
	config := &Config{
		BusinessName:   getEnv("BUSINESS_NAME", ""),
		BusinessPhone:  getEnv("BUSINESS_PHONE", ""),
		BusinessEmail:  getEnv("BUSINESS_EMAIL", ""),
		BusinessSocial: getEnv("BUSINESS_SOCIAL", ""),
		StoreDSN:       getEnv("INVOICER_STORE_DSN", "invoicer.db"),
		OutputDir:      getEnv("INVOICER_OUTPUT_DIR", "."),
		LogLevel:       getEnv("LOG_LEVEL", "warn"),
		LogFormat:      getEnv("LOG_FORMAT", "console"),
		LogTimeFormat:  getEnv("LOG_TIME_FORMAT", "2006-01-02T15:04:05Z07:00"),
		LogOutput:      getEnv("LOG_OUTPUT", "stderr"),
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

func (c *Config) validate() error {
	if c.BusinessName == "" {
		return fmt.Errorf("BUSINESS_NAME is required")
	}
	if c.BusinessPhone == "" {
		return fmt.Errorf("BUSINESS_PHONE is required")
	}
	return nil
}

// GetLoggerConfig returns a logger configuration from the main config
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

// GetBusinessProfile returns the seller block for new and restored invoices
func (c *Config) GetBusinessProfile() models.BusinessProfile {
	return models.BusinessProfile{
		Name:   c.BusinessName,
		Phone:  c.BusinessPhone,
		Email:  c.BusinessEmail,
		Social: c.BusinessSocial,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
