package config

import (
	"fmt"
	"os"
	"strconv"

	"uvaexpress/internal/logger"
)

type Config struct {
	// Filer Configuration
	Steuernummer       string
	UnternehmenName    string
	UnternehmenStrasse string
	UnternehmenPLZ     string
	UnternehmenOrt     string

	// Submission Configuration
	SubmissionStoreSize int

	// Logging Configuration
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

func Load() (*Config, error) {
	storeSize, err := getEnvInt("SUBMISSION_STORE_SIZE", 1000)
	if err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	config := &Config{
		Steuernummer:        getEnv("STEUERNUMMER", ""),
		UnternehmenName:     getEnv("UNTERNEHMEN_NAME", ""),
		UnternehmenStrasse:  getEnv("UNTERNEHMEN_STRASSE", ""),
		UnternehmenPLZ:      getEnv("UNTERNEHMEN_PLZ", ""),
		UnternehmenOrt:      getEnv("UNTERNEHMEN_ORT", ""),
		SubmissionStoreSize: storeSize,
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		LogFormat:           getEnv("LOG_FORMAT", "console"),
		LogTimeFormat:       getEnv("LOG_TIME_FORMAT", "2006-01-02T15:04:05Z07:00"),
		LogOutput:           getEnv("LOG_OUTPUT", "stdout"),
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

func (c *Config) validate() error {
	if c.SubmissionStoreSize < 2 {
		return fmt.Errorf("SUBMISSION_STORE_SIZE must be at least 2, got %d", c.SubmissionStoreSize)
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

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}
