// Package config reads the application configuration from environment
// variables. Everything has a workable default; the only genuinely optional
// section is AI, which when unset routes predictions to the built-in
// fallback.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config is the complete application configuration.
type Config struct {
	Server ServerConfig
	Upload UploadConfig
	AI     AIConfig
}

// ServerConfig holds web server settings.
type ServerConfig struct {
	Port string
}

// UploadConfig bounds what the upload endpoint will accept.
type UploadConfig struct {
	MaxBytes int64
}

// AIConfig holds the prediction collaborator settings. An empty APIKey
// means no collaborator is configured.
type AIConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Timeout     time.Duration
	Temperature float64
}

// Enabled reports whether a prediction collaborator is configured.
func (c AIConfig) Enabled() bool {
	return c.APIKey != ""
}

// Load reads configuration from the environment.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
		Upload: UploadConfig{
			MaxBytes: getEnvInt64OrDefault("MAX_UPLOAD_BYTES", 10<<20),
		},
		AI: AIConfig{
			APIKey:      os.Getenv("OPENAI_API_KEY"),
			BaseURL:     getEnvOrDefault("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			Model:       getEnvOrDefault("LLM_MODEL", "gpt-4o-mini"),
			Timeout:     time.Duration(getEnvIntOrDefault("LLM_TIMEOUT_SECONDS", 30)) * time.Second,
			Temperature: getEnvFloatOrDefault("TEMPERATURE", 0.4),
		},
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
