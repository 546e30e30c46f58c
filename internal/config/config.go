// Package config provides application configuration.
package config

import (
	"os"
	"path/filepath"
)

// Config holds the application configuration.
type Config struct {
	// Server settings
	Port string
	Host string

	// Database settings
	DBPath string

	// Gemini settings
	GeminiAPIKey string
	GeminiModel  string

	// EncryptionSecret protects the stored Gemini API key.
	EncryptionSecret string

	// Environment
	IsDevelopment bool
}

// New creates a new Config with values from environment variables or defaults.
func New() *Config {
	return &Config{
		Port:             getEnv("PORT", "8080"),
		Host:             getEnv("HOST", "localhost"),
		DBPath:           getEnv("DB_PATH", filepath.Join("data", "wealthfolio.db")),
		GeminiAPIKey:     getEnv("GEMINI_API_KEY", ""),
		GeminiModel:      getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		EncryptionSecret: getEnv("ENCRYPTION_SECRET", "change-me-in-production-32chars!"),
		IsDevelopment:    getEnv("ENV", "development") == "development",
	}
}

// Address returns the full address to bind the server to.
func (c *Config) Address() string {
	return c.Host + ":" + c.Port
}

// getEnv returns the value of an environment variable or a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
