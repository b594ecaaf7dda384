package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port string

	// Database configuration
	DBFile            string // path to the SQLite database file
	DBConnectionLimit int

	// Auth configuration
	JWTSecret        string
	JWTIssuer        string
	JWTExpiryMinutes int

	// Upload configuration
	UploadDir       string
	MaxUploadSizeMB int
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:              getEnv("PORT", "3000"),
		DBFile:            getEnv("DB_FILE", "./data/recipebook.db"),
		DBConnectionLimit: getEnvAsInt("DB_CONNECTION_LIMIT", 5),
		JWTSecret:         getEnv("JWT_SECRET", ""),
		JWTIssuer:         getEnv("JWT_ISSUER", "recipebook"),
		JWTExpiryMinutes:  getEnvAsInt("JWT_EXPIRY_MINUTES", 1440),
		UploadDir:         getEnv("UPLOAD_DIR", "./uploads"),
		MaxUploadSizeMB:   getEnvAsInt("MAX_UPLOAD_SIZE_MB", 8),
	}

	// Validate required fields
	if cfg.DBFile == "" {
		return nil, fmt.Errorf("DB_FILE is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer or returns a default value
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
