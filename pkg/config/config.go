package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
// All environment variables are read here and nowhere else.
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// External APIs
	Yahoo YahooConfig
	FMP   FMPConfig

	// HTTP client
	HTTPTimeout time.Duration

	// Logging
	LogLevel  string
	LogFormat string
}

// YahooConfig holds Yahoo Finance endpoint configuration
type YahooConfig struct {
	BaseURL     string
	FeedBaseURL string
	WebBaseURL  string
}

// FMPConfig holds Financial Modeling Prep API configuration
type FMPConfig struct {
	APIKey  string
	BaseURL string

	// Free-tier courtesy pacing for outbound calls, requests per second.
	// Zero disables the limiter.
	RequestsPerSecond float64
}

// Load reads configuration from environment variables.
// Only this function calls os.Getenv().
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Port: getEnv("PORT", "8089"),
		Env:  getEnv("ENV", "development"),

		Yahoo: YahooConfig{
			BaseURL:     getEnv("YAHOO_BASE_URL", "https://query2.finance.yahoo.com"),
			FeedBaseURL: getEnv("YAHOO_FEED_BASE_URL", "https://feeds.finance.yahoo.com"),
			WebBaseURL:  getEnv("YAHOO_WEB_BASE_URL", "https://finance.yahoo.com"),
		},

		FMP: FMPConfig{
			APIKey:            getEnv("FMP_API_KEY", ""),
			BaseURL:           getEnv("FMP_BASE_URL", "https://financialmodelingprep.com/api/v3"),
			RequestsPerSecond: getEnvAsFloat("FMP_REQUESTS_PER_SECOND", 4),
		},

		HTTPTimeout: getEnvAsDuration("HTTP_TIMEOUT", "30s"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	// Cost-of-capital data is keyed by the FMP credential
	if c.FMP.APIKey == "" {
		return fmt.Errorf("FMP_API_KEY is missing. Add it to the .env file")
	}

	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	return nil
}

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env",
	}

	// Also try relative to executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}
