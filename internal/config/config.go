package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Supabase
	SupabaseURL            string
	SupabasePublishableKey string
	SupabaseJWTSecret      string

	// Storage buckets
	PhotoBucket    string
	DocumentBucket string
	ReceiptBucket  string

	// Upload limits, bytes. Receipts carry the stricter ceiling.
	MaxUploadBytes  int64
	MaxReceiptBytes int64

	// Upload retry
	UploadMaxAttempts int
	UploadRetryDelay  time.Duration

	// PDF rendering
	CyrillicFontPath string

	// Database
	DatabaseURL string

	// Server
	Port        string
	Environment string
	BaseURL     string
}

func Load() (*Config, error) {
	cfg := &Config{
		SupabaseURL:            getEnv("SUPABASE_URL", ""),
		SupabasePublishableKey: getEnv("SUPABASE_PUBLISHABLE_KEY", ""),
		SupabaseJWTSecret:      getEnv("SUPABASE_JWT_SECRET", ""),

		PhotoBucket:    getEnv("SUPABASE_PHOTO_BUCKET", "photos"),
		DocumentBucket: getEnv("SUPABASE_DOCUMENT_BUCKET", "documents"),
		ReceiptBucket:  getEnv("SUPABASE_RECEIPT_BUCKET", "receipts"),

		MaxUploadBytes:  getEnvInt64("MAX_UPLOAD_BYTES", 10<<20),
		MaxReceiptBytes: getEnvInt64("MAX_RECEIPT_BYTES", 5<<20),

		UploadMaxAttempts: int(getEnvInt64("UPLOAD_MAX_ATTEMPTS", 3)),
		UploadRetryDelay:  getEnvDuration("UPLOAD_RETRY_DELAY", 2*time.Second),

		CyrillicFontPath: getEnv("CYRILLIC_FONT_PATH", "./fonts/DejaVuSans.ttf"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:8080"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.SupabaseURL == "" {
		return fmt.Errorf("SUPABASE_URL is required")
	}
	if c.SupabasePublishableKey == "" {
		return fmt.Errorf("SUPABASE_PUBLISHABLE_KEY is required")
	}
	if c.SupabaseJWTSecret == "" {
		return fmt.Errorf("SUPABASE_JWT_SECRET is required")
	}
	if c.UploadMaxAttempts < 1 {
		return fmt.Errorf("UPLOAD_MAX_ATTEMPTS must be at least 1")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
