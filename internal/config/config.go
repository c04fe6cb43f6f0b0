package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the application configuration.
type Config struct {
	ServerPort    int
	DatabasePath  string
	CORSOrigin    string
	JWTSecret     string
	TokenValidity time.Duration

	// Local upload directory, used when no S3 bucket is configured.
	UploadDir     string
	MaxUploadSize int64

	// S3-compatible object storage. Leaving S3Bucket empty selects
	// the local disk store.
	S3Bucket    string
	S3Region    string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3PublicURL string

	// Cron expression for the bookmark counter reconciler.
	ReconcileCron string

	// Initial admin account, created at startup when no admin exists.
	AdminUsername string
	AdminPassword string
}

// Load loads configuration from environment variables or sets defaults.
func Load() (*Config, error) {
	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}

	validityStr := getEnv("TOKEN_VALIDITY", "168h") // 7 days
	validity, err := time.ParseDuration(validityStr)
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_VALIDITY: %w", err)
	}

	maxUploadStr := getEnv("MAX_UPLOAD_SIZE", "10485760") // 10 MiB
	maxUpload, err := strconv.ParseInt(maxUploadStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_UPLOAD_SIZE: %w", err)
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set")
	}

	return &Config{
		ServerPort:    port,
		DatabasePath:  getEnv("DATABASE_PATH", "./alumni.db"),
		CORSOrigin:    getEnv("CORS_ORIGIN", "http://localhost:3000"),
		JWTSecret:     secret,
		TokenValidity: validity,
		UploadDir:     getEnv("UPLOAD_DIR", "./uploads"),
		MaxUploadSize: maxUpload,
		S3Bucket:      os.Getenv("S3_BUCKET"),
		S3Region:      getEnv("S3_REGION", "us-east-1"),
		S3Endpoint:    os.Getenv("S3_ENDPOINT"),
		S3AccessKey:   os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey:   os.Getenv("S3_SECRET_KEY"),
		S3PublicURL:   os.Getenv("S3_PUBLIC_URL"),
		ReconcileCron: getEnv("RECONCILE_CRON", "*/5 * * * *"),
		AdminUsername: os.Getenv("ADMIN_USERNAME"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
