package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort        string
	DatabaseURL    string
	AllowedOrigins string

	JWTSecret string
	TokenTTL  time.Duration

	// StorageDriver selects "local" or "s3".
	StorageDriver string
	UploadDir     string
	PublicBaseURL string

	S3AccountID       string
	S3AccessKeyID     string
	S3AccessKeySecret string
	S3Bucket          string
	CDNBaseURL        string

	ReaperInterval time.Duration
	ReaperMinAge   time.Duration
}

// Load reads .env (if present) and the environment into a Config. It fails
// hard on settings the service cannot run without.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	cfg := &Config{
		AppPort:        getEnv("APP_PORT", "5000"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:8000"),

		JWTSecret: os.Getenv("JWT_SECRET"),
		TokenTTL:  getDuration("TOKEN_TTL_HOURS", 7*24) * time.Hour,

		StorageDriver: getEnv("STORAGE_DRIVER", "local"),
		UploadDir:     getEnv("UPLOAD_DIR", "uploads"),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", "/uploads"),

		S3AccountID:       os.Getenv("S3_ACCOUNT_ID"),
		S3AccessKeyID:     os.Getenv("S3_ACCESS_KEY_ID"),
		S3AccessKeySecret: os.Getenv("S3_ACCESS_KEY_SECRET"),
		S3Bucket:          os.Getenv("S3_BUCKET_NAME"),
		CDNBaseURL:        os.Getenv("CDN_BASE_URL"),

		ReaperInterval: getDuration("REAPER_INTERVAL_HOURS", 1) * time.Hour,
		ReaperMinAge:   getDuration("REAPER_MIN_AGE_HOURS", 24) * time.Hour,
	}

	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET environment variable not set")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback int) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n)
		}
		log.Printf("⚠️  Invalid %s=%q, using default %d", key, v, fallback)
	}
	return time.Duration(fallback)
}
