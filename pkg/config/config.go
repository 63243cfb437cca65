package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ImageStoreCloudinary = "cloudinary"
	ImageStoreGCS        = "gcs"
)

type Config struct {
	ServerPort  string
	Environment string
	LogLevel    string
	LogEncoding string

	FirebaseProject            string
	FirebaseServiceAccountJSON string
	FirebaseServiceAccountPath string

	ImageStore          string
	CloudinaryName      string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	CloudinaryFolder    string
	StorageBucket       string

	RedisAddr     string
	RedisPassword string
	CacheTTL      time.Duration

	NatsURL string

	SessionCookieName string
	SessionExpiry     time.Duration
	CookieSecure      bool

	LoginRatePerMinute int
	MaxUploadBytes     int64
}

func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogEncoding: getEnv("LOG_ENCODING", "json"),

		FirebaseProject:            getEnv("FIREBASE_PROJECT_ID", ""),
		FirebaseServiceAccountJSON: getEnv("FIREBASE_SERVICE_ACCOUNT_JSON", ""),
		FirebaseServiceAccountPath: getEnv("FIREBASE_SERVICE_ACCOUNT_PATH", ""),

		ImageStore:          strings.ToLower(getEnv("IMAGE_STORE", ImageStoreCloudinary)),
		CloudinaryName:      getEnv("CLOUDINARY_NAME", ""),
		CloudinaryAPIKey:    getEnv("CLOUDINARY_API_KEY", ""),
		CloudinaryAPISecret: getEnv("CLOUDINARY_API_SECRET", ""),
		CloudinaryFolder:    getEnv("CLOUDINARY_FOLDER", "books"),
		StorageBucket:       getEnv("STORAGE_BUCKET", ""),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		CacheTTL:      time.Duration(getEnvAsInt64("CACHE_TTL_SECONDS", 300)) * time.Second,

		NatsURL: getEnv("NATS_URL", ""),

		SessionCookieName: getEnv("SESSION_COOKIE_NAME", "session"),
		SessionExpiry:     time.Duration(getEnvAsInt64("SESSION_EXPIRY_HOURS", 5*24)) * time.Hour,
		CookieSecure:      getEnvAsBool("COOKIE_SECURE", true),

		LoginRatePerMinute: int(getEnvAsInt64("LOGIN_RATE_PER_MINUTE", 10)),
		MaxUploadBytes:     getEnvAsInt64("MAX_UPLOAD_MB", 10) * 1024 * 1024,
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate reports the first missing setting required by the selected backends.
func (c *Config) Validate() error {
	switch c.ImageStore {
	case ImageStoreCloudinary:
		if c.CloudinaryName == "" || c.CloudinaryAPIKey == "" || c.CloudinaryAPISecret == "" {
			return fmt.Errorf("CLOUDINARY_NAME, CLOUDINARY_API_KEY and CLOUDINARY_API_SECRET are required for the cloudinary image store")
		}
	case ImageStoreGCS:
		if c.StorageBucket == "" {
			return fmt.Errorf("STORAGE_BUCKET is required for the gcs image store")
		}
	default:
		return fmt.Errorf("unknown IMAGE_STORE %q", c.ImageStore)
	}

	if c.SessionExpiry <= 0 {
		return fmt.Errorf("SESSION_EXPIRY_HOURS must be positive")
	}
	if c.LoginRatePerMinute <= 0 {
		return fmt.Errorf("LOGIN_RATE_PER_MINUTE must be positive")
	}

	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.ParseInt(value, 10, 64)
		if err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		boolValue, err := strconv.ParseBool(value)
		if err == nil {
			return boolValue
		}
	}
	return defaultValue
}
