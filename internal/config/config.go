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
	EnvProduction  = "production"
	EnvDevelopment = "development"
)

// DevJWTSecret signs tokens when APP_ENV=development is set explicitly and
// JWT_SECRET is not.
const DevJWTSecret = "change-me"

// Config holds application level configuration loaded from environment variables.
type Config struct {
	AppEnv     string
	ServerPort string

	DBDriver string
	DBDSN    string

	RedisAddr string
	RedisDB   int
	RedisPass string

	JWTSecret string
	JWTExpiry time.Duration

	MediaCloudName string
	MediaAPIKey    string
	MediaAPISecret string
	MediaFolder    string
	MediaBaseURL   string

	CORSOrigin         string
	RateLimitRPS       float64
	SubscriptionPeriod time.Duration

	LogLevel  string
	LogFormat string
}

// Load builds Config from environment with sensible defaults. A .env file in
// the working directory is read first when present; real environment
// variables win over it.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		AppEnv:             strings.ToLower(os.Getenv("APP_ENV")),
		ServerPort:         getEnv("SERVER_PORT", "8080"),
		DBDriver:           strings.ToLower(getEnv("DB_DRIVER", "mysql")),
		DBDSN:              getEnv("DB_DSN", "user:password@tcp(localhost:3306)/nestify?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisAddr:          os.Getenv("REDIS_ADDR"),
		RedisDB:            getEnvInt("REDIS_DB", 0),
		RedisPass:          os.Getenv("REDIS_PASSWORD"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		JWTExpiry:          getEnvDuration("JWT_EXPIRY", 24*time.Hour),
		MediaCloudName:     os.Getenv("MEDIA_CLOUD_NAME"),
		MediaAPIKey:        os.Getenv("MEDIA_API_KEY"),
		MediaAPISecret:     os.Getenv("MEDIA_API_SECRET"),
		MediaFolder:        getEnv("MEDIA_FOLDER", "nestify"),
		MediaBaseURL:       getEnv("MEDIA_BASE_URL", "https://api.cloudinary.com"),
		CORSOrigin:         getEnv("CORS_ORIGIN", "http://localhost:3000"),
		RateLimitRPS:       getEnvFloat("RATE_LIMIT_RPS", 5),
		SubscriptionPeriod: getEnvDuration("SUBSCRIPTION_PERIOD", 30*24*time.Hour),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "json"),
	}
}

// IsProduction reports whether error details must be hidden from clients.
func (c *Config) IsProduction() bool {
	return c.AppEnv == EnvProduction
}

// Validate rejects configurations the server cannot run with.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case "mysql", "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.DBDSN == "" {
		return fmt.Errorf("DB_DSN is required")
	}
	if c.JWTSecret == "" {
		if c.AppEnv != EnvDevelopment {
			return fmt.Errorf("JWT_SECRET is required unless APP_ENV=%s", EnvDevelopment)
		}
		c.JWTSecret = DevJWTSecret
	}
	if c.AppEnv == "" {
		c.AppEnv = EnvDevelopment
	}
	if c.JWTExpiry <= 0 {
		return fmt.Errorf("JWT_EXPIRY must be positive")
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return def
}
