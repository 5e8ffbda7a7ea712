package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Catalog sources.
const (
	CatalogBackend  = "backend"
	CatalogPostgres = "postgres"
)

// Config holds application configuration loaded from environment.
type Config struct {
	Server   ServerConfig
	Backend  BackendConfig
	Catalog  CatalogConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Session  SessionConfig
	AWS      AWSConfig
	Razorpay RazorpayConfig
	Timezone string // IANA name used to read webinar wall-clock times; empty = process local
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port               string `validate:"required,numeric"`
	ReadTimeout        int    `validate:"gte=0"`
	WriteTimeout       int    `validate:"gte=0"`
	CORSAllowedOrigins string // comma-separated, or "*" for all
}

// BackendConfig points at the platform API that owns auth, catalog, payments and notifications.
type BackendConfig struct {
	BaseURL    string  `validate:"required,url"`
	TimeoutSec int     `validate:"gt=0"`
	RateLimit  float64 `validate:"gt=0"` // requests per second
}

// CatalogConfig selects where webinars and registrations are read from.
type CatalogConfig struct {
	Source string `validate:"oneof=backend postgres"`
}

// RazorpayConfig for India payments. KeyID is handed to the browser checkout.
type RazorpayConfig struct {
	KeyID     string
	KeySecret string
}

// DatabaseConfig holds PostgreSQL connection settings (postgres catalog only).
type DatabaseConfig struct {
	URL      string // if set, used as-is (e.g. postgres://localhost:5432/webinar?sslmode=disable)
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	MaxConns int `validate:"gte=0"`
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Addr           string `validate:"required"`
	Password       string
	DB             int `validate:"gte=0"`
	SnapshotTTLSec int `validate:"gt=0"`
}

// JWTConfig holds the secret shared with the backend for session tokens.
type JWTConfig struct {
	Secret      string `validate:"required"`
	ExpireHours int    `validate:"gt=0"`
}

// SessionConfig controls the session cookie.
type SessionConfig struct {
	CookieName string `validate:"required"`
	Domain     string
	Secure     bool
}

// AWSConfig holds AWS credentials and the avatars bucket.
type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	AvatarsBucket   string
}

// DSN returns the PostgreSQL connection string.
// If DatabaseConfig.URL is set (e.g. DATABASE_URL env), it is used as-is; otherwise built from components.
func (c DatabaseConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

// Timeout returns the backend request timeout.
func (c BackendConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSec) * time.Second
}

// SnapshotTTL returns how long a registration snapshot stays cached.
func (c RedisConfig) SnapshotTTL() time.Duration {
	return time.Duration(c.SnapshotTTLSec) * time.Second
}

// Location resolves Timezone, falling back to the process local zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Load reads configuration from environment, with optional .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()      // .env
	_ = godotenv.Load("env") // env (no leading dot)

	cfg := &Config{
		Server: ServerConfig{
			Port:               getEnv("PORT", "8080"),
			ReadTimeout:        getEnvInt("READ_TIMEOUT_SEC", 30),
			WriteTimeout:       getEnvInt("WRITE_TIMEOUT_SEC", 30),
			CORSAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000"),
		},
		Backend: BackendConfig{
			BaseURL:    strings.TrimRight(getEnv("BACKEND_BASE_URL", "http://localhost:4000/api"), "/"),
			TimeoutSec: getEnvInt("BACKEND_TIMEOUT_SEC", 10),
			RateLimit:  getEnvFloat("BACKEND_RATE_LIMIT", 50),
		},
		Catalog: CatalogConfig{
			Source: getEnv("CATALOG_SOURCE", CatalogBackend),
		},
		Database: DatabaseConfig{
			URL:      getEnv("DATABASE_URL", ""),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "webinar"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: getEnvInt("DB_MAX_CONNS", 10),
		},
		Redis: RedisConfig{
			Addr:           getEnv("REDIS_ADDR", "localhost:6379"),
			Password:       getEnv("REDIS_PASSWORD", ""),
			DB:             getEnvInt("REDIS_DB", 0),
			SnapshotTTLSec: getEnvInt("REGISTRATION_SNAPSHOT_TTL_SEC", 300),
		},
		JWT: JWTConfig{
			Secret:      getEnv("JWT_SECRET", "change-me-in-production"),
			ExpireHours: getEnvInt("JWT_EXPIRE_HOURS", 24),
		},
		Session: SessionConfig{
			CookieName: getEnv("SESSION_COOKIE_NAME", "token"),
			Domain:     getEnv("SESSION_COOKIE_DOMAIN", ""),
			Secure:     getEnvBool("SESSION_COOKIE_SECURE", false),
		},
		AWS: AWSConfig{
			Region:          getEnv("AWS_REGION", "us-east-1"),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			AvatarsBucket:   getEnv("AWS_S3_AVATARS_BUCKET", "webinar-avatars-bucket"),
		},
		Razorpay: RazorpayConfig{
			KeyID:     getEnv("RAZORPAY_KEY_ID", ""),
			KeySecret: getEnv("RAZORPAY_KEY_SECRET", ""),
		},
		Timezone: getEnv("WEBINAR_TIMEZONE", ""),
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if _, err := cfg.Location(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
