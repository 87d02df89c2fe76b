package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// LoadENV loads variables from .env unless GO_ENV says otherwise
func LoadENV() error {
	goEnv := os.Getenv("GO_ENV")

	if goEnv == "" || goEnv == "development" {
		if err := godotenv.Load(); err != nil {
			return err
		}
	}

	return nil
}

// RateLimitRule is a per-route sliding window: at most Max requests per
// Window per client address.
type RateLimitRule struct {
	Max    int
	Window time.Duration
}

// Config is built once at startup and passed by reference to every
// component that needs it. Business logic never reads the environment
// directly.
type Config struct {
	GoEnv string
	Port  int

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT
	JWTSecret string
	JWTIssuer string
	JWTExpiry time.Duration

	// Redis
	RedisURL string

	// Account lockout policy
	MaxLoginAttempts int
	LockoutDuration  time.Duration

	// Duplicate application window
	DuplicateWindow time.Duration

	// Per-route rate limits for public write endpoints
	LoginRateLimit       RateLimitRule
	ApplicationRateLimit RateLimitRule
	MessageRateLimit     RateLimitRule
	ContactRateLimit     RateLimitRule
	NewsletterRateLimit  RateLimitRule

	// SMTP (transactional email)
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
	AdminEmail   string
	SiteURL      string

	// Media host (S3-compatible object storage)
	MediaAccessKey string
	MediaSecretKey string
	MediaBucket    string
	MediaRegion    string
	MediaEndpoint  string
	MediaCDNURL    string

	// Bootstrap super admin
	BootstrapUsername string
	BootstrapEmail    string
	BootstrapPassword string

	AllowedOrigins string
	CronEnabled    bool
}

func (c *Config) IsProduction() bool {
	return c.GoEnv == "production"
}

// Load reads the environment into an immutable Config with defaults
func Load() (*Config, error) {
	port, err := strconv.Atoi(os.Getenv("PORT"))
	if err != nil {
		port = 8080
	}

	smtpPort, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		smtpPort = 587
	}

	maxAttempts, err := strconv.Atoi(os.Getenv("MAX_LOGIN_ATTEMPTS"))
	if err != nil || maxAttempts < 1 {
		maxAttempts = 5
	}

	cfg := &Config{
		GoEnv: os.Getenv("GO_ENV"),
		Port:  port,

		DBHost:     envOrDefault("DB_HOST", "localhost"),
		DBPort:     envOrDefault("DB_PORT", "5432"),
		DBUser:     os.Getenv("DB_USER_NAME"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBSSLMode:  envOrDefault("DB_SSL_MODE", "disable"),

		JWTSecret: os.Getenv("JWT_SECRET"),
		JWTIssuer: envOrDefault("JWT_ISSUER", "willow-gate-api"),
		JWTExpiry: durationOrDefault("JWT_EXPIRY", 24*time.Hour),

		RedisURL: envOrDefault("REDIS_URL", "redis://localhost:6379/0"),

		MaxLoginAttempts: maxAttempts,
		LockoutDuration:  durationOrDefault("LOCKOUT_DURATION", 30*time.Minute),

		DuplicateWindow: durationOrDefault("DUPLICATE_WINDOW", 30*24*time.Hour),

		LoginRateLimit:       RateLimitRule{Max: 5, Window: 15 * time.Minute},
		ApplicationRateLimit: RateLimitRule{Max: 3, Window: time.Hour},
		MessageRateLimit:     RateLimitRule{Max: 5, Window: 15 * time.Minute},
		ContactRateLimit:     RateLimitRule{Max: 3, Window: 15 * time.Minute},
		NewsletterRateLimit:  RateLimitRule{Max: 2, Window: 15 * time.Minute},

		SMTPHost:     envOrDefault("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:     smtpPort,
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:     envOrDefault("SMTP_FROM", "noreply@willowgate.school"),
		AdminEmail:   envOrDefault("ADMIN_EMAIL", "admissions@willowgate.school"),
		SiteURL:      envOrDefault("SITE_URL", "https://willowgate.school"),

		MediaAccessKey: os.Getenv("MEDIA_ACCESS_KEY"),
		MediaSecretKey: os.Getenv("MEDIA_SECRET_KEY"),
		MediaBucket:    os.Getenv("MEDIA_BUCKET"),
		MediaRegion:    envOrDefault("MEDIA_REGION", "us-east-1"),
		MediaEndpoint:  os.Getenv("MEDIA_ENDPOINT"),
		MediaCDNURL:    os.Getenv("MEDIA_CDN_URL"),

		BootstrapUsername: envOrDefault("BOOTSTRAP_ADMIN_USERNAME", "admin"),
		BootstrapEmail:    envOrDefault("BOOTSTRAP_ADMIN_EMAIL", "admin@willowgate.school"),
		BootstrapPassword: os.Getenv("BOOTSTRAP_ADMIN_PASSWORD"),

		AllowedOrigins: envOrDefault("ALLOWED_ORIGINS", "http://localhost:3000"),
		CronEnabled:    os.Getenv("CRON_ENABLED") != "false",
	}

	return cfg, nil
}

func envOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func durationOrDefault(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
