package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"shipping-admin-service/internal/models"
)

// Config holds all configuration for the shipping admin service
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	RedisURL  string
	NATSURL   string
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Shipping  ShippingConfig
	Secrets   SecretsConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           string
	Env            string
	LogLevel       string
	AllowedOrigins []string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// AuthConfig holds JWT settings. An empty secret disables verification outside production.
type AuthConfig struct {
	JWTSecret string
}

// RateLimitConfig limits requests per client IP
type RateLimitConfig struct {
	RequestsPerSecond int
	Burst             int
}

// ShippingConfig holds the defaults applied to tenants without their own settings
type ShippingConfig struct {
	VolumetricDivisor     int
	FallbackZone          models.Zone
	Currency              string
	FreeShippingThreshold decimal.Decimal
	PincodeCacheTTL       time.Duration
}

// SecretsConfig enables gcp-secret:// credential references when a project is set
type SecretsConfig struct {
	GCPProjectID string
	CacheTTL     time.Duration
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	threshold, err := decimal.NewFromString(getEnv("FREE_SHIPPING_THRESHOLD", "499"))
	if err != nil {
		return nil, fmt.Errorf("FREE_SHIPPING_THRESHOLD must be a number: %w", err)
	}

	config := &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8093"),
			Env:            getEnv("ENVIRONMENT", "development"),
			LogLevel:       getEnv("LOG_LEVEL", "info"),
			AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "shipping_admin"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		RedisURL: getEnv("REDIS_URL", ""),
		NATSURL:  getEnv("NATS_URL", ""),
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: getEnvAsInt("RATE_LIMIT_RPS", 50),
			Burst:             getEnvAsInt("RATE_LIMIT_BURST", 100),
		},
		Shipping: ShippingConfig{
			VolumetricDivisor:     getEnvAsInt("VOLUMETRIC_DIVISOR", 5000),
			FallbackZone:          models.Zone(strings.ToUpper(getEnv("FALLBACK_ZONE", ""))),
			Currency:              getEnv("DEFAULT_CURRENCY", "INR"),
			FreeShippingThreshold: threshold,
			PincodeCacheTTL:       getEnvAsDuration("PINCODE_CACHE_TTL", time.Hour),
		},
		Secrets: SecretsConfig{
			GCPProjectID: getEnv("GCP_PROJECT_ID", ""),
			CacheTTL:     getEnvAsDuration("SECRET_CACHE_TTL", 5*time.Minute),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

// IsProduction reports whether the service runs in production
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// DefaultSettings are the shipping settings new tenants start with
func (c *Config) DefaultSettings() models.ShippingSettings {
	return models.ShippingSettings{
		VolumetricDivisor: c.Shipping.VolumetricDivisor,
		FallbackZone:      c.Shipping.FallbackZone,
		Currency:          c.Shipping.Currency,
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}
	if c.Shipping.VolumetricDivisor <= 0 {
		return fmt.Errorf("VOLUMETRIC_DIVISOR must be greater than 0")
	}
	if c.Shipping.FallbackZone != "" && !c.Shipping.FallbackZone.IsValid() {
		return fmt.Errorf("FALLBACK_ZONE must be one of A, B, C, D, E")
	}
	if c.Shipping.FreeShippingThreshold.IsNegative() {
		return fmt.Errorf("FREE_SHIPPING_THRESHOLD cannot be negative")
	}
	if c.RateLimit.RequestsPerSecond < 0 || c.RateLimit.Burst < 0 {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST cannot be negative")
	}
	if c.IsProduction() && c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required in production")
	}
	return nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
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

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var values []string
	for _, v := range strings.Split(valueStr, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return values
}
