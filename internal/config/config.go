package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration loaded from environment
// variables. It is the single source of truth for runtime parameters.
type Config struct {
	Addr      string
	Env       string
	JWTSecret string

	// DatabaseURL is optional: when empty the service runs on in-memory
	// repositories (local development, tests).
	DatabaseURL string

	Redis    RedisConfig
	Catalog  CatalogConfig
	Checkout CheckoutConfig

	Storefront StorefrontConfig
}

// RedisConfig contains Redis connection parameters. An empty Addr selects
// the in-process memory cache instead.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// CatalogConfig drives the product feed loader.
type CatalogConfig struct {
	PrimaryURL   string
	SecondaryURL string
	TTL          time.Duration
	FetchTimeout time.Duration
}

// CheckoutConfig controls the hand-off summary.
type CheckoutConfig struct {
	TaxRate        float64
	ChannelBaseURL string
}

// StorefrontConfig points at the external commerce backend.
type StorefrontConfig struct {
	Endpoint    string
	AccessToken string
}

func Load() Config {
	return Config{
		Addr:        getEnv("ARMORY_ADDR", ":8080"),
		Env:         getEnv("APP_ENV", "development"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Catalog: CatalogConfig{
			PrimaryURL:   getEnv("CATALOG_PRIMARY_URL", "/products.json"),
			SecondaryURL: getEnv("CATALOG_SECONDARY_URL", "/comprehensive_products.json"),
			TTL:          getEnvDuration("CATALOG_TTL", 5*time.Minute),
			FetchTimeout: getEnvDuration("CATALOG_FETCH_TIMEOUT", 10*time.Second),
		},
		Checkout: CheckoutConfig{
			TaxRate:        getEnvFloat("CHECKOUT_TAX_RATE", 0.07),
			ChannelBaseURL: getEnv("CHECKOUT_CHANNEL_URL", "https://pay.ogarmory.example/order"),
		},
		Storefront: StorefrontConfig{
			Endpoint:    os.Getenv("STOREFRONT_API_URL"),
			AccessToken: os.Getenv("STOREFRONT_ACCESS_TOKEN"),
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
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
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
