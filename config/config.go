package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Redis    RedisConfig
	Session  SessionConfig
	Identity IdentityConfig
	Catalog  CatalogConfig
	Cart     CartConfig
	Checkout CheckoutConfig
	CORS     CORSConfig
}

type ServerConfig struct {
	Port        string
	GinMode     string
	Environment string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type SessionConfig struct {
	CookieName string
	JWTSecret  string
	TTL        time.Duration
}

type IdentityConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

type CatalogConfig struct {
	FilePath   string
	ReloadCron string
}

// CartConfig selects the durable storage backend for per-session cart and
// wishlist entries. "memory" keeps everything in-process (development);
// "redis" writes the serialized lines under a fixed key per session.
type CartConfig struct {
	StorageBackend string
	KeyPrefix      string
	TTL            time.Duration
}

type CheckoutConfig struct {
	URL string
}

type CORSConfig struct {
	AllowedOrigins []string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config := &Config{
		Server: ServerConfig{
			Port:        getEnv("SERVER_PORT", "8080"),
			GinMode:     getEnv("GIN_MODE", "debug"),
			Environment: getEnv("ENVIRONMENT", "development"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       parseInt(getEnv("REDIS_DB", "0"), 0),
		},
		Session: SessionConfig{
			CookieName: getEnv("SESSION_COOKIE_NAME", "netstore_session"),
			JWTSecret:  getEnv("SESSION_JWT_SECRET", "your-secret-key"),
			TTL:        parseDuration(getEnv("SESSION_TTL", "720h"), 720*time.Hour),
		},
		Identity: IdentityConfig{
			BaseURL: getEnv("IDENTITY_BASE_URL", "http://localhost:9090/api"),
			APIKey:  getEnv("IDENTITY_API_KEY", ""),
			Timeout: parseDuration(getEnv("IDENTITY_TIMEOUT", "10s"), 10*time.Second),
		},
		Catalog: CatalogConfig{
			FilePath:   getEnv("CATALOG_FILE", "data/catalog.json"),
			ReloadCron: getEnv("CATALOG_RELOAD_CRON", "0 * * * *"),
		},
		Cart: CartConfig{
			StorageBackend: getEnv("CART_STORAGE_BACKEND", "memory"),
			KeyPrefix:      getEnv("CART_KEY_PREFIX", "cart"),
			TTL:            parseDuration(getEnv("CART_TTL", "720h"), 720*time.Hour),
		},
		Checkout: CheckoutConfig{
			URL: getEnv("CHECKOUT_URL", "http://localhost:3000/checkout"),
		},
		CORS: CORSConfig{
			AllowedOrigins: parseSlice(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		},
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(s)
	if err != nil {
		log.Printf("Invalid duration %s, using default %s", s, fallback)
		return fallback
	}
	return duration
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Printf("Invalid integer %s, using default %d", s, fallback)
		return fallback
	}
	return n
}

func parseSlice(s string) []string {
	if s == "" {
		return []string{}
	}
	var result []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
