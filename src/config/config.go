package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

const (
	BackendPostgres = "postgres"
	BackendLocal    = "local"
)

type Config struct {
	Port string

	// Backend selection
	DataBackend  string
	DatabaseURL  string
	LocalDBPath  string
	CacheEnabled bool

	// Auth
	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int

	AllowedOrigins []string
	DemoMode       bool
	Timezone       string
}

func Load() *Config {
	// Load .env file if present
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("ERROR: Failed to read .env file: %v", err)
	}

	return &Config{
		Port:           getEnv("PORT", "8080"),
		DataBackend:    strings.ToLower(getEnv("DATA_BACKEND", BackendPostgres)),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		LocalDBPath:    getEnv("LOCAL_DB_PATH", "./data/expenses.db"),
		CacheEnabled:   getEnvBool("CACHE_ENABLED", true),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		TokenTTL:       getEnvDuration("TOKEN_TTL", 168*time.Hour),
		BcryptCost:     getEnvInt("BCRYPT_COST", bcrypt.DefaultCost),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "*")),
		DemoMode:       getEnvBool("DEMO_MODE", false),
		Timezone:       getEnv("TIMEZONE", "Local"),
	}
}

// Validate reports every problem at once.
func (c *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.DataBackend {
	case BackendPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, "DATABASE_URL is required when using postgres backend")
		}
		if c.JWTSecret == "" {
			errs = append(errs, "JWT_SECRET is required when using postgres backend")
		}
	case BackendLocal:
		if c.LocalDBPath == "" {
			errs = append(errs, "LOCAL_DB_PATH cannot be empty when using local backend")
		}
	default:
		errs = append(errs, fmt.Sprintf("invalid data backend '%s': must be one of [%s %s]", c.DataBackend, BackendPostgres, BackendLocal))
	}

	if c.TokenTTL <= 0 {
		errs = append(errs, fmt.Sprintf("invalid token ttl %v: must be positive", c.TokenTTL))
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Sprintf("invalid bcrypt cost %d: must be between %d and %d", c.BcryptCost, bcrypt.MinCost, bcrypt.MaxCost))
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, fmt.Sprintf("invalid timezone '%s': %v", c.Timezone, err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

// Location is the zone month boundaries and backdated entries are computed in.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
		log.Printf("ERROR: Invalid integer for %s: %q, using %d", key, value, fallback)
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
		log.Printf("ERROR: Invalid boolean for %s: %q, using %v", key, value, fallback)
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("ERROR: Invalid duration for %s: %q, using %v", key, value, fallback)
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
