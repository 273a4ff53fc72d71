// Package config handles loading application configuration from environment
// variables. All config is centralized here so no other package reads env
// vars directly. The resulting Config is built once at startup and passed
// to constructors; it is never mutated afterwards.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
)

// devSecret is used only when no JWT_SECRET is set outside production.
const devSecret = "dev-secret-key-do-not-use-in-production!!"

// Config holds all application configuration.
type Config struct {
	// Env is the runtime environment: "development" or "production".
	Env string

	// Port is the HTTP listen port (default: 8080).
	Port int

	// AllowedOrigins lists the web/mobile client origins allowed by CORS.
	AllowedOrigins []string

	// TrustedProxies lists the CIDRs whose X-Forwarded-For and X-Real-IP
	// headers are believed. Rate limiting keys on the resulting client IP.
	TrustedProxies []string

	// Database holds MySQL/MariaDB connection settings.
	Database DatabaseConfig

	// Redis holds Redis connection settings. Optional.
	Redis RedisConfig

	// Auth holds token signing settings.
	Auth AuthConfig

	// Suggestions holds the text-generation collaborator settings.
	Suggestions SuggestionsConfig
}

// DatabaseConfig holds MySQL connection parameters. If DATABASE_URL is set,
// it takes precedence over the individual fields.
type DatabaseConfig struct {
	// Host is the address in host:port format (default: "localhost:3306").
	Host string

	User     string
	Password string
	Name     string

	// dsnOverride is set when DATABASE_URL is provided.
	dsnOverride string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration

	// MigrationsPath is the directory holding golang-migrate SQL files.
	MigrationsPath string
}

// DSN returns the go-sql-driver/mysql connection string. FormatDSN escapes
// special characters in passwords.
func (d DatabaseConfig) DSN() string {
	if d.dsnOverride != "" {
		return d.dsnOverride
	}
	cfg := mysql.NewConfig()
	cfg.User = d.User
	cfg.Passwd = d.Password
	cfg.Net = "tcp"
	cfg.Addr = ensurePort(d.Host, "3306")
	cfg.DBName = d.Name
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	cfg.MultiStatements = true
	return cfg.FormatDSN()
}

// ensurePort appends the default port if the host string doesn't include one.
func ensurePort(host, defaultPort string) string {
	_, _, err := net.SplitHostPort(host)
	if err != nil {
		return net.JoinHostPort(host, defaultPort)
	}
	return host
}

// RedisConfig holds Redis connection parameters.
type RedisConfig struct {
	// URL is the Redis connection URL (e.g., "redis://localhost:6379").
	// Empty disables Redis; rate limiting then falls back to process memory.
	URL string
}

// Enabled reports whether a Redis URL was configured.
func (r RedisConfig) Enabled() bool {
	return r.URL != ""
}

// AuthConfig holds session token settings.
type AuthConfig struct {
	// SecretKey is the HMAC key used to sign session tokens.
	SecretKey string

	// TokenTTL is how long an issued token stays valid.
	TokenTTL time.Duration
}

// SuggestionsConfig configures the Gemini text generator.
type SuggestionsConfig struct {
	APIKey string
	Model  string
}

// Enabled reports whether an API key was configured.
func (s SuggestionsConfig) Enabled() bool {
	return s.APIKey != ""
}

// Load reads an optional .env file and then the environment. Returns an
// error if required production settings are missing.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("reading .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the current process environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Env:            getEnv("ENV", "development"),
		Port:           getEnvInt("PORT", 8080),
		AllowedOrigins: getEnvList("ALLOWED_ORIGINS", []string{"http://localhost:5173", "http://localhost:8081"}),
		TrustedProxies: getEnvList("TRUSTED_PROXIES", []string{
			"127.0.0.0/8",
			"10.0.0.0/8",
			"172.16.0.0/12",
			"192.168.0.0/16",
			"fd00::/8",
		}),

		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost:3306"),
			User:            getEnv("DB_USER", "farol"),
			Password:        getEnv("DB_PASSWORD", "farol"),
			Name:            getEnv("DB_NAME", "farol"),
			dsnOverride:     getEnv("DATABASE_URL", ""),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
			MigrationsPath:  getEnv("MIGRATIONS_PATH", "db/migrations"),
		},

		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", ""),
		},

		Auth: AuthConfig{
			SecretKey: getEnv("JWT_SECRET", ""),
			TokenTTL:  getEnvDuration("TOKEN_TTL", time.Hour),
		},

		Suggestions: SuggestionsConfig{
			APIKey: getEnv("GEMINI_API_KEY", ""),
			Model:  getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		},
	}

	if cfg.Auth.TokenTTL <= 0 {
		return nil, fmt.Errorf("TOKEN_TTL must be positive")
	}

	if cfg.IsProduction() {
		if cfg.Auth.SecretKey == "" {
			return nil, fmt.Errorf("JWT_SECRET is required in production")
		}
		if len(cfg.Auth.SecretKey) < 32 {
			return nil, fmt.Errorf("JWT_SECRET must be at least 32 characters in production")
		}
	}

	if cfg.Auth.SecretKey == "" {
		cfg.Auth.SecretKey = devSecret
	}

	return cfg, nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	env := strings.ToLower(c.Env)
	return env == "development" || env == "dev"
}

// IsProduction returns true for "production" or "prod" in any case.
func (c *Config) IsProduction() bool {
	env := strings.ToLower(c.Env)
	return env == "production" || env == "prod"
}

// --- Helper functions for reading environment variables ---

func getEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// getEnvDuration reads a duration env var (e.g., "1h") or returns the default.
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}

// getEnvList reads a comma-separated env var, dropping empty items.
func getEnvList(key string, defaultVal []string) []string {
	val, ok := os.LookupEnv(key)
	if !ok {
		return defaultVal
	}
	var out []string
	for _, item := range strings.Split(val, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
