package config

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

const (
	ModeDev  = "dev"
	ModeProd = "prod"

	// MinSecretLength is the shortest JWT secret accepted in prod
	MinSecretLength = 32

	// MinBcryptCost mirrors the hasher's floor so misconfiguration fails at startup
	MinBcryptCost = 10
)

// placeholderSecrets are rejected in prod regardless of length
var placeholderSecrets = []string{"default_secret", "changeme", "secret", "your-secret-key"}

// Config holds all configuration for the application
type Config struct {
	AppMode        string `env:"APP_MODE, default=dev"`
	Port           string `env:"PORT, default=4000"`
	AllowedOrigins string `env:"ALLOWED_ORIGINS"`

	Log      LogConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Security SecurityConfig
	Redis    RedisConfig
	Seed     SeedConfig

	// Warnings collects non-fatal problems found while loading
	Warnings []string
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level  string `env:"LOG_LEVEL, default=info"`
	Pretty bool   `env:"LOG_PRETTY, default=false"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Driver       string        `env:"DB_DRIVER, default=mysql"`
	Host         string        `env:"DB_HOST, default=localhost"`
	Port         string        `env:"DB_PORT, default=3306"`
	User         string        `env:"DB_USER, default=root"`
	Password     string        `env:"DB_PASS"`
	Name         string        `env:"DB_NAME, default=vetcare"`
	QueryTimeout time.Duration `env:"DB_QUERY_TIMEOUT, default=5s"`
	MaxOpenConns int           `env:"DB_MAX_OPEN_CONNS, default=25"`
	MaxIdleConns int           `env:"DB_MAX_IDLE_CONNS, default=10"`
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret string `env:"JWT_SECRET"`
}

// SecurityConfig holds hashing and rate limit settings
type SecurityConfig struct {
	BcryptCost       int `env:"BCRYPT_COST, default=10"`
	RateLimitMax     int `env:"RATE_LIMIT_MAX, default=100"`
	AuthRateLimitMax int `env:"AUTH_RATE_LIMIT_MAX, default=10"`
}

// RedisConfig points the rate limiter at a shared store. Empty Addr keeps
// limiter state in process memory.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

// SeedConfig holds the bootstrap admin account
type SeedConfig struct {
	AdminName     string `env:"SEED_ADMIN_NAME, default=Administrator"`
	AdminEmail    string `env:"SEED_ADMIN_EMAIL"`
	AdminPassword string `env:"SEED_ADMIN_PASSWORD"`
}

// Load reads configuration from .env file and environment variables
func Load(ctx context.Context) (*Config, error) {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom reads configuration from the given lookuper and validates it
func LoadFrom(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}

	cfg.AppMode = strings.ToLower(strings.TrimSpace(cfg.AppMode))
	cfg.Database.Driver = strings.ToLower(strings.TrimSpace(cfg.Database.Driver))

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.AppMode != ModeDev && c.AppMode != ModeProd {
		return fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", c.AppMode)
	}

	switch c.Database.Driver {
	case "mysql", "sqlite":
	default:
		return fmt.Errorf("invalid DB_DRIVER: '%s' (must be 'mysql' or 'sqlite')", c.Database.Driver)
	}

	if c.Database.QueryTimeout <= 0 {
		return errors.New("DB_QUERY_TIMEOUT must be positive")
	}

	if c.Security.BcryptCost < MinBcryptCost {
		return fmt.Errorf("BCRYPT_COST must be at least %d, got %d", MinBcryptCost, c.Security.BcryptCost)
	}

	if c.Security.RateLimitMax < 1 || c.Security.AuthRateLimitMax < 1 {
		return errors.New("rate limits must be at least 1")
	}

	return c.resolveSecret()
}

// resolveSecret enforces a strong secret in prod and generates a random
// one in dev when none is set.
func (c *Config) resolveSecret() error {
	secret := strings.TrimSpace(c.JWT.Secret)
	c.JWT.Secret = secret

	if c.IsProd() {
		switch {
		case secret == "":
			return errors.New("JWT_SECRET is required in prod mode")
		case isPlaceholderSecret(secret):
			return errors.New("JWT_SECRET is set to a well-known placeholder")
		case len(secret) < MinSecretLength:
			return fmt.Errorf("JWT_SECRET must be at least %d characters", MinSecretLength)
		}
		return nil
	}

	if secret == "" {
		generated, err := randomSecret()
		if err != nil {
			return fmt.Errorf("generate dev secret: %w", err)
		}
		c.JWT.Secret = generated
		c.Warnings = append(c.Warnings, "JWT_SECRET not set, using a random secret; tokens will not survive a restart")
		return nil
	}

	if isPlaceholderSecret(secret) || len(secret) < MinSecretLength {
		c.Warnings = append(c.Warnings, "JWT_SECRET is weak; it would be rejected in prod mode")
	}
	return nil
}

func isPlaceholderSecret(secret string) bool {
	for _, p := range placeholderSecrets {
		if strings.EqualFold(secret, p) {
			return true
		}
	}
	return false
}

func randomSecret() (string, error) {
	buf := make([]byte, MinSecretLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == ModeDev
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == ModeProd
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	if c.AllowedOrigins == "" {
		if c.IsDev() {
			return "*"
		}
		return "http://localhost:5173"
	}
	return c.AllowedOrigins
}
