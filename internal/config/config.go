package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App      AppConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	Cache    CacheConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines authentication parameters. The four TTL fields populate
// the token expiry policy table; an unset or non-positive entry is a startup
// error, never a runtime fallback.
type AuthConfig struct {
	JWTSecret                 string
	JWTAlgorithm              string
	BcryptCost                int
	StaffAccessTTLMinutes     int
	StaffRefreshTTLMinutes    int
	CustomerAccessTTLMinutes  int
	CustomerRefreshTTLMinutes int
}

// CacheConfig controls the Redis read cache for catalog data.
type CacheConfig struct {
	ProductTTLSeconds  int
	FeaturedTTLSeconds int
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "storefront-service"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret:                 os.Getenv("AUTH_JWT_SECRET"),
			JWTAlgorithm:              getEnv("AUTH_JWT_ALGORITHM", "HS256"),
			BcryptCost:                getEnvAsInt("AUTH_BCRYPT_COST", 12),
			StaffAccessTTLMinutes:     getEnvAsInt("AUTH_STAFF_ACCESS_TTL_MINUTES", 15),
			StaffRefreshTTLMinutes:    getEnvAsInt("AUTH_STAFF_REFRESH_TTL_MINUTES", 720),
			CustomerAccessTTLMinutes:  getEnvAsInt("AUTH_CUSTOMER_ACCESS_TTL_MINUTES", 60),
			CustomerRefreshTTLMinutes: getEnvAsInt("AUTH_CUSTOMER_REFRESH_TTL_MINUTES", 43200),
		},
		Cache: CacheConfig{
			ProductTTLSeconds:  getEnvAsInt("CACHE_PRODUCT_TTL_SECONDS", 300),
			FeaturedTTLSeconds: getEnvAsInt("CACHE_FEATURED_TTL_SECONDS", 300),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the service must not start with.
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return errors.New("AUTH_JWT_SECRET must be set")
	}
	for name, ttl := range map[string]int{
		"AUTH_STAFF_ACCESS_TTL_MINUTES":     c.Auth.StaffAccessTTLMinutes,
		"AUTH_STAFF_REFRESH_TTL_MINUTES":    c.Auth.StaffRefreshTTLMinutes,
		"AUTH_CUSTOMER_ACCESS_TTL_MINUTES":  c.Auth.CustomerAccessTTLMinutes,
		"AUTH_CUSTOMER_REFRESH_TTL_MINUTES": c.Auth.CustomerRefreshTTLMinutes,
	} {
		if ttl <= 0 {
			return fmt.Errorf("%s must be positive", name)
		}
	}
	if c.Auth.BcryptCost < 4 || c.Auth.BcryptCost > 31 {
		return errors.New("AUTH_BCRYPT_COST out of range")
	}
	return nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// ProductTTL returns the product cache lifetime.
func (c CacheConfig) ProductTTL() time.Duration {
	return time.Duration(c.ProductTTLSeconds) * time.Second
}

// FeaturedTTL returns the featured-list cache lifetime.
func (c CacheConfig) FeaturedTTL() time.Duration {
	return time.Duration(c.FeaturedTTLSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
