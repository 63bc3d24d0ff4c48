package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
	BackendMemory   = "memory"

	defaultJWTSecret = "dev-secret-change-me"
)

type Config struct {
	Env      string
	LogLevel string
	Port     string

	StorageBackend string
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBSSLMode      string
	SQLitePath     string

	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	JWTSecret     string
	JWTIssuer     string
	TokenTTL      time.Duration
	ResetTokenTTL time.Duration

	RateLimit  int
	RateWindow time.Duration

	CORSOrigins []string

	PredictorMinSamples int
	PredictorNeighbours int
}

// Load reads .env (if present), then the environment, then the TOML file
// named by KANSO_CONFIG. Later sources win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg, err := FromEnv()
	if err != nil {
		return nil, err
	}

	if path := os.Getenv("KANSO_CONFIG"); path != "" {
		file, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		if err := file.Apply(cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func FromEnv() (*Config, error) {
	cfg := &Config{
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Port:     getEnv("PORT", "8080"),

		StorageBackend: strings.ToLower(getEnv("STORAGE_BACKEND", BackendPostgres)),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBUser:         getEnv("DB_USER", "kanso_user"),
		DBPassword:     getEnv("DB_PASSWORD", ""),
		DBName:         getEnv("DB_NAME", "kanso_db"),
		DBSSLMode:      getEnv("DB_SSLMODE", "disable"),
		SQLitePath:     getEnv("SQLITE_PATH", "kanso-sleep.db"),

		RedisHost:     getEnv("REDIS_HOST", ""),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		JWTSecret: getEnv("JWT_SECRET", defaultJWTSecret),
		JWTIssuer: getEnv("JWT_ISSUER", "kanso-sleep-engine"),

		CORSOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
	}

	var err error
	ints := []struct {
		dst      *int
		key      string
		fallback int
	}{
		{&cfg.RedisDB, "REDIS_DB", 0},
		{&cfg.RateLimit, "RATE_LIMIT", 100},
		{&cfg.PredictorMinSamples, "PREDICTOR_MIN_SAMPLES", 5},
		{&cfg.PredictorNeighbours, "PREDICTOR_NEIGHBOURS", 5},
	}
	for _, v := range ints {
		if *v.dst, err = getEnvInt(v.key, v.fallback); err != nil {
			return nil, err
		}
	}

	durations := []struct {
		dst      *time.Duration
		key      string
		fallback time.Duration
	}{
		{&cfg.CacheTTL, "CACHE_TTL", 30 * time.Minute},
		{&cfg.TokenTTL, "TOKEN_TTL", 24 * time.Hour},
		{&cfg.ResetTokenTTL, "RESET_TOKEN_TTL", 30 * time.Minute},
		{&cfg.RateWindow, "RATE_WINDOW", time.Minute},
	}
	for _, v := range durations {
		if *v.dst, err = getEnvDuration(v.key, v.fallback); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Env {
	case "development", "staging", "production":
	default:
		return errors.New("APP_ENV must be one of: development, staging, production")
	}

	switch c.StorageBackend {
	case BackendPostgres:
		if c.DBHost == "" || c.DBName == "" {
			return errors.New("DB_HOST and DB_NAME are required when STORAGE_BACKEND=postgres")
		}
	case BackendSQLite:
		if c.SQLitePath == "" {
			return errors.New("SQLITE_PATH is required when STORAGE_BACKEND=sqlite")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("STORAGE_BACKEND must be one of: %s, %s, %s", BackendPostgres, BackendSQLite, BackendMemory)
	}

	if c.Env == "production" && (c.JWTSecret == "" || c.JWTSecret == defaultJWTSecret) {
		return errors.New("JWT_SECRET must be set in production")
	}
	if c.TokenTTL <= 0 || c.ResetTokenTTL <= 0 {
		return errors.New("token lifetimes must be positive")
	}
	if c.RateLimit <= 0 || c.RateWindow <= 0 {
		return errors.New("RATE_LIMIT and RATE_WINDOW must be positive")
	}
	if c.PredictorMinSamples <= 0 || c.PredictorNeighbours <= 0 {
		return errors.New("predictor settings must be positive")
	}
	return nil
}

// PostgresDSN is the connection string for the pgx stdlib driver.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

func (c *Config) RedisEnabled() bool {
	return c.RedisHost != ""
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := getEnv(key, "")
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s must be an integer: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := getEnv(key, "")
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s must be a duration: %w", key, err)
	}
	return d, nil
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
