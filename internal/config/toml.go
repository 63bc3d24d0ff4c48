package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// FileConfig mirrors Config for the optional TOML file. Unset keys stay nil
// and leave the environment value alone.
type FileConfig struct {
	Server    ServerSection    `toml:"server"`
	Storage   StorageSection   `toml:"storage"`
	Redis     RedisSection     `toml:"redis"`
	Auth      AuthSection      `toml:"auth"`
	RateLimit RateLimitSection `toml:"rate_limit"`
	Predictor PredictorSection `toml:"predictor"`
}

type ServerSection struct {
	Env         *string  `toml:"env"`
	LogLevel    *string  `toml:"log_level"`
	Port        *string  `toml:"port"`
	CORSOrigins []string `toml:"cors_origins"`
}

type StorageSection struct {
	Backend    *string `toml:"backend"`
	SQLitePath *string `toml:"sqlite_path"`
	DBHost     *string `toml:"db_host"`
	DBPort     *string `toml:"db_port"`
	DBUser     *string `toml:"db_user"`
	DBPassword *string `toml:"db_password"`
	DBName     *string `toml:"db_name"`
	DBSSLMode  *string `toml:"db_sslmode"`
}

type RedisSection struct {
	Host     *string `toml:"host"`
	Port     *string `toml:"port"`
	Password *string `toml:"password"`
	DB       *int    `toml:"db"`
	CacheTTL *string `toml:"cache_ttl"`
}

type AuthSection struct {
	JWTSecret     *string `toml:"jwt_secret"`
	JWTIssuer     *string `toml:"jwt_issuer"`
	TokenTTL      *string `toml:"token_ttl"`
	ResetTokenTTL *string `toml:"reset_token_ttl"`
}

type RateLimitSection struct {
	Requests *int    `toml:"requests"`
	Window   *string `toml:"window"`
}

type PredictorSection struct {
	MinSamples *int `toml:"min_samples"`
	Neighbours *int `toml:"neighbours"`
}

// LoadFile decodes a TOML config. A missing file is not an error.
func LoadFile(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config: path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("config: failed to stat %s: %w", path, err)
	}

	var fc FileConfig
	meta, err := toml.DecodeFile(path, &fc)
	if err != nil {
		return FileConfig{}, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("config: unknown key %q in %s", undecoded[0].String(), path)
	}
	return fc, nil
}

func (f FileConfig) Apply(c *Config) error {
	setString(&c.Env, f.Server.Env)
	setString(&c.LogLevel, f.Server.LogLevel)
	setString(&c.Port, f.Server.Port)
	if len(f.Server.CORSOrigins) > 0 {
		c.CORSOrigins = f.Server.CORSOrigins
	}

	setString(&c.StorageBackend, f.Storage.Backend)
	setString(&c.SQLitePath, f.Storage.SQLitePath)
	setString(&c.DBHost, f.Storage.DBHost)
	setString(&c.DBPort, f.Storage.DBPort)
	setString(&c.DBUser, f.Storage.DBUser)
	setString(&c.DBPassword, f.Storage.DBPassword)
	setString(&c.DBName, f.Storage.DBName)
	setString(&c.DBSSLMode, f.Storage.DBSSLMode)

	setString(&c.RedisHost, f.Redis.Host)
	setString(&c.RedisPort, f.Redis.Port)
	setString(&c.RedisPassword, f.Redis.Password)
	setInt(&c.RedisDB, f.Redis.DB)

	setString(&c.JWTSecret, f.Auth.JWTSecret)
	setString(&c.JWTIssuer, f.Auth.JWTIssuer)

	setInt(&c.RateLimit, f.RateLimit.Requests)
	setInt(&c.PredictorMinSamples, f.Predictor.MinSamples)
	setInt(&c.PredictorNeighbours, f.Predictor.Neighbours)

	durations := []struct {
		dst *time.Duration
		src *string
		key string
	}{
		{&c.CacheTTL, f.Redis.CacheTTL, "redis.cache_ttl"},
		{&c.TokenTTL, f.Auth.TokenTTL, "auth.token_ttl"},
		{&c.ResetTokenTTL, f.Auth.ResetTokenTTL, "auth.reset_token_ttl"},
		{&c.RateWindow, f.RateLimit.Window, "rate_limit.window"},
	}
	for _, d := range durations {
		if d.src == nil {
			continue
		}
		v, err := time.ParseDuration(*d.src)
		if err != nil {
			return fmt.Errorf("config: %s must be a duration: %w", d.key, err)
		}
		*d.dst = v
	}

	return nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}
