package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port                 string   `mapstructure:"PORT"`
	Env                  string   `mapstructure:"ENV"`
	DatabaseURL          string   `mapstructure:"DATABASE_URL"`
	DBMaxConns           int32    `mapstructure:"DB_MAX_CONNS"`
	DBMinConns           int32    `mapstructure:"DB_MIN_CONNS"`
	RedisURL             string   `mapstructure:"REDIS_URL"`
	JWTSecretPrimary     string   `mapstructure:"JWT_SECRET_PRIMARY"`
	JWTSecretSecondary   string   `mapstructure:"JWT_SECRET_SECONDARY"`
	JWTExpirationSeconds int64    `mapstructure:"JWT_EXPIRATION_SECONDS"`
	CacheTTLHours        int      `mapstructure:"CACHE_TTL_HOURS"`
	CORSOrigins          []string `mapstructure:"CORS_ORIGINS"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("JWT_EXPIRATION_SECONDS", 3600)
	v.SetDefault("CACHE_TTL_HOURS", 24)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("DB_MIN_CONNS")
	v.BindEnv("REDIS_URL")
	v.BindEnv("JWT_SECRET_PRIMARY")
	v.BindEnv("JWT_SECRET_SECONDARY")
	v.BindEnv("JWT_EXPIRATION_SECONDS")
	v.BindEnv("CACHE_TTL_HOURS")
	v.BindEnv("CORS_ORIGINS")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if cfg.RedisURL == "" && !cfg.IsDev() {
		log.Println("WARNING: REDIS_URL is not set; falling back to the in-process cache store.")
		log.Println("WARNING: List caches will not be shared across instances.")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// Validate checks that the configuration is safe to run. Outside development
// both signing secrets must be set so that tokens issued before a key
// rotation stay verifiable through the transition window.
func (c *Config) Validate() error {
	if !c.IsDev() {
		if c.JWTSecretPrimary == "" {
			return fmt.Errorf("JWT_SECRET_PRIMARY is required when ENV is %q", c.Env)
		}
		if c.JWTSecretSecondary == "" {
			return fmt.Errorf("JWT_SECRET_SECONDARY is required when ENV is %q", c.Env)
		}
	}
	if c.JWTSecretPrimary == "" {
		return fmt.Errorf("JWT_SECRET_PRIMARY is required")
	}
	if c.JWTExpirationSeconds <= 0 {
		return fmt.Errorf("JWT_EXPIRATION_SECONDS must be positive, got %d", c.JWTExpirationSeconds)
	}
	if c.CacheTTLHours <= 0 {
		return fmt.Errorf("CACHE_TTL_HOURS must be positive, got %d", c.CacheTTLHours)
	}
	return nil
}
