package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Port        string `env:"PORT" env-default:"5000"`
	Environment string `env:"ENVIRONMENT" env-default:"development"`

	DatabaseURL    string `env:"DATABASE_URL"`
	DBMaxOpenConns int    `env:"DB_MAX_OPEN_CONNS" env-default:"25"`
	DBMaxIdleConns int    `env:"DB_MAX_IDLE_CONNS" env-default:"5"`

	RedisURL      string        `env:"REDIS_URL" env-default:"redis://localhost:6379"`
	StoryCacheTTL time.Duration `env:"STORY_CACHE_TTL" env-default:"5m"`

	JWTSecret        string        `env:"JWT_SECRET"`
	JWTAccessExpiry  time.Duration `env:"JWT_ACCESS_EXPIRY" env-default:"24h"`
	JWTRefreshExpiry time.Duration `env:"JWT_REFRESH_EXPIRY" env-default:"720h"`

	MinIOEndpoint       string `env:"MINIO_ENDPOINT" env-default:"localhost:9000"`
	MinIOPublicEndpoint string `env:"MINIO_PUBLIC_ENDPOINT"`
	MinIOAccessKey      string `env:"MINIO_ACCESS_KEY" env-default:"minioadmin"`
	MinIOSecretKey      string `env:"MINIO_SECRET_KEY" env-default:"minioadmin"`
	MinIOBucket         string `env:"MINIO_BUCKET" env-default:"blood-connect-avatars"`
	MinIOUseSSL         bool   `env:"MINIO_USE_SSL" env-default:"false"`
	MinIOPublicUseSSL   bool   `env:"MINIO_PUBLIC_USE_SSL" env-default:"true"`
	MaxAvatarSize       int64  `env:"MAX_AVATAR_SIZE" env-default:"5242880"`

	CORSOrigins string `env:"CORS_ORIGINS" env-default:"http://localhost:5173,http://localhost:3000"`

	ResendAPIKey string `env:"RESEND_API_KEY"`
	FromEmail    string `env:"FROM_EMAIL" env-default:"noreply@example.com"`
	Domain       string `env:"DOMAIN" env-default:"localhost:5173"`

	LogLevel  string `env:"LOG_LEVEL" env-default:"info"`
	LogFormat string `env:"LOG_FORMAT" env-default:"json"`
}

// Load reads an optional .env file, then the process environment.
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("cannot read config: %w", err)
	}

	if cfg.MinIOPublicEndpoint == "" {
		cfg.MinIOPublicEndpoint = cfg.MinIOEndpoint
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL is not set")
	}
	if c.JWTSecret == "" && c.IsProduction() {
		return errors.New("JWT_SECRET is required in production")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}
