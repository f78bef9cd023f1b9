package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/AlibekovAA/task-manager/internal/common/constants"
	commonerrors "github.com/AlibekovAA/task-manager/internal/common/errors"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	HTTPPort       string        `env:"HTTP_PORT" envDefault:"3000"`
	StoreDriver    string        `env:"STORE_DRIVER" envDefault:"postgres"`
	DatabaseURL    string        `env:"DATABASE_URL"`
	SQLitePath     string        `env:"SQLITE_PATH" envDefault:"tasks.db"`
	AutoMigrate    bool          `env:"AUTO_MIGRATE" envDefault:"true"`
	JWTSecret      string        `env:"JWT_SECRET"`
	AccessTokenTTL time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"1h"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"5s"`
	LogDir         string        `env:"LOG_DIR"`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"info"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	cfg.StoreDriver = strings.ToLower(strings.TrimSpace(cfg.StoreDriver))

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if c.JWTSecret == "" {
		return commonerrors.ErrMissingRequiredEnv.WithMessage("missing required environment variable: JWT_SECRET")
	}
	if err := validateJWTSecret(c.JWTSecret); err != nil {
		return err
	}

	switch c.StoreDriver {
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return commonerrors.ErrMissingRequiredEnv.WithMessage("missing required environment variable: DATABASE_URL")
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			return commonerrors.ErrMissingRequiredEnv.WithMessage("missing required environment variable: SQLITE_PATH")
		}
	default:
		return commonerrors.ErrUnsupportedStoreDriver.WithMessage(fmt.Sprintf("unsupported store driver %q", c.StoreDriver))
	}

	if c.AccessTokenTTL <= 0 {
		return commonerrors.ErrValidation.WithMessage("ACCESS_TOKEN_TTL must be positive")
	}

	return nil
}

func validateJWTSecret(secret string) error {
	if len(secret) < constants.JWTSecretMinLength {
		return commonerrors.ErrInvalidJWTSecret.WithCause(fmt.Errorf("got %d bytes", len(secret)))
	}
	return nil
}
