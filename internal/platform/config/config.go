// Package config loads runtime settings from the environment and optional .env files.
package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	DefaultHPAPIBaseURL = "https://hp-api.onrender.com/api"
	DefaultHPAPITimeout = 30 * time.Second
	DefaultCacheTTL     = 15 * time.Minute
)

// Config holds every setting the binaries read at startup.
type Config struct {
	Addr string `env:"APP_ADDR" envDefault:":8000" validate:"required"`

	HPAPIBaseURL string        `env:"HP_API_BASE_URL" envDefault:"https://hp-api.onrender.com/api" validate:"required,http_url"`
	HPAPITimeout time.Duration `env:"HP_API_TIMEOUT" envDefault:"30s" validate:"gt=0"`
	CacheTTL     time.Duration `env:"CACHE_TTL" envDefault:"15m" validate:"gt=0"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info" validate:"omitempty,oneof=debug info warn warning error fatal"`

	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS" envDefault:"20" validate:"gt=0"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"40" validate:"gt=0"`
	EnableHSTS     bool    `env:"ENABLE_HSTS" envDefault:"false"`

	// TrustedProxies lists proxy addresses or CIDRs whose X-Forwarded-For is honoured.
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:"," validate:"dive,cidr|ip"`
}

// Load reads .env.local and .env (when present, never overriding variables
// already set by the runtime) and parses the environment into a Config.
func Load() (Config, error) {
	loadEnvFiles()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.Addr = strings.TrimSpace(cfg.Addr)
	cfg.HPAPIBaseURL = strings.TrimRight(strings.TrimSpace(cfg.HPAPIBaseURL), "/")
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	for i, p := range cfg.TrustedProxies {
		cfg.TrustedProxies[i] = strings.TrimSpace(p)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadEnvFiles() {
	// godotenv never overrides, so the first file to set a key wins.
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")
}

var validate = newValidator()

// newValidator reports fields by their environment variable name.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("env"), ",")
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// Validate reports settings the server cannot start with.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate config: %w", err)
	}

	errs := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		errs = append(errs, fieldError(fe))
	}
	return errors.Join(errs...)
}

func fieldError(fe validator.FieldError) error {
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s must not be empty", fe.Field())
	case "http_url":
		return fmt.Errorf("%s must be an http(s) URL, got %q", fe.Field(), fe.Value())
	case "gt":
		return fmt.Errorf("%s must be positive, got %v", fe.Field(), fe.Value())
	case "cidr|ip":
		return fmt.Errorf("%s must be an IP address or CIDR, got %q", fe.Field(), fe.Value())
	case "oneof":
		return fmt.Errorf("%s must be one of [%s], got %q", fe.Field(), fe.Param(), fe.Value())
	default:
		return fmt.Errorf("%s is invalid", fe.Field())
	}
}
