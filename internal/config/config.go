package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultAppName        = "WalletPay Transactions"
	defaultAppEnv         = "development"
	defaultPort           = "8080"
	defaultLogLevel       = "info"
	defaultShutdownDelay  = 10 * time.Second
	defaultWalletTimeout  = 5 * time.Second
	defaultIdempotencyTTL = 24 * time.Hour

	shutdownSecondsEnvVar  = "SHUTDOWN_TIMEOUT_SECONDS"
	shutdownDurationEnvVar = "SHUTDOWN_TIMEOUT"
	walletTimeoutEnvVar    = "WALLET_TIMEOUT"
	idemTTLEnvVar          = "IDEMPOTENCY_TTL"
)

// Config captures application runtime configuration loaded from environment variables.
type Config struct {
	AppName          string
	AppEnv           string
	Port             string
	LogLevel         string
	DatabaseURL      string
	RedisURL         string
	WalletServiceURL string
	WalletTimeout    time.Duration
	ShutdownPeriod   time.Duration
	IdempotencyTTL   time.Duration
}

// Load reads configuration values from the environment and populates a Config instance.
func Load() (Config, error) {
	cfg := Config{
		AppName:          getEnv("APP_NAME", defaultAppName),
		AppEnv:           getEnv("APP_ENV", defaultAppEnv),
		Port:             getEnv("PORT", defaultPort),
		LogLevel:         strings.ToLower(getEnv("LOG_LEVEL", defaultLogLevel)),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		RedisURL:         os.Getenv("REDIS_URL"),
		WalletServiceURL: strings.TrimRight(os.Getenv("WALLET_SERVICE_URL"), "/"),
		WalletTimeout:    defaultWalletTimeout,
		ShutdownPeriod:   defaultShutdownDelay,
		IdempotencyTTL:   defaultIdempotencyTTL,
	}

	if v := os.Getenv(shutdownSecondsEnvVar); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", shutdownSecondsEnvVar, err)
		}
		cfg.ShutdownPeriod = time.Duration(seconds) * time.Second
	} else if v := os.Getenv(shutdownDurationEnvVar); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", shutdownDurationEnvVar, err)
		}
		cfg.ShutdownPeriod = d
	}

	if v := os.Getenv(walletTimeoutEnvVar); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", walletTimeoutEnvVar, err)
		}
		cfg.WalletTimeout = d
	}

	if v := os.Getenv(idemTTLEnvVar); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", idemTTLEnvVar, err)
		}
		cfg.IdempotencyTTL = d
	}

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL must be set")
	}

	if cfg.RedisURL == "" {
		return Config{}, fmt.Errorf("REDIS_URL must be set")
	}

	if cfg.WalletServiceURL == "" {
		return Config{}, fmt.Errorf("WALLET_SERVICE_URL must be set")
	}

	return cfg, nil
}

// Address returns the listen address in the format Fiber expects.
func (c Config) Address() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return fmt.Sprintf(":%s", c.Port)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
