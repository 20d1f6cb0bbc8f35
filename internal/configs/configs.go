package config

import (
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"strconv"
)

type Config struct {
	AppURL                 string
	DatabaseDriver         string
	DatabaseDSN            string
	RateLimit              int
	RateLimitBackend       string
	RedisAddr              string
	RedisKeyPrefix         string
	ShutdownTimeoutSeconds int
}

func Load() Config {
	cfg, err := load()
	if err != nil {
		log.Fatal(err)
	}
	return cfg
}

func load() (Config, error) {
	env := &envReader{}

	cfg := Config{
		AppURL:                 net.JoinHostPort(env.text("APP_HOST", "127.0.0.1"), env.text("APP_PORT", "8080")),
		DatabaseDriver:         env.text("DATABASE_DRIVER", DriverSQLite),
		DatabaseDSN:            env.text("DATABASE_DSN", "tasks.db"),
		RateLimit:              env.number("RATE_LIMIT_PER_MINUTE", 120),
		RateLimitBackend:       env.text("RATE_LIMIT_BACKEND", RateLimitMemory),
		RedisAddr:              net.JoinHostPort(env.text("REDIS_HOST", "127.0.0.1"), env.text("REDIS_PORT", "6379")),
		RedisKeyPrefix:         env.text("REDIS_KEY_PREFIX", "task_tracker:ratelimit"),
		ShutdownTimeoutSeconds: env.number("SHUTDOWN_TIMEOUT_SECONDS", 20),
	}

	if err := errors.Join(append(env.errs, validate(cfg))...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

const (
	RateLimitMemory = "memory"
	RateLimitRedis  = "redis"
)

func validate(cfg Config) error {
	if cfg.AppURL == "" {
		return fmt.Errorf("APP_URL must not be empty (e.g. 127.0.0.1:8080)")
	}
	if cfg.DatabaseDriver != DriverSQLite && cfg.DatabaseDriver != DriverPostgres {
		return fmt.Errorf("DATABASE_DRIVER must be %q or %q", DriverSQLite, DriverPostgres)
	}
	if cfg.DatabaseDSN == "" {
		return fmt.Errorf("DATABASE_DSN must not be empty")
	}
	if cfg.RateLimit <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be greater than 0")
	}
	if cfg.RateLimitBackend != RateLimitMemory && cfg.RateLimitBackend != RateLimitRedis {
		return fmt.Errorf("RATE_LIMIT_BACKEND must be %q or %q", RateLimitMemory, RateLimitRedis)
	}
	if cfg.ShutdownTimeoutSeconds <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT_SECONDS must be greater than 0")
	}
	return nil
}

// envReader reads variables with defaults and collects malformed values so
// every bad setting is reported at once.
type envReader struct {
	errs []error
}

func (r *envReader) text(key, defaultVal string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return defaultVal
}

func (r *envReader) number(key string, defaultVal int) int {
	v := r.text(key, "")
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s must be an integer, got %q", key, v))
		return defaultVal
	}
	return i
}
