package main

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type config struct {
	Port              int
	Store             string
	RedisAddr         string
	RedisKeyPrefix    string
	PostgresDSN       string
	OpTimeout         time.Duration
	DefaultDifficulty int
	IntrospectSecret  string
	CORSOrigins       []string
	LogLevel          slog.Level
	SweepInterval     time.Duration
}

// loadConfig reads the environment, after merging in a .env file when one
// is present.
func loadConfig() config {
	_ = godotenv.Load()

	cfg := config{
		Port:              envInt("PORT", 8080),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		RedisKeyPrefix:    os.Getenv("REDIS_KEY_PREFIX"),
		PostgresDSN:       os.Getenv("POSTGRES_DSN"),
		OpTimeout:         time.Duration(envInt("POW_OP_TIMEOUT_MS", 2000)) * time.Millisecond,
		DefaultDifficulty: envInt("POW_DEFAULT_DIFFICULTY", 4),
		IntrospectSecret:  os.Getenv("POW_INTROSPECT_JWT_SECRET"),
		CORSOrigins:       splitList(envOr("CORS_ORIGINS", "*")),
		LogLevel:          levelFromString(os.Getenv("LOG_LEVEL")),
		SweepInterval:     time.Duration(envInt("SWEEP_INTERVAL_SECONDS", 60)) * time.Second,
	}
	cfg.Store = strings.ToLower(os.Getenv("STORE"))
	if cfg.Store == "" {
		switch {
		case cfg.PostgresDSN != "":
			cfg.Store = "postgres"
		case cfg.RedisAddr != "":
			cfg.Store = "redis"
		default:
			cfg.Store = "memory"
		}
	}
	return cfg
}

func envOr(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func envInt(key string, def int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil && v > 0 {
		return v
	}
	return def
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

func levelFromString(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
