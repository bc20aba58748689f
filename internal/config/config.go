// Package config loads process settings for the resumeparse command from
// the environment, optionally seeded from a .env file.
package config

import (
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds process-level settings
type Config struct {
	MaxPages       int
	OCRLanguage    string
	ByColumn       bool
	ExcludeHeaders bool

	InferenceEndpoint string

	RefinerEnabled  bool
	RefinerEndpoint string
	RefinerTimeout  time.Duration
	RefinerModel    string
	GeminiAPIKey    string

	DatabaseURL string

	RedisURL string
	CacheTTL time.Duration

	LogLevel  string
	LogFormat string
}

// Load reads environment variables, optionally from a .env file if present.
func Load() Config {
	// Try to load .env if it exists; ignore error if file not found
	_ = godotenv.Load()
	return fromEnv()
}

func fromEnv() Config {
	return Config{
		MaxPages:          getEnvInt("RESUME_MAX_PAGES", 1000),
		OCRLanguage:       getEnv("RESUME_OCR_LANGUAGE", "eng"),
		ByColumn:          getEnvBool("RESUME_BY_COLUMN", false),
		ExcludeHeaders:    getEnvBool("RESUME_EXCLUDE_HEADERS", false),
		InferenceEndpoint: os.Getenv("INFERENCE_ENDPOINT"),
		RefinerEnabled:    getEnvBool("ENABLE_SLM_REFINER", false),
		RefinerEndpoint:   os.Getenv("SLM_REFINER_ENDPOINT"),
		RefinerTimeout:    getEnvDuration("SLM_REFINER_TIMEOUT", 60*time.Second),
		RefinerModel:      os.Getenv("SLM_REFINER_MODEL"),
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		RedisURL:          os.Getenv("REDIS_URL"),
		CacheTTL:          getEnvDuration("RESUME_CACHE_TTL", 24*time.Hour),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "text"),
	}
}

// Logger builds a slog logger writing to w at the configured level and
// format ("json" or "text").
func (c Config) Logger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(c.LogLevel)}
	if strings.EqualFold(c.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// getEnvBool accepts 1/true/yes (any case) as true and 0/false/no as false
func getEnvBool(key string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes":
		return true
	case "0", "false", "no":
		return false
	}
	return def
}

// getEnvDuration accepts Go durations ("90s") or whole seconds ("90")
func getEnvDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	return def
}
