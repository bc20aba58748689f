package config

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{"RESUME_MAX_PAGES", "RESUME_OCR_LANGUAGE", "RESUME_BY_COLUMN",
		"ENABLE_SLM_REFINER", "SLM_REFINER_TIMEOUT", "LOG_LEVEL", "LOG_FORMAT", "DATABASE_URL", "REDIS_URL", "RESUME_CACHE_TTL"} {
		t.Setenv(key, "")
	}

	c := fromEnv()
	if c.MaxPages != 1000 {
		t.Errorf("Expected MaxPages 1000, got %d", c.MaxPages)
	}
	if c.OCRLanguage != "eng" {
		t.Errorf("Expected OCRLanguage eng, got %q", c.OCRLanguage)
	}
	if c.ByColumn || c.RefinerEnabled {
		t.Error("Expected boolean settings to default to false")
	}
	if c.RefinerTimeout != 60*time.Second {
		t.Errorf("Expected 60s timeout, got %v", c.RefinerTimeout)
	}
	if c.DatabaseURL != "" || c.RedisURL != "" {
		t.Errorf("Expected empty connection URLs, got %q / %q", c.DatabaseURL, c.RedisURL)
	}
	if c.CacheTTL != 24*time.Hour {
		t.Errorf("Expected 24h cache TTL, got %v", c.CacheTTL)
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("RESUME_MAX_PAGES", "3")
	t.Setenv("RESUME_OCR_LANGUAGE", "deu")
	t.Setenv("RESUME_BY_COLUMN", "yes")
	t.Setenv("RESUME_EXCLUDE_HEADERS", "TRUE")
	t.Setenv("ENABLE_SLM_REFINER", "1")
	t.Setenv("SLM_REFINER_ENDPOINT", "http://localhost:9000/generate")
	t.Setenv("SLM_REFINER_TIMEOUT", "15")
	t.Setenv("GEMINI_API_KEY", "key")

	c := fromEnv()
	if c.MaxPages != 3 || c.OCRLanguage != "deu" {
		t.Errorf("Expected 3/deu, got %d/%q", c.MaxPages, c.OCRLanguage)
	}
	if !c.ByColumn || !c.ExcludeHeaders || !c.RefinerEnabled {
		t.Error("Expected boolean overrides to be true")
	}
	if c.RefinerTimeout != 15*time.Second {
		t.Errorf("Expected 15s timeout, got %v", c.RefinerTimeout)
	}
	if c.RefinerEndpoint != "http://localhost:9000/generate" || c.GeminiAPIKey != "key" {
		t.Errorf("Unexpected refiner settings: %+v", c)
	}
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("TEST_INT", "abc")
	if got := getEnvInt("TEST_INT", 7); got != 7 {
		t.Errorf("Expected fallback 7 for bad int, got %d", got)
	}

	t.Setenv("TEST_BOOL", "maybe")
	if !getEnvBool("TEST_BOOL", true) {
		t.Error("Expected fallback true for unrecognized bool")
	}
	t.Setenv("TEST_BOOL", "no")
	if getEnvBool("TEST_BOOL", true) {
		t.Error("Expected false for \"no\"")
	}

	t.Setenv("TEST_DUR", "1m30s")
	if got := getEnvDuration("TEST_DUR", time.Second); got != 90*time.Second {
		t.Errorf("Expected 90s, got %v", got)
	}
	t.Setenv("TEST_DUR", "later")
	if got := getEnvDuration("TEST_DUR", time.Second); got != time.Second {
		t.Errorf("Expected fallback 1s, got %v", got)
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	Config{LogLevel: "warn", LogFormat: "json"}.Logger(&buf).Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("Expected info to be filtered at warn level, got %q", buf.String())
	}

	Config{LogLevel: "debug", LogFormat: "json"}.Logger(&buf).Debug("parse.done", "pages", 2)
	if !strings.Contains(buf.String(), `"msg":"parse.done"`) {
		t.Errorf("Expected JSON output, got %q", buf.String())
	}

	buf.Reset()
	Config{}.Logger(&buf).Info("parse.start")
	if !strings.Contains(buf.String(), "msg=parse.start") {
		t.Errorf("Expected text output, got %q", buf.String())
	}
}
