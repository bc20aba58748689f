package refine

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"reflect"
	"time"

	"github.com/tsawler/resumeparser/schema"
)

// Config holds refinement options
type Config struct {
	// Enabled turns the model call on; when false Refine only sanitizes
	Enabled bool

	// Timeout bounds a single backend call (0 = no extra deadline)
	// Default: 60s
	Timeout time.Duration
}

// DefaultConfig returns refinement enabled with a 60 second timeout
func DefaultConfig() Config {
	return Config{
		Enabled: true,
		Timeout: 60 * time.Second,
	}
}

// Refiner is a caller-owned refinement handle
type Refiner struct {
	backend Backend
	config  Config
	logger  *slog.Logger
}

// New creates a refiner. A nil backend behaves like a disabled refiner.
func New(backend Backend, config Config, logger *slog.Logger) *Refiner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Refiner{backend: backend, config: config, logger: logger}
}

// Enabled reports whether Refine will call the backend
func (r *Refiner) Enabled() bool {
	return r != nil && r.config.Enabled && r.backend != nil
}

// Refine sanitizes raw into the canonical tree and, when enabled, asks the
// backend for an improved version. Any backend failure falls back to the
// sanitized baseline; only an unsanitizable raw tree is an error.
func (r *Refiner) Refine(ctx context.Context, raw map[string]any, rawText string) (map[string]any, error) {
	baseline, err := schema.Sanitize(raw)
	if err != nil {
		return nil, fmt.Errorf("baseline: %w", err)
	}
	if !r.Enabled() {
		return baseline, nil
	}

	prompt, err := BuildPrompt(raw, rawText)
	if err != nil {
		return nil, err
	}

	if r.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.config.Timeout)
		defer cancel()
	}

	start := time.Now()
	response, err := r.backend.Generate(ctx, prompt)
	if err != nil {
		r.logger.Warn("refine.backend.error", "error", err, "elapsed_ms", time.Since(start).Milliseconds())
		return baseline, nil
	}
	candidate := StripCodeFences(response)
	if candidate == "" {
		r.logger.Info("refine.skipped", "reason", "empty response")
		return baseline, nil
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(candidate), &payload); err != nil {
		r.logger.Warn("refine.parse.error", "error", err)
		return baseline, nil
	}

	refined, err := schema.Sanitize(payload)
	if err == nil {
		err = schema.ValidateTree(refined)
	}
	if err != nil {
		r.logger.Warn("refine.validate.error", "error", err)
		return baseline, nil
	}

	r.logger.Info("refine.done",
		"changed", !reflect.DeepEqual(baseline, refined),
		"elapsed_ms", time.Since(start).Milliseconds())
	return refined, nil
}

// RefineResume is Refine over typed resumes
func (r *Refiner) RefineResume(ctx context.Context, resume *schema.Resume, rawText string) (*schema.Resume, error) {
	tree, err := r.Refine(ctx, resume.ToMap(), rawText)
	if err != nil {
		return nil, err
	}
	return schema.FromMap(tree)
}
