package refine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/tsawler/resumeparser/internal/httpjson"
)

// ErrNoResponse is returned by backends that produced no usable text
var ErrNoResponse = errors.New("refiner returned no response")

// Backend generates text for a prompt
type Backend interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// BackendFunc adapts a function to the Backend interface
type BackendFunc func(ctx context.Context, prompt string) (string, error)

// Generate calls f
func (f BackendFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// HTTPBackend posts {"prompt": ...} to a text-generation endpoint
type HTTPBackend struct {
	endpoint string
	client   *http.Client
	logger   *slog.Logger
}

// NewHTTPBackend creates a backend for endpoint. A nil client uses a
// client with httpjson.DefaultTimeout.
func NewHTTPBackend(endpoint string, client *http.Client, logger *slog.Logger) *HTTPBackend {
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTPBackend{endpoint: endpoint, client: client, logger: logger}
}

// Generate implements Backend. JSON replies are read from their "output"
// or "response" field; any other content type is returned verbatim.
func (b *HTTPBackend) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := httpjson.Send(ctx, b.client, b.endpoint, map[string]string{"prompt": prompt}, nil, "refine.http", b.logger)
	if err != nil {
		return "", fmt.Errorf("refine request: %w", err)
	}

	if !strings.Contains(resp.ContentType, "application/json") {
		return string(resp.Body), nil
	}

	var out map[string]any
	if err := json.Unmarshal(resp.Body, &out); err != nil {
		return "", fmt.Errorf("%w: undecodable JSON reply: %v", ErrNoResponse, err)
	}
	for _, key := range []string{"output", "response"} {
		if s := textValue(out[key]); s != "" {
			return s, nil
		}
	}
	return "", ErrNoResponse
}

// textValue renders a reply field as text. Structured values are
// re-encoded so a reply that nests the tree directly still works.
func textValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		bs, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(bs)
	}
}
