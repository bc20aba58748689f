// Package httpjson posts JSON bodies to collaborator services and returns
// the raw response.
package httpjson

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// DefaultTimeout applies when no client is supplied
const DefaultTimeout = 60 * time.Second

// ErrStatus is wrapped by Send for non-2xx responses
var ErrStatus = errors.New("non-2xx status")

// Response is the raw result of a call
type Response struct {
	Status      int
	ContentType string
	Body        []byte
	RequestID   string
}

// Send posts body as JSON to url. Every call gets a request id that is
// logged and sent in the X-Request-ID header. The event prefix names the
// caller in log keys (e.g. "refine.http").
func Send(ctx context.Context, client *http.Client, url string, body any, headers map[string]string, prefix string, logger *slog.Logger) (*Response, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}

	reqID := uuid.New().String()
	start := time.Now()

	bs, err := json.Marshal(body)
	if err != nil {
		logger.Error(prefix+".encode_error", "req_id", reqID, "error", err)
		return nil, fmt.Errorf("encode json: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bs))
	if err != nil {
		logger.Error(prefix+".build_request_error", "req_id", reqID, "error", err)
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", reqID)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	logger.Debug(prefix+".request", "req_id", reqID, "url", url, "content_length", len(bs))

	resp, err := client.Do(req)
	if err != nil {
		logger.Error(prefix+".send_error", "req_id", reqID, "error", err, "elapsed_ms", time.Since(start).Milliseconds())
		return nil, err
	}
	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			logger.Warn(prefix+".response_body_close_error", "req_id", reqID, "error", err)
		}
	}(resp.Body)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	logger.Debug(prefix+".response",
		"req_id", reqID,
		"status", resp.StatusCode,
		"bytes", len(raw),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)

	out := &Response{
		Status:      resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        raw,
		RequestID:   reqID,
	}
	if resp.StatusCode/100 != 2 {
		return out, fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode)
	}
	return out, nil
}
