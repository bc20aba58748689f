package inference

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/tsawler/resumeparser/internal/httpjson"
	"github.com/tsawler/resumeparser/model"
)

// RemoteEmbedder calls an HTTP model server. The request carries the
// window's words, their normalized boxes and the page size; the response
// is {"embeddings": [[...]], "logits": [[...]]} with logits optional.
type RemoteEmbedder struct {
	endpoint string
	client   *http.Client
	headers  map[string]string
	logger   *slog.Logger
}

// NewRemoteEmbedder creates an embedder for endpoint. A nil client uses a
// client with httpjson.DefaultTimeout.
func NewRemoteEmbedder(endpoint string, client *http.Client, logger *slog.Logger) *RemoteEmbedder {
	if logger == nil {
		logger = slog.Default()
	}
	return &RemoteEmbedder{endpoint: endpoint, client: client, logger: logger}
}

// WithHeader adds a header (e.g. Authorization) to every request
func (e *RemoteEmbedder) WithHeader(key, value string) *RemoteEmbedder {
	if e.headers == nil {
		e.headers = make(map[string]string)
	}
	e.headers[key] = value
	return e
}

type embedRequest struct {
	Words     []string `json:"words"`
	Boxes     [][]int  `json:"boxes"`
	Width     int      `json:"width"`
	Height    int      `json:"height"`
	ImagePath string   `json:"image_path,omitempty"`
}

type embedResponse struct {
	Embeddings [][]float64 `json:"embeddings"`
	Logits     [][]float64 `json:"logits"`
}

// Embed implements Embedder.
func (e *RemoteEmbedder) Embed(ctx context.Context, page *model.Page, tokens []model.Token) ([]Vector, error) {
	req := embedRequest{
		Words:     make([]string, len(tokens)),
		Boxes:     make([][]int, len(tokens)),
		Width:     page.Metadata.Width,
		Height:    page.Metadata.Height,
		ImagePath: page.Metadata.ImagePath,
	}
	for i, tok := range tokens {
		req.Words[i] = tok.Text
		req.Boxes[i] = tok.BBox.AsSlice()
	}

	resp, err := httpjson.Send(ctx, e.client, e.endpoint, req, e.headers, "inference.http", e.logger)
	if err != nil {
		return nil, fmt.Errorf("inference request: %w", err)
	}

	var out embedResponse
	if err := json.Unmarshal(resp.Body, &out); err != nil {
		return nil, fmt.Errorf("decoding inference response: %w", err)
	}

	vectors := make([]Vector, len(out.Embeddings))
	for i, emb := range out.Embeddings {
		vectors[i].Embedding = emb
		if i < len(out.Logits) {
			vectors[i].Logits = out.Logits[i]
		}
	}
	return vectors, nil
}
