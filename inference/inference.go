package inference

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tsawler/resumeparser/model"
)

// Config holds windowing options
type Config struct {
	// MaxLength is the largest window sent to the embedder
	// Default: 512
	MaxLength int

	// ChunkOverlap is how many tokens consecutive windows share
	// Default: 32
	ChunkOverlap int
}

// DefaultConfig returns the window sizes used by LayoutLM-style models
func DefaultConfig() Config {
	return Config{
		MaxLength:    512,
		ChunkOverlap: 32,
	}
}

// Vector is the model output for a single token
type Vector struct {
	Embedding []float64 `json:"embedding"`
	Logits    []float64 `json:"logits,omitempty"`
}

// Embedder returns one vector per token of a window. A shorter result
// means the model truncated the window; the trailing tokens get no vector.
type Embedder interface {
	Embed(ctx context.Context, page *model.Page, tokens []model.Token) ([]Vector, error)
}

// EmbedderFunc adapts a function to the Embedder interface
type EmbedderFunc func(ctx context.Context, page *model.Page, tokens []model.Token) ([]Vector, error)

// Embed calls f
func (f EmbedderFunc) Embed(ctx context.Context, page *model.Page, tokens []model.Token) ([]Vector, error) {
	return f(ctx, page, tokens)
}

// Window is a half-open token range [Start, End)
type Window struct {
	Start, End int
}

// Chunk splits n tokens into windows of at most maxLen that overlap by
// overlap tokens. A single window covers everything when n <= maxLen.
// An overlap that would stall progress is reduced to maxLen-1.
func Chunk(n, maxLen, overlap int) []Window {
	if n <= 0 {
		return nil
	}
	if maxLen <= 0 || n <= maxLen {
		return []Window{{0, n}}
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= maxLen {
		overlap = maxLen - 1
	}

	var windows []Window
	for start := 0; ; {
		end := min(start+maxLen, n)
		windows = append(windows, Window{start, end})
		if end == n {
			break
		}
		start = end - overlap
	}
	return windows
}

// Predictor runs an Embedder over whole documents
type Predictor struct {
	embedder Embedder
	config   Config
	logger   *slog.Logger
}

// NewPredictor creates a predictor. Zero config fields take defaults.
func NewPredictor(e Embedder, config Config, logger *slog.Logger) *Predictor {
	def := DefaultConfig()
	if config.MaxLength <= 0 {
		config.MaxLength = def.MaxLength
	}
	if config.ChunkOverlap < 0 {
		config.ChunkOverlap = 0
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Predictor{embedder: e, config: config, logger: logger}
}

// Predict embeds every page of the document.
func Predict(ctx context.Context, e Embedder, doc *model.Document) ([]model.TokenEmbedding, error) {
	return NewPredictor(e, DefaultConfig(), nil).Predict(ctx, doc)
}

// Predict embeds every page of the document and returns one entry per
// embedded token, in page order.
func (p *Predictor) Predict(ctx context.Context, doc *model.Document) ([]model.TokenEmbedding, error) {
	if doc == nil {
		return nil, nil
	}

	var out []model.TokenEmbedding
	for _, page := range doc.Pages {
		embedded, err := p.PredictPage(ctx, page)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", page.Metadata.Number, err)
		}
		out = append(out, embedded...)
	}

	p.logger.Debug("inference.predict.done", "pages", doc.PageCount(),
		"tokens", doc.TokenCount(), "embeddings", len(out))
	return out, nil
}

// PredictPage embeds a single page window by window.
func (p *Predictor) PredictPage(ctx context.Context, page *model.Page) ([]model.TokenEmbedding, error) {
	windows := Chunk(len(page.Tokens), p.config.MaxLength, p.config.ChunkOverlap)
	out := make([]model.TokenEmbedding, 0, len(page.Tokens))
	next := 0 // first token index without a vector

	for _, w := range windows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		vectors, err := p.embedder.Embed(ctx, page, page.Tokens[w.Start:w.End])
		if err != nil {
			return nil, err
		}
		if len(vectors) > w.End-w.Start {
			vectors = vectors[:w.End-w.Start]
		}
		p.logger.Debug("inference.window", "page", page.Metadata.Number,
			"start", w.Start, "end", w.End, "vectors", len(vectors))

		for i, v := range vectors {
			idx := w.Start + i
			if idx < next {
				continue
			}
			out = append(out, model.TokenEmbedding{
				Token:     page.Tokens[idx],
				Embedding: v.Embedding,
				Logits:    v.Logits,
			})
			next = idx + 1
		}
	}
	return out, nil
}
