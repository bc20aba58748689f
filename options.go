package resumeparser

import (
	"log/slog"

	"github.com/tsawler/resumeparser/inference"
	"github.com/tsawler/resumeparser/ingest"
	"github.com/tsawler/resumeparser/linker"
	"github.com/tsawler/resumeparser/refine"
)

// ParseOptions holds configuration for a parse.
type ParseOptions struct {
	// Page selection (1-indexed in API, stored as-is)
	pages []int

	// Layout processing
	excludeHeaders bool
	byColumn       bool

	// Collaborators (all optional)
	embedder   inference.Embedder
	refiner    *refine.Refiner
	recognizer ingest.WordRecognizer
	cache      Cache
	logger     *slog.Logger

	ingest ingest.Config
	linker linker.Config
}

// defaultOptions returns the default parse options.
func defaultOptions() ParseOptions {
	return ParseOptions{
		pages:          nil, // nil means all pages
		excludeHeaders: false,
		byColumn:       false,
		ingest:         ingest.DefaultConfig(),
		linker:         linker.DefaultConfig(),
	}
}

// clone creates a deep copy of ParseOptions.
func (o ParseOptions) clone() ParseOptions {
	newOpts := o

	// Deep copy pages slice
	if o.pages != nil {
		newOpts.pages = make([]int, len(o.pages))
		copy(newOpts.pages, o.pages)
	}

	return newOpts
}
