package ingest

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/tsawler/resumeparser/format"
	"github.com/tsawler/resumeparser/layout"
	"github.com/tsawler/resumeparser/model"
)

// Ingester reads resume files into documents
type Ingester struct {
	config     Config
	logger     *slog.Logger
	recognizer WordRecognizer
}

// New creates an ingester. Zero config fields take their defaults and a
// nil logger means slog.Default().
func New(config Config, logger *slog.Logger) *Ingester {
	if logger == nil {
		logger = slog.Default()
	}
	return &Ingester{config: config.withDefaults(), logger: logger}
}

// WithRecognizer sets the OCR engine used for image inputs
func (in *Ingester) WithRecognizer(r WordRecognizer) *Ingester {
	in.recognizer = r
	return in
}

// Config returns the effective configuration
func (in *Ingester) Config() Config {
	return in.config
}

// Ingest reads the file at path with default settings.
func Ingest(ctx context.Context, path string) (*model.Document, error) {
	return New(DefaultConfig(), nil).Ingest(ctx, path)
}

// Ingest reads the file at path and returns its normalized tokens.
func (in *Ingester) Ingest(ctx context.Context, path string) (*model.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return in.IngestBytes(ctx, path, data)
}

// IngestBytes reads an in-memory file. The name is used for format
// detection when the content is ambiguous and is recorded as the
// document's file path.
func (in *Ingester) IngestBytes(ctx context.Context, name string, data []byte) (*model.Document, error) {
	f, err := DetectFormat(name, data)
	if err != nil {
		return nil, err
	}
	in.logger.Debug("ingest.start", "file", name, "format", f.String(), "bytes", len(data))

	var doc *model.Document
	switch {
	case f == format.PDF:
		doc, err = in.readPDF(ctx, name, data)
	case f == format.DOCX:
		doc, err = in.readDOCX(ctx, name, data)
	case f == format.HTML:
		doc, err = in.readHTML(ctx, name, data)
	case f.IsImage():
		doc, err = in.readImage(ctx, name, data)
	default:
		err = fmt.Errorf("%w: %s", ErrUnsupportedFormat, f)
	}
	if err != nil {
		in.logger.Error("ingest.error", "file", name, "format", f.String(), "error", err)
		return nil, fmt.Errorf("ingesting %s: %w", name, err)
	}

	in.finish(doc)
	if doc.TokenCount() == 0 {
		in.logger.Warn("ingest.empty", "file", name, "format", f.String())
	}
	in.logger.Info("ingest.done", "file", name, "format", f.String(),
		"pages", doc.PageCount(), "tokens", doc.TokenCount())
	return doc, nil
}

// finish normalizes token text, clamps boxes and rebuilds the raw text
// from the surviving lines.
func (in *Ingester) finish(doc *model.Document) {
	var text []string
	for _, page := range doc.Pages {
		page.Tokens = postProcess(page.Tokens)
		text = append(text, layout.LineTexts(page.Tokens)...)
	}
	doc.ClampBBoxes(in.config.BBoxScale)
	doc.RawText = strings.Join(text, "\n")
}

// DetectFormat sniffs the content first and falls back to the file
// extension. Legacy .doc files return ErrLegacyDoc; anything else that is
// not a resume format returns ErrUnsupportedFormat.
func DetectFormat(name string, data []byte) (format.Format, error) {
	f, err := format.DetectFromReader(bytes.NewReader(data), int64(len(data)))
	if err != nil || f == format.Unknown {
		f = format.Detect(name)
	}

	switch f {
	case format.DOC:
		return f, ErrLegacyDoc
	case format.Unknown:
		ext := filepath.Ext(name)
		if ext == "" {
			ext = "(no extension)"
		}
		return f, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
	return f, nil
}
