package ingest

import (
	"errors"

	"github.com/tsawler/resumeparser/model"
)

var (
	// ErrUnsupportedFormat is returned for files that are not a resume
	// format this package can read.
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrLegacyDoc is returned for Word 97-2003 files, which must be
	// converted to DOCX first.
	ErrLegacyDoc = errors.New("legacy .doc files are not supported; convert to .docx")
)

// Config holds ingestion options
type Config struct {
	// MaxPages limits the number of PDF pages read (0 = no limit)
	MaxPages int

	// BBoxScale is the upper bound of normalized coordinates
	BBoxScale int

	// OCRLanguage is the Tesseract language string (e.g. "eng", "eng+deu")
	OCRLanguage string

	// KeepImages copies OCR'd image inputs into ImageDir and records the
	// path in the page metadata
	KeepImages bool

	// ImageDir is where kept images are written (default: next to the input)
	ImageDir string
}

// DefaultConfig returns sensible defaults for ingestion
func DefaultConfig() Config {
	return Config{
		BBoxScale:   model.DefaultScale,
		OCRLanguage: "eng",
	}
}

// withDefaults fills zero fields from DefaultConfig
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.BBoxScale <= 0 {
		c.BBoxScale = def.BBoxScale
	}
	if c.OCRLanguage == "" {
		c.OCRLanguage = def.OCRLanguage
	}
	if c.MaxPages < 0 {
		c.MaxPages = 0
	}
	return c
}
