package ingest

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder

	"github.com/tsawler/resumeparser/model"
	"github.com/tsawler/resumeparser/ocr"
)

// WordRecognizer performs OCR on encoded image bytes
type WordRecognizer interface {
	RecognizeWords(imageData []byte) ([]ocr.Word, error)
}

// readImage OCRs a scanned or photographed resume.
func (in *Ingester) readImage(ctx context.Context, name string, data []byte) (*model.Document, error) {
	cfg, kind, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image header: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("invalid image dimensions %dx%d", cfg.Width, cfg.Height)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	words, err := in.recognizeWords(data)
	if err != nil {
		return nil, fmt.Errorf("OCR: %w", err)
	}
	in.logger.Debug("ingest.image.ocr", "file", name, "format", kind,
		"width", cfg.Width, "height", cfg.Height, "words", len(words))

	w, h := float64(cfg.Width), float64(cfg.Height)
	page := model.NewPage(cfg.Width, cfg.Height, 1)
	for _, word := range words {
		r := word.Box
		bbox := model.NormalizeBBox(float64(r.Min.X), float64(r.Min.Y), float64(r.Max.X), float64(r.Max.Y), w, h, in.config.BBoxScale)
		tok := model.NewToken(word.Text, bbox, 0)
		tok.Set(model.MetaConfidence, word.Confidence/100)
		page.AddToken(tok)
	}

	if in.config.KeepImages {
		path, err := in.keepImage(name, data)
		if err != nil {
			in.logger.Warn("ingest.image.keep.error", "file", name, "error", err)
		} else {
			page.Metadata.ImagePath = path
		}
	}

	doc := model.NewDocument(name)
	doc.AddPage(page)
	return doc, nil
}

// recognizeWords runs the configured recognizer, or a fresh Tesseract
// client when none was supplied.
func (in *Ingester) recognizeWords(data []byte) ([]ocr.Word, error) {
	if in.recognizer != nil {
		return in.recognizer.RecognizeWords(data)
	}

	client, err := ocr.New()
	if err != nil {
		return nil, err
	}
	defer client.Close()

	if err := client.SetLanguage(in.config.OCRLanguage); err != nil {
		return nil, fmt.Errorf("setting OCR language %q: %w", in.config.OCRLanguage, err)
	}
	return client.RecognizeWords(data)
}

// keepImage records where the OCR'd image lives. Without an ImageDir the
// input file itself is referenced; otherwise a copy is written there.
func (in *Ingester) keepImage(name string, data []byte) (string, error) {
	if in.config.ImageDir == "" {
		return name, nil
	}
	if err := os.MkdirAll(in.config.ImageDir, 0o755); err != nil {
		return "", err
	}

	ext := filepath.Ext(name)
	base := strings.TrimSuffix(filepath.Base(name), ext)
	path := filepath.Join(in.config.ImageDir, base+".page1"+ext)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
