// Package resumeparser provides a fluent API for turning resume files (PDF,
// DOCX, HTML and images) into structured, validated resume records.
//
// Basic usage:
//
//	resume, err := resumeparser.Open("resume.pdf").Parse(ctx)
//	if err != nil {
//	    // handle error
//	}
//
// With options:
//
//	resume, err := resumeparser.Open("resume.pdf").
//	    Pages(1, 2).
//	    ExcludeHeaders().
//	    ByColumn().
//	    WithRefiner(refiner).
//	    Parse(ctx)
//
// For lower-level control the ingest, layout, linker and refine packages can
// be used directly.
package resumeparser

import (
	"context"

	"github.com/tsawler/resumeparser/model"
	"github.com/tsawler/resumeparser/schema"
)

// Cache stores parsed resumes by key. cache.Cache implements it over
// Redis.
type Cache interface {
	Get(ctx context.Context, key string) (*schema.Resume, bool, error)
	Set(ctx context.Context, key string, resume *schema.Resume) error
}

// Open returns a Parser for the file at filename. Nothing is read until a
// terminal operation such as Parse or Document is called.
//
// Example:
//
//	resume, err := resumeparser.Open("resume.pdf").Parse(ctx)
func Open(filename string) *Parser {
	return &Parser{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromDocument returns a Parser over an already ingested document. Page
// selection and layout options still apply and modify the document in
// place; ingestion options are ignored.
//
// Example:
//
//	doc, err := ingest.Ingest(ctx, "resume.docx")
//	if err != nil {
//	    // handle error
//	}
//	resume, err := resumeparser.FromDocument(doc).Parse(ctx)
func FromDocument(doc *model.Document) *Parser {
	return &Parser{
		doc:     doc,
		options: defaultOptions(),
	}
}

// Parse structures the file at path with default options.
func Parse(ctx context.Context, path string) (*schema.Resume, error) {
	return Open(path).Parse(ctx)
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	resume := resumeparser.Must(resumeparser.Open("resume.pdf").Parse(ctx))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
