package linker

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/tsawler/resumeparser/extract"
	"github.com/tsawler/resumeparser/model"
	"github.com/tsawler/resumeparser/schema"
	"github.com/tsawler/resumeparser/sections"
)

// Config holds configuration for the linker
type Config struct {
	// Sections configures the section detector
	Sections sections.Config

	// Contact configures contact extraction
	Contact extract.ContactConfig

	// Now returns the time open-ended work ranges are measured to
	// Default: time.Now in UTC
	Now func() time.Time
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		Sections: sections.DefaultConfig(),
		Contact:  extract.DefaultContactConfig(),
		Now:      func() time.Time { return time.Now().UTC() },
	}
}

// Linker turns documents into resumes. It holds no per-parse state and is
// safe for concurrent use.
type Linker struct {
	detector *sections.Detector
	contact  extract.ContactConfig
	now      func() time.Time
	logger   *slog.Logger
}

// New creates a linker with default configuration
func New(logger *slog.Logger) *Linker {
	return NewWithConfig(DefaultConfig(), logger)
}

// NewWithConfig creates a linker with custom configuration
func NewWithConfig(config Config, logger *slog.Logger) *Linker {
	if logger == nil {
		logger = slog.Default()
	}
	defaults := DefaultConfig()
	if config.Sections.Keywords == nil {
		config.Sections = defaults.Sections
	}
	if config.Contact == (extract.ContactConfig{}) {
		config.Contact = defaults.Contact
	}
	if config.Now == nil {
		config.Now = defaults.Now
	}
	return &Linker{
		detector: sections.NewDetectorWithConfig(config.Sections),
		contact:  config.Contact,
		now:      config.Now,
		logger:   logger,
	}
}

// Link builds and validates the resume for doc. A validation failure is
// logged and returned; no partial resume is returned with it.
func (l *Linker) Link(doc *model.Document, embeddings []model.TokenEmbedding) (*schema.Resume, error) {
	if doc == nil {
		doc = model.NewDocument("")
	}

	buckets := l.detector.DetectDocument(doc)
	l.logger.Debug("linker.sections",
		"source", doc.FilePath,
		"tokens", doc.TokenCount(),
		"labels", fmt.Sprint(buckets.Labels()))

	r := schema.NewResume()
	r.Contact = extract.ContactWithConfig(doc, buckets.Get(sections.Contact), l.contact)
	r.Education = extract.Education(buckets.Get(sections.Education))
	r.WorkExperience = extract.WorkExperienceAt(buckets.Get(sections.WorkExperience), l.now())
	r.Skills = extract.Skills(buckets.Get(sections.Skills))
	r.Certifications = extract.Certifications(buckets.Get(sections.Certifications))
	r.Projects = extract.Projects(buckets.Get(sections.Projects))
	r.Publications = extract.Publications(buckets.Get(sections.Publications))
	r.Languages = extract.Languages(buckets.Get(sections.Languages))
	r.OtherSections = extract.Other(buckets.Get(sections.OtherSections))
	r.Meta = schema.Meta{Source: doc.FilePath}

	if err := r.Validate(); err != nil {
		l.logger.Error("linker.validate.error", "source", doc.FilePath, "error", err)
		return nil, fmt.Errorf("resume validation failed: %w", err)
	}

	if len(embeddings) > 0 {
		r.Meta.AddNote(fmt.Sprintf("token_embeddings=%d", len(embeddings)))
	}

	l.logger.Debug("linker.done",
		"source", doc.FilePath,
		"education", len(r.Education),
		"work_experience", len(r.WorkExperience),
		"skills", len(r.Skills))
	return r, nil
}

// LinkEntities builds the resume for doc with the default linker
func LinkEntities(doc *model.Document, embeddings []model.TokenEmbedding) (*schema.Resume, error) {
	return New(nil).Link(doc, embeddings)
}
