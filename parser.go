package resumeparser

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/tsawler/resumeparser/dates"
	"github.com/tsawler/resumeparser/inference"
	"github.com/tsawler/resumeparser/ingest"
	"github.com/tsawler/resumeparser/layout"
	"github.com/tsawler/resumeparser/linker"
	"github.com/tsawler/resumeparser/model"
	"github.com/tsawler/resumeparser/refine"
	"github.com/tsawler/resumeparser/schema"
	"github.com/tsawler/resumeparser/sections"
)

// Parser provides a fluent interface for structuring resumes. Each
// configuration method returns a new Parser instance, making it safe for
// concurrent use and allowing method chaining.
type Parser struct {
	// Source (exactly one is set)
	filename string
	doc      *model.Document

	// Configuration
	options ParseOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Parser with a deep copy of options.
func (p *Parser) clone() *Parser {
	return &Parser{
		filename: p.filename,
		doc:      p.doc,
		options:  p.options.clone(),
		err:      p.err,
	}
}

func (p *Parser) logger() *slog.Logger {
	if p.options.logger == nil {
		return slog.Default()
	}
	return p.options.logger
}

// ============================================================================
// Configuration Methods (return new Parser instance)
// ============================================================================

// Pages restricts parsing to the given pages (1-indexed).
// Multiple calls are cumulative.
//
// Example:
//
//	resume, err := resumeparser.Open("cv.pdf").Pages(1, 2).Parse(ctx)
func (p *Parser) Pages(pages ...int) *Parser {
	newP := p.clone()
	for _, n := range pages {
		if n < 1 {
			newP.err = fmt.Errorf("invalid page number %d", n)
			return newP
		}
	}
	newP.options.pages = append(newP.options.pages, pages...)
	return newP
}

// MaxPages limits how many pages are read from the file. Zero means no
// limit.
func (p *Parser) MaxPages(n int) *Parser {
	newP := p.clone()
	newP.options.ingest.MaxPages = n
	return newP
}

// ExcludeHeaders removes lines repeated in the top and bottom bands of
// several pages before sections are detected.
//
// Example:
//
//	resume, err := resumeparser.Open("cv.pdf").ExcludeHeaders().Parse(ctx)
func (p *Parser) ExcludeHeaders() *Parser {
	newP := p.clone()
	newP.options.excludeHeaders = true
	return newP
}

// ByColumn assigns tokens to columns and reorders each page column by
// column. This is useful for two-column resume templates.
//
// Example:
//
//	resume, err := resumeparser.Open("cv.pdf").ByColumn().Parse(ctx)
func (p *Parser) ByColumn() *Parser {
	newP := p.clone()
	newP.options.byColumn = true
	return newP
}

// WithEmbedder sets the layout-aware embedding model run before linking.
func (p *Parser) WithEmbedder(e inference.Embedder) *Parser {
	newP := p.clone()
	newP.options.embedder = e
	return newP
}

// WithRefiner sets the refiner applied to the linked resume.
func (p *Parser) WithRefiner(r *refine.Refiner) *Parser {
	newP := p.clone()
	newP.options.refiner = r
	return newP
}

// WithRecognizer sets the OCR engine used for image files.
func (p *Parser) WithRecognizer(r ingest.WordRecognizer) *Parser {
	newP := p.clone()
	newP.options.recognizer = r
	return newP
}

// WithLogger sets the logger passed to every stage.
func (p *Parser) WithLogger(logger *slog.Logger) *Parser {
	newP := p.clone()
	newP.options.logger = logger
	return newP
}

// WithIngestConfig replaces the ingestion configuration. A MaxPages set
// earlier is overwritten.
func (p *Parser) WithIngestConfig(config ingest.Config) *Parser {
	newP := p.clone()
	newP.options.ingest = config
	return newP
}

// WithCache sets the cache consulted by Parse. Only file sources are
// cached. Durations of open-ended work entries are recomputed on every
// hit, so a cached "present" job keeps growing with the clock.
func (p *Parser) WithCache(c Cache) *Parser {
	newP := p.clone()
	newP.options.cache = c
	return newP
}

// WithLinkerConfig replaces the section and contact configuration.
func (p *Parser) WithLinkerConfig(config linker.Config) *Parser {
	newP := p.clone()
	newP.options.linker = config
	return newP
}

// ============================================================================
// Terminal Operations
// ============================================================================

// Document ingests the source and applies page selection, header removal
// and column ordering. The returned document is what Parse links.
func (p *Parser) Document(ctx context.Context) (*model.Document, error) {
	if p.err != nil {
		return nil, p.err
	}
	if p.doc != nil {
		return p.prepare(p.doc.Clone())
	}

	data, err := p.readSource()
	if err != nil {
		return nil, err
	}
	return p.ingest(ctx, data)
}

// Parse ingests the source and returns the structured resume. With a cache
// configured, a file already parsed with the same options is returned from
// the cache.
//
// Example:
//
//	resume, err := resumeparser.Open("resume.docx").Parse(ctx)
func (p *Parser) Parse(ctx context.Context) (*schema.Resume, error) {
	if p.err != nil {
		return nil, p.err
	}
	if p.options.cache == nil || p.doc != nil {
		doc, err := p.Document(ctx)
		if err != nil {
			return nil, err
		}
		return p.ParseDocument(ctx, doc)
	}

	data, err := p.readSource()
	if err != nil {
		return nil, err
	}
	key := p.cacheKey(data)
	log := p.logger()

	cached, ok, err := p.options.cache.Get(ctx, key)
	if err != nil {
		log.Warn("parse.cache.error", "source", p.filename, "error", err)
	} else if ok {
		log.Info("parse.cache.hit", "source", p.filename)
		p.refreshDurations(cached)
		return cached, nil
	}

	doc, err := p.ingest(ctx, data)
	if err != nil {
		return nil, err
	}
	resume, err := p.ParseDocument(ctx, doc)
	if err != nil {
		return nil, err
	}
	if err := p.options.cache.Set(ctx, key, resume); err != nil {
		log.Warn("parse.cache.error", "source", p.filename, "error", err)
	}
	return resume, nil
}

// ParseDocument links an already prepared document, running the embedder
// and refiner when configured. Page and layout options are not applied.
func (p *Parser) ParseDocument(ctx context.Context, doc *model.Document) (*schema.Resume, error) {
	if p.err != nil {
		return nil, p.err
	}
	if doc == nil {
		return nil, fmt.Errorf("no document")
	}
	log := p.logger()

	var embeddings []model.TokenEmbedding
	if p.options.embedder != nil {
		var err error
		embeddings, err = inference.NewPredictor(p.options.embedder, inference.DefaultConfig(), p.options.logger).Predict(ctx, doc)
		if err != nil {
			return nil, fmt.Errorf("embedding: %w", err)
		}
	}

	resume, err := linker.NewWithConfig(p.options.linker, p.options.logger).Link(doc, embeddings)
	if err != nil {
		return nil, err
	}

	if p.options.refiner != nil && p.options.refiner.Enabled() {
		refined, err := p.options.refiner.RefineResume(ctx, resume, doc.RawText)
		if err != nil {
			return nil, fmt.Errorf("refining: %w", err)
		}
		resume = refined
	}

	log.Info("parse.done",
		"source", doc.FilePath,
		"pages", doc.PageCount(),
		"tokens", doc.TokenCount(),
		"embedded", len(embeddings) > 0)
	return resume, nil
}

// selectPages keeps only the requested pages, in document order.
func (p *Parser) selectPages(doc *model.Document) (*model.Document, error) {
	if len(p.options.pages) == 0 {
		return doc, nil
	}

	want := make(map[int]bool, len(p.options.pages))
	for _, n := range p.options.pages {
		if n > doc.PageCount() {
			return nil, fmt.Errorf("page %d out of range (document has %d pages)", n, doc.PageCount())
		}
		want[n] = true
	}

	out := model.NewDocument(doc.FilePath)
	indices := make([]int, 0, len(want))
	for n := range want {
		indices = append(indices, n)
	}
	sort.Ints(indices)
	for _, n := range indices {
		out.AddPage(doc.Pages[n-1])
	}
	out.RawText = rawText(out)
	return out, nil
}

// rawText rebuilds the document text line by line from the tokens.
func rawText(doc *model.Document) string {
	var lines []string
	for _, page := range doc.Pages {
		lines = append(lines, layout.LineTexts(page.Tokens)...)
	}
	return strings.Join(lines, "\n")
}

func (p *Parser) readSource() ([]byte, error) {
	if p.filename == "" {
		return nil, fmt.Errorf("no filename specified")
	}
	data, err := os.ReadFile(p.filename)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", p.filename, err)
	}
	return data, nil
}

func (p *Parser) ingest(ctx context.Context, data []byte) (*model.Document, error) {
	in := ingest.New(p.options.ingest, p.options.logger)
	if p.options.recognizer != nil {
		in = in.WithRecognizer(p.options.recognizer)
	}
	doc, err := in.IngestBytes(ctx, p.filename, data)
	if err != nil {
		return nil, err
	}
	return p.prepare(doc)
}

// prepare applies page selection, header removal and column ordering.
func (p *Parser) prepare(doc *model.Document) (*model.Document, error) {
	doc, err := p.selectPages(doc)
	if err != nil {
		return nil, err
	}

	if p.options.excludeHeaders {
		removed := layout.NewHeaderFooterRemover().Remove(doc)
		p.logger().Debug("parse.headers.removed", "source", doc.FilePath, "tokens", removed)
		if removed > 0 {
			doc.RawText = rawText(doc)
		}
	}

	if p.options.byColumn {
		counts := layout.NewColumnAssigner().Assign(doc)
		layout.ReorderDocument(doc)
		p.logger().Debug("parse.columns", "source", doc.FilePath, "columns", counts)
	}

	return doc, nil
}

// cacheKey identifies the file content together with every option that
// changes the result.
func (p *Parser) cacheKey(data []byte) string {
	o := p.options
	h := sha256.New()
	h.Write(data)
	fmt.Fprintf(h, "\x00pages=%v headers=%t columns=%t embed=%t refine=%t",
		o.pages, o.excludeHeaders, o.byColumn,
		o.embedder != nil, o.refiner != nil && o.refiner.Enabled())
	fmt.Fprintf(h, "\x00ingest=%+v", o.ingest)

	labels := make([]sections.Label, 0, len(o.linker.Sections.Keywords))
	for label := range o.linker.Sections.Keywords {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool { return labels[i] < labels[j] })
	for _, label := range labels {
		fmt.Fprintf(h, "\x00section=%d:%q", label, o.linker.Sections.Keywords[label])
	}
	fmt.Fprintf(h, "\x00fallback=%d contact=%+v", o.linker.Sections.ContactFallback, o.linker.Contact)
	return hex.EncodeToString(h.Sum(nil))
}

// refreshDurations recomputes work durations against the linker clock.
func (p *Parser) refreshDurations(resume *schema.Resume) {
	now := time.Now().UTC()
	if p.options.linker.Now != nil {
		now = p.options.linker.Now()
	}
	for i := range resume.WorkExperience {
		job := &resume.WorkExperience[i]
		if months, ok := dates.DurationAt(job.StartDate, job.EndDate, now); ok {
			job.DurationMonths = &months
		}
	}
}
