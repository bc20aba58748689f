package ingest

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"

	"github.com/tsawler/resumeparser/model"
)

// Glyph metrics relative to font size, used to turn a baseline position
// into a box.
const (
	ascentRatio  = 0.8
	descentRatio = 0.2
	minGlyphW    = 0.3  // width floor for fonts without a Widths array
	wordGapRatio = 0.25 // horizontal gap that starts a new word
	baselineTol  = 0.5  // baseline shift that starts a new word
)

// pdfWord accumulates glyphs that belong to one word.
type pdfWord struct {
	text     strings.Builder
	x0, x1   float64
	baseline float64
	size     float64
}

func (w *pdfWord) empty() bool { return w.text.Len() == 0 }

// readPDF extracts word tokens from every page of a PDF.
func (in *Ingester) readPDF(ctx context.Context, name string, data []byte) (*model.Document, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening PDF: %w", err)
	}

	doc := model.NewDocument(name)
	numPages := r.NumPage()
	if in.config.MaxPages > 0 && numPages > in.config.MaxPages {
		numPages = in.config.MaxPages
	}

	for i := 1; i <= numPages; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}

		page, err := in.readPDFPage(p, i)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i, err)
		}
		if len(page.Tokens) == 0 {
			in.logger.Warn("ingest.pdf.page.no_text", "file", name, "page", i,
				"hint", "scanned page; rasterize and ingest as an image to OCR it")
		} else {
			in.logger.Debug("ingest.pdf.page", "file", name, "page", i, "tokens", len(page.Tokens))
		}
		doc.AddPage(page)
	}
	return doc, nil
}

// readPDFPage converts one page's glyph stream into word tokens.
func (in *Ingester) readPDFPage(p pdf.Page, number int) (page *model.Page, err error) {
	// The content stream parser panics on malformed input.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed content stream: %v", r)
		}
	}()

	llx, lly, urx, ury := mediaBox(p)
	width, height := urx-llx, ury-lly
	rotation := int(inherited(p.V, "Rotate").Int64()) % 360
	if rotation < 0 {
		rotation += 360
	}

	page = model.NewPage(int(math.Round(width)), int(math.Round(height)), number)
	page.Metadata.Rotation = rotation
	upright := rotation%180 == 0

	var cur pdfWord
	flush := func() {
		if cur.empty() {
			return
		}
		top := ury - (cur.baseline + cur.size*ascentRatio)
		bottom := ury - (cur.baseline - cur.size*descentRatio)
		bbox := model.NormalizeBBox(cur.x0-llx, top, cur.x1-llx, bottom, width, height, in.config.BBoxScale)
		tok := model.NewToken(cur.text.String(), bbox, number-1)
		tok.Set(model.MetaUpright, upright)
		page.AddToken(tok)
		cur = pdfWord{}
	}

	for _, g := range p.Content().Text {
		if strings.TrimFunc(g.S, unicode.IsSpace) == "" {
			flush()
			continue
		}
		size := g.FontSize
		if size <= 0 {
			size = 1
		}
		w := math.Max(g.W, size*minGlyphW)

		if !cur.empty() {
			gap := g.X - cur.x1
			shifted := math.Abs(g.Y-cur.baseline) > cur.size*baselineTol
			if shifted || gap > cur.size*wordGapRatio || g.X < cur.x0 {
				flush()
			}
		}
		if cur.empty() {
			cur.x0, cur.x1 = g.X, g.X+w
			cur.baseline, cur.size = g.Y, size
		}
		cur.text.WriteString(g.S)
		cur.x1 = math.Max(cur.x1, g.X+w)
		cur.size = math.Max(cur.size, size)
	}
	flush()

	return page, nil
}

// mediaBox returns the page's MediaBox, walking up the page tree when the
// page inherits it. Letter size is assumed when none is found.
func mediaBox(p pdf.Page) (llx, lly, urx, ury float64) {
	box := inherited(p.V, "MediaBox")
	if box.Kind() != pdf.Array || box.Len() < 4 {
		return 0, 0, letterWidth, letterHeight
	}
	llx, lly = box.Index(0).Float64(), box.Index(1).Float64()
	urx, ury = box.Index(2).Float64(), box.Index(3).Float64()
	if urx <= llx || ury <= lly {
		return 0, 0, letterWidth, letterHeight
	}
	return llx, lly, urx, ury
}

// inherited looks up an inheritable page attribute.
func inherited(v pdf.Value, key string) pdf.Value {
	for i := 0; i < 32 && !v.IsNull(); i++ {
		if val := v.Key(key); !val.IsNull() {
			return val
		}
		v = v.Key("Parent")
	}
	return pdf.Value{}
}
