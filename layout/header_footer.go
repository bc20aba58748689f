package layout

import (
	"strings"

	"github.com/tsawler/resumeparser/model"
)

// HeaderFooterConfig holds configuration for header/footer removal
type HeaderFooterConfig struct {
	// RegionHeight is the height, in normalized units, of the bands at the
	// top and bottom of each page that are searched for repeated lines
	// Default: 80
	RegionHeight int

	// MinRepeats is the minimum number of pages a line must appear on to be
	// removed
	// Default: 2
	MinRepeats int

	// Scale is the size of the normalized coordinate space
	// Default: 1000
	Scale int
}

// DefaultHeaderFooterConfig returns sensible default configuration
func DefaultHeaderFooterConfig() HeaderFooterConfig {
	return HeaderFooterConfig{
		RegionHeight: 80,
		MinRepeats:   2,
		Scale:        model.DefaultScale,
	}
}

// HeaderFooterRemover removes repeated header and footer lines across pages
type HeaderFooterRemover struct {
	config HeaderFooterConfig
	lines  *LineGrouper
}

// NewHeaderFooterRemover creates a new remover with default configuration
func NewHeaderFooterRemover() *HeaderFooterRemover {
	return NewHeaderFooterRemoverWithConfig(DefaultHeaderFooterConfig())
}

// NewHeaderFooterRemoverWithConfig creates a remover with custom configuration
func NewHeaderFooterRemoverWithConfig(config HeaderFooterConfig) *HeaderFooterRemover {
	if config.Scale <= 0 {
		config.Scale = model.DefaultScale
	}
	if config.MinRepeats <= 0 {
		config.MinRepeats = 1
	}
	return &HeaderFooterRemover{
		config: config,
		lines:  NewLineGrouper(),
	}
}

// bandLines maps a line's text to the page token indices that form it
type bandLines map[string][]int

// Remove drops repeated header/footer tokens from the document in place and
// returns the number of tokens removed. When the document carries raw text,
// it is rebuilt from the remaining lines.
func (r *HeaderFooterRemover) Remove(doc *model.Document) int {
	if doc == nil || len(doc.Pages) == 0 {
		return 0
	}

	headerCounts := make(map[string]int)
	footerCounts := make(map[string]int)
	headers := make([]bandLines, len(doc.Pages))
	footers := make([]bandLines, len(doc.Pages))

	for p, page := range doc.Pages {
		headers[p] = r.collect(page.Tokens, func(tok model.Token) bool {
			return tok.BBox.Y0 <= r.config.RegionHeight
		})
		footers[p] = r.collect(page.Tokens, func(tok model.Token) bool {
			return tok.BBox.Y1 >= r.config.Scale-r.config.RegionHeight
		})
		for text := range headers[p] {
			headerCounts[text]++
		}
		for text := range footers[p] {
			footerCounts[text]++
		}
	}

	removed := 0
	for p, page := range doc.Pages {
		drop := make(map[int]bool)
		for text, idxs := range headers[p] {
			if headerCounts[text] >= r.config.MinRepeats {
				for _, i := range idxs {
					drop[i] = true
				}
			}
		}
		for text, idxs := range footers[p] {
			if footerCounts[text] >= r.config.MinRepeats {
				for _, i := range idxs {
					drop[i] = true
				}
			}
		}
		if len(drop) == 0 {
			continue
		}

		kept := make([]model.Token, 0, len(page.Tokens)-len(drop))
		for i, tok := range page.Tokens {
			if !drop[i] {
				kept = append(kept, tok)
			}
		}
		removed += len(page.Tokens) - len(kept)
		page.Tokens = kept
	}

	if removed > 0 && doc.RawText != "" {
		var text []string
		for _, page := range doc.Pages {
			text = append(text, LineTexts(page.Tokens)...)
		}
		doc.RawText = strings.Join(text, "\n")
	}

	return removed
}

// collect groups the tokens selected by keep into lines keyed by text
func (r *HeaderFooterRemover) collect(tokens []model.Token, keep func(model.Token) bool) bandLines {
	var band []model.Token
	var origin []int
	for i, tok := range tokens {
		if keep(tok) {
			band = append(band, tok)
			origin = append(origin, i)
		}
	}

	out := make(bandLines)
	for _, grp := range r.lines.groupIndices(band) {
		parts := make([]string, 0, len(grp.members))
		for _, m := range grp.members {
			parts = append(parts, band[m].Text)
		}
		text := strings.TrimSpace(strings.Join(parts, " "))
		if text == "" {
			continue
		}
		for _, m := range grp.members {
			out[text] = append(out[text], origin[m])
		}
	}
	return out
}
