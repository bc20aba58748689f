package ingest

import (
	"strings"

	"github.com/tsawler/resumeparser/model"
)

// US Letter in points, used for formats without absolute positions
const (
	letterWidth  = 8.5 * 72
	letterHeight = 11 * 72
)

// splitLines breaks paragraphs on embedded newlines and drops blank lines.
func splitLines(paragraphs []string) []string {
	var lines []string
	for _, p := range paragraphs {
		for _, line := range strings.Split(p, "\n") {
			if strings.TrimSpace(line) != "" {
				lines = append(lines, line)
			}
		}
	}
	return lines
}

// syntheticPage lays lines out top to bottom on a single letter-size page.
// Every line gets an equal share of the page height and every word an
// equal share of its line's width. Tokens carry their line index.
func syntheticPage(lines []string, scale int) *model.Page {
	page := model.NewPage(int(letterWidth), int(letterHeight), 1)
	if len(lines) == 0 {
		return page
	}

	lineHeight := letterHeight / float64(len(lines))
	for idx, line := range lines {
		words := strings.Fields(line)
		top := float64(idx) * lineHeight
		for w, word := range words {
			left := float64(w) / float64(len(words)) * letterWidth
			right := float64(w+1) / float64(len(words)) * letterWidth
			bbox := model.NormalizeBBox(left, top, right, top+lineHeight, letterWidth, letterHeight, scale)
			tok := model.NewToken(word, bbox, 0)
			tok.Set(model.MetaLine, idx)
			page.AddToken(tok)
		}
	}
	return page
}
