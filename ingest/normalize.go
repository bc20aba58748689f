package ingest

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/resumeparser/model"
)

// NormalizeText applies NFKC normalization and collapses whitespace runs.
// NFKC folds ligatures (ﬁ), full-width forms and non-breaking spaces that
// PDF producers and word processors emit.
func NormalizeText(s string) string {
	return strings.Join(strings.Fields(norm.NFKC.String(s)), " ")
}

// postProcess normalizes token text and drops tokens left empty.
func postProcess(tokens []model.Token) []model.Token {
	out := tokens[:0]
	for _, tok := range tokens {
		tok.Text = NormalizeText(tok.Text)
		if tok.Text == "" {
			continue
		}
		out = append(out, tok)
	}
	return out
}
