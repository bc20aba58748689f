package extract

import (
	"regexp"
	"strings"

	"github.com/tsawler/resumeparser/layout"
	"github.com/tsawler/resumeparser/model"
)

// Bullets is the set of glyphs treated as list bullets
const Bullets = "•‣◦▪●"

var (
	bulletRe     = regexp.MustCompile(`^[\-\*` + Bullets + `]+\s*`)
	chunkSplitRe = regexp.MustCompile(`\n\s*\n|[` + Bullets + `]`)
)

// TextConfig holds configuration for section text projection
type TextConfig struct {
	// ExplicitGap is the line-index gap above which two explicit lines
	// (from ingestion metadata) are separated by a blank line
	// Default: 1
	ExplicitGap int

	// DerivedGap is the same threshold for lines derived from position
	// Default: 2
	DerivedGap int
}

// DefaultTextConfig returns sensible default configuration
func DefaultTextConfig() TextConfig {
	return TextConfig{
		ExplicitGap: 1,
		DerivedGap:  2,
	}
}

// JoinTokens joins token texts with single spaces, in encounter order
func JoinTokens(tokens []model.Token) string {
	parts := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		parts = append(parts, tok.Text)
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

// StripBullet removes leading bullet glyphs and surrounding space
func StripBullet(text string) string {
	return strings.TrimSpace(bulletRe.ReplaceAllString(strings.TrimSpace(text), ""))
}

// SectionText renders tokens as lines separated by newlines, with a blank
// line marking each paragraph break
func SectionText(tokens []model.Token) string {
	return SectionTextWithConfig(tokens, DefaultTextConfig())
}

// SectionTextWithConfig is SectionText with custom gap thresholds
func SectionTextWithConfig(tokens []model.Token, config TextConfig) string {
	var b strings.Builder
	prev := 0
	first := true
	for _, line := range layout.GroupLines(tokens) {
		text := line.Text()
		if text == "" {
			continue
		}
		if !first {
			gap := config.DerivedGap
			if line.Explicit {
				gap = config.ExplicitGap
			}
			b.WriteByte('\n')
			if line.Index-prev > gap {
				b.WriteByte('\n')
			}
		}
		b.WriteString(text)
		prev = line.Index
		first = false
	}
	return b.String()
}

// Chunks splits text on blank lines and bullet glyphs, dropping empty parts
func Chunks(text string) []string {
	var out []string
	for _, part := range chunkSplitRe.Split(text, -1) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// flatten joins the lines of a chunk with sep, trimming each line
func flatten(chunk, sep string) string {
	var parts []string
	for _, line := range strings.Split(chunk, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, sep)
}

// trimPunct trims the separator characters that surround heading parts
func trimPunct(s string) string {
	return strings.Trim(s, " ,-|•\t")
}

// cut removes the byte ranges [start, end) from s and collapses the
// leftover whitespace
func cut(s string, spans ...[2]int) string {
	keep := make([]bool, len(s))
	for i := range keep {
		keep[i] = true
	}
	for _, sp := range spans {
		for i := sp[0]; i < sp[1] && i < len(s); i++ {
			if i >= 0 {
				keep[i] = false
			}
		}
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if keep[i] {
			b.WriteByte(s[i])
		} else if i == 0 || keep[i-1] {
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
