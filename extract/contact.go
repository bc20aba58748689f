package extract

import (
	"regexp"
	"strings"

	"github.com/tsawler/resumeparser/layout"
	"github.com/tsawler/resumeparser/model"
	"github.com/tsawler/resumeparser/schema"
)

var (
	emailRe     = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	phoneRe     = regexp.MustCompile(`\+?\d[\d\s().\-]{7,}\d`)
	urlRe       = regexp.MustCompile(`https?://\S+`)
	locationRe  = regexp.MustCompile(`\d+\s+[A-Za-z]`)
	yearRangeRe = regexp.MustCompile(`^\d{4}\s*[\-–/]\s*\d{4}$`)
)

// ContactConfig holds configuration for contact extraction
type ContactConfig struct {
	// NameLines is how many leading lines are searched for a name
	// Default: 3
	NameLines int

	// MinNameWords and MaxNameWords bound the word count of a name line
	// Default: 2 and 5
	MinNameWords int
	MaxNameWords int

	// FallbackTokens is how many page-one tokens are used when the
	// contact section is empty
	// Default: 50
	FallbackTokens int
}

// DefaultContactConfig returns sensible default configuration
func DefaultContactConfig() ContactConfig {
	return ContactConfig{
		NameLines:      3,
		MinNameWords:   2,
		MaxNameWords:   5,
		FallbackTokens: 50,
	}
}

// Contact extracts contact details using the default configuration
func Contact(doc *model.Document, tokens []model.Token) schema.Contact {
	return ContactWithConfig(doc, tokens, DefaultContactConfig())
}

// ContactWithConfig extracts contact details from the contact section's
// tokens. When those yield no lines, the first tokens of page one are used;
// when there is still nothing, the document's raw text is scanned for
// email, phone and website only.
func ContactWithConfig(doc *model.Document, tokens []model.Token, config ContactConfig) schema.Contact {
	lines := layout.LineTexts(tokens)
	if len(lines) == 0 && doc != nil && len(doc.Pages) > 0 {
		lines = layout.LineTexts(doc.Pages[0].Head(config.FallbackTokens))
	}

	var c schema.Contact
	combined := strings.Join(lines, " ")
	if len(lines) > 0 {
		c.Raw = strings.Join(lines, "\n")
	} else if doc != nil {
		combined = doc.RawText
	}

	c.Email = emailRe.FindString(combined)
	c.Phone = findPhone(combined)
	c.Website = urlRe.FindString(combined)
	c.Location = findLocation(lines)
	c.Name = findName(lines, config)
	return c
}

// findPhone returns the first phone-shaped run that is not a year range
func findPhone(text string) string {
	for _, m := range phoneRe.FindAllString(text, -1) {
		if yearRangeRe.MatchString(strings.TrimSpace(m)) {
			continue
		}
		return m
	}
	return ""
}

// findLocation returns the last line holding a number followed by a word,
// such as a street address or postcode
func findLocation(lines []string) string {
	for i := len(lines) - 1; i >= 0; i-- {
		if locationRe.MatchString(lines[i]) {
			return strings.TrimSpace(lines[i])
		}
	}
	return ""
}

// findName picks the first of the leading lines that carries no contact
// symbols and has a name-like word count
func findName(lines []string, config ContactConfig) string {
	n := config.NameLines
	if n > len(lines) {
		n = len(lines)
	}
	for _, line := range lines[:n] {
		candidate := strings.TrimSpace(line)
		if candidate == "" {
			continue
		}
		if strings.ContainsAny(candidate, "@+") || strings.Contains(candidate, "http") {
			continue
		}
		if words := len(strings.Fields(candidate)); words >= config.MinNameWords && words <= config.MaxNameWords {
			return candidate
		}
	}
	return ""
}
