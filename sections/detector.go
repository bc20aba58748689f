package sections

import (
	"strings"

	"github.com/tsawler/resumeparser/model"
)

// DefaultKeywords returns the heading keywords for each label.
// "work history" is two words and therefore never matches a single token;
// it is kept so a caller-supplied tokenizer that emits phrases can use it.
func DefaultKeywords() map[Label][]string {
	return map[Label][]string{
		Education:      {"education", "academic", "university", "college"},
		WorkExperience: {"experience", "employment", "career", "work history"},
		Skills:         {"skills", "technologies", "technical", "tools"},
		Certifications: {"certification", "certifications", "licenses", "license"},
		Projects:       {"project", "projects", "portfolio"},
		Publications:   {"publication", "publications", "papers", "articles"},
		Languages:      {"languages", "language"},
	}
}

// Config holds configuration for section detection
type Config struct {
	// Keywords maps each label to the heading words that switch to it.
	// Default: DefaultKeywords()
	Keywords map[Label][]string

	// ContactFallback is the number of leading page-one tokens used as the
	// contact section when no token reached it. Zero disables the fallback.
	// Default: 50
	ContactFallback int
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		Keywords:        DefaultKeywords(),
		ContactFallback: 50,
	}
}

// Detector is the section state machine
type Detector struct {
	transitions map[string]Label
	initial     Label
	fallback    int
}

// NewDetector creates a detector with default configuration
func NewDetector() *Detector {
	return NewDetectorWithConfig(DefaultConfig())
}

// NewDetectorWithConfig creates a detector with custom configuration.
// When a keyword is listed under more than one label the lowest label wins.
func NewDetectorWithConfig(config Config) *Detector {
	if config.Keywords == nil {
		config.Keywords = DefaultKeywords()
	}
	if config.ContactFallback < 0 {
		config.ContactFallback = 0
	}

	d := &Detector{
		transitions: make(map[string]Label),
		initial:     OtherSections,
		fallback:    config.ContactFallback,
	}
	for _, label := range Labels() {
		for _, kw := range config.Keywords[label] {
			key := normalizeHeading(kw)
			if _, taken := d.transitions[key]; key == "" || taken {
				continue
			}
			d.transitions[key] = label
		}
	}
	return d
}

// Initial returns the starting state
func (d *Detector) Initial() Label {
	return d.initial
}

// Next advances the machine by one token. It returns the new state and
// whether the token was a heading (and so belongs to no bucket).
func (d *Detector) Next(state Label, tok model.Token) (Label, bool) {
	if next, ok := d.transitions[normalizeHeading(tok.Text)]; ok {
		return next, true
	}
	return state, false
}

// Detect buckets tokens by section, preserving encounter order
func (d *Detector) Detect(tokens []model.Token) Buckets {
	buckets := make(Buckets)
	state := d.initial
	for _, tok := range tokens {
		var heading bool
		if state, heading = d.Next(state, tok); heading {
			continue
		}
		buckets[state] = append(buckets[state], tok)
	}
	return buckets
}

// DetectDocument buckets the document's tokens and, when nothing landed in
// the contact section, seeds it with the leading tokens of the first page.
// The seeded tokens stay in their original bucket too.
func (d *Detector) DetectDocument(doc *model.Document) Buckets {
	if doc == nil {
		return make(Buckets)
	}
	buckets := d.Detect(doc.Tokens())
	if len(buckets[Contact]) == 0 && len(doc.Pages) > 0 && d.fallback > 0 {
		if head := doc.Pages[0].Head(d.fallback); len(head) > 0 {
			buckets[Contact] = head
		}
	}
	return buckets
}

// Detect buckets tokens with the default detector
func Detect(tokens []model.Token) Buckets {
	return NewDetector().Detect(tokens)
}

// DetectDocument buckets a document with the default detector
func DetectDocument(doc *model.Document) Buckets {
	return NewDetector().DetectDocument(doc)
}

func normalizeHeading(text string) string {
	return strings.Trim(strings.ToLower(strings.TrimSpace(text)), ":")
}
