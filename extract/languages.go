package extract

import (
	"regexp"
	"strings"

	"github.com/tsawler/resumeparser/model"
	"github.com/tsawler/resumeparser/schema"
)

var languageSplitRe = regexp.MustCompile(`[,/\n]|[` + Bullets + `]`)

// Languages splits the space-joined section on commas, slashes, line breaks
// and bullets.
// Each entry is split on its first "-", or failing that its first ":", into
// name and proficiency.
func Languages(tokens []model.Token) []schema.Language {
	out := []schema.Language{}
	for _, entry := range languageSplitRe.Split(JoinTokens(tokens), -1) {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		out = append(out, ParseLanguage(entry))
	}
	return out
}

// ParseLanguage splits "French - Fluent" or "French: C1"
func ParseLanguage(entry string) schema.Language {
	sep := "-"
	if !strings.Contains(entry, sep) {
		sep = ":"
	}
	name, level, _ := strings.Cut(entry, sep)
	return schema.Language{
		Name:        strings.TrimSpace(name),
		Proficiency: strings.TrimSpace(level),
	}
}
