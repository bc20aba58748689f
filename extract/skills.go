package extract

import (
	"regexp"
	"unicode/utf8"

	"golang.org/x/text/cases"

	"github.com/tsawler/resumeparser/model"
	"github.com/tsawler/resumeparser/schema"
)

// MaxSkillLength is the longest candidate, in characters, kept as a skill
const MaxSkillLength = 60

var skillSplitRe = regexp.MustCompile(`[,;/\n]|[` + Bullets + `]`)

// Skills joins the section's tokens with single spaces and splits the result
// on commas, semicolons, slashes, line breaks and bullets, so a skill that
// wraps onto the next line stays whole. Candidates are de-duplicated
// case-insensitively; the first spelling seen wins and first-seen order is
// kept.
func Skills(tokens []model.Token) []schema.Skill {
	return SkillsFromText(JoinTokens(tokens))
}

// SkillsFromText is Skills over already projected text
func SkillsFromText(text string) []schema.Skill {
	out := []schema.Skill{}
	fold := cases.Fold()
	seen := make(map[string]bool)
	for _, candidate := range skillSplitRe.Split(text, -1) {
		skill := StripBullet(candidate)
		if skill == "" || utf8.RuneCountInString(skill) > MaxSkillLength {
			continue
		}
		key := fold.String(skill)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, schema.Skill{Name: skill})
	}
	return out
}
