package extract

import (
	"regexp"
	"strings"
	"time"

	"github.com/tsawler/resumeparser/dates"
	"github.com/tsawler/resumeparser/layout"
	"github.com/tsawler/resumeparser/model"
	"github.com/tsawler/resumeparser/schema"
)

var (
	roleSplitRe = regexp.MustCompile(`[,|]`)
	roleAtRe    = regexp.MustCompile(`(?i) at `)
)

// WorkExperience extracts work history, computing durations against the
// current time
func WorkExperience(tokens []model.Token) []schema.WorkExperience {
	return WorkExperienceAt(tokens, time.Now().UTC())
}

// WorkExperienceAt extracts work history line by line. A line holding a
// date starts a new entry; the text before the date becomes the company
// and position. Other lines are description bullets of the current entry.
// The first dateless line, before any entry exists, is a heading without
// dates. Open-ended ranges are measured up to now.
func WorkExperienceAt(tokens []model.Token, now time.Time) []schema.WorkExperience {
	var (
		entries []schema.WorkExperience
		current *schema.WorkExperience
	)
	flush := func() {
		if current != nil {
			entries = append(entries, *current)
		}
	}

	for _, line := range layout.LineTexts(tokens) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		start, end := dates.NormalizeRange(line)
		if start != "" || end != "" {
			company, position := SplitRoleCompany(workHeading(line))
			flush()
			current = &schema.WorkExperience{
				Company:     company,
				Position:    position,
				StartDate:   start,
				EndDate:     end,
				Description: []string{},
			}
			if months, ok := dates.DurationAt(start, end, now); ok {
				current.DurationMonths = &months
			}
			continue
		}

		if current == nil {
			company, position := SplitRoleCompany(line)
			current = &schema.WorkExperience{
				Company:     company,
				Position:    position,
				Description: []string{},
			}
			continue
		}

		if cleaned := StripBullet(line); cleaned != "" {
			current.Description = append(current.Description, cleaned)
		}
	}
	flush()

	if entries == nil {
		entries = []schema.WorkExperience{}
	}
	return entries
}

// workHeading cuts the date expression out of a heading line. It looks for
// a full range first, then the first month name, then any single date.
// Only the text before the date is kept.
func workHeading(line string) string {
	start, _, ok := dates.FindRange(line)
	if !ok {
		start, ok = dates.FirstMonthName(line)
	}
	if !ok {
		start, _, ok = dates.Span(line)
	}
	if !ok {
		return trimPunct(line)
	}
	return trimPunct(line[:start])
}

// SplitRoleCompany splits a heading into company and position. A literal
// " at " separates position (before) from company (after). Otherwise the
// heading is split on commas and pipes, and the first two parts are read
// as position then company. A heading with a single part is the company.
func SplitRoleCompany(text string) (company, position string) {
	if loc := roleAtRe.FindStringIndex(text); loc != nil {
		position = trimPunct(text[:loc[0]])
		company = trimPunct(text[loc[1]:])
		return company, position
	}

	var parts []string
	for _, part := range roleSplitRe.Split(text, -1) {
		if strings.TrimSpace(part) != "" {
			parts = append(parts, trimPunct(part))
		}
	}
	if len(parts) >= 2 {
		return parts[1], parts[0]
	}
	return trimPunct(text), ""
}
