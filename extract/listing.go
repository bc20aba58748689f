package extract

import (
	"github.com/tsawler/resumeparser/dates"
	"github.com/tsawler/resumeparser/layout"
	"github.com/tsawler/resumeparser/model"
	"github.com/tsawler/resumeparser/schema"
)

// datedLine splits a bullet-stripped line into its text and a single date.
// The end of a range is preferred over its start; when a date is found its
// span is removed from the text.
func datedLine(line string) (text, date string) {
	text = StripBullet(line)
	start, end := dates.NormalizeRange(text)
	date = end
	if date == "" {
		date = start
	}
	if date == "" {
		return text, ""
	}
	if s, e, ok := dates.Span(text); ok {
		text = trimPunct(cut(text, [2]int{s, e}))
	}
	return text, date
}

// Certifications reads one certification per line
func Certifications(tokens []model.Token) []schema.Certification {
	out := []schema.Certification{}
	for _, line := range layout.LineTexts(tokens) {
		if StripBullet(line) == "" {
			continue
		}
		name, date := datedLine(line)
		out = append(out, schema.Certification{Name: name, Date: date})
	}
	return out
}

// Publications reads one publication per line
func Publications(tokens []model.Token) []schema.Publication {
	out := []schema.Publication{}
	for _, line := range layout.LineTexts(tokens) {
		if StripBullet(line) == "" {
			continue
		}
		title, date := datedLine(line)
		out = append(out, schema.Publication{Title: title, Date: date})
	}
	return out
}
