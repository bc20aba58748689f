package extract

import (
	"regexp"
	"strings"

	"github.com/tsawler/resumeparser/dates"
	"github.com/tsawler/resumeparser/model"
	"github.com/tsawler/resumeparser/schema"
)

var (
	degreeRe = regexp.MustCompile(`(?i)\b(?:bachelor(?:'?s)?|master(?:'?s)?|b\.?\s?sc|m\.?\s?sc|b\.?\s?eng|m\.?\s?eng|mba|ph\.?\s?d)\b\.?`)
	fieldRe  = regexp.MustCompile(`(?i)\b(?:in|of)\s+([A-Za-z&][A-Za-z&\s]*[A-Za-z&]|[A-Za-z&])`)
	gradeRe  = regexp.MustCompile(`(?i)\b(?:GPA|Grade)[:\s]+(\d+(?:\.\d+)?)`)
	segRe    = regexp.MustCompile(`[,|]`)
)

// Education extracts one entry per chunk of the section text
func Education(tokens []model.Token) []schema.Education {
	out := []schema.Education{}
	text := SectionText(tokens)
	if text == "" {
		return out
	}
	chunks := Chunks(text)
	if len(chunks) == 0 {
		chunks = []string{text}
	}
	for _, chunk := range chunks {
		if e := ParseEducation(chunk); e != (schema.Education{}) {
			out = append(out, e)
		}
	}
	return out
}

// ParseEducation reads one education chunk. Lines of the chunk are read
// as comma-separated segments. The degree keyword, date range and grade
// are matched independently. The field of study is looked for only after
// the degree, so "University of Oxford" is not mistaken for one. The
// institution is the first segment left once those spans are removed.
func ParseEducation(chunk string) schema.Education {
	text := flatten(chunk, ", ")
	var e schema.Education
	var spans [][2]int

	e.StartDate, e.EndDate = dates.NormalizeRange(text)
	if e.StartDate != "" || e.EndDate != "" {
		if s, end, ok := dates.Span(text); ok {
			spans = append(spans, [2]int{s, end})
		}
	}

	if m := gradeRe.FindStringSubmatchIndex(text); m != nil {
		e.Grade = text[m[2]:m[3]]
		spans = append(spans, [2]int{m[0], m[1]})
	}

	if m := degreeRe.FindStringIndex(text); m != nil {
		e.Degree = strings.TrimSpace(text[m[0]:m[1]])
		spans = append(spans, [2]int{m[0], m[1]})
		if field, span, ok := fieldOfStudy(text, m[1]); ok {
			e.FieldOfStudy = field
			spans = append(spans, span)
		}
	}

	for _, seg := range segRe.Split(cut(text, spans...), -1) {
		if seg = trimPunct(seg); seg != "" {
			e.Institution = seg
			break
		}
	}
	return e
}

// fieldOfStudy finds the field after the degree ending at from: the words
// after an "in"/"of" marker, or else the rest of the degree's segment
func fieldOfStudy(text string, from int) (string, [2]int, bool) {
	rest := text[from:]
	if m := fieldRe.FindStringSubmatchIndex(rest); m != nil {
		field := strings.TrimSpace(rest[m[2]:m[3]])
		return field, [2]int{from + m[0], from + m[1]}, field != ""
	}

	if i := segRe.FindStringIndex(rest); i != nil {
		rest = rest[:i[0]]
	}
	field := trimPunct(rest)
	if field == "" || dates.HasDate(field) || gradeRe.MatchString(field) {
		return "", [2]int{}, false
	}
	start := from + strings.Index(text[from:], field)
	return field, [2]int{start, start + len(field)}, true
}
