package dates

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Present is the sentinel for an ongoing, open-ended range
const Present = "present"

// monthNumbers maps English three-letter abbreviations to month numbers
var monthNumbers = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
}

var fullMonthNames = [12]string{
	"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
}

const (
	monthAlt   = `jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec`
	monthYear  = `(?:` + monthAlt + `)[a-z]*\.?,?\s+\d{4}\b`
	numeric    = `\d{4}\b(?:[-/](?:0?[1-9]|1[0-2])\b)?`
	openEnded  = `present|current`
	singleDate = monthYear + `|` + numeric + `|` + openEnded
	rangeSep   = `\s*(?:-|–|—|\bto\b|\buntil\b)\s*`
)

var (
	monthYearRe = regexp.MustCompile(`(?i)\b(` + monthAlt + `)[a-z]*\.?,?\s+(\d{4})\b`)
	numericRe   = regexp.MustCompile(`\b(\d{4})\b(?:[-/](0?[1-9]|1[0-2])\b)?`)
	rangeRe     = regexp.MustCompile(`(?i)\b(` + singleDate + `)` + rangeSep + `(` + singleDate + `)`)
	singleRe    = regexp.MustCompile(`(?i)\b(?:` + singleDate + `)`)
	monthNameRe = regexp.MustCompile(`(?i)\b(?:` + monthAlt + `)[a-z]*\b`)
	yearMonthRe = regexp.MustCompile(`^\d{4}-(?:0[1-9]|1[0-2])$`)
	yearRe      = regexp.MustCompile(`^\d{4}$`)
)

// Normalize converts a date expression to "YYYY", "YYYY-MM" or Present.
// It tries a "Month YYYY" form first, then "YYYY", "YYYY-MM" and "YYYY/MM".
// If neither matches and the text mentions "present" or "current", Present
// is returned. Unreadable input yields "".
func Normalize(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	if m := monthYearRe.FindStringSubmatch(text); m != nil {
		if month, ok := MonthNumber(m[1]); ok {
			return fmt.Sprintf("%s-%02d", m[2], month)
		}
	}

	if m := numericRe.FindStringSubmatch(text); m != nil {
		if m[2] == "" {
			return m[1]
		}
		if month, err := strconv.Atoi(m[2]); err == nil && month >= 1 && month <= 12 {
			return fmt.Sprintf("%s-%02d", m[1], month)
		}
	}

	lower := strings.ToLower(text)
	if strings.Contains(lower, "present") || strings.Contains(lower, "current") {
		return Present
	}
	return ""
}

// MonthNumber maps a month name or abbreviation to its number
func MonthNumber(name string) (int, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if len(name) < 3 {
		return 0, false
	}
	n, ok := monthNumbers[name[:3]]
	return n, ok
}

// NormalizeRange splits a date range into normalized start and end values.
// A complete "date - date" expression wins. Otherwise the text is split on
// the first range dash and each half is normalized on its own. Text without
// a dash is read as a single start date with no end.
func NormalizeRange(text string) (start, end string) {
	if m := rangeRe.FindStringSubmatch(text); m != nil {
		return Normalize(m[1]), Normalize(m[2])
	}
	if i, width := rangeDash(text); i >= 0 {
		return Normalize(text[:i]), Normalize(text[i+width:])
	}
	return Normalize(text), ""
}

// HasDate reports whether NormalizeRange finds anything in text
func HasDate(text string) bool {
	start, end := NormalizeRange(text)
	return start != "" || end != ""
}

// FindRange returns the byte span of a complete "date - date" expression
func FindRange(text string) (start, end int, ok bool) {
	loc := rangeRe.FindStringIndex(text)
	if loc == nil {
		return 0, 0, false
	}
	return loc[0], loc[1], true
}

// Span returns the byte span of the date expression in text: a complete
// range when one exists, otherwise the first single date.
func Span(text string) (start, end int, ok bool) {
	if s, e, ok := FindRange(text); ok {
		return s, e, true
	}
	loc := singleRe.FindStringIndex(text)
	if loc == nil {
		return 0, 0, false
	}
	return loc[0], loc[1], true
}

// FirstMonthName returns the byte offset of the first word in text that is
// a month name or a prefix of one, such as "Sept" or "December". Words that
// merely start like a month ("Marketing") are skipped.
func FirstMonthName(text string) (int, bool) {
	for _, loc := range monthNameRe.FindAllStringIndex(text, -1) {
		word := strings.ToLower(text[loc[0]:loc[1]])
		n, ok := MonthNumber(word)
		if ok && strings.HasPrefix(fullMonthNames[n-1], word) {
			return loc[0], true
		}
	}
	return 0, false
}

// IsCanonical reports whether value already satisfies the date format:
// "YYYY", "YYYY-MM", "present" or "Present".
func IsCanonical(value string) bool {
	if value == Present || value == "Present" {
		return true
	}
	return yearRe.MatchString(value) || yearMonthRe.MatchString(value)
}

// rangeDash finds the first hyphen or en-dash that separates two halves of
// a range, skipping the separator inside a "YYYY-MM" value. It returns the
// byte offset and the dash's encoded width, or -1.
func rangeDash(text string) (int, int) {
	for i, r := range text {
		switch r {
		case '–':
			return i, utf8.RuneLen(r)
		case '-':
			if !isYearMonthSeparator(text, i) {
				return i, 1
			}
		}
	}
	return -1, 0
}

// isYearMonthSeparator reports whether the hyphen at i sits between a
// four-digit year and a one- or two-digit month
func isYearMonthSeparator(text string, i int) bool {
	if i < 4 || !allDigits(text[i-4:i]) {
		return false
	}
	if i > 4 && isDigit(text[i-5]) {
		return false
	}
	j := i + 1
	for j < len(text) && j-i-1 < 3 && isDigit(text[j]) {
		j++
	}
	digits := text[i+1 : j]
	if len(digits) == 0 || len(digits) > 2 {
		return false
	}
	month, _ := strconv.Atoi(digits)
	return month >= 1 && month <= 12
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return s != ""
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
