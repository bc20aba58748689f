package schema

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/tsawler/resumeparser/dates"
)

// EntryKind tells a scalar list entry from a record
type EntryKind int

const (
	// EntryUnsupported is any value that is neither a string nor an object
	EntryUnsupported EntryKind = iota
	EntryScalar
	EntryRecord
)

// Entry is one element of a section list in an untrusted payload. It is
// either a bare string (Scalar) or an object (Record).
type Entry struct {
	Kind   EntryKind
	Scalar string
	Record map[string]any
}

// ResolveEntry classifies a decoded list element
func ResolveEntry(v any) Entry {
	switch x := v.(type) {
	case map[string]any:
		return Entry{Kind: EntryRecord, Record: x}
	case string:
		return Entry{Kind: EntryScalar, Scalar: x}
	default:
		return Entry{Kind: EntryUnsupported}
	}
}

// sectionRule describes how one list section is sanitized
type sectionRule struct {
	key      string
	allowed  []string
	lists    map[string]bool // fields holding a list of strings
	ints     map[string]bool // fields holding an integer
	fromText func(string) map[string]any
}

var sectionRules = []sectionRule{
	{key: KeyEducation, allowed: EducationKeys},
	{
		key:     KeyWorkExperience,
		allowed: WorkExperienceKeys,
		lists:   map[string]bool{"description": true},
		ints:    map[string]bool{"duration_months": true},
	},
	{
		key:      KeySkills,
		allowed:  SkillKeys,
		fromText: func(s string) map[string]any { return map[string]any{"name": s} },
	},
	{key: KeyCertifications, allowed: CertificationKeys},
	{key: KeyProjects, allowed: ProjectKeys, lists: map[string]bool{"technologies": true}},
	{key: KeyPublications, allowed: PublicationKeys},
	{
		key:      KeyLanguages,
		allowed:  LanguageKeys,
		fromText: func(s string) map[string]any { return map[string]any{"name": s} },
	},
	{
		key:      KeyOtherSections,
		allowed:  OtherSectionKeys,
		fromText: func(s string) map[string]any { return map[string]any{"label": "other", "content": s} },
	},
}

var dateKeys = map[string]bool{"start_date": true, "end_date": true, "date": true}

// Sanitize coerces an untrusted payload into the canonical resume tree.
// Unknown keys are dropped, string entries are accepted for skills,
// languages and other sections, scalar values are stringified, dates are
// normalized where possible and the result is validated.
func Sanitize(payload map[string]any) (map[string]any, error) {
	r, err := SanitizeResume(payload)
	if err != nil {
		return nil, err
	}
	return r.ToMap(), nil
}

// SanitizeResume is Sanitize returning the typed resume
func SanitizeResume(payload map[string]any) (*Resume, error) {
	clean := map[string]any{
		KeyContact: sanitizeRecord(asRecord(payload[KeyContact]), ContactKeys, nil, nil),
		KeyMeta:    sanitizeRecord(asRecord(payload[KeyMeta]), MetaKeys, nil, nil),
	}
	for _, rule := range sectionRules {
		clean[rule.key] = sanitizeList(payload[rule.key], rule)
	}

	r, err := FromMap(clean)
	if err != nil {
		return nil, fmt.Errorf("sanitize resume: %w", err)
	}
	return r, nil
}

func asRecord(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return nil
}

func sanitizeList(v any, rule sectionRule) []any {
	out := []any{}
	items, ok := v.([]any)
	if !ok {
		return out
	}
	for _, item := range items {
		entry := ResolveEntry(item)
		switch entry.Kind {
		case EntryRecord:
			out = append(out, sanitizeRecord(entry.Record, rule.allowed, rule.lists, rule.ints))
		case EntryScalar:
			if rule.fromText != nil {
				out = append(out, rule.fromText(entry.Scalar))
			}
		}
	}
	return out
}

func sanitizeRecord(src map[string]any, allowed []string, lists, ints map[string]bool) map[string]any {
	out := make(map[string]any)
	for _, key := range allowed {
		if lists[key] {
			out[key] = toStringList(src[key])
			continue
		}
		v, ok := src[key]
		if !ok || v == nil {
			continue
		}
		if ints[key] {
			if n, ok := toInt(v); ok {
				out[key] = n
			}
			continue
		}
		s := stringify(v)
		if dateKeys[key] {
			s = canonicalDate(s)
		}
		if s != "" {
			out[key] = s
		}
	}
	return out
}

func stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case json.Number:
		return x.String()
	case bool:
		return strconv.FormatBool(x)
	case []any, []string:
		return strings.Join(toStrings(x), ", ")
	case map[string]any:
		b, err := json.Marshal(x)
		if err != nil {
			return ""
		}
		return string(b)
	default:
		return strings.TrimSpace(fmt.Sprint(x))
	}
}

func toStringList(v any) []any {
	out := []any{}
	for _, s := range toStrings(v) {
		out = append(out, s)
	}
	return out
}

func toStrings(v any) []string {
	out := []string{}
	switch x := v.(type) {
	case nil:
	case []any:
		for _, item := range x {
			if s := stringify(item); s != "" {
				out = append(out, s)
			}
		}
	case []string:
		for _, item := range x {
			if s := strings.TrimSpace(item); s != "" {
				out = append(out, s)
			}
		}
	default:
		if s := stringify(x); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func toInt(v any) (int, bool) {
	switch x := v.(type) {
	case int:
		return x, true
	case int64:
		return int(x), true
	case float64:
		return int(x), true
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return int(i), true
		}
		if f, err := x.Float64(); err == nil {
			return int(f), true
		}
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(x)); err == nil {
			return i, true
		}
	}
	return 0, false
}

// canonicalDate trims a date, spells the open-ended sentinel "Present" and
// runs anything else that is not already canonical through the normalizer.
// Values the normalizer cannot read are returned unchanged so validation
// reports them.
func canonicalDate(s string) string {
	if s == "" {
		return ""
	}
	if strings.EqualFold(s, dates.Present) {
		return "Present"
	}
	if dates.IsCanonical(s) {
		return s
	}
	switch n := dates.Normalize(s); n {
	case "":
		return s
	case dates.Present:
		return "Present"
	default:
		return n
	}
}
