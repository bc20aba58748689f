package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
)

// Allowed field names per entry type, in output order
var (
	ContactKeys        = []string{"name", "email", "phone", "website", "location", "raw"}
	EducationKeys      = []string{"institution", "degree", "field_of_study", "start_date", "end_date", "grade", "location"}
	WorkExperienceKeys = []string{"company", "position", "start_date", "end_date", "duration_months", "location", "description"}
	SkillKeys          = []string{"name", "category", "proficiency"}
	CertificationKeys  = []string{"name", "issuer", "date"}
	ProjectKeys        = []string{"name", "role", "start_date", "end_date", "description", "technologies"}
	PublicationKeys    = []string{"title", "venue", "date", "description"}
	LanguageKeys       = []string{"name", "proficiency"}
	OtherSectionKeys   = []string{"label", "content"}
	MetaKeys           = []string{"source", "notes"}
)

// TopLevelKeys lists the keys of the resume tree in output order
var TopLevelKeys = []string{
	KeyContact, KeyEducation, KeyWorkExperience, KeySkills, KeyCertifications,
	KeyProjects, KeyPublications, KeyLanguages, KeyOtherSections, KeyMeta,
}

// ToMap converts the resume to a plain tree. Every list section and the
// contact and meta objects are always present; unset string fields are
// omitted.
func (r *Resume) ToMap() map[string]any {
	tree := map[string]any{
		KeyContact: r.Contact.toMap(),
		KeyMeta:    r.Meta.toMap(),
	}
	tree[KeyEducation] = listOf(r.Education, Education.toMap)
	tree[KeyWorkExperience] = listOf(r.WorkExperience, WorkExperience.toMap)
	tree[KeySkills] = listOf(r.Skills, Skill.toMap)
	tree[KeyCertifications] = listOf(r.Certifications, Certification.toMap)
	tree[KeyProjects] = listOf(r.Projects, Project.toMap)
	tree[KeyPublications] = listOf(r.Publications, Publication.toMap)
	tree[KeyLanguages] = listOf(r.Languages, Language.toMap)
	tree[KeyOtherSections] = listOf(r.OtherSections, OtherSection.toMap)
	return tree
}

// JSON encodes the resume tree with two-space indentation
func (r *Resume) JSON() ([]byte, error) {
	return json.MarshalIndent(r.ToMap(), "", "  ")
}

// FromMap builds a resume from a plain tree and validates it. Missing
// sections are empty; a section of the wrong shape, an unknown entry field
// or a field of the wrong type fails with ErrInvalidType.
func FromMap(tree map[string]any) (*Resume, error) {
	r := NewResume()

	if v, ok := tree[KeyContact]; ok && v != nil {
		f, err := objectFields(KeyContact, v, ContactKeys)
		if err != nil {
			return nil, err
		}
		r.Contact = contactFrom(f)
		if f.err != nil {
			return nil, f.err
		}
	}
	if v, ok := tree[KeyMeta]; ok && v != nil {
		f, err := objectFields(KeyMeta, v, MetaKeys)
		if err != nil {
			return nil, err
		}
		r.Meta = Meta{Source: f.str("source"), Notes: f.str("notes")}
		if f.err != nil {
			return nil, f.err
		}
	}

	var err error
	if r.Education, err = decodeList(tree, KeyEducation, EducationKeys, educationFrom); err != nil {
		return nil, err
	}
	if r.WorkExperience, err = decodeList(tree, KeyWorkExperience, WorkExperienceKeys, workFrom); err != nil {
		return nil, err
	}
	if r.Skills, err = decodeList(tree, KeySkills, SkillKeys, skillFrom); err != nil {
		return nil, err
	}
	if r.Certifications, err = decodeList(tree, KeyCertifications, CertificationKeys, certificationFrom); err != nil {
		return nil, err
	}
	if r.Projects, err = decodeList(tree, KeyProjects, ProjectKeys, projectFrom); err != nil {
		return nil, err
	}
	if r.Publications, err = decodeList(tree, KeyPublications, PublicationKeys, publicationFrom); err != nil {
		return nil, err
	}
	if r.Languages, err = decodeList(tree, KeyLanguages, LanguageKeys, languageFrom); err != nil {
		return nil, err
	}
	if r.OtherSections, err = decodeList(tree, KeyOtherSections, OtherSectionKeys, otherFrom); err != nil {
		return nil, err
	}

	r.ensureLists()
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// FromJSON decodes a JSON resume tree
func FromJSON(data []byte) (*Resume, error) {
	var tree map[string]any
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("decode resume: %w", err)
	}
	return FromMap(tree)
}

func listOf[T any](items []T, conv func(T) map[string]any) []any {
	out := make([]any, 0, len(items))
	for _, item := range items {
		out = append(out, conv(item))
	}
	return out
}

func putString(m map[string]any, key, value string) {
	if value != "" {
		m[key] = value
	}
}

func stringList(values []string) []any {
	out := make([]any, 0, len(values))
	for _, v := range values {
		out = append(out, v)
	}
	return out
}

func (c Contact) toMap() map[string]any {
	m := make(map[string]any)
	putString(m, "name", c.Name)
	putString(m, "email", c.Email)
	putString(m, "phone", c.Phone)
	putString(m, "website", c.Website)
	putString(m, "location", c.Location)
	putString(m, "raw", c.Raw)
	return m
}

func (e Education) toMap() map[string]any {
	m := make(map[string]any)
	putString(m, "institution", e.Institution)
	putString(m, "degree", e.Degree)
	putString(m, "field_of_study", e.FieldOfStudy)
	putString(m, "start_date", e.StartDate)
	putString(m, "end_date", e.EndDate)
	putString(m, "grade", e.Grade)
	putString(m, "location", e.Location)
	return m
}

func (w WorkExperience) toMap() map[string]any {
	m := map[string]any{"description": stringList(w.Description)}
	putString(m, "company", w.Company)
	putString(m, "position", w.Position)
	putString(m, "start_date", w.StartDate)
	putString(m, "end_date", w.EndDate)
	putString(m, "location", w.Location)
	if w.DurationMonths != nil {
		m["duration_months"] = *w.DurationMonths
	}
	return m
}

func (s Skill) toMap() map[string]any {
	m := make(map[string]any)
	putString(m, "name", s.Name)
	putString(m, "category", s.Category)
	putString(m, "proficiency", s.Proficiency)
	return m
}

func (c Certification) toMap() map[string]any {
	m := make(map[string]any)
	putString(m, "name", c.Name)
	putString(m, "issuer", c.Issuer)
	putString(m, "date", c.Date)
	return m
}

func (p Project) toMap() map[string]any {
	m := map[string]any{"technologies": stringList(p.Technologies)}
	putString(m, "name", p.Name)
	putString(m, "role", p.Role)
	putString(m, "start_date", p.StartDate)
	putString(m, "end_date", p.EndDate)
	putString(m, "description", p.Description)
	return m
}

func (p Publication) toMap() map[string]any {
	m := make(map[string]any)
	putString(m, "title", p.Title)
	putString(m, "venue", p.Venue)
	putString(m, "date", p.Date)
	putString(m, "description", p.Description)
	return m
}

func (l Language) toMap() map[string]any {
	m := make(map[string]any)
	putString(m, "name", l.Name)
	putString(m, "proficiency", l.Proficiency)
	return m
}

func (o OtherSection) toMap() map[string]any {
	m := make(map[string]any)
	putString(m, "label", o.Label)
	putString(m, "content", o.Content)
	return m
}

func (m Meta) toMap() map[string]any {
	out := make(map[string]any)
	putString(out, "source", m.Source)
	putString(out, "notes", m.Notes)
	return out
}

// fields reads typed values out of one object, keeping the first error
type fields struct {
	path string
	m    map[string]any
	err  error
}

func objectFields(path string, v any, allowed []string) (*fields, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, invalidType(path, v, "object")
	}
	known := make(map[string]bool, len(allowed))
	for _, k := range allowed {
		known[k] = true
	}
	var unknown []string
	for k := range m {
		if !known[k] {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, &ValidationError{
			Field: path + "." + unknown[0],
			Value: unknown[0],
			Err:   fmt.Errorf("%w: unknown field", ErrInvalidType),
		}
	}
	return &fields{path: path, m: m}, nil
}

func (f *fields) str(key string) string {
	v, ok := f.m[key]
	if !ok || v == nil || f.err != nil {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		f.err = invalidType(f.path+"."+key, v, "string")
		return ""
	}
	return s
}

func (f *fields) strs(key string) []string {
	out := []string{}
	v, ok := f.m[key]
	if !ok || v == nil || f.err != nil {
		return out
	}
	switch list := v.(type) {
	case []string:
		return append(out, list...)
	case []any:
		for i, item := range list {
			s, ok := item.(string)
			if !ok {
				f.err = invalidType(fmt.Sprintf("%s.%s[%d]", f.path, key, i), item, "string")
				return []string{}
			}
			out = append(out, s)
		}
		return out
	default:
		f.err = invalidType(f.path+"."+key, v, "list of strings")
		return out
	}
}

func (f *fields) intPtr(key string) *int {
	v, ok := f.m[key]
	if !ok || v == nil || f.err != nil {
		return nil
	}
	var n int
	switch x := v.(type) {
	case int:
		n = x
	case int32:
		n = int(x)
	case int64:
		n = int(x)
	case float64:
		if x != math.Trunc(x) {
			f.err = invalidType(f.path+"."+key, v, "integer")
			return nil
		}
		n = int(x)
	case json.Number:
		i, err := x.Int64()
		if err != nil {
			f.err = invalidType(f.path+"."+key, v, "integer")
			return nil
		}
		n = int(i)
	default:
		f.err = invalidType(f.path+"."+key, v, "integer")
		return nil
	}
	return &n
}

func decodeList[T any](tree map[string]any, key string, allowed []string, build func(*fields) T) ([]T, error) {
	out := []T{}
	v, ok := tree[key]
	if !ok || v == nil {
		return out, nil
	}
	var items []any
	switch list := v.(type) {
	case []any:
		items = list
	case []map[string]any:
		for _, m := range list {
			items = append(items, m)
		}
	default:
		return nil, invalidType(key, v, "list")
	}
	for i, item := range items {
		f, err := objectFields(fmt.Sprintf("%s[%d]", key, i), item, allowed)
		if err != nil {
			return nil, err
		}
		entry := build(f)
		if f.err != nil {
			return nil, f.err
		}
		out = append(out, entry)
	}
	return out, nil
}

func contactFrom(f *fields) Contact {
	return Contact{
		Name:     f.str("name"),
		Email:    f.str("email"),
		Phone:    f.str("phone"),
		Website:  f.str("website"),
		Location: f.str("location"),
		Raw:      f.str("raw"),
	}
}

func educationFrom(f *fields) Education {
	return Education{
		Institution:  f.str("institution"),
		Degree:       f.str("degree"),
		FieldOfStudy: f.str("field_of_study"),
		StartDate:    f.str("start_date"),
		EndDate:      f.str("end_date"),
		Grade:        f.str("grade"),
		Location:     f.str("location"),
	}
}

func workFrom(f *fields) WorkExperience {
	return WorkExperience{
		Company:        f.str("company"),
		Position:       f.str("position"),
		StartDate:      f.str("start_date"),
		EndDate:        f.str("end_date"),
		DurationMonths: f.intPtr("duration_months"),
		Location:       f.str("location"),
		Description:    f.strs("description"),
	}
}

func skillFrom(f *fields) Skill {
	return Skill{Name: f.str("name"), Category: f.str("category"), Proficiency: f.str("proficiency")}
}

func certificationFrom(f *fields) Certification {
	return Certification{Name: f.str("name"), Issuer: f.str("issuer"), Date: f.str("date")}
}

func projectFrom(f *fields) Project {
	return Project{
		Name:         f.str("name"),
		Role:         f.str("role"),
		StartDate:    f.str("start_date"),
		EndDate:      f.str("end_date"),
		Description:  f.str("description"),
		Technologies: f.strs("technologies"),
	}
}

func publicationFrom(f *fields) Publication {
	return Publication{
		Title:       f.str("title"),
		Venue:       f.str("venue"),
		Date:        f.str("date"),
		Description: f.str("description"),
	}
}

func languageFrom(f *fields) Language {
	return Language{Name: f.str("name"), Proficiency: f.str("proficiency")}
}

func otherFrom(f *fields) OtherSection {
	return OtherSection{Label: f.str("label"), Content: f.str("content")}
}
