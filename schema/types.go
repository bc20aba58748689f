package schema

// Top-level keys of the resume tree
const (
	KeyContact        = "contact"
	KeyEducation      = "education"
	KeyWorkExperience = "work_experience"
	KeySkills         = "skills"
	KeyCertifications = "certifications"
	KeyProjects       = "projects"
	KeyPublications   = "publications"
	KeyLanguages      = "languages"
	KeyOtherSections  = "other_sections"
	KeyMeta           = "meta"
)

// Contact holds basic contact details
type Contact struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Website  string `json:"website,omitempty"`
	Location string `json:"location,omitempty"`
	Raw      string `json:"raw,omitempty"`
}

// IsEmpty reports whether no contact field is set
func (c Contact) IsEmpty() bool {
	return c == Contact{}
}

// Education is one degree or course of study
type Education struct {
	Institution  string `json:"institution,omitempty"`
	Degree       string `json:"degree,omitempty"`
	FieldOfStudy string `json:"field_of_study,omitempty"`
	StartDate    string `json:"start_date,omitempty"`
	EndDate      string `json:"end_date,omitempty"`
	Grade        string `json:"grade,omitempty"`
	Location     string `json:"location,omitempty"`
}

// WorkExperience is one position held
type WorkExperience struct {
	Company        string   `json:"company,omitempty"`
	Position       string   `json:"position,omitempty"`
	StartDate      string   `json:"start_date,omitempty"`
	EndDate        string   `json:"end_date,omitempty"`
	DurationMonths *int     `json:"duration_months,omitempty"`
	Location       string   `json:"location,omitempty"`
	Description    []string `json:"description"`
}

// Skill is a named skill
type Skill struct {
	Name        string `json:"name,omitempty"`
	Category    string `json:"category,omitempty"`
	Proficiency string `json:"proficiency,omitempty"`
}

// Certification is a certification or license
type Certification struct {
	Name   string `json:"name,omitempty"`
	Issuer string `json:"issuer,omitempty"`
	Date   string `json:"date,omitempty"`
}

// Project is a personal or professional project
type Project struct {
	Name         string   `json:"name,omitempty"`
	Role         string   `json:"role,omitempty"`
	StartDate    string   `json:"start_date,omitempty"`
	EndDate      string   `json:"end_date,omitempty"`
	Description  string   `json:"description,omitempty"`
	Technologies []string `json:"technologies"`
}

// Publication is an article, paper or similar
type Publication struct {
	Title       string `json:"title,omitempty"`
	Venue       string `json:"venue,omitempty"`
	Date        string `json:"date,omitempty"`
	Description string `json:"description,omitempty"`
}

// Language is a spoken language with optional proficiency
type Language struct {
	Name        string `json:"name,omitempty"`
	Proficiency string `json:"proficiency,omitempty"`
}

// OtherSection holds content that matched no known section
type OtherSection struct {
	Label   string `json:"label,omitempty"`
	Content string `json:"content,omitempty"`
}

// Meta records where a resume came from and free-form notes
type Meta struct {
	Source string `json:"source,omitempty"`
	Notes  string `json:"notes,omitempty"`
}

// AddNote appends note to Notes, separated by "; "
func (m *Meta) AddNote(note string) {
	if m.Notes == "" {
		m.Notes = note
		return
	}
	m.Notes = m.Notes + "; " + note
}

// Resume is the structured output of a parse
type Resume struct {
	Contact        Contact          `json:"contact"`
	Education      []Education      `json:"education"`
	WorkExperience []WorkExperience `json:"work_experience"`
	Skills         []Skill          `json:"skills"`
	Certifications []Certification  `json:"certifications"`
	Projects       []Project        `json:"projects"`
	Publications   []Publication    `json:"publications"`
	Languages      []Language       `json:"languages"`
	OtherSections  []OtherSection   `json:"other_sections"`
	Meta           Meta             `json:"meta"`
}

// NewResume returns a resume with every list initialized to empty
func NewResume() *Resume {
	r := &Resume{}
	r.ensureLists()
	return r
}

// SkillNames returns the skill names in order
func (r *Resume) SkillNames() []string {
	names := make([]string, 0, len(r.Skills))
	for _, s := range r.Skills {
		names = append(names, s.Name)
	}
	return names
}

// ensureLists replaces nil slices so JSON output carries [] rather than null
func (r *Resume) ensureLists() {
	if r.Education == nil {
		r.Education = []Education{}
	}
	if r.WorkExperience == nil {
		r.WorkExperience = []WorkExperience{}
	}
	for i := range r.WorkExperience {
		if r.WorkExperience[i].Description == nil {
			r.WorkExperience[i].Description = []string{}
		}
	}
	if r.Skills == nil {
		r.Skills = []Skill{}
	}
	if r.Certifications == nil {
		r.Certifications = []Certification{}
	}
	if r.Projects == nil {
		r.Projects = []Project{}
	}
	for i := range r.Projects {
		if r.Projects[i].Technologies == nil {
			r.Projects[i].Technologies = []string{}
		}
	}
	if r.Publications == nil {
		r.Publications = []Publication{}
	}
	if r.Languages == nil {
		r.Languages = []Language{}
	}
	if r.OtherSections == nil {
		r.OtherSections = []OtherSection{}
	}
}
