package sections

import (
	"fmt"
	"strings"
)

// Label identifies a resume section
type Label int

const (
	Contact Label = iota
	Education
	WorkExperience
	Skills
	Certifications
	Projects
	Publications
	Languages
	OtherSections
)

var labelNames = [...]string{
	Contact:        "contact",
	Education:      "education",
	WorkExperience: "work_experience",
	Skills:         "skills",
	Certifications: "certifications",
	Projects:       "projects",
	Publications:   "publications",
	Languages:      "languages",
	OtherSections:  "other_sections",
}

// String returns the label's key in the output tree
func (l Label) String() string {
	if l < 0 || int(l) >= len(labelNames) {
		return fmt.Sprintf("Label(%d)", int(l))
	}
	return labelNames[l]
}

// Valid reports whether l is one of the defined labels
func (l Label) Valid() bool {
	return l >= Contact && l <= OtherSections
}

// ParseLabel returns the label for a key such as "work_experience"
func ParseLabel(s string) (Label, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range labelNames {
		if name == s {
			return Label(i), nil
		}
	}
	return 0, fmt.Errorf("unknown section label %q", s)
}

// Labels returns all labels in output order
func Labels() []Label {
	out := make([]Label, len(labelNames))
	for i := range labelNames {
		out[i] = Label(i)
	}
	return out
}
