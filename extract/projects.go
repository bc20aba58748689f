package extract

import (
	"regexp"
	"strings"

	"github.com/tsawler/resumeparser/model"
	"github.com/tsawler/resumeparser/schema"
)

// MaxTechnologyLength is the longest remainder part, in bytes, kept as a
// technology tag
const MaxTechnologyLength = 40

var techSplitRe = regexp.MustCompile(`[,/|]`)

// Projects reads one project per chunk. The name is the text before the
// first " - "; the rest is the description, and each comma, slash or pipe
// separated part of it that is short enough becomes a technology tag.
func Projects(tokens []model.Token) []schema.Project {
	out := []schema.Project{}
	for _, chunk := range Chunks(SectionText(tokens)) {
		out = append(out, ParseProject(chunk))
	}
	return out
}

// ParseProject reads a single project chunk
func ParseProject(chunk string) schema.Project {
	text := flatten(chunk, " ")
	p := schema.Project{Technologies: []string{}}

	name, remainder, found := strings.Cut(text, " - ")
	p.Name = strings.TrimSpace(name)
	if !found {
		return p
	}
	remainder = strings.Trim(remainder, " -")
	p.Description = remainder

	for _, part := range techSplitRe.Split(remainder, -1) {
		if tech := strings.TrimSpace(part); tech != "" && len(tech) <= MaxTechnologyLength {
			p.Technologies = append(p.Technologies, tech)
		}
	}
	return p
}
