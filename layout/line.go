package layout

import (
	"sort"
	"strings"

	"github.com/tsawler/resumeparser/model"
)

// Line represents a single line of text
type Line struct {
	// Index is the line's key: explicit metadata index or derived Y bucket
	Index int

	// Tokens are the tokens that make up this line (sorted left to right)
	Tokens []model.Token

	// Explicit is true when the index came from ingestion metadata
	Explicit bool
}

// Text returns the line's tokens joined with single spaces
func (l Line) Text() string {
	parts := make([]string, 0, len(l.Tokens))
	for _, tok := range l.Tokens {
		parts = append(parts, tok.Text)
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

// LineConfig holds configuration for line grouping
type LineConfig struct {
	// BucketSize is the height of a derived line bucket in normalized units
	// Default: 10
	BucketSize int
}

// DefaultLineConfig returns sensible default configuration
func DefaultLineConfig() LineConfig {
	return LineConfig{
		BucketSize: 10,
	}
}

// LineGrouper groups tokens into lines
type LineGrouper struct {
	config LineConfig
}

// NewLineGrouper creates a new line grouper with default configuration
func NewLineGrouper() *LineGrouper {
	return &LineGrouper{
		config: DefaultLineConfig(),
	}
}

// NewLineGrouperWithConfig creates a line grouper with custom configuration
func NewLineGrouperWithConfig(config LineConfig) *LineGrouper {
	if config.BucketSize <= 0 {
		config.BucketSize = DefaultLineConfig().BucketSize
	}
	return &LineGrouper{
		config: config,
	}
}

// Group clusters tokens into lines ordered by increasing line index
func (g *LineGrouper) Group(tokens []model.Token) []Line {
	groups := g.groupIndices(tokens)
	lines := make([]Line, 0, len(groups))
	for _, grp := range groups {
		line := Line{Index: grp.index, Explicit: grp.explicit}
		line.Tokens = make([]model.Token, 0, len(grp.members))
		for _, i := range grp.members {
			line.Tokens = append(line.Tokens, tokens[i])
		}
		lines = append(lines, line)
	}
	return lines
}

// LineIndex returns the line key for a token
func (g *LineGrouper) LineIndex(tok model.Token) (int, bool) {
	if line, ok := tok.Line(); ok {
		return line, true
	}
	return tok.BBox.Y0 / g.config.BucketSize, false
}

// lineGroup is a line expressed as indices into the input slice
type lineGroup struct {
	index    int
	explicit bool
	members  []int
}

// groupIndices does the grouping work without copying tokens, so callers
// that need token identity (header/footer removal) can map back to the page.
func (g *LineGrouper) groupIndices(tokens []model.Token) []lineGroup {
	if len(tokens) == 0 {
		return nil
	}

	byIndex := make(map[int]*lineGroup)
	order := make([]int, 0)
	for i, tok := range tokens {
		idx, explicit := g.LineIndex(tok)
		grp, ok := byIndex[idx]
		if !ok {
			grp = &lineGroup{index: idx, explicit: explicit}
			byIndex[idx] = grp
			order = append(order, idx)
		}
		grp.members = append(grp.members, i)
	}

	sort.Ints(order)
	groups := make([]lineGroup, 0, len(order))
	for _, idx := range order {
		grp := byIndex[idx]
		sortLineMembers(tokens, grp.members)
		groups = append(groups, *grp)
	}
	return groups
}

// sortLineMembers orders a line left to right. Once column assignment has
// run, tokens are ordered by (column, top, left) instead.
func sortLineMembers(tokens []model.Token, members []int) {
	columned := false
	for _, i := range members {
		if _, ok := tokens[i].Column(); ok {
			columned = true
			break
		}
	}

	sort.SliceStable(members, func(a, b int) bool {
		ta, tb := tokens[members[a]], tokens[members[b]]
		if columned {
			ca, cb := ta.ColumnOrZero(), tb.ColumnOrZero()
			if ca != cb {
				return ca < cb
			}
			if ta.BBox.Y0 != tb.BBox.Y0 {
				return ta.BBox.Y0 < tb.BBox.Y0
			}
		}
		return ta.BBox.X0 < tb.BBox.X0
	})
}

// GroupLines groups tokens into lines using the default configuration
func GroupLines(tokens []model.Token) []Line {
	return NewLineGrouper().Group(tokens)
}

// LineTexts returns the text of each non-empty line, top to bottom
func LineTexts(tokens []model.Token) []string {
	lines := GroupLines(tokens)
	texts := make([]string, 0, len(lines))
	for _, line := range lines {
		if text := line.Text(); text != "" {
			texts = append(texts, text)
		}
	}
	return texts
}
