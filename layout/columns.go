package layout

import (
	"math"
	"sort"

	"github.com/tsawler/resumeparser/model"
)

// ColumnConfig holds configuration for column assignment
type ColumnConfig struct {
	// MaxColumns is the maximum number of columns per page
	// Default: 3
	MaxColumns int

	// ColumnGap is the maximum distance, in normalized units, between a
	// token center and a column center for the token to join that column
	// Default: 120
	ColumnGap float64
}

// DefaultColumnConfig returns sensible default configuration
func DefaultColumnConfig() ColumnConfig {
	return ColumnConfig{
		MaxColumns: 3,
		ColumnGap:  120,
	}
}

// ColumnAssigner assigns each token to a column by clustering X centers
type ColumnAssigner struct {
	config ColumnConfig
}

// NewColumnAssigner creates a new column assigner with default configuration
func NewColumnAssigner() *ColumnAssigner {
	return &ColumnAssigner{
		config: DefaultColumnConfig(),
	}
}

// NewColumnAssignerWithConfig creates a column assigner with custom configuration
func NewColumnAssignerWithConfig(config ColumnConfig) *ColumnAssigner {
	if config.MaxColumns <= 0 {
		config.MaxColumns = 1
	}
	return &ColumnAssigner{
		config: config,
	}
}

// column is a running mean of the token centers assigned to it
type column struct {
	center float64
	count  int
}

func (c *column) add(center float64) {
	n := c.count + 1
	c.center = (c.center*float64(c.count) + center) / float64(n)
	c.count = n
}

// Assign writes a column_id into every token of every page and returns the
// number of columns found on each page.
func (a *ColumnAssigner) Assign(doc *model.Document) []int {
	counts := make([]int, 0, len(doc.Pages))
	for _, page := range doc.Pages {
		counts = append(counts, a.AssignPage(page))
	}
	return counts
}

// AssignPage assigns columns on a single page and returns the column count.
// Tokens are visited left to right by center; each joins the first column
// whose center is within ColumnGap, opens a new column while fewer than
// MaxColumns exist, or otherwise joins the nearest column.
func (a *ColumnAssigner) AssignPage(page *model.Page) int {
	if page == nil || len(page.Tokens) == 0 {
		return 0
	}

	order := make([]int, len(page.Tokens))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return page.Tokens[order[i]].BBox.CenterX() < page.Tokens[order[j]].BBox.CenterX()
	})

	var columns []*column
	for _, idx := range order {
		center := page.Tokens[idx].BBox.CenterX()

		assigned := -1
		for ci, col := range columns {
			if math.Abs(center-col.center) <= a.config.ColumnGap {
				col.add(center)
				assigned = ci
				break
			}
		}

		if assigned < 0 {
			if len(columns) < a.config.MaxColumns {
				columns = append(columns, &column{center: center, count: 1})
				assigned = len(columns) - 1
			} else {
				assigned = nearestColumn(columns, center)
				columns[assigned].add(center)
			}
		}

		page.Tokens[idx].Set(model.MetaColumn, assigned)
	}

	return len(columns)
}

func nearestColumn(columns []*column, center float64) int {
	best := 0
	bestDist := math.Inf(1)
	for i, col := range columns {
		if d := math.Abs(center - col.center); d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

// ReadingOrder returns the document's tokens sorted by page, column, top and
// left. The document itself is not modified.
func ReadingOrder(doc *model.Document) []model.Token {
	tokens := doc.Tokens()
	sort.SliceStable(tokens, func(i, j int) bool {
		a, b := tokens[i], tokens[j]
		if a.Page != b.Page {
			return a.Page < b.Page
		}
		return readingLess(a, b)
	})
	return tokens
}

// ReorderDocument sorts each page's tokens in place into reading order
func ReorderDocument(doc *model.Document) *model.Document {
	for _, page := range doc.Pages {
		tokens := page.Tokens
		sort.SliceStable(tokens, func(i, j int) bool {
			return readingLess(tokens[i], tokens[j])
		})
	}
	return doc
}

func readingLess(a, b model.Token) bool {
	ca, cb := a.ColumnOrZero(), b.ColumnOrZero()
	if ca != cb {
		return ca < cb
	}
	if a.BBox.Y0 != b.BBox.Y0 {
		return a.BBox.Y0 < b.BBox.Y0
	}
	return a.BBox.X0 < b.BBox.X0
}
