package layout

import (
	"testing"

	"github.com/tsawler/resumeparser/model"
)

func tokenAt(txt string, x0, y0, x1, y1, page int) model.Token {
	return model.NewToken(txt, model.NewBBox(x0, y0, x1, y1), page)
}

// buildColumnDocument mirrors a two-column resume with a header line
func buildColumnDocument() *model.Document {
	doc := model.NewDocument("dummy.pdf")
	p1 := model.NewPage(1000, 1000, 1)
	p1.Tokens = []model.Token{
		tokenAt("Header", 100, 20, 200, 40, 0),
		tokenAt("Left", 50, 100, 200, 150, 0),
		tokenAt("Column", 60, 160, 220, 210, 0),
		tokenAt("Right", 700, 120, 850, 170, 0),
	}
	p2 := model.NewPage(1000, 1000, 2)
	p2.Tokens = []model.Token{
		tokenAt("Body", 80, 400, 220, 450, 1),
		tokenAt("Footer", 90, 960, 200, 990, 1),
	}
	doc.AddPage(p1)
	doc.AddPage(p2)
	doc.RawText = "Header\nLeft Column\nRight\nBody\nFooter"
	return doc
}

func TestColumnAssigner_TwoColumns(t *testing.T) {
	doc := buildColumnDocument()
	counts := NewColumnAssigner().Assign(doc)
	if len(counts) != 2 || counts[0] != 2 || counts[1] != 1 {
		t.Errorf("Unexpected column counts %v", counts)
	}

	columns := make(map[string]int)
	for _, tok := range doc.Tokens() {
		c, ok := tok.Column()
		if !ok {
			t.Fatalf("Token %q has no column", tok.Text)
		}
		columns[tok.Text] = c
	}
	if columns["Left"] != columns["Column"] {
		t.Error("Expected Left and Column in the same column")
	}
	if columns["Right"] == columns["Left"] {
		t.Error("Expected Right in a different column")
	}
}

func TestColumnAssigner_MaxColumns(t *testing.T) {
	page := model.NewPage(1000, 1000, 1)
	page.Tokens = []model.Token{
		tokenAt("a", 0, 0, 10, 10, 0),
		tokenAt("b", 400, 0, 410, 10, 0),
		tokenAt("c", 900, 0, 910, 10, 0),
	}
	a := NewColumnAssignerWithConfig(ColumnConfig{MaxColumns: 2, ColumnGap: 50})
	if n := a.AssignPage(page); n != 2 {
		t.Fatalf("Expected 2 columns, got %d", n)
	}
	if c, _ := page.Tokens[2].Column(); c != 1 {
		t.Errorf("Expected overflow token in nearest column 1, got %d", c)
	}
}

func TestColumnAssigner_EmptyPage(t *testing.T) {
	if n := NewColumnAssigner().AssignPage(model.NewPage(1, 1, 1)); n != 0 {
		t.Errorf("Expected 0 columns, got %d", n)
	}
}

func TestReadingOrder(t *testing.T) {
	doc := buildColumnDocument()
	NewColumnAssigner().Assign(doc)
	ReorderDocument(doc)

	ordered := ReadingOrder(doc)
	index := make(map[string]int)
	for i, tok := range ordered {
		index[tok.Text] = i
	}
	if index["Left"] > index["Right"] {
		t.Error("Expected Left before Right")
	}
	if index["Column"] > index["Right"] {
		t.Error("Expected the whole left column before the right column")
	}
	if index["Right"] > index["Body"] {
		t.Error("Expected page 1 before page 2")
	}
	if doc.Pages[0].Tokens[len(doc.Pages[0].Tokens)-1].Text != "Right" {
		t.Error("Expected page tokens reordered in place")
	}
}
