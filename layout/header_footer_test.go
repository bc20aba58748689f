package layout

import (
	"strings"
	"testing"

	"github.com/tsawler/resumeparser/model"
)

func TestHeaderFooterRemover_SingleRepeat(t *testing.T) {
	doc := buildColumnDocument()
	r := NewHeaderFooterRemoverWithConfig(HeaderFooterConfig{RegionHeight: 80, MinRepeats: 1})
	removed := r.Remove(doc)
	if removed != 2 {
		t.Errorf("Expected 2 tokens removed, got %d", removed)
	}

	for _, tok := range doc.Tokens() {
		if tok.Text == "Header" || tok.Text == "Footer" {
			t.Errorf("Expected %q removed", tok.Text)
		}
	}
	if strings.Contains(doc.RawText, "Header") {
		t.Errorf("Expected raw text rebuilt without header, got %q", doc.RawText)
	}
	if !strings.Contains(doc.RawText, "Body") {
		t.Errorf("Expected body kept in raw text, got %q", doc.RawText)
	}
}

func TestHeaderFooterRemover_RequiresRepeats(t *testing.T) {
	doc := model.NewDocument("x.pdf")
	for n := 1; n <= 3; n++ {
		page := model.NewPage(1000, 1000, n)
		page.Tokens = []model.Token{
			tokenAt("Jane", 100, 20, 150, 40, n-1),
			tokenAt("Doe", 160, 20, 200, 40, n-1),
			tokenAt("content", 100, 500, 200, 520, n-1),
		}
		if n == 1 {
			page.Tokens = append(page.Tokens, tokenAt("Unique", 100, 970, 200, 990, 0))
		}
		doc.AddPage(page)
	}

	removed := NewHeaderFooterRemover().Remove(doc)
	if removed != 6 {
		t.Errorf("Expected repeated header removed from 3 pages (6 tokens), got %d", removed)
	}
	var texts []string
	for _, tok := range doc.Tokens() {
		texts = append(texts, tok.Text)
	}
	joined := strings.Join(texts, " ")
	if !strings.Contains(joined, "Unique") {
		t.Error("Expected single-page footer kept")
	}
	if strings.Contains(joined, "Jane") {
		t.Error("Expected repeated header removed")
	}
}

func TestHeaderFooterRemover_EmptyDocument(t *testing.T) {
	if n := NewHeaderFooterRemover().Remove(model.NewDocument("")); n != 0 {
		t.Errorf("Expected 0, got %d", n)
	}
}
