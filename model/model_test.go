package model

import (
	"encoding/json"
	"testing"
)

func TestNormalizeBBox(t *testing.T) {
	tests := []struct {
		name             string
		x0, top, x1, bot float64
		w, h             float64
		want             BBox
	}{
		{"half-height page", 100, 50, 500, 100, 1000, 500, BBox{100, 100, 500, 200}},
		{"clamped to page", -10, -5, 700, 900, 612, 792, BBox{0, 0, 1000, 1000}},
		{"zero page size", 10, 10, 20, 20, 0, 0, BBox{0, 0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeBBox(tt.x0, tt.top, tt.x1, tt.bot, tt.w, tt.h, DefaultScale)
			if got != tt.want {
				t.Errorf("Expected %+v, got %+v", tt.want, got)
			}
			if !got.IsValid(DefaultScale) {
				t.Errorf("Expected box inside the normalized space, got %+v", got)
			}
		})
	}
}

func TestBBoxClamp(t *testing.T) {
	b := NewBBox(-5, 20, 1200, 999)
	got := b.Clamp(1000)
	want := BBox{0, 20, 1000, 999}
	if got != want {
		t.Errorf("Expected %+v, got %+v", want, got)
	}
	if b.IsValid(1000) {
		t.Error("Expected unclamped box to be invalid")
	}
}

func TestBBoxAccessors(t *testing.T) {
	b := NewBBox(100, 200, 300, 260)
	if b.Width() != 200 {
		t.Errorf("Expected width 200, got %d", b.Width())
	}
	if b.Height() != 60 {
		t.Errorf("Expected height 60, got %d", b.Height())
	}
	if b.CenterX() != 200 {
		t.Errorf("Expected center 200, got %f", b.CenterX())
	}
	if s := b.AsSlice(); len(s) != 4 || s[3] != 260 {
		t.Errorf("Unexpected slice %v", s)
	}
}

func TestTokenMetadata(t *testing.T) {
	tok := Token{Text: "Go", BBox: NewBBox(0, 0, 10, 10)}
	if _, ok := tok.Line(); ok {
		t.Error("Expected no line on fresh token")
	}

	tok.Set(MetaLine, 3)
	tok.Set(MetaColumn, float64(1))
	tok.Set(MetaConfidence, 0.87)

	if line, ok := tok.Line(); !ok || line != 3 {
		t.Errorf("Expected line 3, got %d (%v)", line, ok)
	}
	if col := tok.ColumnOrZero(); col != 1 {
		t.Errorf("Expected column 1, got %d", col)
	}
	if c, ok := tok.Confidence(); !ok || c != 0.87 {
		t.Errorf("Expected confidence 0.87, got %f", c)
	}

	tok.Set(MetaLine, 2.5)
	if _, ok := tok.Line(); ok {
		t.Error("Expected fractional line index to be rejected")
	}
}

func TestTokenIsEmpty(t *testing.T) {
	if !(Token{Text: "  \t"}).IsEmpty() {
		t.Error("Expected whitespace token to be empty")
	}
	if (Token{Text: "x"}).IsEmpty() {
		t.Error("Expected non-empty token")
	}
}

func TestMetadataFromJSON(t *testing.T) {
	var tok Token
	if err := json.Unmarshal([]byte(`{"text":"a","bbox":{"x0":1,"y0":2,"x1":3,"y1":4},"page":0,"metadata":{"line":7}}`), &tok); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if line, ok := tok.Line(); !ok || line != 7 {
		t.Errorf("Expected line 7 from JSON, got %d (%v)", line, ok)
	}
}

func TestDocumentTokens(t *testing.T) {
	doc := NewDocument("resume.pdf")
	p1 := NewPage(612, 792, 1)
	p1.AddToken(NewToken("a", BBox{}, 0))
	p1.AddToken(NewToken("b", BBox{}, 0))
	p2 := NewPage(612, 792, 2)
	p2.AddToken(NewToken("c", BBox{}, 1))
	doc.AddPage(p1)
	doc.AddPage(p2)

	tokens := doc.Tokens()
	if len(tokens) != 3 || doc.TokenCount() != 3 {
		t.Fatalf("Expected 3 tokens, got %d", len(tokens))
	}
	for i, want := range []string{"a", "b", "c"} {
		if tokens[i].Text != want {
			t.Errorf("Token %d: expected %q, got %q", i, want, tokens[i].Text)
		}
	}
	if doc.PageCount() != 2 {
		t.Errorf("Expected 2 pages, got %d", doc.PageCount())
	}
}

func TestDocumentEmpty(t *testing.T) {
	doc := NewDocument("")
	if len(doc.Tokens()) != 0 {
		t.Error("Expected no tokens")
	}
}

func TestPageHead(t *testing.T) {
	p := NewPage(1, 1, 1)
	for i := 0; i < 5; i++ {
		p.AddToken(NewToken("t", BBox{}, 0))
	}
	if got := len(p.Head(3)); got != 3 {
		t.Errorf("Expected 3 tokens, got %d", got)
	}
	if got := len(p.Head(50)); got != 5 {
		t.Errorf("Expected 5 tokens, got %d", got)
	}
}

func TestDocumentClampBBoxes(t *testing.T) {
	doc := NewDocument("x")
	p := NewPage(1, 1, 1)
	p.AddToken(NewToken("t", NewBBox(-1, 5, 2000, 10), 0))
	doc.AddPage(p)
	doc.ClampBBoxes(1000)
	if got := doc.Pages[0].Tokens[0].BBox; got != (BBox{0, 5, 1000, 10}) {
		t.Errorf("Unexpected clamped box %+v", got)
	}
}

func TestDocumentClone(t *testing.T) {
	doc := NewDocument("x")
	p := NewPage(10, 10, 1)
	p.AddToken(NewToken("a", NewBBox(0, 0, 1, 1), 0))
	p.AddToken(NewToken("b", NewBBox(2, 0, 3, 1), 0))
	doc.AddPage(p)
	doc.RawText = "a b"

	cp := doc.Clone()
	cp.Pages[0].Tokens[0].Set(MetaColumn, 1)
	cp.Pages[0].Tokens[0], cp.Pages[0].Tokens[1] = cp.Pages[0].Tokens[1], cp.Pages[0].Tokens[0]
	cp.Pages[0].Tokens = cp.Pages[0].Tokens[:1]
	cp.RawText = ""

	if len(doc.Pages[0].Tokens) != 2 || doc.Pages[0].Tokens[0].Text != "a" || doc.RawText != "a b" {
		t.Errorf("Original changed through clone: %+v", doc.Pages[0].Tokens)
	}
	if _, ok := doc.Pages[0].Tokens[0].Column(); ok {
		t.Error("Expected original metadata to be untouched")
	}
}
