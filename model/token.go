package model

import "strings"

// Well-known metadata keys written by ingestion and layout stages.
const (
	MetaLine       = "line"       // explicit line index (DOCX/HTML ingestion)
	MetaColumn     = "column_id"  // column assignment from layout analysis
	MetaConfidence = "confidence" // OCR confidence
	MetaUpright    = "upright"    // PDF glyph orientation
)

// Metadata is an open key/value bag attached to each token
type Metadata map[string]any

// Token represents a single positioned word extracted from a page
type Token struct {
	Text     string   `json:"text"`
	BBox     BBox     `json:"bbox"`
	Page     int      `json:"page"` // 0-based page index
	Metadata Metadata `json:"metadata,omitempty"`
}

// NewToken creates a token with an empty metadata map
func NewToken(text string, bbox BBox, page int) Token {
	return Token{Text: text, BBox: bbox, Page: page, Metadata: Metadata{}}
}

// IsEmpty returns true if the token has no text after trimming
func (t Token) IsEmpty() bool {
	return strings.TrimSpace(t.Text) == ""
}

// Set stores a metadata value, allocating the map if needed
func (t *Token) Set(key string, value any) {
	if t.Metadata == nil {
		t.Metadata = Metadata{}
	}
	t.Metadata[key] = value
}

// Line returns the explicit line index, if ingestion recorded one
func (t Token) Line() (int, bool) {
	return t.Metadata.Int(MetaLine)
}

// Column returns the assigned column, if layout analysis ran
func (t Token) Column() (int, bool) {
	return t.Metadata.Int(MetaColumn)
}

// ColumnOrZero returns the assigned column or 0
func (t Token) ColumnOrZero() int {
	c, _ := t.Column()
	return c
}

// Confidence returns the OCR confidence, if present
func (t Token) Confidence() (float64, bool) {
	return t.Metadata.Float(MetaConfidence)
}

// Int reads an integer-valued key. Values decoded from JSON arrive as
// float64 and are accepted when they hold a whole number.
func (m Metadata) Int(key string) (int, bool) {
	v, ok := m[key]
	if !ok || v == nil {
		return 0, false
	}
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		if n == float64(int(n)) {
			return int(n), true
		}
	case float32:
		if n == float32(int(n)) {
			return int(n), true
		}
	}
	return 0, false
}

// Float reads a numeric key as float64
func (m Metadata) Float(key string) (float64, bool) {
	v, ok := m[key]
	if !ok || v == nil {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// Clone returns a shallow copy of the metadata map
func (m Metadata) Clone() Metadata {
	if m == nil {
		return nil
	}
	out := make(Metadata, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// TokenEmbedding links a token to its contextual embedding
type TokenEmbedding struct {
	Token     Token
	Embedding []float64
	Logits    []float64
}
