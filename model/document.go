package model

// Document represents an ingested resume ready for structuring
type Document struct {
	Pages    []*Page `json:"pages"`
	RawText  string  `json:"raw_text"`
	FilePath string  `json:"file_path"`
}

// NewDocument creates a new empty document for the given source path
func NewDocument(filePath string) *Document {
	return &Document{
		Pages:    make([]*Page, 0),
		FilePath: filePath,
	}
}

// AddPage adds a page to the document
func (d *Document) AddPage(page *Page) {
	d.Pages = append(d.Pages, page)
}

// PageCount returns the total number of pages
func (d *Document) PageCount() int {
	return len(d.Pages)
}

// Tokens returns every token across all pages, in page order
func (d *Document) Tokens() []Token {
	var n int
	for _, page := range d.Pages {
		n += len(page.Tokens)
	}
	tokens := make([]Token, 0, n)
	for _, page := range d.Pages {
		tokens = append(tokens, page.Tokens...)
	}
	return tokens
}

// TokenCount returns the number of tokens across all pages
func (d *Document) TokenCount() int {
	var n int
	for _, page := range d.Pages {
		n += len(page.Tokens)
	}
	return n
}

// ClampBBoxes limits every token box to [0, scale] in place
func (d *Document) ClampBBoxes(scale int) {
	for _, page := range d.Pages {
		for i := range page.Tokens {
			page.Tokens[i].BBox = page.Tokens[i].BBox.Clamp(scale)
		}
	}
}

// Clone returns a deep copy of the document. Pages, token slices and token
// metadata maps are all copied, so layout stages can work on the clone.
func (d *Document) Clone() *Document {
	out := &Document{
		Pages:    make([]*Page, 0, len(d.Pages)),
		RawText:  d.RawText,
		FilePath: d.FilePath,
	}
	for _, page := range d.Pages {
		cp := &Page{Metadata: page.Metadata, Tokens: make([]Token, len(page.Tokens))}
		for i, tok := range page.Tokens {
			tok.Metadata = tok.Metadata.Clone()
			cp.Tokens[i] = tok
		}
		out.Pages = append(out.Pages, cp)
	}
	return out
}
