package model

// PageMetadata holds general per-page information
type PageMetadata struct {
	Width     int    `json:"width"`    // Page width in source units
	Height    int    `json:"height"`   // Page height in source units
	Number    int    `json:"number"`   // 1-indexed page number
	Rotation  int    `json:"rotation"` // Rotation angle (0, 90, 180, 270)
	ImagePath string `json:"image_path,omitempty"`
}

// Page represents a single page of an ingested document
type Page struct {
	Metadata PageMetadata `json:"metadata"`
	Tokens   []Token      `json:"tokens"`
}

// NewPage creates a new page with given dimensions
func NewPage(width, height, number int) *Page {
	return &Page{
		Metadata: PageMetadata{Width: width, Height: height, Number: number},
		Tokens:   make([]Token, 0),
	}
}

// AddToken appends a token to the page
func (p *Page) AddToken(tok Token) {
	p.Tokens = append(p.Tokens, tok)
}

// Head returns at most n tokens from the start of the page
func (p *Page) Head(n int) []Token {
	if n > len(p.Tokens) {
		n = len(p.Tokens)
	}
	out := make([]Token, n)
	copy(out, p.Tokens[:n])
	return out
}
