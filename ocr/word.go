package ocr

import "image"

// Word is a single recognized word with its pixel rectangle.
type Word struct {
	Text       string
	Box        image.Rectangle
	Confidence float64 // 0-100 as reported by Tesseract
}

// Words drops entries with empty text or an empty rectangle.
func Words(in []Word) []Word {
	out := make([]Word, 0, len(in))
	for _, w := range in {
		if w.Text == "" || w.Box.Empty() {
			continue
		}
		out = append(out, w)
	}
	return out
}
