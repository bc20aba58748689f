package model

// DefaultScale is the upper bound of the normalized coordinate space.
const DefaultScale = 1000

// BBox represents a bounding box in normalized page coordinates.
// The origin is the top-left corner of the page; Y grows downwards.
type BBox struct {
	X0 int `json:"x0"` // Left
	Y0 int `json:"y0"` // Top
	X1 int `json:"x1"` // Right
	Y1 int `json:"y1"` // Bottom
}

// NewBBox creates a bounding box from its four edges
func NewBBox(x0, y0, x1, y1 int) BBox {
	return BBox{X0: x0, Y0: y0, X1: x1, Y1: y1}
}

// NormalizeBBox converts a box given in page units (points or pixels, origin
// top-left) into the normalized coordinate space. Coordinates are clamped to
// the page before scaling. A zero page dimension yields zero coordinates on
// that axis.
func NormalizeBBox(x0, top, x1, bottom, pageWidth, pageHeight float64, scale int) BBox {
	x0 = clampFloat(x0, 0, pageWidth)
	x1 = clampFloat(x1, 0, pageWidth)
	top = clampFloat(top, 0, pageHeight)
	bottom = clampFloat(bottom, 0, pageHeight)

	return BBox{
		X0: scaleCoord(x0, pageWidth, scale),
		Y0: scaleCoord(top, pageHeight, scale),
		X1: scaleCoord(x1, pageWidth, scale),
		Y1: scaleCoord(bottom, pageHeight, scale),
	}
}

// Clamp returns the box with every coordinate limited to [0, scale]
func (b BBox) Clamp(scale int) BBox {
	return BBox{
		X0: clampInt(b.X0, 0, scale),
		Y0: clampInt(b.Y0, 0, scale),
		X1: clampInt(b.X1, 0, scale),
		Y1: clampInt(b.Y1, 0, scale),
	}
}

// Width returns the horizontal extent of the box
func (b BBox) Width() int {
	return b.X1 - b.X0
}

// Height returns the vertical extent of the box
func (b BBox) Height() int {
	return b.Y1 - b.Y0
}

// CenterX returns the horizontal center of the box
func (b BBox) CenterX() float64 {
	return float64(b.X0+b.X1) / 2.0
}

// IsValid returns true if every coordinate lies inside [0, scale]
func (b BBox) IsValid(scale int) bool {
	return b == b.Clamp(scale)
}

// AsSlice returns the box as [x0, y0, x1, y1], the order model inputs expect
func (b BBox) AsSlice() []int {
	return []int{b.X0, b.Y0, b.X1, b.Y1}
}

func scaleCoord(v, extent float64, scale int) int {
	if extent <= 0 {
		return 0
	}
	return int(float64(scale) * v / extent)
}

func clampFloat(v, lo, hi float64) float64 {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
