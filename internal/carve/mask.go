package carve

import "fmt"

// Mask is a binary silhouette image: true marks foreground pixels.
// Row-major storage, same pixel dimensions as the source image.
type Mask struct {
	Width  int
	Height int
	bits   []bool
}

// NewMask returns an all-background mask of the given dimensions.
func NewMask(width, height int) (*Mask, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("carve: invalid mask dimensions %dx%d", width, height)
	}
	return &Mask{Width: width, Height: height, bits: make([]bool, width*height)}, nil
}

// At reports whether pixel (x, y) is foreground. Callers must bounds
// check first; x is the column, y the row.
func (m *Mask) At(x, y int) bool { return m.bits[y*m.Width+x] }

// Set marks pixel (x, y) as foreground (v=true) or background.
func (m *Mask) Set(x, y int, v bool) { m.bits[y*m.Width+x] = v }

// Fill sets every pixel to v.
func (m *Mask) Fill(v bool) {
	for i := range m.bits {
		m.bits[i] = v
	}
}

// ForegroundCount returns the number of foreground pixels.
func (m *Mask) ForegroundCount() int {
	n := 0
	for _, b := range m.bits {
		if b {
			n++
		}
	}
	return n
}
