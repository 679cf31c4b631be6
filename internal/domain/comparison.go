package domain

import (
	"image"
	"image/color"
)

// Comparison defaults
const (
	DefaultRenderWidth   = 700
	DefaultDiffThreshold = 25
	DefaultDiffAlpha     = 160
)

// Notes attached to comparison rows with a missing side
const (
	NoteMissingRight    = "No matching page in right document"
	NoteMissingLeft     = "No matching page in left document"
	NoteNoCorresponding = "No corresponding pages"
)

// ComparisonPage is one row of a comparison run: the two rendered pages at
// the same index and, when both exist, their difference mask and overlay.
type ComparisonPage struct {
	PageIndex int
	Left      *image.RGBA
	Right     *image.RGBA
	Mask      *DiffMask
	Overlay   *image.NRGBA
	Note      string
}

// HasDiff reports whether a mask was computed for this row
func (p ComparisonPage) HasDiff() bool {
	return p.Mask != nil
}

// DiffMask marks the pixels where two bitmaps differ visibly
type DiffMask struct {
	Width  int
	Height int
	bits   []bool
}

// NewDiffMask allocates an empty mask
func NewDiffMask(width, height int) *DiffMask {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &DiffMask{
		Width:  width,
		Height: height,
		bits:   make([]bool, width*height),
	}
}

// Set marks pixel (x, y) as differing
func (m *DiffMask) Set(x, y int) {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return
	}
	m.bits[y*m.Width+x] = true
}

// Differs reports whether pixel (x, y) was flagged
func (m *DiffMask) Differs(x, y int) bool {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return false
	}
	return m.bits[y*m.Width+x]
}

// Count is the number of flagged pixels
func (m *DiffMask) Count() int {
	n := 0
	for _, b := range m.bits {
		if b {
			n++
		}
	}
	return n
}

// Overlay paints flagged pixels red with the given alpha and leaves every
// other pixel fully transparent.
func (m *DiffMask) Overlay(alpha uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, m.Width, m.Height))
	red := color.NRGBA{R: 255, A: alpha}
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if m.bits[y*m.Width+x] {
				img.SetNRGBA(x, y, red)
			}
		}
	}
	return img
}
