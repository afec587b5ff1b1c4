// Package colorspace derives grayscale and HSV views from a BGR frame.
//
// The conversions follow the common 8-bit video conventions: grayscale uses
// the BT.601 luma weights, HSV stores hue halved into [0,179] so it fits a
// byte, with saturation and value in [0,255]. Both transforms are pure and
// allocate fresh output buffers.
package colorspace

import (
	"errors"
	"math"

	"github.com/menta2k/light-detector/pkg/types"
)

// ErrEmptyFrame is returned when a view is requested for a nil or empty frame.
var ErrEmptyFrame = errors.New("no frame provided")

// Gray is a single-channel intensity view of a frame.
type Gray struct {
	Width  int
	Height int
	Pix    []uint8 // len = Width*Height
}

// At returns the intensity at (x, y).
func (g *Gray) At(x, y int) uint8 {
	return g.Pix[y*g.Width+x]
}

// HSV is a hue/saturation/value view of a frame.
// Hue is in [0,179], saturation and value in [0,255].
type HSV struct {
	Width  int
	Height int
	Pix    []uint8 // len = Width*Height*3, HSV interleaved
}

// At returns the hue, saturation and value at (x, y).
func (v *HSV) At(x, y int) (h, s, val uint8) {
	i := (y*v.Width + x) * 3
	return v.Pix[i], v.Pix[i+1], v.Pix[i+2]
}

// Grayscale converts a BGR frame to its grayscale intensity view.
func Grayscale(f *types.Frame) (*Gray, error) {
	if f.IsEmpty() {
		return nil, ErrEmptyFrame
	}

	g := &Gray{Width: f.Width, Height: f.Height, Pix: make([]uint8, f.Width*f.Height)}
	for i, j := 0, 0; j < len(g.Pix); j++ {
		b := float64(f.Pix[i])
		gr := float64(f.Pix[i+1])
		r := float64(f.Pix[i+2])
		g.Pix[j] = uint8(math.Round(0.299*r + 0.587*gr + 0.114*b))
		i += 3
	}
	return g, nil
}

// ToHSV converts a BGR frame to its hue/saturation/value view.
func ToHSV(f *types.Frame) (*HSV, error) {
	if f.IsEmpty() {
		return nil, ErrEmptyFrame
	}

	v := &HSV{Width: f.Width, Height: f.Height, Pix: make([]uint8, f.Width*f.Height*3)}
	for i := 0; i < len(f.Pix); i += 3 {
		h, s, val := convertPixel(f.Pix[i], f.Pix[i+1], f.Pix[i+2])
		v.Pix[i], v.Pix[i+1], v.Pix[i+2] = h, s, val
	}
	return v, nil
}

// convertPixel maps one BGR triple to 8-bit HSV.
func convertPixel(b, g, r uint8) (uint8, uint8, uint8) {
	maxC := max(b, max(g, r))
	minC := min(b, min(g, r))
	v := maxC
	delta := float64(maxC) - float64(minC)

	var s uint8
	if maxC > 0 {
		s = uint8(math.Round(255 * delta / float64(maxC)))
	}

	if delta == 0 {
		return 0, s, v
	}

	var hue float64
	switch maxC {
	case r:
		hue = 60 * (float64(g) - float64(b)) / delta
	case g:
		hue = 120 + 60*(float64(b)-float64(r))/delta
	default:
		hue = 240 + 60*(float64(r)-float64(g))/delta
	}
	if hue < 0 {
		hue += 360
	}

	h := int(math.Round(hue / 2))
	if h >= 180 {
		h -= 180
	}
	return uint8(h), s, v
}
