package types

import (
	"image"
	"image/color"
)

// Frame is a single decoded camera frame: 3 bytes per pixel in blue-green-red
// channel order, row-major. The analysis core borrows a frame for the duration
// of one call and never retains it.
type Frame struct {
	Width  int
	Height int
	Pix    []uint8 // len = Width*Height*3, BGR interleaved
}

// NewFrame allocates a zeroed (all black) frame.
func NewFrame(width, height int) *Frame {
	return &Frame{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*3),
	}
}

// FrameFromImage converts a stdlib image into a BGR frame.
func FrameFromImage(img image.Image) *Frame {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	f := NewFrame(width, height)

	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			f.Pix[i] = uint8(b >> 8)
			f.Pix[i+1] = uint8(g >> 8)
			f.Pix[i+2] = uint8(r >> 8)
			i += 3
		}
	}
	return f
}

// IsEmpty reports whether the frame has no pixel data.
func (f *Frame) IsEmpty() bool {
	return f == nil || f.Width <= 0 || f.Height <= 0 || len(f.Pix) < f.Width*f.Height*3
}

// BGRAt returns the blue, green and red channel values at (x, y).
func (f *Frame) BGRAt(x, y int) (b, g, r uint8) {
	i := (y*f.Width + x) * 3
	return f.Pix[i], f.Pix[i+1], f.Pix[i+2]
}

// SetBGR sets the pixel at (x, y).
func (f *Frame) SetBGR(x, y int, b, g, r uint8) {
	i := (y*f.Width + x) * 3
	f.Pix[i], f.Pix[i+1], f.Pix[i+2] = b, g, r
}

// Image converts the frame back to a stdlib RGBA image, for encoding.
func (f *Frame) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			b, g, r := f.BGRAt(x, y)
			img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return img
}
