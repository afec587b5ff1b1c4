package detect

import (
	"gonum.org/v1/gonum/stat"

	"github.com/menta2k/light-detector/pkg/colorspace"
	"github.com/menta2k/light-detector/pkg/types"
)

// computeStats calculates global brightness metrics over a grayscale view.
func computeStats(gray *colorspace.Gray) types.FrameStats {
	xs := make([]float64, len(gray.Pix))
	maxB, minB := 0.0, 255.0
	for i, p := range gray.Pix {
		v := float64(p)
		xs[i] = v
		if v > maxB {
			maxB = v
		}
		if v < minB {
			minB = v
		}
	}

	return types.FrameStats{
		Dimensions:        types.Dimensions{Width: gray.Width, Height: gray.Height},
		TotalPixels:       gray.Width * gray.Height,
		AverageBrightness: stat.Mean(xs, nil),
		BrightnessStd:     stat.PopStdDev(xs, nil),
		MaxBrightness:     maxB,
		MinBrightness:     minB,
	}
}
