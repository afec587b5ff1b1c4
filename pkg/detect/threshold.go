package detect

import (
	"math"

	"github.com/menta2k/light-detector/pkg/colorspace"
	"github.com/menta2k/light-detector/pkg/types"
)

// HSVBound is one corner of an inclusive HSV range.
type HSVBound struct {
	H uint8 `json:"h"`
	S uint8 `json:"s"`
	V uint8 `json:"v"`
}

// ThresholdSpec is one fixed color-range specification for light detection.
type ThresholdSpec struct {
	Name        string   `json:"name"`
	Lower       HSVBound `json:"lower"`
	Upper       HSVBound `json:"upper"`
	Description string   `json:"description"`
}

// ThresholdSpecs is the fixed, ordered set of color bands the analyzer
// evaluates. Three independent bands approximate common light-source colors;
// running all of them and merging afterwards avoids committing to one color
// model. The order fixes the ordering of concatenated region output.
var ThresholdSpecs = []ThresholdSpec{
	{
		Name:        "bright_white",
		Lower:       HSVBound{H: 0, S: 0, V: 200},
		Upper:       HSVBound{H: 180, S: 30, V: 255},
		Description: "Bright white light (high value, low saturation)",
	},
	{
		Name:        "warm_light",
		Lower:       HSVBound{H: 10, S: 50, V: 150},
		Upper:       HSVBound{H: 25, S: 255, V: 255},
		Description: "Warm/yellow light (orange-yellow hue)",
	},
	{
		Name:        "cool_light",
		Lower:       HSVBound{H: 100, S: 50, V: 150},
		Upper:       HSVBound{H: 130, S: 255, V: 255},
		Description: "Cool/blue light (blue hue)",
	},
}

// inRange builds the binary mask of pixels whose HSV triple lies within
// [lower, upper] componentwise, bounds inclusive.
func inRange(hsv *colorspace.HSV, lower, upper HSVBound) *binaryMask {
	m := newBinaryMask(hsv.Width, hsv.Height)
	for i, j := 0, 0; i < len(hsv.Pix); i, j = i+3, j+1 {
		h, s, v := hsv.Pix[i], hsv.Pix[i+1], hsv.Pix[i+2]
		if h >= lower.H && h <= upper.H &&
			s >= lower.S && s <= upper.S &&
			v >= lower.V && v <= upper.V {
			m.pix[j] = 255
		}
	}
	return m
}

// analyzeThreshold runs one color band over the frame views: mask, clean,
// extract contours, then score every contour above the minimum area.
func analyzeThreshold(spec ThresholdSpec, hsv *colorspace.HSV, gray *colorspace.Gray, cfg Config) types.ThresholdResult {
	mask := cleanup(inRange(hsv, spec.Lower, spec.Upper))
	contours := findContours(mask)

	result := types.ThresholdResult{
		Description: spec.Description,
		Regions:     []types.DetectedRegion{},
	}
	result.ContoursFound = len(contours)

	for _, c := range contours {
		if c.area <= cfg.MinContourArea {
			continue
		}

		brightness, ok := regionBrightness(gray, c)
		if !ok {
			continue
		}

		aspectRatio := 0.0
		if c.h > 0 {
			aspectRatio = float64(c.w) / float64(c.h)
		}

		circularity := 0.0
		if c.perimeter > 0 {
			circularity = 4 * math.Pi * c.area / (c.perimeter * c.perimeter)
		}

		region := types.DetectedRegion{
			Position:      types.Point{X: c.x, Y: c.y},
			Size:          types.Dimensions{Width: c.w, Height: c.h},
			Area:          c.area,
			Brightness:    brightness,
			AspectRatio:   aspectRatio,
			Circularity:   circularity,
			IsLikelyBulb:  cfg.Bulb.Classify(c.area, brightness, aspectRatio, circularity),
			ThresholdType: spec.Name,
		}

		result.Regions = append(result.Regions, region)
		result.TotalArea += c.area
		result.TotalBrightness += brightness
	}

	result.ValidContours = len(result.Regions)
	if result.ValidContours > 0 {
		result.AverageBrightness = result.TotalBrightness / float64(result.ValidContours)
	}
	return result
}

// regionBrightness averages the grayscale intensities over the contour's
// bounding box. A degenerate box yields no sample rather than an error.
func regionBrightness(gray *colorspace.Gray, c contour) (float64, bool) {
	if c.w <= 0 || c.h <= 0 {
		return 0, false
	}

	sum := 0.0
	for y := c.y; y < c.y+c.h; y++ {
		for x := c.x; x < c.x+c.w; x++ {
			sum += float64(gray.At(x, y))
		}
	}
	return sum / float64(c.w*c.h), true
}
