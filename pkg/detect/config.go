// Package detect implements the frame-analysis pipeline: per-threshold HSV
// masking with morphological cleanup, contour extraction and geometric
// scoring, and the weighted decision that classifies a room as lit, partially
// lit or dark.
package detect

// BulbRule decides whether a detected region looks like a light source.
// The constants are empirically tuned; they are exposed as configuration
// rather than re-derived.
type BulbRule struct {
	MinArea        float64 `json:"min_area"`
	MinBrightness  float64 `json:"min_brightness"`
	MinAspectRatio float64 `json:"min_aspect_ratio"`
	MaxAspectRatio float64 `json:"max_aspect_ratio"`
	MinCircularity float64 `json:"min_circularity"`
}

// Classify applies the four-way conjunction to a region's geometric features.
func (r BulbRule) Classify(area, brightness, aspectRatio, circularity float64) bool {
	return area > r.MinArea &&
		brightness > r.MinBrightness &&
		aspectRatio >= r.MinAspectRatio && aspectRatio <= r.MaxAspectRatio &&
		circularity > r.MinCircularity
}

// Config holds the tunable constants of the analysis pipeline.
type Config struct {
	// MinContourArea filters out contours at or below this pixel count.
	MinContourArea float64 `json:"min_contour_area"`

	// Bulb is the geometric rule for the per-region light-source call.
	Bulb BulbRule `json:"bulb"`

	// Decision fusion weights; expected to sum to 1.
	BrightnessWeight float64 `json:"brightness_weight"`
	AreaWeight       float64 `json:"area_weight"`
	ContourWeight    float64 `json:"contour_weight"`

	// ContourNorm is the region count mapped to a full contour score.
	ContourNorm float64 `json:"contour_norm"`

	// OnThreshold and PartialThreshold split the final score into
	// LIGHTS_ON (> OnThreshold), PARTIAL_LIGHTING (> PartialThreshold)
	// and LIGHTS_OFF.
	OnThreshold      float64 `json:"on_threshold"`
	PartialThreshold float64 `json:"partial_threshold"`

	// HistorySize bounds the diagnostic detection history.
	HistorySize int `json:"history_size"`
}

// DefaultConfig returns the pipeline constants used by the stock detector.
func DefaultConfig() Config {
	return Config{
		MinContourArea: 50,
		Bulb: BulbRule{
			MinArea:        100,
			MinBrightness:  150,
			MinAspectRatio: 0.5,
			MaxAspectRatio: 2.0,
			MinCircularity: 0.3,
		},
		BrightnessWeight: 0.5,
		AreaWeight:       0.3,
		ContourWeight:    0.2,
		ContourNorm:      10,
		OnThreshold:      0.6,
		PartialThreshold: 0.3,
		HistorySize:      10,
	}
}
