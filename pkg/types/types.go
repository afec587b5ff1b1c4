package types

// Signal is the tri-state light-detection verdict.
type Signal string

const (
	SignalYes     Signal = "YES"
	SignalPartial Signal = "PARTIAL"
	SignalNo      Signal = "NO"
	SignalUnknown Signal = "UNKNOWN"
)

// RoomStatus describes the overall lighting state of the room.
type RoomStatus string

const (
	RoomLightsOn        RoomStatus = "LIGHTS_ON"
	RoomPartialLighting RoomStatus = "PARTIAL_LIGHTING"
	RoomLightsOff       RoomStatus = "LIGHTS_OFF"
	RoomUnknown         RoomStatus = "UNKNOWN"
)

// TimestampFormat is the layout used for DetectionResult timestamps.
const TimestampFormat = "2006-01-02 15:04:05"

// Point is a pixel position within a frame.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Dimensions is a width/height pair in pixels.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// FrameStats holds global brightness metrics computed from the grayscale view.
type FrameStats struct {
	Dimensions        Dimensions `json:"dimensions"`
	TotalPixels       int        `json:"total_pixels"`
	AverageBrightness float64    `json:"average_brightness"`
	BrightnessStd     float64    `json:"brightness_std"`
	MaxBrightness     float64    `json:"max_brightness"`
	MinBrightness     float64    `json:"min_brightness"`
}

// DetectedRegion is one candidate light region extracted from a threshold mask.
// Immutable once computed.
type DetectedRegion struct {
	Position      Point      `json:"position"`
	Size          Dimensions `json:"size"`
	Area          float64    `json:"area"`
	Brightness    float64    `json:"brightness"`
	AspectRatio   float64    `json:"aspect_ratio"`
	Circularity   float64    `json:"circularity"`
	IsLikelyBulb  bool       `json:"is_likely_bulb"`
	ThresholdType string     `json:"threshold_type"`
}

// ThresholdResult aggregates the regions found for a single threshold spec.
type ThresholdResult struct {
	Description       string           `json:"description"`
	ContoursFound     int              `json:"contours_found"`
	ValidContours     int              `json:"valid_contours"`
	TotalArea         float64          `json:"total_area"`
	TotalBrightness   float64          `json:"total_brightness"`
	AverageBrightness float64          `json:"average_brightness"`
	Regions           []DetectedRegion `json:"contours"`
}

// DecisionFactors are the normalized score components, all in [0,1].
type DecisionFactors struct {
	BrightnessScore float64 `json:"brightness_score"`
	AreaScore       float64 `json:"area_score"`
	ContourScore    float64 `json:"contour_score"`
	FinalScore      float64 `json:"final_score"`
}

// DetectionSummary fuses the per-threshold aggregates into frame-level totals.
type DetectionSummary struct {
	TotalContoursFound int             `json:"total_contours_found"`
	TotalBrightness    float64         `json:"total_brightness"`
	TotalAreaCovered   float64         `json:"total_area_covered"`
	AreaPercentage     float64         `json:"area_percentage"`
	DecisionFactors    DecisionFactors `json:"decision_factors"`
}

// LightSource is the compact per-region view exposed to API consumers.
// Confidence is "high" for regions classified as likely bulbs, "medium" otherwise.
type LightSource struct {
	Position   Point      `json:"position"`
	Size       Dimensions `json:"size"`
	Brightness float64    `json:"brightness"`
	Confidence string     `json:"confidence"`
	Type       string     `json:"type"`
}

// DetectionResult is the complete analysis output for one frame.
// Created once per analysis call and never mutated afterwards.
type DetectionResult struct {
	Timestamp            string                     `json:"timestamp"`
	FrameAnalysis        FrameStats                 `json:"frame_analysis"`
	ThresholdAnalysis    map[string]ThresholdResult `json:"threshold_analysis"`
	DetectionSummary     DetectionSummary           `json:"detection_summary"`
	RoomStatus           RoomStatus                 `json:"room_status"`
	Signal               Signal                     `json:"signal"`
	DetectedLightSources []LightSource              `json:"detected_light_sources"`
}
