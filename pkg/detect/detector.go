package detect

import (
	"errors"
	"time"

	"github.com/menta2k/light-detector/pkg/colorspace"
	"github.com/menta2k/light-detector/pkg/types"
)

// ErrNoFrame is returned when analysis is requested without a usable frame.
var ErrNoFrame = errors.New("no frame provided")

// Analyzer runs the full frame-analysis pipeline. It holds only
// configuration; every Analyze call is pure computation over the frame and
// allocates fresh outputs, so one Analyzer may be shared across goroutines.
type Analyzer struct {
	cfg Config
}

// NewAnalyzer creates an analyzer with the stock pipeline constants.
func NewAnalyzer() *Analyzer {
	return &Analyzer{cfg: DefaultConfig()}
}

// NewAnalyzerWithConfig creates an analyzer with custom pipeline constants.
func NewAnalyzerWithConfig(cfg Config) *Analyzer {
	return &Analyzer{cfg: cfg}
}

// Config returns the analyzer's pipeline constants.
func (a *Analyzer) Config() Config {
	return a.cfg
}

// Analyze classifies the room lighting visible in a single frame.
// It returns ErrNoFrame for a nil or empty frame; no partial result is
// produced on failure.
func (a *Analyzer) Analyze(frame *types.Frame) (*types.DetectionResult, error) {
	return a.analyzeAt(frame, time.Now())
}

// analyzeAt is Analyze with an injected clock, for deterministic tests.
func (a *Analyzer) analyzeAt(frame *types.Frame, now time.Time) (*types.DetectionResult, error) {
	if frame.IsEmpty() {
		return nil, ErrNoFrame
	}

	gray, err := colorspace.Grayscale(frame)
	if err != nil {
		return nil, ErrNoFrame
	}
	hsv, err := colorspace.ToHSV(frame)
	if err != nil {
		return nil, ErrNoFrame
	}

	stats := computeStats(gray)

	// Evaluate every color band independently; specs are ordered so the
	// concatenated region list is deterministic.
	thresholdResults := make(map[string]types.ThresholdResult, len(ThresholdSpecs))
	var allRegions []types.DetectedRegion
	totalBrightness := 0.0
	totalArea := 0.0

	for _, spec := range ThresholdSpecs {
		tr := analyzeThreshold(spec, hsv, gray, a.cfg)
		thresholdResults[spec.Name] = tr
		allRegions = append(allRegions, tr.Regions...)
		totalBrightness += tr.TotalBrightness
		totalArea += tr.TotalArea
	}

	factors, status, signal := decide(stats, len(allRegions), totalArea, a.cfg)

	return assemble(now, stats, thresholdResults, allRegions, totalBrightness, totalArea, factors, status, signal), nil
}

// assemble composes the immutable detection result record.
func assemble(now time.Time, stats types.FrameStats, thresholdResults map[string]types.ThresholdResult,
	regions []types.DetectedRegion, totalBrightness, totalArea float64,
	factors types.DecisionFactors, status types.RoomStatus, signal types.Signal) *types.DetectionResult {

	areaPercentage := 0.0
	if stats.TotalPixels > 0 {
		areaPercentage = totalArea / float64(stats.TotalPixels) * 100
	}

	sources := make([]types.LightSource, 0, len(regions))
	for _, r := range regions {
		confidence := "medium"
		if r.IsLikelyBulb {
			confidence = "high"
		}
		sources = append(sources, types.LightSource{
			Position:   r.Position,
			Size:       r.Size,
			Brightness: r.Brightness,
			Confidence: confidence,
			Type:       r.ThresholdType,
		})
	}

	return &types.DetectionResult{
		Timestamp:         now.Format(types.TimestampFormat),
		FrameAnalysis:     stats,
		ThresholdAnalysis: thresholdResults,
		DetectionSummary: types.DetectionSummary{
			TotalContoursFound: len(regions),
			TotalBrightness:    totalBrightness,
			TotalAreaCovered:   totalArea,
			AreaPercentage:     areaPercentage,
			DecisionFactors:    factors,
		},
		RoomStatus:           status,
		Signal:               signal,
		DetectedLightSources: sources,
	}
}
