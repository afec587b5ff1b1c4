package detect

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/menta2k/light-detector/pkg/types"
)

func TestAnalyzeNoFrame(t *testing.T) {
	a := NewAnalyzer()

	if _, err := a.Analyze(nil); err != ErrNoFrame {
		t.Errorf("Analyze(nil) error = %v, want ErrNoFrame", err)
	}
	if _, err := a.Analyze(&types.Frame{}); err != ErrNoFrame {
		t.Errorf("Analyze(empty) error = %v, want ErrNoFrame", err)
	}
}

func TestAnalyzeAllBlackFrame(t *testing.T) {
	a := NewAnalyzer()
	result, err := a.Analyze(types.NewFrame(100, 100))
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if result.FrameAnalysis.AverageBrightness != 0 {
		t.Errorf("average brightness = %v, want 0", result.FrameAnalysis.AverageBrightness)
	}
	if result.DetectionSummary.TotalContoursFound != 0 {
		t.Errorf("total contours = %d, want 0", result.DetectionSummary.TotalContoursFound)
	}
	if result.DetectionSummary.DecisionFactors.FinalScore != 0 {
		t.Errorf("final score = %v, want 0", result.DetectionSummary.DecisionFactors.FinalScore)
	}
	if result.RoomStatus != types.RoomLightsOff || result.Signal != types.SignalNo {
		t.Errorf("status = %v, signal = %v, want LIGHTS_OFF/NO", result.RoomStatus, result.Signal)
	}
	if len(result.ThresholdAnalysis) != 3 {
		t.Errorf("threshold analysis entries = %d, want 3", len(result.ThresholdAnalysis))
	}
	for name, tr := range result.ThresholdAnalysis {
		if tr.ValidContours != 0 {
			t.Errorf("%s valid contours = %d, want 0", name, tr.ValidContours)
		}
	}
}

func TestAnalyzeAllWhiteFrame(t *testing.T) {
	f := types.NewFrame(100, 100)
	fillRect(f, 0, 0, 100, 100, 255, 255, 255)

	a := NewAnalyzer()
	result, err := a.Analyze(f)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	factors := result.DetectionSummary.DecisionFactors
	if factors.BrightnessScore != 1 {
		t.Errorf("brightness score = %v, want 1", factors.BrightnessScore)
	}
	if factors.AreaScore != 1 {
		t.Errorf("area score = %v, want 1 (full frame coverage)", factors.AreaScore)
	}
	if factors.ContourScore != 0.1 {
		t.Errorf("contour score = %v, want 0.1 (one region)", factors.ContourScore)
	}
	if math.Abs(factors.FinalScore-0.82) > 1e-9 {
		t.Errorf("final score = %v, want 0.82", factors.FinalScore)
	}
	if result.RoomStatus != types.RoomLightsOn || result.Signal != types.SignalYes {
		t.Errorf("status = %v, signal = %v, want LIGHTS_ON/YES", result.RoomStatus, result.Signal)
	}

	white := result.ThresholdAnalysis["bright_white"]
	if white.ValidContours != 1 {
		t.Errorf("bright_white valid contours = %d, want 1", white.ValidContours)
	}
	if result.DetectionSummary.AreaPercentage != 100 {
		t.Errorf("area percentage = %v, want 100", result.DetectionSummary.AreaPercentage)
	}
	if len(result.DetectedLightSources) != 1 {
		t.Fatalf("light sources = %d, want 1", len(result.DetectedLightSources))
	}
	if result.DetectedLightSources[0].Confidence != "high" {
		t.Errorf("confidence = %q, want high", result.DetectedLightSources[0].Confidence)
	}
}

func TestAnalyzeBulbConfidence(t *testing.T) {
	// a compact bright disc reads as a likely bulb, a long bright bar does not
	f := types.NewFrame(100, 100)
	const r = 12
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			dx, dy := x-30, y-30
			if dx*dx+dy*dy <= r*r {
				f.SetBGR(x, y, 255, 255, 255)
			}
		}
	}
	fillRect(f, 20, 70, 36, 8, 255, 255, 255)

	a := NewAnalyzer()
	result, err := a.Analyze(f)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	white := result.ThresholdAnalysis["bright_white"]
	if white.ValidContours != 2 {
		t.Fatalf("valid contours = %d, want 2", white.ValidContours)
	}

	disc, bar := white.Regions[0], white.Regions[1]
	if !disc.IsLikelyBulb {
		t.Errorf("disc region should be a likely bulb: %+v", disc)
	}
	if bar.IsLikelyBulb {
		t.Errorf("elongated region should not be a likely bulb: %+v", bar)
	}
	if bar.AspectRatio != 4.5 {
		t.Errorf("bar aspect ratio = %v, want 4.5", bar.AspectRatio)
	}

	if len(result.DetectedLightSources) != 2 {
		t.Fatalf("light sources = %d, want 2", len(result.DetectedLightSources))
	}
	if result.DetectedLightSources[0].Confidence != "high" ||
		result.DetectedLightSources[1].Confidence != "medium" {
		t.Errorf("confidences = %q, %q, want high, medium",
			result.DetectedLightSources[0].Confidence, result.DetectedLightSources[1].Confidence)
	}
}

func TestAnalyzeDeterministic(t *testing.T) {
	f := types.NewFrame(80, 60)
	fillRect(f, 10, 10, 20, 16, 255, 255, 255)
	fillRect(f, 50, 20, 14, 14, 0, 165, 255)
	fillRect(f, 30, 40, 10, 10, 255, 128, 0)

	a := NewAnalyzer()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	first, err := a.analyzeAt(f, now)
	if err != nil {
		t.Fatalf("first analysis failed: %v", err)
	}
	second, err := a.analyzeAt(f, now)
	if err != nil {
		t.Fatalf("second analysis failed: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("identical frames produced different results")
	}
}

func TestAnalyzeTimestampFormat(t *testing.T) {
	a := NewAnalyzer()
	now := time.Date(2025, 6, 1, 9, 5, 7, 0, time.UTC)

	result, err := a.analyzeAt(types.NewFrame(20, 20), now)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if result.Timestamp != "2025-06-01 09:05:07" {
		t.Errorf("timestamp = %q, want %q", result.Timestamp, "2025-06-01 09:05:07")
	}
}

func TestAnalyzeScoresAlwaysInRange(t *testing.T) {
	frames := []*types.Frame{
		types.NewFrame(10, 10),
		types.NewFrame(1, 1),
		func() *types.Frame {
			f := types.NewFrame(50, 50)
			fillRect(f, 0, 0, 50, 50, 255, 255, 255)
			return f
		}(),
		func() *types.Frame {
			f := types.NewFrame(64, 48)
			fillRect(f, 0, 0, 32, 48, 128, 128, 128)
			fillRect(f, 32, 0, 32, 48, 0, 165, 255)
			return f
		}(),
	}

	a := NewAnalyzer()
	for i, f := range frames {
		result, err := a.Analyze(f)
		if err != nil {
			t.Fatalf("frame %d: Analyze failed: %v", i, err)
		}
		factors := result.DetectionSummary.DecisionFactors
		for name, v := range map[string]float64{
			"brightness": factors.BrightnessScore,
			"area":       factors.AreaScore,
			"contour":    factors.ContourScore,
			"final":      factors.FinalScore,
		} {
			if v < 0 || v > 1 {
				t.Errorf("frame %d: %s score %v outside [0,1]", i, name, v)
			}
		}
	}
}
