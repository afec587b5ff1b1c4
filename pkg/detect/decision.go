package detect

import "github.com/menta2k/light-detector/pkg/types"

// decide fuses global brightness, aggregate region area and aggregate region
// count into a normalized score and the tri-state room classification.
// Deterministic: identical inputs always produce identical outputs.
func decide(stats types.FrameStats, regionCount int, totalArea float64, cfg Config) (types.DecisionFactors, types.RoomStatus, types.Signal) {
	frameArea := float64(stats.Dimensions.Width * stats.Dimensions.Height)

	brightnessScore := clamp01(stats.AverageBrightness / 255)

	areaScore := 0.0
	if frameArea > 0 {
		areaScore = clamp01(totalArea / frameArea)
	}

	contourScore := 0.0
	if cfg.ContourNorm > 0 {
		contourScore = clamp01(float64(regionCount) / cfg.ContourNorm)
	}

	finalScore := clamp01(cfg.BrightnessWeight*brightnessScore +
		cfg.AreaWeight*areaScore +
		cfg.ContourWeight*contourScore)

	factors := types.DecisionFactors{
		BrightnessScore: brightnessScore,
		AreaScore:       areaScore,
		ContourScore:    contourScore,
		FinalScore:      finalScore,
	}

	status, signal := classify(finalScore, cfg)
	return factors, status, signal
}

// classify maps a final score onto the room status. Boundaries are strict:
// a score of exactly OnThreshold is partial, exactly PartialThreshold is off.
func classify(finalScore float64, cfg Config) (types.RoomStatus, types.Signal) {
	switch {
	case finalScore > cfg.OnThreshold:
		return types.RoomLightsOn, types.SignalYes
	case finalScore > cfg.PartialThreshold:
		return types.RoomPartialLighting, types.SignalPartial
	default:
		return types.RoomLightsOff, types.SignalNo
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
