// Package lightdetector classifies whether a room's lights are on, off or
// partially on from a single camera frame.
//
// The pipeline combines color-space thresholding, blob/contour geometry and a
// weighted heuristic score: the frame is converted to grayscale and HSV views,
// three fixed HSV bands (bright white, warm, cool) are masked and cleaned
// morphologically, candidate light regions are extracted as contours and
// scored geometrically, and a weighted fusion of global brightness, area
// coverage and region count yields a tri-state verdict.
//
// Basic usage:
//
//	package main
//
//	import (
//		"fmt"
//		"log"
//
//		lightdetector "github.com/menta2k/light-detector"
//		"github.com/menta2k/light-detector/pkg/types"
//	)
//
//	func main() {
//		detector := lightdetector.New()
//
//		result, err := detector.AnalyzeFile("room.jpg")
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		fmt.Printf("signal=%s status=%s score=%.3f\n",
//			result.Signal, result.RoomStatus,
//			result.DetectionSummary.DecisionFactors.FinalScore)
//		_ = types.SignalYes
//	}
//
// The analysis itself is a pure function of the frame; the detector instance
// only adds a bounded diagnostic history of recent results, so a single
// detector may be shared by a polling loop and on-demand callers.
package lightdetector

import (
	"image"

	"github.com/menta2k/light-detector/pkg/camera"
	"github.com/menta2k/light-detector/pkg/detect"
	"github.com/menta2k/light-detector/pkg/types"
)

// Version of the light detector library
const Version = "1.0.0"

// Detector provides a high-level interface for room lighting analysis.
type Detector struct {
	analyzer *detect.Analyzer
	history  *detect.History
}

// New creates a Detector with the default pipeline configuration.
func New() *Detector {
	return NewWithConfig(detect.DefaultConfig())
}

// NewWithConfig creates a Detector with custom pipeline constants.
func NewWithConfig(cfg detect.Config) *Detector {
	return &Detector{
		analyzer: detect.NewAnalyzerWithConfig(cfg),
		history:  detect.NewHistory(cfg.HistorySize),
	}
}

// Config returns the pipeline configuration in use.
func (d *Detector) Config() detect.Config {
	return d.analyzer.Config()
}

// AnalyzeFrame runs the full analysis pipeline on one BGR frame and records
// the result in the diagnostic history. It returns detect.ErrNoFrame for a
// nil or empty frame.
func (d *Detector) AnalyzeFrame(frame *types.Frame) (*types.DetectionResult, error) {
	result, err := d.analyzer.Analyze(frame)
	if err != nil {
		return nil, err
	}
	d.history.Append(result)
	return result, nil
}

// AnalyzeImage converts a stdlib image into a frame and analyzes it.
func (d *Detector) AnalyzeImage(img image.Image) (*types.DetectionResult, error) {
	if img == nil {
		return nil, detect.ErrNoFrame
	}
	return d.AnalyzeFrame(types.FrameFromImage(img))
}

// AnalyzeFile loads an image from disk and analyzes it.
func (d *Detector) AnalyzeFile(path string) (*types.DetectionResult, error) {
	img, err := camera.LoadImage(path)
	if err != nil {
		return nil, err
	}
	return d.AnalyzeImage(img)
}

// History returns a copy of the recent detection results, oldest first.
func (d *Detector) History() []*types.DetectionResult {
	return d.history.Snapshot()
}

// LastResult returns the most recent detection result, or nil if none exists.
func (d *Detector) LastResult() *types.DetectionResult {
	return d.history.Last()
}
