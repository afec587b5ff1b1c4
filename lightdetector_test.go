package lightdetector

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/menta2k/light-detector/pkg/detect"
	"github.com/menta2k/light-detector/pkg/types"
)

func solidFrame(width, height int, b, g, r uint8) *types.Frame {
	frame := types.NewFrame(width, height)
	for i := 0; i < len(frame.Pix); i += 3 {
		frame.Pix[i] = b
		frame.Pix[i+1] = g
		frame.Pix[i+2] = r
	}
	return frame
}

func TestNew(t *testing.T) {
	detector := New()
	if detector == nil {
		t.Fatal("New returned nil")
	}
	if detector.Config().HistorySize != 10 {
		t.Errorf("Expected default history size 10, got %d", detector.Config().HistorySize)
	}
}

func TestNewWithConfig(t *testing.T) {
	cfg := detect.DefaultConfig()
	cfg.HistorySize = 3
	cfg.OnThreshold = 0.9

	detector := NewWithConfig(cfg)
	if detector.Config().OnThreshold != 0.9 {
		t.Errorf("Expected on threshold 0.9, got %v", detector.Config().OnThreshold)
	}

	// History capacity follows the config.
	for i := 0; i < 5; i++ {
		if _, err := detector.AnalyzeFrame(solidFrame(32, 32, 255, 255, 255)); err != nil {
			t.Fatalf("AnalyzeFrame failed: %v", err)
		}
	}
	if got := len(detector.History()); got != 3 {
		t.Errorf("Expected history capped at 3, got %d", got)
	}
}

func TestAnalyzeFrameRecordsHistory(t *testing.T) {
	detector := New()

	if detector.LastResult() != nil {
		t.Error("Expected no last result before analysis")
	}

	result, err := detector.AnalyzeFrame(solidFrame(64, 64, 255, 255, 255))
	if err != nil {
		t.Fatalf("AnalyzeFrame failed: %v", err)
	}
	if result.Signal != types.SignalYes {
		t.Errorf("Expected YES for all-white frame, got %s", result.Signal)
	}

	if len(detector.History()) != 1 {
		t.Errorf("Expected 1 history entry, got %d", len(detector.History()))
	}
	if detector.LastResult() != result {
		t.Error("Expected LastResult to return the analyzed result")
	}
}

func TestAnalyzeFrameEmpty(t *testing.T) {
	detector := New()

	if _, err := detector.AnalyzeFrame(nil); err != detect.ErrNoFrame {
		t.Errorf("Expected ErrNoFrame for nil frame, got %v", err)
	}
	if _, err := detector.AnalyzeFrame(&types.Frame{}); err != detect.ErrNoFrame {
		t.Errorf("Expected ErrNoFrame for empty frame, got %v", err)
	}
	if len(detector.History()) != 0 {
		t.Error("Failed analyses must not enter the history")
	}
}

func TestAnalyzeImage(t *testing.T) {
	detector := New()

	img := image.NewRGBA(image.Rect(0, 0, 50, 50))
	for y := 0; y < 50; y++ {
		for x := 0; x < 50; x++ {
			img.Set(x, y, color.RGBA{10, 10, 10, 255})
		}
	}

	result, err := detector.AnalyzeImage(img)
	if err != nil {
		t.Fatalf("AnalyzeImage failed: %v", err)
	}
	if result.Signal != types.SignalNo {
		t.Errorf("Expected NO for dark image, got %s", result.Signal)
	}

	if _, err := detector.AnalyzeImage(nil); err != detect.ErrNoFrame {
		t.Errorf("Expected ErrNoFrame for nil image, got %v", err)
	}
}

func TestAnalyzeFile(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 40, 40))
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			img.Set(x, y, color.RGBA{255, 255, 255, 255})
		}
	}

	path := filepath.Join(t.TempDir(), "white.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	f.Close()

	detector := New()
	result, err := detector.AnalyzeFile(path)
	if err != nil {
		t.Fatalf("AnalyzeFile failed: %v", err)
	}
	if result.Signal != types.SignalYes {
		t.Errorf("Expected YES for white image file, got %s", result.Signal)
	}

	if _, err := detector.AnalyzeFile(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("Expected error for missing file")
	}
}
