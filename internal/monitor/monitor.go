// Package monitor drives the analysis pipeline from a background polling
// loop, maintaining a continuously refreshed latest result for API readers.
package monitor

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	lightdetector "github.com/menta2k/light-detector"
	"github.com/menta2k/light-detector/pkg/camera"
	"github.com/menta2k/light-detector/pkg/types"
)

// ErrAlreadyRunning is returned by Start when the worker is already active.
var ErrAlreadyRunning = errors.New("monitor already running")

// Options configures the polling behavior.
type Options struct {
	// Interval between successful captures. Defaults to 1s.
	Interval time.Duration

	// ErrorBackoff is the wait after a failed capture or analysis.
	// Defaults to 2s.
	ErrorBackoff time.Duration

	// Debug logs every detection verdict.
	Debug bool
}

// Monitor owns one frame source and one detector, and publishes the most
// recent detection result. The latest-result slot is last-write-wins:
// readers may observe a stale result but never a partially written one.
type Monitor struct {
	detector *lightdetector.Detector
	source   camera.Source
	opts     Options

	mu      sync.RWMutex
	latest  *types.DetectionResult
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// New creates a monitor over the given detector and frame source.
func New(detector *lightdetector.Detector, source camera.Source, opts Options) *Monitor {
	if opts.Interval <= 0 {
		opts.Interval = time.Second
	}
	if opts.ErrorBackoff <= 0 {
		opts.ErrorBackoff = 2 * time.Second
	}
	return &Monitor{detector: detector, source: source, opts: opts}
}

// Start launches the background worker. It fails with ErrAlreadyRunning if
// the worker is active.
func (m *Monitor) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return ErrAlreadyRunning
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.done = make(chan struct{})
	m.running = true

	go m.run(ctx, m.done)
	log.Println("[Monitor] Started background detection")
	return nil
}

// Stop cancels the worker and waits for it to exit.
func (m *Monitor) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	m.running = false
	cancel := m.cancel
	done := m.done
	m.mu.Unlock()

	cancel()
	<-done
	log.Println("[Monitor] Stopped")
}

// Running reports whether the background worker is active.
func (m *Monitor) Running() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.running
}

// Latest returns the most recently published result, or nil before the
// first successful detection.
func (m *Monitor) Latest() *types.DetectionResult {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.latest
}

// CaptureFrame pulls one frame from the source.
func (m *Monitor) CaptureFrame(ctx context.Context) (*types.Frame, error) {
	return m.source.NextFrame(ctx)
}

// DetectOnce captures a single frame and analyzes it. The result lands in
// the detector's history but does not replace the published latest result;
// only the background worker does that.
func (m *Monitor) DetectOnce(ctx context.Context) (*types.DetectionResult, error) {
	frame, err := m.source.NextFrame(ctx)
	if err != nil {
		return nil, err
	}
	return m.detector.AnalyzeFrame(frame)
}

func (m *Monitor) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	for {
		wait := m.opts.Interval

		result, err := m.DetectOnce(ctx)
		switch {
		case err != nil && ctx.Err() != nil:
			return
		case err != nil:
			log.Printf("[Monitor] Detection failed: %v", err)
			wait = m.opts.ErrorBackoff
		default:
			m.mu.Lock()
			m.latest = result
			m.mu.Unlock()
			if m.opts.Debug {
				log.Printf("[Monitor] Detection: %s - Score: %.3f",
					result.Signal, result.DetectionSummary.DecisionFactors.FinalScore)
			}
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(wait):
		}
	}
}
