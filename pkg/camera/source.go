// Package camera provides pull-based frame sources and the image plumbing
// around them: decoding stills from disk, converting to BGR frames, and
// encoding frames for the MJPEG stream.
//
// A Source hands out one frame per call instead of pushing a stream; callers
// own the polling cadence and decide retry policy when no frame is available.
package camera

import (
	"context"
	"errors"

	"github.com/menta2k/light-detector/pkg/types"
)

// ErrSourceClosed is returned by NextFrame after Close.
var ErrSourceClosed = errors.New("frame source closed")

// ErrNoFrame is returned when the source has no frame to deliver.
var ErrNoFrame = errors.New("no frame available")

// Source delivers decoded frames on demand.
type Source interface {
	// NextFrame returns the next available frame. It may fail with
	// ErrNoFrame (nothing to deliver right now) or ErrSourceClosed;
	// it never blocks past the context deadline.
	NextFrame(ctx context.Context) (*types.Frame, error)

	// Close releases the source. Subsequent NextFrame calls fail.
	Close() error
}

// StaticSource serves the same frame on every call. Useful for test rigs
// and for re-analyzing a captured still.
type StaticSource struct {
	frame  *types.Frame
	closed bool
}

// NewStaticSource wraps a single frame as a Source.
func NewStaticSource(frame *types.Frame) *StaticSource {
	return &StaticSource{frame: frame}
}

// NextFrame returns the wrapped frame.
func (s *StaticSource) NextFrame(ctx context.Context) (*types.Frame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.closed {
		return nil, ErrSourceClosed
	}
	if s.frame.IsEmpty() {
		return nil, ErrNoFrame
	}
	return s.frame, nil
}

// Close marks the source closed.
func (s *StaticSource) Close() error {
	s.closed = true
	return nil
}
