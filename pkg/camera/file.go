package camera

import (
	"context"
	"fmt"
	"image"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	"github.com/menta2k/light-detector/internal/utils"
	"github.com/menta2k/light-detector/pkg/types"
)

// LoadImage loads an image from a file path with WebP support.
func LoadImage(path string) (image.Image, error) {
	// Try imaging.Open (registered decoders)
	if img, err := imaging.Open(path); err == nil {
		return img, nil
	}

	// Fallback: explicit WebP decode
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if strings.Contains(strings.ToLower(path), ".webp") {
		if img, err := webp.Decode(f); err == nil {
			return img, nil
		}
		if _, err := f.Seek(0, 0); err == nil {
			if img, _, err := image.Decode(f); err == nil {
				return img, nil
			}
		}
	} else {
		if _, err := f.Seek(0, 0); err == nil {
			if img, _, err := image.Decode(f); err == nil {
				return img, nil
			}
		}
	}
	return nil, fmt.Errorf("image: unknown format for %s", path)
}

// LoadFrame loads an image file and converts it to a BGR frame.
func LoadFrame(path string) (*types.Frame, error) {
	img, err := LoadImage(path)
	if err != nil {
		return nil, err
	}
	return types.FrameFromImage(img), nil
}

// FileSource serves frames decoded from still images on disk. A single image
// path behaves like a fixed camera; a directory is walked in sorted order and
// looped, which stands in for a camera in test rigs.
type FileSource struct {
	mu     sync.Mutex
	paths  []string
	next   int
	loop   bool
	cache  map[string]*types.Frame
	closed bool
}

// NewFileSource creates a source from an image file or a directory of images.
func NewFileSource(path string) (*FileSource, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("frame source: %w", err)
	}

	if !info.IsDir() {
		if !utils.IsImageFile(path) {
			return nil, fmt.Errorf("frame source: %s is not an image file", path)
		}
		return &FileSource{
			paths: []string{path},
			loop:  true,
			cache: make(map[string]*types.Frame),
		}, nil
	}

	paths, err := utils.ListImageFiles(path)
	if err != nil {
		return nil, fmt.Errorf("frame source: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("frame source: no image files in %s", path)
	}
	sort.Strings(paths)

	return &FileSource{
		paths: paths,
		loop:  true,
		cache: make(map[string]*types.Frame),
	}, nil
}

// NextFrame decodes and returns the next still, looping over the file set.
func (s *FileSource) NextFrame(ctx context.Context) (*types.Frame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrSourceClosed
	}
	if len(s.paths) == 0 {
		return nil, ErrNoFrame
	}

	path := s.paths[s.next]
	s.next++
	if s.next >= len(s.paths) {
		if !s.loop {
			s.paths = nil
		}
		s.next = 0
	}

	if frame, ok := s.cache[path]; ok {
		return frame, nil
	}
	frame, err := LoadFrame(path)
	if err != nil {
		return nil, fmt.Errorf("frame source: %w", err)
	}
	s.cache[path] = frame
	return frame, nil
}

// Close releases the source.
func (s *FileSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.cache = nil
	return nil
}
