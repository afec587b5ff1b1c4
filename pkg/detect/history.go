package detect

import (
	"sync"

	"github.com/menta2k/light-detector/pkg/types"
)

// History retains the most recent detection results for diagnostics.
// Insertion-ordered; the oldest entry is evicted once capacity is exceeded.
// Safe for one writer and concurrent readers.
type History struct {
	mu       sync.RWMutex
	capacity int
	entries  []*types.DetectionResult
}

// NewHistory creates a history bounded to the given capacity.
// A non-positive capacity falls back to the default of 10.
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultConfig().HistorySize
	}
	return &History{capacity: capacity}
}

// Append adds a result to the end, evicting from the front if needed.
func (h *History) Append(result *types.DetectionResult) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = append(h.entries, result)
	if len(h.entries) > h.capacity {
		over := len(h.entries) - h.capacity
		h.entries = append(h.entries[:0:0], h.entries[over:]...)
	}
}

// Snapshot returns a copy of the current entries, oldest first.
func (h *History) Snapshot() []*types.DetectionResult {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]*types.DetectionResult, len(h.entries))
	copy(out, h.entries)
	return out
}

// Len returns the number of retained entries.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.entries)
}

// Last returns the most recent entry, or nil when empty.
func (h *History) Last() *types.DetectionResult {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if len(h.entries) == 0 {
		return nil
	}
	return h.entries[len(h.entries)-1]
}
