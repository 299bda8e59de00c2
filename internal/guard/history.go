package guard

import (
	"sync"

	"github.com/HerbHall/energyguard/pkg/energy"
)

// History is the chronological record of readings in the current session.
// Insertion order is chronological order; append-only. Safe for concurrent
// use.
type History struct {
	mu       sync.RWMutex
	readings []energy.Reading
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{}
}

// Add appends a reading. It never fails.
func (h *History) Add(r energy.Reading) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.readings = append(h.readings, r)
}

// Last returns the most recently appended reading, if any.
func (h *History) Last() (energy.Reading, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if len(h.readings) == 0 {
		return energy.Reading{}, false
	}
	return h.readings[len(h.readings)-1], true
}

// Len returns the number of stored readings.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.readings)
}

// Readings returns a copy of all stored readings in insertion order.
func (h *History) Readings() []energy.Reading {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]energy.Reading, len(h.readings))
	copy(out, h.readings)
	return out
}

// TrendAverage returns the mean usage across all stored readings. The
// average is only meaningful once two readings exist; before that it
// reports false instead of a single-sample figure.
func (h *History) TrendAverage() (float64, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if len(h.readings) < 2 {
		return 0, false
	}
	sum := 0.0
	for _, r := range h.readings {
		sum += r.Usage
	}
	return sum / float64(len(h.readings)), true
}
