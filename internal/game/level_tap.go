package game

import (
	"math"
	"sync"

	"github.com/faiface/beep"

	"github.com/iburimskiy/liquid-view/internal/config"
)

// levelTap wraps a beep.Streamer and records the last N samples into a ring buffer
// so the HUD can show the loudness of the ambient track.
type levelTap struct {
	Source    beep.Streamer
	buffer    [][2]float64
	nextIndex int
	filled    int
	mu        sync.RWMutex
}

func newLevelTap(src beep.Streamer, ringSize int) *levelTap {
	return &levelTap{
		Source: src,
		buffer: make([][2]float64, ringSize),
	}
}

func (t *levelTap) Stream(samples [][2]float64) (int, bool) {
	n, ok := t.Source.Stream(samples)
	if n > 0 {
		t.mu.Lock()
		for i := 0; i < n; i++ {
			t.buffer[t.nextIndex] = samples[i]
			t.nextIndex++
			if t.nextIndex >= len(t.buffer) {
				t.nextIndex = 0
			}
		}
		t.filled += n
		if t.filled > len(t.buffer) {
			t.filled = len(t.buffer)
		}
		t.mu.Unlock()
	}
	return n, ok
}

func (t *levelTap) Err() error { return t.Source.Err() }

// rms returns the root mean square of the mono mix of the recorded samples.
func (t *levelTap) rms() float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.filled == 0 {
		return 0
	}
	var sumSquares float64
	idx := t.nextIndex
	for i := 0; i < t.filled; i++ {
		idx--
		if idx < 0 {
			idx = len(t.buffer) - 1
		}
		mono := (t.buffer[idx][0] + t.buffer[idx][1]) * 0.5
		sumSquares += mono * mono
	}
	return math.Sqrt(sumSquares / float64(t.filled))
}

// levelMeter smooths the tap level for display.
type levelMeter struct {
	value float64
}

func (m *levelMeter) update(tap *levelTap) float64 {
	target := 0.0
	if tap != nil {
		target = clamp01(math.Pow(tap.rms(), 0.3))
	}
	m.value = config.SmoothingFactor*m.value + (1-config.SmoothingFactor)*target
	return m.value
}
