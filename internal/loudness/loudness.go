// Package loudness folds catnip's frequency bins into a single
// normalized amplitude in [0, 1].
package loudness

import (
	"sync"

	"github.com/noriah/catnip/processor"
)

// peakDecay pulls the running peak back down so the meter recovers
// after loud passages.
const peakDecay = 0.9975

const defaultBins = 32

// Meter receives frequency bins from a catnip session and exposes the
// current normalized loudness. One writer (the audio session) and one
// reader (the frame loop) are expected.
type Meter struct {
	mu    sync.Mutex
	bins  int
	level float64
	peak  float64
}

var _ processor.Output = (*Meter)(nil)

// NewMeter creates a meter reading the given number of bins per
// channel. Non-positive bins fall back to a default.
func NewMeter(bins int) *Meter {
	if bins <= 0 {
		bins = defaultBins
	}
	return &Meter{bins: bins}
}

// Bins implements processor.Output. The count is per channel, so the
// channel argument is ignored.
func (m *Meter) Bins(int) int { return m.bins }

// Write implements processor.Output. It averages the bin magnitudes
// across channels and normalizes against a decaying running peak.
func (m *Meter) Write(bins [][]float64, nchannels int) error {
	var sum float64
	var n int
	for ch := 0; ch < nchannels && ch < len(bins); ch++ {
		row := bins[ch]
		if len(row) > m.bins {
			row = row[:m.bins]
		}
		for _, v := range row {
			if v < 0 {
				v = -v
			}
			sum += v
			n++
		}
	}

	var avg float64
	if n > 0 {
		avg = sum / float64(n)
	}

	m.mu.Lock()
	m.peak *= peakDecay
	if avg > m.peak {
		m.peak = avg
	}
	if m.peak > 0 {
		m.level = avg / m.peak
	} else {
		m.level = 0
	}
	m.mu.Unlock()
	return nil
}

// Level returns the current normalized loudness. It satisfies the
// effect package's LoudnessSource.
func (m *Meter) Level() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.level
}
