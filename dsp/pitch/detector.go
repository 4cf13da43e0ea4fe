package pitch

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-autotune/dsp/core"
	"github.com/cwbudde/algo-autotune/dsp/spectrum"
	"github.com/cwbudde/algo-autotune/dsp/window"
)

// Detector estimates the fundamental of one analysis frame.
//
// Implementations must run in bounded time and must not allocate. ok is
// false when no pitch was found.
type Detector interface {
	Detect(a *spectrum.Analysis) (hz float64, ok bool)
}

var _ Detector = (*PeakDetector)(nil)

// PeakDetector reports the instantaneous frequency of the strongest bin
// within [MinFrequency, MaxFrequency].
type PeakDetector struct {
	MinFrequency float64
	MaxFrequency float64

	// Threshold is the smallest sinusoid amplitude (linear, full scale = 1)
	// accepted as a pitch.
	Threshold float64

	// WindowSum is Σw of the analysis window. A sinusoid of amplitude A
	// peaks at A·WindowSum/2 in the magnitude spectrum.
	WindowSum float64
}

// NewPeakDetector validates the band and threshold and captures the window
// gain from coeffs.
func NewPeakDetector(minHz, maxHz, threshold float64, coeffs []float64) (*PeakDetector, error) {
	if !core.IsFinitePositive(minHz) || !core.IsFinitePositive(maxHz) || minHz >= maxHz {
		return nil, fmt.Errorf("pitch: invalid band [%f, %f]", minHz, maxHz)
	}

	if threshold < 0 || !core.IsFinite(threshold) {
		return nil, fmt.Errorf("pitch: threshold must be finite and >= 0: %f", threshold)
	}

	sum := window.CoherentGain(coeffs)
	if !(sum > 0) {
		return nil, fmt.Errorf("pitch: window sum must be positive: %f", sum)
	}

	return &PeakDetector{
		MinFrequency: minHz,
		MaxFrequency: maxHz,
		Threshold:    threshold,
		WindowSum:    sum,
	}, nil
}

// Band returns the inclusive bin range searched for a frame layout. lo > hi
// means the band holds no usable bin.
func (d *PeakDetector) Band(a *spectrum.Analysis) (lo, hi int) {
	binHz := a.BinWidth()

	lo = int(math.Ceil(d.MinFrequency / binHz))
	hi = int(math.Floor(d.MaxFrequency / binHz))

	// DC and Nyquist carry no usable phase derivative.
	lo = max(lo, 1)
	hi = min(hi, a.Bins()-2)

	return lo, hi
}

// Detect implements [Detector]. Frames without a valid previous phase are
// never detected.
func (d *PeakDetector) Detect(a *spectrum.Analysis) (float64, bool) {
	if !a.Valid {
		return 0, false
	}

	lo, hi := d.Band(a)
	if lo > hi {
		return 0, false
	}

	peak := lo
	for k := lo + 1; k <= hi; k++ {
		if a.Magnitude[k] > a.Magnitude[peak] {
			peak = k
		}
	}

	amp := 2 * a.Magnitude[peak] / d.WindowSum
	if !(amp > d.Threshold) {
		return 0, false
	}

	hz := a.Hz(peak)
	if hz < d.MinFrequency || hz > d.MaxFrequency {
		return 0, false
	}

	return hz, true
}
