package spectrum

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Analysis holds one STFT frame in polar form.
//
// All slices have Bins() = Size/2+1 entries (DC through Nyquist). Frequency
// is the phase-derivative estimate in radians per sample; it is only
// meaningful when Valid is set, i.e. when the previous phase came from a real
// frame rather than zeroed state.
type Analysis struct {
	Size       int
	Hop        int
	SampleRate float64

	Magnitude []float64
	Phase     []float64
	Frequency []float64
	Valid     bool

	omega []float64
	re    []float64
	im    []float64
}

// NewAnalysis allocates an analysis frame for the given transform layout.
func NewAnalysis(size, hop int, sampleRate float64) (*Analysis, error) {
	if size < 2 || size&(size-1) != 0 {
		return nil, fmt.Errorf("spectrum: analysis size must be a power of two >= 2: %d", size)
	}

	if hop <= 0 || hop >= size {
		return nil, fmt.Errorf("spectrum: analysis hop must be in [1, %d): %d", size, hop)
	}

	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("spectrum: sample rate must be positive and finite: %f", sampleRate)
	}

	bins := size/2 + 1
	a := &Analysis{
		Size:       size,
		Hop:        hop,
		SampleRate: sampleRate,
		Magnitude:  make([]float64, bins),
		Phase:      make([]float64, bins),
		Frequency:  make([]float64, bins),
		omega:      make([]float64, bins),
		re:         make([]float64, bins),
		im:         make([]float64, bins),
	}

	for k := range a.omega {
		a.omega[k] = BinOmega(k, size)
	}

	return a, nil
}

// Bins returns the number of non-negative frequency bins.
func (a *Analysis) Bins() int { return len(a.Magnitude) }

// BinWidth returns the bin spacing in Hz.
func (a *Analysis) BinWidth() float64 { return a.SampleRate / float64(a.Size) }

// Omega returns the centre frequency of bin k in radians per sample.
func (a *Analysis) Omega(k int) float64 { return a.omega[k] }

// Hz converts the instantaneous frequency of bin k to Hz.
func (a *Analysis) Hz(k int) float64 {
	return a.Frequency[k] * a.SampleRate / twoPi
}

// Update derives magnitude, phase and instantaneous frequency from the
// first Bins() entries of spec and advances prevPhase to the new phases.
//
// The expected advance ω_k·hop is removed from the raw phase difference,
// the remainder is wrapped into (-π, π] and converted back to a frequency
// deviation. primed records whether prevPhase held a real frame.
func (a *Analysis) Update(spec []complex128, prevPhase []float64, primed bool) error {
	bins := a.Bins()
	if len(spec) < bins || len(prevPhase) != bins {
		return fmt.Errorf("spectrum: update needs %d bins and %d phases: got %d, %d",
			bins, bins, len(spec), len(prevPhase))
	}

	for k := range bins {
		a.re[k] = real(spec[k])
		a.im[k] = imag(spec[k])
	}

	vecmath.Magnitude(a.Magnitude, a.re, a.im)

	hop := float64(a.Hop)
	for k := range bins {
		phase := math.Atan2(a.im[k], a.re[k])
		dev := WrapPhase(phase - prevPhase[k] - a.omega[k]*hop)

		a.Phase[k] = phase
		a.Frequency[k] = a.omega[k] + dev/hop
		prevPhase[k] = phase
	}

	a.Valid = primed

	return nil
}

// Reset zeroes the frame and clears Valid.
func (a *Analysis) Reset() {
	clear(a.Magnitude)
	clear(a.Phase)
	clear(a.Frequency)
	clear(a.re)
	clear(a.im)
	a.Valid = false
}
