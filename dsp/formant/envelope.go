package formant

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-autotune/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

// Mode selects how the envelope is treated after a pitch shift.
type Mode int

const (
	// ModeNone leaves the shifted spectrum untouched.
	ModeNone Mode = iota
	// ModePreserve keeps the original envelope in place.
	ModePreserve
	// ModeShift moves the envelope by ShiftRatio independent of pitch.
	ModeShift
)

func (m Mode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case ModePreserve:
		return "preserve"
	case ModeShift:
		return "shift"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool { return m >= ModeNone && m <= ModeShift }

const (
	// magnitudeFloor keeps log|X| finite on silent bins.
	magnitudeFloor = 1e-6

	// lifterHz sets the cepstral cutoff: quefrencies above 1/lifterHz
	// seconds are treated as pitch structure rather than envelope.
	lifterHz  = 750.0
	minLifter = 8
)

// ShiftRatio bounds for ModeShift, exclusive below and inclusive above.
const (
	MinShiftRatio = 0.25
	MaxShiftRatio = 4.0
)

var errShiftRatio = errors.New("formant: shift ratio must be in (0.25, 4]")

// Envelope extracts and reapplies the cepstral envelope of one frame size.
// It is not safe for concurrent use.
type Envelope struct {
	Mode Mode
	// ShiftRatio scales envelope frequencies in ModeShift. Values above 1
	// move resonances up.
	ShiftRatio float64

	size   int
	lifter int
	plan   *algofft.Plan[complex128]

	cep     []complex128
	quef    []complex128
	env     []float64
	inv     []float64
	shifted []float64
}

// NewEnvelope allocates an envelope estimator for frames of length size.
func NewEnvelope(size int, sampleRate float64) (*Envelope, error) {
	if size < 2*minLifter || !core.IsPowerOfTwo(size) {
		return nil, fmt.Errorf("formant: size must be a power of two >= %d: %d", 2*minLifter, size)
	}

	if !core.IsFinitePositive(sampleRate) {
		return nil, fmt.Errorf("formant: sample rate must be positive and finite: %f", sampleRate)
	}

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("formant: fft plan: %w", err)
	}

	bins := size/2 + 1

	return &Envelope{
		ShiftRatio: 1,
		size:       size,
		lifter:     LifterLength(size, sampleRate),
		plan:       plan,
		cep:        make([]complex128, size),
		quef:       make([]complex128, size),
		env:        make([]float64, bins),
		inv:        make([]float64, bins),
		shifted:    make([]float64, bins),
	}, nil
}

// LifterLength returns the number of low quefrencies kept for a frame size
// and sample rate.
func LifterLength(size int, sampleRate float64) int {
	l := int(math.Round(sampleRate / lifterHz))
	return max(minLifter, min(l, size/4))
}

// ValidateShiftRatio reports whether r is usable as ShiftRatio.
func ValidateShiftRatio(r float64) error {
	if !(r > MinShiftRatio && r <= MaxShiftRatio) {
		return fmt.Errorf("%w: %f", errShiftRatio, r)
	}

	return nil
}

// Active reports whether e is non-nil and does anything.
func (e *Envelope) Active() bool { return e != nil && e.Mode != ModeNone }

// Reset zeroes the last envelope and scratch. Mode and ShiftRatio are kept.
func (e *Envelope) Reset() {
	clear(e.cep)
	clear(e.quef)
	clear(e.env)
	clear(e.inv)
	clear(e.shifted)
}

// Lifter returns the cepstral cutoff in samples.
func (e *Envelope) Lifter() int { return e.lifter }

// Values returns the envelope computed by the last Extract. The slice is
// owned by e.
func (e *Envelope) Values() []float64 { return e.env }

// Extract computes the envelope of a half spectrum mag (size/2+1 bins).
func (e *Envelope) Extract(mag []float64) error {
	bins := len(e.env)
	if len(mag) != bins {
		return fmt.Errorf("formant: extract needs %d bins: %d", bins, len(mag))
	}

	n := e.size
	for k := range n {
		m := mag[min(k, n-k)]
		e.cep[k] = complex(mathLog(max(m, magnitudeFloor)), 0)
	}

	if err := e.plan.Inverse(e.quef, e.cep); err != nil {
		return err
	}

	for q := e.lifter; q <= n-e.lifter; q++ {
		e.quef[q] = 0
	}

	if err := e.plan.Forward(e.cep, e.quef); err != nil {
		return err
	}

	for k := range bins {
		v := mathExp(real(e.cep[k]))
		e.env[k] = v
		e.inv[k] = 1 / v
	}

	return nil
}

// Flatten writes the residual mag/envelope into dst.
func (e *Envelope) Flatten(dst, mag []float64) {
	vecmath.MulBlock(dst, mag, e.inv)
}

// At returns the envelope at a fractional bin position, clamped at Nyquist.
func (e *Envelope) At(pos float64) float64 {
	last := len(e.env) - 1
	if pos <= 0 {
		return e.env[0]
	}

	if pos >= float64(last) {
		return e.env[last]
	}

	i := int(pos)
	frac := pos - float64(i)

	return e.env[i] + frac*(e.env[i+1]-e.env[i])
}

// Reapply multiplies a shifted residual by the target envelope for the
// current Mode.
func (e *Envelope) Reapply(mag []float64) {
	switch e.Mode {
	case ModePreserve:
		vecmath.MulBlockInPlace(mag, e.env)
	case ModeShift:
		inv := 1 / e.ShiftRatio
		for k := range e.shifted {
			e.shifted[k] = e.At(float64(k) * inv)
		}

		vecmath.MulBlockInPlace(mag, e.shifted)
	}
}
