package pitch

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-autotune/dsp/core"
	"github.com/cwbudde/algo-autotune/dsp/scale"
)

const (
	// MinRatio and MaxRatio bound the raw correction ratio (±2 octaves).
	MinRatio = 0.25
	MaxRatio = 4.0

	// relaxDivisor slows the return to unity while no pitch is detected.
	relaxDivisor = 8

	// unityEpsilon is how close a relaxing ratio must get before it
	// snaps to exactly 1.
	unityEpsilon = 1e-9
)

// Target describes where a detected pitch should be moved.
type Target struct {
	Table *scale.Table
	// Note is 0 for nearest-note snapping, or a scale degree 1..9 to lock
	// to (see [scale.Key.NoteName]).
	Note int
	// Octave shifts the result by whole octaves.
	Octave int
}

// Frequency maps a detected frequency to its correction target. ok is false
// when the note cannot be resolved.
func (t Target) Frequency(hz float64) (float64, bool) {
	if t.Table == nil || !core.IsFinitePositive(hz) {
		return 0, false
	}

	var f float64
	if t.Note == 0 {
		f = t.Table.Nearest(hz)
	} else {
		var ok bool
		if f, ok = t.Table.Degree(t.Note, scale.ReferenceOctave); !ok {
			return 0, false
		}
	}

	return f * math.Exp2(float64(t.Octave)), true
}

// Corrector smooths the frame-to-frame pitch-shift ratio.
//
// Each detected frame moves the ratio toward 1+Strength·(target/detected−1)
// by a fraction Speed of the remaining distance. Frames without a pitch
// relax toward unity at Speed/8 so short gaps hold the correction.
type Corrector struct {
	strength float64
	speed    float64
	ratio    float64
}

// NewCorrector returns a corrector at unity ratio.
func NewCorrector(strength, speed float64) (*Corrector, error) {
	if strength < 0 || strength > 1 || math.IsNaN(strength) {
		return nil, fmt.Errorf("pitch: strength must be in [0, 1]: %f", strength)
	}

	if speed < 0.01 || speed > 1 || math.IsNaN(speed) {
		return nil, fmt.Errorf("pitch: transition speed must be in [0.01, 1]: %f", speed)
	}

	return &Corrector{strength: strength, speed: speed, ratio: 1}, nil
}

// Ratio returns the current smoothed ratio.
func (c *Corrector) Ratio() float64 { return c.ratio }

// Reset returns the ratio to unity.
func (c *Corrector) Reset() { c.ratio = 1 }

// TargetRatio returns the strength-blended ratio for one detection without
// touching the smoothed state.
func (c *Corrector) TargetRatio(detected, target float64) float64 {
	raw := core.Clamp(target/detected, MinRatio, MaxRatio)
	return 1 + c.strength*(raw-1)
}

// Update advances the smoothed ratio by one frame and returns it.
func (c *Corrector) Update(detected float64, found bool, t Target) float64 {
	if !found {
		return c.relax()
	}

	f, ok := t.Frequency(detected)
	if !ok {
		return c.relax()
	}

	c.ratio += c.speed * (c.TargetRatio(detected, f) - c.ratio)

	return c.ratio
}

// relax moves the ratio toward unity and lands on exactly 1 once the
// remaining distance is negligible.
func (c *Corrector) relax() float64 {
	c.ratio += c.speed / relaxDivisor * (1 - c.ratio)
	if core.NearlyEqual(c.ratio, 1, unityEpsilon) {
		c.ratio = 1
	}

	return c.ratio
}
