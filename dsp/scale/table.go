package scale

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

const (
	// Octaves is the number of octaves covered by a Table, starting at
	// octave 0 (C0 ≈ 16.35 Hz).
	Octaves = 10
	// DegreesPerOctave is the number of in-scale notes per octave.
	DegreesPerOctave = 7
	// ReferenceOctave is the octave a locked scale degree resolves in
	// before any octave offset is applied.
	ReferenceOctave = 4

	// A4 is the tuning reference in Hz.
	A4 = 440.0
)

// ErrUnknownKey is returned for a key outside 0..23.
var ErrUnknownKey = errors.New("scale: unknown key")

// c0 is C in octave 0, 57 semitones below A4.
var c0 = A4 * math.Exp2(-57.0/12.0)

// Table is the ascending list of in-scale frequencies of one key.
type Table struct {
	key   Key
	freqs [Octaves * DegreesPerOctave]float64
}

var tables [NumKeys]Table

func init() {
	for k := range Key(NumKeys) {
		tables[k] = newTable(k)
	}
}

func newTable(k Key) Table {
	t := Table{key: k}

	steps := k.steps()
	i := 0

	for octave := range Octaves {
		for _, step := range steps {
			t.freqs[i] = PitchClassFrequency(keyDefs[k].root+step, octave)
			i++
		}
	}

	return t
}

// PitchClassFrequency returns the equal-tempered frequency of a pitch
// class (0 = C) in the given octave. Pitch classes beyond 11 carry into the
// next octave.
func PitchClassFrequency(pitchClass, octave int) float64 {
	return c0 * math.Exp2(float64(octave)+float64(pitchClass)/12.0)
}

// TableFor returns the shared table for k.
func TableFor(k Key) (*Table, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKey, int(k))
	}

	return &tables[k], nil
}

// Key returns the key the table was built for.
func (t *Table) Key() Key { return t.key }

// Len returns the number of entries.
func (t *Table) Len() int { return len(t.freqs) }

// At returns entry i in ascending order.
func (t *Table) At(i int) float64 { return t.freqs[i] }

// Frequencies returns a copy of all entries in ascending order.
func (t *Table) Frequencies() []float64 {
	return slices.Clone(t.freqs[:])
}

// Nearest returns the table entry closest to hz. Exact midpoints resolve to
// the lower entry; values outside the table clamp to its ends.
func (t *Table) Nearest(hz float64) float64 {
	return nearest(t.freqs[:], hz)
}

// Degree returns the frequency of a scale degree (1..9, see Key.NoteName)
// in the octave whose tonic lies in the given octave.
func (t *Table) Degree(degree, octave int) (float64, bool) {
	idx, carry, ok := normalizeDegree(degree)
	if !ok {
		return 0, false
	}

	return PitchClassFrequency(keyDefs[t.key].root+t.key.steps()[idx], octave+carry), true
}

func nearest(freqs []float64, hz float64) float64 {
	i, found := slices.BinarySearch(freqs, hz)
	if found {
		return freqs[i]
	}

	if i == 0 {
		return freqs[0]
	}

	if i == len(freqs) {
		return freqs[len(freqs)-1]
	}

	lo, hi := freqs[i-1], freqs[i]
	if hz-lo <= hi-hz {
		return lo
	}

	return hi
}
