package testutil

import (
	"fmt"
	"math"
)

// ErrorDB returns the energy of got-want relative to the energy of want, in
// dB. Identical slices yield -Inf.
func ErrorDB(got, want []float64) (float64, error) {
	if len(got) != len(want) {
		return 0, fmt.Errorf("length mismatch: %d vs %d", len(got), len(want))
	}

	var errEnergy, refEnergy float64
	for i := range want {
		d := got[i] - want[i]
		errEnergy += d * d
		refEnergy += want[i] * want[i]
	}

	if refEnergy == 0 {
		return 0, fmt.Errorf("reference signal is silent")
	}

	if errEnergy == 0 {
		return math.Inf(-1), nil
	}

	return 10 * math.Log10(errEnergy/refEnergy), nil
}

// ZeroCrossingFrequency estimates the fundamental of a near-sinusoidal
// signal from its rising zero crossings. Crossing instants are refined by
// linear interpolation, so the estimate is far finer than one sample.
func ZeroCrossingFrequency(x []float64, sampleRate float64) (float64, error) {
	first, last := -1.0, -1.0
	crossings := 0

	for i := 1; i < len(x); i++ {
		if x[i-1] < 0 && x[i] >= 0 {
			pos := float64(i-1) + x[i-1]/(x[i-1]-x[i])
			if crossings == 0 {
				first = pos
			}

			last = pos
			crossings++
		}
	}

	if crossings < 2 {
		return 0, fmt.Errorf("need at least two rising zero crossings, got %d", crossings)
	}

	return float64(crossings-1) * sampleRate / (last - first), nil
}

// RMS returns the root-mean-square level of x.
func RMS(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}

	var sum float64
	for _, v := range x {
		sum += v * v
	}

	return math.Sqrt(sum / float64(len(x)))
}
