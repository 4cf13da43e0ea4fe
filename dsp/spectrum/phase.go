package spectrum

import "math"

const twoPi = 2 * math.Pi

// WrapPhase maps x into the half-open interval (-π, π].
func WrapPhase(x float64) float64 {
	r := math.Mod(x+math.Pi, twoPi)
	if r <= 0 {
		r += twoPi
	}

	return r - math.Pi
}

// PhaseDifference returns the unwrapped difference a-b in (-π, π].
func PhaseDifference(a, b float64) float64 {
	return WrapPhase(a - b)
}

// BinOmega returns the centre frequency of bin k in radians per sample.
func BinOmega(k, size int) float64 {
	return twoPi * float64(k) / float64(size)
}
