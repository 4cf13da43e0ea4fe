package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Harmonic generates a voiced test tone: partial h+1 of f0 has amplitude
// amps[h]. Partials at or above Nyquist are skipped.
func Harmonic(f0, sampleRate float64, amps []float64, length int) []float64 {
	out := make([]float64, length)
	for h, a := range amps {
		f := f0 * float64(h+1)
		if f >= sampleRate/2 {
			break
		}
		step := 2 * math.Pi * f / sampleRate
		for i := range out {
			out[i] += a * math.Sin(step*float64(i))
		}
	}
	return out
}

// Glide generates a phase-continuous sine whose frequency moves
// exponentially from fromHz to toHz over length samples.
func Glide(fromHz, toHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	if length == 0 {
		return out
	}
	k := math.Log(toHz / fromHz)
	phase := 0.0
	for i := range out {
		out[i] = amplitude * math.Sin(phase)
		f := fromHz * math.Exp(k*float64(i)/float64(length))
		phase = math.Mod(phase+2*math.Pi*f/sampleRate, 2*math.Pi)
	}
	return out
}
