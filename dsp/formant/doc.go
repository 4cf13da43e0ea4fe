// Package formant estimates the spectral envelope of a frame by cepstral
// smoothing and reapplies it after a pitch shift.
//
// A pitch shift moves harmonics and, with them, the resonances of the vocal
// tract, which is what makes shifted voices sound small or large. Splitting
// the magnitude spectrum into a smooth envelope and a fine residual lets
// the residual be shifted while the envelope stays put (ModePreserve) or is
// moved independently (ModeShift).
//
// Build with -tags fastmath to route log/exp through algo-approx.
package formant
