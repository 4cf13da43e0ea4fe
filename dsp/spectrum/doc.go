// Package spectrum provides the polar view of one short-time spectral frame
// that the phase vocoder and the pitch detector share.
//
// The package does not implement an FFT. [Analysis.Update] consumes complex
// bins produced by an external FFT backend and derives per-bin magnitude,
// phase and phase-derivative (instantaneous) frequency, with phase
// differences unwrapped into (-π, π] by [WrapPhase].
package spectrum
