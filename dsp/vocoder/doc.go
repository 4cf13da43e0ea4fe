// Package vocoder implements a streaming phase-vocoder pitch shifter.
//
// A [Vocoder] consumes one analysis frame per hop and emits one hop of
// output. Each frame is windowed and transformed, its per-bin
// instantaneous frequencies are measured from the phase advance since the
// previous frame, the spectrum is resampled by the pitch ratio, and the
// result is resynthesised with accumulated phases and overlap-added into a
// persistent accumulator normalised by the squared-window overlap gain.
//
// All buffers are allocated by [New]; Process does not allocate.
package vocoder
