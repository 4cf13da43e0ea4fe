package autotune

import "errors"

// Configuration errors. [Config.Validate] wraps them with the offending
// value; test with errors.Is.
var (
	ErrUnsupportedFFTSize = errors.New("autotune: unsupported FFT size")
	ErrHopTooLarge        = errors.New("autotune: hop size must be smaller than FFT size")
	ErrInvalidHop         = errors.New("autotune: hop size must be positive")
	ErrInvalidSampleRate  = errors.New("autotune: sample rate must be positive and finite")
	ErrStrengthRange      = errors.New("autotune: strength must be in [0, 1]")
	ErrTransitionRange    = errors.New("autotune: transition speed must be in [0.01, 1]")
	ErrFrequencyBounds    = errors.New("autotune: frequency bounds must be positive with min < max")
	ErrInvalidThreshold   = errors.New("autotune: detection threshold must be finite and >= 0")
	ErrInvalidBlockSize   = errors.New("autotune: max block size out of range")
	ErrInvalidWindow      = errors.New("autotune: unknown window type")
	ErrUnknownPreset      = errors.New("autotune: unknown preset")
)

// Settings errors.
var (
	ErrInvalidKey     = errors.New("autotune: key must be in [0, 23]")
	ErrInvalidNote    = errors.New("autotune: note must be in [0, 9]")
	ErrInvalidOctave  = errors.New("autotune: octave offset must be in [-2, 2]")
	ErrInvalidFormant = errors.New("autotune: invalid formant mode or ratio")
)

// Processing errors. These are returned unwrapped so the hot path never
// allocates.
var (
	ErrBufferSize     = errors.New("autotune: buffer length mismatch")
	ErrNonFiniteInput = errors.New("autotune: non-finite input sample")
)
