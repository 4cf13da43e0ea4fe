package window

import (
	"math"
	"sync"

	"github.com/cwbudde/algo-vecmath"
)

// Type identifies a window function.
type Type int

const (
	TypeRectangular Type = iota
	TypeHann
	TypeHamming
	TypeBlackman
)

var (
	hannCoeffs     = []float64{0.5, -0.5}
	hammingCoeffs  = []float64{0.54, -0.46}
	blackmanCoeffs = []float64{0.42, -0.5, 0.08}
)

// String returns the window name.
func (t Type) String() string {
	switch t {
	case TypeRectangular:
		return "Rectangular"
	case TypeHann:
		return "Hann"
	case TypeHamming:
		return "Hamming"
	case TypeBlackman:
		return "Blackman"
	default:
		return "Unknown"
	}
}

// Valid reports whether t is a known window type.
func (t Type) Valid() bool {
	return t >= TypeRectangular && t <= TypeBlackman
}

// Option configures window generation.
type Option func(*config)

type config struct {
	periodic bool
}

// WithPeriodic configures periodic form (FFT framing) instead of symmetric form.
func WithPeriodic() Option {
	return func(c *config) {
		c.periodic = true
	}
}

// Generate returns window coefficients of the given length.
func Generate(t Type, length int, opts ...Option) []float64 {
	if length <= 0 {
		return nil
	}

	var cfg config

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	out := make([]float64, length)
	for i := range out {
		out[i] = evalWindow(t, samplePosition(i, length, cfg.periodic))
	}

	return out
}

// Hann returns Hann window coefficients.
func Hann(size int, opts ...Option) ([]float64, error) {
	return Generate(TypeHann, size, opts...), validateLength(size)
}

type tableKey struct {
	t    Type
	size int
}

type tableEntry struct {
	once   sync.Once
	coeffs []float64
}

var tables sync.Map // tableKey -> *tableEntry

// Table returns the periodic window of the given type and size.
//
// Tables are generated once per process and shared by every caller. The
// returned slice must be treated as read-only.
func Table(t Type, size int) ([]float64, error) {
	if err := validateLength(size); err != nil {
		return nil, err
	}

	if !t.Valid() {
		return nil, errUnknownType
	}

	v, _ := tables.LoadOrStore(tableKey{t: t, size: size}, &tableEntry{})
	entry := v.(*tableEntry)
	entry.once.Do(func() {
		entry.coeffs = Generate(t, size, WithPeriodic())
	})

	return entry.coeffs, nil
}

// CoherentGain returns the sum of the coefficients.
func CoherentGain(coeffs []float64) float64 {
	sum := 0.0
	for _, c := range coeffs {
		sum += c
	}

	return sum
}

// OverlapAddGain fills dst with the squared-window overlap sum
// Σ_j w[n+j*hop]² for each position n in [0, hop).
//
// This is the gain an analysis/synthesis window pair accumulates in steady
// state when frames are advanced by hop. len(dst) must equal hop.
func OverlapAddGain(dst, coeffs []float64, hop int) error {
	if hop <= 0 || hop > len(coeffs) {
		return errInvalidHop
	}

	if len(dst) != hop {
		return errMismatchedLength
	}

	for n := range dst {
		sum := 0.0
		for m := n; m < len(coeffs); m += hop {
			sum += coeffs[m] * coeffs[m]
		}

		dst[n] = sum
	}

	return nil
}

// ApplyCoefficientsTo multiplies samples with coefficients into dst.
// All three slices must have the same length.
func ApplyCoefficientsTo(dst, samples, coeffs []float64) error {
	if len(samples) != len(coeffs) || len(dst) != len(samples) {
		return errMismatchedLength
	}

	vecmath.MulBlock(dst, samples, coeffs)

	return nil
}

// ApplyCoefficientsInPlace multiplies samples with coefficients in place.
func ApplyCoefficientsInPlace(samples, coeffs []float64) error {
	if len(samples) != len(coeffs) {
		return errMismatchedLength
	}

	vecmath.MulBlockInPlace(samples, coeffs)

	return nil
}

func evalWindow(t Type, x float64) float64 {
	if x < 0 {
		x = 0
	}

	if x > 1 {
		x = 1
	}

	switch t {
	case TypeRectangular:
		return 1
	case TypeHann:
		return cosineFromCoeffs(x, hannCoeffs)
	case TypeHamming:
		return cosineFromCoeffs(x, hammingCoeffs)
	case TypeBlackman:
		return cosineFromCoeffs(x, blackmanCoeffs)
	default:
		return 1
	}
}

func cosineFromCoeffs(x float64, coeffs []float64) float64 {
	phase := 2 * math.Pi * x

	sum := 0.0
	for k, c := range coeffs {
		sum += c * math.Cos(float64(k)*phase)
	}

	return sum
}

func samplePosition(n, size int, periodic bool) float64 {
	if size <= 1 {
		return 0
	}

	den := float64(size - 1)
	if periodic {
		den = float64(size)
	}

	return float64(n) / den
}
