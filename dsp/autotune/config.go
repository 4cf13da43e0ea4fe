package autotune

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-autotune/dsp/core"
	"github.com/cwbudde/algo-autotune/dsp/window"
)

// FFTSize is one of the supported transform lengths.
type FFTSize int

const (
	FFT512  FFTSize = 512
	FFT1024 FFTSize = 1024
	FFT2048 FFTSize = 2048
	FFT4096 FFTSize = 4096
)

// Valid reports whether s is a supported size.
func (s FFTSize) Valid() bool {
	switch s {
	case FFT512, FFT1024, FFT2048, FFT4096:
		return true
	default:
		return false
	}
}

const (
	// MaxFFTSize is the largest supported transform length.
	MaxFFTSize = int(FFT4096)
	// MaxBlockLimit is the largest MaxBlockSize accepted.
	MaxBlockLimit = 4096

	minTransitionSpeed = 0.01
	defaultThreshold   = 1e-3
)

// Config is the immutable processing configuration of an Engine.
type Config struct {
	FFTSize    FFTSize
	HopSize    int
	SampleRate float64

	// Strength blends between no correction (0) and full snapping (1).
	Strength float64
	// TransitionSpeed is the per-frame smoothing coefficient of the pitch
	// ratio, in [0.01, 1]. 1 jumps immediately.
	TransitionSpeed float64

	// MinFrequency and MaxFrequency bound the fundamental search in Hz.
	MinFrequency float64
	MaxFrequency float64

	// Window is used for both analysis and synthesis.
	Window window.Type
	// DetectionThreshold is the smallest sinusoid amplitude accepted as a
	// pitch (linear, full scale = 1).
	DetectionThreshold float64
	// MaxBlockSize bounds ProcessBlock lengths. Zero means FFTSize.
	MaxBlockSize int
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the Realtime preset at 48 kHz.
func DefaultConfig() Config {
	cfg, _ := PresetConfig(Realtime, 48000)
	return cfg
}

// NewConfig applies opts to DefaultConfig. Options do not validate; call
// Validate or let NewEngine do it.
func NewConfig(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}

// WithFFTSize sets the transform length.
func WithFFTSize(size FFTSize) Option {
	return func(cfg *Config) { cfg.FFTSize = size }
}

// WithHopSize sets the hop length in samples.
func WithHopSize(hop int) Option {
	return func(cfg *Config) { cfg.HopSize = hop }
}

// WithSampleRate sets the sample rate in Hz.
func WithSampleRate(sampleRate float64) Option {
	return func(cfg *Config) { cfg.SampleRate = sampleRate }
}

// WithStrength sets the correction strength.
func WithStrength(strength float64) Option {
	return func(cfg *Config) { cfg.Strength = strength }
}

// WithTransitionSpeed sets the ratio smoothing coefficient.
func WithTransitionSpeed(speed float64) Option {
	return func(cfg *Config) { cfg.TransitionSpeed = speed }
}

// WithFrequencyRange sets the fundamental search band.
func WithFrequencyRange(minHz, maxHz float64) Option {
	return func(cfg *Config) {
		cfg.MinFrequency = minHz
		cfg.MaxFrequency = maxHz
	}
}

// WithWindow sets the analysis/synthesis window.
func WithWindow(t window.Type) Option {
	return func(cfg *Config) { cfg.Window = t }
}

// WithDetectionThreshold sets the minimum pitch amplitude.
func WithDetectionThreshold(threshold float64) Option {
	return func(cfg *Config) { cfg.DetectionThreshold = threshold }
}

// WithDetectionThresholdDB sets the minimum pitch amplitude in dBFS.
func WithDetectionThresholdDB(db float64) Option {
	return func(cfg *Config) { cfg.DetectionThreshold = core.DBToLinear(db) }
}

// WithMaxBlockSize sets the largest block accepted by ProcessBlock.
func WithMaxBlockSize(n int) Option {
	return func(cfg *Config) { cfg.MaxBlockSize = n }
}

// Validate checks every bound and reports the first violation.
func (c Config) Validate() error {
	if !c.FFTSize.Valid() {
		return fmt.Errorf("%w: %d", ErrUnsupportedFFTSize, int(c.FFTSize))
	}

	if c.HopSize <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidHop, c.HopSize)
	}

	if c.HopSize >= int(c.FFTSize) {
		return fmt.Errorf("%w: hop %d, fft %d", ErrHopTooLarge, c.HopSize, int(c.FFTSize))
	}

	if !core.IsFinitePositive(c.SampleRate) {
		return fmt.Errorf("%w: %f", ErrInvalidSampleRate, c.SampleRate)
	}

	if !(c.Strength >= 0 && c.Strength <= 1) {
		return fmt.Errorf("%w: %f", ErrStrengthRange, c.Strength)
	}

	if !(c.TransitionSpeed >= minTransitionSpeed && c.TransitionSpeed <= 1) {
		return fmt.Errorf("%w: %f", ErrTransitionRange, c.TransitionSpeed)
	}

	if !core.IsFinitePositive(c.MinFrequency) || !core.IsFinitePositive(c.MaxFrequency) ||
		c.MinFrequency >= c.MaxFrequency {
		return fmt.Errorf("%w: [%f, %f]", ErrFrequencyBounds, c.MinFrequency, c.MaxFrequency)
	}

	if !c.Window.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidWindow, int(c.Window))
	}

	if c.DetectionThreshold < 0 || !core.IsFinite(c.DetectionThreshold) {
		return fmt.Errorf("%w: %f", ErrInvalidThreshold, c.DetectionThreshold)
	}

	if c.MaxBlockSize < 0 || c.MaxBlockSize > MaxBlockLimit {
		return fmt.Errorf("%w: %d not in [0, %d]", ErrInvalidBlockSize, c.MaxBlockSize, MaxBlockLimit)
	}

	return nil
}

// BlockLimit returns the effective MaxBlockSize.
func (c Config) BlockLimit() int {
	if c.MaxBlockSize == 0 {
		return int(c.FFTSize)
	}

	return c.MaxBlockSize
}

// ringCapacity returns the ring size needed for BlockLimit: up to hop-1
// queued input plus a full block, and one primed hop plus a full block on
// the output side.
func (c Config) ringCapacity() int {
	return core.NextPowerOfTwo(c.HopSize + c.BlockLimit())
}

// DetectionThresholdDB returns DetectionThreshold in dBFS, -Inf for zero.
func (c Config) DetectionThresholdDB() float64 {
	return core.LinearToDB(c.DetectionThreshold)
}

// HopDuration returns the hop length in seconds.
func (c Config) HopDuration() float64 {
	return float64(c.HopSize) / c.SampleRate
}

// FramesFor returns how many hops a transition covering the given fraction
// of the remaining ratio error takes at TransitionSpeed.
func (c Config) FramesFor(fraction float64) int {
	if !(fraction > 0 && fraction < 1) || c.TransitionSpeed >= 1 {
		return 1
	}

	return int(math.Ceil(math.Log(1-fraction) / math.Log(1-c.TransitionSpeed)))
}
