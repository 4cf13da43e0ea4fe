package autotune

import (
	"fmt"
	"strings"

	"github.com/cwbudde/algo-autotune/dsp/window"
)

// Preset names a documented configuration.
type Preset int

const (
	// LowLatency: 512-point frames, 128 hop, fast transitions.
	LowLatency Preset = iota
	// Realtime: 1024-point frames, 256 hop.
	Realtime
	// HighQuality: 4096-point frames, 512 hop, slow transitions.
	HighQuality
)

type presetDef struct {
	name       string
	fft        FFTSize
	hop        int
	strength   float64
	transition float64
	minHz      float64
	maxHz      float64
}

var presets = [...]presetDef{
	LowLatency:  {"low_latency", FFT512, 128, 0.8, 0.3, 100, 1500},
	Realtime:    {"realtime", FFT1024, 256, 0.8, 0.2, 80, 2000},
	HighQuality: {"high_quality", FFT4096, 512, 0.9, 0.1, 60, 2000},
}

func (p Preset) String() string {
	if p < 0 || int(p) >= len(presets) {
		return fmt.Sprintf("Preset(%d)", int(p))
	}

	return presets[p].name
}

// ParsePreset accepts the names returned by Preset.String, ignoring case.
func ParsePreset(name string) (Preset, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, def := range presets {
		if def.name == n {
			return Preset(i), nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
}

// PresetConfig returns the preset at the given sample rate with a Hann
// window and the default detection threshold.
func PresetConfig(p Preset, sampleRate float64) (Config, error) {
	if p < 0 || int(p) >= len(presets) {
		return Config{}, fmt.Errorf("%w: %d", ErrUnknownPreset, int(p))
	}

	def := presets[p]
	cfg := Config{
		FFTSize:            def.fft,
		HopSize:            def.hop,
		SampleRate:         sampleRate,
		Strength:           def.strength,
		TransitionSpeed:    def.transition,
		MinFrequency:       def.minHz,
		MaxFrequency:       def.maxHz,
		Window:             window.TypeHann,
		DetectionThreshold: defaultThreshold,
	}

	return cfg, cfg.Validate()
}
