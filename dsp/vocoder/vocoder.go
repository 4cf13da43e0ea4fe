package vocoder

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-autotune/dsp/core"
	"github.com/cwbudde/algo-autotune/dsp/formant"
	"github.com/cwbudde/algo-autotune/dsp/spectrum"
	"github.com/cwbudde/algo-autotune/dsp/window"
	"github.com/cwbudde/algo-vecmath"
)

const (
	// Ratios outside this range are clamped before resynthesis.
	minRatio = 0.25
	maxRatio = 4.0

	// Overlap-add positions whose Σw² falls below this fraction of the
	// largest one are treated as uncovered and output silence.
	gainFloor = 1e-24
)

// ErrFrameSize is returned when Process receives a frame or output slice
// of the wrong length.
var ErrFrameSize = errors.New("vocoder: frame or output length mismatch")

// RatioFunc returns the pitch ratio to apply to the frame just analysed.
type RatioFunc func(a *spectrum.Analysis) float64

// Config describes the transform layout.
type Config struct {
	Size       int
	Hop        int
	SampleRate float64
	Window     window.Type
}

// Vocoder is a single-channel streaming pitch shifter. It is not safe for
// concurrent use.
type Vocoder struct {
	size int
	hop  int

	plan     *algofft.Plan[complex128]
	window   []float64
	invGain  []float64
	analysis *spectrum.Analysis
	state    *State

	spectrum    []complex128
	timeFrame   []complex128
	windowed    []float64
	residual    []float64
	shiftedMag  []float64
	shiftedFreq []float64
}

// New builds a vocoder. If st is nil a fresh State is allocated; otherwise
// st must be sized for cfg.Size and is used in place.
func New(cfg Config, st *State) (*Vocoder, error) {
	if cfg.Size < 4 || !core.IsPowerOfTwo(cfg.Size) {
		return nil, fmt.Errorf("vocoder: size must be a power of two >= 4: %d", cfg.Size)
	}

	if cfg.Hop <= 0 || cfg.Hop >= cfg.Size {
		return nil, fmt.Errorf("vocoder: hop must be in [1, %d): %d", cfg.Size, cfg.Hop)
	}

	coeffs, err := window.Table(cfg.Window, cfg.Size)
	if err != nil {
		return nil, fmt.Errorf("vocoder: window: %w", err)
	}

	analysis, err := spectrum.NewAnalysis(cfg.Size, cfg.Hop, cfg.SampleRate)
	if err != nil {
		return nil, fmt.Errorf("vocoder: %w", err)
	}

	if st == nil {
		st = NewState(cfg.Size)
	} else if err := st.validate(cfg.Size); err != nil {
		return nil, err
	}

	plan, err := algofft.NewPlan64(cfg.Size)
	if err != nil {
		return nil, fmt.Errorf("vocoder: fft plan: %w", err)
	}

	gain := make([]float64, cfg.Hop)
	if err := window.OverlapAddGain(gain, coeffs, cfg.Hop); err != nil {
		return nil, fmt.Errorf("vocoder: %w", err)
	}

	peak := 0.0
	for _, g := range gain {
		peak = max(peak, g)
	}

	floor := peak * gainFloor
	for i, g := range gain {
		if g > floor {
			gain[i] = 1 / g
		} else {
			gain[i] = 0
		}
	}

	bins := analysis.Bins()

	return &Vocoder{
		size:        cfg.Size,
		hop:         cfg.Hop,
		plan:        plan,
		window:      coeffs,
		invGain:     gain,
		analysis:    analysis,
		state:       st,
		spectrum:    make([]complex128, cfg.Size),
		timeFrame:   make([]complex128, cfg.Size),
		windowed:    make([]float64, cfg.Size),
		residual:    make([]float64, bins),
		shiftedMag:  make([]float64, bins),
		shiftedFreq: make([]float64, bins),
	}, nil
}

// Size returns the frame length.
func (v *Vocoder) Size() int { return v.size }

// Hop returns the hop length.
func (v *Vocoder) Hop() int { return v.hop }

// Latency returns the delay in samples between a frame's newest input
// sample and its appearance at the output.
func (v *Vocoder) Latency() int { return v.size - v.hop }

// Window returns the shared analysis/synthesis window.
func (v *Vocoder) Window() []float64 { return v.window }

// Analysis returns the analysis of the most recent frame.
func (v *Vocoder) Analysis() *spectrum.Analysis { return v.analysis }

// State returns the persistent state in use.
func (v *Vocoder) State() *State { return v.state }

// Reset clears all history and scratch.
func (v *Vocoder) Reset() {
	v.state.Reset()
	v.analysis.Reset()

	clear(v.spectrum)
	clear(v.timeFrame)
	clear(v.windowed)
	clear(v.residual)
	clear(v.shiftedMag)
	clear(v.shiftedFreq)
}

// Process analyses frame (the newest Size samples), shifts it by the ratio
// returned from ratio, and writes the next Hop finished samples to out.
// A nil ratio means unity. env may be nil.
func (v *Vocoder) Process(frame, out []float64, ratio RatioFunc, env *formant.Envelope) error {
	if len(frame) != v.size || len(out) != v.hop {
		return ErrFrameSize
	}

	st := v.state
	a := v.analysis

	if err := window.ApplyCoefficientsTo(v.windowed, frame, v.window); err != nil {
		return err
	}

	for i, x := range v.windowed {
		v.spectrum[i] = complex(x, 0)
	}

	if err := v.plan.Forward(v.spectrum, v.spectrum); err != nil {
		return err
	}

	if err := a.Update(v.spectrum, st.PrevPhase, st.Primed); err != nil {
		return err
	}

	st.Primed = true

	r := 1.0
	if ratio != nil {
		r = ratio(a)
	}

	if math.IsNaN(r) {
		r = 1
	}

	r = core.Clamp(r, minRatio, maxRatio)

	src := a.Magnitude
	if env.Active() {
		if err := env.Extract(a.Magnitude); err != nil {
			return err
		}

		env.Flatten(v.residual, a.Magnitude)
		src = v.residual
	}

	v.shift(src, a.Frequency, r)

	if env.Active() {
		env.Reapply(v.shiftedMag)
	}

	v.synthesize()

	if err := v.plan.Inverse(v.timeFrame, v.spectrum); err != nil {
		return err
	}

	for i, c := range v.timeFrame {
		v.windowed[i] = real(c)
	}

	if err := window.ApplyCoefficientsInPlace(v.windowed, v.window); err != nil {
		return err
	}

	vecmath.AddBlockInPlace(st.Accumulator, v.windowed)
	vecmath.MulBlock(out, st.Accumulator[:v.hop], v.invGain)

	for i, x := range out {
		out[i] = core.FlushDenormals(x)
	}

	copy(st.Accumulator, st.Accumulator[v.hop:])
	clear(st.Accumulator[v.size-v.hop:])

	return nil
}

// shift resamples magnitude and instantaneous frequency so that output bin
// k reads source position k/ratio, scaling frequencies by ratio.
func (v *Vocoder) shift(mag, freq []float64, ratio float64) {
	half := v.size / 2
	inv := 1 / ratio

	for k := 0; k <= half; k++ {
		srcK := float64(k) * inv
		if srcK > float64(half) {
			v.shiftedMag[k] = 0
			v.shiftedFreq[k] = v.analysis.Omega(k)

			continue
		}

		lo := int(srcK)
		frac := srcK - float64(lo)
		hi := min(lo+1, half)

		v.shiftedMag[k] = mag[lo]*(1-frac) + mag[hi]*frac
		v.shiftedFreq[k] = (freq[lo]*(1-frac) + freq[hi]*frac) * ratio
	}
}

// synthesize advances the synthesis phases and fills the full Hermitian
// spectrum.
func (v *Vocoder) synthesize() {
	half := v.size / 2
	hop := float64(v.hop)
	sum := v.state.SumPhase

	for k := 0; k <= half; k++ {
		sum[k] = spectrum.WrapPhase(sum[k] + v.shiftedFreq[k]*hop)
		sin, cos := math.Sincos(sum[k])
		v.spectrum[k] = complex(v.shiftedMag[k]*cos, v.shiftedMag[k]*sin)
	}

	v.spectrum[0] = complex(real(v.spectrum[0]), 0)
	v.spectrum[half] = complex(real(v.spectrum[half]), 0)

	for k := 1; k < half; k++ {
		c := v.spectrum[k]
		v.spectrum[v.size-k] = complex(real(c), -imag(c))
	}
}
