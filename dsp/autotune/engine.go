package autotune

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-autotune/dsp/buffer"
	"github.com/cwbudde/algo-autotune/dsp/core"
	"github.com/cwbudde/algo-autotune/dsp/formant"
	"github.com/cwbudde/algo-autotune/dsp/pitch"
	"github.com/cwbudde/algo-autotune/dsp/scale"
	"github.com/cwbudde/algo-autotune/dsp/spectrum"
	"github.com/cwbudde/algo-autotune/dsp/vocoder"
)

// Engine is a single-channel pitch-correction session. It is not safe for
// concurrent use; run one Engine per channel.
type Engine struct {
	cfg      Config
	settings Settings
	target   pitch.Target

	voc       *vocoder.Vocoder
	detector  pitch.Detector
	corrector *pitch.Corrector
	envelope  *formant.Envelope
	ratioFn   vocoder.RatioFunc

	buf       buffers
	in        *buffer.Ring
	out       *buffer.Ring
	sampleIn  [1]float64
	sampleOut [1]float64

	detected float64
}

// NewEngine validates cfg and settings and allocates an engine.
func NewEngine(cfg Config, settings Settings) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return newEngine(cfg, settings, heapBuffers(cfg))
}

// NewEngineWithStorage is NewEngine with all streaming state placed in st.
func NewEngineWithStorage(cfg Config, settings Settings, st *Storage) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if st == nil {
		return nil, errors.New("autotune: nil storage")
	}

	return newEngine(cfg, settings, st.buffers(cfg))
}

func newEngine(cfg Config, settings Settings, buf buffers) (*Engine, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	size := int(cfg.FFTSize)

	voc, err := vocoder.New(vocoder.Config{
		Size:       size,
		Hop:        cfg.HopSize,
		SampleRate: cfg.SampleRate,
		Window:     cfg.Window,
	}, buf.vocoder)
	if err != nil {
		return nil, fmt.Errorf("autotune: %w", err)
	}

	detector, err := pitch.NewPeakDetector(cfg.MinFrequency, cfg.MaxFrequency, cfg.DetectionThreshold, voc.Window())
	if err != nil {
		return nil, fmt.Errorf("autotune: %w", err)
	}

	corrector, err := pitch.NewCorrector(cfg.Strength, cfg.TransitionSpeed)
	if err != nil {
		return nil, fmt.Errorf("autotune: %w", err)
	}

	envelope, err := formant.NewEnvelope(size, cfg.SampleRate)
	if err != nil {
		return nil, fmt.Errorf("autotune: %w", err)
	}

	in, err := buffer.NewRingWithStorage(buf.input)
	if err != nil {
		return nil, fmt.Errorf("autotune: %w", err)
	}

	out, err := buffer.NewRingWithStorage(buf.output)
	if err != nil {
		return nil, fmt.Errorf("autotune: %w", err)
	}

	e := &Engine{
		cfg:       cfg,
		voc:       voc,
		detector:  detector,
		corrector: corrector,
		envelope:  envelope,
		buf:       buf,
		in:        in,
		out:       out,
	}
	e.ratioFn = e.correct
	e.applySettings(settings)
	e.Reset()

	return e, nil
}

// Config returns the validated configuration.
func (e *Engine) Config() Config { return e.cfg }

// Settings returns the active musical settings.
func (e *Engine) Settings() Settings { return e.settings }

// SetSettings validates s and makes it active from the next hop on. On
// error the previous settings stay in effect.
func (e *Engine) SetSettings(s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}

	e.applySettings(s)

	return nil
}

func (e *Engine) applySettings(s Settings) {
	tbl, _ := scale.TableFor(s.Key)

	e.settings = s
	e.target = pitch.Target{Table: tbl, Note: s.Note, Octave: s.Octave}
	e.envelope.Mode = s.Formant
	e.envelope.ShiftRatio = s.FormantRatio

	if s.Formant != FormantShift {
		e.envelope.ShiftRatio = 1
	}
}

// Ratio returns the current smoothed pitch ratio.
func (e *Engine) Ratio() float64 { return e.corrector.Ratio() }

// DetectedFrequency returns the fundamental found in the last frame, or 0
// when none was found.
func (e *Engine) DetectedFrequency() float64 { return e.detected }

// Latency returns the delay in samples of Process and ProcessFixed.
func (e *Engine) Latency() int { return e.voc.Latency() }

// BlockLatency returns the delay in samples of ProcessBlock and
// ProcessSample, one hop more than Latency.
func (e *Engine) BlockLatency() int { return e.voc.Latency() + e.cfg.HopSize }

// Reset returns the engine to its freshly constructed state. Settings are
// kept.
func (e *Engine) Reset() {
	clear(e.buf.history)
	clear(e.buf.hopIn)
	clear(e.buf.hopOut)
	e.voc.Reset()
	e.envelope.Reset()
	e.corrector.Reset()
	e.detected = 0

	e.in.Reset()
	e.out.Reset()

	// The output side runs one hop ahead so a block never waits on a
	// partially filled hop.
	_ = e.out.PushSlice(e.buf.hopOut)
}

// Process corrects hop-aligned input into output. Both slices must have
// the same length, a multiple of HopSize. input and output may alias.
func (e *Engine) Process(input, output []float64) error {
	hop := e.cfg.HopSize
	if len(input) != len(output) || len(input)%hop != 0 {
		return ErrBufferSize
	}

	if ok, _ := core.AllFinite(input); !ok {
		return ErrNonFiniteInput
	}

	for pos := 0; pos < len(input); pos += hop {
		if err := e.processHop(input[pos:pos+hop], output[pos:pos+hop]); err != nil {
			return err
		}
	}

	return nil
}

// ProcessBlock corrects a block of any length in [1, MaxBlockSize]. Input
// is queued until a full hop is available, so output lags by
// BlockLatency samples.
func (e *Engine) ProcessBlock(input, output []float64) error {
	n := len(input)
	if n == 0 || n != len(output) || n > e.cfg.BlockLimit() {
		return ErrBufferSize
	}

	if ok, _ := core.AllFinite(input); !ok {
		return ErrNonFiniteInput
	}

	if err := e.in.PushSlice(input); err != nil {
		return err
	}

	hop := e.cfg.HopSize
	for e.in.Available() >= hop {
		e.in.PopSlice(e.buf.hopIn)

		if err := e.processHop(e.buf.hopIn, e.buf.hopOut); err != nil {
			return err
		}

		if err := e.out.PushSlice(e.buf.hopOut); err != nil {
			return err
		}
	}

	e.out.PopSlice(output)

	return nil
}

// ProcessSample corrects a single sample through the ProcessBlock queue.
func (e *Engine) ProcessSample(x float64) (float64, error) {
	e.sampleIn[0] = x
	if err := e.ProcessBlock(e.sampleIn[:], e.sampleOut[:]); err != nil {
		return 0, err
	}

	return e.sampleOut[0], nil
}

func (e *Engine) processHop(in, out []float64) error {
	h := e.buf.history
	hop := len(in)

	copy(h, h[hop:])
	copy(h[len(h)-hop:], in)

	var env *formant.Envelope
	if e.cfg.Strength > 0 {
		env = e.envelope
	}

	return e.voc.Process(h, out, e.ratioFn, env)
}

// correct is the vocoder's ratio callback: detect, snap and smooth.
func (e *Engine) correct(a *spectrum.Analysis) float64 {
	hz, ok := e.detector.Detect(a)
	if !ok {
		hz = 0
	}

	e.detected = hz

	return e.corrector.Update(hz, ok, e.target)
}
