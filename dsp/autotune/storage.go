package autotune

import "github.com/cwbudde/algo-autotune/dsp/vocoder"

const (
	maxBins     = MaxFFTSize/2 + 1
	maxRingSize = 2 * MaxBlockLimit
)

// Storage is caller-placed backing memory for every per-stream array of an
// Engine, sized for the largest configuration. Declare it as a static or
// long-lived value and hand it to NewEngineWithStorage; the engine then
// takes no further heap memory for streaming state.
//
// A Storage must back at most one Engine at a time.
type Storage struct {
	history     [MaxFFTSize]float64
	accumulator [MaxFFTSize]float64
	prevPhase   [maxBins]float64
	sumPhase    [maxBins]float64
	hopIn       [MaxFFTSize]float64
	hopOut      [MaxFFTSize]float64
	input       [maxRingSize]float64
	output      [maxRingSize]float64
}

// buffers holds the slices an Engine streams through, whether they come
// from Storage or the heap.
type buffers struct {
	history []float64
	hopIn   []float64
	hopOut  []float64
	input   []float64
	output  []float64
	vocoder *vocoder.State
}

func (s *Storage) buffers(cfg Config) buffers {
	n := int(cfg.FFTSize)
	bins := n/2 + 1
	ring := cfg.ringCapacity()

	return buffers{
		history: s.history[:n],
		hopIn:   s.hopIn[:cfg.HopSize],
		hopOut:  s.hopOut[:cfg.HopSize],
		input:   s.input[:ring],
		output:  s.output[:ring],
		vocoder: &vocoder.State{
			Accumulator: s.accumulator[:n],
			PrevPhase:   s.prevPhase[:bins],
			SumPhase:    s.sumPhase[:bins],
		},
	}
}

func heapBuffers(cfg Config) buffers {
	n := int(cfg.FFTSize)
	ring := cfg.ringCapacity()

	return buffers{
		history: make([]float64, n),
		hopIn:   make([]float64, cfg.HopSize),
		hopOut:  make([]float64, cfg.HopSize),
		input:   make([]float64, ring),
		output:  make([]float64, ring),
		vocoder: vocoder.NewState(n),
	}
}
