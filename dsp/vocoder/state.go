package vocoder

import "fmt"

// State is the persistent per-stream part of a Vocoder: the overlap-add
// accumulator and the phase history. It may live in caller-owned memory.
type State struct {
	// Accumulator holds the pending overlap-add sum, one frame long.
	Accumulator []float64
	// PrevPhase is the analysis phase of the previous frame per bin.
	PrevPhase []float64
	// SumPhase is the accumulated synthesis phase per bin.
	SumPhase []float64
	// Primed is set once PrevPhase holds a real frame.
	Primed bool
}

// NewState allocates a zeroed state for frames of length size.
func NewState(size int) *State {
	bins := size/2 + 1

	return &State{
		Accumulator: make([]float64, size),
		PrevPhase:   make([]float64, bins),
		SumPhase:    make([]float64, bins),
	}
}

// Reset zeroes all history.
func (s *State) Reset() {
	clear(s.Accumulator)
	clear(s.PrevPhase)
	clear(s.SumPhase)
	s.Primed = false
}

func (s *State) validate(size int) error {
	bins := size/2 + 1
	if len(s.Accumulator) != size || len(s.PrevPhase) != bins || len(s.SumPhase) != bins {
		return fmt.Errorf("vocoder: state sized %d/%d/%d, want %d/%d/%d",
			len(s.Accumulator), len(s.PrevPhase), len(s.SumPhase), size, bins, bins)
	}

	return nil
}
