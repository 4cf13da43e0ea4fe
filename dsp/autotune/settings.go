package autotune

import (
	"fmt"

	"github.com/cwbudde/algo-autotune/dsp/formant"
	"github.com/cwbudde/algo-autotune/dsp/scale"
)

// FormantMode selects formant handling. See the formant package.
type FormantMode = formant.Mode

const (
	FormantNone     = formant.ModeNone
	FormantPreserve = formant.ModePreserve
	FormantShift    = formant.ModeShift
)

const (
	// NoteAuto snaps to the nearest in-scale note.
	NoteAuto = 0
	maxNote  = 9

	MinOctave = -2
	MaxOctave = 2
)

// Settings are the musical parameters. They may change between blocks.
type Settings struct {
	Key scale.Key
	// Note is NoteAuto or a scale degree 1..9; 8 and 9 are degrees 1 and
	// 2 of the next octave.
	Note int
	// Octave shifts the target by whole octaves.
	Octave int

	Formant FormantMode
	// FormantRatio moves the envelope in FormantShift mode. It is ignored
	// by the other modes.
	FormantRatio float64
}

// DefaultSettings returns C major, auto note, no octave shift and no
// formant processing.
func DefaultSettings() Settings {
	return Settings{Key: scale.CMajor, Note: NoteAuto, Formant: FormantNone, FormantRatio: 1}
}

// Validate reports the first invalid field.
func (s Settings) Validate() error {
	if !s.Key.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidKey, int(s.Key))
	}

	if s.Note < NoteAuto || s.Note > maxNote {
		return fmt.Errorf("%w: %d", ErrInvalidNote, s.Note)
	}

	if s.Octave < MinOctave || s.Octave > MaxOctave {
		return fmt.Errorf("%w: %d", ErrInvalidOctave, s.Octave)
	}

	if !s.Formant.Valid() {
		return fmt.Errorf("%w: mode %d", ErrInvalidFormant, int(s.Formant))
	}

	if s.Formant == FormantShift {
		if err := formant.ValidateShiftRatio(s.FormantRatio); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidFormant, err)
		}
	}

	return nil
}

// NoteName returns the name of the locked note, or "auto".
func (s Settings) NoteName() string {
	if s.Note == NoteAuto {
		return "auto"
	}

	return s.Key.NoteName(s.Note)
}
