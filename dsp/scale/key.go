package scale

import (
	"fmt"
	"strings"
)

// Mode distinguishes major from natural-minor keys.
type Mode int

const (
	Major Mode = iota
	Minor
)

func (m Mode) String() string {
	switch m {
	case Major:
		return "major"
	case Minor:
		return "minor"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Key selects one of the 24 supported keys. Majors occupy 0..11 and
// minors 12..23, each group ordered around the circle of fifths.
type Key int

const (
	CMajor Key = iota
	GMajor
	DMajor
	AMajor
	EMajor
	BMajor
	FSharpMajor
	CSharpMajor
	FMajor
	BFlatMajor
	EFlatMajor
	AFlatMajor
	AMinor
	EMinor
	BMinor
	FSharpMinor
	CSharpMinor
	GSharpMinor
	DMinor
	GMinor
	CMinor
	FMinor
	BFlatMinor
	EFlatMinor
)

// NumKeys is the number of valid keys.
const NumKeys = 24

// Semitone offsets of the seven degrees from the tonic.
var (
	majorSteps = [7]int{0, 2, 4, 5, 7, 9, 11}
	minorSteps = [7]int{0, 2, 3, 5, 7, 8, 10}
)

type keyDef struct {
	root  int // pitch class of the tonic, C = 0
	names [7]string
}

var keyDefs = [NumKeys]keyDef{
	{0, [7]string{"C", "D", "E", "F", "G", "A", "B"}},
	{7, [7]string{"G", "A", "B", "C", "D", "E", "F#"}},
	{2, [7]string{"D", "E", "F#", "G", "A", "B", "C#"}},
	{9, [7]string{"A", "B", "C#", "D", "E", "F#", "G#"}},
	{4, [7]string{"E", "F#", "G#", "A", "B", "C#", "D#"}},
	{11, [7]string{"B", "C#", "D#", "E", "F#", "G#", "A#"}},
	{6, [7]string{"F#", "G#", "A#", "B", "C#", "D#", "E#"}},
	{1, [7]string{"C#", "D#", "E#", "F#", "G#", "A#", "B#"}},
	{5, [7]string{"F", "G", "A", "Bb", "C", "D", "E"}},
	{10, [7]string{"Bb", "C", "D", "Eb", "F", "G", "A"}},
	{3, [7]string{"Eb", "F", "G", "Ab", "Bb", "C", "D"}},
	{8, [7]string{"Ab", "Bb", "C", "Db", "Eb", "F", "G"}},

	{9, [7]string{"A", "B", "C", "D", "E", "F", "G"}},
	{4, [7]string{"E", "F#", "G", "A", "B", "C", "D"}},
	{11, [7]string{"B", "C#", "D", "E", "F#", "G", "A"}},
	{6, [7]string{"F#", "G#", "A", "B", "C#", "D", "E"}},
	{1, [7]string{"C#", "D#", "E", "F#", "G#", "A", "B"}},
	{8, [7]string{"G#", "A#", "B", "C#", "D#", "E", "F#"}},
	{2, [7]string{"D", "E", "F", "G", "A", "Bb", "C"}},
	{7, [7]string{"G", "A", "Bb", "C", "D", "Eb", "F"}},
	{0, [7]string{"C", "D", "Eb", "F", "G", "Ab", "Bb"}},
	{5, [7]string{"F", "G", "Ab", "Bb", "C", "Db", "Eb"}},
	{10, [7]string{"Bb", "C", "Db", "Eb", "F", "Gb", "Ab"}},
	{3, [7]string{"Eb", "F", "Gb", "Ab", "Bb", "Cb", "Db"}},
}

// Valid reports whether k names one of the 24 keys.
func (k Key) Valid() bool { return k >= 0 && k < NumKeys }

// Mode returns Major for keys 0..11 and Minor for 12..23.
func (k Key) Mode() Mode {
	if k >= AMinor {
		return Minor
	}

	return Major
}

// Root returns the pitch class of the tonic (C = 0, C# = 1, ... B = 11),
// or -1 for an invalid key.
func (k Key) Root() int {
	if !k.Valid() {
		return -1
	}

	return keyDefs[k].root
}

// String returns names like "C major" or "F# minor".
func (k Key) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Key(%d)", int(k))
	}

	return keyDefs[k].names[0] + " " + k.Mode().String()
}

// NoteName returns the spelled name of a scale degree. Degrees 1..7 map to
// the scale; 8 and 9 wrap to degrees 1 and 2. Anything else yields "".
func (k Key) NoteName(degree int) string {
	if !k.Valid() {
		return ""
	}

	d, _, ok := normalizeDegree(degree)
	if !ok {
		return ""
	}

	return keyDefs[k].names[d]
}

// ParseKey accepts a tonic followed by an optional "major" or "minor"
// ("maj"/"min" also work), e.g. "F#", "bb minor" or "Eb Major". The tonic
// must be spelled as in String.
func ParseKey(name string) (Key, error) {
	fields := strings.Fields(name)
	if len(fields) == 0 || len(fields) > 2 {
		return 0, fmt.Errorf("%w: %q", ErrUnknownKey, name)
	}

	mode := Major
	if len(fields) == 2 {
		switch strings.ToLower(fields[1]) {
		case "major", "maj":
		case "minor", "min":
			mode = Minor
		default:
			return 0, fmt.Errorf("%w: %q", ErrUnknownKey, name)
		}
	}

	for k := range Key(NumKeys) {
		if k.Mode() == mode && strings.EqualFold(keyDefs[k].names[0], fields[0]) {
			return k, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownKey, name)
}

func (k Key) steps() *[7]int {
	if k.Mode() == Minor {
		return &minorSteps
	}

	return &majorSteps
}

// normalizeDegree maps a 1-based degree to a 0-based index plus the number
// of octaves it spills over.
func normalizeDegree(degree int) (idx, octaveCarry int, ok bool) {
	switch {
	case degree >= 1 && degree <= 7:
		return degree - 1, 0, true
	case degree == 8 || degree == 9:
		return degree - 8, 1, true
	default:
		return 0, 0, false
	}
}
