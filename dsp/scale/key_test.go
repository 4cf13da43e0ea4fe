package scale

import (
	"errors"
	"testing"
)

func TestKeyStrings(t *testing.T) {
	tests := []struct {
		key  Key
		want string
		root int
		mode Mode
	}{
		{key: CMajor, want: "C major", root: 0, mode: Major},
		{key: FSharpMajor, want: "F# major", root: 6, mode: Major},
		{key: AFlatMajor, want: "Ab major", root: 8, mode: Major},
		{key: AMinor, want: "A minor", root: 9, mode: Minor},
		{key: GSharpMinor, want: "G# minor", root: 8, mode: Minor},
		{key: EFlatMinor, want: "Eb minor", root: 3, mode: Minor},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.key.String(); got != tt.want {
				t.Fatalf("String() = %q, want %q", got, tt.want)
			}

			if got := tt.key.Root(); got != tt.root {
				t.Fatalf("Root() = %d, want %d", got, tt.root)
			}

			if got := tt.key.Mode(); got != tt.mode {
				t.Fatalf("Mode() = %v, want %v", got, tt.mode)
			}
		})
	}
}

func TestKeyInvalid(t *testing.T) {
	for _, k := range []Key{-1, NumKeys, 100} {
		if k.Valid() {
			t.Fatalf("Key(%d).Valid() = true", int(k))
		}

		if k.Root() != -1 {
			t.Fatalf("Key(%d).Root() = %d, want -1", int(k), k.Root())
		}

		if k.NoteName(1) != "" {
			t.Fatalf("Key(%d).NoteName(1) not empty", int(k))
		}
	}
}

func TestNoteNameWraps(t *testing.T) {
	k := DMajor

	want := []string{"", "D", "E", "F#", "G", "A", "B", "C#", "D", "E", ""}
	for degree, name := range want {
		if got := k.NoteName(degree); got != name {
			t.Fatalf("NoteName(%d) = %q, want %q", degree, got, name)
		}
	}
}

// Each spelled degree must match the semitone step table.
func TestKeySpellingMatchesSteps(t *testing.T) {
	pitch := map[string]int{
		"C": 0, "B#": 0, "C#": 1, "Db": 1, "D": 2, "D#": 3, "Eb": 3,
		"E": 4, "Fb": 4, "E#": 5, "F": 5, "F#": 6, "Gb": 6, "G": 7,
		"G#": 8, "Ab": 8, "A": 9, "A#": 10, "Bb": 10, "B": 11, "Cb": 11,
	}

	for k := range Key(NumKeys) {
		steps := k.steps()
		for d := 1; d <= 7; d++ {
			name := k.NoteName(d)

			pc, ok := pitch[name]
			if !ok {
				t.Fatalf("%v degree %d: unknown spelling %q", k, d, name)
			}

			if want := (k.Root() + steps[d-1]) % 12; pc != want {
				t.Fatalf("%v degree %d: %q is pitch class %d, want %d", k, d, name, pc, want)
			}
		}
	}
}

func TestParseKey(t *testing.T) {
	tests := []struct {
		in   string
		want Key
	}{
		{in: "C", want: CMajor},
		{in: "c major", want: CMajor},
		{in: "  F#   Maj ", want: FSharpMajor},
		{in: "bb minor", want: BFlatMinor},
		{in: "Bb", want: BFlatMajor},
		{in: "g# min", want: GSharpMinor},
		{in: "Eb MINOR", want: EFlatMinor},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKey(tt.in)
			if err != nil {
				t.Fatalf("ParseKey() error = %v", err)
			}

			if got != tt.want {
				t.Fatalf("ParseKey() = %v, want %v", got, tt.want)
			}
		})
	}

	for _, bad := range []string{"", "H", "C dorian", "Db minor", "C major extra"} {
		if _, err := ParseKey(bad); !errors.Is(err, ErrUnknownKey) {
			t.Fatalf("ParseKey(%q) error = %v, want ErrUnknownKey", bad, err)
		}
	}
}

func TestParseKeyRoundTrip(t *testing.T) {
	for k := range Key(NumKeys) {
		got, err := ParseKey(k.String())
		if err != nil || got != k {
			t.Fatalf("ParseKey(%q) = %v, %v", k.String(), got, err)
		}
	}
}
