package scale

import (
	"errors"
	"math"
	"testing"
)

func TestTableAscending(t *testing.T) {
	for k := range Key(NumKeys) {
		tbl, err := TableFor(k)
		if err != nil {
			t.Fatalf("TableFor(%v) error = %v", k, err)
		}

		if tbl.Key() != k {
			t.Fatalf("TableFor(%v).Key() = %v", k, tbl.Key())
		}

		if tbl.Len() != Octaves*DegreesPerOctave {
			t.Fatalf("%v: Len() = %d", k, tbl.Len())
		}

		for i := 1; i < tbl.Len(); i++ {
			if !(tbl.At(i) > tbl.At(i-1)) {
				t.Fatalf("%v: entry %d (%v) not above entry %d (%v)", k, i, tbl.At(i), i-1, tbl.At(i-1))
			}
		}
	}
}

func TestTableForRejectsUnknownKey(t *testing.T) {
	if _, err := TableFor(NumKeys); !errors.Is(err, ErrUnknownKey) {
		t.Fatalf("TableFor(24) error = %v, want ErrUnknownKey", err)
	}
}

func TestTableContainsConcertA(t *testing.T) {
	for _, k := range []Key{CMajor, GMajor, AMinor, DMinor} {
		tbl, _ := TableFor(k)
		if got := tbl.Nearest(440); got != 440 && math.Abs(got-440) > 1e-9 {
			t.Fatalf("%v: Nearest(440) = %v", k, got)
		}
	}
}

func TestNearest(t *testing.T) {
	tbl, _ := TableFor(CMajor)

	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{name: "slightly sharp A4", in: 450, want: 440},
		{name: "slightly flat A4", in: 430, want: 440},
		{name: "between A4 and B4 closer to B", in: 480, want: PitchClassFrequency(11, 4)},
		{name: "F#4 snaps down to F4 or up to G4", in: PitchClassFrequency(6, 4) - 1, want: PitchClassFrequency(5, 4)},
		{name: "below table", in: 1, want: tbl.At(0)},
		{name: "above table", in: 1e6, want: tbl.At(tbl.Len() - 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tbl.Nearest(tt.in); math.Abs(got-tt.want) > 1e-9 {
				t.Fatalf("Nearest(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNearestTieBreaksLow(t *testing.T) {
	freqs := []float64{100, 200, 400}

	if got := nearest(freqs, 150); got != 100 {
		t.Fatalf("nearest(150) = %v, want 100", got)
	}

	if got := nearest(freqs, 300); got != 200 {
		t.Fatalf("nearest(300) = %v, want 200", got)
	}

	if got := nearest(freqs, 300.5); got != 400 {
		t.Fatalf("nearest(300.5) = %v, want 400", got)
	}
}

func TestDegree(t *testing.T) {
	tests := []struct {
		name   string
		key    Key
		degree int
		octave int
		want   float64
	}{
		{name: "C major sixth", key: CMajor, degree: 6, octave: 4, want: 440},
		{name: "A minor tonic", key: AMinor, degree: 1, octave: 4, want: 440},
		{name: "A minor upper tonic", key: AMinor, degree: 8, octave: 4, want: 880},
		{name: "A minor upper second", key: AMinor, degree: 9, octave: 3, want: PitchClassFrequency(11, 4)},
		{name: "G major leading tone", key: GMajor, degree: 7, octave: 4, want: PitchClassFrequency(6, 5)},
		{name: "C major tonic octave 0", key: CMajor, degree: 1, octave: 0, want: 440 * math.Exp2(-57.0/12)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, _ := TableFor(tt.key)

			got, ok := tbl.Degree(tt.degree, tt.octave)
			if !ok {
				t.Fatal("Degree() not ok")
			}

			if math.Abs(got-tt.want) > 1e-9 {
				t.Fatalf("Degree(%d, %d) = %v, want %v", tt.degree, tt.octave, got, tt.want)
			}
		})
	}

	tbl, _ := TableFor(CMajor)
	for _, d := range []int{0, 10, -1} {
		if _, ok := tbl.Degree(d, 4); ok {
			t.Fatalf("Degree(%d) ok, want rejection", d)
		}
	}
}

// Every degree of every key must appear in the table for octaves it covers.
func TestDegreeInTable(t *testing.T) {
	for k := range Key(NumKeys) {
		tbl, _ := TableFor(k)
		for d := 1; d <= 7; d++ {
			f, _ := tbl.Degree(d, ReferenceOctave)
			if got := tbl.Nearest(f); math.Abs(got-f) > 1e-9 {
				t.Fatalf("%v degree %d (%v Hz) missing from table, nearest %v", k, d, f, got)
			}
		}
	}
}

func TestFrequenciesIsCopy(t *testing.T) {
	tbl, _ := TableFor(CMajor)

	f := tbl.Frequencies()
	f[0] = -1

	if tbl.At(0) == -1 {
		t.Fatal("Frequencies() exposed internal storage")
	}
}

func BenchmarkNearest(b *testing.B) {
	tbl, _ := TableFor(EMinor)

	b.ReportAllocs()

	for i := range b.N {
		_ = tbl.Nearest(80 + float64(i%2000))
	}
}
