package testutil

import (
	"math"
	"testing"
)

func TestErrorDB(t *testing.T) {
	want := DeterministicSine(440, 48000, 1, 4800)

	db, err := ErrorDB(want, want)
	if err != nil {
		t.Fatalf("ErrorDB() error = %v", err)
	}

	if !math.IsInf(db, -1) {
		t.Fatalf("identical signals: got %v dB, want -Inf", db)
	}

	got := make([]float64, len(want))
	for i, v := range want {
		got[i] = v * 1.001
	}

	db, err = ErrorDB(got, want)
	if err != nil {
		t.Fatalf("ErrorDB() error = %v", err)
	}

	if math.Abs(db-(-60)) > 1e-6 {
		t.Fatalf("0.1%% gain error: got %v dB, want -60", db)
	}
}

func TestErrorDBRejects(t *testing.T) {
	if _, err := ErrorDB([]float64{1}, []float64{1, 2}); err == nil {
		t.Fatal("expected length mismatch error")
	}

	if _, err := ErrorDB([]float64{1, 2}, []float64{0, 0}); err == nil {
		t.Fatal("expected silent reference error")
	}
}

func TestZeroCrossingFrequency(t *testing.T) {
	for _, freq := range []float64{110, 440, 451.3, 1000} {
		x := DeterministicSine(freq, 48000, 0.7, 48000/4)

		got, err := ZeroCrossingFrequency(x, 48000)
		if err != nil {
			t.Fatalf("ZeroCrossingFrequency(%v) error = %v", freq, err)
		}

		if math.Abs(got-freq) > 0.01 {
			t.Fatalf("ZeroCrossingFrequency(%v) = %v", freq, got)
		}
	}

	if _, err := ZeroCrossingFrequency(make([]float64, 100), 48000); err == nil {
		t.Fatal("expected error for silence")
	}
}

func TestRMS(t *testing.T) {
	x := DeterministicSine(1000, 48000, 1, 4800)
	if got := RMS(x); math.Abs(got-math.Sqrt2/2) > 1e-9 {
		t.Fatalf("RMS() = %v, want %v", got, math.Sqrt2/2)
	}

	if RMS(nil) != 0 {
		t.Fatal("RMS(nil) != 0")
	}
}
