package pitch

import (
	"math"
	"testing"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-autotune/dsp/spectrum"
	"github.com/cwbudde/algo-autotune/dsp/window"
	"github.com/cwbudde/algo-autotune/internal/testutil"
)

const (
	testSize = 1024
	testHop  = 256
	testRate = 48000.0
)

// analyse runs two consecutive frames of signal through an Analysis and
// returns it primed with the second frame.
func analyse(t *testing.T, signal []float64, coeffs []float64) *spectrum.Analysis {
	t.Helper()

	a, err := spectrum.NewAnalysis(testSize, testHop, testRate)
	if err != nil {
		t.Fatalf("NewAnalysis() error = %v", err)
	}

	plan, err := algofft.NewPlan64(testSize)
	if err != nil {
		t.Fatalf("NewPlan64() error = %v", err)
	}

	spec := make([]complex128, testSize)
	prev := make([]float64, a.Bins())

	for frame := range 2 {
		off := frame * testHop
		for i := range spec {
			spec[i] = complex(signal[off+i]*coeffs[i], 0)
		}

		if err := plan.Forward(spec, spec); err != nil {
			t.Fatalf("Forward() error = %v", err)
		}

		if err := a.Update(spec, prev, frame > 0); err != nil {
			t.Fatalf("Update() error = %v", err)
		}
	}

	return a
}

func hannTable(t *testing.T) []float64 {
	t.Helper()

	coeffs, err := window.Table(window.TypeHann, testSize)
	if err != nil {
		t.Fatalf("window.Table() error = %v", err)
	}

	return coeffs
}

func TestNewPeakDetectorValidates(t *testing.T) {
	coeffs := []float64{0.5, 1, 0.5}

	tests := []struct {
		name           string
		lo, hi, thresh float64
		coeffs         []float64
	}{
		{name: "inverted band", lo: 2000, hi: 80, coeffs: coeffs},
		{name: "equal band", lo: 100, hi: 100, coeffs: coeffs},
		{name: "zero min", lo: 0, hi: 100, coeffs: coeffs},
		{name: "infinite max", lo: 80, hi: math.Inf(1), coeffs: coeffs},
		{name: "negative threshold", lo: 80, hi: 2000, thresh: -1, coeffs: coeffs},
		{name: "NaN threshold", lo: 80, hi: 2000, thresh: math.NaN(), coeffs: coeffs},
		{name: "empty window", lo: 80, hi: 2000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewPeakDetector(tt.lo, tt.hi, tt.thresh, tt.coeffs); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestPeakDetectorWindowSum(t *testing.T) {
	for _, typ := range []window.Type{window.TypeHann, window.TypeHamming, window.TypeBlackman} {
		coeffs, err := window.Table(typ, testSize)
		if err != nil {
			t.Fatalf("window.Table() error = %v", err)
		}

		d, err := NewPeakDetector(80, 2000, 1e-3, coeffs)
		if err != nil {
			t.Fatalf("NewPeakDetector() error = %v", err)
		}

		if d.WindowSum != window.CoherentGain(coeffs) {
			t.Fatalf("%v: WindowSum = %v, want %v", typ, d.WindowSum, window.CoherentGain(coeffs))
		}
	}

	if _, err := NewPeakDetector(80, 2000, 1e-3, []float64{0, 0}); err == nil {
		t.Fatal("NewPeakDetector(zero window) succeeded")
	}
}

func TestPeakDetectorFindsTone(t *testing.T) {
	coeffs := hannTable(t)

	d, err := NewPeakDetector(80, 2000, 1e-3, coeffs)
	if err != nil {
		t.Fatalf("NewPeakDetector() error = %v", err)
	}

	for _, freq := range []float64{110, 220, 440, 450, 987.77} {
		signal := testutil.DeterministicSine(freq, testRate, 0.5, testSize+testHop)
		a := analyse(t, signal, coeffs)

		hz, ok := d.Detect(a)
		if !ok {
			t.Fatalf("%v Hz: not detected", freq)
		}

		if math.Abs(hz-freq) > 0.5 {
			t.Fatalf("%v Hz: detected %v", freq, hz)
		}
	}
}

// A voiced tone whose fundamental dominates reports the fundamental.
func TestPeakDetectorHarmonicTone(t *testing.T) {
	coeffs := hannTable(t)

	d, err := NewPeakDetector(80, 2000, 1e-3, coeffs)
	if err != nil {
		t.Fatalf("NewPeakDetector() error = %v", err)
	}

	signal := testutil.Harmonic(220, testRate, []float64{0.5, 0.25, 0.15, 0.1}, testSize+testHop)

	hz, ok := d.Detect(analyse(t, signal, coeffs))
	if !ok || math.Abs(hz-220) > 0.5 {
		t.Fatalf("Detect() = %v, %v, want 220 Hz", hz, ok)
	}
}

func TestPeakDetectorRejects(t *testing.T) {
	coeffs := hannTable(t)

	d, err := NewPeakDetector(80, 2000, 1e-3, coeffs)
	if err != nil {
		t.Fatalf("NewPeakDetector() error = %v", err)
	}

	t.Run("silence", func(t *testing.T) {
		a := analyse(t, make([]float64, testSize+testHop), coeffs)
		if hz, ok := d.Detect(a); ok {
			t.Fatalf("detected %v Hz in silence", hz)
		}
	})

	t.Run("below threshold", func(t *testing.T) {
		signal := testutil.DeterministicSine(440, testRate, 1e-4, testSize+testHop)
		if hz, ok := d.Detect(analyse(t, signal, coeffs)); ok {
			t.Fatalf("detected %v Hz below threshold", hz)
		}
	})

	t.Run("above band", func(t *testing.T) {
		signal := testutil.DeterministicSine(4000, testRate, 0.5, testSize+testHop)
		if hz, ok := d.Detect(analyse(t, signal, coeffs)); ok {
			t.Fatalf("detected %v Hz outside band", hz)
		}
	})

	t.Run("first frame", func(t *testing.T) {
		signal := testutil.DeterministicSine(440, testRate, 0.5, testSize+testHop)
		a := analyse(t, signal, coeffs)
		a.Valid = false

		if _, ok := d.Detect(a); ok {
			t.Fatal("detected on a frame without previous phase")
		}
	})
}

func TestPeakDetectorBand(t *testing.T) {
	a, err := spectrum.NewAnalysis(testSize, testHop, testRate)
	if err != nil {
		t.Fatalf("NewAnalysis() error = %v", err)
	}

	tests := []struct {
		name           string
		minHz, maxHz   float64
		wantLo, wantHi int
	}{
		{name: "vocal", minHz: 80, maxHz: 2000, wantLo: 2, wantHi: 42},
		{name: "clipped to DC", minHz: 1, maxHz: 100, wantLo: 1, wantHi: 2},
		{name: "clipped below Nyquist", minHz: 1000, maxHz: 30000, wantLo: 22, wantHi: 511},
		{name: "empty", minHz: 50, maxHz: 60, wantLo: 2, wantHi: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &PeakDetector{MinFrequency: tt.minHz, MaxFrequency: tt.maxHz, WindowSum: 1}

			lo, hi := d.Band(a)
			if lo != tt.wantLo || hi != tt.wantHi {
				t.Fatalf("Band() = [%d, %d], want [%d, %d]", lo, hi, tt.wantLo, tt.wantHi)
			}
		})
	}
}

func TestPeakDetectorAllocs(t *testing.T) {
	coeffs := hannTable(t)
	d, _ := NewPeakDetector(80, 2000, 1e-3, coeffs)
	a := analyse(t, testutil.DeterministicSine(440, testRate, 0.5, testSize+testHop), coeffs)

	var det Detector = d

	allocs := testing.AllocsPerRun(100, func() {
		_, _ = det.Detect(a)
	})
	if allocs != 0 {
		t.Fatalf("Detect allocates: %v allocs/op", allocs)
	}
}
