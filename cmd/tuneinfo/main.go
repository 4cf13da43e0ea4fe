// Command tuneinfo prints the tables and derived timings behind the
// pitch-correction engine.
//
// Usage:
//
//	tuneinfo keys
//	tuneinfo scale [-octave n] key
//	tuneinfo presets [-rate hz]
//	tuneinfo windows [-size n] [-hop n]
//
// Examples:
//
//	tuneinfo scale "F# minor"
//	tuneinfo scale -octave 2 bb
//	tuneinfo presets -rate 44100
//	tuneinfo windows -size 2048 -hop 512
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-autotune/dsp/autotune"
	"github.com/cwbudde/algo-autotune/dsp/formant"
	"github.com/cwbudde/algo-autotune/dsp/scale"
	"github.com/cwbudde/algo-autotune/dsp/window"
)

var errUsage = errors.New("usage: tuneinfo keys | scale [-octave n] key | presets [-rate hz] | windows [-size n] [-hop n]")

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, w io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}

	cmd, rest := args[0], args[1:]

	switch cmd {
	case "keys":
		return printKeys(w)
	case "scale":
		fs := flag.NewFlagSet("scale", flag.ContinueOnError)
		octave := fs.Int("octave", scale.ReferenceOctave, "octave to print")

		if err := fs.Parse(rest); err != nil {
			return err
		}

		if fs.NArg() != 1 {
			return errUsage
		}

		k, err := scale.ParseKey(fs.Arg(0))
		if err != nil {
			return err
		}

		return printScale(w, k, *octave)
	case "presets":
		fs := flag.NewFlagSet("presets", flag.ContinueOnError)
		rate := fs.Float64("rate", 48000, "sample rate in Hz")

		if err := fs.Parse(rest); err != nil {
			return err
		}

		return printPresets(w, *rate)
	case "windows":
		fs := flag.NewFlagSet("windows", flag.ContinueOnError)
		size := fs.Int("size", 1024, "window length in samples")
		hop := fs.Int("hop", 256, "hop size in samples")

		if err := fs.Parse(rest); err != nil {
			return err
		}

		return printWindows(w, *size, *hop)
	default:
		return fmt.Errorf("unknown command %q: %w", cmd, errUsage)
	}
}

func printKeys(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Index\tKey\tNotes\n")
	fmt.Fprintf(tw, "-----\t---\t-----\n")

	for k := range scale.Key(scale.NumKeys) {
		notes := ""
		for d := 1; d <= scale.DegreesPerOctave; d++ {
			if d > 1 {
				notes += " "
			}

			notes += k.NoteName(d)
		}

		fmt.Fprintf(tw, "%d\t%s\t%s\n", int(k), k, notes)
	}

	return tw.Flush()
}

func printScale(w io.Writer, k scale.Key, octave int) error {
	if octave < 0 || octave >= scale.Octaves {
		return fmt.Errorf("octave %d outside [0, %d]", octave, scale.Octaves-1)
	}

	tbl, err := scale.TableFor(k)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s, octave %d\n", k, octave)
	fmt.Fprintf(tw, "Degree\tNote\tFrequency [Hz]\n")
	fmt.Fprintf(tw, "------\t----\t--------------\n")

	for d := 1; d <= scale.DegreesPerOctave; d++ {
		hz, _ := tbl.Degree(d, octave)

		fmt.Fprintf(tw, "%d\t%s\t%.2f\n", d, k.NoteName(d), hz)
	}

	return tw.Flush()
}

func printPresets(w io.Writer, sampleRate float64) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Preset\tFFT\tHop\tBin [Hz]\tLatency\tBlock Latency\tLifter\tThreshold [dB]\tSettle 95%%\n")
	fmt.Fprintf(tw, "------\t---\t---\t--------\t-------\t-------------\t------\t--------------\t----------\n")

	for _, p := range []autotune.Preset{autotune.LowLatency, autotune.Realtime, autotune.HighQuality} {
		cfg, err := autotune.PresetConfig(p, sampleRate)
		if err != nil {
			return err
		}

		e, err := autotune.NewEngine(cfg, autotune.DefaultSettings())
		if err != nil {
			return err
		}

		size := int(cfg.FFTSize)
		frames := cfg.FramesFor(0.95)

		fmt.Fprintf(tw, "%s\t%d\t%d\t%.2f\t%s\t%s\t%d\t%.1f\t%d hops (%.1f ms)\n",
			p,
			size,
			cfg.HopSize,
			sampleRate/float64(size),
			samples(e.Latency(), sampleRate),
			samples(e.BlockLatency(), sampleRate),
			formant.LifterLength(size, sampleRate),
			cfg.DetectionThresholdDB(),
			frames,
			1000*float64(frames)*cfg.HopDuration(),
		)
	}

	return tw.Flush()
}

func printWindows(w io.Writer, size, hop int) error {
	if hop <= 0 || hop >= size {
		return fmt.Errorf("hop %d must be in (0, %d)", hop, size)
	}

	gain := make([]float64, hop)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Window\tSize\tHop\tCoherent Gain\tOLA Min\tOLA Max\n")
	fmt.Fprintf(tw, "------\t----\t---\t-------------\t-------\t-------\n")

	for _, t := range []window.Type{window.TypeRectangular, window.TypeHann, window.TypeHamming, window.TypeBlackman} {
		coeffs, err := window.Table(t, size)
		if err != nil {
			return err
		}

		if err := window.OverlapAddGain(gain, coeffs, hop); err != nil {
			return err
		}

		lo, hi := gain[0], gain[0]
		for _, g := range gain[1:] {
			lo, hi = min(lo, g), max(hi, g)
		}

		fmt.Fprintf(tw, "%s\t%d\t%d\t%.6f\t%.4f\t%.4f\n",
			t, size, hop, window.CoherentGain(coeffs)/float64(size), lo, hi)
	}

	return tw.Flush()
}

func samples(n int, sampleRate float64) string {
	return fmt.Sprintf("%d (%.1f ms)", n, 1000*float64(n)/sampleRate)
}
